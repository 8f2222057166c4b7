// Package overpass renders Overpass QL radius queries from typed parameters so
// tag values never get spliced into the query text unescaped.
package overpass

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/octobees/travel-buddy/api/internal/entity"
)

var quoter = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`, "\t", `\t`)

// Query selects nodes and ways tagged TagKey=TagValue within RadiusMeters of Center.
type Query struct {
	TagKey       string
	TagValue     string
	Center       entity.Coordinate
	RadiusMeters int
	Limit        int
	Timeout      time.Duration
}

// Build validates the parameters and renders the QL text. Ways are reported by
// their center so every element carries a position.
func (q Query) Build() (string, error) {
	if strings.TrimSpace(q.TagKey) == "" || strings.TrimSpace(q.TagValue) == "" {
		return "", errors.New("overpass: tag key and value are required")
	}
	if q.RadiusMeters <= 0 {
		return "", fmt.Errorf("overpass: radius must be positive, got %d", q.RadiusMeters)
	}
	if q.Limit <= 0 {
		return "", fmt.Errorf("overpass: limit must be positive, got %d", q.Limit)
	}
	if err := q.Center.Validate(); err != nil {
		return "", fmt.Errorf("overpass: %w", err)
	}

	filter := fmt.Sprintf(`["%s"="%s"](around:%d,%s,%s)`,
		quoter.Replace(q.TagKey),
		quoter.Replace(q.TagValue),
		q.RadiusMeters,
		strconv.FormatFloat(q.Center.Latitude, 'f', 6, 64),
		strconv.FormatFloat(q.Center.Longitude, 'f', 6, 64),
	)

	var b strings.Builder
	b.WriteString("[out:json]")
	if q.Timeout > 0 {
		fmt.Fprintf(&b, "[timeout:%d]", int(math.Ceil(q.Timeout.Seconds())))
	}
	b.WriteString(";\n(\n")
	fmt.Fprintf(&b, "  node%s;\n", filter)
	fmt.Fprintf(&b, "  way%s;\n", filter)
	b.WriteString(");\n")
	fmt.Fprintf(&b, "out center %d;\n", q.Limit)
	return b.String(), nil
}
