package service

import (
	"errors"
	"net/url"
	"strings"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/net/idna"
)

var idnaProfile = idna.Lookup

const (
	trackingPrefix = "utm_"
	// OSM phone tags are expected in international form, so no default region applies.
	unknownRegion = "ZZ"
)

var (
	phoneTags   = []string{"phone", "contact:phone"}
	websiteTags = []string{"website", "contact:website", "url"}
)

// contactPhone returns the first valid number found in the element's phone tags, in E.164.
func contactPhone(tags map[string]string) string {
	for _, key := range phoneTags {
		// Multiple numbers are separated by ';'.
		for _, raw := range strings.Split(tags[key], ";") {
			if phone := normalizePhone(raw); phone != "" {
				return phone
			}
		}
	}
	return ""
}

// contactWebsite returns the first usable website tag as an https URL with an ASCII host.
func contactWebsite(tags map[string]string) string {
	for _, key := range websiteTags {
		if site := normalizeWebsite(tags[key]); site != "" {
			return site
		}
	}
	return ""
}

func normalizePhone(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	number, err := phonenumbers.Parse(raw, unknownRegion)
	if err != nil {
		return ""
	}
	if !phonenumbers.IsPossibleNumber(number) || !phonenumbers.IsValidNumber(number) {
		return ""
	}
	return phonenumbers.Format(number, phonenumbers.E164)
}

func normalizeWebsite(raw string) string {
	u, err := sanitizeURL(raw)
	if err != nil {
		return ""
	}
	host, err := idnaProfile.ToASCII(strings.ToLower(u.Hostname()))
	if err != nil || !isDomainValid(host) {
		return ""
	}
	if port := u.Port(); port != "" {
		host += ":" + port
	}
	u.Host = host
	stripTracking(u)
	return u.String()
}

func sanitizeURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("empty url")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return nil, errors.New("invalid url")
	}
	u.Scheme = "https"
	return u, nil
}

func stripTracking(u *url.URL) {
	query := u.Query()
	changed := false
	for key := range query {
		if strings.HasPrefix(strings.ToLower(key), trackingPrefix) {
			query.Del(key)
			changed = true
		}
	}
	if changed {
		u.RawQuery = query.Encode()
	}
}

func isDomainValid(domain string) bool {
	if !strings.Contains(domain, ".") {
		return false
	}
	for _, part := range strings.Split(domain, ".") {
		if part == "" || strings.HasPrefix(part, "-") || strings.HasSuffix(part, "-") {
			return false
		}
	}
	return true
}
