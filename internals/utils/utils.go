package utils

import (
	"errors"
	"net/url"
	"strings"
)

// ValidateURL normalizes the API base URL: the scheme defaults to http, since
// the clinic API is usually reached on the local network, and any path is
// dropped.
func ValidateURL(urlString string) (string, error) {
	urlString = strings.TrimSpace(urlString)
	if urlString == "" {
		return "", errors.New("empty url")
	}
	if !strings.Contains(urlString, "://") {
		urlString = "http://" + urlString
	}

	u, err := url.Parse(urlString)
	if err != nil {
		return "", err
	}
	if u.Host == "" {
		return "", errors.New("missing host")
	}

	u.Path = ""
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u.String(), nil
}

// JoinNonEmpty joins the non-blank parts with single spaces.
func JoinNonEmpty(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
