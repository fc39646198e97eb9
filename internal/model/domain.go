package model

import (
	"net/url"
	"strings"
)

// placeholderHosts disqualify a candidate URL outright. These show up in
// search results for parked or demo storefronts.
var placeholderHosts = []string{"example.com", "test.com", "placeholder", "localhost"}

// DomainFromURL extracts the normalized host from a URL: scheme stripped,
// leading "www." stripped, lowercased. Two candidates with the same domain
// are the same company for all purposes.
func DomainFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}
	host := strings.ToLower(u.Host)
	if h, _, ok := strings.Cut(host, ":"); ok {
		host = h
	}
	return strings.TrimPrefix(host, "www.")
}

// IsValidCompanyURL reports whether a candidate URL is well-formed, has a
// real-looking host, and is not an obvious placeholder.
func IsValidCompanyURL(rawURL string) bool {
	if rawURL == "" {
		return false
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	if u.Host == "" || !strings.Contains(u.Host, ".") {
		return false
	}
	host := strings.ToLower(u.Host)
	for _, spam := range placeholderHosts {
		if strings.Contains(host, spam) {
			return false
		}
	}
	return true
}
