// Package resolve finds and validates decision makers for a company.
package resolve

import (
	"net/url"
	"strings"
	"unicode"
)

// Role words that search titles and LLM extractions sometimes return in
// place of a person's name.
var vagueNameKeywords = []string{
	"linkedin", "company", "team", "staff",
	"executives", "profile", "member",
}

// Generic inbox names that are never a person.
var genericNameBlocklist = map[string]struct{}{
	"sales": {}, "support": {}, "info": {}, "admin": {}, "contact": {},
	"team": {}, "marketing": {}, "media": {}, "press": {}, "inquiries": {},
	"projects": {}, "hello": {}, "careers": {}, "jobs": {}, "weborders": {},
	"orders": {}, "shipping": {}, "returns": {}, "customer": {},
	"service": {}, "office": {}, "shop": {}, "store": {},
}

// Job titles sometimes returned as a first name.
var titleBlocklist = map[string]struct{}{
	"founder": {}, "ceo": {}, "owner": {}, "president": {}, "manager": {},
	"director": {}, "team": {}, "staff": {}, "member": {}, "partner": {},
}

// IsValidName reports whether a string looks like a realistic person
// name: 2 to 4 whitespace tokens, first and last tokens at least 2
// characters, and no vague role keywords anywhere.
func IsValidName(name string) bool {
	tokens := strings.Fields(name)
	if len(tokens) < 2 || len(tokens) > 4 {
		return false
	}
	if len(tokens[0]) < 2 || len(tokens[len(tokens)-1]) < 2 {
		return false
	}

	lower := strings.ToLower(name)
	for _, kw := range vagueNameKeywords {
		if strings.Contains(lower, kw) {
			return false
		}
	}
	return true
}

// IsValidProfileURL reports whether a URL points at a personal
// professional-network profile rather than a company page, feed, or
// content listing.
func IsValidProfileURL(raw string) bool {
	if raw == "" {
		return false
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}

	if !strings.Contains(strings.ToLower(parsed.Host), "linkedin.com") {
		return false
	}

	path := strings.ToLower(parsed.Path)
	if !strings.Contains(path, "/in/") {
		return false
	}
	if strings.Contains(path, "/company/") {
		return false
	}

	for _, bad := range []string{"/posts/", "/feed/", "/pulse/", "/events/", "/directory/"} {
		if strings.Contains(path, bad) {
			return false
		}
	}
	return true
}

// ValidFirstName applies the strict checks used on LLM-extracted names:
// no generic inbox words, no company-name token, no email-like or
// numeric content, reasonable length, and not a job title.
func ValidFirstName(first, companyName string) bool {
	if first == "" {
		return false
	}
	lower := strings.ToLower(first)

	if _, ok := genericNameBlocklist[lower]; ok {
		return false
	}
	if _, ok := titleBlocklist[lower]; ok {
		return false
	}

	for _, token := range strings.Fields(strings.ToLower(companyName)) {
		if lower == token {
			return false
		}
	}

	if strings.Contains(first, "@") || strings.Contains(lower, ".com") {
		return false
	}
	for _, r := range first {
		if unicode.IsDigit(r) {
			return false
		}
	}

	if len(first) < 2 || len(first) > 30 {
		return false
	}
	return true
}
