// Package email discovers and verifies contact addresses for a lead.
package email

import (
	"regexp"
	"strings"
)

var emailRe = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

// Generic inbox substrings filtered out of scraped addresses.
var genericLocalParts = []string{
	"support", "info", "hello", "contact", "admin", "noreply", "sales", "marketing",
}

// ExtractEmails pulls email-looking tokens from text, discarding
// addresses whose local part contains a generic-role substring.
func ExtractEmails(text string) []string {
	matches := emailRe.FindAllString(text, -1)

	var out []string
	for _, email := range matches {
		local := strings.ToLower(strings.SplitN(email, "@", 2)[0])
		generic := false
		for _, kw := range genericLocalParts {
			if strings.Contains(local, kw) {
				generic = true
				break
			}
		}
		if !generic {
			out = append(out, email)
		}
	}
	return out
}

// Dedupe removes duplicate addresses, preserving first-seen order.
func Dedupe(emails []string) []string {
	seen := make(map[string]struct{}, len(emails))
	var out []string
	for _, e := range emails {
		key := strings.ToLower(e)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, e)
	}
	return out
}
