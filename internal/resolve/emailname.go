package resolve

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var localPartSplitRe = regexp.MustCompile(`[._]`)

var alphaRe = regexp.MustCompile(`^[A-Za-z]+$`)

// NameFromEmail infers a person's name from an email local part, e.g.
// john.smith@acme.com yields ("John", "Smith"). Returns ok=false for
// generic inboxes and local parts that don't split into two name-like
// tokens.
func NameFromEmail(email string) (first, last string, ok bool) {
	at := strings.Index(email, "@")
	if at <= 0 {
		return "", "", false
	}

	parts := localPartSplitRe.Split(email[:at], -1)
	if len(parts) < 2 {
		return "", "", false
	}

	titler := cases.Title(language.English)
	first = titler.String(strings.ToLower(parts[0]))
	last = titler.String(strings.ToLower(parts[len(parts)-1]))

	if _, blocked := genericNameBlocklist[strings.ToLower(first)]; blocked {
		return "", "", false
	}
	if len(first) < 2 || len(first) > 30 {
		return "", "", false
	}
	if !alphaRe.MatchString(first) || !alphaRe.MatchString(last) {
		return "", "", false
	}
	if len(last) < 2 {
		return "", "", false
	}

	return first, last, true
}
