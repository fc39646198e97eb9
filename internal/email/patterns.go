package email

import (
	"fmt"
	"strings"
)

// GeneratePatterns returns the canonical local-part permutations for a
// person at a domain, most likely first. The first-name-only pattern
// always leads; the last-name permutations follow when a last name is
// known.
func GeneratePatterns(first, last, domain string) []string {
	if first == "" || domain == "" {
		return nil
	}

	f := strings.ToLower(first)
	l := strings.ToLower(last)

	patterns := []string{
		fmt.Sprintf("%s@%s", f, domain),
	}

	if l != "" {
		patterns = append(patterns,
			fmt.Sprintf("%s.%s@%s", f, l, domain),
			fmt.Sprintf("%s%s@%s", f, l, domain),
			fmt.Sprintf("%s_%s@%s", f, l, domain),
			fmt.Sprintf("%s.%s@%s", l, f, domain),
			fmt.Sprintf("%s%s@%s", f[:1], l, domain),
			fmt.Sprintf("%s.%s@%s", f[:1], l, domain),
		)
	}

	return patterns
}
