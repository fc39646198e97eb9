package resolve

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"two tokens", "John Smith", true},
		{"three tokens", "Mary Jane Watson", true},
		{"four tokens", "Juan Carlos de Silva", true},
		{"single token", "John", false},
		{"five tokens", "A B C D E", false},
		{"short first token", "J Smith", false},
		{"short last token", "John S", false},
		{"contains linkedin", "John Smith LinkedIn", false},
		{"contains company", "Acme Company Team", false},
		{"contains profile", "View Profile Page", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidName(tt.input))
		})
	}
}

func TestIsValidNameGeneratedInputs(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	words := []string{"anna", "marie", "jones", "oluwaseun", "li", "van", "der", "berg"}
	pick := func(n int) []string {
		tokens := make([]string, n)
		for i := range tokens {
			tokens[i] = words[rng.Intn(len(words))]
		}
		return tokens
	}

	// Token count alone decides validity for clean tokens.
	for i := 0; i < 500; i++ {
		n := rng.Intn(8)
		name := strings.Join(pick(n), " ")
		want := n >= 2 && n <= 4
		assert.Equal(t, want, IsValidName(name), "tokens=%d name=%q", n, name)
	}

	// Any vague role keyword anywhere in an otherwise valid name rejects it.
	for i := 0; i < 500; i++ {
		tokens := pick(rng.Intn(2) + 2)
		pos := rng.Intn(len(tokens) + 1)
		kw := vagueNameKeywords[rng.Intn(len(vagueNameKeywords))]
		tokens = append(tokens[:pos], append([]string{kw}, tokens[pos:]...)...)
		name := strings.Join(tokens, " ")
		assert.False(t, IsValidName(name), "keyword=%q name=%q", kw, name)
	}
}

func TestIsValidProfileURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"personal profile", "https://www.linkedin.com/in/john-smith", true},
		{"country subdomain", "https://uk.linkedin.com/in/john-smith", true},
		{"company page", "https://www.linkedin.com/company/acme", false},
		{"post", "https://www.linkedin.com/posts/john-smith_update", false},
		{"pulse article", "https://www.linkedin.com/pulse/article", false},
		{"directory", "https://www.linkedin.com/directory/people", false},
		{"other site", "https://twitter.com/in/john", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidProfileURL(tt.url))
		})
	}
}

func TestValidFirstName(t *testing.T) {
	tests := []struct {
		name    string
		first   string
		company string
		want    bool
	}{
		{"normal name", "John", "Acme Goods", true},
		{"generic inbox", "Sales", "Acme Goods", false},
		{"job title", "Founder", "Acme Goods", false},
		{"company token", "Acme", "Acme Goods", false},
		{"email-like", "john@acme", "Acme Goods", false},
		{"tld fragment", "acme.com", "Acme Goods", false},
		{"digits", "John2", "Acme Goods", false},
		{"too short", "J", "Acme Goods", false},
		{"too long", "Johnjohnjohnjohnjohnjohnjohnjohn", "Acme Goods", false},
		{"empty", "", "Acme Goods", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidFirstName(tt.first, tt.company))
		})
	}
}

func TestNameFromEmail(t *testing.T) {
	first, last, ok := NameFromEmail("john.smith@acme.com")
	assert.True(t, ok)
	assert.Equal(t, "John", first)
	assert.Equal(t, "Smith", last)

	first, last, ok = NameFromEmail("jane_doe@acme.com")
	assert.True(t, ok)
	assert.Equal(t, "Jane", first)
	assert.Equal(t, "Doe", last)

	_, _, ok = NameFromEmail("john@acme.com")
	assert.False(t, ok, "single-token local part carries no last name")

	_, _, ok = NameFromEmail("info.desk@acme.com")
	assert.False(t, ok, "generic inbox names are rejected")

	_, _, ok = NameFromEmail("john.smith2@acme.com")
	assert.False(t, ok, "digits disqualify a token")

	_, _, ok = NameFromEmail("@acme.com")
	assert.False(t, ok)
}
