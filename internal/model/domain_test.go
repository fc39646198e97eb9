package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainFromURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://www.acme.com/shop", "acme.com"},
		{"http://ACME.com", "acme.com"},
		{"https://store.acme.com", "store.acme.com"},
		{"https://acme.com:8443/x", "acme.com"},
		{"not a url", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DomainFromURL(tt.in), tt.in)
	}
}

func TestIsValidCompanyURL(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"https://acme.com", true},
		{"http://acme.co.uk/shop", true},
		{"ftp://acme.com", false},
		{"https://localhost:3000", false},
		{"https://example.com/store", false},
		{"https://test.com", false},
		{"https://nodots", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValidCompanyURL(tt.in), tt.in)
	}
}
