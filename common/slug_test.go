package common

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Dashboard", "dashboard"},
		{"User Management", "user-management"},
		{"  Product   Catalog  ", "product-catalog"},
		{"Orders & Invoices", "orders-invoices"},
		{"UPPER case", "upper-case"},
		{"---", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "input %q", tt.in)
	}
}

func TestDedupeSlug(t *testing.T) {
	deduped := DedupeSlug("user-management")
	assert.True(t, strings.HasPrefix(deduped, "user-management-"))
	assert.NotEqual(t, "user-management", deduped)

	// Suffix is a timestamp so two near-simultaneous calls still differ
	// from the base slug.
	assert.Greater(t, len(deduped), len("user-management-"))
}
