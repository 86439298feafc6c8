package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"a", "b", 1},
		{"ab", "abc", 1},
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},
		{"ABC", "abc", 3},
		{"rename", "renmae", 2},
		{"try_from", "tryfrom", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.expected, Levenshtein(tt.a, tt.b))
			assert.Equal(t, tt.expected, Levenshtein(tt.b, tt.a), "symmetry")
		})
	}
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, Similarity("", ""), 1e-9)
	assert.InDelta(t, 1.0, Similarity("abc", "abc"), 1e-9)
	assert.InDelta(t, 0.0, Similarity("abc", "xyz"), 1e-9)
	assert.InDelta(t, 0.5, Similarity("ab", "abcd"), 1e-9)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "customerid", Normalize("CustomerID"))
	assert.Equal(t, "customerid", Normalize("customer_id"))
	assert.Equal(t, "customerid", Normalize("customer-id"))
	assert.Equal(t, "tryfrom", Normalize("try_from"))
	assert.Empty(t, Normalize("_- "))
}

func TestSuggest(t *testing.T) {
	directives := []string{"flatten", "rename", "from", "try_from"}

	assert.Equal(t, []string{"rename"}, Suggest("renam", directives, 1))
	assert.Equal(t, []string{"try_from"}, Suggest("tryfrom", directives, 1))
	assert.Equal(t, []string{"flatten"}, Suggest("FLATEN", directives, 0))
	assert.Empty(t, Suggest("primary_key", directives, 3))
	assert.Empty(t, Suggest("rename", directives, 3), "exact names are not suggestions")

	fields := []string{"UserID", "UserName", "Email"}
	assert.Equal(t, []string{"UserID", "UserName"}, Suggest("user_ids", fields, 0))
}
