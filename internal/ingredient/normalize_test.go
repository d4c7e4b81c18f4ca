package ingredient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"500 g flour, chopped", "flour"},
		{"2 cups rice", "rice"},
		{"Tomatoes", "tomatoes"},
		{"1 onion, diced", "onion"},
		{"3 cloves garlic, minced", "garlic"},
		{"1/2 cup olive oil", "olive oil"},
		{"saffron", "saffron"},
		{"1 pinch saffron", "saffron"},
		{"  Fresh Basil  ", "fresh basil"},
		{"2 eggs", "eggs"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"rice", "wild rice mix", true},
		{"wild rice mix", "rice", true},
		{"Milk", "milk", true},
		{"milk", "almond milk", true},
		{"eggs", "flour", false},
		{"", "flour", false},
		{"flour", "", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Matches(tt.a, tt.b), "Matches(%q, %q)", tt.a, tt.b)
	}
}

func TestMatchesAny(t *testing.T) {
	candidates := []string{"rice", "tomatoes"}
	assert.True(t, MatchesAny("wild rice", candidates))
	assert.False(t, MatchesAny("saffron", candidates))
	assert.False(t, MatchesAny("saffron", nil))
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Olive Oil", Title("olive oil"))
	assert.Equal(t, "Saffron", Title("saffron"))
	assert.Equal(t, "", Title(""))
}
