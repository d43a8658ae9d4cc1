package synonyms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Expand(t *testing.T) {
	e := Default()

	tests := []struct {
		name  string
		token string
		want  []string
	}{
		{"group key", "veg", []string{"veg", "vegetarian", "veggie", "plant-based"}},
		{"group value returns key and siblings", "vegetarian", []string{"vegetarian", "veg", "veggie", "plant-based"}},
		{"hyphenated value", "plant-based", []string{"plant-based", "veg", "vegetarian", "veggie"}},
		{"pizza", "pizza", []string{"pizza", "pie"}},
		{"value of pizza group", "pie", []string{"pie", "pizza"}},
		{"case-insensitive", "VEGGIE", []string{"veggie", "veg", "vegetarian", "plant-based"}},
		{"unknown token", "xyz-unknown", []string{"xyz-unknown"}},
		{"popularity", "bestseller", []string{"bestseller", "popular", "featured", "trending"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Expand(tt.token))
		})
	}
}

func TestExpand_AlwaysIncludesToken(t *testing.T) {
	e := Default()
	for _, token := range []string{"latte", "veg", "sweet", "gf", "anything"} {
		expanded := e.Expand(token)
		require.NotEmpty(t, expanded)
		assert.Equal(t, token, expanded[0])
	}
}

func TestExpand_NoFuzzyLookup(t *testing.T) {
	// "vegg" is one edit away from "veg" but synonym lookup is exact-token only
	assert.Equal(t, []string{"vegg"}, Default().Expand("vegg"))
}

func TestNewExpander_MemberOfSeveralGroups(t *testing.T) {
	e := NewExpander(map[string][]string{
		"cold":  {"iced", "chilled"},
		"drink": {"beverage", "iced"},
	})

	assert.Equal(t, []string{"iced", "cold", "chilled", "drink", "beverage"}, e.Expand("iced"))
	assert.Equal(t, []string{"cold", "iced", "chilled"}, e.Expand("cold"))
}

func TestNewExpander_NormalizesAndDeduplicates(t *testing.T) {
	e := NewExpander(map[string][]string{
		" Tea ": {"Chai", "chai", "", "TEA"},
	})

	assert.Equal(t, []string{"tea", "chai"}, e.Expand("tea"))
	assert.Equal(t, map[string][]string{"tea": {"chai"}}, e.Groups())
}

func TestNilExpander(t *testing.T) {
	var e *Expander
	assert.Equal(t, []string{"latte"}, e.Expand("Latte"))
}

func TestParseGroups(t *testing.T) {
	t.Run("valid table", func(t *testing.T) {
		groups, err := ParseGroups([]byte("soda:\n  - pop\n  - soft-drink\n"))
		require.NoError(t, err)
		assert.Equal(t, map[string][]string{"soda": {"pop", "soft-drink"}}, groups)
	})

	t.Run("malformed table", func(t *testing.T) {
		_, err := ParseGroups([]byte("soda: [pop"))
		assert.Error(t, err)
	})

	t.Run("wrong shape", func(t *testing.T) {
		_, err := ParseGroups([]byte("- just\n- a list\n"))
		assert.Error(t, err)
	})
}

func TestDefaultGroupsIsACopy(t *testing.T) {
	groups := DefaultGroups()
	groups["veg"] = nil
	assert.Contains(t, Default().Expand("veg"), "veggie")
}
