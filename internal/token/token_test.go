package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bulloak-go/bulloak/internal/token"
)

func TestLookupKeywordCaseInsensitive(t *testing.T) {
	cases := []struct {
		text string
		want token.Kind
	}{
		{"when", token.When},
		{"WHEN", token.When},
		{"When", token.When},
		{"given", token.Given},
		{"GIVEN", token.Given},
		{"it", token.It},
		{"IT", token.It},
		{"notakeyword", token.Invalid},
	}
	for _, c := range cases {
		got, ok := token.LookupKeyword(c.text)
		if c.want == token.Invalid {
			assert.False(t, ok, c.text)
			continue
		}
		assert.True(t, ok, c.text)
		assert.Equal(t, c.want, got, c.text)
	}
}

func TestKindIsCondition(t *testing.T) {
	assert.True(t, token.When.IsCondition())
	assert.True(t, token.Given.IsCondition())
	assert.False(t, token.It.IsCondition())
	assert.False(t, token.Word.IsCondition())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "When", token.When.String())
	assert.Equal(t, "Unknown", token.Kind(255).String())
}

func TestTokenBlankLines(t *testing.T) {
	assert.Equal(t, 0, token.Token{Kind: token.Break, Text: "\n"}.BlankLines())
	assert.Equal(t, 2, token.Token{Kind: token.Break, Text: "\n\n\n"}.BlankLines())
	assert.Equal(t, 0, token.Token{Kind: token.Break, Text: ""}.BlankLines())
}
