package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAttributes(t *testing.T) {
	type testCase struct {
		name  string
		input string
		keys  []string
		attrs map[string]string
		text  string
	}

	cases := []testCase{
		{
			name: "empty",
		},
		{
			name:  "free text only",
			input: "Welcome back",
			text:  "Welcome back",
		},
		{
			name:  "single attribute",
			input: "title:Test",
			keys:  []string{"title"},
			attrs: map[string]string{"title": "Test"},
		},
		{
			name:  "multi word value",
			input: "label:First name cols:20",
			keys:  []string{"label", "cols"},
			attrs: map[string]string{"label": "First name", "cols": "20"},
		},
		{
			name:  "text before attributes",
			input: "Sign in id:login_btn",
			keys:  []string{"id"},
			attrs: map[string]string{"id": "login_btn"},
			text:  "Sign in",
		},
		{
			name:  "text after attribute joins its value",
			input: "size:100x50 Header",
			keys:  []string{"size"},
			attrs: map[string]string{"size": "100x50 Header"},
		},
		{
			name:  "value keeps only the first colon split",
			input: "gpos:1-3/2 style:color:red",
			keys:  []string{"gpos", "style"},
			attrs: map[string]string{"gpos": "1-3/2", "style": "color:red"},
		},
		{
			name:  "repeated key keeps first position",
			input: "a:1 b:2 a:3",
			keys:  []string{"a", "b"},
			attrs: map[string]string{"a": "3", "b": "2"},
		},
		{
			name:  "empty value",
			input: "id: label:Name",
			keys:  []string{"id", "label"},
			attrs: map[string]string{"id": "", "label": "Name"},
		},
	}

	for _, c := range cases {
		c := c

		t.Run(c.name, func(t *testing.T) {
			attrs, text := ParseAttributes(c.input)

			assert.Equal(t, c.text, text)
			assert.Equal(t, len(c.keys), attrs.Len())
			if len(c.keys) > 0 {
				assert.Equal(t, c.keys, attrs.Keys())
			}

			for k, v := range c.attrs {
				got, ok := attrs.Get(k)
				assert.True(t, ok, "attribute %q", k)
				assert.Equal(t, v, got, "attribute %q", k)
			}
		})
	}
}
