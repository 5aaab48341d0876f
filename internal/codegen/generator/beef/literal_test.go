package beef

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteString(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{name: "plain", in: "cast", expected: `"cast"`},
		{name: "empty", in: "", expected: `""`},
		{name: "quote", in: `say "hi"`, expected: `"say \"hi\""`},
		{name: "backslash", in: `C:\path\`, expected: `"C:\\path\\"`},
		{name: "raw delimiter", in: `a"""b`, expected: `"a\"\"\"b"`},
		{name: "whitespace escapes", in: "a\tb\r\nc", expected: `"a\tb\r\nc"`},
		{name: "control bytes", in: "\x00\x01\x1f\x7f", expected: `"\0\x01\x1F\x7F"`},
		{name: "utf8 passes through", in: "größe → 大", expected: `"größe → 大"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := QuoteString(tt.in)
			assert.Equal(t, tt.expected, got)

			decoded, n, err := UnquoteString(got + ", rest")
			require.NoError(t, err)
			assert.Equal(t, tt.in, decoded)
			assert.Equal(t, len(got), n)
		})
	}
}

func TestUnquoteStringErrors(t *testing.T) {
	for _, src := range []string{
		``,
		`cast`,
		`"unterminated`,
		`"bad \q escape"`,
		`"short \x1"`,
		`"bad \xZZ hex"`,
		"\"line\nbreak\"",
		`"trailing \`,
	} {
		t.Run(src, func(t *testing.T) {
			_, _, err := UnquoteString(src)
			assert.Error(t, err)
		})
	}
}

func TestRawBlock(t *testing.T) {
	for _, payload := range []string{
		"",
		"Hello {0}",
		"\n    indented\n    body\n",
		"ends with quote\"",
		"two quotes \"\" inside\n\"\"",
		"\n",
	} {
		t.Run(payload, func(t *testing.T) {
			require.True(t, CanRawBlock(payload))
			block := RawBlock(payload)

			decoded, n, err := UnRawBlock(block + ",\n\t\tid: \"x\"")
			require.NoError(t, err)
			assert.Equal(t, payload, decoded)
			assert.Equal(t, len(block), n)
		})
	}
}

func TestCanRawBlock(t *testing.T) {
	assert.True(t, CanRawBlock(`one "" two`))
	assert.False(t, CanRawBlock(`doc """comment"""`))
	assert.False(t, CanRawBlock(`""""`))
	assert.False(t, CanRawBlock("line\r"))
	assert.False(t, CanRawBlock("crlf\r\nbody"))
}

func TestUnRawBlockErrors(t *testing.T) {
	_, _, err := UnRawBlock(`"plain"`)
	assert.Error(t, err)

	_, _, err = UnRawBlock("\"\"\"\nnever closed")
	assert.Error(t, err)
}
