package beef

import (
	"errors"
	"fmt"
	"strings"
)

// RawDelimiter opens and closes a multi-line string block.
const RawDelimiter = `"""`

const hexDigits = "0123456789ABCDEF"

// QuoteString renders s as a Beef string literal. Control characters without
// a short escape are written as \xHH with exactly two hex digits.
func QuoteString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case 0:
			b.WriteString(`\0`)
		default:
			if c < 0x20 || c == 0x7f {
				b.WriteString(`\x`)
				b.WriteByte(hexDigits[c>>4])
				b.WriteByte(hexDigits[c&0x0f])
				continue
			}
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// UnquoteString decodes a literal produced by QuoteString. It returns the
// decoded value and the number of bytes of src consumed.
func UnquoteString(src string) (string, int, error) {
	if len(src) == 0 || src[0] != '"' {
		return "", 0, errors.New("expected string literal")
	}
	var b strings.Builder
	for i := 1; i < len(src); i++ {
		c := src[i]
		switch c {
		case '"':
			return b.String(), i + 1, nil
		case '\n':
			return "", 0, errors.New("newline in string literal")
		case '\\':
			i++
			if i >= len(src) {
				return "", 0, errors.New("unterminated escape")
			}
			switch src[i] {
			case '\\':
				b.WriteByte('\\')
			case '"':
				b.WriteByte('"')
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			case '0':
				b.WriteByte(0)
			case 'x':
				if i+2 >= len(src) {
					return "", 0, errors.New("short \\x escape")
				}
				hi, lo := strings.IndexByte(hexDigits, src[i+1]), strings.IndexByte(hexDigits, src[i+2])
				if hi < 0 || lo < 0 {
					return "", 0, fmt.Errorf("invalid \\x escape %q", src[i-1:i+3])
				}
				b.WriteByte(byte(hi<<4 | lo))
				i += 2
			default:
				return "", 0, fmt.Errorf("unknown escape \\%c", src[i])
			}
		default:
			b.WriteByte(c)
		}
	}
	return "", 0, errors.New("unterminated string literal")
}

// CanRawBlock reports whether s can be embedded verbatim in a raw block.
// Carriage returns are excluded: the compiler normalises line endings inside
// the block, so a lone or trailing \r would not survive.
func CanRawBlock(s string) bool {
	return !strings.Contains(s, RawDelimiter) && !strings.ContainsRune(s, '\r')
}

// RawBlock renders s as a multi-line block. The payload sits on its own lines,
// and the closing delimiter is at column zero so no indentation is stripped.
func RawBlock(s string) string {
	return RawDelimiter + "\n" + s + "\n" + RawDelimiter
}

// UnRawBlock decodes a block produced by RawBlock, returning the payload and
// the number of bytes consumed.
func UnRawBlock(src string) (string, int, error) {
	open := RawDelimiter + "\n"
	if !strings.HasPrefix(src, open) {
		return "", 0, errors.New("expected raw block")
	}
	end := strings.Index(src[len(open):], "\n"+RawDelimiter)
	if end < 0 {
		return "", 0, errors.New("unterminated raw block")
	}
	payload := src[len(open) : len(open)+end]
	return payload, len(open) + end + 1 + len(RawDelimiter), nil
}
