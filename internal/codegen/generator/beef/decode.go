package beef

import (
	"fmt"
	"strings"

	"github.com/Alia5/tmplgen/internal/codegen/definition"
)

// Decode parses a listing produced by Render back into a catalog. It accepts
// only the exact shape Render emits; hand-edited registries are rejected.
func Decode(src []byte) (*definition.Catalog, error) {
	d := &decoder{src: string(src)}
	cat, err := d.registry()
	if err != nil {
		return nil, fmt.Errorf("decode registry at offset %d: %w", d.pos, err)
	}
	return cat, nil
}

type decoder struct {
	src string
	pos int
}

func (d *decoder) rest() string { return d.src[d.pos:] }

func (d *decoder) skipSpace() {
	for d.pos < len(d.src) {
		switch d.src[d.pos] {
		case ' ', '\t', '\n', '\r':
			d.pos++
		default:
			return
		}
	}
}

// skipComments skips whitespace and // line comments.
func (d *decoder) skipComments() {
	for {
		d.skipSpace()
		if !strings.HasPrefix(d.rest(), "//") {
			return
		}
		nl := strings.IndexByte(d.rest(), '\n')
		if nl < 0 {
			d.pos = len(d.src)
			return
		}
		d.pos += nl + 1
	}
}

func (d *decoder) expect(tok string) error {
	d.skipSpace()
	if !strings.HasPrefix(d.rest(), tok) {
		return fmt.Errorf("expected %q, found %q", tok, d.peek(len(tok)))
	}
	d.pos += len(tok)
	return nil
}

func (d *decoder) accept(tok string) bool {
	save := d.pos
	if d.expect(tok) != nil {
		d.pos = save
		return false
	}
	return true
}

func (d *decoder) peek(n int) string {
	r := d.rest()
	if len(r) > n {
		return r[:n]
	}
	return r
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '.' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// ident reads a possibly dotted identifier.
func (d *decoder) ident() (string, error) {
	d.skipSpace()
	start := d.pos
	for d.pos < len(d.src) && isIdentByte(d.src[d.pos]) {
		d.pos++
	}
	if start == d.pos {
		return "", fmt.Errorf("expected identifier, found %q", d.peek(8))
	}
	return d.src[start:d.pos], nil
}

func (d *decoder) quoted() (string, error) {
	d.skipSpace()
	s, n, err := UnquoteString(d.rest())
	if err != nil {
		return "", err
	}
	d.pos += n
	return s, nil
}

func (d *decoder) registry() (*definition.Catalog, error) {
	d.skipComments()
	if err := d.expect("using System;"); err != nil {
		return nil, err
	}
	if err := d.expect("namespace"); err != nil {
		return nil, err
	}
	if _, err := d.ident(); err != nil {
		return nil, err
	}
	if err := d.expect(";"); err != nil {
		return nil, err
	}
	if err := d.expect("static class"); err != nil {
		return nil, err
	}
	if _, err := d.ident(); err != nil {
		return nil, err
	}
	if err := d.expect("{"); err != nil {
		return nil, err
	}

	cat := &definition.Catalog{}
	for !d.accept("}") {
		t, err := d.entry()
		if err != nil {
			return nil, err
		}
		cat.Templates = append(cat.Templates, t)
	}
	d.skipSpace()
	if d.pos != len(d.src) {
		return nil, fmt.Errorf("trailing content %q", d.peek(16))
	}
	return cat, nil
}

func (d *decoder) entry() (definition.TemplateDef, error) {
	var t definition.TemplateDef
	if err := d.expect("public static let"); err != nil {
		return t, err
	}
	key, err := d.ident()
	if err != nil {
		return t, err
	}
	if err := d.expect("="); err != nil {
		return t, err
	}
	if err := d.expect("new"); err != nil {
		return t, err
	}
	if _, err := d.ident(); err != nil {
		return t, err
	}
	if err := d.expect("("); err != nil {
		return t, err
	}

	if err := d.expect("text:"); err != nil {
		return t, err
	}
	d.skipSpace()
	if strings.HasPrefix(d.rest(), RawDelimiter) {
		text, n, err := UnRawBlock(d.rest())
		if err != nil {
			return t, err
		}
		d.pos += n
		t.Text = text
	} else if t.Text, err = d.quoted(); err != nil {
		return t, err
	}
	if err := d.expect(","); err != nil {
		return t, err
	}

	if err := d.expect("id:"); err != nil {
		return t, err
	}
	if t.ID, err = d.quoted(); err != nil {
		return t, err
	}
	if t.ID != key {
		return t, fmt.Errorf("registry key %q does not match id %q", key, t.ID)
	}
	if err := d.expect(","); err != nil {
		return t, err
	}

	if err := d.expect("arguments:"); err != nil {
		return t, err
	}
	err = d.list(func() error {
		a, err := d.argument()
		if err != nil {
			return err
		}
		t.Arguments = append(t.Arguments, a)
		return nil
	})
	if err != nil {
		return t, err
	}
	if err := d.expect(")"); err != nil {
		return t, err
	}
	return t, d.expect(";")
}

// list reads `Type[?](e, e, ...)` or `Type[0]()`, calling elem per element.
func (d *decoder) list(elem func() error) error {
	if _, err := d.ident(); err != nil {
		return err
	}
	if d.accept("[0]()") {
		return nil
	}
	if err := d.expect("[?]("); err != nil {
		return err
	}
	for {
		if err := elem(); err != nil {
			return err
		}
		if d.accept(")") {
			return nil
		}
		if err := d.expect(","); err != nil {
			return err
		}
	}
}

func (d *decoder) argument() (definition.ArgumentDef, error) {
	var a definition.ArgumentDef
	var err error
	if err = d.expect("(StringView("); err != nil {
		return a, err
	}
	if a.Name, err = d.quoted(); err != nil {
		return a, err
	}
	if err = d.expect(")"); err != nil {
		return a, err
	}
	if err = d.expect(","); err != nil {
		return a, err
	}
	err = d.list(func() error {
		f, err := d.function()
		if err != nil {
			return err
		}
		a.Functions = append(a.Functions, f)
		return nil
	})
	if err != nil {
		return a, err
	}
	return a, d.expect(")")
}

func (d *decoder) function() (definition.FunctionDef, error) {
	var f definition.FunctionDef
	var err error
	if err = d.expect("("); err != nil {
		return f, err
	}
	if f.Name, err = d.quoted(); err != nil {
		return f, err
	}
	if err = d.expect(","); err != nil {
		return f, err
	}
	if f.Body, err = d.quoted(); err != nil {
		return f, err
	}
	return f, d.expect(")")
}
