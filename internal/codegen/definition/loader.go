// Package definition loads template catalogs from XML definition files.
//
// A definition file has one root element whose `template` children each carry
// an `id` attribute, a text payload and `argument` children. Every element
// child of an argument that is not itself an `argument` is a function
// definition keyed by its tag name.
//
// Only direct children of the root are templates. A `template` element nested
// any deeper, for example inside a grouping element, is not part of the
// catalog and is skipped without an error.
package definition

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	generror "github.com/Alia5/tmplgen/internal/codegen/error"
)

const (
	tagTemplate = "template"
	tagArgument = "argument"
	attrID      = "id"
	attrName    = "name"
)

// element is a parsed XML element. text holds the character data that
// appears before the first child element.
type element struct {
	name     string
	attrs    []xml.Attr
	text     strings.Builder
	children []*element
}

func (e *element) attr(name string) string {
	for _, a := range e.attrs {
		if a.Name.Space == "" && a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// LoadFile opens path and loads the catalog it defines.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open definition file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load parses a definition document from r.
func Load(r io.Reader) (*Catalog, error) {
	root, err := parseTree(r)
	if err != nil {
		return nil, err
	}

	var nodes []*element
	if root.name == tagTemplate {
		nodes = []*element{root}
	} else {
		for _, c := range root.children {
			if c.name == tagTemplate {
				nodes = append(nodes, c)
			}
		}
	}

	cat := &Catalog{Templates: make([]TemplateDef, 0, len(nodes))}
	seen := make(map[string]int, len(nodes))
	for i, n := range nodes {
		t, err := buildTemplate(n, i)
		if err != nil {
			return nil, err
		}
		if first, dup := seen[t.ID]; dup {
			e := generror.DuplicateIdentifier(fmt.Sprintf("template id already defined by template #%d", first))
			e.TemplateIndex = i
			e.Template = t.ID
			return nil, e
		}
		seen[t.ID] = i
		cat.Templates = append(cat.Templates, t)
	}
	return cat, nil
}

func buildTemplate(n *element, idx int) (TemplateDef, error) {
	id := n.attr(attrID)
	if id == "" {
		e := generror.MissingAttribute(attrID)
		e.TemplateIndex = idx
		return TemplateDef{}, e
	}

	t := TemplateDef{ID: id, Text: n.text.String()}
	seen := make(map[string]int)
	argIdx := 0
	for _, c := range n.children {
		if c.name != tagArgument {
			continue
		}
		arg, err := buildArgument(c)
		if err != nil {
			var ge *generror.Error
			if errors.As(err, &ge) {
				ge.TemplateIndex = idx
				ge.Template = id
				ge.ArgumentIndex = argIdx
			}
			return TemplateDef{}, err
		}
		if first, dup := seen[arg.Name]; dup {
			e := generror.DuplicateIdentifier(fmt.Sprintf("argument name already defined by argument #%d", first))
			e.TemplateIndex = idx
			e.Template = id
			e.ArgumentIndex = argIdx
			e.Argument = arg.Name
			return TemplateDef{}, e
		}
		seen[arg.Name] = argIdx
		t.Arguments = append(t.Arguments, arg)
		argIdx++
	}
	return t, nil
}

func buildArgument(n *element) (ArgumentDef, error) {
	name := n.attr(attrName)
	if name == "" {
		return ArgumentDef{}, generror.MissingAttribute(attrName)
	}

	arg := ArgumentDef{Name: name}
	for _, c := range n.children {
		if c.name == tagArgument {
			continue
		}
		if len(c.children) > 0 {
			e := generror.MalformedInput(fmt.Sprintf("function <%s> must not contain child elements", c.name), nil)
			e.Argument = name
			return ArgumentDef{}, e
		}
		arg.Functions = append(arg.Functions, FunctionDef{Name: c.name, Body: c.text.String()})
	}
	return arg, nil
}

// parseTree reads the whole document and returns its root element.
func parseTree(r io.Reader) (*element, error) {
	dec := xml.NewDecoder(r)

	var root *element
	var stack []*element
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, generror.MalformedInput("parse definition", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &element{name: t.Name.Local, attrs: append([]xml.Attr(nil), t.Attr...)}
			if len(stack) == 0 {
				if root != nil {
					return nil, generror.MalformedInput(fmt.Sprintf("unexpected second root element <%s>", el.name), nil)
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				if strings.TrimSpace(string(t)) != "" {
					return nil, generror.MalformedInput("character data outside the root element", nil)
				}
				continue
			}
			top := stack[len(stack)-1]
			if len(top.children) == 0 {
				top.text.Write(t)
			}
		}
	}

	if root == nil {
		return nil, generror.MalformedInput("document has no root element", nil)
	}
	return root, nil
}
