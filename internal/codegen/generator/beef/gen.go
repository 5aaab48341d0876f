// Package beef renders a template catalog as a static Beef registry class.
package beef

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/Alia5/tmplgen/internal/codegen/definition"
	generror "github.com/Alia5/tmplgen/internal/codegen/error"
)

// TextStyle selects how template text is embedded.
type TextStyle string

const (
	// TextAuto uses a raw block unless the text contains the raw delimiter.
	TextAuto TextStyle = "auto"
	// TextRaw always uses a raw block and fails on a delimiter collision.
	TextRaw TextStyle = "raw"
	// TextEscaped always uses an escaped quoted literal.
	TextEscaped TextStyle = "escaped"
)

// Options controls the shape of the generated listing.
type Options struct {
	Namespace string
	Class     string
	// TypeName is the registry entry type; Argument and Function are nested in it.
	TypeName  string
	TextStyle TextStyle
	// Source is the definition file name written into the header comment.
	Source string
}

// DefaultOptions matches the layout the binding generator expects.
func DefaultOptions() Options {
	return Options{
		Namespace: "BindingGeneratorHpp",
		Class:     "Templates",
		TypeName:  "Template",
		TextStyle: TextAuto,
		Source:    "templates.xml",
	}
}

func (o Options) validate() error {
	if err := ValidateNamespace(o.Namespace); err != nil {
		return err
	}
	if err := ValidateIdentifier(o.Class); err != nil {
		return err
	}
	if err := ValidateIdentifier(o.TypeName); err != nil {
		return err
	}
	switch o.TextStyle {
	case TextAuto, TextRaw, TextEscaped:
	default:
		return fmt.Errorf("unknown text style %q (supported: auto, raw, escaped)", o.TextStyle)
	}
	return nil
}

const registryTemplate = `// Code generated by tmplgen from {{.Source}}. DO NOT EDIT.

using System;

namespace {{.Namespace}};

static class {{.Class}}
{
{{- range .Entries}}
{{.}}
{{- end}}
}
`

var registryTmpl = template.Must(template.New("registry").Parse(registryTemplate))

// Render produces the complete registry listing for cat.
func Render(cat *definition.Catalog, opts Options) ([]byte, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	entries := make([]string, 0, len(cat.Templates))
	seen := make(map[string]int, len(cat.Templates))
	for i, t := range cat.Templates {
		if first, dup := seen[t.ID]; dup {
			e := generror.DuplicateIdentifier(fmt.Sprintf("template id already defined by template #%d", first))
			e.TemplateIndex = i
			e.Template = t.ID
			return nil, e
		}
		seen[t.ID] = i

		entry, err := renderTemplate(t, opts)
		if err != nil {
			return nil, generror.InTemplate(err, i, t.ID)
		}
		entries = append(entries, entry)
	}

	data := struct {
		Source    string
		Namespace string
		Class     string
		Entries   []string
	}{
		Source:    headerSafe(opts.Source),
		Namespace: opts.Namespace,
		Class:     opts.Class,
		Entries:   entries,
	}

	var buf bytes.Buffer
	if err := registryTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}
	return buf.Bytes(), nil
}

// referencedNames are resolved from inside the registry class, so a member
// with the same name would shadow them.
var referencedNames = map[string]struct{}{
	"StringView": {},
	"System":     {},
}

func renderTemplate(t definition.TemplateDef, opts Options) (string, error) {
	if err := ValidateIdentifier(t.ID); err != nil {
		return "", err
	}
	if t.ID == opts.Class || t.ID == opts.TypeName {
		return "", generror.InvalidIdentifier(t.ID, "identifier collides with the generated type name")
	}
	if _, ok := referencedNames[t.ID]; ok {
		return "", generror.InvalidIdentifier(t.ID, "identifier shadows a type the registry entries use")
	}

	text, err := textLiteral(t.Text, opts.TextStyle)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\tpublic static let %s = new %s(\n", t.ID, opts.TypeName)
	fmt.Fprintf(&b, "\t\ttext:%s,\n", text)
	fmt.Fprintf(&b, "\t\tid: %s,\n", QuoteString(t.ID))
	fmt.Fprintf(&b, "\t\targuments: %s\n", argumentList(t.Arguments, opts.TypeName))
	b.WriteString("\t);")
	return b.String(), nil
}

func textLiteral(text string, style TextStyle) (string, error) {
	switch style {
	case TextEscaped:
		return " " + QuoteString(text), nil
	case TextRaw:
		if strings.Contains(text, RawDelimiter) {
			return "", generror.DelimiterCollision(RawDelimiter)
		}
		if strings.ContainsRune(text, '\r') {
			return "", generror.RawTextUnsafe("it contains a carriage return")
		}
	default:
		if !CanRawBlock(text) {
			return " " + QuoteString(text), nil
		}
	}
	return "\n" + RawBlock(text), nil
}

func argumentList(args []definition.ArgumentDef, typeName string) string {
	elems := make([]string, 0, len(args))
	for _, a := range args {
		funcs := make([]string, 0, len(a.Functions))
		for _, f := range a.Functions {
			funcs = append(funcs, "("+QuoteString(f.Name)+", "+QuoteString(f.Body)+")")
		}
		fl := sizedArray(typeName+".Function", funcs)
		elems = append(elems, "(StringView("+QuoteString(a.Name)+"), "+fl+")")
	}
	return sizedArray(typeName+".Argument", elems)
}

// sizedArray renders an inferred-size array construction. An empty list has
// no element to infer a size from, so it is declared with size zero.
func sizedArray(elemType string, elems []string) string {
	if len(elems) == 0 {
		return elemType + "[0]()"
	}
	return elemType + "[?](" + strings.Join(elems, ", ") + ")"
}

func headerSafe(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}
