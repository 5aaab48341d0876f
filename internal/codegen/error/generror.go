// Package generror defines the single error type reported by the template
// registry generator, plus factory helpers for each failure kind.
package generror

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a generator failure. Every kind is fatal to the run.
type Kind int

const (
	KindUnknown Kind = iota
	KindMalformedInput
	KindMissingAttribute
	KindDuplicateIdentifier
	KindInvalidIdentifier
	KindDelimiterCollision
	KindOutputWriteFailed
)

var kindNames = map[Kind]string{
	KindUnknown:             "Unknown",
	KindMalformedInput:      "MalformedInput",
	KindMissingAttribute:    "MissingAttribute",
	KindDuplicateIdentifier: "DuplicateIdentifier",
	KindInvalidIdentifier:   "InvalidIdentifier",
	KindDelimiterCollision:  "DelimiterCollision",
	KindOutputWriteFailed:   "OutputWriteFailed",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Sentinels for errors.Is matching against a kind.
var (
	ErrMalformedInput      = &Error{Kind: KindMalformedInput, TemplateIndex: -1, ArgumentIndex: -1}
	ErrMissingAttribute    = &Error{Kind: KindMissingAttribute, TemplateIndex: -1, ArgumentIndex: -1}
	ErrDuplicateIdentifier = &Error{Kind: KindDuplicateIdentifier, TemplateIndex: -1, ArgumentIndex: -1}
	ErrInvalidIdentifier   = &Error{Kind: KindInvalidIdentifier, TemplateIndex: -1, ArgumentIndex: -1}
	ErrDelimiterCollision  = &Error{Kind: KindDelimiterCollision, TemplateIndex: -1, ArgumentIndex: -1}
	ErrOutputWriteFailed   = &Error{Kind: KindOutputWriteFailed, TemplateIndex: -1, ArgumentIndex: -1}
)

// Error is a generator diagnostic. Template and argument locations are
// optional; an index of -1 means the position is unknown.
type Error struct {
	Kind Kind
	// Template is the template id, if known.
	Template string
	// TemplateIndex is the template's position among all templates.
	TemplateIndex int
	// Argument is the argument name, if known.
	Argument string
	// ArgumentIndex is the argument's position within its template.
	ArgumentIndex int
	// Detail is a human-readable explanation of this occurrence.
	Detail string
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if seg := location("template", e.TemplateIndex, e.Template); seg != "" {
		b.WriteString(": ")
		b.WriteString(seg)
	}
	if seg := location("argument", e.ArgumentIndex, e.Argument); seg != "" {
		b.WriteString(": ")
		b.WriteString(seg)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func location(what string, idx int, name string) string {
	switch {
	case idx >= 0 && name != "":
		return fmt.Sprintf("%s #%d %q", what, idx, name)
	case idx >= 0:
		return fmt.Sprintf("%s #%d", what, idx)
	case name != "":
		return fmt.Sprintf("%s %q", what, name)
	}
	return ""
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind. Location and
// detail are not compared, so the package sentinels match any occurrence.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return KindUnknown
}

// InTemplate returns a copy of err located at the given template, when err is
// an *Error that has no template location yet. Other errors are returned as is.
func InTemplate(err error, idx int, id string) error {
	var ge *Error
	if !errors.As(err, &ge) {
		return err
	}
	if ge.TemplateIndex >= 0 || ge.Template != "" {
		return err
	}
	cp := *ge
	cp.TemplateIndex = idx
	cp.Template = id
	return &cp
}

func newError(kind Kind, detail string, err error) *Error {
	return &Error{Kind: kind, TemplateIndex: -1, ArgumentIndex: -1, Detail: detail, Err: err}
}

func MalformedInput(detail string, err error) *Error {
	return newError(KindMalformedInput, detail, err)
}

func MissingAttribute(attr string) *Error {
	return newError(KindMissingAttribute, fmt.Sprintf("missing required attribute %q", attr), nil)
}

func DuplicateIdentifier(detail string) *Error {
	return newError(KindDuplicateIdentifier, detail, nil)
}

func InvalidIdentifier(id, reason string) *Error {
	return newError(KindInvalidIdentifier, fmt.Sprintf("%q is not a valid identifier: %s", id, reason), nil)
}

func DelimiterCollision(delim string) *Error {
	return newError(KindDelimiterCollision, fmt.Sprintf("template text contains the literal block delimiter %s", delim), nil)
}

// RawTextUnsafe reports template text that a raw block cannot carry
// unchanged for a reason other than the delimiter itself.
func RawTextUnsafe(reason string) *Error {
	return newError(KindDelimiterCollision, "template text cannot be embedded in a raw block: "+reason, nil)
}

func OutputWriteFailed(path string, err error) *Error {
	return newError(KindOutputWriteFailed, fmt.Sprintf("write %s", path), err)
}
