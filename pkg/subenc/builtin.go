package subenc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/resfold/resfold/pkg/doc"
	"github.com/resfold/resfold/pkg/format"
)

// catalog holds the built-in sub-encodings, selectable by name.
var catalog = map[string]SubEncoding{
	"raw":   Raw{},
	"lines": Lines{},
	"int":   Int{},
}

// Raw is the identity sub-encoding: the payload is kept as bytes and
// rendered as an escaped string literal. It is also the implicit
// fallback for unresolved leaves.
type Raw struct{}

func (Raw) Name() string     { return "raw" }
func (Raw) Tag() string      { return "Raw" }
func (Raw) TypeName() string { return "string" }

func (Raw) Parse(data []byte) (any, error) { return data, nil }

func (Raw) Render(v any, width int) doc.Doc {
	return format.Escape(v.([]byte), width)
}

// Lines splits a text payload into its lines and renders them as a
// string list. Parsing fails on payloads that are not text-like.
type Lines struct{}

func (Lines) Name() string     { return "lines" }
func (Lines) Tag() string      { return "Lines" }
func (Lines) TypeName() string { return "string list" }

func (Lines) Parse(data []byte) (any, error) {
	if !format.IsText(data) {
		return nil, fmt.Errorf("payload is not text")
	}
	s := strings.TrimSuffix(string(data), "\n")
	if s == "" {
		return []string{}, nil
	}
	return strings.Split(s, "\n"), nil
}

func (Lines) Render(v any, width int) doc.Doc {
	lines := v.([]string)
	if len(lines) == 0 {
		return doc.Text("[]")
	}
	items := make([]doc.Doc, len(lines))
	for i, l := range lines {
		items[i] = format.Escape([]byte(l), width)
	}
	return doc.Group(doc.Nest(2, doc.Concat(
		doc.Text("[ "),
		doc.Join(doc.Concat(doc.Text(" ;"), doc.Line), items...),
		doc.Text(" ]"),
	)))
}

// Int parses the payload as a single decimal integer, ignoring
// surrounding whitespace.
type Int struct{}

func (Int) Name() string     { return "int" }
func (Int) Tag() string      { return "Int" }
func (Int) TypeName() string { return "int" }

func (Int) Parse(data []byte) (any, error) {
	n, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, fmt.Errorf("parse int: %w", err)
	}
	return n, nil
}

func (Int) Render(v any, _ int) doc.Doc {
	n := v.(int)
	if n < 0 {
		// Negative literals need parentheses in constructor position.
		return doc.Text("(" + strconv.Itoa(n) + ")")
	}
	return doc.Text(strconv.Itoa(n))
}
