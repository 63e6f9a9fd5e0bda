// Package format implements the core rendering primitives of resfold:
// turning arbitrary byte payloads into well-formed quoted OCaml string
// literals, sanitizing resource names into valid identifiers, and
// decoding literals back to bytes.
//
// The escaper guarantees round-trip safety: for any payload and any
// width, decoding the rendered literal with [Unescape] yields exactly
// the original bytes.
package format

import (
	"fmt"
	"strings"

	"github.com/resfold/resfold/pkg/doc"
)

// IsText classifies a payload. A byte is "soft" non-text when its code
// point is 128 or above; any byte below 32 other than newline,
// carriage return, or horizontal tab disqualifies text mode outright.
// A payload is text-like iff it has no disqualifying byte and soft
// bytes make up at most 10% of its length. Empty payloads are
// text-like.
func IsText(data []byte) bool {
	soft := 0
	for _, c := range data {
		switch {
		case c >= 128:
			soft++
		case c < 32 && c != '\n' && c != '\r' && c != '\t':
			return false
		}
	}
	return soft*10 <= len(data)
}

// Escape renders data as a double-quoted literal document. Text-like
// payloads use per-character escapes with width-driven backslash
// continuations; binary payloads use packed \xHH blobs. The
// classification is made once over the whole payload.
func Escape(data []byte, width int) doc.Doc {
	if len(data) == 0 {
		return doc.Text(`""`)
	}
	if IsText(data) {
		return escapeText(data)
	}
	return escapeHex(data, width)
}

// escapeHex packs the payload into hex-escape blobs sized from the
// column at which the literal starts: each escaped byte takes four
// characters, and one column each is reserved for the opening quote
// and the trailing continuation backslash, so a blob holds
// (width-col-2)/4 bytes, at least one. Blobs are joined by backslash
// continuations. The split depends only on the starting column and
// the width, never on content.
func escapeHex(data []byte, width int) doc.Doc {
	return doc.Column(func(col int) doc.Doc {
		per := (width - col - 2) / 4
		if per < 1 {
			per = 1
		}
		parts := []doc.Doc{doc.Text(`"`)}
		for i := 0; i < len(data); i += per {
			end := i + per
			if end > len(data) {
				end = len(data)
			}
			if i > 0 {
				parts = append(parts, doc.Text(`\`), doc.HardLine)
			}
			var b strings.Builder
			for _, c := range data[i:end] {
				fmt.Fprintf(&b, `\x%02X`, c)
			}
			parts = append(parts, doc.Text(b.String()))
		}
		parts = append(parts, doc.Text(`"`))
		return doc.Concat(parts...)
	})
}

func escapeText(data []byte) doc.Doc {
	parts := make([]doc.Doc, 0, len(data)+2)
	parts = append(parts, doc.Text(`"`))
	for i := 0; i < len(data); i++ {
		c := data[i]
		next := -1
		if i+1 < len(data) {
			next = int(data[i+1])
		}
		// A boundary escape followed by a space owns the space: the
		// pair is one unit, so no independently breakable space can
		// ever follow a continuation backslash.
		if next == ' ' && (c == '\n' || c == '\r') {
			esc := `\n`
			if c == '\r' {
				esc = `\r`
			}
			parts = append(parts, boundarySpace(esc))
			i++
			continue
		}
		parts = append(parts, escapeByte(c, next))
	}
	parts = append(parts, doc.Text(`"`))
	return doc.Concat(parts...)
}

// escapeByte lays out a single byte given its successor (-1 past the
// end). Every unit is independently groupable: the flat form stays on
// the current line, the broken form moves the byte onto a backslash
// continuation line.
func escapeByte(c byte, next int) doc.Doc {
	switch {
	case c == ' ':
		// A space on a continuation line must be escaped or the
		// reader would swallow it.
		return breakBefore(" ", `\ `)
	case c == '\n':
		if next < 0 {
			return doc.Text(`\n`)
		}
		return lineBoundary(`\n`)
	case c == '\r':
		if next == '\n' {
			// CRLF acts as one boundary; the newline unit carries
			// the continuation, nothing is inserted between them.
			return breakBefore(`\r`, `\r`)
		}
		return lineBoundary(`\r`)
	case c == '\t':
		return breakBefore(`\t`, `\t`)
	case c == '"':
		return breakBefore(`\"`, `\"`)
	case c == '\\':
		return breakBefore(`\\`, `\\`)
	case c < 32 || c >= 128:
		// Unreachable for classified text, kept for defensive use of
		// escapeText on arbitrary input.
		h := fmt.Sprintf(`\x%02X`, c)
		return breakBefore(h, h)
	default:
		s := string(c)
		return breakBefore(s, s)
	}
}

// breakBefore renders flat on the current line, or esc at the start of
// a fresh backslash-continuation line.
func breakBefore(flat, esc string) doc.Doc {
	return doc.Group(doc.IfFlat(
		doc.Text(flat),
		doc.Concat(doc.Text(`\`), doc.HardLine, doc.Text(esc)),
	))
}

// lineBoundary renders a line-boundary escape (\n or \r). The broken
// form moves the escape onto its own continuation line and then breaks
// again after it, with one padding space the reader swallows, so that
// content columns align and no line carries more than a single
// backslash past the width.
func lineBoundary(esc string) doc.Doc {
	return doc.Group(doc.IfFlat(
		doc.Text(esc),
		doc.Concat(doc.Text(`\`), doc.HardLine,
			doc.Text(esc+`\`), doc.HardLine, doc.Text(" ")),
	))
}

// boundarySpace renders a line-boundary escape and its following space
// byte as one unit. Broken, the escaped space leads the continuation
// line; a bare space there would be swallowed by the reader.
func boundarySpace(esc string) doc.Doc {
	return doc.Group(doc.IfFlat(
		doc.Text(esc+" "),
		doc.Concat(doc.Text(`\`), doc.HardLine,
			doc.Text(esc+`\`), doc.HardLine, doc.Text(`\ `)),
	))
}
