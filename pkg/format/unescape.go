package format

import (
	"fmt"
	"strings"
)

// Unescape decodes a quoted literal produced by [Escape] back to its
// original bytes. It implements the documented reader grammar: the
// simple escapes \n, \r, \t, \", \\ and "\ " (escaped space), two-digit
// hex escapes \xHH, and backslash-newline continuations, which skip
// the newline and every following space or tab.
func Unescape(s string) ([]byte, error) {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return nil, fmt.Errorf("literal must be double-quoted")
	}
	s = s[1 : len(s)-1]

	var out []byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			out = append(out, c)
			continue
		}
		i++
		if i >= len(s) {
			return nil, fmt.Errorf("dangling backslash at end of literal")
		}
		switch s[i] {
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		case '"':
			out = append(out, '"')
		case '\\':
			out = append(out, '\\')
		case ' ':
			out = append(out, ' ')
		case 'x':
			if i+2 >= len(s) {
				return nil, fmt.Errorf("truncated hex escape at offset %d", i)
			}
			hi, err1 := hexVal(s[i+1])
			lo, err2 := hexVal(s[i+2])
			if err1 != nil || err2 != nil {
				return nil, fmt.Errorf("invalid hex escape %q", s[i-1:i+3])
			}
			out = append(out, hi<<4|lo)
			i += 2
		case '\n':
			// Line continuation: the newline and any indentation or
			// padding on the next line carry no data.
			for i+1 < len(s) && (s[i+1] == ' ' || s[i+1] == '\t') {
				i++
			}
		default:
			return nil, fmt.Errorf("unknown escape %q", s[i-1:i+1])
		}
	}
	return out, nil
}

func hexVal(c byte) (byte, error) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', nil
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, nil
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, nil
	}
	return 0, fmt.Errorf("not a hex digit: %q", c)
}

// UnescapeAll decodes every double-quoted literal found in generated
// source text and concatenates the results. It is a test and preview
// helper, not a full parser: quotes inside comments are not handled.
func UnescapeAll(src string) ([]byte, error) {
	var out []byte
	for {
		start := strings.IndexByte(src, '"')
		if start < 0 {
			return out, nil
		}
		end := start + 1
		for end < len(src) {
			if src[end] == '\\' {
				end += 2
				continue
			}
			if src[end] == '"' {
				break
			}
			end++
		}
		if end >= len(src) {
			return nil, fmt.Errorf("unterminated literal")
		}
		b, err := Unescape(src[start : end+1])
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
		src = src[end+1:]
	}
}
