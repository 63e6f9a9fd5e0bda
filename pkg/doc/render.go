package doc

import (
	"io"
	"strings"
)

const unbounded = 1 << 30

// Render writes d to w. No line exceeds width columns, except where a
// single [Text] fragment is itself wider than the budget. The ribbon
// ratio additionally caps the non-indentation part of each line at
// ribbon*width columns; pass 1.0 to disable the cap.
//
// Rendering is a single pass; output is written incrementally in
// document order.
func Render(w io.Writer, width int, ribbon float64, d Doc) error {
	if width < 1 {
		width = 1
	}
	rw := int(ribbon * float64(width))
	if rw < 1 || rw > width {
		rw = width
	}
	p := &printer{w: w, width: width, ribbon: rw}
	p.render(frame{indent: 0, flat: false, d: d})
	return p.err
}

type frame struct {
	indent int
	flat   bool
	d      Doc
}

type printer struct {
	w      io.Writer
	width  int
	ribbon int
	col    int
	err    error
}

func (p *printer) render(root frame) {
	stack := []frame{root}
	for len(stack) > 0 && p.err == nil {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch d := f.d.(type) {
		case textDoc:
			p.text(string(d))
		case concatDoc:
			for i := len(d) - 1; i >= 0; i-- {
				stack = append(stack, frame{f.indent, f.flat, d[i]})
			}
		case nestDoc:
			stack = append(stack, frame{f.indent + d.indent, f.flat, d.d})
		case lineDoc:
			if f.flat {
				p.text(" ")
			} else {
				p.newline(f.indent)
			}
		case hardDoc:
			p.newline(f.indent)
		case ifFlatDoc:
			if f.flat {
				stack = append(stack, frame{f.indent, true, d.then})
			} else {
				stack = append(stack, frame{f.indent, false, d.els})
			}
		case groupDoc:
			flat := f.flat || p.fits(d.d, p.budget(f.indent))
			stack = append(stack, frame{f.indent, flat, d.d})
		case columnDoc:
			stack = append(stack, frame{f.indent, f.flat, d.f(p.col)})
		}
	}
}

// budget returns the number of columns still available on the current
// line for content starting at the given indentation.
func (p *printer) budget(indent int) int {
	max := p.width
	if r := indent + p.ribbon; r < max {
		max = r
	}
	return max - p.col
}

// fits reports whether the fully flattened form of d occupies at most
// max columns. A hard line break never fits.
func (p *printer) fits(d Doc, max int) bool {
	return p.flatWidth(d, 0, max) >= 0
}

func (p *printer) flatWidth(d Doc, col, max int) int {
	if col > max {
		return -1
	}
	switch d := d.(type) {
	case textDoc:
		col += len(d)
		if col > max {
			return -1
		}
		return col
	case concatDoc:
		for _, c := range d {
			if col = p.flatWidth(c, col, max); col < 0 {
				return -1
			}
		}
		return col
	case nestDoc:
		return p.flatWidth(d.d, col, max)
	case lineDoc:
		col++
		if col > max {
			return -1
		}
		return col
	case hardDoc:
		return -1
	case ifFlatDoc:
		return p.flatWidth(d.then, col, max)
	case groupDoc:
		return p.flatWidth(d.d, col, max)
	case columnDoc:
		return p.flatWidth(d.f(p.col+col), col, max)
	}
	return col
}

func (p *printer) text(s string) {
	if s == "" || p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
	p.col += len(s)
}

func (p *printer) newline(indent int) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, "\n"+strings.Repeat(" ", indent))
	p.col = indent
}

// Width returns the flattened single-line width of d, ignoring any
// budget. Useful for callers sizing fixed-layout fragments.
func Width(d Doc) int {
	p := &printer{}
	n := p.flatWidth(d, 0, unbounded)
	if n < 0 {
		return unbounded
	}
	return n
}
