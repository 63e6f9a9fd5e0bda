// Package treeviz renders a resource tree as a Graphviz diagram, for
// documenting the shape of an embedded resource set. Directories are
// drawn as boxes, leaves as notes annotated with their payload size,
// and absorbed scan errors as dashed nodes.
package treeviz

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/resfold/resfold/pkg/resource"
)

// ToDOT converts a resource tree to Graphviz DOT format. The
// resulting string can be rendered with [RenderSVG].
func ToDOT(tree resource.Tree) string {
	var buf bytes.Buffer
	buf.WriteString("digraph resources {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12];\n")
	buf.WriteString("\n")

	id := 0
	writeNodes(&buf, tree, "", &id)

	buf.WriteString("}\n")
	return buf.String()
}

func writeNodes(buf *bytes.Buffer, nodes []resource.Node, parent string, id *int) {
	for _, n := range nodes {
		*id++
		nodeID := fmt.Sprintf("n%d", *id)

		switch n := n.(type) {
		case *resource.Dir:
			fmt.Fprintf(buf, "  %s [label=%q];\n", nodeID, n.Name+"/")
			if parent != "" {
				fmt.Fprintf(buf, "  %s -> %s;\n", parent, nodeID)
			}
			writeNodes(buf, n.Children, nodeID, id)
		case *resource.File:
			label := fmt.Sprintf("%s\n%d bytes", n.Name, len(n.Data))
			fmt.Fprintf(buf, "  %s [shape=note, label=%q];\n", nodeID, label)
			if parent != "" {
				fmt.Fprintf(buf, "  %s -> %s;\n", parent, nodeID)
			}
		case *resource.Error:
			fmt.Fprintf(buf, "  %s [style=\"rounded,filled,dashed\", fillcolor=lightgrey, label=%q];\n",
				nodeID, n.Message)
			if parent != "" {
				fmt.Fprintf(buf, "  %s -> %s [style=dashed];\n", parent, nodeID)
			}
		}
	}
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
