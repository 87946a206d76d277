package io

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/learnpath/pkg/engine"
	"github.com/matzehuels/learnpath/pkg/graph"
)

// DOTOptions configures [ToDOT].
type DOTOptions struct {
	// Removed draws edges removed during cycle resolution as dashed red
	// arrows that do not affect the layout.
	Removed bool
	// Advisory includes recommended and related edges as dotted arrows.
	Advisory bool
}

// ToDOT converts a result to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
//
// Each milestone becomes a cluster labeled with its index, phase and hours.
// Surviving prerequisite edges are solid; manual override edges are bold.
func ToDOT(res *engine.Result, opts DOTOptions) string {
	var buf bytes.Buffer
	buf.WriteString("digraph LearningPath {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  compound=true;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"SF Mono, Menlo, monospace\", fontsize=14];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, m := range res.Milestones {
		fmt.Fprintf(&buf, "  subgraph cluster_%d {\n", m.Index)
		fmt.Fprintf(&buf, "    label=%q;\n", clusterLabel(m.Index, string(m.Phase), m.Hours, m.OverCapacity))
		buf.WriteString("    style=\"rounded,dashed\";\n")
		if m.OverCapacity {
			buf.WriteString("    color=orange;\n")
		}
		for _, id := range m.Nodes {
			fmt.Fprintf(&buf, "    %q;\n", id)
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for _, e := range res.Edges {
		if !e.IsPrerequisite() && !opts.Advisory {
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.From, e.To, edgeAttrs(e))
	}
	if opts.Removed {
		for _, rm := range res.Report.Removed {
			fmt.Fprintf(&buf, "  %q -> %q [style=dashed, color=red, constraint=false];\n", rm.Edge.From, rm.Edge.To)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func clusterLabel(index int, phase string, hours float64, over bool) string {
	label := fmt.Sprintf("Milestone %d · %s · %sh", index, phase, strconv.FormatFloat(hours, 'f', -1, 64))
	if over {
		label += " (over capacity)"
	}
	return label
}

func edgeAttrs(e graph.Edge) string {
	switch {
	case !e.IsPrerequisite():
		return fmt.Sprintf("style=dotted, color=grey, label=%q", e.Type.String())
	case e.IsManual():
		return "penwidth=2, color=blue"
	}
	return fmt.Sprintf("tooltip=%q", fmt.Sprintf("%s %.2f", e.Strength, e.Confidence))
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
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

// normalizeViewBox rewrites the root tag so the SVG scales to its container.
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

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
