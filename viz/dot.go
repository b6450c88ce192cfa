// Package viz draws a plan as a filament transition graph: one node per
// filament, clustered by group, and one edge per distinct switch labelled
// with how often it happens.
package viz

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/goccy/go-graphviz"

	"github.com/katalvlaran/purgeplan/schedule"
)

// Options configures DOT output.
type Options struct {
	// Colors maps filament id → fill colour ("#RRGGBB").
	Colors map[int]string
	// Title is the graph label (optional).
	Title string
}

type transition struct {
	from, to int
	count    int
}

// transitions counts the switches of the whole print in first-seen order
// of the pair, then sorts them for stable output.
func transitions(p *schedule.Plan) []transition {
	idx := make(map[[2]int]int)
	var out []transition
	last := -1
	for _, seq := range p.Sequences {
		for _, f := range seq {
			if last >= 0 && f != last {
				k := [2]int{last, f}
				if i, ok := idx[k]; ok {
					out[i].count++
				} else {
					idx[k] = len(out)
					out = append(out, transition{from: last, to: f, count: 1})
				}
			}
			last = f
		}
	}
	slices.SortFunc(out, func(a, b transition) int {
		if c := cmp.Compare(a.from, b.from); c != 0 {
			return c
		}
		return cmp.Compare(a.to, b.to)
	})
	return out
}

// ToDOT renders p in Graphviz DOT.
func ToDOT(p *schedule.Plan, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph plan {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14];\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", opts.Title)
	}

	for g, members := range p.Groups {
		if len(members) == 0 {
			continue
		}
		fmt.Fprintf(&buf, "\n  subgraph cluster_%d {\n", g)
		fmt.Fprintf(&buf, "    label=\"group %d\";\n    style=rounded;\n", g)
		for _, f := range members {
			attrs := fmt.Sprintf("label=\"%d\"", f)
			if c, ok := opts.Colors[f]; ok {
				attrs += fmt.Sprintf(", fillcolor=%q", c)
			}
			fmt.Fprintf(&buf, "    f%d [%s];\n", f, attrs)
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for _, t := range transitions(p) {
		fmt.Fprintf(&buf, "  f%d -> f%d [label=\"%d\"];\n", t.from, t.to, t.count)
	}
	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG lays out a DOT graph with the embedded Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("viz: init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("viz: parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("viz: render: %w", err)
	}
	return buf.Bytes(), nil
}
