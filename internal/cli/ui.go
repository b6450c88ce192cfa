package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/katalvlaran/purgeplan/schedule"
)

var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorWhite = lipgloss.Color("255")
	colorDim   = lipgloss.Color("240")
)

var (
	StyleTitle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleDim    = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue  = lipgloss.NewStyle().Foreground(colorWhite)
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleGroup       = [2]lipgloss.Style{
		lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75")),
		lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220")),
	}
)

const (
	iconSuccess = "✓"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// maxLayersShown bounds the per-layer listing of printPlan.
const maxLayersShown = 20

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printGroups(w io.Writer, g0, g1 []int) {
	fmt.Fprintf(w, "%s %v\n", styleGroup[0].Render("group 0"), g0)
	fmt.Fprintf(w, "%s %v\n", styleGroup[1].Render("group 1"), g1)
}

// printPlan writes a human summary of p.
func printPlan(w io.Writer, p *schedule.Plan, cached bool) {
	state := iconFresh
	if cached {
		state = iconCached
	}
	fmt.Fprintln(w, StyleTitle.Render("Plan")+" "+StyleDim.Render("("+state+")"))
	printGroups(w, p.Groups[0], p.Groups[1])
	fmt.Fprintf(w, "%s %s  %s %s  %s %s\n",
		StyleDim.Render("cost"), StyleNumber.Render(fmt.Sprintf("%g", p.Cost)),
		StyleDim.Render("changes"), StyleNumber.Render(fmt.Sprint(p.Changes())),
		StyleDim.Render("method"), StyleValue.Render(string(p.Method)))

	group := p.Assignment()
	for i, seq := range p.Sequences {
		if i == maxLayersShown {
			fmt.Fprintln(w, StyleDim.Render(fmt.Sprintf("  … %d more layers", len(p.Sequences)-i)))
			break
		}
		parts := make([]string, len(seq))
		for k, f := range seq {
			parts[k] = styleGroup[group[f]].Render(fmt.Sprint(f))
		}
		fmt.Fprintf(w, "  %s %s\n", StyleDim.Render(fmt.Sprintf("L%-4d", i+1)), strings.Join(parts, " → "))
	}
}
