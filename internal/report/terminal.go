package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/qdyn/internal/store"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ccff"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ff88"))

	warnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffaa00"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 1)
)

// PlotSeries renders one observable as an ASCII line chart.
func PlotSeries(name string, values []float64, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 15
	}

	graph := asciigraph.Plot(values,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(name),
	)

	return panelStyle.Render(graph)
}

// PlotAll renders every series in sorted name order.
func PlotAll(series map[string][]float64, width, height int) string {
	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		b.WriteString(titleStyle.Render(name) + "\n")
		b.WriteString(PlotSeries(name, series[name], width, height))
		b.WriteString("\n\n")
	}
	return b.String()
}

// Summary formats a completed run's metadata and metrics.
func Summary(meta *store.RunMetadata) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(meta.ID) + "\n")

	row := func(label, value string) {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			labelStyle.Render(fmt.Sprintf("%-14s", label)),
			valueStyle.Render(value)))
	}

	row("model", meta.Model)
	row("integrator", meta.Integrator)
	row("dt", fmt.Sprintf("%g", meta.Dt))
	row("duration", fmt.Sprintf("%g", meta.Duration))
	row("steps", fmt.Sprintf("%d", meta.StepsTaken))
	row("trace drift", fmt.Sprintf("%.3e", meta.TraceDrift))

	if len(meta.Metrics) > 0 {
		names := make([]string, 0, len(meta.Metrics))
		for name := range meta.Metrics {
			names = append(names, name)
		}
		sort.Strings(names)

		b.WriteString("\n")
		for _, name := range names {
			row(name, fmt.Sprintf("%.6g", meta.Metrics[name]))
		}
	}

	if meta.TraceDrift > 1e-3 {
		b.WriteString("\n" + warnStyle.Render("warning: trace drift above 1e-3, consider a smaller dt") + "\n")
	}

	return b.String()
}
