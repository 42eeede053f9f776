package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/mwinther/hfvm/internal/diagnostics"
)

var (
	chartStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	captionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// EnergyChart renders the electromagnetic, kinetic and total energy
// traces as stacked terminal charts.
func EnergyChart(series *diagnostics.Series, width, height int) string {
	var s strings.Builder
	for _, tr := range []struct {
		name string
		data []float64
	}{
		{"EM energy", series.EM},
		{"kinetic energy", series.Kinetic},
		{"total energy", series.Total},
	} {
		if len(tr.data) < 2 {
			continue
		}
		chart := asciigraph.Plot(tr.data,
			asciigraph.Height(height), asciigraph.Width(width),
			asciigraph.Caption(tr.name))
		s.WriteString(chartStyle.Render(chart) + "\n")
	}
	return s.String()
}

// FluctuationChart renders a density-fluctuation trace on a log10
// scale, the usual way damping and growth rates are read off.
func FluctuationChart(trace []float64, width, height int) string {
	logged := make([]float64, 0, len(trace))
	for _, v := range trace {
		if v <= 0 {
			continue
		}
		logged = append(logged, math.Log10(v))
	}
	if len(logged) < 2 {
		return captionStyle.Render("(no non-zero fluctuation samples)")
	}
	chart := asciigraph.Plot(logged,
		asciigraph.Height(height), asciigraph.Width(width),
		asciigraph.Caption("log10 |dn_k|"))
	return chartStyle.Render(chart)
}
