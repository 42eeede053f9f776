package viz

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/mwinther/hfvm/internal/diagnostics"
)

// SaveEnergyPlot writes a PNG with the energy traces over time.
func SaveEnergyPlot(series *diagnostics.Series, path string) error {
	p := plot.New()
	p.Title.Text = "Energy"
	p.X.Label.Text = "t"
	p.Y.Label.Text = "energy density"

	err := plotutil.AddLinePoints(p,
		"EM", xys(series.Time, series.EM),
		"kinetic", xys(series.Time, series.Kinetic),
		"total", xys(series.Time, series.Total),
	)
	if err != nil {
		return err
	}
	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}

// SaveFluctuationPlot writes a PNG of log10 |dn_k| over time. Zero or
// negative samples are skipped; the log of an exponentially damped or
// growing mode is a straight line whose slope is the rate.
func SaveFluctuationPlot(time, trace []float64, path string) error {
	pts := make(plotter.XYs, 0, len(trace))
	for i, v := range trace {
		if v <= 0 {
			continue
		}
		pts = append(pts, plotter.XY{X: time[i], Y: math.Log10(v)})
	}

	p := plot.New()
	p.Title.Text = "Density fluctuation"
	p.X.Label.Text = "t"
	p.Y.Label.Text = "log10 |dn_k|"

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	p.Add(line, plotter.NewGrid())
	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}

func xys(xs, ys []float64) plotter.XYs {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	pts := make(plotter.XYs, n)
	for i := 0; i < n; i++ {
		pts[i] = plotter.XY{X: xs[i], Y: ys[i]}
	}
	return pts
}
