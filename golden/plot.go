package golden

import (
	"fmt"
	"image/color"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// SavePlot renders the per-op pass/fail tallies of a run as a grouped bar
// chart and writes it to path (format from the extension, e.g. .png, .svg)
func (s *Summary) SavePlot(path string) error {
	ops := make([]string, 0, len(s.PerOp))
	for op := range s.PerOp {
		ops = append(ops, op)
	}
	sort.Strings(ops)

	passes := make(plotter.Values, len(ops))
	fails := make(plotter.Values, len(ops))
	for i, op := range ops {
		passes[i] = float64(s.PerOp[op][0])
		fails[i] = float64(s.PerOp[op][1])
	}

	p := plot.New()
	p.Title.Text = "Golden case results"
	p.Y.Label.Text = "cases"

	w := vg.Points(12)
	passBars, err := plotter.NewBarChart(passes, w)
	if err != nil {
		return fmt.Errorf("failed to build pass bars: %w", err)
	}
	passBars.Offset = -w / 2
	failBars, err := plotter.NewBarChart(fails, w)
	if err != nil {
		return fmt.Errorf("failed to build fail bars: %w", err)
	}
	failBars.Offset = w / 2
	passBars.Color = color.RGBA{G: 0x99, A: 0xFF}
	failBars.Color = color.RGBA{R: 0xC4, A: 0xFF}

	p.Add(passBars, failBars)
	p.Legend.Add("pass", passBars)
	p.Legend.Add("fail", failBars)
	p.NominalX(ops...)

	if err := p.Save(10*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save plot: %w", err)
	}
	return nil
}
