// Package charts renders the campaign figures with gonum/plot. Each figure
// tolerates empty or partially populated tables by skipping what cannot be
// drawn; a sweep where every run failed produces no chart, not an error.
package charts

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"daosweep/dataset"
)

var scenarioColors = map[string]color.RGBA{
	dataset.ScenarioRPL:      {R: 31, G: 119, B: 180, A: 255},
	dataset.ScenarioInsecRPL: {R: 255, G: 127, B: 14, A: 255},
	dataset.ScenarioSecRPL:   {R: 44, G: 160, B: 44, A: 255},
}

var scenarioShapes = map[string]draw.GlyphDrawer{
	dataset.ScenarioRPL:      draw.CircleGlyph{},
	dataset.ScenarioInsecRPL: draw.BoxGlyph{},
	dataset.ScenarioSecRPL:   draw.PyramidGlyph{},
}

var scenarioOrder = []string{dataset.ScenarioRPL, dataset.ScenarioInsecRPL, dataset.ScenarioSecRPL}

// Render writes every figure that has data into dir.
func Render(dir string, baseline, rates, thresholds *dataset.Table, logger *logrus.Logger) error {
	figures := []struct {
		name   string
		render func() error
	}{
		{"dao_overhead.png", func() error {
			return rateFigure(dir, "dao_overhead.png", rates,
				"DAO Control Traffic vs Attack Frequency", "DAO Packets Forwarded",
				func(r dataset.Record) float64 { return float64(r.Result.ControlRx) }, nil)
		}},
		{"pdr_vs_attack.png", func() error {
			yRange := &axisRange{min: 0.7, max: 1.0}
			return rateFigure(dir, "pdr_vs_attack.png", rates,
				"PDR under Increasing Attack Frequency", "Packet Delivery Ratio",
				func(r dataset.Record) float64 { return r.Result.PDR }, yRange)
		}},
		{"delay_vs_attack.png", func() error {
			return rateFigure(dir, "delay_vs_attack.png", rates,
				"Average Latency vs DAO Attack Frequency", "End-to-End Delay (ms)",
				func(r dataset.Record) float64 { return r.Result.DelayMs }, nil)
		}},
		{"pdr_vs_threshold.png", func() error {
			return thresholdFigure(dir, thresholds, baseline)
		}},
		{"comparison_overview.png", func() error {
			return overviewFigure(dir, baseline)
		}},
	}

	for _, fig := range figures {
		if err := fig.render(); err != nil {
			return errors.Wrapf(err, "figure %s", fig.name)
		}
		logger.WithField("figure", fig.name).Debug("figure pass complete")
	}

	return nil
}

type axisRange struct {
	min, max float64
}

// rateFigure draws one metric against the attack interval (1/pps), one
// line per scenario. Scenarios without records are left off the figure.
func rateFigure(dir, name string, rates *dataset.Table, title, yLabel string, metric func(dataset.Record) float64, yRange *axisRange) error {
	if rates == nil || rates.Empty() {
		return nil
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Attack Interval (s)"
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())

	drawn := false
	for _, label := range scenarioOrder {
		records := sortedByRate(rates.Scenario(label))
		if len(records) == 0 {
			continue
		}

		pts := make(plotter.XYs, len(records))
		for i, r := range records {
			pts[i].X = 1.0 / float64(*r.AttackPPS)
			pts[i].Y = metric(r)
		}

		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return err
		}
		line.Color = scenarioColors[label]
		line.Width = vg.Points(2)
		points.Shape = scenarioShapes[label]
		points.Color = scenarioColors[label]
		points.Radius = vg.Points(3)

		p.Add(line, points)
		p.Legend.Add(label, line, points)
		drawn = true
	}

	if !drawn {
		return nil
	}

	if yRange != nil {
		p.Y.Min = yRange.min
		p.Y.Max = yRange.max
	}
	p.Legend.Top = true

	return p.Save(8*vg.Inch, 5*vg.Inch, filepath.Join(dir, name))
}

// thresholdFigure draws SecRPL PDR against the mitigation threshold, with
// dashed reference lines at the baseline RPL and InsecRPL PDR levels.
func thresholdFigure(dir string, thresholds, baseline *dataset.Table) error {
	if thresholds == nil || thresholds.Empty() {
		return nil
	}

	records := sortedByThreshold(thresholds.Scenario(dataset.ScenarioSecRPL))
	if len(records) == 0 {
		return nil
	}

	p := plot.New()
	p.Title.Text = "Impact of DAO Threshold on PDR"
	p.X.Label.Text = "DAO Threshold Limit"
	p.Y.Label.Text = "Packet Delivery Ratio"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(records))
	for i, r := range records {
		pts[i].X = float64(*r.Threshold)
		pts[i].Y = r.Result.PDR
	}

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return err
	}
	line.Color = scenarioColors[dataset.ScenarioSecRPL]
	line.Width = vg.Points(2)
	points.Shape = scenarioShapes[dataset.ScenarioSecRPL]
	points.Color = scenarioColors[dataset.ScenarioSecRPL]
	points.Radius = vg.Points(3)
	p.Add(line, points)
	p.Legend.Add(dataset.ScenarioSecRPL, line, points)

	xMin := pts[0].X
	xMax := pts[len(pts)-1].X

	if baseline != nil {
		for _, label := range []string{dataset.ScenarioRPL, dataset.ScenarioInsecRPL} {
			ref, ok := baseline.First(label)
			if !ok {
				continue
			}
			refLine, err := plotter.NewLine(plotter.XYs{
				{X: xMin, Y: ref.Result.PDR},
				{X: xMax, Y: ref.Result.PDR},
			})
			if err != nil {
				return err
			}
			refLine.Color = scenarioColors[label]
			refLine.Width = vg.Points(1.5)
			refLine.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
			p.Add(refLine)
			p.Legend.Add(label+" Base", refLine)
		}
	}

	p.Legend.Top = true

	return p.Save(8*vg.Inch, 5*vg.Inch, filepath.Join(dir, "pdr_vs_threshold.png"))
}

// overviewFigure tiles three bar panels (PDR, delay, control overhead) for
// the baseline scenarios into one image.
func overviewFigure(dir string, baseline *dataset.Table) error {
	if baseline == nil || baseline.Empty() {
		return nil
	}

	labels := make([]string, baseline.Len())
	pdr := make(plotter.Values, baseline.Len())
	delay := make(plotter.Values, baseline.Len())
	ctrl := make(plotter.Values, baseline.Len())
	for i, r := range baseline.Records {
		labels[i] = r.Scenario
		pdr[i] = r.Result.PDR
		delay[i] = r.Result.DelayMs
		ctrl[i] = float64(r.Result.ControlRx)
	}

	pdrPanel, err := barPanel("Packet Delivery Ratio", "PDR", labels, pdr)
	if err != nil {
		return err
	}
	pdrPanel.Y.Min = 0
	pdrPanel.Y.Max = 1.05

	delayPanel, err := barPanel("End-to-End Delay", "Delay (ms)", labels, delay)
	if err != nil {
		return err
	}

	ctrlPanel, err := barPanel("Control Traffic Overhead", "Control Packets", labels, ctrl)
	if err != nil {
		return err
	}

	img := vgimg.NewWith(vgimg.UseWH(15*vg.Inch, 5*vg.Inch), vgimg.UseDPI(96))
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: 1,
		Cols: 3,
		PadX: vg.Millimeter * 4,
		PadY: vg.Millimeter * 2,
	}

	plots := [][]*plot.Plot{{pdrPanel, delayPanel, ctrlPanel}}
	canvases := plot.Align(plots, tiles, dc)
	for j := range plots[0] {
		plots[0][j].Draw(canvases[0][j])
	}

	out, err := os.Create(filepath.Join(dir, "comparison_overview.png"))
	if err != nil {
		return err
	}
	defer out.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(out); err != nil {
		return err
	}

	return nil
}

func barPanel(title, yLabel string, labels []string, values plotter.Values) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())

	bars, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return nil, err
	}
	bars.Color = color.RGBA{R: 100, G: 140, B: 200, A: 255}
	bars.LineStyle.Width = vg.Points(1)

	p.Add(bars)
	p.NominalX(labels...)

	annotations, err := barAnnotations(values)
	if err != nil {
		return nil, err
	}
	p.Add(annotations)

	return p, nil
}

// barAnnotations places each bar's value just above it, the way the
// published figures label their bars.
func barAnnotations(values plotter.Values) (*plotter.Labels, error) {
	xys := make(plotter.XYs, len(values))
	texts := make([]string, len(values))
	for i, v := range values {
		xys[i] = plotter.XY{X: float64(i), Y: v}
		if v < 10 {
			texts[i] = fmt.Sprintf("%.3f", v)
		} else {
			texts[i] = fmt.Sprintf("%.0f", v)
		}
	}
	return plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
}

// Sorting is this consumer's responsibility; the sweep tables arrive in
// generation order.
func sortedByRate(records []dataset.Record) []dataset.Record {
	out := make([]dataset.Record, 0, len(records))
	for _, r := range records {
		if r.AttackPPS != nil {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return *out[i].AttackPPS < *out[j].AttackPPS })
	return out
}

func sortedByThreshold(records []dataset.Record) []dataset.Record {
	out := make([]dataset.Record, 0, len(records))
	for _, r := range records {
		if r.Threshold != nil {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return *out[i].Threshold < *out[j].Threshold })
	return out
}
