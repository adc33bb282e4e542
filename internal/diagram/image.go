package diagram

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	blue   = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	red    = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	green  = color.RGBA{R: 44, G: 160, B: 44, A: 255}
	orange = color.RGBA{R: 255, G: 127, B: 14, A: 255}
	purple = color.RGBA{R: 148, G: 103, B: 189, A: 255}
	brown  = color.RGBA{R: 140, G: 86, B: 75, A: 255}

	palette = []color.Color{blue, red, green, orange, purple, brown}
)

const (
	engStrainLabel = "Engineering Strain εₑ"
	engStressLabel = "Engineering Stress σₑ (MPa)"
)

// ExportEngineeringDiagram exports the engineering stress-strain curve with
// the Hooke's law line, the offset line, the yield point and the UTS.
func ExportEngineeringDiagram(data CurveDiagramData, filename string) error {
	if len(data.Strain) == 0 {
		return errors.New("no data to plot")
	}

	p := newPlot("Engineering Stress-Strain Curve: "+data.title(), engStrainLabel, engStressLabel)

	curve, err := newLine(xys(data.Strain, data.Stress), blue, 2.5)
	if err != nil {
		return err
	}
	p.Add(curve)
	p.Legend.Add(data.title(), curve)

	maxStrain := floats.Max(data.Strain)

	// Hooke's law line through the origin
	if data.YoungsModulus > 0 {
		end := math.Min(0.01, maxStrain*0.3)
		hooke, err := newLine(plotter.XYs{{X: 0, Y: 0}, {X: end, Y: data.YoungsModulus * end}}, green, 1.5)
		if err != nil {
			return err
		}
		hooke.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
		p.Add(hooke)
		p.Legend.Add(fmt.Sprintf("Hooke's Law (E = %.0f GPa)", data.YoungsModulus/1000), hooke)
	}

	// Offset line, from the offset strain to a bit past the yield point
	if data.YoungsModulus > 0 {
		end := math.Min(data.YieldStrain*1.5, maxStrain*0.4)
		if end > data.Offset {
			offset, err := newLine(plotter.XYs{
				{X: data.Offset, Y: 0},
				{X: end, Y: data.YoungsModulus * (end - data.Offset)},
			}, red, 1.2)
			if err != nil {
				return err
			}
			offset.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
			p.Add(offset)
			p.Legend.Add(fmt.Sprintf("%.1f%% offset line", data.Offset*100), offset)
		}
	}

	if err := addMarker(p, data.YieldStrain, data.YieldStress, red, draw.CircleGlyph{}); err != nil {
		return err
	}
	label := fmt.Sprintf("Yield σy = %.1f MPa", data.YieldStress)
	if !data.YieldFound {
		label = "End of data (no yield found)"
	}
	if err := addLabel(p, data.YieldStrain, data.YieldStress, label); err != nil {
		return err
	}

	if err := addMarker(p, data.UTSStrain, data.UTS, color.Black, draw.BoxGlyph{}); err != nil {
		return err
	}
	if err := addLabel(p, data.UTSStrain, data.UTS, fmt.Sprintf("UTS = %.1f MPa", data.UTS)); err != nil {
		return err
	}

	return save(p, filename, 10*vg.Inch, 7*vg.Inch)
}

// ExportTrueDiagram exports the engineering and true curves up to the UTS on
// the same axes.
func ExportTrueDiagram(data CurveDiagramData, filename string) error {
	n := min(data.UTSIndex, len(data.Strain))
	if n == 0 || len(data.TrueStrain) == 0 {
		return errors.New("no pre-necking data to plot")
	}

	p := newPlot("Engineering vs True Stress-Strain: "+data.title(), "Strain ε", "Stress σ (MPa)")

	eng, err := newLine(xys(data.Strain[:n], data.Stress[:n]), blue, 2.5)
	if err != nil {
		return err
	}
	p.Add(eng)
	p.Legend.Add("Engineering (σₑ vs εₑ)", eng)

	tru, err := newLine(xys(data.TrueStrain, data.TrueStress), red, 2.5)
	if err != nil {
		return err
	}
	p.Add(tru)
	p.Legend.Add("True (σₜ vs εₜ)", tru)

	return save(p, filename, 11*vg.Inch, 7*vg.Inch)
}

// ExportPowerLawDiagram exports the true curve on log-log axes together with
// the fitted power law.
func ExportPowerLawDiagram(data CurveDiagramData, filename string) error {
	if !data.PowerLawFitted {
		return errors.New("no power-law fit to plot")
	}

	var pts plotter.XYs
	for i := range data.TrueStrain {
		if data.TrueStrain[i] > 0 && data.TrueStress[i] > 0 {
			pts = append(pts, plotter.XY{X: data.TrueStrain[i], Y: data.TrueStress[i]})
		}
	}
	if len(pts) < 2 {
		return errors.New("not enough positive samples for a log-log plot")
	}

	p := newPlot("Power-Law Representation: "+data.title(), "True Strain εₜ (log scale)", "True Stress σₜ (MPa, log scale)")
	p.X.Scale = plot.LogScale{}
	p.Y.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	scatter.GlyphStyle.Color = blue
	scatter.GlyphStyle.Radius = vg.Points(2)
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(scatter)
	p.Legend.Add("Experimental data", scatter)

	// Fitted law sampled evenly in log space
	lo, hi := math.Log(pts[0].X), math.Log(pts[0].X)
	for _, pt := range pts {
		lo = math.Min(lo, math.Log(pt.X))
		hi = math.Max(hi, math.Log(pt.X))
	}
	fit := make(plotter.XYs, 100)
	for i := range fit {
		x := math.Exp(lo + (hi-lo)*float64(i)/float64(len(fit)-1))
		fit[i] = plotter.XY{X: x, Y: data.PowerLawA * math.Pow(x, data.PowerLawN)}
	}
	line, err := newLine(fit, red, 2.5)
	if err != nil {
		return err
	}
	p.Add(line)
	p.Legend.Add(fmt.Sprintf("Power-law fit: σₜ = %.0f·εₜ^%.3f", data.PowerLawA, data.PowerLawN), line)

	return save(p, filename, 10*vg.Inch, 7*vg.Inch)
}

// ExportEnergyDiagram shades the modulus of resilience (up to yield) and the
// remaining energy to fracture under the engineering curve.
func ExportEnergyDiagram(data CurveDiagramData, filename string) error {
	if len(data.Strain) < 2 {
		return errors.New("no data to plot")
	}

	p := newPlot("Strain Energy: "+data.title(), engStrainLabel, engStressLabel)

	if data.YieldIndex > 0 {
		y := min(data.YieldIndex, len(data.Strain)-1)
		if err := addArea(p, data.Strain[:y+1], data.Stress[:y+1], withAlpha(green, 80), "Modulus of Resilience"); err != nil {
			return err
		}
		if err := addArea(p, data.Strain[y:], data.Stress[y:], withAlpha(orange, 80), "Additional energy to fracture"); err != nil {
			return err
		}
	} else {
		if err := addArea(p, data.Strain, data.Stress, withAlpha(blue, 80), "Modulus of Toughness"); err != nil {
			return err
		}
	}

	curve, err := newLine(xys(data.Strain, data.Stress), blue, 2.5)
	if err != nil {
		return err
	}
	p.Add(curve)
	p.Legend.Add(data.title(), curve)

	return save(p, filename, 10*vg.Inch, 7*vg.Inch)
}

// ExportComparisonDiagram draws several engineering curves on shared axes.
func ExportComparisonDiagram(title string, series []Series, filename string) error {
	if len(series) == 0 {
		return errors.New("no curves to compare")
	}

	p := newPlot(title, engStrainLabel, engStressLabel)
	for i, s := range series {
		line, err := newLine(xys(s.X, s.Y), palette[i%len(palette)], 2.5)
		if err != nil {
			return fmt.Errorf("%s: %w", s.Label, err)
		}
		p.Add(line)
		p.Legend.Add(s.Label, line)
	}

	return save(p, filename, 12*vg.Inch, 7*vg.Inch)
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Legend.Top = true
	p.Legend.Left = true

	grid := plotter.NewGrid()
	grid.Vertical.Color = color.Gray{Y: 220}
	grid.Horizontal.Color = color.Gray{Y: 220}
	grid.Vertical.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	grid.Horizontal.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	p.Add(grid)

	return p
}

func xys(x, y []float64) plotter.XYs {
	n := min(len(x), len(y))
	pts := make(plotter.XYs, n)
	for i := 0; i < n; i++ {
		pts[i] = plotter.XY{X: x[i], Y: y[i]}
	}
	return pts
}

func newLine(pts plotter.XYs, c color.Color, width float64) (*plotter.Line, error) {
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Width = vg.Points(width)
	line.LineStyle.Color = c
	return line, nil
}

func addMarker(p *plot.Plot, x, y float64, c color.Color, shape draw.GlyphDrawer) error {
	marker, err := plotter.NewScatter(plotter.XYs{{X: x, Y: y}})
	if err != nil {
		return err
	}
	marker.GlyphStyle.Color = c
	marker.GlyphStyle.Radius = vg.Points(5)
	marker.GlyphStyle.Shape = shape
	p.Add(marker)
	return nil
}

func addLabel(p *plot.Plot, x, y float64, text string) error {
	l, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: x, Y: y}},
		Labels: []string{"  " + text},
	})
	if err != nil {
		return err
	}
	p.Add(l)
	return nil
}

// addArea shades the region between the curve and the strain axis.
func addArea(p *plot.Plot, x, y []float64, fill color.Color, label string) error {
	pts := xys(x, y)
	if len(pts) < 2 {
		return nil
	}
	pts = append(pts,
		plotter.XY{X: pts[len(pts)-1].X, Y: 0},
		plotter.XY{X: pts[0].X, Y: 0},
	)

	area, err := plotter.NewPolygon(pts)
	if err != nil {
		return err
	}
	area.Color = fill
	area.LineStyle.Width = 0
	p.Add(area)
	p.Legend.Add(label, area)
	return nil
}

func withAlpha(c color.RGBA, a uint8) color.Color {
	// image/color wants premultiplied components
	scale := float64(a) / 255
	return color.RGBA{
		R: uint8(float64(c.R) * scale),
		G: uint8(float64(c.G) * scale),
		B: uint8(float64(c.B) * scale),
		A: a,
	}
}

// save writes the plot, picking the format from the file extension.
func save(p *plot.Plot, filename string, width, height vg.Length) error {
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".svg", ".pdf", ".jpg", ".jpeg":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}
