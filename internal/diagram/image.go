package diagram

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	steelColor   = color.RGBA{R: 139, G: 69, B: 19, A: 255}
	sideColor    = color.RGBA{R: 0, G: 100, B: 0, A: 255}
	stirrupColor = color.RGBA{R: 0, G: 0, B: 139, A: 255}
)

// ExportSection exports a cross-section of one station to an image file.
// The format follows the extension (.png, .svg or .pdf); anything else is
// saved as png.
func ExportSection(data SectionData, filename string) error {
	if data.Width <= 0 || data.Depth <= 0 {
		return fmt.Errorf("section %s has no size", data.Name)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s, %s station", data.Name, data.Station)
	p.X.Label.Text = "Width (mm)"
	p.Y.Label.Text = "Height (mm)"

	outline, err := rectangle(0, 0, data.Width, data.Depth)
	if err != nil {
		return err
	}
	outline.LineStyle.Width = vg.Points(2)
	outline.LineStyle.Color = color.Black
	p.Add(outline)

	if data.Stirrup > 0 {
		c := data.Cover + data.Stirrup/2
		link, err := rectangle(c, c, data.Width-c, data.Depth-c)
		if err != nil {
			return err
		}
		link.LineStyle.Width = vg.Points(1.5)
		link.LineStyle.Color = stirrupColor
		p.Add(link)
	}

	var flexural, side plotter.XYs
	for _, b := range data.Bars() {
		if isSideBar(data, b) {
			side = append(side, plotter.XY{X: b.X, Y: b.Y})
			continue
		}
		flexural = append(flexural, plotter.XY{X: b.X, Y: b.Y})
	}
	for _, set := range []struct {
		pts    plotter.XYs
		color  color.Color
		radius vg.Length
	}{
		{flexural, steelColor, vg.Points(5)},
		{side, sideColor, vg.Points(4)},
	} {
		if len(set.pts) == 0 {
			continue
		}
		sc, err := plotter.NewScatter(set.pts)
		if err != nil {
			return err
		}
		sc.GlyphStyle.Color = set.color
		sc.GlyphStyle.Radius = set.radius
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(sc)
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs: []plotter.XY{
			{X: data.Width + 20, Y: data.Depth - data.Cover},
			{X: data.Width + 20, Y: data.Cover},
			{X: data.Width + 20, Y: data.Depth / 2},
		},
		Labels: []string{
			"Top " + data.TopLabel,
			"Bottom " + data.BottomLabel,
			"Links " + data.LinkLabel,
		},
	})
	if err != nil {
		return err
	}
	p.Add(labels)
	p.X.Max = data.Width * 2

	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	width := 6 * vg.Inch
	height := vg.Length(6*data.Depth/data.Width) * vg.Inch / 2
	height = max(min(height, 10*vg.Inch), 4*vg.Inch)

	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}

func rectangle(x0, y0, x1, y1 float64) (*plotter.Line, error) {
	return plotter.NewLine(plotter.XYs{
		{X: x0, Y: y0},
		{X: x1, Y: y0},
		{X: x1, Y: y1},
		{X: x0, Y: y1},
		{X: x0, Y: y0},
	})
}

// isSideBar reports whether b sits between the flexural layers on a vertical face
func isSideBar(data SectionData, b Bar) bool {
	if data.SideBars == 0 {
		return false
	}
	inner := data.Cover + data.Stirrup
	lower := inner + layerSum(data.Bottom)
	upper := data.Depth - inner - layerSum(data.Top)
	return b.Y > lower && b.Y < upper
}

func layerSum(ls []Layer) float64 {
	sum := 0.0
	for _, l := range ls {
		sum += l.Diameter
	}
	return sum
}
