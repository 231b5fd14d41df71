// Package report renders run output: the four-panel observable figure,
// terminal charts, the braille phase portrait and the styled run
// summary.
package report

import (
	"fmt"
	"image/color"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

var panelColors = []color.RGBA{
	{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
}

func makePanel(title string, times, values []float64, col color.RGBA) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "t"

	pts := make(plotter.XYs, len(times))
	for i := range times {
		pts[i].X = times[i]
		pts[i].Y = values[i]
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("panel %s: %w", title, err)
	}
	line.Color = col
	line.Width = vg.Points(1.5)
	p.Add(line)

	return p, nil
}

// RenderFigure draws the observable series as a 2x2 grid on one PNG
// canvas. names picks the four panels in reading order.
func RenderFigure(path string, times []float64, series map[string][]float64, names []string, widthIn, heightIn float64) error {
	if len(names) != 4 {
		return fmt.Errorf("report: figure needs 4 panels, got %d", len(names))
	}
	if widthIn <= 0 {
		widthIn = 10
	}
	if heightIn <= 0 {
		heightIn = 8
	}

	plots := make([][]*plot.Plot, 2)
	for r := 0; r < 2; r++ {
		plots[r] = make([]*plot.Plot, 2)
		for c := 0; c < 2; c++ {
			name := names[r*2+c]
			values, ok := series[name]
			if !ok {
				return fmt.Errorf("report: series %s missing", name)
			}
			p, err := makePanel(name, times, values, panelColors[(r*2+c)%len(panelColors)])
			if err != nil {
				return err
			}
			plots[r][c] = p
		}
	}

	img := vgimg.New(vg.Length(widthIn)*vg.Inch, vg.Length(heightIn)*vg.Inch)
	dc := draw.New(img)

	tiles := draw.Tiles{
		Rows: 2, Cols: 2,
		PadX: vg.Points(12), PadY: vg.Points(12),
		PadTop: vg.Points(6), PadBottom: vg.Points(6),
		PadLeft: vg.Points(6), PadRight: vg.Points(6),
	}

	canvases := plot.Align(plots, tiles, dc)
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			plots[r][c].Draw(canvases[r][c])
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return err
	}

	return nil
}

// SavePanel renders a single observable to its own image; the file
// extension picks the format (png, svg, pdf).
func SavePanel(path, name string, times, values []float64) error {
	p, err := makePanel(name, times, values, panelColors[0])
	if err != nil {
		return err
	}
	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}
