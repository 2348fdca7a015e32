// Package export writes contour frames to disk as PNG plots and CSV point lists.
package export

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/pthm-cable/metaball/contour"
)

// PlotOptions controls PlotContours output.
type PlotOptions struct {
	Title string
	// Width and Height of the domain in world units. When both are set the
	// axes are fixed to the domain and Y is flipped to match screen space.
	Width, Height float64
	// Image size in inches.
	WidthIn, HeightIn float64
}

var (
	closedColor = color.RGBA{R: 20, G: 20, B: 20, A: 255}
	openColor   = color.RGBA{R: 200, G: 40, B: 40, A: 255}
	sourceColor = color.RGBA{R: 40, G: 90, B: 200, A: 255}
)

// PlotContours renders polylines, and the centres of sources, to a PNG at path.
// Closed polylines are drawn black and open chains red.
func PlotContours(path string, polylines []contour.Polyline, sources []contour.Source, opts PlotOptions) error {
	if opts.WidthIn <= 0 {
		opts.WidthIn = 6
	}
	if opts.HeightIn <= 0 {
		opts.HeightIn = 6
	}
	flip := opts.Width > 0 && opts.Height > 0
	xy := func(p contour.Point) plotter.XY {
		if flip {
			return plotter.XY{X: p.X, Y: opts.Height - p.Y}
		}
		return plotter.XY{X: p.X, Y: p.Y}
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	if flip {
		p.X.Min, p.X.Max = 0, opts.Width
		p.Y.Min, p.Y.Max = 0, opts.Height
	}

	for i, pl := range polylines {
		if len(pl.Points) < 2 {
			continue
		}
		pts := make(plotter.XYs, 0, len(pl.Points)+1)
		for _, pt := range pl.Points {
			pts = append(pts, xy(pt))
		}
		if pl.Closed {
			pts = append(pts, xy(pl.Points[0]))
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("polyline %d: %w", i, err)
		}
		line.Color = closedColor
		if !pl.Closed {
			line.Color = openColor
		}
		line.Width = vg.Points(1)
		p.Add(line)
	}

	if len(sources) > 0 {
		centres := make(plotter.XYs, 0, len(sources))
		for _, s := range sources {
			centres = append(centres, xy(s.Center))
		}
		scatter, err := plotter.NewScatter(centres)
		if err != nil {
			return fmt.Errorf("sources: %w", err)
		}
		scatter.GlyphStyle.Color = sourceColor
		scatter.GlyphStyle.Shape = draw.CrossGlyph{}
		scatter.GlyphStyle.Radius = vg.Points(2)
		p.Add(scatter)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	if err := p.Save(vg.Length(opts.WidthIn)*vg.Inch, vg.Length(opts.HeightIn)*vg.Inch, path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
