// Package qosplot renders the position of a request in QoS space.
package qosplot

import (
	"fmt"
	"image/color"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	LossAxisMin = 0.0
	LossAxisMax = 0.01
)

type Options struct {
	Width  vg.Length
	Height vg.Length
	Format string
	Lang   language.Tag
}

func DefaultOptions() Options {
	return Options{
		Width:  5 * vg.Inch,
		Height: 4 * vg.Inch,
		Format: "svg",
		Lang:   language.English,
	}
}

// New builds the scatter. The loss axis is pinned to [0, 0.01]; the delay
// axis follows the data.
func New(delayMs, lossRate float64, lang language.Tag) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "QoS Space"
	p.X.Label.Text = "Packet Delay (ms)"
	p.Y.Label.Text = "Packet Loss Rate"
	p.Add(plotter.NewGrid())

	scatter, err := plotter.NewScatter(plotter.XYs{{X: delayMs, Y: lossRate}})
	if err != nil {
		return nil, fmt.Errorf("build scatter: %w", err)
	}
	scatter.GlyphStyle.Color = color.RGBA{R: 255, A: 255}
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	scatter.GlyphStyle.Radius = vg.Points(5)
	p.Add(scatter)
	p.Legend.Add("Current Request", scatter)
	p.Legend.Top = true

	p.Y.Min = LossAxisMin
	p.Y.Max = LossAxisMax

	printer := message.NewPrinter(lang)
	p.X.Tick.Marker = localizedTicks{printer: printer, format: "%.0f"}
	p.Y.Tick.Marker = localizedTicks{printer: printer, format: "%.3f"}
	return p, nil
}

// Render writes the plot for one request to w.
func Render(w io.Writer, delayMs, lossRate float64, opts Options) error {
	p, err := New(delayMs, lossRate, opts.Lang)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(opts.Width, opts.Height, opts.Format)
	if err != nil {
		return fmt.Errorf("render %s: %w", opts.Format, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write plot: %w", err)
	}
	return nil
}

type localizedTicks struct {
	printer *message.Printer
	format  string
}

func (t localizedTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i := range ticks {
		if ticks[i].Label != "" {
			ticks[i].Label = t.printer.Sprintf(t.format, ticks[i].Value)
		}
	}
	return ticks
}
