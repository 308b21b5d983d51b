// Package render draws the axis gutter and the plot pane with go-chart's
// low-level Renderer, so the same drawing code produces PNG and SVG output.
package render

import (
	"bytes"
	"fmt"
	"image"
	png "image/png"
	"io"
	"math"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/iafilius/ScrollBarChart/src/chartdomain"
	"github.com/iafilius/ScrollBarChart/src/layout"
)

// Format selects the output encoding.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// ParseFormat accepts "png" or "svg" in any case; empty means PNG.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return FormatPNG, nil
	case "svg":
		return FormatSVG, nil
	}
	return "", fmt.Errorf("unsupported format %q", s)
}

// Provider returns the go-chart renderer provider for f.
func (f Format) Provider() chart.RendererProvider {
	if f == FormatSVG {
		return chart.SVG
	}
	return chart.PNG
}

// ContentType is the MIME type of f.
func (f Format) ContentType() string {
	if f == FormatSVG {
		return "image/svg+xml"
	}
	return "image/png"
}

// Style is the fixed palette and typography of the chart.
type Style struct {
	Background     drawing.Color
	Bar            drawing.Color
	Grid           drawing.Color
	Separator      drawing.Color
	Text           drawing.Color
	Annotation     drawing.Color
	GridDash       []float64
	FontSize       float64
	AnnotationSize float64
	LabelLineGap   int
}

// DefaultStyle uses dashed (5,3) gridlines, a half-transparent grey separator and black annotations.
func DefaultStyle() Style {
	return Style{
		Background:     drawing.ColorWhite,
		Bar:            drawing.ColorFromHex("007aff"),
		Grid:           drawing.ColorFromHex("c7c7cc"),
		Separator:      drawing.Color{R: 128, G: 128, B: 128, A: 128},
		Text:           drawing.ColorFromHex("3c3c43"),
		Annotation:     drawing.ColorBlack,
		GridDash:       []float64{5, 3},
		FontSize:       8,
		AnnotationSize: 8,
		LabelLineGap:   12,
	}
}

// px rounds a layout coordinate to a device pixel. Both panes go through it so a
// value lands on the same row in each.
func px(v float64) int { return int(math.Round(v)) }

// prepare creates a renderer of w x h and paints the background.
func prepare(provider chart.RendererProvider, w, h int, st Style) (chart.Renderer, error) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	r, err := provider(w, h)
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}
	f, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	r.SetFont(f)
	r.SetFillColor(st.Background)
	r.SetStrokeWidth(0)
	r.MoveTo(0, 0)
	r.LineTo(w, 0)
	r.LineTo(w, h)
	r.LineTo(0, h)
	r.Close()
	r.Fill()
	r.ResetStyle()
	r.SetFont(f)
	return r, nil
}

// hline strokes a horizontal line from x0 to x1 at y.
func hline(r chart.Renderer, x0, x1, y int, col drawing.Color, dash []float64) {
	r.SetStrokeColor(col)
	r.SetStrokeWidth(1)
	r.SetStrokeDashArray(dash)
	r.MoveTo(x0, y)
	r.LineTo(x1, y)
	r.Stroke()
	r.SetStrokeDashArray(nil)
}

// RenderAxis draws the fixed gutter: tick marks and right-aligned value labels at
// every gridline plus one vertical separator at the trailing edge. It never draws bars.
func RenderAxis(l layout.Layout, st Style, provider chart.RendererProvider) (chart.Renderer, error) {
	w, h := px(l.Axis.Width), px(l.Height)
	r, err := prepare(provider, w, h, st)
	if err != nil {
		return nil, err
	}
	r.SetClassName("axis")
	tickStart := px(l.Axis.TickStartX)
	sep := px(l.Axis.SeparatorX)
	for _, g := range l.Gridlines {
		y := px(g.Y)
		hline(r, tickStart, sep, y, st.Grid, st.GridDash)

		r.SetFontSize(st.FontSize)
		r.SetFontColor(st.Text)
		box := r.MeasureText(g.Label)
		x := tickStart - 3 - box.Width()
		if x < 0 {
			x = 0
		}
		r.Text(g.Label, x, y+box.Height()/2)
	}
	r.SetStrokeColor(st.Separator)
	r.SetStrokeWidth(1)
	r.MoveTo(sep, 0)
	r.LineTo(sep, px(l.PlotBottom))
	r.Stroke()
	return r, nil
}

// RenderPlot draws the plot pane: full-width dashed gridlines, rounded bars, the
// value annotation above each bar and the category label under it. labels[i]
// belongs to l.Bars[i]; embedded line breaks stack the label vertically.
func RenderPlot(labels []string, l layout.Layout, st Style, provider chart.RendererProvider) (chart.Renderer, error) {
	w, h := px(l.ContentWidth), px(l.Height)
	r, err := prepare(provider, w, h, st)
	if err != nil {
		return nil, err
	}
	r.SetClassName("plot")
	for _, g := range l.Gridlines {
		hline(r, 0, w, px(g.Y), st.Grid, st.GridDash)
	}
	for i, b := range l.Bars {
		left, right := px(b.Left), px(b.Right)
		top, bottom := px(b.Top), px(b.Bottom)
		if bottom-top >= 1 {
			r.SetFillColor(st.Bar)
			r.SetStrokeWidth(0)
			roundedRect(r, left, top, right, bottom, px(b.Radius))
		}
		if i < len(l.Annotations) {
			r.SetFontSize(st.AnnotationSize)
			r.SetFontColor(st.Annotation)
			text := l.Annotations[i]
			box := r.MeasureText(text)
			r.Text(text, px(b.CenterX)-box.Width()/2, top-4)
		}
		if i < len(labels) {
			r.SetFontSize(st.FontSize)
			r.SetFontColor(st.Text)
			y := px(l.PlotBottom) + st.LabelLineGap + 2
			for _, line := range layout.SplitLabel(labels[i]) {
				box := r.MeasureText(line)
				r.Text(line, px(b.CenterX)-box.Width()/2, y)
				y += st.LabelLineGap
			}
		}
	}
	return r, nil
}

// roundedRect fills a rectangle whose four corners are rounded by rad.
func roundedRect(r chart.Renderer, left, top, right, bottom, rad int) {
	if rad <= 0 {
		r.MoveTo(left, top)
		r.LineTo(right, top)
		r.LineTo(right, bottom)
		r.LineTo(left, bottom)
		r.Close()
		r.Fill()
		return
	}
	r.MoveTo(left+rad, top)
	r.LineTo(right-rad, top)
	r.QuadCurveTo(right, top, right, top+rad)
	r.LineTo(right, bottom-rad)
	r.QuadCurveTo(right, bottom, right-rad, bottom)
	r.LineTo(left+rad, bottom)
	r.QuadCurveTo(left, bottom, left, bottom-rad)
	r.LineTo(left, top+rad)
	r.QuadCurveTo(left, top, left+rad, top)
	r.Close()
	r.Fill()
}

// Chart bundles the data and constants for one render of both panes.
type Chart struct {
	Points []chartdomain.DataPoint
	Config layout.Config
	Style  Style
	XTitle string
	YTitle string
}

// New returns a chart with the default style.
func New(points []chartdomain.DataPoint, cfg layout.Config) Chart {
	return Chart{Points: points, Config: cfg, Style: DefaultStyle()}
}

// Layout computes the geometry for the current points and config.
func (c Chart) Layout() layout.Layout {
	return layout.ComputeFor(c.Points, chartdomain.ValueOf, c.Config)
}

// Labels returns the category labels in point order.
func (c Chart) Labels() []string {
	out := make([]string, len(c.Points))
	for i, p := range c.Points {
		out[i] = chartdomain.LabelOf(p)
	}
	return out
}

// WriteAxis encodes the axis gutter to w.
func (c Chart) WriteAxis(f Format, w io.Writer) error {
	r, err := RenderAxis(c.Layout(), c.Style, f.Provider())
	if err != nil {
		return fmt.Errorf("render axis: %w", err)
	}
	return r.Save(w)
}

// WritePlot encodes the plot pane to w.
func (c Chart) WritePlot(f Format, w io.Writer) error {
	r, err := RenderPlot(c.Labels(), c.Layout(), c.Style, f.Provider())
	if err != nil {
		return fmt.Errorf("render plot: %w", err)
	}
	return r.Save(w)
}

// Images renders both panes as decoded raster images.
func (c Chart) Images() (axis image.Image, plot image.Image, err error) {
	l := c.Layout()
	ar, err := RenderAxis(l, c.Style, chart.PNG)
	if err != nil {
		return nil, nil, fmt.Errorf("render axis: %w", err)
	}
	if axis, err = decode(ar); err != nil {
		return nil, nil, fmt.Errorf("decode axis: %w", err)
	}
	pr, err := RenderPlot(c.Labels(), l, c.Style, chart.PNG)
	if err != nil {
		return nil, nil, fmt.Errorf("render plot: %w", err)
	}
	if plot, err = decode(pr); err != nil {
		return nil, nil, fmt.Errorf("decode plot: %w", err)
	}
	return axis, plot, nil
}

func decode(r chart.Renderer) (image.Image, error) {
	var buf bytes.Buffer
	if err := r.Save(&buf); err != nil {
		return nil, err
	}
	return png.Decode(&buf)
}
