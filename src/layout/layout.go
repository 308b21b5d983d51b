// Package layout computes the geometry of the two chart panes: a fixed axis
// gutter and a plot region that either fits the viewport or scrolls horizontally.
//
// All coordinates are layout units (pixels at 1x) measured from the top-left of
// the respective pane. Both panes share Layout.YFor, so a gridline drawn in the
// gutter and a bar top drawn in the plot land on the same row for a given value.
package layout

import (
	"math"
	"strings"

	"github.com/iafilius/ScrollBarChart/src/chartdomain"
)

// Config holds the caller-supplied constants. Nothing here is derived from data.
type Config struct {
	BarWidth       float64 // width of a single bar
	BarPitch       float64 // horizontal space per bar once the plot scrolls
	VisibleLimit   int     // above this many points the plot scrolls
	RowHeight      float64 // height of the whole chart region
	AxisWidth      float64 // fixed width of the axis gutter
	CornerRadius   float64 // bar corner radius, clamped to half the bar width
	ViewportWidth  float64 // visible width of the plot pane
	AnnotationBand float64 // space above the plot band for value annotations
	LabelBand      float64 // space below the plot band for category labels
	TickLength     float64 // length of the tick marks at the gutter's trailing edge
}

// DefaultConfig returns the stock chart dimensions: 20pt bars on a 55pt pitch in a 260pt row.
func DefaultConfig() Config {
	return Config{
		BarWidth:       20,
		BarPitch:       55,
		VisibleLimit:   6,
		RowHeight:      260,
		AxisWidth:      56,
		CornerRadius:   20,
		ViewportWidth:  390,
		AnnotationBand: 20,
		LabelBand:      36,
		TickLength:     4,
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.BarWidth <= 0 {
		c.BarWidth = d.BarWidth
	}
	if c.BarPitch <= 0 {
		c.BarPitch = d.BarPitch
	}
	if c.VisibleLimit < 0 {
		c.VisibleLimit = 0
	}
	if c.RowHeight <= 0 {
		c.RowHeight = d.RowHeight
	}
	if c.AxisWidth <= 0 {
		c.AxisWidth = d.AxisWidth
	}
	if c.CornerRadius < 0 {
		c.CornerRadius = 0
	}
	if c.ViewportWidth <= 0 {
		c.ViewportWidth = d.ViewportWidth
	}
	if c.AnnotationBand <= 0 {
		c.AnnotationBand = d.AnnotationBand
	}
	if c.LabelBand <= 0 {
		c.LabelBand = d.LabelBand
	}
	if c.TickLength <= 0 {
		c.TickLength = d.TickLength
	}
	return c
}

// BarSlot is the horizontal slot and vertical extent of one bar in the plot pane.
type BarSlot struct {
	Index   int
	CenterX float64
	Left    float64
	Right   float64
	Top     float64
	Bottom  float64
	Radius  float64
}

// Height of the drawn bar.
func (b BarSlot) Height() float64 { return b.Bottom - b.Top }

// Gridline is one tick of the value axis.
type Gridline struct {
	Value float64
	Y     float64
	Label string
}

// AxisPane describes the fixed gutter.
type AxisPane struct {
	Width      float64
	SeparatorX float64
	TickStartX float64
}

// Layout is the full geometry of one render.
type Layout struct {
	Domain       chartdomain.AxisDomain
	Config       Config
	Count        int
	Scrollable   bool
	ContentWidth float64
	Height       float64
	PlotTop      float64
	PlotBottom   float64
	Bars         []BarSlot
	Gridlines    []Gridline
	Axis         AxisPane
	Annotations  []string
}

// PlotHeight is the height of the band bars grow in.
func (l Layout) PlotHeight() float64 { return l.PlotBottom - l.PlotTop }

// YFor maps a value to a y offset. The axis gutter and the plot pane both use it.
func (l Layout) YFor(v float64) float64 {
	return l.PlotTop + l.Domain.Scale(v, l.PlotHeight())
}

// Scrollable reports whether n points overflow the visible limit.
func Scrollable(n, visibleLimit int) bool { return n > visibleLimit }

// Scrolls reports whether n points scroll under c: either they exceed the
// visible limit or their bars alone are wider than the viewport.
func (c Config) Scrolls(n int) bool {
	c = c.withDefaults()
	return Scrollable(n, c.VisibleLimit) || float64(n)*c.BarWidth > c.ViewportWidth
}

// ContentWidth returns the plot pane width for n points: a fixed pitch per bar when
// scrolling, otherwise exactly the viewport.
func ContentWidth(n int, cfg Config) float64 {
	cfg = cfg.withDefaults()
	if cfg.Scrolls(n) {
		return float64(n) * cfg.BarPitch
	}
	return cfg.ViewportWidth
}

// Compute lays out both panes for the given values and shared domain.
func Compute(values []float64, domain chartdomain.AxisDomain, cfg Config) Layout {
	cfg = cfg.withDefaults()
	n := len(values)
	l := Layout{
		Domain:       domain,
		Config:       cfg,
		Count:        n,
		Scrollable:   cfg.Scrolls(n),
		ContentWidth: ContentWidth(n, cfg),
		Height:       cfg.RowHeight,
		PlotTop:      cfg.AnnotationBand,
		PlotBottom:   cfg.RowHeight - cfg.LabelBand,
	}
	if l.PlotBottom < l.PlotTop {
		l.PlotBottom = l.PlotTop
	}
	l.Axis = AxisPane{
		Width:      cfg.AxisWidth,
		SeparatorX: cfg.AxisWidth - 1,
		TickStartX: cfg.AxisWidth - 1 - cfg.TickLength,
	}
	for _, v := range domain.Ticks() {
		l.Gridlines = append(l.Gridlines, Gridline{Value: v, Y: l.YFor(v), Label: chartdomain.FormatValue(v)})
	}
	radius := math.Min(cfg.CornerRadius, cfg.BarWidth/2)
	if n > 0 {
		slot := l.ContentWidth / float64(n)
		l.Bars = make([]BarSlot, n)
		for i, v := range values {
			cx := slot * (float64(i) + 0.5)
			b := BarSlot{
				Index:   i,
				CenterX: cx,
				Left:    cx - cfg.BarWidth/2,
				Right:   cx + cfg.BarWidth/2,
				Top:     l.YFor(v),
				Bottom:  l.PlotBottom,
			}
			b.Radius = math.Min(radius, b.Height()/2)
			l.Bars[i] = b
		}
	}
	l.Annotations = Annotations(values)
	return l
}

// ComputeFor derives the domain from records through valueOf and lays them out.
func ComputeFor[T any](records []T, valueOf func(T) float64, cfg Config) Layout {
	values := chartdomain.Values(records, valueOf)
	return Compute(values, chartdomain.ComputeDomain(values), cfg)
}

// Annotations returns the text drawn above every bar. When all values are zero
// every annotation reads "0.0".
func Annotations(values []float64) []string {
	out := make([]string, len(values))
	zero := chartdomain.AllZero(values)
	for i, v := range values {
		if zero {
			out[i] = chartdomain.FormatValue(0)
			continue
		}
		out[i] = chartdomain.FormatValue(v)
	}
	return out
}

// SplitLabel breaks a category label on embedded line breaks.
func SplitLabel(label string) []string {
	label = strings.ReplaceAll(label, "\r\n", "\n")
	return strings.Split(label, "\n")
}
