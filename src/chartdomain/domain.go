// Package chartdomain derives the value axis of the bar chart from its data.
//
// Everything here is pure: the same input always yields bit-identical output, and
// both chart panes (the frozen axis gutter and the scrolling plot) consume one
// AxisDomain so their gridlines coincide at every scroll offset.
package chartdomain

import (
	"math"
	"strconv"

	"github.com/google/uuid"
)

const (
	// EmptyMax is the axis maximum used when every value is zero (or there are none),
	// so an all-zero dataset still renders a scaled axis.
	EmptyMax = 600.0
	// Headroom is the factor applied to the tallest bar.
	Headroom = 1.1
	// TickCount is the number of strides between Min and Max.
	TickCount = 5
	// FallbackStride is the tick spacing for all-zero data and for a collapsed range.
	FallbackStride = 100.0
)

// DataPoint is a single bar: a category label and its value.
type DataPoint struct {
	ID    uuid.UUID
	Label string
	Value float64
}

// NewDataPoint returns a point with a fresh random ID.
func NewDataPoint(label string, value float64) DataPoint {
	return DataPoint{ID: uuid.New(), Label: label, Value: value}
}

// AxisDomain is the value range the Y axis is scaled to plus the tick spacing.
type AxisDomain struct {
	Min          float64
	Max          float64
	StrideLength float64
}

// ComputeDomain derives the axis domain from raw values.
// Min is pinned to 0; Max is 110% of the largest value. When all values are zero
// the axis is EmptyMax tall with FallbackStride ticks. Negative and non-finite
// values count as zero.
func ComputeDomain(values []float64) AxisDomain {
	maxV := 0.0
	for _, v := range values {
		v = Clamp(v)
		if v > maxV {
			maxV = v
		}
	}
	if maxV == 0 {
		return AxisDomain{Min: 0, Max: EmptyMax, StrideLength: FallbackStride}
	}
	d := AxisDomain{Min: 0, Max: withHeadroom(maxV)}
	d.StrideLength = strideFor(d.Min, d.Max)
	return d
}

// withHeadroom scales the tallest value by Headroom, saturating at the largest
// finite float so the axis of a huge but finite dataset stays finite.
func withHeadroom(v float64) float64 {
	if m := v * Headroom; !math.IsInf(m, 0) {
		return m
	}
	return math.MaxFloat64
}

// strideFor splits [min,max] into TickCount strides, falling back to a fixed
// stride when the range is empty.
func strideFor(min, max float64) float64 {
	if max == min {
		return FallbackStride
	}
	return (max - min) / TickCount
}

// ComputeDomainOf is ComputeDomain over arbitrary records using a value accessor.
func ComputeDomainOf[T any](records []T, valueOf func(T) float64) AxisDomain {
	return ComputeDomain(Values(records, valueOf))
}

// Values extracts the values of records in order.
func Values[T any](records []T, valueOf func(T) float64) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = valueOf(r)
	}
	return out
}

// PointsOf converts arbitrary records into data points through the two
// accessors. Every point gets a fresh ID.
func PointsOf[T any](records []T, labelOf func(T) string, valueOf func(T) float64) []DataPoint {
	out := make([]DataPoint, len(records))
	for i, rec := range records {
		out[i] = NewDataPoint(labelOf(rec), valueOf(rec))
	}
	return out
}

// LabelOf and ValueOf are the accessors of DataPoint itself.
func LabelOf(p DataPoint) string  { return p.Label }
func ValueOf(p DataPoint) float64 { return p.Value }

// PointValues returns the values of pts in order.
func PointValues(pts []DataPoint) []float64 { return Values(pts, ValueOf) }

// Clamp maps a raw value into the drawable domain: negatives, NaN and
// infinities become 0.
func Clamp(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// AllZero reports whether every value is zero. An empty slice is all zero.
func AllZero(values []float64) bool {
	for _, v := range values {
		if v != 0 {
			return false
		}
	}
	return true
}

// maxTicks bounds Ticks for hand-built domains with a tiny stride.
const maxTicks = 1000

// Ticks returns Min, Min+Stride, ... up to and including Max.
// Accumulated float error is absorbed so the last tick lands on Max. A domain
// that is not finite yields only Min.
func (d AxisDomain) Ticks() []float64 {
	if !finite(d.Min) || !finite(d.Max) || !finite(d.StrideLength) ||
		d.StrideLength <= 0 || d.Max < d.Min {
		return []float64{d.Min}
	}
	steps := math.Floor((d.Max-d.Min)/d.StrideLength + 1e-6)
	if !finite(steps) || steps > maxTicks {
		return []float64{d.Min}
	}
	n := int(steps)
	out := make([]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		v := d.Min + float64(i)*d.StrideLength
		if i == n && (v > d.Max || math.Abs(v-d.Max) < d.StrideLength*1e-6) {
			v = d.Max
		}
		if v < 0 {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Fraction returns where v sits in the domain, 0 at Min and 1 at Max, clamped.
func (d AxisDomain) Fraction(v float64) float64 {
	span := d.Max - d.Min
	if span <= 0 {
		return 0
	}
	f := (Clamp(v) - d.Min) / span
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// Scale maps v to a y offset (pixels from the top) inside a plot band of plotHeight.
func (d AxisDomain) Scale(v, plotHeight float64) float64 {
	return plotHeight * (1 - d.Fraction(v))
}

// FormatValue renders a value with one decimal place. NaN counts as 0.
func FormatValue(v float64) string {
	if math.IsNaN(v) {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}
