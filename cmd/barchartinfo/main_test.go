package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iafilius/ScrollBarChart/src/chartdomain"
	"github.com/iafilius/ScrollBarChart/src/dataset"
	"github.com/iafilius/ScrollBarChart/src/layout"
)

func TestReport_Quarter(t *testing.T) {
	pts := []chartdomain.DataPoint{
		chartdomain.NewDataPoint("Jan\n2024", 110),
		chartdomain.NewDataPoint("Feb\n2024", 490),
		chartdomain.NewDataPoint("Mar\n2024", 510),
	}
	var buf bytes.Buffer
	report(&buf, pts, layout.DefaultConfig())
	out := buf.String()
	for _, want := range []string{
		"Points: 3",
		"Jan 2024",
		"510.0",
		"Ticks: 0.0 112.2 224.4 336.6 448.8 561.0",
		"Scrollable: false",
		"Content width: 390",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}

func TestReport_SampleScrolls(t *testing.T) {
	var buf bytes.Buffer
	report(&buf, dataset.Sample(), layout.DefaultConfig())
	out := buf.String()
	if !strings.Contains(out, "Scrollable: true (limit 6)") || !strings.Contains(out, "Content width: 660") {
		t.Fatalf("unexpected report:\n%s", out)
	}
}

func TestReport_Empty(t *testing.T) {
	var buf bytes.Buffer
	report(&buf, nil, layout.DefaultConfig())
	if !strings.Contains(buf.String(), "Domain: 0.0..600.0 stride 100.0") {
		t.Fatalf("unexpected report:\n%s", buf.String())
	}
}
