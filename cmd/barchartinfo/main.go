package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/iafilius/ScrollBarChart/src/chartdomain"
	"github.com/iafilius/ScrollBarChart/src/dataset"
	"github.com/iafilius/ScrollBarChart/src/layout"
)

func main() {
	var file string
	var limit int
	var viewport float64
	flag.StringVar(&file, "file", "", "Dataset to inspect; empty uses the built-in sample")
	flag.IntVar(&limit, "visible-limit", 6, "Points shown before the plot scrolls")
	flag.Float64Var(&viewport, "viewport-width", 390, "Visible width of the plot pane")
	flag.Parse()
	pts := dataset.Sample()
	if file != "" {
		var err error
		if pts, err = dataset.Load(file); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
	cfg := layout.DefaultConfig()
	cfg.VisibleLimit = limit
	cfg.ViewportWidth = viewport
	report(os.Stdout, pts, cfg)
}

// report prints the points, the axis domain with its ticks and the plot geometry.
func report(w io.Writer, pts []chartdomain.DataPoint, cfg layout.Config) {
	l := layout.ComputeFor(pts, chartdomain.ValueOf, cfg)
	d := l.Domain
	fmt.Fprintf(w, "Points: %d\n", len(pts))
	for i, p := range pts {
		fmt.Fprintf(w, "  %-12s %8s\n", strings.ReplaceAll(chartdomain.LabelOf(p), "\n", " "), l.Annotations[i])
	}
	ticks := make([]string, 0, len(l.Gridlines))
	for _, g := range l.Gridlines {
		ticks = append(ticks, g.Label)
	}
	fmt.Fprintf(w, "Domain: %s..%s stride %s\n",
		chartdomain.FormatValue(d.Min), chartdomain.FormatValue(d.Max), chartdomain.FormatValue(d.StrideLength))
	fmt.Fprintf(w, "Ticks: %s\n", strings.Join(ticks, " "))
	fmt.Fprintf(w, "Scrollable: %v (limit %d)\n", l.Scrollable, l.Config.VisibleLimit)
	fmt.Fprintf(w, "Content width: %.0f\n", l.ContentWidth)
}
