package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/iafilius/ScrollBarChart/src/applog"
	"github.com/iafilius/ScrollBarChart/src/chartdomain"
	"github.com/iafilius/ScrollBarChart/src/dataset"
	"github.com/iafilius/ScrollBarChart/src/layout"
	"github.com/iafilius/ScrollBarChart/src/render"
)

var exportLog = applog.For("export")

// RunExportMode renders the chart for filePath headlessly and writes axis.<ext>,
// plot.<ext> and a composite chart.png under outDir. An empty filePath renders
// the built-in sample.
func RunExportMode(filePath, outDir string, cfg layout.Config, xTitle, yTitle string, format render.Format) error {
	defer exportLog.TimeTrack(time.Now(), "export")
	var pts []chartdomain.DataPoint
	if filePath == "" {
		pts = dataset.Sample()
	} else {
		var err error
		if pts, err = dataset.Load(filePath); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create out dir: %w", err)
	}
	c := render.New(pts, cfg)
	c.XTitle, c.YTitle = xTitle, yTitle

	panes := []struct {
		name  string
		write func(render.Format, *bytes.Buffer) error
	}{
		{"axis", func(f render.Format, b *bytes.Buffer) error { return c.WriteAxis(f, b) }},
		{"plot", func(f render.Format, b *bytes.Buffer) error { return c.WritePlot(f, b) }},
	}
	for _, p := range panes {
		var buf bytes.Buffer
		if err := p.write(format, &buf); err != nil {
			return err
		}
		if err := writeOut(outDir, p.name+"."+string(format), buf.Bytes()); err != nil {
			return err
		}
	}

	img, err := c.Composite()
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := render.EncodePNG(&buf, img); err != nil {
		return fmt.Errorf("png encode chart.png: %w", err)
	}
	if err := writeOut(outDir, "chart.png", buf.Bytes()); err != nil {
		return err
	}
	l := c.Layout()
	exportLog.Infof("%d points, domain 0..%s stride %s, scrollable=%v, wrote %s",
		l.Count, chartdomain.FormatValue(l.Domain.Max), chartdomain.FormatValue(l.Domain.StrideLength), l.Scrollable, outDir)
	return nil
}

func writeOut(dir, name string, b []byte) error {
	outPath := filepath.Join(dir, name)
	if err := os.WriteFile(outPath, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	return nil
}
