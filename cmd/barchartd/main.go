// barchartd serves a browser preview of the scrollable bar chart.
//
// Configuration comes from BARCHART_* environment variables; flags override them.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iafilius/ScrollBarChart/src/applog"
	"github.com/iafilius/ScrollBarChart/src/chartdomain"
	"github.com/iafilius/ScrollBarChart/src/config"
	"github.com/iafilius/ScrollBarChart/src/dataset"
	"github.com/iafilius/ScrollBarChart/src/layout"
	"github.com/iafilius/ScrollBarChart/src/metrics"
	"github.com/iafilius/ScrollBarChart/src/server"
)

var (
	initLog = applog.For("init")
	httpLog = applog.For("http")
)

func main() {
	cfg := config.FromEnv()
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "Listen address")
	flag.StringVar(&cfg.DataPath, "file", cfg.DataPath, "Dataset (.json, .jsonc, .jsonl, .yaml); empty uses the built-in sample")
	flag.IntVar(&cfg.VisibleLimit, "visible-limit", cfg.VisibleLimit, "Points shown before the plot scrolls")
	flag.Float64Var(&cfg.ViewportWidth, "viewport-width", cfg.ViewportWidth, "Default visible width of the plot pane")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	flag.StringVar(&cfg.XTitle, "x-label", cfg.XTitle, "X axis title")
	flag.StringVar(&cfg.YTitle, "y-label", cfg.YTitle, "Y axis title")
	flag.Parse()

	if !applog.SetLevel(cfg.LogLevel) {
		initLog.Warnf("unknown log level %q, keeping info", cfg.LogLevel)
	}
	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Server) error {
	points := dataset.Sample()
	if cfg.DataPath != "" {
		var err error
		if points, err = dataset.Load(cfg.DataPath); err != nil {
			return err
		}
	}
	lc := layout.DefaultConfig()
	lc.VisibleLimit = cfg.VisibleLimit
	lc.ViewportWidth = cfg.ViewportWidth
	d := chartdomain.ComputeDomainOf(points, chartdomain.ValueOf)
	initLog.Infof("%d points, domain [%.1f, %.1f] stride %.1f, scrollable=%v",
		len(points), d.Min, d.Max, d.StrideLength, lc.Scrolls(len(points)))

	srv := server.NewHTTPServer(cfg.Addr, server.New(points, lc, cfg.XTitle, cfg.YTitle, metrics.New()).Routes())
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	errCh := make(chan error, 1)
	go func() {
		httpLog.Infof("listening on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	httpLog.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
