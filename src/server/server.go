// Package server serves a browser preview of the chart: the axis gutter in a
// fixed column and the plot pane in a horizontally scrolling column, plus the
// individual panes as PNG or SVG.
package server

import (
	"bytes"
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/iafilius/ScrollBarChart/src/applog"
	"github.com/iafilius/ScrollBarChart/src/chartdomain"
	"github.com/iafilius/ScrollBarChart/src/layout"
	"github.com/iafilius/ScrollBarChart/src/metrics"
	"github.com/iafilius/ScrollBarChart/src/render"
)

// maxViewport bounds the ?viewport= override.
const maxViewport = 10000

var logger = applog.For("http")

// Server renders one dataset on request. It holds no mutable state: every
// request recomputes domain and layout from the points.
type Server struct {
	points  []chartdomain.DataPoint
	cfg     layout.Config
	xTitle  string
	yTitle  string
	metrics *metrics.Metrics
}

// New returns a server for points. m may be nil.
func New(points []chartdomain.DataPoint, cfg layout.Config, xTitle, yTitle string, m *metrics.Metrics) *Server {
	m.SetPoints(len(points))
	return &Server{points: points, cfg: cfg, xTitle: xTitle, yTitle: yTitle, metrics: m}
}

// Routes builds the chi router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/", s.handleIndex)
	r.Get("/axis", s.handlePane("axis"))
	r.Get("/plot", s.handlePane("plot"))
	r.Get("/chart.png", s.handleComposite)
	r.Get("/layout", s.handleLayout)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler())
	}
	return r
}

// NewHTTPServer builds an HTTP server with sane defaults.
func NewHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logger.Debugf("%s %s status=%d bytes=%d dur=%s req=%s",
			r.Method, r.URL.RequestURI(), ww.Status(), ww.BytesWritten(), time.Since(start), middleware.GetReqID(r.Context()))
	})
}

// chart returns the chart for a request, honouring ?viewport=.
func (s *Server) chart(r *http.Request) render.Chart {
	cfg := s.cfg
	if v := r.URL.Query().Get("viewport"); v != "" {
		if w, err := strconv.ParseFloat(v, 64); err == nil && w > 0 && w <= maxViewport {
			cfg.ViewportWidth = w
		}
	}
	c := render.New(s.points, cfg)
	c.XTitle, c.YTitle = s.xTitle, s.yTitle
	return c
}

func (s *Server) handlePane(pane string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format, err := render.ParseFormat(r.URL.Query().Get("format"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		c := s.chart(r)
		var buf bytes.Buffer
		start := time.Now()
		if pane == "axis" {
			err = c.WriteAxis(format, &buf)
		} else {
			err = c.WritePlot(format, &buf)
		}
		s.metrics.ObserveRender(pane, string(format), start, err)
		if err != nil {
			logger.Errorf("render %s: %v", pane, err)
			http.Error(w, "render failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", format.ContentType())
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(buf.Bytes())
	}
}

func (s *Server) handleComposite(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	img, err := s.chart(r).Composite()
	s.metrics.ObserveRender("composite", string(render.FormatPNG), start, err)
	if err != nil {
		logger.Errorf("composite: %v", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := render.EncodePNG(&buf, img); err != nil {
		http.Error(w, "encode failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", render.FormatPNG.ContentType())
	_, _ = w.Write(buf.Bytes())
}

// layoutView is the JSON shape of /layout.
type layoutView struct {
	Domain       chartdomain.AxisDomain `json:"domain"`
	Scrollable   bool                   `json:"scrollable"`
	ContentWidth float64                `json:"contentWidth"`
	AxisWidth    float64                `json:"axisWidth"`
	Height       float64                `json:"height"`
	Gridlines    []gridlineView         `json:"gridlines"`
	Bars         []barView              `json:"bars"`
}

type gridlineView struct {
	Value float64 `json:"value"`
	Y     float64 `json:"y"`
	Label string  `json:"label"`
}

type barView struct {
	ID         string  `json:"id"`
	Label      string  `json:"label"`
	Value      float64 `json:"value"`
	CenterX    float64 `json:"centerX"`
	Top        float64 `json:"top"`
	Annotation string  `json:"annotation"`
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	c := s.chart(r)
	l := c.Layout()
	v := layoutView{
		Domain:       l.Domain,
		Scrollable:   l.Scrollable,
		ContentWidth: l.ContentWidth,
		AxisWidth:    l.Axis.Width,
		Height:       l.Height,
		Gridlines:    make([]gridlineView, 0, len(l.Gridlines)),
		Bars:         make([]barView, 0, len(l.Bars)),
	}
	for _, g := range l.Gridlines {
		v.Gridlines = append(v.Gridlines, gridlineView{Value: g.Value, Y: g.Y, Label: g.Label})
	}
	for i, b := range l.Bars {
		p := c.Points[i]
		v.Bars = append(v.Bars, barView{
			ID: p.ID.String(), Label: p.Label, Value: p.Value,
			CenterX: b.CenterX, Top: b.Top, Annotation: l.Annotations[i],
		})
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warnf("encode layout: %v", err)
	}
}

var indexTmpl = template.Must(template.New("index").Parse(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>{{.YTitle}} by {{.XTitle}}</title>
<style>
body { margin: 0; padding: 0 8px; font-family: -apple-system, sans-serif; }
.chart { display: flex; align-items: flex-start; height: {{.Height}}px; }
.axis { flex: 0 0 {{.AxisWidth}}px; }
.plot { flex: 0 0 {{.Viewport}}px; overflow-x: {{if .Scrollable}}auto{{else}}hidden{{end}}; scrollbar-width: none; }
.plot::-webkit-scrollbar { display: none; }
.plot img { display: block; width: {{.ContentWidth}}px; height: {{.Height}}px; }
</style>
</head>
<body>
<div class="chart">
  <div class="axis"><img src="/axis?format=svg&amp;viewport={{.Viewport}}" width="{{.AxisWidth}}" height="{{.Height}}" alt="{{.YTitle}}"></div>
  <div class="plot"><img src="/plot?format=svg&amp;viewport={{.Viewport}}" alt="{{.XTitle}}"></div>
</div>
</body>
</html>
`))

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	c := s.chart(r)
	l := c.Layout()
	data := struct {
		XTitle, YTitle string
		Height         float64
		AxisWidth      float64
		Viewport       float64
		ContentWidth   float64
		Scrollable     bool
	}{
		XTitle:       s.xTitle,
		YTitle:       s.yTitle,
		Height:       l.Height,
		AxisWidth:    l.Axis.Width,
		Viewport:     l.Config.ViewportWidth,
		ContentWidth: l.ContentWidth,
		Scrollable:   l.Scrollable,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, data); err != nil {
		logger.Warnf("index template: %v", err)
	}
}
