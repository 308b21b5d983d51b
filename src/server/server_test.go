package server

import (
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/iafilius/ScrollBarChart/src/dataset"
	"github.com/iafilius/ScrollBarChart/src/layout"
	"github.com/iafilius/ScrollBarChart/src/metrics"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	s := New(dataset.Sample(), layout.DefaultConfig(), "Date", "Value", metrics.New())
	ts := httptest.NewServer(s.Routes())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read %s: %v", url, err)
	}
	return resp, b
}

func TestIndex_EmbedsBothPanes(t *testing.T) {
	ts := newTestServer(t)
	resp, body := get(t, ts.URL+"/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	html := string(body)
	for _, want := range []string{"/axis?format=svg", "/plot?format=svg", "overflow-x: auto", "width: 660px"} {
		if !strings.Contains(html, want) {
			t.Fatalf("index missing %q:\n%s", want, html)
		}
	}
}

func TestPanes_FormatsAndSizes(t *testing.T) {
	ts := newTestServer(t)
	resp, body := get(t, ts.URL+"/plot?format=svg")
	if resp.StatusCode != http.StatusOK || resp.Header.Get("Content-Type") != "image/svg+xml" {
		t.Fatalf("plot svg: status %d type %q", resp.StatusCode, resp.Header.Get("Content-Type"))
	}
	if !strings.Contains(string(body), "<svg") || !strings.Contains(string(body), "471.0") {
		t.Fatalf("plot svg missing annotation")
	}

	resp, body = get(t, ts.URL+"/axis")
	if resp.StatusCode != http.StatusOK || resp.Header.Get("Content-Type") != "image/png" {
		t.Fatalf("axis png: status %d type %q", resp.StatusCode, resp.Header.Get("Content-Type"))
	}
	img, err := png.Decode(strings.NewReader(string(body)))
	if err != nil {
		t.Fatalf("decode axis: %v", err)
	}
	if img.Bounds().Dx() != 56 || img.Bounds().Dy() != 260 {
		t.Fatalf("axis png %v", img.Bounds())
	}

	resp, _ = get(t, ts.URL+"/plot?format=gif")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("gif status %d want 400", resp.StatusCode)
	}

	_, metricsBody := get(t, ts.URL+"/metrics")
	text := string(metricsBody)
	if !strings.Contains(text, `barchart_renders_total{format="svg",pane="plot"} 1`) {
		t.Fatalf("metrics missing plot render:\n%s", text)
	}
	if !strings.Contains(text, "barchart_dataset_points 12") {
		t.Fatalf("metrics missing points gauge:\n%s", text)
	}
}

func TestLayout_JSON(t *testing.T) {
	ts := newTestServer(t)
	resp, body := get(t, ts.URL+"/layout?viewport=500")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	var v layoutView
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !v.Scrollable || v.ContentWidth != 660 || len(v.Bars) != 12 {
		t.Fatalf("layout: scrollable=%v width=%v bars=%d", v.Scrollable, v.ContentWidth, len(v.Bars))
	}
	if v.Domain.Min != 0 || len(v.Gridlines) != 6 {
		t.Fatalf("domain %+v gridlines %d", v.Domain, len(v.Gridlines))
	}
	if v.Bars[2].Annotation != "510.0" || v.Bars[0].ID == "" {
		t.Fatalf("bar 2: %+v", v.Bars[2])
	}
}

func TestComposite(t *testing.T) {
	ts := newTestServer(t)
	resp, body := get(t, ts.URL+"/chart.png")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	img, err := png.Decode(strings.NewReader(string(body)))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 56+660 {
		t.Fatalf("composite width %d", img.Bounds().Dx())
	}
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	resp, _ := get(t, ts.URL+"/healthz")
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status %d", resp.StatusCode)
	}
}
