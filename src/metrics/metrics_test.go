package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveRender(t *testing.T) {
	m := New()
	m.ObserveRender("plot", "svg", time.Now(), nil)
	m.ObserveRender("plot", "svg", time.Now(), nil)
	m.ObserveRender("axis", "png", time.Now(), errors.New("boom"))

	if got := testutil.ToFloat64(m.Renders.WithLabelValues("plot", "svg")); got != 2 {
		t.Fatalf("plot/svg renders=%v want 2", got)
	}
	if got := testutil.ToFloat64(m.RenderErrors.WithLabelValues("axis")); got != 1 {
		t.Fatalf("axis errors=%v want 1", got)
	}
	if got := testutil.ToFloat64(m.Renders.WithLabelValues("axis", "png")); got != 0 {
		t.Fatalf("failed render counted as success: %v", got)
	}
}

func TestNilSafe(t *testing.T) {
	var m *Metrics
	m.ObserveRender("plot", "png", time.Now(), nil)
	m.SetPoints(3)
}

func TestIndependentRegistries(t *testing.T) {
	a, b := New(), New()
	a.SetPoints(12)
	if testutil.ToFloat64(b.Points) != 0 {
		t.Fatalf("registries share state")
	}
}
