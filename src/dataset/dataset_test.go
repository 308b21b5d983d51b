package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iafilius/ScrollBarChart/src/chartdomain"
)

const fixedID = "0b6c2a52-8f4e-4d5b-9d8a-3f1e2c7a9b10"

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func assertQuarter(t *testing.T, pts []chartdomain.DataPoint) {
	t.Helper()
	if len(pts) != 3 {
		t.Fatalf("got %d points want 3: %+v", len(pts), pts)
	}
	labels := []string{"Jan\n2024", "Feb\n2024", "Mar\n2024"}
	values := []float64{110, 490, 510}
	for i, p := range pts {
		if p.Label != labels[i] || p.Value != values[i] {
			t.Fatalf("point %d = %q/%v want %q/%v", i, p.Label, p.Value, labels[i], values[i])
		}
	}
	if pts[0].ID.String() != fixedID {
		t.Fatalf("explicit id not kept: %s", pts[0].ID)
	}
	if pts[1].ID == pts[2].ID {
		t.Fatalf("generated ids collide")
	}
}

func TestLoad_EquivalentFormats(t *testing.T) {
	jsonc := `// quarterly totals
[
  {"id": "` + fixedID + `", "title": "Jan\n2024", "value": 110},
  // february
  {"title": "Feb\n2024", "value": 490},
  {"label": "Mar\n2024", "value": 510}
]
`
	jsonl := `{"id": "` + fixedID + `", "title": "Jan\n2024", "value": 110}

{"title": "Feb\n2024", "value": 490}
{"label": "Mar\n2024", "value": 510}
`
	yml := `- id: ` + fixedID + `
  title: "Jan\n2024"
  value: 110
- title: "Feb\n2024"
  value: 490
- label: "Mar\n2024"
  value: 510
`
	for name, body := range map[string]string{"q.jsonc": jsonc, "q.json": jsonc, "q.jsonl": jsonl, "q.yaml": yml} {
		pts, err := Load(writeFile(t, name, body))
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		assertQuarter(t, pts)
	}
}

func TestLoad_MissingValueIsZero(t *testing.T) {
	pts, err := Load(writeFile(t, "z.jsonl", `{"title":"A"}`+"\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(pts) != 1 || pts[0].Value != 0 {
		t.Fatalf("points %+v", pts)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(writeFile(t, "x.csv", "a,b\n")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("csv: got %v want ErrUnsupportedFormat", err)
	}
	_, err := Load(writeFile(t, "bad.jsonl", `{"title":"A","value":1}`+"\n"+`{"value":2}`+"\n"))
	if !errors.Is(err, ErrEmptyLabel) {
		t.Fatalf("missing label: got %v", err)
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("error lacks line number: %v", err)
	}
	if _, err := Load(writeFile(t, "id.json", `[{"id":"nope","title":"A","value":1}]`)); err == nil {
		t.Fatalf("expected invalid id error")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file: got %v", err)
	}
}

func TestSample(t *testing.T) {
	pts := Sample()
	if len(pts) != 12 {
		t.Fatalf("sample has %d points want 12", len(pts))
	}
	if pts[0].Label != "Jan\n2024" || pts[11].Value != 471 {
		t.Fatalf("unexpected sample: %+v %+v", pts[0], pts[11])
	}
	d := chartdomain.ComputeDomainOf(pts, chartdomain.ValueOf)
	top := 510.0
	if d.Max != top*chartdomain.Headroom {
		t.Fatalf("sample max %v", d.Max)
	}
}
