// Package dataset loads chart records from JSON, JSONC, JSONL or YAML files and
// provides the built-in monthly sample.
package dataset

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/iafilius/ScrollBarChart/src/chartdomain"
)

var (
	// ErrUnsupportedFormat is returned for file extensions without a decoder.
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	// ErrEmptyLabel is returned for a record without a title/label.
	ErrEmptyLabel = errors.New("record has no label")
)

// Record is the on-disk shape of one bar. "title" is accepted as an alias of
// "label" because that is what the sample files use.
type Record struct {
	ID    string   `json:"id,omitempty" yaml:"id,omitempty"`
	Title string   `json:"title,omitempty" yaml:"title,omitempty"`
	Label string   `json:"label,omitempty" yaml:"label,omitempty"`
	Value *float64 `json:"value" yaml:"value"`
}

// Point converts the record, generating an ID when none is given.
// A missing value is treated as 0.
func (r Record) Point() (chartdomain.DataPoint, error) {
	label := r.Label
	if label == "" {
		label = r.Title
	}
	if strings.TrimSpace(label) == "" {
		return chartdomain.DataPoint{}, ErrEmptyLabel
	}
	var v float64
	if r.Value != nil {
		v = *r.Value
	}
	id := uuid.New()
	if r.ID != "" {
		parsed, err := uuid.Parse(r.ID)
		if err != nil {
			return chartdomain.DataPoint{}, fmt.Errorf("record %q: invalid id: %w", label, err)
		}
		id = parsed
	}
	return chartdomain.DataPoint{ID: id, Label: label, Value: v}, nil
}

// Load reads a dataset, choosing the decoder by file extension.
func Load(path string) ([]chartdomain.DataPoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	pts, err := Decode(f, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pts, nil
}

// Decode reads records from r. ext is a file extension such as ".jsonl".
func Decode(r io.Reader, ext string) ([]chartdomain.DataPoint, error) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "json", "jsonc":
		b, err := StripJSONC(r)
		if err != nil {
			return nil, err
		}
		var recs []Record
		if err := json.Unmarshal(b, &recs); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
		return toPoints(recs)
	case "jsonl", "ndjson":
		return decodeJSONL(r)
	case "yaml", "yml":
		var recs []Record
		if err := yaml.NewDecoder(r).Decode(&recs); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, nil
			}
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
		return toPoints(recs)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}

func toPoints(recs []Record) ([]chartdomain.DataPoint, error) {
	out := make([]chartdomain.DataPoint, 0, len(recs))
	for i, rec := range recs {
		p, err := rec.Point()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func decodeJSONL(r io.Reader) ([]chartdomain.DataPoint, error) {
	var out []chartdomain.DataPoint
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "//") {
			continue
		}
		var rec Record
		if err := json.Unmarshal([]byte(text), &rec); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		p, err := rec.Point()
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, p)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// StripJSONC drops full-line // comments and returns raw JSON bytes. Inline //
// is kept since it may be part of a string (URLs).
func StripJSONC(r io.Reader) ([]byte, error) {
	var out bytes.Buffer
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "//") {
			continue
		}
		out.WriteString(line)
		out.WriteByte('\n')
	}
	return out.Bytes(), sc.Err()
}

type monthTotal struct {
	month string
	total float64
}

var sample2024 = []monthTotal{
	{"Jan", 110}, {"Feb", 490}, {"Mar", 510}, {"Apr", 124},
	{"May", 176}, {"Jun", 188}, {"Jul", 192}, {"Aug", 382},
	{"Sep", 134}, {"Oct", 245}, {"Nov", 276}, {"Dec", 471},
}

// Sample returns the twelve months of 2024 used for previews.
func Sample() []chartdomain.DataPoint {
	return chartdomain.PointsOf(sample2024,
		func(m monthTotal) string { return m.month + "\n2024" },
		func(m monthTotal) float64 { return m.total })
}
