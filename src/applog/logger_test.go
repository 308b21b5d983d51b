package applog

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"
	"time"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	sink.SetFlags(0)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		sink.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
		SetLevel("info")
	})
	return &buf
}

func TestInfof_NoDoubleFormattingWithPercent(t *testing.T) {
	buf := capture(t)
	SetLevel("info")

	msg := "plot.png width=660 bars=12 (100.0% of points visible after scroll)"
	For("export").Infof(msg)

	out := buf.String()
	if !strings.Contains(out, "[INFO] [export] plot.png width=660") || !strings.Contains(out, "(100.0% of points visible") {
		t.Fatalf("unexpected line: %s", out)
	}
	if strings.Contains(out, "(MISSING)") {
		t.Fatalf("log output shows fmt artifact: %s", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	buf := capture(t)
	if !SetLevel("WARN") {
		t.Fatalf("expected WARN to parse")
	}
	Infof("hidden %d", 1)
	Debugf("hidden too")
	Warnf("shown %s", "warn")
	For("http").Errorf("shown error")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info/debug leaked at warn level: %s", out)
	}
	if !strings.Contains(out, "[WARN] shown warn") || !strings.Contains(out, "[ERROR] [http] shown error") {
		t.Fatalf("missing warn/error lines: %s", out)
	}
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want Level
		ok   bool
	}{
		{"debug", LevelDebug, true},
		{" Warning ", LevelWarn, true},
		{"ERROR", LevelError, true},
		{"verbose", LevelInfo, false},
	}
	for _, c := range cases {
		got, ok := ParseLevel(c.in)
		if got != c.want || ok != c.ok {
			t.Fatalf("ParseLevel(%q)=%v,%v want %v,%v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestSetLevel_UnknownKeepsCurrent(t *testing.T) {
	capture(t)
	SetLevel("debug")
	if SetLevel("verbose") {
		t.Fatalf("unknown level accepted")
	}
	if GetLevel() != LevelDebug {
		t.Fatalf("level changed to %v", GetLevel())
	}
}

func TestTimeTrack_OnlyAtDebug(t *testing.T) {
	buf := capture(t)
	For("viewer").TimeTrack(time.Now(), "redraw")
	if buf.Len() != 0 {
		t.Fatalf("timing logged at info: %s", buf.String())
	}
	SetLevel("debug")
	For("viewer").TimeTrack(time.Now(), "redraw")
	if !strings.Contains(buf.String(), "[DEBUG] [viewer] redraw took ") {
		t.Fatalf("missing timing line: %s", buf.String())
	}
}
