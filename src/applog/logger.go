// Package applog is the leveled logger shared by the viewer, the exporter and the
// preview server. Lines look like "[INFO] [export] wrote 3 files": the level, the
// component that logged, then the message.
package applog

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"
	"time"
)

// Level represents severity.
type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a level name ("debug", "info", "warn"/"warning", "error") to
// its Level, ignoring case and surrounding space.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, true
	case "info":
		return LevelInfo, true
	case "warn", "warning":
		return LevelWarn, true
	case "error":
		return LevelError, true
	}
	return LevelInfo, false
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

var (
	threshold atomic.Int32
	sink      = log.New(os.Stderr, "", log.Ldate|log.Ltime|log.Lmicroseconds)
)

func init() { threshold.Store(int32(LevelInfo)) }

// SetLevel sets the global threshold from a level name. Unknown names leave it
// unchanged and return false.
func SetLevel(s string) bool {
	l, ok := ParseLevel(s)
	if ok {
		threshold.Store(int32(l))
	}
	return ok
}

// GetLevel returns the global threshold.
func GetLevel() Level { return Level(threshold.Load()) }

// Enabled reports whether lines at l are written.
func Enabled(l Level) bool { return l >= GetLevel() }

// SetOutput redirects every logger.
func SetOutput(w io.Writer) { sink.SetOutput(w) }

// Logger tags its lines with a component name. The zero value logs untagged.
type Logger struct {
	component string
}

// For returns the logger of one component, e.g. For("http").
func For(component string) Logger { return Logger{component: component} }

func (lg Logger) logf(l Level, format string, args []interface{}) {
	if !Enabled(l) {
		return
	}
	msg := format
	// a message without args is already final; a literal % must survive
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	if lg.component == "" {
		sink.Printf("[%s] %s", l, msg)
		return
	}
	sink.Printf("[%s] [%s] %s", l, lg.component, msg)
}

func (lg Logger) Debugf(format string, a ...interface{}) { lg.logf(LevelDebug, format, a) }
func (lg Logger) Infof(format string, a ...interface{})  { lg.logf(LevelInfo, format, a) }
func (lg Logger) Warnf(format string, a ...interface{})  { lg.logf(LevelWarn, format, a) }
func (lg Logger) Errorf(format string, a ...interface{}) { lg.logf(LevelError, format, a) }

// TimeTrack logs at debug level how long the phase started at start took.
// Use with defer.
func (lg Logger) TimeTrack(start time.Time, phase string) {
	if Enabled(LevelDebug) {
		lg.Debugf("%s took %s", phase, time.Since(start))
	}
}

var std Logger

func Debugf(format string, a ...interface{}) { std.logf(LevelDebug, format, a) }
func Infof(format string, a ...interface{})  { std.logf(LevelInfo, format, a) }
func Warnf(format string, a ...interface{})  { std.logf(LevelWarn, format, a) }
func Errorf(format string, a ...interface{}) { std.logf(LevelError, format, a) }

// TimeTrack is Logger.TimeTrack on the untagged logger.
func TimeTrack(start time.Time, phase string) { std.TimeTrack(start, phase) }
