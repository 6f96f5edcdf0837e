// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/apex/log"
)

var (
	traceEnabled atomic.Bool

	// threshold is the effective verbosity. Apex itself is left wide open at
	// debug and the handler does the filtering, so changing verbosity never
	// writes to the shared apex Logger while workers are logging.
	threshold atomic.Int32

	quietMu    sync.Mutex
	quietDepth int
	quietSaved log.Level
)

func init() {
	threshold.Store(int32(log.InfoLevel))
}

// InitLogger sets up Apex with a custom handler and a log level from the
// KBCTL_LOG env variable.
func InitLogger() {
	envLevel := strings.ToLower(os.Getenv("KBCTL_LOG"))
	if envLevel == "" {
		envLevel = "info"
	}
	traceEnabled.Store(envLevel == "trace")
	var apexLevel log.Level
	switch envLevel {
	case "trace":
		apexLevel = log.DebugLevel // Show debug and above for trace
	case "debug":
		apexLevel = log.DebugLevel
	case "info":
		apexLevel = log.InfoLevel
	case "warn", "warning":
		apexLevel = log.WarnLevel
	case "error":
		apexLevel = log.ErrorLevel
	case "fatal":
		apexLevel = log.FatalLevel
	default:
		apexLevel = log.InfoLevel
	}
	log.SetHandler(&CustomHandler{Writer: os.Stderr})
	log.SetLevel(log.DebugLevel)
	threshold.Store(int32(apexLevel))
}

// CustomHandler formats log messages and writes them to Writer (stderr when
// nil). Entries below the current level are dropped here.
type CustomHandler struct {
	mu     sync.Mutex
	Writer io.Writer
}

// HandleLog implements the log.Handler interface
func (h *CustomHandler) HandleLog(e *log.Entry) error {
	if e.Level < Level() {
		return nil
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	message := e.Message
	level := "?"
	if strings.HasPrefix(message, "TRACE: ") {
		level = "T"
		message = message[7:]
	} else {
		switch e.Level {
		case log.DebugLevel:
			level = "D"
		case log.InfoLevel:
			level = "I"
		case log.WarnLevel:
			level = "W"
		case log.ErrorLevel:
			level = "E"
		case log.FatalLevel:
			level = "F"
		}
	}

	var fields strings.Builder
	for _, name := range e.Fields.Names() {
		fmt.Fprintf(&fields, " %s=%v", name, e.Fields.Get(name))
	}

	w := h.Writer
	if w == nil {
		w = os.Stderr
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintf(w, "%s %s %s%s\n", timestamp, level, message, fields.String())
	return err
}

// Level returns the current process-wide verbosity.
func Level() log.Level {
	return log.Level(threshold.Load())
}

// SetLevel sets the process-wide verbosity and returns the previous one.
func SetLevel(l log.Level) log.Level {
	return log.Level(threshold.Swap(int32(l)))
}

// Quiet runs fn with verbosity raised to fatal. Scopes may nest and may be
// entered from many goroutines at once: the first entrant saves the level,
// the last one out restores it, and the restore runs even if fn panics.
func Quiet(fn func()) {
	enterQuiet()
	defer exitQuiet()
	fn()
}

func enterQuiet() {
	quietMu.Lock()
	defer quietMu.Unlock()
	if quietDepth == 0 {
		quietSaved = SetLevel(log.FatalLevel)
	}
	quietDepth++
}

func exitQuiet() {
	quietMu.Lock()
	defer quietMu.Unlock()
	quietDepth--
	if quietDepth == 0 {
		SetLevel(quietSaved)
	}
}

// Tracef logs at Trace level (below Debug).
func Tracef(format string, args ...interface{}) {
	if traceEnabled.Load() {
		log.Debug("TRACE: " + fmt.Sprintf(format, args...))
	}
}

// Debugf logs at Debug level.
func Debugf(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

// Infof logs at Info level.
func Infof(format string, args ...interface{}) {
	log.Infof(format, args...)
}

// Warnf logs at Warn level.
func Warnf(format string, args ...interface{}) {
	log.Warn(fmt.Sprintf(format, args...))
}

// Errorf logs at Error level.
func Errorf(format string, args ...interface{}) {
	log.Errorf(format, args...)
}

// Debug logs at Debug level.
func Debug(msg string) {
	log.Debug(msg)
}

// WithError returns an entry with error.
func WithError(err error) *log.Entry {
	return log.WithError(err)
}
