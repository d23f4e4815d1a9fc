// Package logging provides structured JSON logging for aicost components.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/joss/aicost/internal/config"
)

// Level represents log severity
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Event represents a structured log event
type Event struct {
	EventID   string                 `json:"event_id"`
	Timestamp string                 `json:"ts"`
	Level     Level                  `json:"level"`
	Component string                 `json:"component"`
	Event     string                 `json:"event"`
	Error     string                 `json:"error,omitempty"`
	Extra     map[string]interface{} `json:"extra,omitempty"`
}

var (
	outMu sync.Mutex
	out   io.Writer = os.Stderr
)

// SetOutput redirects log output. Tests use this to capture events;
// the TUI uses it to keep structured logs off the alternate screen.
func SetOutput(w io.Writer) {
	outMu.Lock()
	defer outMu.Unlock()
	out = w
}

// Logger provides structured logging for one component.
type Logger struct {
	component string
	debug     bool
}

// New creates a new logger for a component. Debug events are emitted
// only when AICOST_DEBUG is set; the flag is read through config so it
// has a single source of truth.
func New(component string) *Logger {
	return &Logger{
		component: component,
		debug:     config.Env().Debug,
	}
}

func (l *Logger) log(level Level, event string, extra map[string]interface{}, err error) {
	e := Event{
		EventID:   uuid.New().String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     level,
		Component: l.component,
		Event:     event,
		Extra:     extra,
	}
	if err != nil {
		e.Error = err.Error()
	}

	data, _ := json.Marshal(e)
	outMu.Lock()
	defer outMu.Unlock()
	fmt.Fprintln(out, string(data))
}

// Debug logs a debug event
func (l *Logger) Debug(event string, extra map[string]interface{}) {
	if !l.debug {
		return
	}
	l.log(LevelDebug, event, extra, nil)
}

// Info logs an info event
func (l *Logger) Info(event string, extra map[string]interface{}) {
	l.log(LevelInfo, event, extra, nil)
}

// Warn logs a warning event
func (l *Logger) Warn(event string, extra map[string]interface{}) {
	l.log(LevelWarn, event, extra, nil)
}

// Error logs an error event
func (l *Logger) Error(event string, err error, extra map[string]interface{}) {
	l.log(LevelError, event, extra, err)
}
