package logger

import (
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"
)

// Logger writes one JSON object per line with a fixed envelope
// (timestamp, level, service, action) plus caller-supplied fields.
type Logger struct {
	service string
	mu      sync.Mutex
	out     io.Writer
	debug   bool
}

func New(service string) *Logger {
	return &Logger{
		service: service,
		out:     os.Stdout,
		debug:   os.Getenv("TABLESIDE_DEBUG") != "",
	}
}

// WithOutput redirects log output; used by tests.
func (l *Logger) WithOutput(w io.Writer) *Logger {
	l.out = w
	return l
}

func (l *Logger) log(level, action string, fields map[string]any, err error) {
	entry := map[string]any{
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		"level":     level,
		"service":   l.service,
		"action":    action,
		"hostname":  hostname(),
	}
	for k, v := range fields {
		entry[k] = v
	}
	if err != nil {
		entry["error"] = err.Error()
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_ = json.NewEncoder(l.out).Encode(entry)
}

func (l *Logger) Info(action string, fields map[string]any) { l.log("INFO", action, fields, nil) }

func (l *Logger) Debug(action string, fields map[string]any) {
	if l.debug {
		l.log("DEBUG", action, fields, nil)
	}
}

func (l *Logger) Error(action string, err error, fields map[string]any) {
	l.log("ERROR", action, fields, err)
}

var (
	hostOnce sync.Once
	host     string
)

func hostname() string {
	hostOnce.Do(func() { host, _ = os.Hostname() })
	return host
}
