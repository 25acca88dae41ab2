// ===============================
// internal/services/clientlog.go - Frontend error log sink
// ===============================

package services

import (
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"
)

// ClientError is the payload the dashboard frontend reports when its own
// error boundary trips.
type ClientError struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	Stack     string `json:"stack,omitempty"`
	UserAgent string `json:"userAgent,omitempty"`
}

// clientErrorEntry is the line written to the log file.
type clientErrorEntry struct {
	ID        string `json:"id"`
	At        string `json:"at"`
	Type      string `json:"type"`
	Message   string `json:"message"`
	Stack     string `json:"stack,omitempty"`
	UserAgent string `json:"userAgent,omitempty"`
}

// ClientErrorLog appends reported frontend errors to a size-capped rolling
// file. Reporting is best effort: a write failure must never surface to the
// client, only the assigned id does.
type ClientErrorLog struct {
	mu sync.Mutex
	w  io.WriteCloser
}

func NewClientErrorLog(path string) *ClientErrorLog {
	return &ClientErrorLog{
		w: &lumberjack.Logger{
			Filename:   path,
			MaxSize:    10, // MB
			MaxBackups: 5,
			MaxAge:     30, // days
		},
	}
}

// newClientErrorLogWriter exists for tests.
func newClientErrorLogWriter(w io.WriteCloser) *ClientErrorLog {
	return &ClientErrorLog{w: w}
}

// Report assigns the error an id and appends one JSON line. The id is
// returned even when the write fails.
func (l *ClientErrorLog) Report(e ClientError) string {
	id := uuid.New().String()
	line := FormatClientError(id, time.Now().UTC(), e)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(line) // best effort
	return id
}

// FormatClientError renders one newline-terminated JSON log line.
func FormatClientError(id string, at time.Time, e ClientError) []byte {
	entry := clientErrorEntry{
		ID:        id,
		At:        at.Format(time.RFC3339),
		Type:      e.Type,
		Message:   e.Message,
		Stack:     e.Stack,
		UserAgent: e.UserAgent,
	}
	line, err := json.Marshal(entry)
	if err != nil {
		return nil
	}
	return append(line, '\n')
}

func (l *ClientErrorLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Close()
}
