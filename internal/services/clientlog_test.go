package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestFormatClientError(t *testing.T) {
	at := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	line := FormatClientError("abc-123", at, ClientError{
		Type:      "TypeError",
		Message:   "x is not a function",
		Stack:     "at render (app.js:10)",
		UserAgent: "Mozilla/5.0",
	})

	if !bytes.HasSuffix(line, []byte("\n")) {
		t.Fatal("log line must be newline terminated")
	}

	var entry map[string]string
	if err := json.Unmarshal(bytes.TrimSpace(line), &entry); err != nil {
		t.Fatalf("line is not valid JSON: %v", err)
	}
	if entry["id"] != "abc-123" {
		t.Errorf("id = %q", entry["id"])
	}
	if entry["at"] != "2026-08-28T12:00:00Z" {
		t.Errorf("at = %q", entry["at"])
	}
	if entry["type"] != "TypeError" || entry["message"] != "x is not a function" {
		t.Errorf("payload not preserved: %v", entry)
	}
}

func TestFormatClientErrorOmitsEmptyOptionals(t *testing.T) {
	line := FormatClientError("id", time.Now(), ClientError{Type: "Error", Message: "boom"})
	if strings.Contains(string(line), "stack") || strings.Contains(string(line), "userAgent") {
		t.Errorf("empty optional fields should be omitted: %s", line)
	}
}

type bufferCloser struct {
	bytes.Buffer
}

func (*bufferCloser) Close() error { return nil }

func TestClientErrorLogReport(t *testing.T) {
	buf := &bufferCloser{}
	logSink := newClientErrorLogWriter(buf)

	id1 := logSink.Report(ClientError{Type: "Error", Message: "first"})
	id2 := logSink.Report(ClientError{Type: "Error", Message: "second"})

	if id1 == "" || id2 == "" || id1 == id2 {
		t.Errorf("ids must be unique and non-empty: %q, %q", id1, id2)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for i, line := range lines {
		var entry map[string]string
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("line %d not valid JSON: %v", i, err)
		}
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }
func (failingWriter) Close() error              { return nil }

func TestClientErrorLogReportSwallowsWriteFailure(t *testing.T) {
	logSink := newClientErrorLogWriter(failingWriter{})

	id := logSink.Report(ClientError{Type: "Error", Message: "boom"})
	if id == "" {
		t.Error("an id is assigned even when the write fails")
	}
}
