package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}

	if err := os.WriteFile(logPath, []byte(content.String()), 0644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{name: "zero", maxLines: 0, expected: nil},
		{name: "negative", maxLines: -1, expected: nil},
		{name: "partial", maxLines: 3, expected: expectedAll[7:]},
		{name: "wraps more than once", maxLines: 4, expected: expectedAll[6:]},
		{name: "exactly all", maxLines: 10, expected: expectedAll},
		{name: "more than exists", maxLines: 20, expected: expectedAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "absent.log"), 10)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got != nil {
		t.Fatalf("Read() = %v, want nil", got)
	}
}

func TestParse_JSONEntry(t *testing.T) {
	line := `{"level":"error","ts":"2026-03-01T20:15:00Z","caller":"state/store.go:194","msg":"movie search failed","query":"alien","attempt":2,"stacktrace":"..."}`
	e := Parse(line)

	if e.Level != "error" || e.Message != "movie search failed" {
		t.Fatalf("Parse() level/msg = %q/%q", e.Level, e.Message)
	}
	if e.Caller != "state/store.go:194" {
		t.Fatalf("Caller = %q", e.Caller)
	}
	want := time.Date(2026, 3, 1, 20, 15, 0, 0, time.UTC)
	if !e.Time.Equal(want) {
		t.Fatalf("Time = %v, want %v", e.Time, want)
	}
	if got := e.FieldString(); got != "attempt=2 query=alien" {
		t.Fatalf("FieldString() = %q", got)
	}
	if e.Raw != line {
		t.Fatalf("Raw not preserved")
	}
}

func TestParse_EpochTimestamp(t *testing.T) {
	e := Parse(`{"level":"info","ts":1700000000.5,"msg":"ok"}`)
	if e.Time.Unix() != 1700000000 {
		t.Fatalf("Time = %v, want unix 1700000000", e.Time)
	}
	if e.FieldString() != "" {
		t.Fatalf("FieldString() = %q, want empty", e.FieldString())
	}
}

func TestParse_PlainLine(t *testing.T) {
	e := Parse("panic: something odd")
	if e.Message != "panic: something odd" || e.Level != "" || !e.Time.IsZero() {
		t.Fatalf("Parse(plain) = %+v", e)
	}
}

func TestTail_SkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marquee.log")
	data := `{"level":"info","msg":"a"}` + "\n\n" + `{"level":"warn","msg":"b"}` + "\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	entries, err := Tail(path, 10)
	if err != nil {
		t.Fatalf("Tail() error = %v", err)
	}
	if len(entries) != 2 || entries[0].Message != "a" || entries[1].Message != "b" {
		t.Fatalf("Tail() = %+v", entries)
	}
}

func TestEntry_AtLeast(t *testing.T) {
	tests := []struct {
		level string
		min   string
		want  bool
	}{
		{"info", "info", true},
		{"debug", "info", false},
		{"error", "warn", true},
		{"warn", "error", false},
		{"", "error", true},
		{"custom", "error", true},
	}
	for _, tt := range tests {
		if got := (Entry{Level: tt.level}).AtLeast(tt.min); got != tt.want {
			t.Errorf("Entry{%q}.AtLeast(%q) = %v, want %v", tt.level, tt.min, got, tt.want)
		}
	}
}
