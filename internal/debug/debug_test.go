package debug

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	type tc struct {
		input   string
		want    slog.Level
		wantErr bool
	}

	tests := map[string]tc{
		"empty defaults to warn": {input: "", want: slog.LevelWarn},
		"lower case debug":       {input: "debug", want: slog.LevelDebug},
		"upper case error":       {input: "ERROR", want: slog.LevelError},
		"unknown":                {input: "loud", want: slog.LevelWarn, wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSetLogger_CapturesRecords(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	Log("measured %d nodes", 3)
	Warn("zero size", "node", 7)

	out := buf.String()
	if !strings.Contains(out, "measured 3 nodes") {
		t.Errorf("debug record missing from %q", out)
	}
	if !strings.Contains(out, "node=7") {
		t.Errorf("warn attributes missing from %q", out)
	}
}

func TestInit_WritesJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "ace.log")
	if err := Init(path, slog.LevelDebug); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	Error("cycle detected", "container", 1)
	if err := Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), `"msg":"cycle detected"`) {
		t.Errorf("log file = %q, want JSON record", data)
	}
}
