package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func reset() {
	SetVerbose(false)
	SetOutput(os.Stderr)
}

func TestSetVerbose(t *testing.T) {
	defer reset()

	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected verbose to be false initially")
	}

	SetVerbose(true)
	if !IsVerbose() {
		t.Error("expected verbose to be true after SetVerbose(true)")
	}
}

func TestLevels_WhenVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Debug("request %s page %d", "abc", 2)
	Info("info message %d", 42)
	Warn("warning message")
	Section("Search")

	want := "[DEBUG] request abc page 2\n" +
		"[INFO] info message 42\n" +
		"[WARN] warning message\n" +
		"\n=== Search ===\n"
	if got := buf.String(); got != want {
		t.Errorf("unexpected output:\n%q\nwant:\n%q", got, want)
	}
}

func TestLevels_WhenNotVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Debug("hidden")
	Info("hidden")
	Warn("hidden")
	Section("hidden")
	Error("shown %d", 1)

	if got := buf.String(); got != "[ERROR] shown 1\n" {
		t.Errorf("only errors expected when not verbose, got %q", got)
	}
}

func TestSetOutputFile(t *testing.T) {
	defer reset()

	path := filepath.Join(t.TempDir(), "ghfinder.log")
	if err := SetOutputFile(path); err != nil {
		t.Fatalf("SetOutputFile: %v", err)
	}
	SetVerbose(true)

	Debug("to file")
	if err := Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "[DEBUG] to file") {
		t.Errorf("log file missing message: %q", data)
	}

	if err := Close(); err != nil {
		t.Errorf("second Close should be a no-op: %v", err)
	}
}

func TestSetOutputFile_BadPath(t *testing.T) {
	defer reset()

	err := SetOutputFile(filepath.Join(t.TempDir(), "missing", "x.log"))
	if err == nil {
		t.Error("expected error for unwritable path")
	}
}
