package logger

import (
	"bytes"
	"os"
	"testing"
	"time"
)

func reset() {
	SetVerbose(false)
	SetTimestamps(false)
	SetOutput(os.Stderr)
	now = time.Now
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

	Debug("chunk %d", 3)
	Info("fetching %s", "octo/hello")
	Warn("retry %d", 2)

	want := "[DEBUG] chunk 3\n[INFO] fetching octo/hello\n[WARN] retry 2\n"
	if buf.String() != want {
		t.Errorf("unexpected output: %q", buf.String())
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
	Section("Hidden")

	if buf.Len() != 0 {
		t.Errorf("expected no output when verbose is disabled, got %q", buf.String())
	}
}

func TestError_AlwaysPrinted(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)

	Error("cache save failed: %v", "disk full")

	if buf.String() != "[ERROR] cache save failed: disk full\n" {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestSection(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Section("Summarizing")

	if buf.String() != "\n=== Summarizing ===\n" {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestTimestamps(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)
	SetTimestamps(true)
	now = func() time.Time { return time.Date(2025, 1, 2, 13, 4, 5, 6_000_000, time.UTC) }

	Info("ready")

	if buf.String() != "13:04:05.006 [INFO] ready\n" {
		t.Errorf("unexpected output: %q", buf.String())
	}
}
