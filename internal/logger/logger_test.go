package logger

import (
	"bytes"
	"os"
	"strings"
	"sync"
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

func TestDebug_WhenVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Debug("query %q matched %d", "alum", 2)

	if got := buf.String(); got != "[DEBUG] query \"alum\" matched 2\n" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestDebug_WhenNotVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Debug("hidden")
	Info("hidden")
	Warn("hidden")
	Section("hidden")

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestSection(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Section("Live Search")

	if got := buf.String(); got != "\n=== Live Search ===\n" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestInfoAndWarn(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Info("loaded %d items", 12)
	Warn("catalog reload failed: %s", "bad toml")

	got := buf.String()
	if !strings.Contains(got, "[INFO] loaded 12 items\n") {
		t.Errorf("missing info line: %q", got)
	}
	if !strings.Contains(got, "[WARN] catalog reload failed: bad toml\n") {
		t.Errorf("missing warn line: %q", got)
	}
}

func TestError_AlwaysPrinted(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Error("open database: %s", "permission denied")

	if got := buf.String(); got != "[ERROR] open database: permission denied\n" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestConcurrentAccess(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	var bufMu sync.Mutex
	SetOutput(writerFunc(func(p []byte) (int, error) {
		bufMu.Lock()
		defer bufMu.Unlock()
		return buf.Write(p)
	}))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetVerbose(true)
		}()
		go func() {
			defer wg.Done()
			Debug("concurrent")
		}()
	}
	wg.Wait()
}

type writerFunc func(p []byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }
