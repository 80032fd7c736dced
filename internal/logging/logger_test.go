package logging_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"taskdeck/internal/logging"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")

	log, err := logging.New(logging.Options{Level: "debug", OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	log.Named("board").Debugw("loaded tasks", "count", 3)
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	line := string(data)
	for _, want := range []string{"DEBUG", "board", "loaded tasks", "count"} {
		if !strings.Contains(line, want) {
			t.Errorf("expected log line to contain %q, got %q", want, line)
		}
	}
}

func TestNew_BadLevelFallsBackToInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")

	log, err := logging.New(logging.Options{Level: "loud", OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	log.Debug("hidden")
	log.Info("shown")
	_ = log.Sync()

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "hidden") {
		t.Error("debug output should be suppressed at info level")
	}
	if !strings.Contains(string(data), "shown") {
		t.Error("expected info output")
	}
}

func TestNop(t *testing.T) {
	log := logging.Nop()
	log.Infow("discarded", "k", "v")
	if err := log.Sync(); err != nil {
		t.Errorf("unexpected sync error: %v", err)
	}
}
