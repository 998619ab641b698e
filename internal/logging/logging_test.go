package logging

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestNewSessionLogger tests creating a new session logger.
func TestNewSessionLogger(t *testing.T) {
	t.Run("successful creation with valid paths", func(t *testing.T) {
		logger, err := NewSessionLogger(t.TempDir(), t.TempDir(), DefaultOptions())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		defer logger.Close()

		if logger.Dir == "" {
			t.Error("expected Dir to be set")
		}
		if logger.RunID == "" {
			t.Error("expected RunID to be set")
		}
		if !strings.HasSuffix(logger.LogPath, ".log") {
			t.Errorf("expected .log file, got %q", logger.LogPath)
		}
		if logger.Logger == nil {
			t.Error("expected Logger to be set")
		}
		if _, err := os.Stat(logger.LogPath); err != nil {
			t.Errorf("log file not created: %v", err)
		}
	})

	t.Run("empty base dir returns error", func(t *testing.T) {
		_, err := NewSessionLogger("", t.TempDir(), DefaultOptions())
		if err == nil {
			t.Fatal("expected error for empty base dir, got nil")
		}
		if !strings.Contains(err.Error(), "empty") {
			t.Errorf("expected empty dir error, got %v", err)
		}
	})

	t.Run("creates log directory if missing", func(t *testing.T) {
		newLogDir := filepath.Join(t.TempDir(), "new-logs", "nested")

		logger, err := NewSessionLogger(newLogDir, t.TempDir(), DefaultOptions())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		defer logger.Close()

		if _, err := os.Stat(newLogDir); err != nil {
			t.Errorf("log directory not created: %v", err)
		}
	})

	t.Run("logger writes to session file", func(t *testing.T) {
		logger, err := NewSessionLogger(t.TempDir(), t.TempDir(), DefaultOptions())
		if err != nil {
			t.Fatal(err)
		}
		logger.Logger.Info("task moved", "id", "task-1")
		logger.Close()

		content, err := os.ReadFile(logger.LogPath)
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if !strings.Contains(string(content), "task moved") {
			t.Errorf("expected log line, got %q", content)
		}
	})
}

func TestSessionLoggerCloseNil(t *testing.T) {
	var logger *SessionLogger
	if err := logger.Close(); err != nil {
		t.Errorf("Close on nil logger: got %v", err)
	}
}

func TestNewLevelsAndFormats(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		logged  bool
		snippet string
	}{
		{"debug hidden at info", Options{Level: "info", Format: "text"}, false, ""},
		{"debug shown at debug", Options{Level: "debug", Format: "text"}, true, "hello"},
		{"json format", Options{Level: "debug", Format: "json"}, true, `"msg":"hello"`},
		{"logfmt format", Options{Level: "debug", Format: "logfmt"}, true, "msg=hello"},
		{"bad level falls back to info", Options{Level: "loud", Format: "text"}, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			New(&buf, tt.opts).Debug("hello")
			if got := buf.Len() > 0; got != tt.logged {
				t.Fatalf("logged: got %v, want %v (%q)", got, tt.logged, buf.String())
			}
			if tt.snippet != "" && !strings.Contains(buf.String(), tt.snippet) {
				t.Errorf("got %q, want it to contain %q", buf.String(), tt.snippet)
			}
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"my-project", "my-project"},
		{"My Project!", "My_Project"},
		{"a  b", "a_b"},
		{"", "project"},
		{"***", "project"},
	}
	for _, tt := range tests {
		if got := slugify(tt.in); got != tt.want {
			t.Errorf("slugify(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFindLogDirStable(t *testing.T) {
	base := t.TempDir()
	work := t.TempDir()

	first, err := FindLogDir(base, work)
	if err != nil {
		t.Fatal(err)
	}
	second, err := FindLogDir(base, work)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("FindLogDir not stable: %q vs %q", first, second)
	}
	if !strings.HasPrefix(first, base) {
		t.Errorf("got %q, want prefix %q", first, base)
	}
}

func TestFindLatestLog(t *testing.T) {
	t.Run("missing dir", func(t *testing.T) {
		got, err := FindLatestLog(filepath.Join(t.TempDir(), "none"))
		if err != nil || got != "" {
			t.Errorf("got %q, %v; want empty, nil", got, err)
		}
	})

	t.Run("picks newest log file", func(t *testing.T) {
		dir := t.TempDir()
		old := filepath.Join(dir, "old.log")
		newer := filepath.Join(dir, "new.log")
		other := filepath.Join(dir, "notes.txt")
		for _, p := range []string{old, newer, other} {
			if err := os.WriteFile(p, []byte("x\n"), 0644); err != nil {
				t.Fatal(err)
			}
		}
		past := time.Now().Add(-time.Hour)
		if err := os.Chtimes(old, past, past); err != nil {
			t.Fatal(err)
		}
		future := time.Now().Add(time.Hour)
		if err := os.Chtimes(other, future, future); err != nil {
			t.Fatal(err)
		}

		got, err := FindLatestLog(dir)
		if err != nil {
			t.Fatal(err)
		}
		if got != newer {
			t.Errorf("got %q, want %q", got, newer)
		}
	})
}

func TestTailLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.log")
	if err := os.WriteFile(path, []byte("one\ntwo\nthree\nfour\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		n    int
		want string
	}{
		{0, "one\ntwo\nthree\nfour\n"},
		{2, "three\nfour\n"},
		{1, "four\n"},
		{10, "one\ntwo\nthree\nfour\n"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		if err := TailLog(context.Background(), &buf, path, tt.n, false); err != nil {
			t.Fatalf("TailLog(%d): %v", tt.n, err)
		}
		if got := buf.String(); got != tt.want {
			t.Errorf("TailLog(%d): got %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestTailLogFollowStopsOnCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.log")
	if err := os.WriteFile(path, []byte("start\n"), 0644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	var buf bytes.Buffer
	if err := TailLog(ctx, &buf, path, 0, true); err != nil {
		t.Fatalf("TailLog: %v", err)
	}
	if buf.String() != "start\n" {
		t.Errorf("got %q, want %q", buf.String(), "start\n")
	}
}

func TestTailLogMissingFile(t *testing.T) {
	err := TailLog(context.Background(), &bytes.Buffer{}, filepath.Join(t.TempDir(), "x.log"), 0, false)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
