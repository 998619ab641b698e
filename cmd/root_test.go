// Package cmd provides tests for CLI command handlers.
package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/charmbracelet/log"

	"github.com/nibzard/doable-go/internal/board"
	"github.com/nibzard/doable-go/internal/config"
	"github.com/nibzard/doable-go/internal/logging"
	"github.com/nibzard/doable-go/internal/seed"
	"github.com/nibzard/doable-go/internal/ui"
)

// isolate points HOME and the working directory at empty temporary
// directories and clears DOABLE_* so host config cannot leak into a test.
func isolate(t *testing.T) (home, work string) {
	t.Helper()
	home = t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("APPDATA", filepath.Join(home, "AppData"))
	for _, kv := range os.Environ() {
		if name, _, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(name, "DOABLE_") {
			t.Setenv(name, "")
		}
	}
	t.Chdir(t.TempDir())
	work, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	return home, work
}

func runCapture(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), err
}

const seedJSON = `{
  "todo":  [{"id": "t1", "title": "Write docs", "description": "README and usage"}],
  "doing": [{"id": "t2", "title": "Ship it", "status": "doing"}],
  "done":  []
}`

func writeSeed(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "board.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun(t *testing.T) {
	isolate(t)

	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr string
	}{
		{name: "help flag", args: []string{"--help"}, want: "Commands:"},
		{name: "short help flag", args: []string{"-h"}, want: "Commands:"},
		{name: "help command", args: []string{"help"}, want: "Global Options:"},
		{name: "version flag", args: []string{"--version"}, want: "doable version dev"},
		{name: "version command", args: []string{"version"}, want: "doable version dev"},
		{name: "unknown command", args: []string{"frobnicate"}, wantErr: "unknown command: frobnicate"},
		{name: "bad flag", args: []string{"-no-such-flag"}, wantErr: "loading config"},
		{name: "bad config value", args: []string{"-log-level", "loud"}, wantErr: "log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCapture(t, tt.args...)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("got error %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output %q does not contain %q", out, tt.want)
			}
		})
	}
}

func TestShowCommand(t *testing.T) {
	_, work := isolate(t)
	path := writeSeed(t, work, seedJSON)

	t.Run("sample board as text", func(t *testing.T) {
		out, err := runCapture(t, "show")
		if err != nil {
			t.Fatal(err)
		}
		sample := seed.Sample()
		for _, col := range board.Columns() {
			header := col.Title + " ("
			if !strings.Contains(out, header) {
				t.Errorf("missing column header %q in %q", header, out)
			}
		}
		for _, task := range sample.Tasks(board.ColumnTodo) {
			if !strings.Contains(out, task.Title) {
				t.Errorf("missing task %q", task.Title)
			}
		}
	})

	t.Run("seed file as text", func(t *testing.T) {
		out, err := runCapture(t, "show", "board.json")
		if err != nil {
			t.Fatal(err)
		}
		want := "To Do (1)\n  - t1: Write docs\n      README and usage\n\nDoing (1)\n  - t2: Ship it\n\nDone (0)\n  (empty)\n"
		if out != want {
			t.Errorf("got %q, want %q", out, want)
		}
	})

	t.Run("seed flag as json", func(t *testing.T) {
		out, err := runCapture(t, "-seed", path, "show", "-json")
		if err != nil {
			t.Fatal(err)
		}
		var b board.Board
		if err := json.Unmarshal([]byte(out), &b); err != nil {
			t.Fatalf("decode %q: %v", out, err)
		}
		if b.Len() != 2 || b.Count(board.ColumnDoing) != 1 {
			t.Errorf("got %d tasks, %d doing", b.Len(), b.Count(board.ColumnDoing))
		}
	})

	t.Run("too many arguments", func(t *testing.T) {
		if _, err := runCapture(t, "show", "a.json", "b.json"); err == nil {
			t.Error("expected error for extra arguments")
		}
	})

	t.Run("invalid seed file", func(t *testing.T) {
		bad := filepath.Join(work, "bad.json")
		if err := os.WriteFile(bad, []byte(`{"todo":[{"id":"x"}]}`), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := runCapture(t, "show", bad); err == nil {
			t.Error("expected validation error")
		}
	})
}

func TestValidateCommand(t *testing.T) {
	_, work := isolate(t)
	path := writeSeed(t, work, seedJSON)

	out, err := runCapture(t, "validate", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "is valid (2 tasks: 1 to do, 1 doing, 0 done)") {
		t.Errorf("got %q", out)
	}

	bad := filepath.Join(work, "mismatch.json")
	if err := os.WriteFile(bad, []byte(`{"todo":[{"id":"t1","title":"X","status":"done"}]}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := runCapture(t, "validate", bad); err == nil || !strings.Contains(err.Error(), "todo[0].status") {
		t.Errorf("got error %v, want status mismatch", err)
	}

	if _, err := runCapture(t, "validate"); err == nil {
		t.Error("expected error without a file")
	}
}

func TestTailCommand(t *testing.T) {
	home, work := isolate(t)
	logDir := filepath.Join(home, "logs")

	t.Run("no logs", func(t *testing.T) {
		out, err := runCapture(t, "-log-dir", logDir, "tail")
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(out, "No log files found.") {
			t.Errorf("got %q", out)
		}
	})

	session, err := logging.NewSessionLogger(logDir, work, logging.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	session.Logger.Info("first line")
	session.Logger.Info("second line")
	if err := session.Close(); err != nil {
		t.Fatal(err)
	}

	t.Run("last line", func(t *testing.T) {
		out, err := runCapture(t, "-log-dir", logDir, "tail", "-n", "1")
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(out, "Tailing: "+session.LogPath) {
			t.Errorf("missing log path in %q", out)
		}
		if !strings.Contains(out, "second line") || strings.Contains(out, "first line") {
			t.Errorf("got %q, want only the last line", out)
		}
	})
}

func TestConfigCommand(t *testing.T) {
	isolate(t)
	t.Setenv("DOABLE_LOG_LEVEL", "debug")

	out, err := runCapture(t, "-column-width", "40", "config")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"Config file: (none)",
		`log_level              "debug"`,
		"(environment)",
		`column_width           "40"`,
		"(flag)",
		"(default)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}

	out, err = runCapture(t, "config", "-example")
	if err != nil {
		t.Fatal(err)
	}
	if out != config.ExampleConfig() {
		t.Errorf("got %q, want the example config", out)
	}
}

func TestTUIRequiresTerminal(t *testing.T) {
	if ui.IsTTY(os.Stdout) {
		t.Skip("stdout is a terminal")
	}
	home, _ := isolate(t)
	logDir := filepath.Join(home, "logs")

	_, err := runCapture(t, "-log-dir", logDir, "tui")
	if err == nil || !strings.Contains(err.Error(), "TTY") {
		t.Fatalf("got error %v, want TTY error", err)
	}
	// The session log is created before the view starts.
	if latest, _ := logging.FindLatestLog(mustLogDir(t, logDir)); latest == "" {
		t.Error("expected a session log file")
	}
}

func mustLogDir(t *testing.T, base string) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	dir, err := logging.FindLogDir(base, wd)
	if err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestAppNotifiesSinks(t *testing.T) {
	_, work := isolate(t)
	mr := miniredis.RunT(t)

	cfg := &config.Config{
		ProjectRoot: work,
		Notify: config.NotifyConfig{
			SnapshotFile: filepath.Join(work, "out", "board.json"),
			RedisAddr:    mr.Addr(),
			Workers:      2,
			QueueSize:    4,
		},
	}
	var logs bytes.Buffer
	logger := log.New(&logs)

	a := newApp(context.Background(), cfg, seed.Sample(), work, logger)
	task := a.store.NewTask("Review PR", "")
	a.store.AddTask(board.ColumnTodo, task)
	a.store.MoveTask(task.ID, board.ColumnTodo, board.ColumnDone)
	a.close()

	want := a.store.Snapshot()

	data, err := os.ReadFile(cfg.Notify.SnapshotFile)
	if err != nil {
		t.Fatalf("snapshot file: %v", err)
	}
	var got board.Board
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if !got.Equal(want) {
		t.Errorf("snapshot file holds %s", data)
	}

	stored, err := mr.Get("doable:board")
	if err != nil {
		t.Fatalf("redis key: %v", err)
	}
	var fromRedis board.Board
	if err := json.Unmarshal([]byte(stored), &fromRedis); err != nil {
		t.Fatal(err)
	}
	if !fromRedis.Equal(want) {
		t.Errorf("redis holds %s", stored)
	}

	if !strings.HasPrefix(task.ID, board.DefaultIDPrefix) {
		t.Errorf("task id %q lacks prefix %q", task.ID, board.DefaultIDPrefix)
	}
	if !strings.Contains(logs.String(), "notifications done") {
		t.Errorf("missing dispatcher stats in logs: %s", logs.String())
	}
}

func TestAppWithoutRedis(t *testing.T) {
	_, work := isolate(t)
	cfg := &config.Config{
		ProjectRoot: work,
		Notify:      config.NotifyConfig{RedisAddr: "127.0.0.1:1"},
	}
	var logs bytes.Buffer
	a := newApp(context.Background(), cfg, board.Board{}, work, log.New(&logs))
	a.store.AddTask(board.ColumnTodo, a.store.NewTask("x", ""))
	a.close()

	if a.store.Snapshot().Len() != 1 {
		t.Error("board should work without redis")
	}
	if !strings.Contains(logs.String(), "redis unavailable") {
		t.Errorf("expected a redis warning, got %s", logs.String())
	}
}
