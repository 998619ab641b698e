// Package notify delivers board snapshots to external observers.
//
// The board store calls its change callback synchronously after every
// committed mutation. Sinks can be slow (files, processes, network), so the
// callback only hands the snapshot to a Dispatcher, which delivers it to the
// configured sinks off the caller's goroutine.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/nibzard/doable-go/internal/board"
)

// Sink receives board snapshots.
type Sink interface {
	Notify(ctx context.Context, b board.Board) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, b board.Board) error

// Notify calls f.
func (f SinkFunc) Notify(ctx context.Context, b board.Board) error {
	return f(ctx, b)
}

// LogSink logs a summary line for every snapshot.
type LogSink struct {
	Logger *log.Logger
}

// Notify implements Sink.
func (s LogSink) Notify(_ context.Context, b board.Board) error {
	if s.Logger == nil {
		return nil
	}
	s.Logger.Info("board changed",
		"todo", b.Count(board.ColumnTodo),
		"doing", b.Count(board.ColumnDoing),
		"done", b.Count(board.ColumnDone),
	)
	return nil
}

// FileSink writes every snapshot to Path as indented JSON. The write goes
// through a temporary file in the same directory and a rename, so readers
// never see a partial snapshot.
type FileSink struct {
	Path string
}

// Notify implements Sink.
func (s FileSink) Notify(_ context.Context, b board.Board) error {
	return writeSnapshot(s.Path, b)
}

func writeSnapshot(path string, b board.Board) error {
	if path == "" {
		return fmt.Errorf("snapshot path is empty")
	}
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename snapshot: %w", err)
	}
	return nil
}
