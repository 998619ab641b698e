package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"

	"github.com/nibzard/doable-go/internal/board"
)

// HookOptions configures a hook invocation.
type HookOptions struct {
	Command      string
	SnapshotPath string
	Label        string
	WorkDir      string
	Stdout       io.Writer
	Stderr       io.Writer
}

// HookResult captures the outcome of a hook invocation.
type HookResult struct {
	Ran       bool
	Command   []string
	ExitCode  int
	TaskCount int
}

// InvokeHook writes b to the snapshot path and runs the hook command as
//
//	<command> <snapshot-path> <task-count> <label>
//
// An empty command is not an error; nothing runs.
func InvokeHook(ctx context.Context, opts HookOptions, b board.Board) (HookResult, error) {
	if opts.Command == "" {
		return HookResult{}, nil
	}
	if opts.SnapshotPath == "" {
		return HookResult{}, fmt.Errorf("hook snapshot path is empty")
	}
	if err := writeSnapshot(opts.SnapshotPath, b); err != nil {
		return HookResult{}, err
	}

	if ctx == nil {
		ctx = context.Background()
	}

	count := b.Len()
	args := []string{opts.SnapshotPath, strconv.Itoa(count), opts.Label}
	cmd := exec.CommandContext(ctx, opts.Command, args...)
	if opts.WorkDir != "" {
		cmd.Dir = opts.WorkDir
	}
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr
	if cmd.Stdout == nil {
		cmd.Stdout = io.Discard
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	err := cmd.Run()
	result := HookResult{
		Ran:       true,
		Command:   cmd.Args,
		ExitCode:  exitCodeFromError(err),
		TaskCount: count,
	}
	if err != nil {
		return result, fmt.Errorf("hook command failed: %w", err)
	}
	return result, nil
}

// HookSink runs a hook command for every snapshot.
type HookSink struct {
	Options HookOptions
}

// Notify implements Sink.
func (s HookSink) Notify(ctx context.Context, b board.Board) error {
	_, err := InvokeHook(ctx, s.Options, b)
	return err
}

func exitCodeFromError(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
