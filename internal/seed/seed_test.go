package seed

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nibzard/doable-go/internal/board"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFormats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "json",
			file: "board.json",
			content: `{
  "todo": [{"id": "t1", "title": "X", "status": "todo"}],
  "doing": [{"id": "t2", "title": "Y", "description": "why"}],
  "done": []
}`,
		},
		{
			name: "yaml",
			file: "board.yaml",
			content: `todo:
  - id: t1
    title: X
    status: todo
doing:
  - id: t2
    title: "Y"
    description: why
done: []
`,
		},
		{
			name: "toml",
			file: "board.toml",
			content: `[[todo]]
id = "t1"
title = "X"
status = "todo"

[[doing]]
id = "t2"
title = "Y"
description = "why"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Load(writeFile(t, tt.file, tt.content))
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if b.Len() != 2 {
				t.Fatalf("Len: got %d, want 2", b.Len())
			}
			task, col, ok := b.Find("t2")
			if !ok || col != board.ColumnDoing {
				t.Fatalf("Find(t2): got column %q (%v), want doing", col, ok)
			}
			if task.Status != board.ColumnDoing || task.Description != "why" {
				t.Errorf("t2: got %+v", task)
			}
		})
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantPath string
	}{
		{"missing title", `{"todo":[{"id":"t1"}]}`, "todo[0]"},
		{"empty id", `{"todo":[{"id":"","title":"X"}]}`, "todo[0].id"},
		{"unknown status", `{"doing":[{"id":"t1","title":"X","status":"blocked"}]}`, "doing[0].status"},
		{"unknown column", `{"later":[]}`, ""},
		{"duplicate id", `{"todo":[{"id":"t1","title":"X"}],"done":[{"id":"t1","title":"Y"}]}`, "done[0].id"},
		{"status mismatch", `{"todo":[{"id":"t1","title":"X","status":"done"}]}`, "todo[0].status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadDocument(writeFile(t, "board.json", tt.content))
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if tt.wantPath != "" && !strings.Contains(err.Error(), tt.wantPath) {
				t.Errorf("error %q does not mention %q", err, tt.wantPath)
			}
		})
	}
}

func TestValidationErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := &ValidationError{Path: "todo[0]", Err: inner}
	if !errors.Is(err, inner) {
		t.Error("ValidationError should unwrap to its cause")
	}
	if err.Error() != "todo[0]: boom" {
		t.Errorf("Error: got %q", err.Error())
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil || !strings.Contains(err.Error(), "read seed file") {
		t.Errorf("expected read error, got %v", err)
	}
}

func TestLoadEmptyYAML(t *testing.T) {
	b, err := Load(writeFile(t, "board.yml", ""))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if b.Len() != 0 {
		t.Errorf("Len: got %d, want 0", b.Len())
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	if err := Save(path, Sample()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !loaded.Equal(Sample()) {
		t.Errorf("loaded board differs: %v", loaded.Map())
	}
}

func TestSample(t *testing.T) {
	b := Sample()
	if err := b.Check(); err != nil {
		t.Fatalf("Check: %v", err)
	}
	counts := map[board.ColumnID]int{board.ColumnTodo: 2, board.ColumnDoing: 1, board.ColumnDone: 2}
	for col, want := range counts {
		if got := b.Count(col); got != want {
			t.Errorf("Count(%s): got %d, want %d", col, got, want)
		}
	}
}

func TestJSONPointerToPath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"/todo/0/id", "todo[0].id"},
		{"#/doing/12", "doing[12]"},
		{"/a~1b", "a/b"},
	}
	for _, tt := range tests {
		if got := jsonPointerToPath(tt.in); got != tt.want {
			t.Errorf("jsonPointerToPath(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}
