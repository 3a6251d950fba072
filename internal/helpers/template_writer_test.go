// Where: internal/helpers/template_writer_test.go
// What: Tests for the template writer.
// Why: Rewrites must land atomically and dry runs must stay off disk.
package helpers

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteReplacesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "template.yaml")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	writer := TemplateWriter{}
	if err := writer.Write(path, []byte("new content\n")); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "new content\n" {
		t.Fatalf("unexpected content: %q", data)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}
}

func TestWriteToWriter(t *testing.T) {
	var buf bytes.Buffer
	writer := TemplateWriter{Out: &buf}
	if err := writer.Write("ignored.yaml", []byte("streamed\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if buf.String() != "streamed\n" {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}
