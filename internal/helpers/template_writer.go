// Where: internal/helpers/template_writer.go
// What: Template writer for instrumented output.
// Why: Rewrite templates atomically so a failed write never truncates the input.
package helpers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// TemplateWriter persists instrumented template content.
type TemplateWriter struct {
	// Out receives the content instead of the filesystem when set (dry runs).
	Out io.Writer
}

// Write stores the content at path, or streams it to Out when configured.
// Local writes go through a temp file in the target directory plus rename.
func (w TemplateWriter) Write(path string, content []byte) error {
	if w.Out != nil {
		if _, err := w.Out.Write(content); err != nil {
			return fmt.Errorf("write template: %w", err)
		}
		return nil
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".layerline-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp template: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp template: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp template: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace template: %w", err)
	}
	return nil
}
