// Package sink persists generated artifacts on disk.
package sink

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileName is the artifact naming convention <qrId>_<width>.<ext>.
func FileName(qrID string, width int, ext string) string {
	return fmt.Sprintf("%s_%d.%s", qrID, width, ext)
}

// Dir writes artifacts under Root, one sub-directory per format.
type Dir struct {
	Root string
}

// Path returns where an artifact of the given format and name is written.
func (d Dir) Path(format, name string) string {
	return filepath.Join(d.Root, format, name)
}

// Write stores data as <Root>/<format>/<name>, creating directories on
// demand, and returns the absolute path written.
func (d Dir) Write(format, name string, data []byte) (string, error) {
	path := d.Path(format, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs, nil
	}
	return path, nil
}
