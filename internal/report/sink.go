package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Sink persists finished report files. FileSink is always active; S3Sink is
// layered on top when uploads are enabled.
type Sink interface {
	// Write stores content under name and returns where it landed.
	Write(ctx context.Context, name string, content []byte) (string, error)
}

// FileSink writes reports into a local output directory.
type FileSink struct {
	Dir string
}

func NewFileSink(dir string) *FileSink {
	if dir == "" {
		dir = "."
	}
	return &FileSink{Dir: dir}
}

func (s *FileSink) Write(_ context.Context, name string, content []byte) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output dir: %w", err)
	}
	path := filepath.Join(s.Dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	return path, nil
}

// Path returns where a report with the given name would be written.
func (s *FileSink) Path(name string) string {
	return filepath.Join(s.Dir, name)
}
