package adapter

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/tsawler/pdflayout/errs"
)

// run executes an external tool and returns its standard output, wrapping
// any failure (missing binary, non-zero exit, cancelled context) in
// errs.ErrExternalToolFailed.
func run(ctx context.Context, name string, args ...string) ([]byte, error) {
	if _, err := exec.LookPath(name); err != nil {
		return nil, fmt.Errorf("adapter: %w: %s not found: %v", errs.ErrExternalToolFailed, name, err)
	}

	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("adapter: %w: %s: %v", errs.ErrExternalToolFailed, name, err)
	}
	return out, nil
}

// withTempFile creates a fresh temp directory, passes fn a not-yet-existing
// file path inside it, returns what fn wrote there, and removes the
// directory afterward. Several
// poppler tools refuse to write to stdout and require a real output path.
func withTempFile(prefix string, fn func(path string) error) (string, error) {
	dir, err := os.MkdirTemp("", prefix)
	if err != nil {
		return "", fmt.Errorf("adapter: %w: %v", errs.ErrExternalToolFailed, err)
	}
	defer os.RemoveAll(dir)

	path := dir + "/out"
	if err := fn(path); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("adapter: %w: %v", errs.ErrExternalToolFailed, err)
	}
	return string(data), nil
}
