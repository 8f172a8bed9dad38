package tsgen

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile writes content to path, creating parent directories and
// replacing any existing file.
func WriteFile(path string, content []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// #nosec G306 - generated sources are meant to be read by other tools
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write endpoints file: %w", err)
	}
	return nil
}
