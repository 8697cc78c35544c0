// Package fileio writes rendered line sets back to disk for the format
// engines.
package fileio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/maseology/mmio"
)

// WriteLines writes lines to path, each terminated by a newline, through a
// temp file in the destination directory. The temp file is renamed over the
// target on success, so a failed write never truncates an existing file.
func WriteLines(path string, lines []string) error {
	dir := filepath.Dir(path)
	mmio.MakeDir(dir)

	tmp, err := os.CreateTemp(dir, ".rorbedit-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	if _, err := tmp.WriteString(sb.String()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
