package hal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var ErrBadFileName = errors.New("bad file name")

// dirStorage writes files into one directory, standing in for a browser download.
type dirStorage struct {
	dir string
}

// DirStorage returns a Storage that writes into dir, creating it on demand.
func DirStorage(dir string) Storage {
	return &dirStorage{dir: dir}
}

func (s *dirStorage) WriteFile(name string, data []byte) error {
	base := filepath.Base(name)
	if base != name || base == "." || base == ".." || base == string(filepath.Separator) {
		return fmt.Errorf("storage write %q: %w", name, ErrBadFileName)
	}
	dir := s.dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("storage mkdir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, base), data, 0o644); err != nil {
		return fmt.Errorf("storage write: %w", err)
	}
	return nil
}
