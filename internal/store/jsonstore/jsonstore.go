package jsonstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/idilsaglam/farah/internal/store"
)

// Directory-backed storage medium. One human-readable file per key.
// No locking; fine for a local single-user tool.

const fileExt = ".json"

// ErrInvalidKey is returned for keys that cannot be used as a file name.
var ErrInvalidKey = errors.New("invalid storage key")

// Dir stores each key in <Path>/<key>.json. Quota, when positive, caps the
// size of a single value.
type Dir struct {
	Path  string
	Quota int
}

// New returns a medium rooted at dir. The directory is created on the
// first write.
func New(dir string) *Dir {
	return &Dir{Path: dir}
}

var _ store.Medium = (*Dir)(nil)

// CheckKey reports whether key can name a file inside the directory.
func CheckKey(key string) error {
	if key == "" || key == "." || key == ".." ||
		strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

func (d *Dir) filePath(key string) (string, error) {
	if err := CheckKey(key); err != nil {
		return "", err
	}
	return filepath.Join(d.Path, key+fileExt), nil
}

func (d *Dir) GetItem(key string) (string, bool, error) {
	p, err := d.filePath(key)
	if err != nil {
		return "", false, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read file: %w", err)
	}
	return string(b), true, nil
}

func (d *Dir) SetItem(key, value string) error {
	p, err := d.filePath(key)
	if err != nil {
		return err
	}
	if d.Quota > 0 && len(value) > d.Quota {
		return fmt.Errorf("set %q (%d bytes): %w", key, len(value), store.ErrQuotaExceeded)
	}
	if err := os.MkdirAll(d.Path, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	tmp, err := os.CreateTemp(d.Path, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		return fmt.Errorf("write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close file: %w", err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

func (d *Dir) RemoveItem(key string) error {
	p, err := d.filePath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("remove: %w", err)
	}
	return nil
}
