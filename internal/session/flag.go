// ABOUTME: Session-active flag consulted on restore
// ABOUTME: A token without this flag never re-authenticates silently

package session

import (
	"fmt"
	"os"
	"path/filepath"
)

// Flag marks that this session actually logged in, as opposed to merely
// holding a leftover valid token.
type Flag interface {
	Set() error
	Clear() error
	IsSet() bool
}

// FileFlag is a marker file sibling to the token file.
type FileFlag struct {
	path string
}

// NewFileFlag creates a flag at path.
func NewFileFlag(path string) *FileFlag {
	return &FileFlag{path: path}
}

// Set creates the marker file.
func (f *FileFlag) Set() error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return fmt.Errorf("creating flag directory: %w", err)
	}
	if err := os.WriteFile(f.path, []byte("active\n"), 0600); err != nil {
		return fmt.Errorf("writing flag file: %w", err)
	}
	return nil
}

// Clear removes the marker file. Clearing an absent flag is a no-op.
func (f *FileFlag) Clear() error {
	err := os.Remove(f.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing flag file: %w", err)
	}
	return nil
}

// IsSet reports whether the marker file exists.
func (f *FileFlag) IsSet() bool {
	_, err := os.Stat(f.path)
	return err == nil
}
