// ABOUTME: Token persistence with cookie-style expiry semantics
// ABOUTME: File-backed store under the user config directory

package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Token is a stored session credential.
type Token struct {
	Value     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the token's declared expiry has passed.
func (t Token) Expired() bool {
	return !t.ExpiresAt.IsZero() && time.Now().After(t.ExpiresAt)
}

// TokenStore persists the session token between runs.
type TokenStore interface {
	// Load returns the stored token. ok is false when no token is stored
	// or the stored token has expired.
	Load() (tok Token, ok bool, err error)
	Save(tok Token) error
	Clear() error
}

// FileTokenStore keeps the token in a JSON file, created 0600.
type FileTokenStore struct {
	path string
}

// NewFileTokenStore creates a store at path. The parent directory is created
// on first save.
func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

// Load reads the token file. A missing file and an expired token both load
// as absent, without error.
func (s *FileTokenStore) Load() (Token, bool, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return Token{}, false, nil
	}
	if err != nil {
		return Token{}, false, fmt.Errorf("reading token file: %w", err)
	}

	var tok Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return Token{}, false, fmt.Errorf("parsing token file: %w", err)
	}
	if tok.Value == "" || tok.Expired() {
		return Token{}, false, nil
	}
	return tok, true, nil
}

// Save writes the token file.
func (s *FileTokenStore) Save(tok Token) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("creating token directory: %w", err)
	}

	data, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("encoding token: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	return nil
}

// Clear removes the token file. Clearing an absent token is a no-op.
func (s *FileTokenStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing token file: %w", err)
	}
	return nil
}
