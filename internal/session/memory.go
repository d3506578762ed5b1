// ABOUTME: In-memory TokenStore and Flag implementations
// ABOUTME: Used by tests and anywhere persistence is unwanted

package session

import "sync"

// MemoryTokenStore holds the token in memory.
type MemoryTokenStore struct {
	mu  sync.Mutex
	tok Token
	set bool
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Load() (Token, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set || s.tok.Expired() {
		return Token{}, false, nil
	}
	return s.tok, true, nil
}

func (s *MemoryTokenStore) Save(tok Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tok = tok
	s.set = true
	return nil
}

func (s *MemoryTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tok = Token{}
	s.set = false
	return nil
}

// MemoryFlag holds the session flag in memory.
type MemoryFlag struct {
	mu  sync.Mutex
	set bool
}

func NewMemoryFlag() *MemoryFlag {
	return &MemoryFlag{}
}

func (f *MemoryFlag) Set() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.set = true
	return nil
}

func (f *MemoryFlag) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.set = false
	return nil
}

func (f *MemoryFlag) IsSet() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.set
}
