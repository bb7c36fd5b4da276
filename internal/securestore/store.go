// Package securestore persists the login session encrypted at rest, keyed
// by a random key file readable only by the owning user. It fills the role
// a platform keychain/keystore plays on mobile.
package securestore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"nutridiary/internal/common"
	"nutridiary/internal/filex"
)

const (
	keyFileName     = "key.bin"
	sessionFileName = "session.bin"

	// The key file holds two 32-byte keys: the first seals the session
	// blob, the second is reserved for future database encryption.
	keyFileSize = 64
)

// Session is the persisted login state.
type Session struct {
	UserID   string    `json:"user_id"`
	Token    string    `json:"token"`
	IssuedAt time.Time `json:"issued_at"`
}

// Store reads and writes the key and session files under a data directory.
type Store struct {
	dir string
}

// New returns a Store rooted at dir. Files are created lazily.
func New(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) keyPath() string     { return filepath.Join(s.dir, keyFileName) }
func (s *Store) sessionPath() string { return filepath.Join(s.dir, sessionFileName) }

// ensureKeys loads the key file, generating it with mode 0600 on first use.
func (s *Store) ensureKeys() ([]byte, error) {
	raw, err := os.ReadFile(s.keyPath())
	if err == nil {
		if len(raw) != keyFileSize {
			return nil, fmt.Errorf("key file %s: unexpected size %d", s.keyPath(), len(raw))
		}
		return raw, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read key file: %w", err)
	}

	if _, err := filex.EnsureDir(s.dir); err != nil {
		return nil, err
	}

	raw = common.GenerateRandByteArray(keyFileSize)
	if err := os.WriteFile(s.keyPath(), raw, 0o600); err != nil {
		return nil, fmt.Errorf("write key file: %w", err)
	}
	return raw, nil
}

// SessionKey returns the 32-byte key sealing the session blob.
func (s *Store) SessionKey() ([]byte, error) {
	raw, err := s.ensureKeys()
	if err != nil {
		return nil, err
	}
	return raw[:32], nil
}

// DataEncryptionKey returns the reserved 32-byte key slot. Nothing uses it
// yet; it exists so enabling database encryption later does not invalidate
// installed key files.
func (s *Store) DataEncryptionKey() ([]byte, error) {
	raw, err := s.ensureKeys()
	if err != nil {
		return nil, err
	}
	return raw[32:], nil
}

// SaveSession seals the session and writes it to disk (nonce-prefixed
// ciphertext, mode 0600).
func (s *Store) SaveSession(session *Session) error {
	key, err := s.SessionKey()
	if err != nil {
		return err
	}

	ciphertext, nonce, err := encryptJSON(session, key)
	if err != nil {
		return fmt.Errorf("seal session: %w", err)
	}

	blob := append(nonce, ciphertext...)
	if err := os.WriteFile(s.sessionPath(), blob, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

// LoadSession reads and opens the persisted session. A missing session file
// yields common.ErrNotFound; an unreadable or tampered blob is an error.
func (s *Store) LoadSession() (*Session, error) {
	blob, err := os.ReadFile(s.sessionPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}

	key, err := s.SessionKey()
	if err != nil {
		return nil, err
	}

	const nonceSize = 12
	if len(blob) < nonceSize {
		return nil, fmt.Errorf("session file %s: too short", s.sessionPath())
	}

	session := &Session{}
	if err := decryptJSON(blob[nonceSize:], blob[:nonceSize], key, session); err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}
	return session, nil
}

// ClearSession removes the session file. Clearing an absent session is not
// an error.
func (s *Store) ClearSession() error {
	if err := os.Remove(s.sessionPath()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
