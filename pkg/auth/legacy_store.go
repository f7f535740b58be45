package auth

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	legacyEmailFile    = ".si_id"
	legacyPasswordFile = ".si_pass"
)

// LegacyFileStore reads the plaintext dotfiles earlier tooling kept in
// the working directory: .si_id holds the email, .si_pass the password.
// Kept for compatibility; new credentials belong in the keyring or the
// encrypted store.
type LegacyFileStore struct {
	dir string
}

// NewLegacyFileStore creates a store over the given directory
func NewLegacyFileStore(dir string) *LegacyFileStore {
	if dir == "" {
		dir = "."
	}
	return &LegacyFileStore{dir: dir}
}

// Name identifies the store
func (l *LegacyFileStore) Name() string {
	return "legacy files"
}

func (l *LegacyFileStore) emailPath() string {
	return filepath.Join(l.dir, legacyEmailFile)
}

func (l *LegacyFileStore) passwordPath() string {
	return filepath.Join(l.dir, legacyPasswordFile)
}

// Store writes both dotfiles
func (l *LegacyFileStore) Store(account *Account) error {
	if account == nil || account.Email == "" {
		return ErrInvalidCredentials
	}

	if err := os.WriteFile(l.emailPath(), []byte(account.Email+"\n"), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", legacyEmailFile, err)
	}
	if err := os.WriteFile(l.passwordPath(), []byte(account.Password+"\n"), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", legacyPasswordFile, err)
	}

	return nil
}

// Retrieve reads both dotfiles; missing or empty files mean no credentials
func (l *LegacyFileStore) Retrieve() (*Account, error) {
	email, emailMod, err := readTrimmedFile(l.emailPath())
	if err != nil {
		return nil, ErrCredentialsNotFound
	}
	password, passMod, err := readTrimmedFile(l.passwordPath())
	if err != nil {
		return nil, ErrCredentialsNotFound
	}

	if email == "" || password == "" {
		return nil, ErrCredentialsNotFound
	}

	modified := emailMod
	if passMod.After(modified) {
		modified = passMod
	}

	return &Account{
		Email:        email,
		Password:     password,
		LastModified: modified,
	}, nil
}

// Delete removes both dotfiles
func (l *LegacyFileStore) Delete() error {
	errEmail := os.Remove(l.emailPath())
	errPass := os.Remove(l.passwordPath())

	if os.IsNotExist(errEmail) && os.IsNotExist(errPass) {
		return ErrCredentialsNotFound
	}
	for _, err := range []error{errEmail, errPass} {
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove legacy file: %w", err)
		}
	}

	return nil
}

// Exists checks whether both dotfiles hold values
func (l *LegacyFileStore) Exists() bool {
	_, err := l.Retrieve()
	return err == nil
}

func readTrimmedFile(path string) (string, time.Time, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", time.Time{}, err
	}

	modified := time.Time{}
	if info, err := os.Stat(path); err == nil {
		modified = info.ModTime()
	}

	return strings.TrimSpace(string(content)), modified, nil
}
