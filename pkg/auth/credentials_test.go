package auth

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCredentialManager(t *testing.T) {
	// Use mock manager for reliable testing
	manager, mockStore := NewMockManager()

	account := &Account{
		Email:        "analyst@example.com",
		Password:     "test_password_12345",
		LastModified: time.Now(),
	}

	if err := manager.Store(account); err != nil {
		t.Errorf("Failed to store account: %v", err)
	}

	// Test resolving credentials
	resolved, source, err := manager.Resolve()
	if err != nil {
		t.Fatalf("Failed to resolve account: %v", err)
	}

	if resolved.Email != account.Email {
		t.Errorf("Email mismatch: got %s, want %s", resolved.Email, account.Email)
	}
	if resolved.Password != account.Password {
		t.Errorf("Password mismatch after round-trip")
	}
	if source != "mock" {
		t.Errorf("Expected source 'mock', got %s", source)
	}

	// Test sanitization
	sanitized := SanitizeAccount(account)
	if sanitized.Password == account.Password {
		t.Error("Password should be masked")
	}
	if sanitized.Email != account.Email {
		t.Error("Email should not be masked")
	}

	// Test deletion
	if err := manager.Delete(); err != nil {
		t.Errorf("Failed to delete account: %v", err)
	}

	if _, _, err := manager.Resolve(); err == nil {
		t.Error("Expected error resolving deleted account")
	}

	if mockStore.Exists() {
		t.Error("Expected mock store to be empty after deletion")
	}
}

func TestManagerStoreValidation(t *testing.T) {
	manager, _ := NewMockManager()

	if err := manager.Store(&Account{Password: "p"}); err == nil {
		t.Error("Expected error for missing email")
	}
	if err := manager.Store(&Account{Email: "a@b.c"}); err == nil {
		t.Error("Expected error for missing password")
	}
}

func TestManagerChainOrder(t *testing.T) {
	// First store empty, second store holds the account
	first := NewMockStore()
	second := NewMockStore()
	second.account = &Account{Email: "second@example.com", Password: "p2"}

	manager := NewManagerWithStores(first, second)

	resolved, source, err := manager.Resolve()
	if err != nil {
		t.Fatalf("Failed to resolve: %v", err)
	}
	if resolved.Email != "second@example.com" {
		t.Errorf("Expected account from second store, got %s", resolved.Email)
	}
	if source != "mock" {
		t.Errorf("Expected source 'mock', got %s", source)
	}

	// Both stores populated: first wins
	first.account = &Account{Email: "first@example.com", Password: "p1"}
	resolved, _, err = manager.Resolve()
	if err != nil {
		t.Fatalf("Failed to resolve: %v", err)
	}
	if resolved.Email != "first@example.com" {
		t.Errorf("Expected account from first store, got %s", resolved.Email)
	}
}

func TestManagerStoreFallsThroughUnavailable(t *testing.T) {
	// A read-only store ahead of a writable one
	readOnly := NewMockStore()
	readOnly.StoreError = ErrStoreUnavailable
	writable := NewMockStore()

	manager := NewManagerWithStores(readOnly, writable)

	account := &Account{Email: "analyst@example.com", Password: "secret"}
	if err := manager.Store(account); err != nil {
		t.Fatalf("Failed to store through chain: %v", err)
	}

	if readOnly.Exists() {
		t.Error("Read-only store should not hold the account")
	}
	if !writable.Exists() {
		t.Error("Writable store should hold the account")
	}
}

func TestEncryptedFileStore(t *testing.T) {
	tempFile := filepath.Join(t.TempDir(), "test_creds.enc")

	// Set test passphrase so no passphrase file is touched
	t.Setenv("SISCRAPER_PASSPHRASE", "test_passphrase_123")

	store, err := NewEncryptedFileStore(tempFile)
	if err != nil {
		t.Fatalf("Failed to create encrypted store: %v", err)
	}

	account := &Account{
		Email:    "encrypted@example.com",
		Password: "encrypted_password",
	}

	if err := store.Store(account); err != nil {
		t.Errorf("Failed to store in encrypted file: %v", err)
	}

	retrieved, err := store.Retrieve()
	if err != nil {
		t.Fatalf("Failed to retrieve from encrypted file: %v", err)
	}

	if retrieved.Email != account.Email {
		t.Errorf("Email mismatch after encryption/decryption")
	}
	if retrieved.Password != account.Password {
		t.Errorf("Password mismatch after encryption/decryption")
	}

	// Verify file is actually encrypted
	fileContent, err := os.ReadFile(tempFile)
	if err != nil {
		t.Fatal(err)
	}

	if bytes.Contains(fileContent, []byte("encrypted@example.com")) {
		t.Error("File contains plaintext email")
	}
	if bytes.Contains(fileContent, []byte("encrypted_password")) {
		t.Error("File contains plaintext password")
	}

	// Delete removes the file
	if err := store.Delete(); err != nil {
		t.Errorf("Failed to delete encrypted store: %v", err)
	}
	if store.Exists() {
		t.Error("Store should not exist after deletion")
	}
}

func TestEnvironmentStore(t *testing.T) {
	t.Setenv("SISCRAPER_EMAIL", "env@example.com")
	t.Setenv("SISCRAPER_PASSWORD", "env_password")

	store := NewEnvironmentStore()

	account, err := store.Retrieve()
	if err != nil {
		t.Fatalf("Failed to retrieve from environment: %v", err)
	}

	if account.Email != "env@example.com" {
		t.Errorf("Email mismatch: got %s, want env@example.com", account.Email)
	}
	if account.Password != "env_password" {
		t.Errorf("Password mismatch: got env store value %q", account.Password)
	}

	// Test that store is not supported
	if err := store.Store(&Account{}); !errors.Is(err, ErrStoreUnavailable) {
		t.Error("Expected ErrStoreUnavailable for environment store")
	}
	if err := store.Delete(); !errors.Is(err, ErrStoreUnavailable) {
		t.Error("Expected ErrStoreUnavailable for environment delete")
	}
}

func TestEnvironmentStoreIncomplete(t *testing.T) {
	t.Setenv("SISCRAPER_EMAIL", "env@example.com")
	t.Setenv("SISCRAPER_PASSWORD", "")

	store := NewEnvironmentStore()

	if _, err := store.Retrieve(); !errors.Is(err, ErrCredentialsNotFound) {
		t.Error("Expected ErrCredentialsNotFound when password is unset")
	}
	if store.Exists() {
		t.Error("Exists should be false when password is unset")
	}
}

func TestLegacyFileStore(t *testing.T) {
	tempDir := t.TempDir()
	store := NewLegacyFileStore(tempDir)

	// Empty directory: nothing to retrieve
	if _, err := store.Retrieve(); !errors.Is(err, ErrCredentialsNotFound) {
		t.Error("Expected ErrCredentialsNotFound for empty directory")
	}

	// Dotfiles written by earlier tooling, with trailing newlines
	if err := os.WriteFile(filepath.Join(tempDir, ".si_id"), []byte("legacy@example.com\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tempDir, ".si_pass"), []byte("legacy_password\n"), 0600); err != nil {
		t.Fatal(err)
	}

	account, err := store.Retrieve()
	if err != nil {
		t.Fatalf("Failed to retrieve from legacy files: %v", err)
	}
	if account.Email != "legacy@example.com" {
		t.Errorf("Email mismatch: got %q", account.Email)
	}
	if account.Password != "legacy_password" {
		t.Errorf("Password mismatch: got legacy value %q", account.Password)
	}

	if !store.Exists() {
		t.Error("Exists should be true with both dotfiles present")
	}

	// Round-trip through Store
	if err := store.Store(&Account{Email: "new@example.com", Password: "new_password"}); err != nil {
		t.Fatalf("Failed to store legacy files: %v", err)
	}
	account, err = store.Retrieve()
	if err != nil {
		t.Fatalf("Failed to retrieve after store: %v", err)
	}
	if account.Email != "new@example.com" {
		t.Errorf("Email mismatch after store: got %q", account.Email)
	}

	// Delete removes both files
	if err := store.Delete(); err != nil {
		t.Errorf("Failed to delete legacy files: %v", err)
	}
	if store.Exists() {
		t.Error("Exists should be false after deletion")
	}
	if err := store.Delete(); !errors.Is(err, ErrCredentialsNotFound) {
		t.Error("Expected ErrCredentialsNotFound deleting twice")
	}
}

func TestLegacyFileStoreMissingPassword(t *testing.T) {
	tempDir := t.TempDir()
	store := NewLegacyFileStore(tempDir)

	if err := os.WriteFile(filepath.Join(tempDir, ".si_id"), []byte("only@example.com\n"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := store.Retrieve(); !errors.Is(err, ErrCredentialsNotFound) {
		t.Error("Expected ErrCredentialsNotFound with only the email file")
	}
}

func TestManagerWithEncryptedAndLegacyStores(t *testing.T) {
	tempDir := t.TempDir()

	t.Setenv("SISCRAPER_PASSPHRASE", "chain_test_passphrase")

	encryptedStore, err := NewEncryptedFileStore(filepath.Join(tempDir, "credentials.enc"))
	if err != nil {
		t.Fatalf("Failed to create encrypted store: %v", err)
	}
	legacyStore := NewLegacyFileStore(tempDir)

	manager := NewManagerWithStores(encryptedStore, legacyStore)

	// Only legacy dotfiles present: the chain falls through to them
	if err := legacyStore.Store(&Account{Email: "legacy@example.com", Password: "lp"}); err != nil {
		t.Fatal(err)
	}

	resolved, source, err := manager.Resolve()
	if err != nil {
		t.Fatalf("Failed to resolve: %v", err)
	}
	if resolved.Email != "legacy@example.com" {
		t.Errorf("Expected legacy account, got %s", resolved.Email)
	}
	if source != "legacy files" {
		t.Errorf("Expected source 'legacy files', got %s", source)
	}

	// Storing through the manager prefers the encrypted store
	if err := manager.Store(&Account{Email: "preferred@example.com", Password: "pp"}); err != nil {
		t.Fatalf("Failed to store: %v", err)
	}

	resolved, source, err = manager.Resolve()
	if err != nil {
		t.Fatalf("Failed to resolve: %v", err)
	}
	if resolved.Email != "preferred@example.com" {
		t.Errorf("Expected encrypted-store account, got %s", resolved.Email)
	}
	if source != "encrypted file" {
		t.Errorf("Expected source 'encrypted file', got %s", source)
	}

	// Logout clears every store
	if err := manager.Delete(); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}
	if encryptedStore.Exists() || legacyStore.Exists() {
		t.Error("Expected all stores empty after delete")
	}
}

func TestMockStoreErrorInjection(t *testing.T) {
	store := NewMockStore()

	if err := store.Store(&Account{Email: "mock@example.com", Password: "mp"}); err != nil {
		t.Errorf("Failed to store account: %v", err)
	}
	if !store.Exists() {
		t.Error("Account should exist")
	}

	store.RetrieveError = fmt.Errorf("injected error")
	if _, err := store.Retrieve(); err == nil || err.Error() != "injected error" {
		t.Error("Expected injected error")
	}
}
