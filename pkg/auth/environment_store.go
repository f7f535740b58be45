package auth

import (
	"os"
	"time"
)

// EnvironmentStore implements CredentialStore using environment variables.
// It is read-only; login and logout pass over it.
type EnvironmentStore struct{}

// NewEnvironmentStore creates a new environment-based credential store
func NewEnvironmentStore() *EnvironmentStore {
	return &EnvironmentStore{}
}

// Name identifies the store
func (e *EnvironmentStore) Name() string {
	return "environment"
}

// Store is not supported for environment variables
func (e *EnvironmentStore) Store(account *Account) error {
	return ErrStoreUnavailable
}

// Retrieve gets credentials from environment variables
func (e *EnvironmentStore) Retrieve() (*Account, error) {
	email := os.Getenv("SISCRAPER_EMAIL")
	password := os.Getenv("SISCRAPER_PASSWORD")

	if email == "" || password == "" {
		return nil, ErrCredentialsNotFound
	}

	return &Account{
		Email:        email,
		Password:     password,
		LastModified: time.Now(),
	}, nil
}

// Delete is not supported for environment variables
func (e *EnvironmentStore) Delete() error {
	return ErrStoreUnavailable
}

// Exists checks if environment credentials exist
func (e *EnvironmentStore) Exists() bool {
	return os.Getenv("SISCRAPER_EMAIL") != "" && os.Getenv("SISCRAPER_PASSWORD") != ""
}
