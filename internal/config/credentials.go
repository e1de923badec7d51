package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/riordanpawley/melia/internal/services/taiga"
)

// CredentialStore persists the auth/refresh token pair on disk so a
// login survives across runs. Tokens are written with 0600 permissions.
type CredentialStore struct {
	path string
}

// NewCredentialStore creates a store backed by the given file path.
func NewCredentialStore(path string) *CredentialStore {
	return &CredentialStore{path: path}
}

// LoadCredentials reads the stored token pair. A missing file is not an
// error; it returns empty credentials.
func (s *CredentialStore) LoadCredentials() (taiga.Credentials, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return taiga.Credentials{}, nil
		}
		return taiga.Credentials{}, fmt.Errorf("failed to read credentials: %w", err)
	}

	var creds taiga.Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return taiga.Credentials{}, fmt.Errorf("failed to parse credentials: %w", err)
	}
	return creds, nil
}

// SaveCredentials writes the token pair, replacing any previous one.
func (s *CredentialStore) SaveCredentials(creds taiga.Credentials) error {
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write credentials: %w", err)
	}
	return nil
}

// ClearCredentials removes the stored token pair. Clearing an absent
// file is a no-op.
func (s *CredentialStore) ClearCredentials() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove credentials: %w", err)
	}
	return nil
}
