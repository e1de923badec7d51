package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/riordanpawley/melia/internal/services/taiga"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialStore_RoundTrip(t *testing.T) {
	store := NewCredentialStore(filepath.Join(t.TempDir(), "state", "credentials.json"))

	// Missing file yields empty credentials, not an error.
	creds, err := store.LoadCredentials()
	require.NoError(t, err)
	assert.Empty(t, creds.AuthToken)

	require.NoError(t, store.SaveCredentials(taiga.Credentials{
		AuthToken:    "token-1",
		RefreshToken: "refresh-1",
	}))

	creds, err = store.LoadCredentials()
	require.NoError(t, err)
	assert.Equal(t, "token-1", creds.AuthToken)
	assert.Equal(t, "refresh-1", creds.RefreshToken)
}

func TestCredentialStore_FilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not meaningful on windows")
	}

	path := filepath.Join(t.TempDir(), "credentials.json")
	store := NewCredentialStore(path)
	require.NoError(t, store.SaveCredentials(taiga.Credentials{AuthToken: "t"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestCredentialStore_Clear(t *testing.T) {
	store := NewCredentialStore(filepath.Join(t.TempDir(), "credentials.json"))

	// Clearing before anything was saved is fine.
	require.NoError(t, store.ClearCredentials())

	require.NoError(t, store.SaveCredentials(taiga.Credentials{AuthToken: "t"}))
	require.NoError(t, store.ClearCredentials())

	creds, err := store.LoadCredentials()
	require.NoError(t, err)
	assert.Empty(t, creds.AuthToken)
}
