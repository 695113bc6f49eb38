package prefs

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, err)
	return store
}

func TestLanguageDefaultsForUnknownUser(t *testing.T) {
	store := openTestStore(t)

	assert.Equal(t, DefaultLanguage, store.Language(42))
}

func TestSetLanguageRoundTrip(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.SetLanguage(42, "ar"))
	assert.Equal(t, "ar", store.Language(42))
}

func TestSetLanguageUpserts(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.SetLanguage(42, "ar"))
	require.NoError(t, store.SetLanguage(42, "fr"))

	assert.Equal(t, "fr", store.Language(42))
}

func TestLanguagesAreIndependentPerUser(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.SetLanguage(1, "ar"))
	require.NoError(t, store.SetLanguage(2, "fr"))

	assert.Equal(t, "ar", store.Language(1))
	assert.Equal(t, "fr", store.Language(2))
	assert.Equal(t, DefaultLanguage, store.Language(3))
}

func TestPreferencesSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.SetLanguage(42, "fr"))

	reopened, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, "fr", reopened.Language(42))
}
