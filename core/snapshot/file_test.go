package snapshot

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore(t *testing.T) {
	ctx := context.Background()

	t.Run("MissingFile", func(t *testing.T) {
		store := NewFileStore(afero.NewMemMapFs(), "/var/lib/sync/snapshot.json")
		s, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, s)
	})

	t.Run("SaveThenLoad", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		store := NewFileStore(fs, "/var/lib/sync/snapshot.json")

		err := store.Save(ctx, Snapshot{"10.0.0.2": "a.example.com"})
		require.NoError(t, err)

		s, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, Snapshot{"10.0.0.2": "a.example.com"}, s)

		// No temporary file is left behind
		exists, err := afero.Exists(fs, "/var/lib/sync/snapshot.json.tmp")
		require.NoError(t, err)
		assert.False(t, exists)

		raw, err := afero.ReadFile(fs, "/var/lib/sync/snapshot.json")
		require.NoError(t, err)
		assert.Contains(t, string(raw), "\n  \"10.0.0.2\": \"a.example.com\"\n")
	})

	t.Run("Overwrite", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		store := NewFileStore(fs, "snapshot.json")

		require.NoError(t, store.Save(ctx, Snapshot{"10.0.0.1": "old.example.com"}))
		require.NoError(t, store.Save(ctx, Snapshot{"10.0.0.2": "new.example.com"}))

		s, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, Snapshot{"10.0.0.2": "new.example.com"}, s)
	})

	t.Run("Corrupt", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "snapshot.json", []byte("{oops"), 0o644))

		s, err := NewFileStore(fs, "snapshot.json").Load(ctx)
		assert.ErrorIs(t, err, ErrCorrupt)
		assert.NotNil(t, s)
		assert.Empty(t, s)
	})

	t.Run("ReadOnlyFs", func(t *testing.T) {
		fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
		err := NewFileStore(fs, "snapshot.json").Save(ctx, Snapshot{})
		assert.Error(t, err)
	})
}
