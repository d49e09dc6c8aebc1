package memory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseStore runs the shared contract against any Memory implementation
func exerciseStore(t *testing.T, mem Memory) {
	t.Helper()
	ctx := context.Background()

	require.ErrorIs(t, mem.Store(ctx, "", []byte("x")), ErrKeyEmpty)
	_, err := mem.Retrieve(ctx, "")
	require.ErrorIs(t, err, ErrKeyEmpty)

	require.NoError(t, mem.Store(ctx, "ui:prefs", []byte("one")))
	require.NoError(t, mem.Store(ctx, "ui:search", []byte("two")))
	require.NoError(t, mem.Store(ctx, "other", []byte("three")))

	got, err := mem.Retrieve(ctx, "ui:prefs")
	require.NoError(t, err)
	assert.Equal(t, "one", string(got))

	keys, err := mem.List(ctx, "ui:")
	require.NoError(t, err)
	assert.Equal(t, []string{"ui:prefs", "ui:search"}, keys)

	all, err := mem.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	require.NoError(t, mem.Delete(ctx, "ui:prefs"))
	_, err = mem.Retrieve(ctx, "ui:prefs")
	assert.ErrorIs(t, err, ErrKeyNotFound)
	assert.NoError(t, mem.Delete(ctx, "never-stored"))
}

func TestInMemoryStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "prefs.json")
	mem, err := NewInMemoryStorage(path)
	require.NoError(t, err)

	exerciseStore(t, mem)
	require.NoError(t, mem.Close())

	t.Run("reload from disk", func(t *testing.T) {
		reopened, err := NewInMemoryStorage(path)
		require.NoError(t, err)
		got, err := reopened.Retrieve(context.Background(), "other")
		require.NoError(t, err)
		assert.Equal(t, "three", string(got))
	})

	t.Run("corrupt file", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte("{"), 0o644))
		_, err := NewInMemoryStorage(bad)
		assert.Error(t, err)
	})

	t.Run("memory only", func(t *testing.T) {
		mem, err := NewInMemoryStorage("")
		require.NoError(t, err)
		exerciseStore(t, mem)
	})
}

func TestBadgerMemory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "prefs")
	mem, err := NewBadgerMemory(dir)
	require.NoError(t, err)

	exerciseStore(t, mem)
	require.NoError(t, mem.Close())

	reopened, err := NewBadgerMemory(dir)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Retrieve(context.Background(), "ui:search")
	require.NoError(t, err)
	assert.Equal(t, "two", string(got))
}

func TestPrefs(t *testing.T) {
	ctx := context.Background()
	mem, err := NewInMemoryStorage("")
	require.NoError(t, err)
	h := NewHelper(mem)
	defer h.Close()

	p, ok, err := h.LoadPrefs(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, Prefs{}, p, "no saved prefs is the zero value")

	want := Prefs{Tab: 1, IdeaSort: 4, ProjectSort: 3, StatusFilter: 2, Selected: map[string]string{"Projects": "alpha"}}
	require.NoError(t, h.SavePrefs(ctx, want))

	got, ok, err := h.LoadPrefs(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, want, got)

	require.NoError(t, mem.Store(ctx, "ui:search", []byte("alpha")))
	require.NoError(t, mem.Store(ctx, "other", []byte("kept")))
	require.NoError(t, h.ClearPrefs(ctx))
	got, ok, err = h.LoadPrefs(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, Prefs{}, got)
	_, err = mem.Retrieve(ctx, "ui:search")
	assert.ErrorIs(t, err, ErrKeyNotFound, "every dashboard key is cleared")
	_, err = mem.Retrieve(ctx, "other")
	assert.NoError(t, err, "keys outside the dashboard namespace survive")

	t.Run("unreadable document is ignored", func(t *testing.T) {
		require.NoError(t, mem.Store(ctx, PrefsKey, []byte("{oops")))
		got, ok, err := h.LoadPrefs(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, Prefs{}, got)
	})
}

func TestOpenFallsBackWhenLocked(t *testing.T) {
	state := t.TempDir()

	first, err := Open(state, nil)
	require.NoError(t, err)
	defer first.Close()
	_, isBadger := first.Store.(*BadgerMemory)
	require.True(t, isBadger)

	second, err := Open(state, nil)
	require.NoError(t, err)
	defer second.Close()
	_, isFile := second.Store.(*InMemoryStorage)
	assert.True(t, isFile, "a locked database falls back to the json store")
}
