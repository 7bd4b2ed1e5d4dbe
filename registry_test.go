package mapcast

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T) (*Registry, string) {
	t.Helper()

	file := filepath.Join(t.TempDir(), "registry.db")
	r, err := NewRegistry(file)
	require.NoError(t, err)
	t.Cleanup(func() {
		r.Close()
	})

	return r, file
}

func TestRegistryAllocate(t *testing.T) {
	r, _ := newTestRegistry(t)

	tables := []struct {
		name  string
		count int
		start Identifier
	}{
		{"a", 4, 0},
		{"b", 2, 4},
		{"a", 4, 0}, // same again
	}

	for _, table := range tables {
		start, err := r.Allocate(table.name, table.count)
		require.NoError(t, err)
		assert.Equal(t, table.start, start, table.name)
	}

	start, count, err := r.Lookup("b")
	require.NoError(t, err)
	assert.Equal(t, Identifier(4), start)
	assert.Equal(t, 2, count)
}

func TestRegistryFirstFit(t *testing.T) {
	r, _ := newTestRegistry(t)

	for _, name := range []string{"a", "b"} {
		_, err := r.Allocate(name, 4)
		require.NoError(t, err)
	}
	require.NoError(t, r.Release("a"))

	tables := []struct {
		name  string
		count int
		start Identifier
	}{
		{"c", 3, 0}, // reuses the hole left by a
		{"d", 2, 8},
		{"e", 1, 3},
		{"b", 5, 10}, // resized, so it moves
		{"f", 4, 4},
	}

	for _, table := range tables {
		start, err := r.Allocate(table.name, table.count)
		require.NoError(t, err)
		assert.Equal(t, table.start, start, table.name)
	}
}

func TestRegistryErrors(t *testing.T) {
	r, _ := newTestRegistry(t)

	_, err := r.Allocate("a", 0)
	assert.ErrorIs(t, err, ErrInvalidDimension)

	_, _, err = r.Lookup("missing")
	assert.ErrorIs(t, err, ErrNotAllocated)

	assert.ErrorIs(t, r.Release("missing"), ErrNotAllocated)

	_, err = r.Allocate("huge", MaxIdentifier)
	require.NoError(t, err)
	_, err = r.Allocate("more", 2)
	assert.ErrorIs(t, err, ErrInvalidIdentifier)
}

func TestRegistryPersistence(t *testing.T) {
	r, file := newTestRegistry(t)

	_, err := r.Allocate("a", 3)
	require.NoError(t, err)
	_, err = r.Allocate("b", 6)
	require.NoError(t, err)
	require.NoError(t, r.Close())

	r, err = NewRegistry(file)
	require.NoError(t, err)
	defer r.Close()

	start, count, err := r.Lookup("b")
	require.NoError(t, err)
	assert.Equal(t, Identifier(3), start)
	assert.Equal(t, 6, count)
}
