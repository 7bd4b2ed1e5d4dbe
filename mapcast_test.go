package mapcast

import (
	"bytes"
	"log"
	"path/filepath"
	"testing"

	"github.com/bodgit/mapcast/dither"
	"github.com/bodgit/mapcast/tile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapCast(t *testing.T) {
	b := new(bytes.Buffer)

	m, err := New(filepath.Join(t.TempDir(), "mapcast.db"), nil, log.New(b, "", 0))
	require.NoError(t, err)
	defer m.Close()

	r := new(mapRecorder)
	maps, err := m.Maps("wall", MapConfig{
		Algorithm:  dither.FloydSteinberg,
		BlockWidth: 2 * tile.Size,
		Start:      1000,
		Grid:       Dimension{Width: 2, Height: 2},
	}, r)
	require.NoError(t, err)
	assert.Equal(t, Identifier(0), maps.Start())
	assert.Contains(t, b.String(), "Allocated maps 0-3 to \"wall\"")

	sign, err := m.Surface("sign", SurfaceConfig{
		Dimension: Dimension{Width: 4, Height: 2},
	}, new(surfaceRecorder))
	require.NoError(t, err)
	assert.Equal(t, Identifier(4), sign.ID())

	start, count, err := m.Registry().Lookup("wall")
	require.NoError(t, err)
	assert.Equal(t, Identifier(0), start)
	assert.Equal(t, 4, count)

	require.NoError(t, maps.Process(solid(2*tile.Size*2*tile.Size, 0)))
	require.Len(t, r.frames, 1)
	assert.Equal(t, []int{0, 1, 2, 3}, []int{r.frames[0].Tiles[0].ID, r.frames[0].Tiles[1].ID, r.frames[0].Tiles[2].ID, r.frames[0].Tiles[3].ID})

	require.NoError(t, m.Release("wall"))
	assert.ErrorIs(t, m.Release("wall"), ErrNotAllocated)

	// The freed range is reused
	again, err := m.Maps("mural", MapConfig{
		BlockWidth: tile.Size,
		Grid:       Dimension{Width: 4, Height: 1},
	}, r)
	require.NoError(t, err)
	assert.Equal(t, Identifier(0), again.Start())
}

func TestMapCastErrors(t *testing.T) {
	m, err := New(filepath.Join(t.TempDir(), "mapcast.db"), nil, nil)
	require.NoError(t, err)
	defer m.Close()

	_, err = m.Maps("wall", MapConfig{BlockWidth: 1}, new(mapRecorder))
	assert.ErrorIs(t, err, ErrInvalidDimension)

	_, err = m.Maps("wall", MapConfig{Grid: Dimension{Width: 1, Height: 1}}, new(mapRecorder))
	assert.ErrorIs(t, err, ErrInvalidDimension)

	_, err = New(filepath.Join(t.TempDir(), "missing", "mapcast.db"), nil, nil)
	assert.Error(t, err)
}

func TestMapCastInvalidConfig(t *testing.T) {
	m, err := New(filepath.Join(t.TempDir(), "mapcast.db"), nil, nil)
	require.NoError(t, err)
	defer m.Close()

	_, err = m.Surface("sign", SurfaceConfig{}, new(surfaceRecorder))
	assert.ErrorIs(t, err, ErrInvalidDimension)
	_, err = m.Maps("wall", MapConfig{Grid: Dimension{Width: 1, Height: 1}}, new(mapRecorder))
	assert.ErrorIs(t, err, ErrInvalidDimension)

	_, err = m.Maps("wall", MapConfig{BlockWidth: 1, Grid: Dimension{Width: 1, Height: 1}}, nil)
	assert.ErrorIs(t, err, errNilSink)
	_, err = m.Surface("sign", SurfaceConfig{Dimension: Dimension{Width: 1, Height: 1}}, nil)
	assert.ErrorIs(t, err, errNilSink)

	// Nothing is allocated for a rejected configuration
	_, _, err = m.Registry().Lookup("sign")
	assert.ErrorIs(t, err, ErrNotAllocated)
	_, _, err = m.Registry().Lookup("wall")
	assert.ErrorIs(t, err, ErrNotAllocated)
}
