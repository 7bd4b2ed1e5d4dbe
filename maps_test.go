package mapcast

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/bodgit/mapcast/dither"
	"github.com/bodgit/mapcast/palette"
	"github.com/bodgit/mapcast/tile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapRecorder struct {
	viewers []Viewers
	frames  []MapFrame
	err     error
}

func (r *mapRecorder) DisplayMaps(viewers Viewers, frame MapFrame) error {
	r.viewers = append(r.viewers, viewers)
	r.frames = append(r.frames, frame)
	return r.err
}

func solid(n int, c uint32) []uint32 {
	pix := make([]uint32, n)
	for i := range pix {
		pix[i] = c
	}
	return pix
}

func newTestMapCallback(t *testing.T, cfg MapConfig, sink MapSink) (*MapCallback, *fakeClock) {
	t.Helper()

	cb, err := NewMapCallback(cfg, sink, nil, nil)
	require.NoError(t, err)

	clock := newFakeClock()
	cb.governor.now = clock.now

	return cb, clock
}

func TestMapCallback(t *testing.T) {
	r := new(mapRecorder)
	cb, _ := newTestMapCallback(t, MapConfig{
		Algorithm:  dither.FloydSteinberg,
		BlockWidth: 3 * tile.Size,
		Start:      10,
		Grid:       Dimension{Width: 3, Height: 2},
		Viewers:    NewViewers("alex"),
	}, r)

	assert.Equal(t, Identifier(10), cb.Start())
	assert.Equal(t, 3*tile.Size, cb.BlockWidth())
	assert.Equal(t, Dimension{Width: 3, Height: 2}, cb.Dimension())
	assert.Equal(t, Delay0, cb.Delay())
	assert.Equal(t, dither.FloydSteinberg, cb.Algorithm())

	white := palette.Default().NearestIndex(0xffffff)

	pix := solid(3*tile.Size*2*tile.Size, 0xffffff)
	require.NoError(t, cb.Process(pix))
	require.Len(t, r.frames, 1)

	f := r.frames[0]
	assert.Equal(t, Identifier(10), f.Start)
	assert.Equal(t, 3*tile.Size, f.BlockWidth)
	assert.Equal(t, 2*tile.Size, f.Height)
	assert.Equal(t, len(pix), f.Data.Len())
	assert.Equal(t, []string{"alex"}, r.viewers[0].IDs())

	require.Len(t, f.Tiles, 6)
	for i, tl := range f.Tiles {
		assert.Equal(t, 10+i, tl.ID)
		assert.Equal(t, bytes.Repeat([]byte{white}, tile.Pixels), tl.Data)
	}

	// The frame itself is left alone
	assert.Equal(t, solid(len(pix), 0xffffff), pix)
}

func TestMapCallbackSmallFrame(t *testing.T) {
	r := new(mapRecorder)
	cb, _ := newTestMapCallback(t, MapConfig{
		BlockWidth: 2,
		Grid:       Dimension{Width: 1, Height: 1},
	}, r)

	require.NoError(t, cb.Process([]uint32{0xff0000, 0xff0000}))
	require.Len(t, r.frames, 1)

	red := palette.Default().NearestIndex(0xff0000)
	data := r.frames[0].Tiles[0].Data
	assert.Equal(t, red, data[63*tile.Size+63])
	assert.Equal(t, red, data[63*tile.Size+64])
	assert.Equal(t, tile.Pixels-2, bytes.Count(data, []byte{0}))
}

func TestMapCallbackGovernor(t *testing.T) {
	tables := map[string]struct {
		gap  time.Duration
		want int
	}{
		"10ms": {10 * time.Millisecond, 1},
		"60ms": {60 * time.Millisecond, 2},
	}

	for name, table := range tables {
		t.Run(name, func(t *testing.T) {
			r := new(mapRecorder)
			cb, clock := newTestMapCallback(t, MapConfig{
				Delay:      Delay50,
				BlockWidth: 4,
				Grid:       Dimension{Width: 1, Height: 1},
			}, r)

			require.NoError(t, cb.Process(solid(8, 0x808080)))
			clock.advance(table.gap)
			require.NoError(t, cb.Process(solid(8, 0x808080)))

			assert.Len(t, r.frames, table.want)
		})
	}
}

func TestMapCallbackGeometry(t *testing.T) {
	r := new(mapRecorder)
	cb, _ := newTestMapCallback(t, MapConfig{
		Delay:      Delay50,
		BlockWidth: 4,
		Grid:       Dimension{Width: 1, Height: 1},
	}, r)

	assert.ErrorIs(t, cb.Process(solid(6, 0)), dither.ErrInvalidFrameGeometry)
	assert.ErrorIs(t, cb.Process(nil), dither.ErrInvalidFrameGeometry)
	assert.Empty(t, r.frames)

	// Rejected frames do not count against the delay
	require.NoError(t, cb.Process(solid(4, 0)))
	assert.Len(t, r.frames, 1)
}

func TestMapCallbackViewers(t *testing.T) {
	r := new(mapRecorder)
	cb, clock := newTestMapCallback(t, MapConfig{
		BlockWidth: 1,
		Grid:       Dimension{Width: 1, Height: 1},
		Viewers:    NewViewers("alex"),
	}, r)

	require.NoError(t, cb.Process([]uint32{0}))
	cb.SetViewers(NewViewers("steve", "alex"))
	assert.Equal(t, 2, cb.Viewers().Len())

	clock.advance(time.Second)
	require.NoError(t, cb.Process([]uint32{0}))

	require.Len(t, r.viewers, 2)
	assert.Equal(t, []string{"alex"}, r.viewers[0].IDs())
	assert.Equal(t, []string{"alex", "steve"}, r.viewers[1].IDs())
}

func TestMapCallbackSinkError(t *testing.T) {
	errSink := errors.New("sink failed")

	cb, _ := newTestMapCallback(t, MapConfig{
		BlockWidth: 1,
		Start:      5,
		Grid:       Dimension{Width: 2, Height: 1},
	}, &mapRecorder{err: errSink})

	err := cb.Process([]uint32{0})
	assert.ErrorIs(t, err, errSink)
	assert.Contains(t, err.Error(), "5-6")
}

func TestNewMapCallback(t *testing.T) {
	valid := MapConfig{
		BlockWidth: 128,
		Grid:       Dimension{Width: 2, Height: 1},
	}

	tables := map[string]struct {
		change func(*MapConfig)
		err    error
	}{
		"negative start": {func(c *MapConfig) { c.Start = -1 }, ErrInvalidIdentifier},
		"overflow":       {func(c *MapConfig) { c.Start = MaxIdentifier }, ErrInvalidIdentifier},
		"empty grid":     {func(c *MapConfig) { c.Grid = Dimension{} }, ErrInvalidDimension},
		"block width":    {func(c *MapConfig) { c.BlockWidth = 0 }, ErrInvalidDimension},
		"algorithm":      {func(c *MapConfig) { c.Algorithm = 9 }, dither.ErrUnknownAlgorithm},
		"delay":          {func(c *MapConfig) { c.Delay = -time.Millisecond }, errNegativeDelay},
	}

	for name, table := range tables {
		t.Run(name, func(t *testing.T) {
			cfg := valid
			table.change(&cfg)
			assert.ErrorIs(t, cfg.Validate(), table.err)

			_, err := NewMapCallback(cfg, new(mapRecorder), nil, nil)
			assert.ErrorIs(t, err, table.err)
		})
	}

	cfg := valid
	cfg.Start = MaxIdentifier - 1
	_, err := NewMapCallback(cfg, new(mapRecorder), nil, nil)
	assert.NoError(t, err)

	_, err = NewMapCallback(valid, nil, nil, nil)
	assert.ErrorIs(t, err, errNilSink)
}
