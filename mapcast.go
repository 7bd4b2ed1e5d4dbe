/*
Package mapcast is a library for showing video on displays that can only draw
a small, fixed palette of colours, such as walls of in-game maps.

Frames are dithered onto the palette, split across the tiles of the display
and handed to a sink that delivers them to the viewers. Each display session
is a Callback which also limits how often frames are sent.
*/
package mapcast

import (
	"fmt"
	"io/ioutil"
	"log"

	"github.com/bodgit/mapcast/palette"
)

// MapCast creates display sessions, allocating their identifiers from a
// Registry.
type MapCast struct {
	registry *Registry
	table    *palette.Table
	logger   *log.Logger
}

// New opens the registry database in file. A nil table uses
// palette.Default and a nil logger discards everything.
func New(file string, table *palette.Table, logger *log.Logger) (*MapCast, error) {
	r, err := NewRegistry(file)
	if err != nil {
		return nil, err
	}
	if table == nil {
		table = palette.Default()
	}
	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}
	return &MapCast{
		registry: r,
		table:    table,
		logger:   logger,
	}, nil
}

// Close closes the registry.
func (m *MapCast) Close() error {
	return m.registry.Close()
}

// Registry returns the identifier registry.
func (m *MapCast) Registry() *Registry {
	return m.registry
}

// Maps allocates identifiers for a grid called name and returns a
// MapCallback for it. Any Start in cfg is replaced.
func (m *MapCast) Maps(name string, cfg MapConfig, sink MapSink) (*MapCallback, error) {
	cfg.Start = 0
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sink == nil {
		return nil, errNilSink
	}

	start, err := m.registry.Allocate(name, cfg.Grid.Area())
	if err != nil {
		return nil, err
	}
	cfg.Start = start

	cb, err := NewMapCallback(cfg, sink, m.table, m.logger)
	if err != nil {
		return nil, err
	}

	m.logger.Printf("Allocated maps %d-%d to \"%s\"\n", start, int(start)+cfg.Grid.Area()-1, name)

	return cb, nil
}

// Surface allocates an identifier for a surface called name and returns a
// SurfaceCallback for it. Any ID in cfg is replaced.
func (m *MapCast) Surface(name string, cfg SurfaceConfig, sink SurfaceSink) (*SurfaceCallback, error) {
	cfg.ID = 0
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sink == nil {
		return nil, errNilSink
	}

	id, err := m.registry.Allocate(name, 1)
	if err != nil {
		return nil, err
	}
	cfg.ID = id

	return NewSurfaceCallback(cfg, sink, m.table, m.logger)
}

// Release frees the identifiers allocated to name once its session has
// stopped.
func (m *MapCast) Release(name string) error {
	if err := m.registry.Release(name); err != nil {
		return fmt.Errorf("mapcast: release %q: %w", name, err)
	}
	return nil
}
