package mapcast

import (
	"io/ioutil"
	"log"
	"sync"
	"time"

	"github.com/bodgit/mapcast/dither"
	"github.com/bodgit/mapcast/palette"
)

// Callback receives the frames of one display session. Calls to Process
// must be serialized by the caller; different callbacks are independent and
// may be used concurrently.
type Callback interface {
	// Process dithers and dispatches a frame unless it arrives sooner than
	// the configured delay after the last dispatched frame, in which case
	// it is dropped and nil is returned.
	Process(pix []uint32) error
	Viewers() Viewers
	SetViewers(Viewers)
	Dimension() Dimension
	Delay() time.Duration
	Algorithm() dither.Algorithm
}

type callback struct {
	mu      sync.RWMutex
	viewers Viewers

	dimension Dimension
	algorithm dither.Algorithm
	table     *palette.Table
	governor  *Governor
	logger    *log.Logger
}

func (c *callback) setup(viewers Viewers, dimension Dimension, algorithm dither.Algorithm, delay time.Duration, table *palette.Table, logger *log.Logger) {
	if table == nil {
		table = palette.Default()
	}
	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}
	c.viewers = viewers
	c.dimension = dimension
	c.algorithm = algorithm
	c.table = table
	c.governor = NewGovernor(delay)
	c.logger = logger
}

func (c *callback) Viewers() Viewers {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.viewers
}

func (c *callback) SetViewers(v Viewers) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewers = v
}

func (c *callback) Dimension() Dimension {
	return c.dimension
}

func (c *callback) Delay() time.Duration {
	return c.governor.Interval()
}

func (c *callback) Algorithm() dither.Algorithm {
	return c.algorithm
}
