package main

import (
	"log"

	"github.com/bodgit/mapcast"
)

// logSink stands in for a real display, it reports every frame it is given.
type logSink struct {
	logger *log.Logger
	frames int
}

func (s *logSink) DisplayMaps(viewers mapcast.Viewers, frame mapcast.MapFrame) error {
	s.frames++
	last := int(frame.Start) + len(frame.Tiles) - 1
	s.logger.Printf("Frame %d: %dx%d pixels on maps %d-%d for %d viewers\n", s.frames, frame.BlockWidth, frame.Height, frame.Start, last, viewers.Len())
	return nil
}
