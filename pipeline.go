package mapcast

import (
	"context"
	"sync"

	"github.com/bodgit/mapcast/frame"
)

// Play feeds every frame received on frames to cb, one at a time, until
// frames is closed, processing fails or ctx is cancelled.
func Play(ctx context.Context, cb Callback, frames <-chan frame.Frame) error {
	for {
		select {
		case f, ok := <-frames:
			if !ok {
				return nil
			}
			if err := cb.Process(f.Pix); err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func player(ctx context.Context, cb Callback, frames <-chan frame.Frame) <-chan error {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		errc <- Play(ctx, cb, frames)
	}()
	return errc
}

// PlayDirectory decodes the image sequence in dir, resizing every image to
// width by height pixels if both are positive, and plays it through cb.
func PlayDirectory(ctx context.Context, cb Callback, dir string, width, height int) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	frames, errc, err := frame.ReadDir(ctx, dir, width, height)
	if err != nil {
		return err
	}

	return waitForPipeline(errc, player(ctx, cb, frames))
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}
