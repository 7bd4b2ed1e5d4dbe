package frame

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

var extensions = map[string]struct{}{
	".bmp":  {},
	".gif":  {},
	".jpeg": {},
	".jpg":  {},
	".png":  {},
	".webp": {},
}

// ReadDir decodes every image in dir, in filename order, and sends the
// resulting frames on the returned channel. Both channels are closed once
// the directory is exhausted, decoding fails or ctx is cancelled; at most one
// error is sent.
func ReadDir(ctx context.Context, dir string, width, height int) (<-chan Frame, <-chan error, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, err
	}

	var files []string
	for _, entry := range entries {
		// Ignore any hidden files, otherwise we end up fighting with things like Spotlight, etc.
		if entry.Name()[0] == '.' || !entry.Type().IsRegular() {
			continue
		}
		if _, ok := extensions[strings.ToLower(filepath.Ext(entry.Name()))]; !ok {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}

	out := make(chan Frame)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		for _, file := range files {
			f, err := Load(file, width, height)
			if err != nil {
				errc <- err
				return
			}

			select {
			case out <- f:
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
	}()
	return out, errc, nil
}
