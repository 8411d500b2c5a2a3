//go:build linux

package input

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
)

// Start reads every readable /dev/input/event* device until ctx is done.
// Devices without permission are skipped.
func (w *BackWatcher) Start(ctx context.Context) {
	matches, err := filepath.Glob("/dev/input/event*")
	if err != nil || len(matches) == 0 {
		return
	}
	opened := 0
	for _, path := range matches {
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		opened++
		go func() {
			<-ctx.Done()
			f.Close()
		}()
		go w.read(f)
	}
	log.Printf("Watching %d input devices for Back", opened)
}

func (w *BackWatcher) read(r io.Reader) {
	buf := make([]byte, rawEventSize)
	for {
		if _, err := io.ReadFull(r, buf); err != nil {
			return
		}
		w.feed(buf)
	}
}
