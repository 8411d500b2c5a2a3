//go:build !linux

package input

import "context"

// Start is a no-op without evdev.
func (w *BackWatcher) Start(ctx context.Context) {}
