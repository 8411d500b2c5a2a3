package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"
)

var httpClient = &http.Client{Timeout: 10 * time.Second}

// ImageCache provides disk + memory caching for decoded images.
type ImageCache struct {
	cacheDir string
	client   *http.Client
	memory   sync.Map // url -> image.Image
	loading  singleflight.Group
	sem      *semaphore.Weighted
}

// NewImageCache creates a new image cache with the given disk directory.
// At most concurrency downloads run at once.
func NewImageCache(cacheDir string, concurrency int) (*ImageCache, error) {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, err
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &ImageCache{
		cacheDir: cacheDir,
		client:   httpClient,
		sem:      semaphore.NewWeighted(int64(concurrency)),
	}, nil
}

// Get returns a cached image if available, or nil.
func (ic *ImageCache) Get(url string) image.Image {
	if v, ok := ic.memory.Load(url); ok {
		return v.(image.Image)
	}
	return nil
}

// Fetch returns the image at url from memory, disk or the network, in that
// order. Concurrent fetches of the same url share one download.
func (ic *ImageCache) Fetch(ctx context.Context, url string) (image.Image, error) {
	if img := ic.Get(url); img != nil {
		return img, nil
	}
	v, err, _ := ic.loading.Do(url, func() (any, error) {
		if err := ic.sem.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		defer ic.sem.Release(1)

		img, err := ic.loadImage(ctx, url)
		if err != nil {
			return nil, err
		}
		ic.memory.Store(url, img)
		return img, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(image.Image), nil
}

func (ic *ImageCache) loadImage(ctx context.Context, url string) (image.Image, error) {
	diskPath := ic.diskPath(url)

	// Try disk cache first
	if f, err := os.Open(diskPath); err == nil {
		img, _, err := image.Decode(f)
		f.Close()
		if err == nil {
			return img, nil
		}
		// Corrupt cache file, remove and re-download
		os.Remove(diskPath)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := ic.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image download failed: %s", resp.Status)
	}

	if err := os.MkdirAll(filepath.Dir(diskPath), 0o755); err != nil {
		return nil, err
	}
	f, err := os.Create(diskPath)
	if err != nil {
		return nil, err
	}

	// Tee to disk while decoding
	tee := io.TeeReader(resp.Body, f)
	img, _, err := image.Decode(tee)
	f.Close()
	if err != nil {
		os.Remove(diskPath)
		return nil, fmt.Errorf("decode %s: %w", url, err)
	}

	return img, nil
}

func (ic *ImageCache) diskPath(url string) string {
	h := sha256.Sum256([]byte(url))
	name := fmt.Sprintf("%x", h[:16])
	return filepath.Join(ic.cacheDir, name[:2], name)
}

// Dir returns the disk cache directory.
func (ic *ImageCache) Dir() string {
	return ic.cacheDir
}

// Purge drops every poster from memory and disk. The directory is recreated
// empty, so the cache can keep serving fetches.
func (ic *ImageCache) Purge() error {
	ic.memory.Clear()
	if err := os.RemoveAll(ic.cacheDir); err != nil {
		return fmt.Errorf("purge %s: %w", ic.cacheDir, err)
	}
	return os.MkdirAll(ic.cacheDir, 0o755)
}
