// Package source supplies the items shown in the grid: generated placeholder
// tiles or the playable items of a Jellyfin library.
package source

import (
	"context"
	"fmt"
	"image"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/depeter/jellygrid/internal/bitmap"
	"github.com/depeter/jellygrid/internal/grid"
	"github.com/depeter/jellygrid/internal/jellyfin"
	"github.com/depeter/jellygrid/internal/layout"
)

// pageSize is how many items are requested from the server at a time.
const pageSize = 100

// Source produces the full item list.
type Source interface {
	Items(ctx context.Context) ([]grid.Item, error)
}

// Playable is the payload of an item that can be played.
type Playable struct {
	ItemID string
	URL    string
}

// Library is the part of the Jellyfin client a source needs.
type Library interface {
	GetItems(ctx context.Context, parentID string, start, limit int) ([]jellyfin.MediaItem, int, error)
	GetPosterURL(itemID string) string
	GetStreamURL(itemID string) string
}

// Fetcher loads a remote image.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (image.Image, error)
}

// Placeholders generates Count colored tiles. It needs no network.
type Placeholders struct {
	Defs   *layout.Defines
	Labels *Labeler
	Count  int
}

func (p *Placeholders) Items(ctx context.Context) ([]grid.Item, error) {
	d := p.Defs
	items := make([]grid.Item, p.Count)
	for i := range items {
		title := fmt.Sprintf("Item %d", i+1)
		items[i] = grid.Item{
			ID:         fmt.Sprintf("placeholder-%d", i),
			Title:      title,
			Icon:       bitmap.IconTile(d.IconTextureWidthPx, d.IconTextureHeightPx, d.IconWidthPx, d.IconHeightPx, i),
			TitleImage: p.Labels.Render(title),
		}
	}
	return items, nil
}

// Jellyfin lists the playable items of a library with their posters.
type Jellyfin struct {
	Defs      *layout.Defines
	Labels    *Labeler
	Library   Library
	Images    Fetcher
	LibraryID string
	// Concurrency bounds the number of posters prepared at once.
	Concurrency int
}

func (j *Jellyfin) Items(ctx context.Context) ([]grid.Item, error) {
	media, err := j.list(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]grid.Item, len(media))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(j.Concurrency, 1))
	for i, m := range media {
		g.Go(func() error {
			items[i] = grid.Item{
				ID:      m.ID,
				Title:   m.Label(),
				Icon:    j.icon(ctx, i, m),
				Payload: Playable{ItemID: m.ID, URL: j.Library.GetStreamURL(m.ID)},
			}
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// The font face is not safe for concurrent use.
	for i := range items {
		items[i].TitleImage = j.Labels.Render(items[i].Title)
	}
	log.Printf("source: %d items from jellyfin", len(items))
	return items, nil
}

// list pages through the library until every item has been read.
func (j *Jellyfin) list(ctx context.Context) ([]jellyfin.MediaItem, error) {
	var all []jellyfin.MediaItem
	for {
		page, total, err := j.Library.GetItems(ctx, j.LibraryID, len(all), pageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) == 0 || len(all) >= total {
			return all, nil
		}
	}
}

// icon returns the framed poster, or a placeholder tile when the item has no
// poster or it cannot be loaded.
func (j *Jellyfin) icon(ctx context.Context, seed int, m jellyfin.MediaItem) image.Image {
	d := j.Defs
	if m.HasPoster {
		poster, err := j.Images.Fetch(ctx, j.Library.GetPosterURL(m.ID))
		if err == nil {
			w, h := fit(poster.Bounds(), d.IconWidthPx, d.IconHeightPx)
			return bitmap.Framed(poster, d.IconTextureWidthPx, d.IconTextureHeightPx, w, h)
		}
		log.Printf("source: poster for %s: %v", m.ID, err)
	}
	return bitmap.IconTile(d.IconTextureWidthPx, d.IconTextureHeightPx, d.IconWidthPx, d.IconHeightPx, seed)
}

// fit scales b to the largest size within w x h that keeps its aspect ratio.
func fit(b image.Rectangle, w, h int) (int, int) {
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return w, h
	}
	if b.Dx()*h > b.Dy()*w {
		return w, max(1, b.Dy()*w/b.Dx())
	}
	return max(1, b.Dx()*h/b.Dy()), h
}
