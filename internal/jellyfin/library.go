package jellyfin

import (
	"context"
	"fmt"

	jellyfin "github.com/sj14/jellyfin-go/api"
)

// MediaItem is the part of a Jellyfin item the grid shows.
type MediaItem struct {
	ID   string
	Name string
	Type string // Movie, Series, Episode, etc.
	Year int
	// HasPoster is set when the item carries a primary image.
	HasPoster bool
}

// Label is the grid title for the item.
func (m MediaItem) Label() string {
	if m.Year > 0 {
		return fmt.Sprintf("%s (%d)", m.Name, m.Year)
	}
	return m.Name
}

// playableKinds are the item types the grid lists.
var playableKinds = []jellyfin.BaseItemKind{
	jellyfin.BASEITEMKIND_MOVIE,
	jellyfin.BASEITEMKIND_EPISODE,
}

// GetItems returns one page of playable items, sorted by name, and the total
// count. parentID limits the query to a library; empty means all libraries.
func (c *Client) GetItems(ctx context.Context, parentID string, start, limit int) ([]MediaItem, int, error) {
	req := c.api.ItemsAPI.GetItems(ctx).
		UserId(c.userID).
		StartIndex(int32(start)).
		Limit(int32(limit)).
		Fields([]jellyfin.ItemFields{jellyfin.ITEMFIELDS_PRIMARY_IMAGE_ASPECT_RATIO}).
		EnableImageTypes([]jellyfin.ImageType{jellyfin.IMAGETYPE_PRIMARY}).
		ImageTypeLimit(1).
		Recursive(true).
		IncludeItemTypes(playableKinds).
		SortBy([]jellyfin.ItemSortBy{jellyfin.ITEMSORTBY_SORT_NAME}).
		SortOrder([]jellyfin.SortOrder{jellyfin.SORTORDER_ASCENDING})
	if parentID != "" {
		req = req.ParentId(parentID)
	}
	result, resp, err := req.Execute()
	if err != nil {
		return nil, 0, fmt.Errorf("get items: %w (status: %s)", err, respStatus(resp))
	}
	total := 0
	if result.TotalRecordCount != nil {
		total = int(*result.TotalRecordCount)
	}
	return convertItems(result.Items), total, nil
}

func convertItems(items []jellyfin.BaseItemDto) []MediaItem {
	result := make([]MediaItem, 0, len(items))
	for i := range items {
		result = append(result, convertBaseItemDto(&items[i]))
	}
	return result
}

func convertBaseItemDto(item *jellyfin.BaseItemDto) MediaItem {
	mi := MediaItem{
		Name: item.GetName(),
		Year: int(item.GetProductionYear()),
	}
	if item.Id != nil {
		mi.ID = *item.Id
	}
	if item.Type != nil {
		mi.Type = string(*item.Type)
	}
	_, mi.HasPoster = item.ImageTags[posterImage]
	return mi
}
