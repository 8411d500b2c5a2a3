package jellyfin

import (
	"net/url"
	"strconv"
)

// posterImage is the image type shown as a grid icon.
const posterImage = "Primary"

// Poster bounds requested from the server. The grid scales the result into
// its icon texture.
const (
	posterMaxWidth  = 128
	posterMaxHeight = 192
)

// GetPosterURL returns the poster of an item, sized for a grid icon.
func (c *Client) GetPosterURL(itemID string) string {
	q := url.Values{}
	q.Set("maxWidth", strconv.Itoa(posterMaxWidth))
	q.Set("maxHeight", strconv.Itoa(posterMaxHeight))
	q.Set("quality", "90")
	return c.itemURL("Items", itemID, "Images/"+posterImage, q)
}

// GetStreamURL returns a direct-play URL mpv can open on its own. The token
// travels in the query because mpv sends no auth header.
func (c *Client) GetStreamURL(itemID string) string {
	q := url.Values{}
	q.Set("Static", "true")
	q.Set("api_key", c.token)
	return c.itemURL("Videos", itemID, "stream", q)
}

func (c *Client) itemURL(collection, itemID, rest string, q url.Values) string {
	u := c.serverURL + "/" + collection + "/" + url.PathEscape(itemID) + "/" + rest
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}
