package layout

// Defines holds the fixed shape of the grid. Build one with Default and pass
// it by pointer; nothing mutates it after construction.
type Defines struct {
	ColumnsPerPage int
	RowsPerPage    int

	// ScreenWidthPx and ScreenHeightPx are the reference viewport: the default
	// window size, and the page stride until a real viewport is attached.
	ScreenWidthPx  int
	ScreenHeightPx int

	IconWidthPx         int
	IconHeightPx        int
	IconTextureWidthPx  int
	IconTextureHeightPx int
	IconTopOffset       float64

	// Title labels are drawn into LabelTexture-sized bitmaps; the visible
	// bubble is LabelWidthPx x LabelHeightPx.
	LabelWidthPx         int
	LabelHeightPx        int
	LabelTextureWidthPx  int
	LabelTextureHeightPx int

	ScrollHandleTexturePx int

	// Radius and CameraZ describe the cylinder the renderer wraps pages onto.
	Radius  float64
	CameraZ float64
}

// Default returns the 4x4 grid layout.
func Default() *Defines {
	return &Defines{
		ColumnsPerPage:      4,
		RowsPerPage:         4,
		ScreenWidthPx:       480,
		ScreenHeightPx:      854,
		IconWidthPx:         64,
		IconHeightPx:        64,
		IconTextureWidthPx:  128,
		IconTextureHeightPx: 128,
		IconTopOffset:       0.2,

		LabelWidthPx:         120,
		LabelHeightPx:        24,
		LabelTextureWidthPx:  128,
		LabelTextureHeightPx: 32,

		ScrollHandleTexturePx: 128,

		Radius:  4.0,
		CameraZ: -2,
	}
}

// IconsPerPage is the number of cells on one page.
func (d *Defines) IconsPerPage() int {
	return d.ColumnsPerPage * d.RowsPerPage
}

// FarScale is how much an item shrinks between the front and the far edge
// of the cylinder.
func (d *Defines) FarScale() float64 {
	return -d.CameraZ / (d.Radius - d.CameraZ)
}

// PageCount returns how many pages are needed to show iconCount items.
func (d *Defines) PageCount(iconCount int) int {
	if iconCount <= 0 {
		return 0
	}
	perPage := d.IconsPerPage()
	pages := iconCount / perPage
	if pages*perPage != iconCount {
		pages++
	}
	return pages
}
