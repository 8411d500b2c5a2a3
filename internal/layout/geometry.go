package layout

// Border multiples, in cells, measured from the grid center. Bins further from
// the center are wider on screen than in the model because the renderer tilts
// the outer rows and columns away from the camera.
var (
	xBorderCells = [...]float64{-2, -0.83, 0, 0.83, 2}
	yBorderCells = [...]float64{-2.4, -1.15, 0, 1.15, 2.4}
)

// yCenterLift moves the vertical center up to account for the label drawn
// under each icon.
const yCenterLift = 0.35

// Geometry is the hit-test border table for one viewport size. Recompute it
// with NewGeometry whenever the viewport changes; it is never mutated.
type Geometry struct {
	defs *Defines

	Width, Height int
	CellWidth     int
	CellHeight    int

	// XBorders has ColumnsPerPage+1 increasing entries, YBorders RowsPerPage+1.
	XBorders []int
	YBorders []int
}

// NewGeometry computes the border tables for a width x height viewport.
func NewGeometry(defs *Defines, width, height int) *Geometry {
	iconsSize := min(width, height)
	g := &Geometry{
		defs:       defs,
		Width:      width,
		Height:     height,
		CellWidth:  iconsSize / defs.ColumnsPerPage,
		CellHeight: iconsSize / defs.RowsPerPage,
	}

	centerY := height/2 - int(float64(g.CellHeight)*yCenterLift)
	g.YBorders = borders(centerY, g.CellHeight, defs.RowsPerPage, yBorderCells[:])

	centerX := width / 2
	g.XBorders = borders(centerX, g.CellWidth, defs.ColumnsPerPage, xBorderCells[:])
	return g
}

// borders lays out bins+1 boundaries around center. The perspective table is
// used when it has the right length, otherwise the cells are split evenly.
func borders(center, cell, bins int, table []float64) []int {
	out := make([]int, bins+1)
	if len(table) == bins+1 {
		for i, m := range table {
			out[i] = center + truncMul(m, cell)
		}
		return out
	}
	start := center - bins*cell/2
	for i := range out {
		out[i] = start + i*cell
	}
	return out
}

// truncMul multiplies and truncates toward zero on each side of the center so
// that the table stays symmetric.
func truncMul(m float64, cell int) int {
	if m < 0 {
		return -int(-m * float64(cell))
	}
	return int(m * float64(cell))
}

// Defines returns the constants this geometry was computed from.
func (g *Geometry) Defines() *Defines {
	return g.defs
}

// Column returns the column bin containing x, or -1.
func (g *Geometry) Column(x int) int {
	return bin(g.XBorders, x)
}

// Row returns the row bin containing y, or -1.
func (g *Geometry) Row(y int) int {
	return bin(g.YBorders, y)
}

func bin(borders []int, v int) int {
	for i := 0; i+1 < len(borders); i++ {
		if v >= borders[i] && v < borders[i+1] {
			return i
		}
	}
	return -1
}

// Resolve maps a touch point on the given page to an item index. It returns
// -1 when the point is outside every bin or the index is not in
// [0, itemCount). scrollX is accepted for callers that track it but does not
// shift the bins: the page already accounts for the offset.
func (g *Geometry) Resolve(x, y, scrollX, page, itemCount int) int {
	col := g.Column(x)
	row := g.Row(y)
	if row < 0 || col < 0 {
		return -1
	}
	rows := g.defs.RowsPerPage
	index := page*rows*g.defs.ColumnsPerPage + row*rows + col
	if index < 0 || index >= itemCount {
		return -1
	}
	return index
}

// PageForScroll returns the page the hit test should use for a scroll offset.
// Scrolling left moves the offset negative, so page n sits at -n*pageWidth.
func PageForScroll(scrollX, pageWidth int) int {
	if pageWidth <= 0 {
		return 0
	}
	return -scrollX / pageWidth
}

// Cell is the inverse of Resolve: it returns where item index is drawn.
func (d *Defines) Cell(index int) (page, row, col int) {
	perPage := d.IconsPerPage()
	page = index / perPage
	within := index % perPage
	return page, within / d.RowsPerPage, within % d.RowsPerPage
}
