package layout

import (
	"slices"
	"testing"
)

func TestPageCount(t *testing.T) {
	d := Default()
	perPage := d.IconsPerPage()
	tests := []struct {
		items int
		want  int
	}{
		{0, 0},
		{1, 1},
		{perPage, 1},
		{perPage + 1, 2},
		{20, 2},
		{3 * perPage, 3},
	}
	for _, tt := range tests {
		if got := d.PageCount(tt.items); got != tt.want {
			t.Errorf("PageCount(%d) = %d, want %d", tt.items, got, tt.want)
		}
	}
}

func TestNewGeometryBorders(t *testing.T) {
	tests := []struct {
		w, h  int
		cell  int
		wantX []int
		wantY []int
	}{
		{480, 854, 120, []int{0, 141, 240, 339, 480}, []int{97, 247, 385, 523, 673}},
		{800, 480, 120, []int{160, 301, 400, 499, 640}, []int{-90, 60, 198, 336, 486}},
		{1920, 1080, 270, []int{420, 736, 960, 1184, 1500}, []int{-202, 136, 446, 756, 1094}},
	}
	for _, tt := range tests {
		g := NewGeometry(Default(), tt.w, tt.h)
		if g.CellWidth != tt.cell || g.CellHeight != tt.cell {
			t.Errorf("%dx%d: cell = %dx%d, want %d", tt.w, tt.h, g.CellWidth, g.CellHeight, tt.cell)
		}
		if !slices.Equal(g.XBorders, tt.wantX) {
			t.Errorf("%dx%d: XBorders = %v, want %v", tt.w, tt.h, g.XBorders, tt.wantX)
		}
		if !slices.Equal(g.YBorders, tt.wantY) {
			t.Errorf("%dx%d: YBorders = %v, want %v", tt.w, tt.h, g.YBorders, tt.wantY)
		}
		if !slices.IsSorted(g.XBorders) || !slices.IsSorted(g.YBorders) {
			t.Errorf("%dx%d: borders not increasing", tt.w, tt.h)
		}
	}
}

func TestNewGeometryEvenSplitForOtherShapes(t *testing.T) {
	d := Default()
	d.ColumnsPerPage = 3
	g := NewGeometry(d, 600, 600)
	if len(g.XBorders) != 4 {
		t.Fatalf("XBorders = %v, want 4 entries", g.XBorders)
	}
	want := []int{0, 200, 400, 600}
	if !slices.Equal(g.XBorders, want) {
		t.Errorf("XBorders = %v, want %v", g.XBorders, want)
	}
	if len(g.YBorders) != 5 {
		t.Errorf("YBorders = %v, want 5 entries", g.YBorders)
	}
}

func TestResolve(t *testing.T) {
	g := NewGeometry(Default(), 480, 854)
	// X bins: [0,141) [141,240) [240,339) [339,480)
	// Y bins: [97,247) [247,385) [385,523) [523,673)
	tests := []struct {
		name      string
		x, y      int
		page      int
		itemCount int
		want      int
	}{
		{"first cell", 10, 100, 0, 20, 0},
		{"second column", 150, 100, 0, 20, 1},
		{"second row", 10, 250, 0, 20, 4},
		{"last cell", 479, 672, 0, 20, 15},
		{"second page", 10, 100, 1, 20, 16},
		{"past item count", 150, 100, 1, 17, -1},
		{"left of grid", -1, 100, 0, 20, -1},
		{"right edge is exclusive", 480, 100, 0, 20, -1},
		{"above grid", 10, 96, 0, 20, -1},
		{"below grid", 10, 673, 0, 20, -1},
		{"no items", 10, 100, 0, 0, -1},
		{"negative page", 10, 100, -1, 20, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.Resolve(tt.x, tt.y, 0, tt.page, tt.itemCount); got != tt.want {
				t.Errorf("Resolve(%d, %d, page %d) = %d, want %d", tt.x, tt.y, tt.page, got, tt.want)
			}
		})
	}
}

func TestResolveIsPure(t *testing.T) {
	g := NewGeometry(Default(), 480, 854)
	first := g.Resolve(300, 400, -480, 1, 40)
	for i := 0; i < 10; i++ {
		if got := g.Resolve(300, 400, -480, 1, 40); got != first {
			t.Fatalf("call %d returned %d, first call returned %d", i, got, first)
		}
	}
	if first != 16+2*4+2 {
		t.Errorf("Resolve = %d, want %d", first, 16+2*4+2)
	}
}

func TestPageForScroll(t *testing.T) {
	tests := []struct {
		scrollX   int
		pageWidth int
		want      int
	}{
		{0, 480, 0},
		{-100, 480, 0},
		{-480, 480, 1},
		{-1000, 480, 2},
		{100, 480, 0},
		{-960, 960, 1},
		{-1919, 960, 1},
		{-500, 0, 0},
	}
	for _, tt := range tests {
		if got := PageForScroll(tt.scrollX, tt.pageWidth); got != tt.want {
			t.Errorf("PageForScroll(%d, %d) = %d, want %d", tt.scrollX, tt.pageWidth, got, tt.want)
		}
	}
}

func TestCellInvertsResolve(t *testing.T) {
	defs := Default()
	g := NewGeometry(defs, 480, 854)
	for index := 0; index < 40; index++ {
		page, row, col := defs.Cell(index)
		x := (g.XBorders[col] + g.XBorders[col+1]) / 2
		y := (g.YBorders[row] + g.YBorders[row+1]) / 2
		if got := g.Resolve(x, y, 0, page, 40); got != index {
			t.Errorf("Resolve(Cell(%d)) = %d (page %d row %d col %d)", index, got, page, row, col)
		}
	}
}
