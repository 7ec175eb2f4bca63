package spatial

import (
	"fmt"
	"math"

	"github.com/nlam511/geo-message/internal/geo"
)

// DefaultCellSizeDeg is roughly 1.1 km of latitude per cell, comfortably
// larger than the pickup radii in use so a query rarely touches more than
// a 3x3 neighborhood.
const DefaultCellSizeDeg = 0.01

// Grid buckets the globe into fixed-size latitude/longitude cells. It is
// pure math: Cell stamps a key onto a message at drop time and Covering
// names the keys a proximity query has to look at.
type Grid struct {
	CellSizeDeg float64
}

func NewGrid(cellSizeDeg float64) Grid {
	if cellSizeDeg <= 0 {
		cellSizeDeg = DefaultCellSizeDeg
	}
	return Grid{CellSizeDeg: cellSizeDeg}
}

// Cell returns the bucket key for a point.
func (g Grid) Cell(p geo.Point) string {
	x := int(math.Floor(p.Longitude / g.CellSizeDeg))
	y := int(math.Floor(p.Latitude / g.CellSizeDeg))
	return fmt.Sprintf("%d:%d", x, y)
}

// Covering returns the keys of every cell intersecting the bounding box of
// the given radius. The result is a superset filter: all messages within
// radiusM of center live in one of these cells, but not every message in
// them is within radiusM. Callers must apply geo.Distance afterwards.
func (g Grid) Covering(center geo.Point, radiusM float64) []string {
	box := geo.BoundingBoxAround(center, radiusM)

	minX := int(math.Floor(box.MinLon / g.CellSizeDeg))
	maxX := int(math.Floor(box.MaxLon / g.CellSizeDeg))
	minY := int(math.Floor(box.MinLat / g.CellSizeDeg))
	maxY := int(math.Floor(box.MaxLat / g.CellSizeDeg))

	cells := make([]string, 0, (maxX-minX+1)*(maxY-minY+1))
	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			cells = append(cells, fmt.Sprintf("%d:%d", x, y))
		}
	}
	return cells
}
