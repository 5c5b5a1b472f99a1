// Package spatial answers "nearest street segment to this point"
// queries with a fixed-cell grid bucket index, grounded on the
// gtfstidy ShapeIdx's Cohen-Sutherland segment/cell intersection
// test -- the one spatial structure of this shape in the example
// pack. There is no R-tree dependency anywhere in the corpus, so this
// index is a grid, not a tree; see DESIGN.md.
package spatial

import (
	"math"

	"github.com/bmander/skilift/street"
)

// Point is a bare (lon, lat) coordinate in the planar, degree-based
// space this index operates in.
type Point struct {
	Lon float64
	Lat float64
}

// Segment is one street segment's geometry, ready for indexing.
type Segment struct {
	Ref street.SegmentRef
	A   Point
	B   Point
}

// SegmentIndex is a grid-bucketed nearest-segment index over a fixed
// set of street segments.
type SegmentIndex struct {
	segments   []Segment
	cellWidth  float64
	cellHeight float64
	llx, lly   float64
	urx, ury   float64
	xWidth     int
	yHeight    int
	grid       [][][]int // grid[x][y] = indices into segments
}

// Build indexes segments into a grid with cellSize-degree cells.
func Build(segments []Segment, cellSize float64) *SegmentIndex {
	idx := &SegmentIndex{
		segments:   segments,
		cellWidth:  cellSize,
		cellHeight: cellSize,
		llx:        math.Inf(1),
		lly:        math.Inf(1),
		urx:        math.Inf(-1),
		ury:        math.Inf(-1),
	}

	for _, s := range segments {
		idx.llx = math.Min(idx.llx, math.Min(s.A.Lon, s.B.Lon))
		idx.lly = math.Min(idx.lly, math.Min(s.A.Lat, s.B.Lat))
		idx.urx = math.Max(idx.urx, math.Max(s.A.Lon, s.B.Lon))
		idx.ury = math.Max(idx.ury, math.Max(s.A.Lat, s.B.Lat))
	}

	if len(segments) == 0 || idx.urx < idx.llx || idx.ury < idx.lly {
		return idx
	}

	idx.xWidth = int(math.Ceil((idx.urx-idx.llx)/idx.cellWidth)) + 1
	idx.yHeight = int(math.Ceil((idx.ury-idx.lly)/idx.cellHeight)) + 1

	idx.grid = make([][][]int, idx.xWidth)
	for x := range idx.grid {
		idx.grid[x] = make([][]int, idx.yHeight)
	}

	for i, s := range segments {
		idx.add(i, s)
	}

	return idx
}

func (idx *SegmentIndex) cellX(lon float64) int {
	x := int((lon - idx.llx) / idx.cellWidth)
	return clamp(x, 0, idx.xWidth-1)
}

func (idx *SegmentIndex) cellY(lat float64) int {
	y := int((lat - idx.lly) / idx.cellHeight)
	return clamp(y, 0, idx.yHeight-1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (idx *SegmentIndex) add(i int, s Segment) {
	swX := idx.cellX(math.Min(s.A.Lon, s.B.Lon))
	swY := idx.cellY(math.Min(s.A.Lat, s.B.Lat))
	neX := idx.cellX(math.Max(s.A.Lon, s.B.Lon))
	neY := idx.cellY(math.Max(s.A.Lat, s.B.Lat))

	for x := swX; x <= neX; x++ {
		for y := swY; y <= neY; y++ {
			if idx.intersectsCell(s, x, y) {
				idx.grid[x][y] = append(idx.grid[x][y], i)
			}
		}
	}
}

// intersectsCell is the Cohen-Sutherland line/box intersection test.
func (idx *SegmentIndex) intersectsCell(s Segment, x, y int) bool {
	xmin := idx.llx + float64(x)*idx.cellWidth
	ymin := idx.lly + float64(y)*idx.cellHeight
	xmax := xmin + idx.cellWidth
	ymax := ymin + idx.cellHeight

	x0, y0, x1, y1 := s.A.Lon, s.A.Lat, s.B.Lon, s.B.Lat
	ocode0 := outcode(x0, y0, xmin, ymin, xmax, ymax)
	ocode1 := outcode(x1, y1, xmin, ymin, xmax, ymax)

	for {
		if ocode0|ocode1 == 0 {
			return true
		}
		if ocode0&ocode1 != 0 {
			return false
		}

		ocodeOut := ocode0
		if ocodeOut == 0 {
			ocodeOut = ocode1
		}

		var x, y float64
		switch {
		case ocodeOut&8 != 0: // above
			x = x0 + (x1-x0)*(ymax-y0)/(y1-y0)
			y = ymax
		case ocodeOut&4 != 0: // below
			x = x0 + (x1-x0)*(ymin-y0)/(y1-y0)
			y = ymin
		case ocodeOut&2 != 0: // right
			y = y0 + (y1-y0)*(xmax-x0)/(x1-x0)
			x = xmax
		case ocodeOut&1 != 0: // left
			y = y0 + (y1-y0)*(xmin-x0)/(x1-x0)
			x = xmin
		}

		if ocodeOut == ocode0 {
			x0, y0 = x, y
			ocode0 = outcode(x0, y0, xmin, ymin, xmax, ymax)
		} else {
			x1, y1 = x, y
			ocode1 = outcode(x1, y1, xmin, ymin, xmax, ymax)
		}
	}
}

func outcode(x, y, xmin, ymin, xmax, ymax float64) int {
	code := 0
	if x < xmin {
		code |= 1
	} else if x > xmax {
		code |= 2
	}
	if y < ymin {
		code |= 4
	} else if y > ymax {
		code |= 8
	}
	return code
}

// NearestSegment buffers (lon, lat) by radius degrees, gathers every
// segment intersecting the buffered cells, and returns the one
// minimizing planar distance to the query point, along with its
// normalized offset along the segment. Returns ok=false if nothing is
// within radius.
func (idx *SegmentIndex) NearestSegment(lon, lat, radius float64) (ref street.SegmentRef, offset float64, ok bool) {
	if idx.grid == nil {
		return street.SegmentRef{}, 0, false
	}

	swX := idx.cellX(lon - radius)
	swY := idx.cellY(lat - radius)
	neX := idx.cellX(lon + radius)
	neY := idx.cellY(lat + radius)

	best := math.Inf(1)
	var bestRef street.SegmentRef
	var bestOffset float64
	found := false

	seen := map[int]bool{}
	for x := swX; x <= neX; x++ {
		for y := swY; y <= neY; y++ {
			for _, i := range idx.grid[x][y] {
				if seen[i] {
					continue
				}
				seen[i] = true

				s := idx.segments[i]
				d, off := pointSegmentDistance(Point{Lon: lon, Lat: lat}, s.A, s.B)
				if d <= radius && d < best {
					best = d
					bestRef = s.Ref
					bestOffset = off
					found = true
				}
			}
		}
	}

	return bestRef, bestOffset, found
}

// pointSegmentDistance returns the planar distance from p to segment
// a-b and the normalized offset [0,1] of the closest point along it.
func pointSegmentDistance(p, a, b Point) (dist, offset float64) {
	dx := b.Lon - a.Lon
	dy := b.Lat - a.Lat
	lenSq := dx*dx + dy*dy

	if lenSq == 0 {
		return math.Hypot(p.Lon-a.Lon, p.Lat-a.Lat), 0
	}

	t := ((p.Lon-a.Lon)*dx + (p.Lat-a.Lat)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	projLon := a.Lon + t*dx
	projLat := a.Lat + t*dy
	return math.Hypot(p.Lon-projLon, p.Lat-projLat), t
}
