package navigation

import "github.com/milk9111/shelter/common"

// BoundaryID is the platform that owns every tile no authored platform covers.
const BoundaryID = 0

// Platform is a rectangular run of walkable tiles. Bounds are relative to the
// partition origin; Left/Bottom are inclusive, Right/Top exclusive.
type Platform struct {
	ID        int
	SpanLeft  int
	SpanRight int
	Left      int
	Right     int
	Bottom    int
	Top       int
	Walkable  bool
}

// Width is the number of tile columns the platform spans.
func (p Platform) Width() int { return p.Right - p.Left }

// Partition maps every tile of a rectangular region to exactly one platform.
// Registration follows painter's order: a later platform owns any tiles it
// shares with an earlier one.
type Partition struct {
	origin    common.Tile
	size      common.Tile
	owner     []int
	platforms []Platform
	spanEnd   int
}

// NewPartition creates a partition of size tiles starting at origin. Every
// tile starts out owned by the boundary platform.
func NewPartition(origin, size common.Tile) *Partition {
	if size.X < 1 {
		size.X = 1
	}
	if size.Y < 1 {
		size.Y = 1
	}
	p := &Partition{
		origin: origin,
		size:   size,
		owner:  make([]int, size.X*size.Y),
	}
	p.platforms = append(p.platforms, Platform{
		ID:     BoundaryID,
		Right:  size.X,
		Top:    size.Y,
	})
	return p
}

// Add registers a platform covering r and returns it. The rectangle is clipped
// to the partition.
func (p *Partition) Add(r common.Rect) Platform {
	from := p.border(r.Min())
	to := p.border(r.Max())
	id := len(p.platforms)
	for x := from.X; x < to.X; x++ {
		for y := from.Y; y < to.Y; y++ {
			p.owner[p.index(common.Tile{X: x, Y: y})] = id
		}
	}
	width := max(to.X-from.X, 0)
	pl := Platform{
		ID:        id,
		SpanLeft:  p.spanEnd,
		SpanRight: p.spanEnd + width,
		Left:      from.X,
		Right:     to.X,
		Bottom:    from.Y,
		Top:       to.Y,
		Walkable:  true,
	}
	p.spanEnd = pl.SpanRight
	p.platforms = append(p.platforms, pl)
	return pl
}

// At returns the platform owning t. Tiles outside the region clamp to the
// nearest border tile.
func (p *Partition) At(t common.Tile) Platform {
	return p.atRelative(p.relative(t))
}

// Slot returns the span slot of t within its platform, or -1 when t is owned
// by the boundary.
func (p *Partition) Slot(t common.Tile) int {
	rel := p.relative(t)
	return p.slotRelative(rel, p.atRelative(rel))
}

// Platforms returns every registered platform, boundary first.
func (p *Partition) Platforms() []Platform {
	return append([]Platform(nil), p.platforms...)
}

// SpanSize is the total number of span slots across all platforms.
func (p *Partition) SpanSize() int { return p.spanEnd }

func (p *Partition) Origin() common.Tile { return p.origin }
func (p *Partition) Size() common.Tile   { return p.size }

func (p *Partition) atRelative(rel common.Tile) Platform {
	return p.platforms[p.owner[p.index(rel)]]
}

func (p *Partition) slotRelative(rel common.Tile, pl Platform) int {
	if !pl.Walkable {
		return -1
	}
	return pl.SpanLeft + rel.X - pl.Left
}

// relative converts an absolute tile to a relative one inside the region.
func (p *Partition) relative(t common.Tile) common.Tile {
	return t.Sub(p.origin).ClampTo(common.Tile{}, common.Tile{X: p.size.X - 1, Y: p.size.Y - 1})
}

// border is relative for rectangle corners, which may sit one past the edge.
func (p *Partition) border(t common.Tile) common.Tile {
	return t.Sub(p.origin).ClampTo(common.Tile{}, p.size)
}

func (p *Partition) absolute(rel common.Tile) common.Tile {
	return rel.Add(p.origin)
}

func (p *Partition) index(rel common.Tile) int {
	return rel.X*p.size.Y + rel.Y
}
