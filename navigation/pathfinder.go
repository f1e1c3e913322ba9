package navigation

import (
	"log"
	"math"

	"github.com/milk9111/shelter/common"
)

// PathFinder answers movement intents over a partitioned tile region. It is
// built once per layout and is read-only afterwards, so it may be shared.
type PathFinder struct {
	part       *Partition
	nodes      []common.Tile
	index      map[common.Tile]int
	kinds      map[edgeKey]EdgeKind
	edges      []Edge
	slots      []nodePair
	stairs     [][2]int
	stairTiles map[common.Tile]int
	dist       [][]float64
	next       [][]int
}

// New builds the navigation data for a region of size tiles starting at
// origin. Platforms are registered in order, later ones painting over
// earlier ones.
func New(origin, size common.Tile, platforms []common.Rect, stairs []Stair) *PathFinder {
	part := NewPartition(origin, size)
	for _, r := range platforms {
		part.Add(r)
	}

	b := newGraphBuilder(part)
	b.addStairs(stairs)
	slots := b.linkPlatforms()
	stairTiles := b.rasterizeStairs()
	dist, next := buildTables(b.graph, len(b.nodes))

	pf := &PathFinder{
		part:       part,
		nodes:      b.nodes,
		index:      b.index,
		kinds:      b.kinds,
		edges:      b.edges(),
		slots:      slots,
		stairs:     b.stairs,
		stairTiles: stairTiles,
		dist:       dist,
		next:       next,
	}
	log.Printf("navigation: %d platforms, %d nodes, %d edges", len(platforms), len(pf.nodes), len(pf.edges))
	return pf
}

// Partition exposes the platform partition the finder was built on.
func (pf *PathFinder) Partition() *Partition { return pf.part }

// Platform returns the platform owning tile t.
func (pf *PathFinder) Platform(t common.Tile) Platform { return pf.part.At(t) }

// NodeCount is the number of de-duplicated stair endpoints.
func (pf *PathFinder) NodeCount() int { return len(pf.nodes) }

// Node returns the absolute tile of node id.
func (pf *PathFinder) Node(id int) common.Tile {
	return pf.part.absolute(pf.nodes[id])
}

// NodeAt returns the node sitting on tile t, if any.
func (pf *PathFinder) NodeAt(t common.Tile) (int, bool) {
	id, ok := pf.index[pf.part.relative(t)]
	return id, ok
}

// Edges returns every edge ordered by (From, To).
func (pf *PathFinder) Edges() []Edge {
	return append([]Edge(nil), pf.edges...)
}

// EdgeKind returns the kind of edge u-v, or 0 when they are not adjacent.
func (pf *PathFinder) EdgeKind(u, v int) EdgeKind {
	return pf.kinds[keyOf(u, v)]
}

// Stairs returns the registered stairs as absolute endpoint pairs.
func (pf *PathFinder) Stairs() []Stair {
	out := make([]Stair, len(pf.stairs))
	for i, s := range pf.stairs {
		out[i] = Stair{From: pf.Node(s[0]), To: pf.Node(s[1])}
	}
	return out
}

// Distance is the shortest path length between two nodes, +Inf when there is
// no path.
func (pf *PathFinder) Distance(s, d int) float64 {
	if !pf.valid(s) || !pf.valid(d) {
		return math.Inf(1)
	}
	return pf.dist[s][d]
}

// NextHop is the neighbour of s on a shortest path to d. It is s itself when
// s == d and NoNode when d cannot be reached.
func (pf *PathFinder) NextHop(s, d int) int {
	if !pf.valid(s) || !pf.valid(d) {
		return NoNode
	}
	return pf.next[s][d]
}

func (pf *PathFinder) valid(id int) bool {
	return id >= 0 && id < len(pf.nodes)
}
