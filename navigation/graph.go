package navigation

import (
	"log"
	"math"
	"sort"

	"github.com/milk9111/shelter/common"
	"gonum.org/v1/gonum/graph/simple"
)

// NoNode marks a missing node: an empty span side or an unreachable hop.
const NoNode = -1

// EdgeKind tells how a mover travels along an edge.
type EdgeKind uint8

const (
	EdgeWalk EdgeKind = iota + 1
	EdgeStair
)

func (k EdgeKind) String() string {
	switch k {
	case EdgeWalk:
		return "walk"
	case EdgeStair:
		return "stair"
	}
	return "unknown"
}

// Stair is an authored straight connector between two tiles.
type Stair struct {
	From common.Tile `yaml:"from"`
	To   common.Tile `yaml:"to"`
}

// Edge is an undirected navigation edge with From < To.
type Edge struct {
	From   int
	To     int
	Kind   EdgeKind
	Weight float64
}

type edgeKey struct{ a, b int }

func keyOf(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a: a, b: b}
}

// nodePair holds the nodes bounding a span column.
type nodePair struct {
	left  int
	right int
}

type graphBuilder struct {
	part   *Partition
	graph  *simple.WeightedUndirectedGraph
	nodes  []common.Tile
	index  map[common.Tile]int
	kinds  map[edgeKey]EdgeKind
	stairs [][2]int
}

func newGraphBuilder(part *Partition) *graphBuilder {
	return &graphBuilder{
		part:  part,
		graph: simple.NewWeightedUndirectedGraph(0, math.Inf(1)),
		index: make(map[common.Tile]int),
		kinds: make(map[edgeKey]EdgeKind),
	}
}

// node returns the node at the relative tile pos, allocating it if needed.
func (b *graphBuilder) node(pos common.Tile) int {
	if id, ok := b.index[pos]; ok {
		return id
	}
	id := len(b.nodes)
	b.nodes = append(b.nodes, pos)
	b.index[pos] = id
	b.graph.AddNode(simple.Node(id))
	return id
}

// connect inserts or refreshes the edge u-v. A stair kind is never
// downgraded to walk. It reports false for self edges.
func (b *graphBuilder) connect(u, v int, kind EdgeKind) bool {
	if u == v {
		return false
	}
	w := b.nodes[u].Distance(b.nodes[v])
	b.graph.SetWeightedEdge(b.graph.NewWeightedEdge(simple.Node(u), simple.Node(v), w))
	k := keyOf(u, v)
	if b.kinds[k] != EdgeStair {
		b.kinds[k] = kind
	}
	return true
}

func (b *graphBuilder) addStairs(stairs []Stair) {
	for i, s := range stairs {
		from, to := b.part.relative(s.From), b.part.relative(s.To)
		if from == to {
			log.Printf("navigation: stair %d %v -> %v collapses to a single node, skipped", i, s.From, s.To)
			continue
		}
		u, v := b.node(from), b.node(to)
		if b.kinds[keyOf(u, v)] == EdgeStair {
			continue
		}
		b.connect(u, v, EdgeStair)
		b.stairs = append(b.stairs, [2]int{u, v})
	}
}

// linkPlatforms joins the nodes of each walkable platform left to right and
// returns the span slot table.
func (b *graphBuilder) linkPlatforms() []nodePair {
	slots := make([]nodePair, b.part.SpanSize())
	for i := range slots {
		slots[i] = nodePair{left: NoNode, right: NoNode}
	}

	byPlatform := make([][]int, len(b.part.platforms))
	for id, pos := range b.nodes {
		pl := b.part.atRelative(pos)
		if !pl.Walkable {
			continue
		}
		byPlatform[pl.ID] = append(byPlatform[pl.ID], id)
	}

	for _, pl := range b.part.platforms {
		if !pl.Walkable {
			continue
		}
		ids := byPlatform[pl.ID]
		sort.Slice(ids, func(i, j int) bool {
			xi, xj := b.nodes[ids[i]].X, b.nodes[ids[j]].X
			if xi != xj {
				return xi < xj
			}
			return ids[i] < ids[j]
		})
		for i := 1; i < len(ids); i++ {
			b.connect(ids[i-1], ids[i], EdgeWalk)
		}

		for i := 0; i <= len(ids); i++ {
			left, l := pl.Left, NoNode
			if i > 0 {
				l = ids[i-1]
				left = b.nodes[l].X
			}
			right, r := pl.Right, NoNode
			if i < len(ids) {
				r = ids[i]
				right = b.nodes[r].X
			}
			for x := left; x < right; x++ {
				slots[pl.SpanLeft+x-pl.Left] = nodePair{left: l, right: r}
			}
			if l != NoNode {
				slots[pl.SpanLeft+left-pl.Left] = nodePair{left: l, right: l}
			}
		}
	}
	return slots
}

// rasterizeStairs maps the boundary tiles crossed by each stair segment to
// the stair's index. Endpoints are nodes and are left out.
func (b *graphBuilder) rasterizeStairs() map[common.Tile]int {
	tiles := make(map[common.Tile]int)
	for si, s := range b.stairs {
		from, to := b.nodes[s[0]], b.nodes[s[1]]
		d := to.Sub(from)
		steps := max(abs(d.X), abs(d.Y))
		for i := 1; i < steps; i++ {
			t := float64(i) / float64(steps)
			p := common.Tile{
				X: from.X + int(math.Round(float64(d.X)*t)),
				Y: from.Y + int(math.Round(float64(d.Y)*t)),
			}
			if p == from || p == to {
				continue
			}
			if b.part.atRelative(p).Walkable {
				continue
			}
			if _, taken := tiles[p]; !taken {
				tiles[p] = si
			}
		}
	}
	return tiles
}

func (b *graphBuilder) edges() []Edge {
	out := make([]Edge, 0, len(b.kinds))
	for k, kind := range b.kinds {
		w, _ := b.graph.Weight(int64(k.a), int64(k.b))
		out = append(out, Edge{From: k.a, To: k.b, Kind: kind, Weight: w})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
