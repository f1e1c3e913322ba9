package navigation

import (
	"math"

	"github.com/milk9111/shelter/common"
)

// anchor is a node a tile can reach without passing through another node.
type anchor struct {
	node    int
	cost    float64
	toward  Intent
	reached bool
}

// plan is the resolver's full decision for one query.
type plan struct {
	intent Intent
	status Status
	source int
	target int
}

// Resolve returns the intent that moves a mover standing on current one step
// closer to target, together with what to do with the goal.
func (pf *PathFinder) Resolve(current, target common.Tile) (Intent, Status) {
	p := pf.plan(pf.part.relative(current), pf.part.relative(target))
	return p.intent, p.status
}

// ResolveWorld is Resolve for world-space positions.
func (pf *PathFinder) ResolveWorld(current, target common.Vec) (Intent, Status) {
	return pf.Resolve(common.TileOf(current), common.TileOf(target))
}

// Route lists the node tiles a mover on current passes on its way to target.
// It is empty when no node is involved or target cannot be reached.
func (pf *PathFinder) Route(current, target common.Tile) []common.Tile {
	p := pf.plan(pf.part.relative(current), pf.part.relative(target))
	if p.status == Unreachable || p.source == NoNode {
		return nil
	}
	route := []common.Tile{pf.Node(p.source)}
	for u, steps := p.source, 0; u != p.target && steps < len(pf.nodes); steps++ {
		u = pf.next[u][p.target]
		if u == NoNode {
			return nil
		}
		route = append(route, pf.Node(u))
	}
	return route
}

func (pf *PathFinder) plan(cur, dst common.Tile) plan {
	p := plan{source: NoNode, target: NoNode}
	if cur == dst {
		p.status = Arrived
		return p
	}

	pc, pd := pf.part.atRelative(cur), pf.part.atRelative(dst)
	if pc.Walkable && pc.ID == pd.ID {
		if cur.X == dst.X {
			p.status = Arrived
			return p
		}
		p.intent = Intent{Horizontal: horizontalToward(cur.X, dst.X)}
		return p
	}

	sources, targets := pf.anchors(cur), pf.anchors(dst)
	var sa, ta anchor
	best := math.Inf(1)
	for _, s := range sources {
		for _, t := range targets {
			d := pf.dist[s.node][t.node]
			if math.IsInf(d, 1) {
				continue
			}
			if c := s.cost + d + t.cost; c < best {
				best, sa, ta = c, s, t
			}
		}
	}
	if math.IsInf(best, 1) {
		p.status = Unreachable
		return p
	}
	p.source, p.target = sa.node, ta.node

	if !sa.reached {
		p.intent = sa.toward
		return p
	}

	u := sa.node
	for steps := 0; u != ta.node && steps < len(pf.nodes); steps++ {
		v := pf.next[u][ta.node]
		if v == NoNode {
			p.status = Unreachable
			return p
		}
		in := pf.hop(u, v)
		if in.IsNone() {
			u = v
			continue
		}
		// A stair is entered from the row the mover stands on. Reaching u
		// through a flat hop onto another row of a tall platform leaves the
		// mover below the stair, where a different stair may start.
		if pf.kinds[keyOf(u, v)] == EdgeStair && pf.nodes[u].Y != cur.Y {
			p.status = Unreachable
			return p
		}
		p.intent = in
		return p
	}

	// Standing on the target's anchor without sharing its platform: the goal
	// sits somewhere walking cannot reach, so this is as close as it gets.
	p.status = Arrived
	return p
}

// anchors lists the nodes a relative tile attaches to.
func (pf *PathFinder) anchors(rel common.Tile) []anchor {
	if id, ok := pf.index[rel]; ok {
		return []anchor{{node: id, reached: true}}
	}

	pl := pf.part.atRelative(rel)
	if pl.Walkable {
		pair := pf.slots[pf.part.slotRelative(rel, pl)]
		out := make([]anchor, 0, 2)
		for _, n := range [2]int{pair.left, pair.right} {
			if n == NoNode || (len(out) == 1 && out[0].node == n) {
				continue
			}
			pos := pf.nodes[n]
			out = append(out, anchor{
				node:    n,
				cost:    rel.Distance(pos),
				toward:  Intent{Horizontal: horizontalToward(rel.X, pos.X)},
				reached: pos.X == rel.X,
			})
		}
		return out
	}

	si, ok := pf.stairTiles[rel]
	if !ok {
		return nil
	}
	out := make([]anchor, 0, 2)
	for _, n := range pf.stairs[si] {
		out = append(out, anchor{
			node:   n,
			cost:   rel.Distance(pf.nodes[n]),
			toward: along(rel, pf.nodes[n]),
		})
	}
	return out
}

// hop is the intent for leaving node u toward its neighbour v.
func (pf *PathFinder) hop(u, v int) Intent {
	a, b := pf.nodes[u], pf.nodes[v]
	if pf.kinds[keyOf(u, v)] == EdgeStair {
		return along(a, b)
	}
	return Intent{Horizontal: horizontalToward(a.X, b.X)}
}

// along is the intent for travelling a stair from a toward b.
func along(a, b common.Tile) Intent {
	if a.Y != b.Y {
		return Intent{Vertical: verticalToward(a.Y, b.Y)}
	}
	return Intent{Horizontal: horizontalToward(a.X, b.X)}
}
