package navigation

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
)

// buildTables runs Dijkstra from every node and derives the next-hop table.
// Neighbours are tried in ascending index with a strict comparison, so equal
// cost routes always leave through the lowest numbered neighbour.
func buildTables(g *simple.WeightedUndirectedGraph, n int) ([][]float64, [][]int) {
	dist := make([][]float64, n)
	for s := range n {
		shortest := path.DijkstraFrom(simple.Node(s), g)
		row := make([]float64, n)
		for d := range n {
			row[d] = shortest.WeightTo(int64(d))
		}
		row[s] = 0
		dist[s] = row
	}

	next := make([][]int, n)
	for s := range n {
		neighbours := make([]int, 0)
		for _, nb := range graph.NodesOf(g.From(int64(s))) {
			neighbours = append(neighbours, int(nb.ID()))
		}
		slices.Sort(neighbours)

		row := make([]int, n)
		for d := range n {
			if d == s {
				row[d] = s
				continue
			}
			best, bestCost := NoNode, math.Inf(1)
			for _, nb := range neighbours {
				w, _ := g.Weight(int64(s), int64(nb))
				if cost := w + dist[nb][d]; cost < bestCost {
					best, bestCost = nb, cost
				}
			}
			row[d] = best
		}
		next[s] = row
	}
	return dist, next
}
