// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package egraph

import "sort"

// CostFn computes the cost of a term node. The costs argument gives access
// to the best cost found so far for each class; the cost of a node must be
// strictly positive and strictly larger than the cost of each of its
// children's classes (monotonicity), otherwise the result of Extract is
// unspecified.
type CostFn[K comparable, D Data[K, D]] func(n *Node[K, D], costs Costs[K, D]) Cost

// DataCostFn gives the intrinsic cost of one operator payload, independent
// of its children.
type DataCostFn[D any] func(data D) Cost

// Costs gives read access to the per-class costs computed during an
// extraction.
type Costs[K comparable, D Data[K, D]] struct {
	best map[*Node[K, D]]Cost
}

// Of returns the best cost found so far for the class containing n, or Inf
// when the class has not been reached yet.
func (c Costs[K, D]) Of(n *Node[K, D]) Cost {
	if cost, ok := c.best[n.Root()]; ok {
		return cost
	}
	return Inf
}

// DataCost lifts a per-payload cost into a CostFn by adding the cost of the
// classes of every child, with saturation.
func DataCost[K comparable, D Data[K, D]](fn DataCostFn[D]) CostFn[K, D] {
	return func(n *Node[K, D], costs Costs[K, D]) Cost {
		cost := fn(n.data)
		for _, c := range n.children {
			cost = cost.Add(costs.Of(c))
		}
		return cost
	}
}

// unitcost charges one per node; it is the default cost function.
func unitcost[K comparable, D Data[K, D]](n *Node[K, D], costs Costs[K, D]) Cost {
	cost := Cost(1)
	for _, c := range n.children {
		cost = cost.Add(costs.Of(c))
	}
	return cost
}

// Extract computes one minimum-cost representative node per class under the
// given cost function, or under unit cost per node when fn is nil. The
// result maps every class root to the chosen member; classes for which no
// finite-cost term exists map to the root itself with cost Inf (this cannot
// happen when the graph was built bottom-up from leaves).
//
// The choice among equal-cost representatives is arbitrary but deterministic
// for a given e-graph: the first candidate to reach the best cost wins.
func (g *EGraph[K, D]) Extract(fn CostFn[K, D]) map[*Node[K, D]]*Node[K, D] {
	if fn == nil {
		fn = unitcost[K, D]
	}
	costs := Costs[K, D]{best: make(map[*Node[K, D]]Cost, len(g.roots))}
	chosen := make(map[*Node[K, D]]*Node[K, D], len(g.roots))
	for r := range g.roots {
		chosen[r] = r
	}

	var heap costheap[K, D]
	relax := func(n *Node[K, D]) {
		root := n.Root()
		cost := fn(n, costs)
		if best, ok := costs.best[root]; ok && cost >= best {
			return
		}
		if cost == Inf {
			return
		}
		costs.best[root] = cost
		chosen[root] = n
		heap.push(costentry[K, D]{root: root, cost: cost})
	}

	// Seed with every leaf, in creation order so that ties between
	// equal-cost representatives break the same way on every run.
	leaves := []*Node[K, D]{}
	for r := range g.roots {
		for n := range r.Class().Nodes() {
			if len(n.children) == 0 {
				leaves = append(leaves, n)
			}
		}
	}
	sort.Slice(leaves, func(i, j int) bool { return leaves[i].id < leaves[j].id })
	for _, n := range leaves {
		relax(n)
	}

	// Upward Dijkstra over class roots. When a root is settled, every
	// interned parent using the class gets a candidate cost; entries made
	// stale by a later improvement are skipped on pop.
	for len(heap) > 0 {
		e := heap.pop()
		if e.cost != costs.best[e.root] {
			continue
		}
		if e.root.uses == nil {
			continue
		}
		initial := e.root.uses
		for u := initial; ; u = u.next {
			if u.node.inHashcons() {
				relax(u.node)
			}
			if u.next == initial {
				break
			}
		}
	}
	return chosen
}
