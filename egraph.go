// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package egraph

import (
	"iter"
	"log"
)

// EGraph is an e-graph over operator payloads of type D with operator kinds
// of type K. The zero value is not usable; create e-graphs with New.
//
// All methods assume exclusive access; see the package documentation for the
// concurrency model.
type EGraph[K comparable, D Data[K, D]] struct {
	table hashcons[K, D]
	roots map[*Node[K, D]]struct{}

	nodes     arena[Node[K, D]]
	rings     arena[ring[K, D]]
	uses      arena[use[K, D]]
	childrens sliceArena[*Node[K, D]]

	produced    int // total number of nodes ever created
	merges      int // number of unions actually performed
	congruences int // number of merges discovered by congruence repair

	configs
	error error
}

// New initializes an empty e-graph. Options can be used to change the
// initial size of the hash-cons table (Bucketsize) and to set a limit on the
// total number of nodes (Maxnodes).
func New[K comparable, D Data[K, D]](options ...func(*configs)) *EGraph[K, D] {
	g := &EGraph[K, D]{
		roots: make(map[*Node[K, D]]struct{}),
	}
	g.configs = makeconfigs()
	for _, f := range options {
		f(&g.configs)
	}
	g.table.buckets = make([]*Node[K, D], primeGte(g.bucketsize))
	return g
}

// Node interns the term data(children...) and returns the root of the class
// that represents it. Two calls with the same payload and the same children
// return the same class, in any interleaving with Merge calls. Children must
// be root nodes; pass handles through Root when they may have been
// invalidated by a merge.
//
// Node returns nil, with the error state of the graph set, when the Maxnodes
// limit is reached.
func (g *EGraph[K, D]) Node(data D, children ...*Node[K, D]) *Node[K, D] {
	if _DEBUG {
		for _, c := range children {
			if c.up != nil {
				log.Panicf("node %d passed as a child but is not a root", c.id)
			}
		}
	}
	if n := g.table.lookup(data, children); n != nil {
		return n.Root()
	}
	if g.maxnodes > 0 && g.produced >= g.maxnodes {
		g.seterror("cannot create node: %s (%d)", errMaxnodes, g.maxnodes)
		return nil
	}

	g.produced++
	n := g.nodes.new(Node[K, D]{
		id:       g.produced,
		data:     data,
		children: g.childrens.make(len(children)),
		bucket:   -1,
	})
	copy(n.children, children)
	n.ring = g.rings.new(ring[K, D]{node: n})
	n.ring.next = n.ring

	for i, c := range children {
		u := g.uses.new(use[K, D]{node: n, slot: i})
		u.next = u
		c.insertUses(u)
	}

	g.table.insert(n)
	g.roots[n] = struct{}{}
	return n
}

// Merge asserts that a and b denote equal terms and propagates congruence to
// fixpoint. It reports whether the partition of nodes into classes changed;
// merging two members of the same class is a no-op.
func (g *EGraph[K, D]) Merge(a, b *Node[K, D]) bool {
	q := &Queue[K, D]{}
	q.Push(a, b)
	return g.MergeAll(q)
}

// MergeAll consumes a queue of equality assertions and propagates congruence
// to fixpoint, reporting whether anything changed. Saturation drivers push
// one round of rewrites into the queue and loop until MergeAll returns
// false.
func (g *EGraph[K, D]) MergeAll(q *Queue[K, D]) bool {
	changed := false
	for {
		a, b, ok := q.pop()
		if !ok {
			break
		}
		a = a.Root()
		b = b.Root()
		if a == b {
			continue
		}
		winner, loser := b, a
		if winner.rank < loser.rank {
			winner, loser = loser, winner
		}
		if _LOGLEVEL > 1 {
			log.Printf("union of %d into %d\n", loser.id, winner.id)
		}
		uses := loser.mergeRoots(winner)
		changed = true
		g.merges++
		delete(g.roots, loser)
		g.repair(winner, uses, q)
	}
	return changed
}

// repair walks the use records transferred from a losing root and restores
// hash-cons canonicity: every interned parent has the merged slot rewritten
// to the winner and is re-interned under its new spelling. When the new
// spelling is already interned by a different node, congruence has produced
// a fresh equality: the pair is enqueued and the parent stays out of the
// table, represented from now on by the occupant. Records whose parent is
// out of the table are unlinked from the use ring so that later repair
// passes do not revisit subsumed parents.
func (g *EGraph[K, D]) repair(winner *Node[K, D], uses useRange[K, D], q *Queue[K, D]) {
	if uses.first == nil {
		return
	}
	selfRing := uses.pred == uses.last // the segment is the whole ring
	prev := uses.pred
	var firstKept *use[K, D]
	for u := uses.first; ; {
		next := u.next
		if u.node.inHashcons() {
			g.table.erase(u.node)
			u.node.children[u.slot] = winner
			if other := g.table.lookup(u.node.data, u.node.children); other != nil {
				g.congruences++
				q.Push(u.node, other)
			} else {
				g.table.insert(u.node)
			}
			if firstKept == nil {
				firstKept = u
			}
			prev.next = u
			prev = u
		}
		if u == uses.last {
			break
		}
		u = next
	}
	if selfRing {
		// no record outside the segment anchors the ring; close it over the
		// kept records, or drop it when none survived
		if firstKept == nil {
			winner.uses = nil
			return
		}
		prev.next = firstKept
		winner.uses = prev
		return
	}
	prev.next = uses.after
}

// Roots iterates over the current root set, in no particular order. The
// sequence is invalidated by any Node or Merge call.
func (g *EGraph[K, D]) Roots() iter.Seq[*Node[K, D]] {
	return func(yield func(*Node[K, D]) bool) {
		for r := range g.roots {
			if !yield(r) {
				return
			}
		}
	}
}

// ************************************************************

// Queue is a FIFO of equality assertions consumed by MergeAll. The zero
// value is an empty queue.
type Queue[K comparable, D Data[K, D]] struct {
	pairs [][2]*Node[K, D]
	head  int
}

// Push appends the assertion a ≡ b.
func (q *Queue[K, D]) Push(a, b *Node[K, D]) {
	q.pairs = append(q.pairs, [2]*Node[K, D]{a, b})
}

// Len returns the number of pending assertions.
func (q *Queue[K, D]) Len() int {
	return len(q.pairs) - q.head
}

func (q *Queue[K, D]) pop() (a, b *Node[K, D], ok bool) {
	if q.head >= len(q.pairs) {
		q.pairs = q.pairs[:0]
		q.head = 0
		return nil, nil, false
	}
	p := q.pairs[q.head]
	q.head++
	return p[0], p[1], true
}
