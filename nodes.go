// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package egraph

import "log"

// Node is one applied operator in the e-graph. Nodes are created with the
// method Node of an EGraph, are never destroyed, and stay valid for the
// lifetime of the graph. A node that loses a union becomes a non-root member
// of its class but keeps its storage; clients only ever receive root nodes
// from Node, and should canonicalise cached handles with Root.
type Node[K comparable, D Data[K, D]] struct {
	id   int // creation index, used for hashing and deterministic ordering
	data D

	// children always reference nodes that were roots when the vector was
	// last written; congruence repair rewrites slots in place.
	children []*Node[K, D]

	// union find
	rank int
	up   *Node[K, D] // nil iff this node is the root of its class

	// Anchors owned by root nodes. uses is the head of the cyclic list of
	// (parent, slot) records over every member of the class; ring is this
	// node's own record in the cyclic class-membership list. A node
	// surrenders its use list to the winner when it loses a union.
	uses *use[K, D]
	ring *ring[K, D]

	// hash-cons chain. bucket is -1 while the node is absent from the table.
	bucket int
	hnext  *Node[K, D]
	hprev  *Node[K, D]
}

// use records that node uses a class member as its slot-th child. Use
// records are threaded into a cyclic singly-linked list anchored at the
// class root, so that two lists can be concatenated in constant time when
// classes merge.
type use[K comparable, D Data[K, D]] struct {
	node *Node[K, D]
	slot int
	next *use[K, D]
}

// ring threads every node of one equivalence class into a cycle anchored at
// the class root.
type ring[K comparable, D Data[K, D]] struct {
	node *Node[K, D]
	next *ring[K, D]
}

// ************************************************************

// Data returns the operator payload of the node.
func (n *Node[K, D]) Data() D {
	return n.data
}

// Len returns the number of children.
func (n *Node[K, D]) Len() int {
	return len(n.children)
}

// Children returns the child vector of the node. The slice is owned by the
// e-graph and must not be modified; its entries are rewritten in place by
// congruence repair, so it always references current or former class roots.
func (n *Node[K, D]) Children() []*Node[K, D] {
	return n.children
}

// At returns the i-th child, or ErrIndexRange when the index is out of
// range.
func (n *Node[K, D]) At(i int) (*Node[K, D], error) {
	if i < 0 || i >= len(n.children) {
		return nil, ErrIndexRange
	}
	return n.children[i], nil
}

// Root returns the representative of the class containing n, compressing
// the walked parent chain so later calls are nearly constant time.
func (n *Node[K, D]) Root() *Node[K, D] {
	root := n
	for root.up != nil {
		root = root.up
	}
	for cur := n; cur.up != nil; {
		oldup := cur.up
		cur.up = root
		cur = oldup
	}
	return root
}

func (n *Node[K, D]) inHashcons() bool {
	return n.bucket >= 0
}

// insertUses concatenates a cyclic use list into the list anchored at n.
func (n *Node[K, D]) insertUses(uses *use[K, D]) {
	if n.uses == nil {
		n.uses = uses
		return
	}
	temp := n.uses.next
	n.uses.next = uses.next
	uses.next = temp
}

// useRange delimits the segment of use records transferred from a losing
// root to the winner during a union. first is nil when the loser had no
// uses.
type useRange[K comparable, D Data[K, D]] struct {
	first *use[K, D]
	last  *use[K, D]
	// pred is the record preceding first in the winner's ring after the
	// concatenation, and after is the record following last. They bound the
	// segment so that the repair walk can unlink subsumed records.
	pred  *use[K, D]
	after *use[K, D]
}

// mergeRoots makes n a non-root child of winner. Both must be distinct
// roots and the rank of n must not exceed the rank of winner. The class
// ring of n is spliced into the winner's ring, the use list of n is
// concatenated into the winner's, and the transferred segment is returned
// for the repair walk.
func (n *Node[K, D]) mergeRoots(winner *Node[K, D]) useRange[K, D] {
	if _DEBUG {
		if n == winner || n.up != nil || winner.up != nil || n.rank > winner.rank {
			log.Panicf("invalid union of nodes %d and %d", n.id, winner.id)
		}
	}
	n.up = winner
	if n.rank == winner.rank {
		winner.rank++
	}

	temp := winner.ring.next
	winner.ring.next = n.ring.next
	n.ring.next = temp
	n.ring = nil

	if n.uses == nil {
		return useRange[K, D]{}
	}
	r := useRange[K, D]{first: n.uses.next, last: n.uses}
	if winner.uses == nil {
		// the segment is the whole ring; pred and after wrap onto it
		winner.uses = n.uses
		r.pred = r.last
		r.after = r.first
	} else {
		r.pred = winner.uses
		r.after = winner.uses.next
		winner.uses.next = r.first
		r.last.next = r.after
	}
	n.uses = nil
	return r
}
