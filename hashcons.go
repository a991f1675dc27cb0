// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package egraph

import "log"

// hashcons is the unicity table of the e-graph: a chaining hash table that
// associates each canonical (data, children) pair with the single node
// representing that applied term. Chains are threaded through the nodes
// themselves (hnext, hprev), so erasing a node given its handle is constant
// time; congruence repair erases and reinserts many nodes per merge.
//
// Only the canonical term of a class member is interned. A node that loses a
// union stays in the table (its term is still the canonical spelling of that
// application); a node whose repaired spelling collides with an existing
// entry leaves the table for good and is skipped by class iteration.
type hashcons[K comparable, D Data[K, D]] struct {
	buckets []*Node[K, D]
	count   int

	// statistics, only maintained in debug builds
	access int
	hit    int
	miss   int
	chain  int
}

// nodehash hashes an applied term. Children contribute through their
// creation index, which never changes, so a node keeps its hash for as long
// as its child vector is untouched.
func nodehash[K comparable, D Data[K, D]](data D, children []*Node[K, D]) uint64 {
	h := data.Hash()
	h ^= uint64(len(children)) << 17
	for _, c := range children {
		h = (h ^ uint64(c.id)) * 0x100000001b3
	}
	return h
}

func (t *hashcons[K, D]) eq(n *Node[K, D], data D, children []*Node[K, D]) bool {
	if len(n.children) != len(children) || !n.data.Equal(data) {
		return false
	}
	for i, c := range n.children {
		if c != children[i] {
			return false
		}
	}
	return true
}

// lookup returns the node interned for (data, children), or nil.
func (t *hashcons[K, D]) lookup(data D, children []*Node[K, D]) *Node[K, D] {
	if _DEBUG {
		t.access++
	}
	idx := int(nodehash(data, children) % uint64(len(t.buckets)))
	for n := t.buckets[idx]; n != nil; n = n.hnext {
		if t.eq(n, data, children) {
			if _DEBUG {
				t.hit++
			}
			return n
		}
		if _DEBUG {
			t.chain++
		}
	}
	if _DEBUG {
		t.miss++
	}
	return nil
}

// insert interns a node that is not currently in the table.
func (t *hashcons[K, D]) insert(n *Node[K, D]) {
	if _DEBUG && n.inHashcons() {
		log.Panicf("node %d already in the hash-cons", n.id)
	}
	if t.count >= len(t.buckets) {
		t.grow()
	}
	idx := int(nodehash(n.data, n.children) % uint64(len(t.buckets)))
	n.bucket = idx
	n.hprev = nil
	n.hnext = t.buckets[idx]
	if n.hnext != nil {
		n.hnext.hprev = n
	}
	t.buckets[idx] = n
	t.count++
}

// erase removes a node that is currently in the table.
func (t *hashcons[K, D]) erase(n *Node[K, D]) {
	if _DEBUG && !n.inHashcons() {
		log.Panicf("node %d absent from the hash-cons", n.id)
	}
	if n.hprev == nil {
		t.buckets[n.bucket] = n.hnext
	} else {
		n.hprev.hnext = n.hnext
	}
	if n.hnext != nil {
		n.hnext.hprev = n.hprev
	}
	n.hnext = nil
	n.hprev = nil
	n.bucket = -1
	t.count--
}

// grow doubles the bucket array, rounding up to a prime count, and relinks
// every interned node.
func (t *hashcons[K, D]) grow() {
	size := primeGte(2 * len(t.buckets))
	if _LOGLEVEL > 0 {
		log.Printf("resize hash-cons: %d buckets\n", size)
	}
	old := t.buckets
	t.buckets = make([]*Node[K, D], size)
	for _, n := range old {
		for n != nil {
			next := n.hnext
			idx := int(nodehash(n.data, n.children) % uint64(len(t.buckets)))
			n.bucket = idx
			n.hprev = nil
			n.hnext = t.buckets[idx]
			if n.hnext != nil {
				n.hnext.hprev = n
			}
			t.buckets[idx] = n
			n = next
		}
	}
}
