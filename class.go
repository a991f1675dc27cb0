// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package egraph

import "iter"

// Class is a read-only view over one equivalence class. A Class is obtained
// from any member node and is anchored at the current class root; it is
// invalidated by any subsequent Node or Merge call on the e-graph.
type Class[K comparable, D Data[K, D]] struct {
	root *Node[K, D]
}

// Class returns a view over the equivalence class containing n.
func (n *Node[K, D]) Class() Class[K, D] {
	return Class[K, D]{root: n.Root()}
}

// Root returns the representative of the class.
func (c Class[K, D]) Root() *Node[K, D] {
	return c.root
}

// Nodes iterates over the members of the class. Nodes that left the
// hash-cons during congruence repair are retained on the membership ring for
// internal bookkeeping but are not class members anymore (their term is
// represented by the node that subsumed them), so they are skipped.
func (c Class[K, D]) Nodes() iter.Seq[*Node[K, D]] {
	return func(yield func(*Node[K, D]) bool) {
		initial := c.root.ring
		for r := initial; ; r = r.next {
			if r.node.inHashcons() && !yield(r.node) {
				return
			}
			if r.next == initial {
				return
			}
		}
	}
}

// Match iterates over the members of the class whose payload equals data.
func (c Class[K, D]) Match(data D) iter.Seq[*Node[K, D]] {
	return c.filter(func(n *Node[K, D]) bool { return n.data.Equal(data) })
}

// MatchKind iterates over the members of the class whose operator kind is
// kind.
func (c Class[K, D]) MatchKind(kind K) iter.Seq[*Node[K, D]] {
	return c.filter(func(n *Node[K, D]) bool { return n.data.Kind() == kind })
}

func (c Class[K, D]) filter(matches func(*Node[K, D]) bool) iter.Seq[*Node[K, D]] {
	return func(yield func(*Node[K, D]) bool) {
		for n := range c.Nodes() {
			if matches(n) && !yield(n) {
				return
			}
		}
	}
}
