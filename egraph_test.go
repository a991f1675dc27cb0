// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package egraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The test alphabet mirrors a tiny term language: F, G, H are operators of
// arity one or two, the rest are constants.
type kind int

const (
	kF kind = iota
	kG
	kH
	kX
	kY
	kZ
	kA
	kB
	kC
)

func (k kind) String() string {
	return [...]string{"F", "G", "H", "X", "Y", "Z", "A", "B", "C"}[k]
}

type tnode = Node[kind, SimpleData[kind]]

func newgraph() *EGraph[kind, SimpleData[kind]] {
	return New[kind, SimpleData[kind]]()
}

//********************************************************************************************

func TestHashcons(t *testing.T) {
	g := newgraph()

	require.Same(t, g.Node(Simple(kX)), g.Node(Simple(kX)))
	require.NotSame(t, g.Node(Simple(kY)), g.Node(Simple(kX)))

	a := g.Node(Simple(kF), g.Node(Simple(kX)))
	b := g.Node(Simple(kF), g.Node(Simple(kX)))
	require.Same(t, a, b)

	b = g.Node(Simple(kF), g.Node(Simple(kY)))
	require.NotSame(t, a, b)

	b = g.Node(Simple(kG), g.Node(Simple(kX)))
	require.NotSame(t, a, b)

	a = g.Node(Simple(kH), g.Node(Simple(kX)), g.Node(Simple(kY)))
	b = g.Node(Simple(kH), g.Node(Simple(kX)), g.Node(Simple(kY)))
	require.Same(t, a, b)

	// arity matters
	b = g.Node(Simple(kH), g.Node(Simple(kX)))
	require.NotSame(t, a, b)
}

func TestTransitive(t *testing.T) {
	g := newgraph()

	x := g.Node(Simple(kX))
	y := g.Node(Simple(kY))
	z := g.Node(Simple(kZ))
	require.NotSame(t, x.Root(), y.Root())
	require.NotSame(t, x.Root(), z.Root())
	require.NotSame(t, y.Root(), z.Root())

	g.Merge(x, y)
	require.Same(t, x.Root(), y.Root())

	g.Merge(y, z)
	require.Same(t, y.Root(), z.Root())
	require.Same(t, x.Root(), z.Root())
}

func TestCongruentMergeBefore(t *testing.T) {
	g := newgraph()

	g.Merge(g.Node(Simple(kX)), g.Node(Simple(kY)))

	fx := g.Node(Simple(kF), g.Node(Simple(kX)).Root())
	fy := g.Node(Simple(kF), g.Node(Simple(kY)).Root())
	require.Same(t, fx, fy)

	g.Merge(fx, g.Node(Simple(kA)))
	g.Merge(fy, g.Node(Simple(kB)))
	require.Same(t, g.Node(Simple(kA)).Root(), g.Node(Simple(kB)).Root())
}

func TestCongruentMergeAfter(t *testing.T) {
	g := newgraph()

	fx := g.Node(Simple(kF), g.Node(Simple(kX)))
	fy := g.Node(Simple(kF), g.Node(Simple(kY)))
	require.NotSame(t, fx.Root(), fy.Root())

	a := g.Node(Simple(kA))
	b := g.Node(Simple(kB))
	g.Merge(fx, a)
	g.Merge(fy, b)

	g.Merge(g.Node(Simple(kX)), g.Node(Simple(kY)))

	require.Same(t, fx.Root(), fy.Root())
	require.Same(t, a.Root(), b.Root())
}

func TestCongruentTwoLevels(t *testing.T) {
	g := newgraph()

	gfx := g.Node(Simple(kG), g.Node(Simple(kF), g.Node(Simple(kX))))
	gfy := g.Node(Simple(kG), g.Node(Simple(kF), g.Node(Simple(kY))))
	require.NotSame(t, gfx.Root(), gfy.Root())

	a := g.Node(Simple(kA))
	b := g.Node(Simple(kB))
	g.Merge(gfx, a)
	g.Merge(gfy, b)

	g.Merge(g.Node(Simple(kX)), g.Node(Simple(kY)))

	require.Same(t, gfx.Root(), gfy.Root())
	require.Same(t, a.Root(), b.Root())
}

//********************************************************************************************

func TestMergeSelf(t *testing.T) {
	g := newgraph()
	x := g.Node(Simple(kX))
	require.False(t, g.Merge(x, x))
}

func TestMergeIdempotent(t *testing.T) {
	g := newgraph()
	x := g.Node(Simple(kX))
	y := g.Node(Simple(kY))
	require.True(t, g.Merge(x, y))
	require.False(t, g.Merge(x, y))
	require.False(t, g.Merge(y, x))
}

func TestMergeBatch(t *testing.T) {
	g := newgraph()
	x := g.Node(Simple(kX))
	y := g.Node(Simple(kY))
	z := g.Node(Simple(kZ))

	q := &Queue[kind, SimpleData[kind]]{}
	q.Push(x, y)
	q.Push(y, z)
	require.True(t, g.MergeAll(q))
	require.Equal(t, 0, q.Len())
	require.Same(t, x.Root(), z.Root())

	q.Push(x, z)
	require.False(t, g.MergeAll(q))
}

// TestMergeOrderInsensitive checks that any two interleavings of the same
// multiset of merges produce the same partition of nodes into classes.
func TestMergeOrderInsensitive(t *testing.T) {
	build := func() (*EGraph[kind, SimpleData[kind]], []*tnode) {
		g := newgraph()
		x := g.Node(Simple(kX))
		y := g.Node(Simple(kY))
		z := g.Node(Simple(kZ))
		fx := g.Node(Simple(kF), x)
		fy := g.Node(Simple(kF), y)
		fz := g.Node(Simple(kF), z)
		gx := g.Node(Simple(kG), x)
		a := g.Node(Simple(kA))
		return g, []*tnode{x, y, z, fx, fy, fz, gx, a}
	}

	type pair struct{ i, j int }
	merges := []pair{{0, 1}, {1, 2}, {3, 7}, {6, 5}}
	orders := [][]int{{0, 1, 2, 3}, {3, 2, 1, 0}, {2, 0, 3, 1}}

	partitions := make([][]bool, 0, len(orders))
	for _, order := range orders {
		g, nodes := build()
		for _, k := range order {
			g.Merge(nodes[merges[k].i], nodes[merges[k].j])
		}
		sig := make([]bool, 0, len(nodes)*len(nodes))
		for _, m := range nodes {
			for _, n := range nodes {
				sig = append(sig, m.Root() == n.Root())
			}
		}
		partitions = append(partitions, sig)
	}
	for k := 1; k < len(partitions); k++ {
		require.Equal(t, partitions[0], partitions[k])
	}
}

//********************************************************************************************

func TestMatch(t *testing.T) {
	g := newgraph()

	a := g.Node(Simple(kF), g.Node(Simple(kX)))
	b := g.Node(Simple(kF), g.Node(Simple(kY)))
	c := g.Node(Simple(kG), g.Node(Simple(kX)))
	g.Merge(a, b)
	g.Merge(a, c)

	count := func(k kind) int {
		res := 0
		for range a.Class().MatchKind(k) {
			res++
		}
		return res
	}
	assert.Equal(t, 2, count(kF))
	assert.Equal(t, 1, count(kG))
	assert.Equal(t, 0, count(kX))

	n := 0
	for m := range a.Class().Match(Simple(kG)) {
		require.Same(t, c, m)
		n++
	}
	require.Equal(t, 1, n)
}

// After a congruence collapse one of the two F nodes is subsumed by the
// other and must not be reported as a class member anymore.
func TestClassSkipsSubsumed(t *testing.T) {
	g := newgraph()

	fx := g.Node(Simple(kF), g.Node(Simple(kX)))
	fy := g.Node(Simple(kF), g.Node(Simple(kY)))
	g.Merge(fx, g.Node(Simple(kA)))
	g.Merge(fy, g.Node(Simple(kB)))
	g.Merge(g.Node(Simple(kX)), g.Node(Simple(kY)))

	members := 0
	fs := 0
	for n := range fx.Class().Nodes() {
		members++
		if n.Data().Kind() == kF {
			fs++
		}
	}
	// A, B and a single F; the other F left the hash-cons
	require.Equal(t, 3, members)
	require.Equal(t, 1, fs)
}

func TestRoots(t *testing.T) {
	g := newgraph()
	x := g.Node(Simple(kX))
	y := g.Node(Simple(kY))
	g.Node(Simple(kF), x)

	count := func() int {
		res := 0
		for range g.Roots() {
			res++
		}
		return res
	}
	require.Equal(t, 3, count())

	g.Merge(x, y)
	require.Equal(t, 2, count())
	for r := range g.Roots() {
		require.Nil(t, r.up)
	}
}

//********************************************************************************************

func TestAt(t *testing.T) {
	g := newgraph()
	h := g.Node(Simple(kH), g.Node(Simple(kX)), g.Node(Simple(kY)))

	c, err := h.At(1)
	require.NoError(t, err)
	require.Equal(t, kY, c.Data().Kind())

	_, err = h.At(2)
	require.ErrorIs(t, err, ErrIndexRange)
	_, err = h.At(-1)
	require.ErrorIs(t, err, ErrIndexRange)

	require.Equal(t, 2, h.Len())
	require.Len(t, h.Children(), 2)
}

func TestMaxnodes(t *testing.T) {
	g := New[kind, SimpleData[kind]](Maxnodes(2))
	require.NotNil(t, g.Node(Simple(kX)))
	require.NotNil(t, g.Node(Simple(kY)))
	require.Nil(t, g.Node(Simple(kZ)))
	require.True(t, g.Errored())
	require.NotEqual(t, "", g.Error())

	// interning an existing term still works at the cap
	require.NotNil(t, g.Node(Simple(kX)))
}

//********************************************************************************************

// TestChain exercises long repair chains: merging the two ends of a pair of
// towers f^k(x) and f^k(y) collapses every level through congruence alone.
func TestChain(t *testing.T) {
	const depth = 100
	g := newgraph()

	x := g.Node(Simple(kX))
	y := g.Node(Simple(kY))
	xs := []*tnode{x}
	ys := []*tnode{y}
	for i := 1; i <= depth; i++ {
		xs = append(xs, g.Node(Simple(kF), xs[i-1].Root()))
		ys = append(ys, g.Node(Simple(kF), ys[i-1].Root()))
	}
	for i := 0; i <= depth; i++ {
		require.NotSame(t, xs[i].Root(), ys[i].Root())
	}

	require.True(t, g.Merge(x, y))

	for i := 0; i <= depth; i++ {
		require.Same(t, xs[i].Root(), ys[i].Root())
	}
	require.Equal(t, depth, g.congruences)
}

// checkinvariants walks the internal structures and verifies the data model
// invariants that must hold between top-level operations.
func checkinvariants(t *testing.T, g *EGraph[kind, SimpleData[kind]]) {
	t.Helper()
	for r := range g.roots {
		require.Nil(t, r.up)
		// class-ring closure: every member reachable on the ring has r as its
		// union-find root
		seen := 0
		initial := r.ring
		for e := initial; ; e = e.next {
			require.Same(t, r, e.node.Root())
			seen++
			if e.next == initial {
				break
			}
		}
		require.Greater(t, seen, 0)
		// use-list consistency: every record of an interned parent points,
		// through its slot, into the class of r
		if r.uses != nil {
			for u, stop := r.uses, false; !stop; {
				if u.node.inHashcons() {
					require.Same(t, r, u.node.children[u.slot].Root())
				}
				u = u.next
				stop = u == r.uses
			}
		}
	}
	// hash-cons canonicity: interned nodes have root children and resolve to
	// themselves
	for _, bucket := range g.table.buckets {
		for n := bucket; n != nil; n = n.hnext {
			for _, c := range n.children {
				require.Nil(t, c.up)
			}
			require.Same(t, n, g.table.lookup(n.data, n.children))
		}
	}
}

func TestInvariants(t *testing.T) {
	g := newgraph()
	fx := g.Node(Simple(kF), g.Node(Simple(kX)))
	fy := g.Node(Simple(kF), g.Node(Simple(kY)))
	g.Node(Simple(kG), g.Node(Simple(kF), g.Node(Simple(kX))))
	g.Node(Simple(kG), g.Node(Simple(kF), g.Node(Simple(kY))))
	checkinvariants(t, g)

	g.Merge(fx, g.Node(Simple(kA)))
	g.Merge(fy, g.Node(Simple(kB)))
	checkinvariants(t, g)

	g.Merge(g.Node(Simple(kX)), g.Node(Simple(kY)))
	checkinvariants(t, g)

	g.Merge(g.Node(Simple(kZ)), g.Node(Simple(kX)).Root())
	checkinvariants(t, g)
}
