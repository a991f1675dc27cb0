// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package egraph defines a concrete type for e-graphs, a data structure used to
compactly represent large sets of equivalent terms over a user-defined
operator alphabet. E-graphs are the workhorse of equality-saturation
rewriting: a client builds terms bottom-up, asserts equalities between them,
and the e-graph maintains a congruence relation ("equal operators applied to
equal arguments are equal") over everything built so far.

Basics

Terms are created with the method Node, which either returns an existing
canonical node or allocates a new one; two calls with the same operator data
and the same (canonical) children return handles of the same class, and the
very same handle when no Merge happened in between. Equalities
are asserted with Merge, which drives a congruence-closure loop to fixpoint:
merging two classes can make previously distinct parent terms equal, and
those new equalities are propagated in turn.

Every node belongs to exactly one equivalence class (e-class), identified by
its current root node. Class identity can change across a Merge, so clients
that cache a handle should canonicalise it with Root before using it as a
semantic key. The members of a class can be enumerated with Class, and
filtered by operator kind or by full operator data with MatchKind and Match.

The operator alphabet is supplied by the client as a type implementing the
Data constraint: an equality comparator, a hash, and an operator kind used
for matching. The SimpleData wrapper covers alphabets with no immediates.

Extraction

Given a cost function, Extract computes one minimum-cost representative term
per class using an upward Dijkstra propagation seeded at the leaves. Costs
use saturating 64 bit arithmetic, so an unreachable class is reported with
the sentinel value Inf rather than corrupting the ordering through overflow.

Memory management

Nodes, class-ring records and use records are bump-allocated from growing
slab arenas owned by the e-graph and are never freed individually; all
storage is reclaimed by the runtime when the e-graph itself becomes
unreachable. Node handles are plain pointers into these arenas and stay
valid for the lifetime of the e-graph. The e-graph is single-threaded: no
operation takes locks, and read operations must not overlap with Node or
Merge calls from other goroutines.
*/
package egraph
