// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package egraph

import (
	"fmt"
	"hash/maphash"
)

// Data is the constraint on the operator payload stored in every node. The
// payload carries the operator kind, used when matching over a class, plus
// any immediates (constants, variable names). Values must be hashable and
// comparable: two payloads for which Equal returns true must have the same
// Hash, and the kind of equal payloads must be equal.
//
// Payloads that implement fmt.Stringer get readable labels in DOT output.
type Data[K comparable, D any] interface {
	// Kind returns the operator kind of the payload.
	Kind() K

	// Hash returns a hash of the payload. The value must be stable for the
	// lifetime of the e-graph.
	Hash() uint64

	// Equal reports whether two payloads denote the same operator with the
	// same immediates.
	Equal(other D) bool
}

var simpleseed = maphash.MakeSeed()

// SimpleData is a ready-made payload for operator alphabets with no
// immediates: the payload is the operator kind and nothing else.
type SimpleData[K comparable] struct {
	kind K
}

// Simple wraps an operator kind into a SimpleData payload.
func Simple[K comparable](kind K) SimpleData[K] {
	return SimpleData[K]{kind: kind}
}

// Kind returns the operator kind.
func (d SimpleData[K]) Kind() K {
	return d.kind
}

// Hash returns a hash of the operator kind.
func (d SimpleData[K]) Hash() uint64 {
	return maphash.Comparable(simpleseed, d.kind)
}

// Equal reports whether two payloads carry the same kind.
func (d SimpleData[K]) Equal(other SimpleData[K]) bool {
	return d.kind == other.kind
}

func (d SimpleData[K]) String() string {
	return fmt.Sprint(d.kind)
}
