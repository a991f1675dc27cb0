// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package egraph

import (
	"errors"
)

// _DEFAULTBUCKETSIZE is the default number of buckets in the hash-cons
// table, rounded up to a prime at initialization. The table doubles whenever
// the number of interned nodes reaches the number of buckets.
const _DEFAULTBUCKETSIZE int = 1 << 10

// _SLABSIZE is the number of objects allocated together in the first slab of
// an arena. Subsequent slabs double in size, so the address of an object
// never moves once allocated.
const _SLABSIZE int = 1 << 8

// _CHILDSLABSIZE is the number of node references bump-allocated together for
// the child vectors of new nodes.
const _CHILDSLABSIZE int = 1 << 12

var errMaxnodes = errors.New("maximum number of nodes reached")

// ErrIndexRange is returned when accessing a child with an out of range
// index. It is the only user-facing error; every other contract breach is a
// programming error and is checked in debug builds.
var ErrIndexRange = errors.New("child index out of range")
