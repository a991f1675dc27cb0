// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package egraph

// configs is used to store the values of different parameters of the e-graph
type configs struct {
	bucketsize int // initial number of buckets in the hash-cons table
	maxnodes   int // maximum total number of nodes (0 if no limit)
}

func makeconfigs() configs {
	return configs{bucketsize: _DEFAULTBUCKETSIZE}
}

// Bucketsize is a configuration option (function). Used as a parameter in
// New it sets a preferred initial size for the hash-cons table. The table
// grows by doubling whenever the number of interned nodes reaches the number
// of buckets, so this is only a hint to avoid early resizes for graphs whose
// final size is known in advance.
func Bucketsize(size int) func(*configs) {
	return func(c *configs) {
		if size > 0 {
			c.bucketsize = size
		}
	}
}

// Maxnodes is a configuration option (function). Used as a parameter in New
// it sets a limit to the number of nodes in the e-graph. A call to Node
// trying to raise the number of nodes above this limit sets the error state
// of the graph and returns a nil Node. The default value (0) means that
// there is no limit, in which case allocation can panic if we exhaust all
// the available memory.
func Maxnodes(size int) func(*configs) {
	return func(c *configs) {
		c.maxnodes = size
	}
}
