// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package egraph_test

import (
	"fmt"

	"github.com/dalzilio/egraph"
)

type logic int

const (
	False logic = iota
	True
	And
	Or
	Not
)

func (k logic) String() string {
	names := [...]string{"False", "True", "And", "Or", "Not"}
	if int(k) < len(names) {
		return names[k]
	}
	return "Var"
}

// This example shows the basic usage of the package: intern a few terms,
// assert equalities between them, and extract the cheapest representative of
// the resulting class.
func Example_basic() {
	g := egraph.New[logic, egraph.SimpleData[logic]]()
	// node == And(True, Not(False))
	node := g.Node(egraph.Simple(And),
		g.Node(egraph.Simple(True)),
		g.Node(egraph.Simple(Not),
			g.Node(egraph.Simple(False)),
		),
	)
	// Not(False) is equal to True, so the whole conjunction is too
	g.Merge(g.Node(egraph.Simple(True)), g.Node(egraph.Simple(Not), g.Node(egraph.Simple(False))))
	g.Merge(node, g.Node(egraph.Simple(True)))
	// With one unit of cost per node, the constant is the cheapest member of
	// the class
	extracted := g.Extract(nil)
	fmt.Println("Representative:", extracted[node.Root()].Data())
	// Output:
	// Representative: True
}
