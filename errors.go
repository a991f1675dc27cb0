// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package egraph

import (
	"fmt"
	"log"
)

// Error returns the error status of the e-graph. We return an empty string
// if there are no errors.
func (g *EGraph[K, D]) Error() string {
	if g.error == nil {
		return ""
	}
	return g.error.Error()
}

// Errored returns true if there was an error during a computation.
func (g *EGraph[K, D]) Errored() bool {
	return g.error != nil
}

func (g *EGraph[K, D]) seterror(format string, a ...interface{}) {
	if g.error != nil {
		format = format + "; " + g.Error()
	}
	g.error = fmt.Errorf(format, a...)
	if _DEBUG {
		log.Println(g.error)
	}
}
