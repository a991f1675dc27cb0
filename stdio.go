// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package egraph

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/dustin/go-humanize"
)

// Stats returns information about the e-graph.
func (g *EGraph[K, D]) Stats() string {
	res := fmt.Sprintf("Produced:    %s\n", humanize.Comma(int64(g.produced)))
	res += fmt.Sprintf("Interned:    %s\n", humanize.Comma(int64(g.table.count)))
	res += fmt.Sprintf("Classes:     %s\n", humanize.Comma(int64(len(g.roots))))
	res += fmt.Sprintf("Merges:      %s\n", humanize.Comma(int64(g.merges)))
	res += fmt.Sprintf("Congruences: %s\n", humanize.Comma(int64(g.congruences)))
	res += fmt.Sprintf("Buckets:     %s\n", humanize.Comma(int64(len(g.table.buckets))))
	res += fmt.Sprintf("Slabs:       %d\n", g.nodes.slabs()+g.rings.slabs()+g.uses.slabs()+g.childrens.slabs())
	if _DEBUG {
		res += "==============\n"
		res += fmt.Sprintf("Unique Access:  %d\n", g.table.access)
		res += fmt.Sprintf("Unique Chain:   %d\n", g.table.chain)
		res += fmt.Sprintf("Unique Hit:     %d\n", g.table.hit)
		res += fmt.Sprintf("Unique Miss:    %d\n", g.table.miss)
	}
	return res
}

// ******************************************************************************************************

// WriteDot writes a graph-like description of the whole e-graph in
// Graphviz's DOT format, with one cluster per equivalence class.
func (g *EGraph[K, D]) WriteDot(w io.Writer) error {
	if g.error != nil {
		fmt.Fprintf(w, "ERROR: %s\n", g.error)
		return g.error
	}
	buf := bufio.NewWriter(w)
	fmt.Fprintln(buf, "digraph {")
	fmt.Fprintln(buf, "compound=true;")
	roots := g.sortedroots()
	for _, r := range roots {
		fmt.Fprintf(buf, "subgraph cluster%d {\n", r.id)
		for _, n := range sortedclass(r) {
			fmt.Fprintf(buf, "node%d [label=%q];\n", n.id, fmt.Sprintf("%v", n.data))
		}
		fmt.Fprintln(buf, "}")
	}
	for _, r := range roots {
		for _, n := range sortedclass(r) {
			for _, c := range n.children {
				fmt.Fprintf(buf, "node%d -> node%d;\n", n.id, c.id)
			}
		}
	}
	fmt.Fprintln(buf, "}")
	return buf.Flush()
}

// WriteDotExtracted writes the DAG of representatives chosen by Extract,
// starting from the class of root, in Graphviz's DOT format.
func (g *EGraph[K, D]) WriteDotExtracted(w io.Writer, extracted map[*Node[K, D]]*Node[K, D], root *Node[K, D]) error {
	if g.error != nil {
		fmt.Fprintf(w, "ERROR: %s\n", g.error)
		return g.error
	}
	buf := bufio.NewWriter(w)
	fmt.Fprintln(buf, "digraph {")
	seen := make(map[*Node[K, D]]bool)
	var walk func(n *Node[K, D])
	walk = func(n *Node[K, D]) {
		if seen[n] {
			return
		}
		seen[n] = true
		fmt.Fprintf(buf, "node%d [label=%q];\n", n.id, fmt.Sprintf("%v", n.data))
		for _, c := range n.children {
			child := extracted[c.Root()]
			fmt.Fprintf(buf, "node%d -> node%d;\n", n.id, child.id)
			walk(child)
		}
	}
	walk(extracted[root.Root()])
	fmt.Fprintln(buf, "}")
	return buf.Flush()
}

// SaveDot writes the output of WriteDot to a file; "-" writes to the
// standard output.
func (g *EGraph[K, D]) SaveDot(filename string) error {
	if filename == "-" {
		return g.WriteDot(os.Stdout)
	}
	out, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer out.Close()
	return g.WriteDot(out)
}

// ******************************************************************************************************

func (g *EGraph[K, D]) sortedroots() []*Node[K, D] {
	roots := make([]*Node[K, D], 0, len(g.roots))
	for r := range g.roots {
		roots = append(roots, r)
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i].id < roots[j].id })
	return roots
}

func sortedclass[K comparable, D Data[K, D]](r *Node[K, D]) []*Node[K, D] {
	members := []*Node[K, D]{}
	for n := range r.Class().Nodes() {
		members = append(members, n)
	}
	sort.Slice(members, func(i, j int) bool { return members[i].id < members[j].id })
	return members
}
