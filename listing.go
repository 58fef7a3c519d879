package quaver

import (
	"fmt"
	"strings"
)

// Listing is a snapshot of a compiled graph for display by hosts.
type Listing struct {
	Nodes []ListedNode
	Names []ListedName
}

// ListedNode is one node of a Listing with its inputs in slot order.
type ListedNode struct {
	ID     NodeID
	Kind   string
	Inputs []NodeID
}

// ListedName is one name table entry of a Listing.
type ListedName struct {
	Name string
	Node NodeID
	Sink bool
}

// Listing returns the nodes of g in insertion order and its names in
// first-bind order. The result does not share storage with g.
func (g *Graph) Listing() Listing {
	var l Listing
	for i := range g.nodes {
		n := &g.nodes[i]
		l.Nodes = append(l.Nodes, ListedNode{
			ID:     NodeID(i),
			Kind:   n.kind,
			Inputs: append([]NodeID(nil), n.inputs...),
		})
	}
	for _, name := range g.Names.Names() {
		id, _ := g.Names.Lookup(name)
		l.Names = append(l.Names, ListedName{Name: name, Node: id, Sink: IsSink(name)})
	}
	return l
}

// String formats l one node or name per line, for example
//
//	0 sin
//	1 mul <- 0
//	~out = 1
func (l Listing) String() string {
	var b strings.Builder
	for _, n := range l.Nodes {
		fmt.Fprintf(&b, "%d %s", n.ID, n.Kind)
		for i, in := range n.Inputs {
			sep := ","
			if i == 0 {
				sep = " <-"
			}
			fmt.Fprintf(&b, "%s %d", sep, in)
		}
		b.WriteByte('\n')
	}
	for _, n := range l.Names {
		fmt.Fprintf(&b, "%s = %d\n", n.Name, n.Node)
	}
	return b.String()
}
