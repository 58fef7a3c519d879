package quaver

import (
	"github.com/pkg/errors"
)

// Graph capacity. Storage for both is allocated by NewGraph; a patch that
// needs more fails to compile with ErrCapacity.
const (
	MaxNodes = 512
	MaxEdges = 512
)

var (
	ErrCapacity = errors.New("graph capacity exceeded")
	ErrCycle    = errors.New("graph contains a cycle")
	ErrNoNode   = errors.New("no such node")
)

// NodeID is a handle to a graph node. Handles are invalidated by Clear.
type NodeID int

// Edge routes From's output buffer into one of To's inputs.
type Edge struct {
	From, To NodeID
}

type node struct {
	kind   string
	unit   Unit
	inputs []NodeID // in edge arrival order
	out    Buffer
	mark   uint32 // visit stamp used by Process
}

// Graph is a capacity-bounded arena of units and the edges between them,
// together with the name table the compiler binds into.
type Graph struct {
	nodes []node
	edges []Edge
	Names NameTable

	stamp   uint32
	order   []NodeID // scratch for Process
	stack   []visit
	scratch []*Buffer
}

type visit struct {
	id   NodeID
	next int // index of the next input to descend into
}

// NewGraph returns a graph with storage for MaxNodes nodes and MaxEdges
// edges allocated up front.
func NewGraph() *Graph {
	return &Graph{
		nodes:   make([]node, 0, MaxNodes),
		edges:   make([]Edge, 0, MaxEdges),
		Names:   newNameTable(),
		order:   make([]NodeID, 0, MaxNodes),
		stack:   make([]visit, 0, MaxNodes),
		scratch: make([]*Buffer, 0, MaxEdges),
	}
}

// AddNode inserts u and returns its handle.
func (g *Graph) AddNode(kind string, u Unit) (NodeID, error) {
	if len(g.nodes) >= MaxNodes {
		return -1, errors.Wrapf(ErrCapacity, "adding %s node (max %d nodes)", kind, MaxNodes)
	}
	g.nodes = g.nodes[:len(g.nodes)+1]
	n := &g.nodes[len(g.nodes)-1]
	*n = node{kind: kind, unit: u, inputs: n.inputs[:0]}
	return NodeID(len(g.nodes) - 1), nil
}

// AddEdge makes from's output the next input of to.
func (g *Graph) AddEdge(from, to NodeID) error {
	if !g.valid(from) || !g.valid(to) {
		return errors.Wrapf(ErrNoNode, "edge %d -> %d", from, to)
	}
	if len(g.edges) >= MaxEdges {
		return errors.Wrapf(ErrCapacity, "adding edge %d -> %d (max %d edges)", from, to, MaxEdges)
	}
	g.edges = append(g.edges, Edge{From: from, To: to})
	n := &g.nodes[to]
	n.inputs = append(n.inputs, from)
	return nil
}

// Clear removes every node, edge and name. Allocated storage is kept.
func (g *Graph) Clear() {
	for i := range g.nodes {
		g.nodes[i] = node{inputs: g.nodes[i].inputs[:0]}
	}
	g.nodes = g.nodes[:0]
	g.edges = g.edges[:0]
	g.Names.Clear()
}

func (g *Graph) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(g.nodes)
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Edges returns the edges in insertion order. The slice is owned by g.
func (g *Graph) Edges() []Edge { return g.edges }

// Kind returns the constructor name id was built from.
func (g *Graph) Kind(id NodeID) string {
	if !g.valid(id) {
		return ""
	}
	return g.nodes[id].kind
}

// Inputs returns id's input nodes in slot order.
func (g *Graph) Inputs(id NodeID) []NodeID {
	if !g.valid(id) {
		return nil
	}
	return g.nodes[id].inputs
}

// Unit returns the unit held by id.
func (g *Graph) Unit(id NodeID) Unit {
	if !g.valid(id) {
		return nil
	}
	return g.nodes[id].unit
}

// Buffer returns the most recent output of id.
func (g *Graph) Buffer(id NodeID) *Buffer {
	if !g.valid(id) {
		return nil
	}
	return &g.nodes[id].out
}

// checkAcyclic reports ErrCycle if any node can reach itself.
func (g *Graph) checkAcyclic() error {
	const (
		unseen = iota
		active
		done
	)
	state := make([]uint8, len(g.nodes))
	var walk func(id NodeID) error
	walk = func(id NodeID) error {
		switch state[id] {
		case active:
			return errors.Wrapf(ErrCycle, "through %s node %d", g.nodes[id].kind, id)
		case done:
			return nil
		}
		state[id] = active
		for _, in := range g.nodes[id].inputs {
			if err := walk(in); err != nil {
				return err
			}
		}
		state[id] = done
		return nil
	}
	for id := range g.nodes {
		if err := walk(NodeID(id)); err != nil {
			return err
		}
	}
	return nil
}
