package quaver

import "github.com/pkg/errors"

// Process computes one fresh frame for id. Every ancestor of id is processed
// exactly once, inputs before the nodes that read them. Results are not
// cached between calls: calling Process again advances every visited unit
// by another frame.
func (g *Graph) Process(id NodeID) error {
	if !g.valid(id) {
		return errors.Wrapf(ErrNoNode, "processing node %d", id)
	}
	g.nextStamp()
	g.order = g.order[:0]
	g.stack = append(g.stack[:0], visit{id: id})
	g.nodes[id].mark = g.stamp
	for len(g.stack) > 0 {
		top := &g.stack[len(g.stack)-1]
		n := &g.nodes[top.id]
		if top.next < len(n.inputs) {
			in := n.inputs[top.next]
			top.next++
			if g.nodes[in].mark != g.stamp {
				g.nodes[in].mark = g.stamp
				g.stack = append(g.stack, visit{id: in})
			}
			continue
		}
		g.order = append(g.order, top.id)
		g.stack = g.stack[:len(g.stack)-1]
	}
	for _, nid := range g.order {
		n := &g.nodes[nid]
		g.scratch = g.scratch[:0]
		for _, in := range n.inputs {
			g.scratch = append(g.scratch, &g.nodes[in].out)
		}
		n.unit.Process(g.scratch, &n.out)
	}
	return nil
}

func (g *Graph) nextStamp() {
	g.stamp++
	if g.stamp != 0 {
		return
	}
	for i := range g.nodes {
		g.nodes[i].mark = 0
	}
	g.stamp = 1
}
