package scene

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSuchNode is returned for IDs that were never created or have been
	// discarded.
	ErrNoSuchNode = errors.New("no such node")

	// ErrNegativeScale is returned when a node would have a negative or NaN
	// scale component.
	ErrNegativeScale = errors.New("negative scale")
)

// Graph owns a forest of nodes.
//
// IDs are never reused, so an ID held across a Discard stays invalid.
type Graph struct {
	nodes   []Node
	removed []bool
	alive   int
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{}
}

// AddRoot creates a parentless node.
func (g *Graph) AddRoot(p Params) (NodeID, error) {
	return g.add(None, 0, p)
}

// AddChild creates a node attached under parent, one level deeper.
func (g *Graph) AddChild(parent NodeID, p Params) (NodeID, error) {
	if !g.Contains(parent) {
		return None, fmt.Errorf("adding %s under %d: %w", p.Role, parent, ErrNoSuchNode)
	}
	return g.add(parent, g.nodes[parent].Depth+1, p)
}

func (g *Graph) add(parent NodeID, depth int, p Params) (NodeID, error) {
	for _, s := range p.Scale {
		if !(s >= 0) {
			return None, fmt.Errorf("adding %s with scale %v: %w", p.Role, p.Scale, ErrNegativeScale)
		}
	}

	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, Node{
		Params: p,
		ID:     id,
		Depth:  depth,
		Parent: parent,
	})
	g.removed = append(g.removed, false)
	g.alive++

	if parent != None {
		g.nodes[parent].Children = append(g.nodes[parent].Children, id)
	}

	return id, nil
}

// Contains reports whether id names a live node.
func (g *Graph) Contains(id NodeID) bool {
	return id >= 0 && int(id) < len(g.nodes) && !g.removed[id]
}

// Node returns a copy of the node.
func (g *Graph) Node(id NodeID) (Node, bool) {
	if !g.Contains(id) {
		return Node{}, false
	}
	n := g.nodes[id]
	n.Children = append([]NodeID(nil), n.Children...)
	return n, true
}

// Parent returns the parent of id, or None for roots.
func (g *Graph) Parent(id NodeID) (NodeID, bool) {
	if !g.Contains(id) {
		return None, false
	}
	return g.nodes[id].Parent, true
}

// Children returns the children of id in creation order.
func (g *Graph) Children(id NodeID) []NodeID {
	if !g.Contains(id) {
		return nil
	}
	return append([]NodeID(nil), g.nodes[id].Children...)
}

// Len is the number of live nodes.
func (g *Graph) Len() int {
	return g.alive
}

// Roots returns every live parentless node in creation order.
func (g *Graph) Roots() []NodeID {
	var roots []NodeID
	for i, n := range g.nodes {
		if !g.removed[i] && n.Parent == None {
			roots = append(roots, n.ID)
		}
	}
	return roots
}

// Subtree returns root and all of its descendants in pre-order.
func (g *Graph) Subtree(root NodeID) []NodeID {
	var ids []NodeID
	_ = g.Walk(root, func(n Node) error {
		ids = append(ids, n.ID)
		return nil
	})
	return ids
}

// Walk visits root and its descendants in pre-order, children in creation
// order. It stops at the first error fn returns.
func (g *Graph) Walk(root NodeID, fn func(Node) error) error {
	if !g.Contains(root) {
		return fmt.Errorf("walking %d: %w", root, ErrNoSuchNode)
	}

	stack := []NodeID{root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := g.nodes[id]
		if err := fn(n); err != nil {
			return err
		}

		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}

	return nil
}

// Discard removes id and its whole subtree, detaching it from its parent.
func (g *Graph) Discard(id NodeID) error {
	if !g.Contains(id) {
		return fmt.Errorf("discarding %d: %w", id, ErrNoSuchNode)
	}

	for _, d := range g.Subtree(id) {
		g.removed[d] = true
		g.nodes[d].Children = nil
		g.alive--
	}

	if parent := g.nodes[id].Parent; parent != None && g.Contains(parent) {
		siblings := g.nodes[parent].Children
		for i, c := range siblings {
			if c == id {
				g.nodes[parent].Children = append(siblings[:i:i], siblings[i+1:]...)
				break
			}
		}
	}

	return nil
}

// Graft copies the subtree at root of src under parent, or as a new root when
// parent is None, and returns the ID of the copied root. src must not be g.
func (g *Graph) Graft(parent NodeID, src *Graph, root NodeID) (NodeID, error) {
	ids := make(map[NodeID]NodeID)

	err := src.Walk(root, func(n Node) error {
		to := parent
		if n.ID != root {
			to = ids[n.Parent]
		}

		var (
			id  NodeID
			err error
		)
		if to == None {
			id, err = g.AddRoot(n.Params)
		} else {
			id, err = g.AddChild(to, n.Params)
		}
		if err != nil {
			return err
		}

		ids[n.ID] = id
		return nil
	})
	if err != nil {
		return None, fmt.Errorf("grafting %d: %w", root, err)
	}

	return ids[root], nil
}
