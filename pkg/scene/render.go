package scene

// A Renderer draws one node at a time. Draw order is pre-order over the
// graph; renderers must not depend on it.
type Renderer interface {
	Draw(Node) error
}

// Render hands every drawable node under root to r.
func Render(g *Graph, root NodeID, r Renderer) error {
	return g.Walk(root, func(n Node) error {
		if !n.Drawable() {
			return nil
		}
		return r.Draw(n)
	})
}

// CountRoles tallies the nodes under root by role.
func CountRoles(g *Graph, root NodeID) map[Role]int {
	counts := make(map[Role]int)
	_ = g.Walk(root, func(n Node) error {
		counts[n.Role]++
		return nil
	})
	return counts
}
