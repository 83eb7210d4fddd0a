package gen

import (
	"iter"
	"strings"
)

// DefaultMaxDepth is the default bound on route depth. Traversal is
// guaranteed to terminate under this cap even over a cyclic type graph.
const DefaultMaxDepth = 5

// RouteNode is one addressable path through the API: the navigation
// property it represents plus a back-reference to its parent node.
// Nodes are immutable once created; the parent link is set at creation
// and never changes.
type RouteNode struct {
	// Property is the last segment of this node's route.
	Property *Property
	// Parent is the node this one was expanded from, or nil for
	// root-level nodes seeded from the container.
	Parent *RouteNode
}

// Route returns the ordered sequence of properties from the root to this
// node. It is computed by walking parent references and is not cached.
func (n *RouteNode) Route() []*Property {
	var route []*Property
	for cur := n; cur != nil; cur = cur.Parent {
		route = append(route, cur.Property)
	}
	for i, j := 0, len(route)-1; i < j; i, j = i+1, j-1 {
		route[i], route[j] = route[j], route[i]
	}
	return route
}

// Depth returns the number of segments on this node's route. Root-level
// nodes have depth 1.
func (n *RouteNode) Depth() int {
	depth := 0
	for cur := n; cur != nil; cur = cur.Parent {
		depth++
	}
	return depth
}

// Path returns the route as a slash-joined URL path, e.g.
// "users/manager/devices".
func (n *RouteNode) Path() string {
	route := n.Route()
	segments := make([]string, len(route))
	for i, p := range route {
		segments[i] = p.Name
	}
	return strings.Join(segments, "/")
}

// BuilderName returns the exported identifier emitters use for this
// node's request builder, e.g. "UsersManagerDevices".
func (n *RouteNode) BuilderName() string {
	var b strings.Builder
	for _, p := range n.Route() {
		b.WriteString(pascal(p.Name))
	}
	return b.String()
}

// pathIdents returns the canonical identities on the root-to-node path,
// inclusive of the node itself. Recomputed per expansion: cycle checks
// are ancestor-local, never global.
func (n *RouteNode) pathIdents() map[string]struct{} {
	idents := make(map[string]struct{})
	for cur := n; cur != nil; cur = cur.Parent {
		idents[cur.Property.Ident()] = struct{}{}
	}
	return idents
}

// RouteSegments resolves the set of properties of t that qualify as
// route segments. The result is the union of t's own declared properties
// and the declared properties of every transitive subtype: a navigation
// typed as a base type may, at runtime, reference a derived instance
// exposing additional navigable edges. Candidates whose target is not an
// addressable entity type are dropped, except on the container, whose
// properties always qualify. The result is deduplicated by canonical
// identity, keeping the first occurrence, in declaration order.
func (g *Graph) RouteSegments(t *Type, container bool) ([]*Property, error) {
	if g == nil {
		return nil, NewArgumentError("graph", "graph is required")
	}
	if t == nil {
		return nil, NewArgumentError("type", "type is required")
	}
	types := append([]*Type{t}, t.DerivedTypes()...)
	seen := make(map[string]struct{})
	var segments []*Property
	for _, typ := range types {
		for _, p := range typ.Properties {
			if !container && p.Type == nil {
				continue
			}
			if _, ok := seen[p.Ident()]; ok {
				continue
			}
			seen[p.Ident()] = struct{}{}
			segments = append(segments, p)
		}
	}
	return segments, nil
}

// RouteTree flattens the type graph into a depth-bounded tree of route
// nodes, produced lazily in traversal order. The frontier is a stack
// seeded with the container's properties in declaration order, so the
// first node emitted corresponds to the container's last-declared
// property; consumers that need declaration order must sort root-level
// output themselves. Each parent is emitted before any of its
// descendants. A property already present on the root-to-node path is
// never pushed again (path-local cycle elimination), reference edges are
// always leaves, and no node exceeds maxDepth segments.
//
// The sequence is finite, single-pass and not restartable; every call
// starts a fresh, independent traversal. Stopping consumption abandons
// the traversal with nothing to clean up.
func (g *Graph) RouteTree(maxDepth int) (iter.Seq[*RouteNode], error) {
	if g == nil || g.Container == nil {
		return nil, NewArgumentError("graph", "graph with a container is required")
	}
	if maxDepth < 0 {
		return nil, NewConfigError("MaxDepth", maxDepth, "max depth cannot be negative")
	}
	roots, err := g.RouteSegments(g.Container, true)
	if err != nil {
		return nil, err
	}
	return func(yield func(*RouteNode) bool) {
		frontier := make([]*RouteNode, 0, len(roots))
		for _, p := range roots {
			frontier = append(frontier, &RouteNode{Property: p})
		}
		for len(frontier) > 0 {
			cur := frontier[len(frontier)-1]
			frontier = frontier[:len(frontier)-1]
			if !yield(cur) {
				return
			}
			if cur.Depth() >= maxDepth || cur.Property.IsReference() {
				continue
			}
			segments, err := g.RouteSegments(cur.Property.Type, false)
			if err != nil {
				return
			}
			ancestors := cur.pathIdents()
			for _, p := range segments {
				if _, ok := ancestors[p.Ident()]; ok {
					continue
				}
				frontier = append(frontier, &RouteNode{Property: p, Parent: cur})
			}
		}
	}, nil
}

// Routes is a convenience wrapper over RouteTree using the configured
// maximum depth.
func (g *Graph) Routes() (iter.Seq[*RouteNode], error) {
	if g == nil {
		return nil, NewArgumentError("graph", "graph is required")
	}
	if g.Config == nil {
		return g.RouteTree(DefaultMaxDepth)
	}
	return g.RouteTree(g.MaxDepth)
}
