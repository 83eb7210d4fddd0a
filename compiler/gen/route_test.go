package gen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/officeglobal/odatagen/compiler/load"
)

// graphModel is the §"Users/Manager/Devices" style model used across the
// traversal tests: a container exposing a users set, a self-referencing
// manager edge and a devices collection.
func graphModel() *load.Model {
	return &load.Model{Schemas: []*load.Schema{{
		Namespace: "graph",
		EntityTypes: []*load.EntityType{
			{
				Name: "user", Namespace: "graph",
				Navigations: []*load.NavigationProperty{
					{Name: "manager", Type: "graph.user", ContainsTarget: true},
					{Name: "devices", Type: "Collection(graph.device)", ContainsTarget: true},
				},
			},
			{Name: "device", Namespace: "graph"},
		},
		Container: &load.Container{
			Name: "Service", Namespace: "graph",
			EntitySets: []*load.EntitySet{{Name: "users", EntityType: "graph.user"}},
		},
	}}}
}

func newGraph(t *testing.T, m *load.Model, opts ...Option) *Graph {
	t.Helper()
	config, err := NewConfig(opts...)
	require.NoError(t, err)
	g, err := NewGraph(config, m)
	require.NoError(t, err)
	return g
}

func collect(t *testing.T, g *Graph, maxDepth int) []*RouteNode {
	t.Helper()
	routes, err := g.RouteTree(maxDepth)
	require.NoError(t, err)
	var nodes []*RouteNode
	for n := range routes {
		nodes = append(nodes, n)
	}
	return nodes
}

func paths(nodes []*RouteNode) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Path()
	}
	return out
}

func TestRouteTreeNilModel(t *testing.T) {
	require := require.New(t)
	_, err := NewGraph(nil, nil)
	require.EqualError(err, "odatagen: invalid argument \"model\": model is required")
	require.ErrorIs(err, ErrInvalidArgument)
	require.True(IsInvalidArgument(err))

	var g *Graph
	_, err = g.RouteTree(5)
	require.ErrorIs(err, ErrInvalidArgument)
}

func TestRouteTreeNegativeDepth(t *testing.T) {
	require := require.New(t)
	g := newGraph(t, graphModel())
	_, err := g.RouteTree(-1)
	require.EqualError(err, "odatagen: config error for \"MaxDepth\" (value: -1): max depth cannot be negative")
}

func TestRouteTreeEndToEnd(t *testing.T) {
	require := require.New(t)
	g := newGraph(t, graphModel())
	nodes := collect(t, g, 3)

	require.ElementsMatch([]string{
		"users",
		"users/manager",
		"users/devices",
		"users/manager/devices",
	}, paths(nodes))
	// users/manager/manager is excluded: the manager identity is already
	// on the path. users/manager/devices survives to depth 3 and is not
	// expanded further.
	depths := map[string]int{
		"users":                 1,
		"users/manager":         2,
		"users/devices":         2,
		"users/manager/devices": 3,
	}
	for _, n := range nodes {
		require.Equal(depths[n.Path()], n.Depth(), n.Path())
	}
}

func TestRouteTreePreOrder(t *testing.T) {
	require := require.New(t)
	g := newGraph(t, graphModel())
	emitted := make(map[string]bool)
	for _, n := range collect(t, g, 3) {
		if n.Parent != nil {
			require.True(emitted[n.Parent.Path()], "parent of %s emitted first", n.Path())
		}
		emitted[n.Path()] = true
	}
}

func TestRouteTreeNoCycle(t *testing.T) {
	require := require.New(t)
	g := newGraph(t, graphModel())
	for _, n := range collect(t, g, DefaultMaxDepth) {
		seen := make(map[string]struct{})
		for _, p := range n.Route() {
			_, dup := seen[p.Ident()]
			require.False(dup, "duplicate identity %s on path %s", p.Ident(), n.Path())
			seen[p.Ident()] = struct{}{}
		}
	}
}

func TestRouteTreeDepthBound(t *testing.T) {
	require := require.New(t)
	// A chain of distinct edges deeper than any cap we set.
	schema := &load.Schema{Namespace: "ns"}
	for i := 1; i <= 7; i++ {
		et := &load.EntityType{Name: name("t", i), Namespace: "ns"}
		if i < 7 {
			et.Navigations = []*load.NavigationProperty{
				{Name: name("next", i), Type: "ns." + name("t", i+1), ContainsTarget: true},
			}
		}
		schema.EntityTypes = append(schema.EntityTypes, et)
	}
	schema.Container = &load.Container{
		Name: "C", Namespace: "ns",
		EntitySets: []*load.EntitySet{{Name: "roots", EntityType: "ns.t1"}},
	}
	g := newGraph(t, &load.Model{Schemas: []*load.Schema{schema}})

	for _, max := range []int{1, 2, 3, 5} {
		nodes := collect(t, g, max)
		require.Len(nodes, max)
		for _, n := range nodes {
			require.LessOrEqual(n.Depth(), max)
		}
	}
}

func TestRouteTreeZeroDepth(t *testing.T) {
	require := require.New(t)
	g := newGraph(t, graphModel())
	nodes := collect(t, g, 0)
	require.Equal([]string{"users"}, paths(nodes))
	require.Equal(1, nodes[0].Depth())
}

func TestRouteTreeReferenceLeaves(t *testing.T) {
	require := require.New(t)
	m := &load.Model{Schemas: []*load.Schema{{
		Namespace: "ns",
		EntityTypes: []*load.EntityType{
			{
				Name: "group", Namespace: "ns",
				Navigations: []*load.NavigationProperty{
					// Reference navigation: a relationship endpoint, not
					// a containment edge.
					{Name: "members", Type: "Collection(ns.user)"},
				},
			},
			{
				Name: "user", Namespace: "ns",
				Navigations: []*load.NavigationProperty{
					{Name: "devices", Type: "Collection(ns.device)", ContainsTarget: true},
				},
			},
			{Name: "device", Namespace: "ns"},
		},
		Container: &load.Container{
			Name: "C", Namespace: "ns",
			EntitySets: []*load.EntitySet{{Name: "groups", EntityType: "ns.group"}},
		},
	}}}
	g := newGraph(t, m)
	nodes := collect(t, g, DefaultMaxDepth)
	// members is emitted but never expanded, despite remaining depth
	// and the user type having further containment edges.
	require.ElementsMatch([]string{"groups", "groups/members"}, paths(nodes))
}

func TestRouteTreeRootOrder(t *testing.T) {
	require := require.New(t)
	m := &load.Model{Schemas: []*load.Schema{{
		Namespace: "ns",
		EntityTypes: []*load.EntityType{
			{Name: "a", Namespace: "ns"},
			{Name: "b", Namespace: "ns"},
			{Name: "c", Namespace: "ns"},
		},
		Container: &load.Container{
			Name: "C", Namespace: "ns",
			EntitySets: []*load.EntitySet{
				{Name: "alphas", EntityType: "ns.a"},
				{Name: "betas", EntityType: "ns.b"},
				{Name: "gammas", EntityType: "ns.c"},
			},
		},
	}}}
	g := newGraph(t, m)
	// LIFO contract: the last-declared container property comes out first.
	require.Equal([]string{"gammas", "betas", "alphas"}, paths(collect(t, g, DefaultMaxDepth)))
}

func TestRouteTreeDiamondReuse(t *testing.T) {
	require := require.New(t)
	m := &load.Model{Schemas: []*load.Schema{{
		Namespace: "ns",
		EntityTypes: []*load.EntityType{
			{
				Name: "left", Namespace: "ns",
				Navigations: []*load.NavigationProperty{
					{Name: "shared", Type: "ns.shared", ContainsTarget: true},
				},
			},
			{
				Name: "right", Namespace: "ns",
				Navigations: []*load.NavigationProperty{
					{Name: "shared", Type: "ns.shared", ContainsTarget: true},
				},
			},
			{
				Name: "shared", Namespace: "ns",
				Navigations: []*load.NavigationProperty{
					{Name: "inner", Type: "ns.leaf", ContainsTarget: true},
				},
			},
			{Name: "leaf", Namespace: "ns"},
		},
		Container: &load.Container{
			Name: "C", Namespace: "ns",
			EntitySets: []*load.EntitySet{
				{Name: "lefts", EntityType: "ns.left"},
				{Name: "rights", EntityType: "ns.right"},
			},
		},
	}}}
	g := newGraph(t, m)
	got := paths(collect(t, g, DefaultMaxDepth))
	// The same canonical property (shared.inner) appears under both
	// arms: only path-local repetition is forbidden, not global reuse.
	require.ElementsMatch([]string{
		"lefts",
		"lefts/shared",
		"lefts/shared/inner",
		"rights",
		"rights/shared",
		"rights/shared/inner",
	}, got)
}

func TestRouteTreeStopEarly(t *testing.T) {
	require := require.New(t)
	g := newGraph(t, graphModel())
	routes, err := g.RouteTree(DefaultMaxDepth)
	require.NoError(err)
	var got []*RouteNode
	for n := range routes {
		got = append(got, n)
		break
	}
	require.Len(got, 1)
	require.Equal("users", got[0].Path())
}

func TestRouteSegmentsPolymorphicFanout(t *testing.T) {
	require := require.New(t)
	m := &load.Model{Schemas: []*load.Schema{{
		Namespace: "ns",
		EntityTypes: []*load.EntityType{
			{
				Name: "base", Namespace: "ns",
				Navigations: []*load.NavigationProperty{
					{Name: "p1", Type: "ns.leaf", ContainsTarget: true},
				},
			},
			{
				Name: "derived", Namespace: "ns", BaseType: "ns.base",
				Navigations: []*load.NavigationProperty{
					{Name: "p2", Type: "ns.leaf", ContainsTarget: true},
				},
			},
			{
				Name: "grandchild", Namespace: "ns", BaseType: "ns.derived",
				Navigations: []*load.NavigationProperty{
					{Name: "p3", Type: "ns.leaf", ContainsTarget: true},
				},
			},
			{Name: "leaf", Namespace: "ns"},
		},
		Container: &load.Container{
			Name: "C", Namespace: "ns",
			EntitySets: []*load.EntitySet{{Name: "bases", EntityType: "ns.base"}},
		},
	}}}
	g := newGraph(t, m)
	base, ok := g.Type("ns.base")
	require.True(ok)

	// Resolving a base-typed navigation includes properties contributed
	// by direct and transitive subtypes.
	segments, err := g.RouteSegments(base, false)
	require.NoError(err)
	idents := make([]string, len(segments))
	for i, p := range segments {
		idents[i] = p.Ident()
	}
	require.Equal([]string{"ns.base.p1", "ns.derived.p2", "ns.grandchild.p3"}, idents)

	// Resolving twice yields each identity exactly once.
	again, err := g.RouteSegments(base, false)
	require.NoError(err)
	require.Len(again, len(segments))
}

func TestRouteSegmentsNonEntityFiltered(t *testing.T) {
	require := require.New(t)
	m := &load.Model{Schemas: []*load.Schema{{
		Namespace: "ns",
		EntityTypes: []*load.EntityType{
			{
				Name: "user", Namespace: "ns",
				Navigations: []*load.NavigationProperty{
					// Target is not a declared entity type: dropped.
					{Name: "settings", Type: "ns.userSettings", ContainsTarget: true},
					{Name: "devices", Type: "Collection(ns.device)", ContainsTarget: true},
				},
			},
			{Name: "device", Namespace: "ns"},
		},
		Container: &load.Container{
			Name: "C", Namespace: "ns",
			EntitySets: []*load.EntitySet{{Name: "users", EntityType: "ns.user"}},
		},
	}}}
	g := newGraph(t, m)
	user, ok := g.Type("ns.user")
	require.True(ok)
	segments, err := g.RouteSegments(user, false)
	require.NoError(err)
	require.Len(segments, 1)
	require.Equal("devices", segments[0].Name)
}

func TestRouteSegmentsNilArgs(t *testing.T) {
	require := require.New(t)
	g := newGraph(t, graphModel())
	_, err := g.RouteSegments(nil, false)
	require.EqualError(err, "odatagen: invalid argument \"type\": type is required")

	var nilGraph *Graph
	_, err = nilGraph.RouteSegments(g.Container, true)
	require.EqualError(err, "odatagen: invalid argument \"graph\": graph is required")
}

func TestRouteNodeRoute(t *testing.T) {
	require := require.New(t)
	g := newGraph(t, graphModel())
	var deepest *RouteNode
	for _, n := range collect(t, g, 3) {
		if n.Path() == "users/manager/devices" {
			deepest = n
		}
	}
	require.NotNil(deepest)
	route := deepest.Route()
	require.Len(route, 3)
	require.Equal("users", route[0].Name)
	require.Equal("manager", route[1].Name)
	require.Equal("devices", route[2].Name)
	require.Equal("UsersManagerDevices", deepest.BuilderName())
}

func name(prefix string, i int) string {
	return prefix + string(rune('0'+i))
}
