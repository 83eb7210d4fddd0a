package gen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/officeglobal/odatagen/compiler/load"
)

func TestNewGraph(t *testing.T) {
	require := require.New(t)
	g := newGraph(t, graphModel())
	require.Len(g.Types, 2)
	require.NotNil(g.Container)
	require.True(g.Container.IsContainer())
	require.Equal("Service", g.Container.Name)
	require.Len(g.Container.Properties, 1)
	require.Equal("graph.Service.users", g.Container.Properties[0].Ident())

	user, ok := g.Type("graph.user")
	require.True(ok)
	require.Equal("graph.user", user.QualifiedName())
	require.Len(user.Properties, 2)
	require.True(user.HasProperty("manager"))
	require.False(user.HasProperty("mailbox"))
}

func TestNewGraphDanglingBase(t *testing.T) {
	require := require.New(t)
	config, err := NewConfig()
	require.NoError(err)
	_, err = NewGraph(config, &load.Model{Schemas: []*load.Schema{{
		Namespace: "ns",
		EntityTypes: []*load.EntityType{
			{Name: "child", Namespace: "ns", BaseType: "ns.ghost"},
		},
		Container: &load.Container{Name: "C", Namespace: "ns"},
	}}})
	require.EqualError(err, "odatagen: model error on type ns.child referencing ns.ghost: undeclared base type")
	require.ErrorIs(err, ErrInvalidModel)
}

func TestNewGraphMissingContainer(t *testing.T) {
	require := require.New(t)
	config, err := NewConfig()
	require.NoError(err)
	_, err = NewGraph(config, &load.Model{Schemas: []*load.Schema{{
		Namespace:   "ns",
		EntityTypes: []*load.EntityType{{Name: "user", Namespace: "ns"}},
	}}})
	require.EqualError(err, "odatagen: model error: metadata declares no entity container")
}

func TestNewGraphDanglingSetType(t *testing.T) {
	require := require.New(t)
	config, err := NewConfig()
	require.NoError(err)
	_, err = NewGraph(config, &load.Model{Schemas: []*load.Schema{{
		Namespace: "ns",
		Container: &load.Container{
			Name: "C", Namespace: "ns",
			EntitySets: []*load.EntitySet{{Name: "users", EntityType: "ns.user"}},
		},
	}}})
	require.ErrorIs(err, ErrInvalidModel)

	_, err = NewGraph(config, &load.Model{Schemas: []*load.Schema{{
		Namespace: "ns",
		Container: &load.Container{
			Name: "C", Namespace: "ns",
			Singletons: []*load.Singleton{{Name: "me", Type: "ns.user"}},
		},
	}}})
	require.EqualError(err, "odatagen: model error on type C referencing ns.user: singleton targets an undeclared type")
}

func TestNewGraphNamespaceFilter(t *testing.T) {
	require := require.New(t)
	m := graphModel()
	m.Schemas = append(m.Schemas, &load.Schema{
		Namespace:   "other",
		EntityTypes: []*load.EntityType{{Name: "noise", Namespace: "other"}},
	})
	g := newGraph(t, m, WithNamespaces("graph"))
	require.Len(g.Types, 2)
	_, ok := g.Type("other.noise")
	require.False(ok)
}

func TestGraphSingletonProperty(t *testing.T) {
	require := require.New(t)
	m := graphModel()
	m.Schemas[0].Container.Singletons = []*load.Singleton{{Name: "me", Type: "graph.user"}}
	g := newGraph(t, m)
	require.Len(g.Container.Properties, 2)
	me := g.Container.Properties[1]
	require.Equal("me", me.Name)
	require.False(me.Collection)
	require.False(me.IsReference())
}

func TestTypeDerivedTypes(t *testing.T) {
	require := require.New(t)
	m := &load.Model{Schemas: []*load.Schema{{
		Namespace: "ns",
		EntityTypes: []*load.EntityType{
			{Name: "base", Namespace: "ns"},
			{Name: "mid", Namespace: "ns", BaseType: "ns.base"},
			{Name: "leaf", Namespace: "ns", BaseType: "ns.mid"},
			{Name: "sibling", Namespace: "ns", BaseType: "ns.base"},
		},
		Container: &load.Container{Name: "C", Namespace: "ns"},
	}}}
	g := newGraph(t, m)
	base, ok := g.Type("ns.base")
	require.True(ok)
	var names []string
	for _, d := range base.DerivedTypes() {
		names = append(names, d.Name)
	}
	require.Equal([]string{"mid", "leaf", "sibling"}, names)

	leaf, ok := g.Type("ns.leaf")
	require.True(ok)
	require.Empty(leaf.DerivedTypes())
	require.Equal("base", leaf.Base.Base.Name)
}
