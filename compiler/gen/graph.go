package gen

import (
	"github.com/officeglobal/odatagen/compiler/load"
)

// Graph holds the schema graph: every entity type linked into its
// inheritance hierarchy, plus the distinguished container type whose
// properties are the top-level entity sets and singletons. A Graph is
// immutable after NewGraph returns and is safe for concurrent reads.
type Graph struct {
	*Config
	// Types holds all entity types, in declaration order.
	Types []*Type
	types map[string]*Type
	// Container is the distinguished root container type.
	Container *Type
}

// NewGraph creates a new schema graph from the loaded metadata model.
// It links base types to their subtypes, resolves navigation property
// targets, and synthesizes the container type from the model's entity
// container. Fails with an ArgumentError on nil inputs and a ModelError
// on dangling base-type or container references.
func NewGraph(c *Config, m *load.Model) (*Graph, error) {
	if c == nil {
		c = defaultConfig()
	}
	if m == nil {
		return nil, NewArgumentError("model", "model is required")
	}
	g := &Graph{Config: c, types: make(map[string]*Type)}
	for _, s := range m.Schemas {
		if !c.includeNamespace(s.Namespace) {
			continue
		}
		for _, def := range s.EntityTypes {
			t := &Type{
				Config:    c,
				def:       def,
				Name:      def.Name,
				Namespace: def.Namespace,
				Abstract:  def.Abstract,
			}
			for _, f := range def.Properties {
				t.Fields = append(t.Fields, &StructuralField{Name: f.Name, EdmType: f.Type})
			}
			g.Types = append(g.Types, t)
			g.types[t.QualifiedName()] = t
		}
	}
	// Link the hierarchy before resolving properties, so that subtype
	// indexes are complete when traversal fans out over them.
	for _, t := range g.Types {
		if base := t.def.BaseType; base != "" {
			bt, ok := g.types[base]
			if !ok {
				return nil, NewModelError(t.QualifiedName(), base, "undeclared base type", nil)
			}
			t.Base = bt
			bt.subtypes = append(bt.subtypes, t)
		}
	}
	for _, t := range g.Types {
		for _, nav := range t.def.Navigations {
			// A target outside the graph is not an addressable entity
			// type; the property is kept with a nil target and filtered
			// out during segment resolution.
			target := g.types[nav.TargetType()]
			t.Properties = append(t.Properties, &Property{
				Name:           nav.Name,
				Owner:          t,
				Type:           target,
				Collection:     nav.Collection(),
				ContainsTarget: nav.ContainsTarget,
			})
		}
	}
	container := m.Container()
	if container == nil {
		return nil, NewModelError("", "", "metadata declares no entity container", nil)
	}
	ct := &Type{
		Config:    c,
		Name:      container.Name,
		Namespace: container.Namespace,
		container: true,
	}
	for _, set := range container.EntitySets {
		target, ok := g.types[set.EntityType]
		if !ok {
			return nil, NewModelError(container.Name, set.EntityType, "entity set targets an undeclared type", nil)
		}
		ct.Properties = append(ct.Properties, &Property{
			Name:           set.Name,
			Owner:          ct,
			Type:           target,
			Collection:     true,
			ContainsTarget: true,
		})
	}
	for _, s := range container.Singletons {
		target, ok := g.types[s.Type]
		if !ok {
			return nil, NewModelError(container.Name, s.Type, "singleton targets an undeclared type", nil)
		}
		ct.Properties = append(ct.Properties, &Property{
			Name:           s.Name,
			Owner:          ct,
			Type:           target,
			ContainsTarget: true,
		})
	}
	g.Container = ct
	return g, nil
}

// Type looks up an entity type by its namespace-qualified name.
func (g *Graph) Type(qualified string) (*Type, bool) {
	t, ok := g.types[qualified]
	return t, ok
}
