package gen

import (
	"fmt"

	"github.com/officeglobal/odatagen/compiler/load"
)

// The following types and their exported methods are used by the route
// builder and the emitters to generate the assets.
type (
	// Type represents one entity type in the graph, its navigation
	// properties and its place in the inheritance hierarchy.
	Type struct {
		*Config
		def *load.EntityType
		// Name holds the local type name.
		Name string
		// Namespace holds the declaring schema namespace.
		Namespace string
		// Abstract indicates that no instance is ever of this exact type.
		Abstract bool
		// Base points to the parent type, or nil for hierarchy roots.
		Base *Type
		// Properties holds the navigation properties declared directly
		// on this type, in declaration order.
		Properties []*Property
		// Fields holds the structural (non-navigation) properties.
		// Traversal ignores them; emitters use them for payload typing.
		Fields []*StructuralField
		// subtypes holds the direct subtypes, in declaration order.
		subtypes []*Type
		// container marks the distinguished entity container type.
		container bool
	}

	// Property is an edge of the type graph: a navigation property, an
	// entity set, or a singleton. It belongs to exactly one declaring type.
	Property struct {
		// Name holds the property name as declared in the schema.
		Name string
		// Owner holds the declaring type. For properties reachable only
		// through a subtype, Owner is that subtype, not the base.
		Owner *Type
		// Type holds the target entity type, or nil when the target is
		// not an addressable entity type (primitive or complex valued).
		Type *Type
		// Collection indicates a collection-valued property.
		Collection bool
		// ContainsTarget distinguishes containment navigation from
		// reference navigation. Reference edges are never expanded.
		ContainsTarget bool
	}

	// StructuralField is a primitive or complex valued property kept for
	// the emitters. It never becomes a route segment.
	StructuralField struct {
		Name string
		// EdmType is the raw CSDL type, e.g. "Edm.String".
		EdmType string
	}
)

// =============================================================================
// Type methods
// =============================================================================

// QualifiedName returns the namespace-qualified name of the type.
func (t Type) QualifiedName() string {
	if t.Namespace == "" {
		return t.Name
	}
	return t.Namespace + "." + t.Name
}

// Label returns the label name of the type (snake_case).
func (t Type) Label() string {
	return snake(t.Name)
}

// IsContainer indicates if this type is the entity container.
func (t Type) IsContainer() bool {
	return t.container
}

// Subtypes returns the direct subtypes of this type, in declaration order.
func (t *Type) Subtypes() []*Type {
	return t.subtypes
}

// DerivedTypes returns all transitive subtypes of this type in pre-order.
// The receiver itself is not included.
func (t *Type) DerivedTypes() []*Type {
	var derived []*Type
	for _, sub := range t.subtypes {
		derived = append(derived, sub)
		derived = append(derived, sub.DerivedTypes()...)
	}
	return derived
}

// HasProperty reports if the type declares a navigation property with the
// given name, directly or on any of its subtypes.
func (t *Type) HasProperty(name string) bool {
	for _, p := range t.Properties {
		if p.Name == name {
			return true
		}
	}
	for _, sub := range t.subtypes {
		if sub.HasProperty(name) {
			return true
		}
	}
	return false
}

func (t *Type) property(name string) (*Property, bool) {
	for _, p := range t.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// =============================================================================
// Property methods
// =============================================================================

// Ident returns the canonical identity of the property: the declaring
// type's qualified name joined with the property name. Two properties
// inherited through different subtype-expansion paths compare equal iff
// their idents are equal.
func (p *Property) Ident() string {
	return p.Owner.QualifiedName() + "." + p.Name
}

// IsReference indicates that this edge only models a relationship
// endpoint and must never be expanded into child routes.
func (p *Property) IsReference() bool {
	return !p.ContainsTarget
}

// StructField returns the exported struct member name for the property.
func (p *Property) StructField() string {
	return pascal(p.Name)
}

// Constant returns the constant name of the property segment.
func (p *Property) Constant() string {
	return "Segment" + pascal(p.Name)
}

// PathParam returns the name of the id path parameter used when
// addressing a single element of a collection-valued segment, e.g.
// "userID" for a "users" segment.
func (p *Property) PathParam() string {
	return camel(singularize(p.Name)) + "ID"
}

// String returns a readable representation used in error messages.
func (p *Property) String() string {
	return fmt.Sprintf("%s (%s)", p.Ident(), p.kind())
}

func (p *Property) kind() string {
	switch {
	case p.IsReference():
		return "reference"
	case p.Collection:
		return "containment collection"
	default:
		return "containment"
	}
}
