// Package load parses OData CSDL ($metadata) documents into the in-memory
// model consumed by the code generator. The model is read-only once loaded.
package load

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

// Model is the root of a loaded $metadata document. It may span multiple
// CSDL schemas, but exposes at most one entity container.
type Model struct {
	Schemas []*Schema
}

// Schema is a single CSDL <Schema> element.
type Schema struct {
	Namespace   string        `xml:"Namespace,attr"`
	Alias       string        `xml:"Alias,attr"`
	EntityTypes []*EntityType `xml:"EntityType"`
	Container   *Container    `xml:"EntityContainer"`
}

// EntityType describes one addressable entity type, its structural
// properties and its navigation properties. BaseType, when set, is the
// namespace-qualified name of the parent type.
type EntityType struct {
	Name        string                `xml:"Name,attr"`
	BaseType    string                `xml:"BaseType,attr"`
	Abstract    bool                  `xml:"Abstract,attr"`
	OpenType    bool                  `xml:"OpenType,attr"`
	Properties  []*Property           `xml:"Property"`
	Navigations []*NavigationProperty `xml:"NavigationProperty"`

	// Namespace of the declaring schema, set during Parse.
	Namespace string `xml:"-"`
}

// QualifiedName returns the namespace-qualified type name.
func (t *EntityType) QualifiedName() string {
	if t.Namespace == "" {
		return t.Name
	}
	return t.Namespace + "." + t.Name
}

// Property is a structural (non-navigation) property. Traversal ignores
// these; the emitter uses them for request/response typing.
type Property struct {
	Name     string `xml:"Name,attr"`
	Type     string `xml:"Type,attr"`
	Nullable string `xml:"Nullable,attr"`
}

// NavigationProperty is an edge of the type graph. ContainsTarget
// distinguishes containment navigation from reference navigation.
type NavigationProperty struct {
	Name           string `xml:"Name,attr"`
	Type           string `xml:"Type,attr"`
	ContainsTarget bool   `xml:"ContainsTarget,attr"`
}

// Collection reports whether the raw Type attribute is a Collection(...)
// wrapper.
func (p *NavigationProperty) Collection() bool {
	return isCollection(p.Type)
}

// TargetType returns the namespace-qualified element type with any
// Collection(...) wrapper removed.
func (p *NavigationProperty) TargetType() string {
	return unwrapCollection(p.Type)
}

// Container is the CSDL <EntityContainer>, the root of every route.
type Container struct {
	Name       string       `xml:"Name,attr"`
	EntitySets []*EntitySet `xml:"EntitySet"`
	Singletons []*Singleton `xml:"Singleton"`

	Namespace string `xml:"-"`
}

// EntitySet is a top-level collection exposed by the service.
type EntitySet struct {
	Name       string `xml:"Name,attr"`
	EntityType string `xml:"EntityType,attr"`
}

// Singleton is a top-level single-valued resource exposed by the service.
type Singleton struct {
	Name string `xml:"Name,attr"`
	Type string `xml:"Type,attr"`
}

// edmx mirrors the EDMX envelope around the CSDL schemas.
type edmx struct {
	XMLName      xml.Name `xml:"Edmx"`
	DataServices struct {
		Schemas []*Schema `xml:"Schema"`
	} `xml:"DataServices"`
}

// Parse reads a $metadata document and returns the loaded model.
func Parse(r io.Reader) (*Model, error) {
	var doc edmx
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("load: decoding metadata: %w", err)
	}
	if len(doc.DataServices.Schemas) == 0 {
		return nil, fmt.Errorf("load: metadata contains no schemas")
	}
	m := &Model{Schemas: doc.DataServices.Schemas}
	for _, s := range m.Schemas {
		for _, t := range s.EntityTypes {
			t.Namespace = s.Namespace
		}
		if s.Container != nil {
			s.Container.Namespace = s.Namespace
		}
	}
	return m, nil
}

// ParseFile reads and parses the $metadata document at path.
func ParseFile(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Container returns the first entity container declared in the model,
// or nil if none is declared.
func (m *Model) Container() *Container {
	for _, s := range m.Schemas {
		if s.Container != nil {
			return s.Container
		}
	}
	return nil
}

// EntityType looks up an entity type by its namespace-qualified name.
// Schema aliases are resolved against the declaring schema.
func (m *Model) EntityType(qualified string) (*EntityType, bool) {
	for _, s := range m.Schemas {
		name := qualified
		if s.Alias != "" && strings.HasPrefix(qualified, s.Alias+".") {
			name = s.Namespace + strings.TrimPrefix(qualified, s.Alias)
		}
		if !strings.HasPrefix(name, s.Namespace+".") {
			continue
		}
		local := strings.TrimPrefix(name, s.Namespace+".")
		for _, t := range s.EntityTypes {
			if t.Name == local {
				return t, true
			}
		}
	}
	return nil, false
}

func isCollection(typ string) bool {
	return strings.HasPrefix(typ, "Collection(") && strings.HasSuffix(typ, ")")
}

func unwrapCollection(typ string) string {
	if isCollection(typ) {
		return typ[len("Collection(") : len(typ)-1]
	}
	return typ
}
