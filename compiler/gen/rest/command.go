package rest

import (
	"github.com/dave/jennifer/jen"

	"github.com/officeglobal/odatagen/compiler/gen"
)

// GenCommand generates the request-builder file for a single route node.
// The builder addresses the node's route with one id parameter per
// non-terminal collection segment; the terminal segment keeps its
// collection shape (list/create) when collection-valued.
func (e *Emitter) GenCommand(n *gen.RouteNode) *jen.File {
	f := e.helper.NewFile(e.helper.Pkg())
	name := n.BuilderName() + "Request"

	f.Commentf("%s builds requests for the %s route.", name, n.Path())
	f.Type().Id(name).Struct(
		jen.Id("client").Op("*").Id("Client"),
		jen.Id("path").String(),
	)

	genConstructor(f, n, name)
	genPathMethod(f, name)
	genGetMethod(f, n, name)
	switch {
	case n.Property.IsReference():
		genRefMethods(f, name)
	case n.Property.Collection:
		genCreateMethod(f, name)
	default:
		genUpdateMethods(f, name)
	}
	return f
}

// genConstructor generates the builder constructor on Client.
func genConstructor(f *jen.File, n *gen.RouteNode, name string) {
	route := n.Route()
	var (
		format string
		params []jen.Code
		args   []jen.Code
	)
	for i, p := range route {
		if i > 0 {
			format += "/"
		}
		format += p.Name
		// Non-terminal collection segments are addressed per element;
		// the terminal segment keeps its collection shape.
		if p.Collection && i < len(route)-1 {
			format += "/%s"
			params = append(params, jen.Id(p.PathParam()).String())
			args = append(args, jen.Id(p.PathParam()))
		}
	}
	ctor := n.BuilderName()
	f.Commentf("%s returns a request builder for the %s route.", ctor, n.Path())
	fn := f.Func().Params(jen.Id("c").Op("*").Id("Client")).Id(ctor).Params(params...).Op("*").Id(name)
	pathExpr := jen.Lit(format)
	if len(args) > 0 {
		pathExpr = jen.Qual("fmt", "Sprintf").Call(append([]jen.Code{jen.Lit(format)}, args...)...)
	}
	fn.Block(
		jen.Return(jen.Op("&").Id(name).Values(jen.Dict{
			jen.Id("client"): jen.Id("c"),
			jen.Id("path"):   pathExpr,
		})),
	)
}

// genPathMethod generates the Path accessor.
func genPathMethod(f *jen.File, name string) {
	f.Comment("Path returns the relative URL path addressed by this request.")
	f.Func().Params(jen.Id("r").Op("*").Id(name)).Id("Path").Params().String().Block(
		jen.Return(jen.Id("r").Dot("path")),
	)
}

// genGetMethod generates the Get method.
func genGetMethod(f *jen.File, n *gen.RouteNode, name string) {
	doc := "Get retrieves the resource addressed by this request."
	if n.Property.Collection && !n.Property.IsReference() {
		doc = "Get lists the collection addressed by this request."
	}
	f.Comment(doc)
	f.Func().Params(jen.Id("r").Op("*").Id(name)).Id("Get").
		Params(jen.Id("ctx").Qual("context", "Context")).
		Params(jen.Op("*").Qual("net/http", "Response"), jen.Error()).
		Block(
			jen.Return(jen.Id("r").Dot("client").Dot("do").Call(
				jen.Id("ctx"), jen.Qual("net/http", "MethodGet"), jen.Id("r").Dot("path"), jen.Nil(),
			)),
		)
}

// genCreateMethod generates Post for collection-valued terminal segments.
func genCreateMethod(f *jen.File, name string) {
	f.Comment("Post creates a new element in the collection addressed by this request.")
	f.Func().Params(jen.Id("r").Op("*").Id(name)).Id("Post").
		Params(jen.Id("ctx").Qual("context", "Context"), jen.Id("body").Qual("io", "Reader")).
		Params(jen.Op("*").Qual("net/http", "Response"), jen.Error()).
		Block(
			jen.Return(jen.Id("r").Dot("client").Dot("do").Call(
				jen.Id("ctx"), jen.Qual("net/http", "MethodPost"), jen.Id("r").Dot("path"), jen.Id("body"),
			)),
		)
}

// genUpdateMethods generates Patch and Delete for single-valued segments.
func genUpdateMethods(f *jen.File, name string) {
	f.Comment("Patch updates the resource addressed by this request.")
	f.Func().Params(jen.Id("r").Op("*").Id(name)).Id("Patch").
		Params(jen.Id("ctx").Qual("context", "Context"), jen.Id("body").Qual("io", "Reader")).
		Params(jen.Op("*").Qual("net/http", "Response"), jen.Error()).
		Block(
			jen.Return(jen.Id("r").Dot("client").Dot("do").Call(
				jen.Id("ctx"), jen.Qual("net/http", "MethodPatch"), jen.Id("r").Dot("path"), jen.Id("body"),
			)),
		)
	f.Comment("Delete removes the resource addressed by this request.")
	f.Func().Params(jen.Id("r").Op("*").Id(name)).Id("Delete").
		Params(jen.Id("ctx").Qual("context", "Context")).
		Params(jen.Op("*").Qual("net/http", "Response"), jen.Error()).
		Block(
			jen.Return(jen.Id("r").Dot("client").Dot("do").Call(
				jen.Id("ctx"), jen.Qual("net/http", "MethodDelete"), jen.Id("r").Dot("path"), jen.Nil(),
			)),
		)
}

// genRefMethods generates relationship management methods ($ref) for
// reference-navigation routes.
func genRefMethods(f *jen.File, name string) {
	refPath := func() jen.Code {
		return jen.Id("r").Dot("path").Op("+").Lit("/$ref")
	}
	f.Comment("AddRef adds a reference to the relationship addressed by this request.")
	f.Func().Params(jen.Id("r").Op("*").Id(name)).Id("AddRef").
		Params(jen.Id("ctx").Qual("context", "Context"), jen.Id("ref").Qual("io", "Reader")).
		Params(jen.Op("*").Qual("net/http", "Response"), jen.Error()).
		Block(
			jen.Return(jen.Id("r").Dot("client").Dot("do").Call(
				jen.Id("ctx"), jen.Qual("net/http", "MethodPost"), refPath(), jen.Id("ref"),
			)),
		)
	f.Comment("RemoveRef removes the reference addressed by this request.")
	f.Func().Params(jen.Id("r").Op("*").Id(name)).Id("RemoveRef").
		Params(jen.Id("ctx").Qual("context", "Context")).
		Params(jen.Op("*").Qual("net/http", "Response"), jen.Error()).
		Block(
			jen.Return(jen.Id("r").Dot("client").Dot("do").Call(
				jen.Id("ctx"), jen.Qual("net/http", "MethodDelete"), refPath(), jen.Nil(),
			)),
		)
}
