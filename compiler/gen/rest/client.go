package rest

import (
	"github.com/dave/jennifer/jen"

	"github.com/officeglobal/odatagen/compiler/gen"
)

// GenClient generates the shared client file (client.go): the Client
// struct every request builder hangs off, and its request plumbing.
func (e *Emitter) GenClient(g *gen.Graph) *jen.File {
	f := e.helper.NewFile(e.helper.Pkg())

	service := "the service"
	if g != nil && g.Container != nil {
		service = g.Container.Name
	}
	f.Commentf("Client issues requests against %s.", service)
	f.Type().Id("Client").Struct(
		jen.Comment("BaseURL is the service root, without a trailing slash."),
		jen.Id("BaseURL").String(),
		jen.Comment("HTTP is the underlying client. Defaults to http.DefaultClient."),
		jen.Id("HTTP").Op("*").Qual("net/http", "Client"),
	)

	f.Comment("NewClient creates a client for the given service root.")
	f.Func().Id("NewClient").Params(jen.Id("baseURL").String()).Op("*").Id("Client").Block(
		jen.Return(jen.Op("&").Id("Client").Values(jen.Dict{
			jen.Id("BaseURL"): jen.Qual("strings", "TrimRight").Call(jen.Id("baseURL"), jen.Lit("/")),
			jen.Id("HTTP"):    jen.Qual("net/http", "DefaultClient"),
		})),
	)

	f.Comment("do builds and executes one request against the service root.")
	f.Func().Params(jen.Id("c").Op("*").Id("Client")).Id("do").
		Params(
			jen.Id("ctx").Qual("context", "Context"),
			jen.Id("method").String(),
			jen.Id("path").String(),
			jen.Id("body").Qual("io", "Reader"),
		).
		Params(jen.Op("*").Qual("net/http", "Response"), jen.Error()).
		Block(
			jen.List(jen.Id("req"), jen.Err()).Op(":=").Qual("net/http", "NewRequestWithContext").Call(
				jen.Id("ctx"), jen.Id("method"), jen.Id("c").Dot("BaseURL").Op("+").Lit("/").Op("+").Id("path"), jen.Id("body"),
			),
			jen.If(jen.Err().Op("!=").Nil()).Block(
				jen.Return(jen.Nil(), jen.Err()),
			),
			jen.If(jen.Id("body").Op("!=").Nil()).Block(
				jen.Id("req").Dot("Header").Dot("Set").Call(jen.Lit("Content-Type"), jen.Lit("application/json")),
			),
			jen.Return(jen.Id("c").Dot("HTTP").Dot("Do").Call(jen.Id("req"))),
		)

	return f
}
