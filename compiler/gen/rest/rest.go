// Package rest generates typed Go request builders for the routes
// produced by the route-tree builder.
//
// Usage:
//
//	import (
//	    "github.com/officeglobal/odatagen/compiler/gen"
//	    "github.com/officeglobal/odatagen/compiler/gen/rest"
//	)
//
//	generator := gen.NewGenerator(graph, outDir)
//	generator.WithEmitter(rest.NewEmitter(generator))
//	generator.Generate(ctx)
//
// Generated code structure:
//
//	{output}/
//	├── client.go                    # Client struct and request plumbing
//	├── {route}.go                   # One request builder per route node
//	└── ...
package rest

import (
	"github.com/officeglobal/odatagen/compiler/gen"
)

// Emitter implements gen.Emitter. It produces one request-builder file
// per route node and a shared client file.
type Emitter struct {
	helper *gen.Generator
}

// NewEmitter creates a new REST emitter backed by the given generator.
func NewEmitter(helper *gen.Generator) *Emitter {
	return &Emitter{helper: helper}
}

// Name returns the emitter name.
func (e *Emitter) Name() string {
	return "rest"
}

// Verify Emitter implements gen.Emitter at compile time.
var _ gen.Emitter = (*Emitter)(nil)
