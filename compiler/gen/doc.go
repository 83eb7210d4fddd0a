// Package gen flattens an OData schema graph into a depth-bounded tree
// of route nodes and generates client code from it.
//
// # Architecture
//
// The generation pipeline follows this flow:
//
//	$metadata (CSDL XML)
//	        ↓
//	   load.Model (compiler/load)
//	        ↓
//	   Graph (entity types, navigation properties, container)
//	        ↓
//	   RouteTree (lazy sequence of RouteNode)
//	        ↓
//	   Emitter (per-route request builders)
//	        ↓
//	   Generated code
//
// # Key Types
//
//   - Graph: all entity types linked into their inheritance hierarchy,
//     plus the distinguished container type
//   - Type: an entity type with its navigation properties and subtypes
//   - Property: an edge of the graph: declaring type, target type,
//     multiplicity and containment-vs-reference classification
//   - RouteNode: one addressable path; a property plus a parent link
//   - Config: global configuration for graph construction and generation
//
// # Route Traversal
//
// Graph.RouteTree performs a cycle-safe, depth-bounded walk over the
// type graph driven by a LIFO frontier. Expanding a node unions the
// target type's declared properties with those of all its transitive
// subtypes (a base-typed navigation may reference a derived instance at
// runtime), deduplicated by canonical identity: the (declaring type,
// name) pair. A candidate already present on the root-to-node path is
// skipped, which eliminates cycles without suppressing legitimate
// diamond-shaped reuse elsewhere in the tree. Reference-navigation
// properties are emitted but never expanded.
//
// Nodes are produced lazily via iter.Seq, so a consumer may begin
// emitting code for early routes while later ones are still being
// discovered. Memory usage is bounded by the frontier, not the tree.
//
// # Error Handling
//
// The package uses structured error types:
//
//   - ArgumentError: nil or malformed arguments (matches ErrInvalidArgument)
//   - ConfigError: configuration errors
//   - ModelError: inconsistencies in the loaded metadata
//   - GenerationError: code generation failures
//
// All errors are fatal to the current call; the core has no retryable
// failure modes and performs no I/O during traversal.
//
// # Configuration
//
// Configuration is done via the functional options pattern:
//
//	config, err := gen.NewConfig(
//	    gen.WithTarget("./msgraph"),
//	    gen.WithMaxDepth(3),
//	)
//	graph, err := gen.NewGraph(config, model)
//	routes, err := graph.Routes()
//	for node := range routes {
//	    // one generated command per node
//	}
package gen
