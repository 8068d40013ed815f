// Package vocabulary holds the namespaces and predicates the renderer knows
// about, the prefix map used to shorten IRIs, and the annotation routing table.
//
// # Prefix Mapping
//
// A PrefixMap shrinks an IRI to "prefix:local" using the longest registered
// namespace that matches. IRIs under the default namespace shrink to the bare
// local name, so the ontology's own entities get single-segment identifiers:
//
//	m := vocabulary.StandardPrefixes()
//	m.SetDefault("http://example.org/zoo#")
//	m.Shrink("http://example.org/zoo#Cat")                   // "Cat"
//	m.Shrink(vocabulary.RdfsLabel)                          // "rdfs:label"
//	m.Shrink("urn:x-unknown:1")                              // unchanged
//
// Shrink never fails; TryShrink reports whether a namespace matched.
//
// # Annotation Routing
//
// Routes maps predicate IRIs to a Role. Entity pages pull label, definition
// and example out of the generic annotation list; the ontology index pulls
// title, description, license and contributors. Extra predicates can be
// routed with functional options:
//
//	routes := vocabulary.NewRoutes(
//	    vocabulary.WithRoute(vocabulary.SkosPrefLabel, vocabulary.RoleLabel),
//	)
package vocabulary
