// Package hyppo renders an OWL 2 ontology into a static documentation site:
// one HTML page per declared entity plus an index page for the ontology.
//
// # Architecture
//
// A build is a straight pipeline. Every stage works on the output of the one
// before it and holds no global state:
//
//	┌─────────────────────────────────────┐
//	│  owx.Reader                         │  OWL/XML → owl.Ontology
//	└─────────────────────────────────────┘
//	           ↓
//	┌─────────────────────────────────────┐
//	│  owl.Index + resolve.Resolver       │  axioms by IRI, prefixes, labels
//	└─────────────────────────────────────┘
//	           ↓
//	┌─────────────────────────────────────┐
//	│  relations / unpack / page          │  relationships, display trees,
//	│                                     │  entity and index page models
//	└─────────────────────────────────────┘
//	           ↓ pkg/worker pool
//	┌─────────────────────────────────────┐
//	│  site.Orchestrator + theme.Engine   │  rendered pages, build report
//	└─────────────────────────────────────┘
//	           ↓
//	┌─────────────────────────────────────┐
//	│  output/file  or  gateway/http      │  files on disk, or a preview
//	└─────────────────────────────────────┘
//
// # Failures
//
// A page that cannot be built, because its entity is undeclared, uses an
// unsupported class expression, or fails to render, is recorded in the build
// report and the remaining pages are still produced. The CLI's --strict flag
// turns a non-empty failure list into a failed build after output is
// written.
//
// # Packages
//
//   - vocabulary: standard IRIs, prefix maps, annotation role routing
//   - owl: the ontology model and the per-build axiom index
//   - owx: the OWL/XML reader
//   - resolve: CURIE shrinking and label lookup
//   - unpack, relations: class expression trees and entity relationships
//   - display, page: render models and template contexts
//   - theme: the html/template engine and built-in theme
//   - site: build orchestration, output layout and reports
//   - output/file, gateway/http: writing and serving a built site
//   - config, metric, health, errors, pkg/worker: shared infrastructure
//
// The hyppo command in cmd/hyppo wires these together.
package hyppo
