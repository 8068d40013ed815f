package vocabulary

// Standard Vocabulary IRIs
//
// These constants provide the W3C and Dublin Core namespaces and predicates
// that the renderer treats specially.
//
// References:
// - OWL: https://www.w3.org/TR/owl2-overview/
// - SKOS: https://www.w3.org/TR/skos-reference/
// - Dublin Core: https://www.dublincore.org/specifications/dublin-core/dcmi-terms/

// Namespaces registered in every PrefixMap returned by StandardPrefixes.
const (
	RdfNamespace     = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RdfsNamespace    = "http://www.w3.org/2000/01/rdf-schema#"
	OwlNamespace     = "http://www.w3.org/2002/07/owl#"
	XsdNamespace     = "http://www.w3.org/2001/XMLSchema#"
	SkosNamespace    = "http://www.w3.org/2004/02/skos/core#"
	DcNamespace      = "http://purl.org/dc/elements/1.1/"
	DcTermsNamespace = "http://purl.org/dc/terms/"
)

// RDF Schema Standard IRIs
const (
	// RdfsLabel provides a human-readable name for a resource.
	// Feeds the label index.
	RdfsLabel = RdfsNamespace + "label"

	// RdfsComment provides a human-readable description
	RdfsComment = RdfsNamespace + "comment"

	// RdfsSeeAlso indicates a resource that provides additional information
	RdfsSeeAlso = RdfsNamespace + "seeAlso"
)

// SKOS (Simple Knowledge Organization System) Standard IRIs
const (
	// SkosDefinition provides a complete explanation of the intended meaning.
	SkosDefinition = SkosNamespace + "definition"

	// SkosExample supplies an example of the use of a concept.
	SkosExample = SkosNamespace + "example"

	// SkosPrefLabel provides the preferred lexical label for a resource.
	SkosPrefLabel = SkosNamespace + "prefLabel"
)

// Dublin Core Metadata Terms Standard IRIs
const (
	// DcTitle provides the name given to the resource.
	DcTitle = DcTermsNamespace + "title"

	// DcDescription provides an account of the resource.
	DcDescription = DcTermsNamespace + "description"

	// DcLicense provides a legal document giving permission to use the resource.
	DcLicense = DcTermsNamespace + "license"

	// DcTermsContributor names an entity responsible for contributions.
	DcTermsContributor = DcTermsNamespace + "contributor"
)

// Dublin Core Elements 1.1
const (
	// DcElementsContributor is the legacy contributor element most ontologies still use.
	DcElementsContributor = DcNamespace + "contributor"
)

// OWL built-ins
const (
	OwlThing   = OwlNamespace + "Thing"
	OwlNothing = OwlNamespace + "Nothing"
)
