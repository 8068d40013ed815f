// Package owl is the in-memory ontology model the renderer reads: entities,
// axioms, class expressions and annotations.
//
// Axioms, class expressions, object property expressions and annotation values
// are closed sets. Each is an interface with an unexported marker method, so
// only this package can add variants and every consumer switches over a known
// list.
package owl

// IRI identifies an ontology entity or property.
type IRI string

// String returns the IRI text.
func (i IRI) String() string {
	return string(i)
}

// EntityKind is the declared kind of an entity.
type EntityKind int

const (
	Undefined EntityKind = iota
	Class
	ObjectProperty
	AnnotationProperty
	DataProperty
	NamedIndividual
)

// Kinds lists the declarable kinds in catalog order.
var Kinds = []EntityKind{Class, NamedIndividual, ObjectProperty, AnnotationProperty, DataProperty}

// String returns the kind name used in page contexts and metric labels.
func (k EntityKind) String() string {
	switch k {
	case Class:
		return "class"
	case ObjectProperty:
		return "object-property"
	case AnnotationProperty:
		return "annotation-property"
	case DataProperty:
		return "data-property"
	case NamedIndividual:
		return "named-individual"
	default:
		return "undefined"
	}
}

// Literal is a data value. Lang and Datatype are optional.
type Literal struct {
	Text     string
	Lang     string
	Datatype IRI
}

// Resource is an individual or annotation subject: either named by IRI or
// anonymous with a blank node ID.
type Resource struct {
	IRI    IRI
	NodeID string
}

// Named reports whether the resource has an IRI.
func (r Resource) Named() bool {
	return r.IRI != ""
}

// AnnotationValue is a Literal, an IRIValue or an AnonymousValue.
type AnnotationValue interface {
	annotationValue()
}

// IRIValue is an annotation value pointing at another resource.
type IRIValue IRI

// AnonymousValue is an annotation value pointing at a blank node.
type AnonymousValue string

func (Literal) annotationValue()        {}
func (IRIValue) annotationValue()       {}
func (AnonymousValue) annotationValue() {}

// Annotation attaches a value to an ontology or entity through a property.
type Annotation struct {
	Property IRI
	Value    AnnotationValue
}

// Prefix is a prefix declaration carried by the source document.
type Prefix struct {
	Name string
	IRI  string
}

// Ontology is one parsed ontology document.
type Ontology struct {
	IRI         IRI
	VersionIRI  IRI
	Prefixes    []Prefix
	Imports     []IRI
	Annotations []Annotation
	Axioms      []Axiom
}
