package testutil

import (
	"github.com/enioarz/ontology-server/owl"
	"github.com/enioarz/ontology-server/vocabulary"
)

// ZooNS is the namespace every fixture entity lives under.
const ZooNS = "http://example.org/zoo#"

// ZooTitle is the dcterms:title of ZooOntology.
const ZooTitle = "Zoo Ontology"

// IRI returns the fixture IRI for local.
func IRI(local string) owl.IRI {
	return owl.IRI(ZooNS + local)
}

// Class returns an atomic class expression for local.
func Class(local string) owl.ClassRef {
	return owl.ClassRef{IRI: IRI(local)}
}

// Prop returns a named object property expression for local.
func Prop(local string) owl.ObjectPropertyRef {
	return owl.ObjectPropertyRef{IRI: IRI(local)}
}

// Individual returns a named individual for local.
func Individual(local string) owl.Resource {
	return owl.Resource{IRI: IRI(local)}
}

// Declare returns a declaration of local with kind.
func Declare(kind owl.EntityKind, local string) owl.Declaration {
	return owl.Declaration{Kind: kind, IRI: IRI(local)}
}

// Label returns an rdfs:label assertion on local.
func Label(local, text string) owl.AnnotationAssertion {
	return Annotate(local, vocabulary.RdfsLabel, owl.Literal{Text: text})
}

// LangLabel returns a language-tagged rdfs:label assertion on local.
func LangLabel(local, text, lang string) owl.AnnotationAssertion {
	return Annotate(local, vocabulary.RdfsLabel, owl.Literal{Text: text, Lang: lang})
}

// Annotate returns an annotation assertion on local.
func Annotate(local, property string, value owl.AnnotationValue) owl.AnnotationAssertion {
	return owl.AnnotationAssertion{
		Subject:    Individual(local),
		Annotation: owl.Annotation{Property: owl.IRI(property), Value: value},
	}
}

// SubClass returns SubClassOf(sub, super) for two atomic classes.
func SubClass(sub, super string) owl.SubClassOf {
	return owl.SubClassOf{Sub: Class(sub), Super: Class(super)}
}

// ZooAxioms is a small ontology exercising every relationship rule:
//
//	Cat ⊑ Animal, Dog ⊑ Animal, Pet ≡ Animal ⊓ ∃eats.Animal,
//	hasPart inverse isPartOf, eats domain Animal, tom a Cat.
func ZooAxioms() []owl.Axiom {
	return []owl.Axiom{
		Declare(owl.Class, "Animal"),
		Declare(owl.Class, "Cat"),
		Declare(owl.Class, "Dog"),
		Declare(owl.Class, "Pet"),
		Declare(owl.ObjectProperty, "hasPart"),
		Declare(owl.ObjectProperty, "isPartOf"),
		Declare(owl.ObjectProperty, "eats"),
		Declare(owl.DataProperty, "age"),
		Declare(owl.AnnotationProperty, "note"),
		Declare(owl.NamedIndividual, "tom"),
		SubClass("Cat", "Animal"),
		SubClass("Dog", "Animal"),
		owl.EquivalentClasses{Classes: []owl.ClassExpression{
			Class("Pet"),
			owl.ObjectIntersectionOf{Operands: []owl.ClassExpression{
				Class("Animal"),
				owl.ObjectSomeValuesFrom{Property: Prop("eats"), Filler: Class("Animal")},
			}},
		}},
		owl.InverseObjectProperties{First: Prop("hasPart"), Second: Prop("isPartOf")},
		owl.ObjectPropertyDomain{Property: Prop("eats"), Domain: Class("Animal")},
		owl.ClassAssertion{Class: Class("Cat"), Individual: Individual("tom")},
		Label("Cat", "Cat"),
		Label("Animal", "Animal"),
		Annotate("Cat", vocabulary.SkosDefinition, owl.Literal{Text: "A small domesticated feline."}),
		Annotate("Cat", vocabulary.RdfsComment, owl.Literal{Text: "Purrs."}),
	}
}

// ZooOntology wraps ZooAxioms with an ontology IRI and a title.
func ZooOntology() *owl.Ontology {
	return &owl.Ontology{
		IRI:        owl.IRI("http://example.org/zoo"),
		VersionIRI: owl.IRI("http://example.org/zoo/1.0"),
		Prefixes:   []owl.Prefix{{Name: "", IRI: ZooNS}},
		Annotations: []owl.Annotation{
			{Property: vocabulary.DcTitle, Value: owl.Literal{Text: ZooTitle}},
			{Property: vocabulary.DcLicense, Value: owl.IRIValue("https://creativecommons.org/licenses/by/4.0/")},
			{Property: vocabulary.DcElementsContributor, Value: owl.Literal{Text: "Ada"}},
			{Property: vocabulary.RdfsComment, Value: owl.Literal{Text: "For tests."}},
		},
		Axioms: ZooAxioms(),
	}
}

// ZooOWX is ZooOntology's core written as OWL/XML.
const ZooOWX = `<?xml version="1.0"?>
<Ontology xmlns="http://www.w3.org/2002/07/owl#"
     xml:base="http://example.org/zoo"
     xmlns:xml="http://www.w3.org/XML/1998/namespace"
     ontologyIRI="http://example.org/zoo"
     versionIRI="http://example.org/zoo/1.0">
    <Prefix name="" IRI="http://example.org/zoo#"/>
    <Prefix name="rdfs" IRI="http://www.w3.org/2000/01/rdf-schema#"/>
    <Prefix name="skos" IRI="http://www.w3.org/2004/02/skos/core#"/>
    <Prefix name="dcterms" IRI="http://purl.org/dc/terms/"/>
    <Import>http://example.org/habitat</Import>
    <Annotation>
        <AnnotationProperty abbreviatedIRI="dcterms:title"/>
        <Literal xml:lang="en">Zoo Ontology</Literal>
    </Annotation>
    <Declaration>
        <Class IRI="#Animal"/>
    </Declaration>
    <Declaration>
        <Class abbreviatedIRI=":Cat"/>
    </Declaration>
    <Declaration>
        <ObjectProperty IRI="#eats"/>
    </Declaration>
    <Declaration>
        <NamedIndividual IRI="#tom"/>
    </Declaration>
    <Declaration>
        <Datatype abbreviatedIRI="xsd:string"/>
    </Declaration>
    <SubClassOf>
        <Annotation>
            <AnnotationProperty abbreviatedIRI="rdfs:comment"/>
            <Literal>axiom annotation</Literal>
        </Annotation>
        <Class IRI="#Cat"/>
        <Class IRI="#Animal"/>
    </SubClassOf>
    <SubClassOf>
        <Class IRI="#Cat"/>
        <ObjectExactCardinality cardinality="4">
            <ObjectProperty IRI="#hasLeg"/>
        </ObjectExactCardinality>
    </SubClassOf>
    <ObjectPropertyDomain>
        <ObjectProperty IRI="#eats"/>
        <Class IRI="#Animal"/>
    </ObjectPropertyDomain>
    <ClassAssertion>
        <Class IRI="#Cat"/>
        <NamedIndividual IRI="#tom"/>
    </ClassAssertion>
    <HasKey>
        <Class IRI="#Cat"/>
        <ObjectProperty IRI="#eats"/>
    </HasKey>
    <AnnotationAssertion>
        <AnnotationProperty abbreviatedIRI="rdfs:label"/>
        <IRI>#Cat</IRI>
        <Literal xml:lang="en">Cat</Literal>
    </AnnotationAssertion>
    <AnnotationAssertion>
        <AnnotationProperty abbreviatedIRI="skos:definition"/>
        <AbbreviatedIRI>:Cat</AbbreviatedIRI>
        <Literal datatypeIRI="http://www.w3.org/2001/XMLSchema#string">A small domesticated feline.</Literal>
    </AnnotationAssertion>
</Ontology>
`
