package relations

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enioarz/ontology-server/display"
	"github.com/enioarz/ontology-server/errors"
	"github.com/enioarz/ontology-server/owl"
	"github.com/enioarz/ontology-server/resolve"
	"github.com/enioarz/ontology-server/testutil"
	"github.com/enioarz/ontology-server/vocabulary"
)

func collector(axioms []owl.Axiom) *Collector {
	prefixes := vocabulary.StandardPrefixes()
	prefixes.SetDefault(testutil.ZooNS)
	labels := resolve.BuildLabelIndex(axioms, []string{vocabulary.RdfsLabel}, "")
	return NewCollector(owl.NewIndex(axioms), resolve.NewResolver(prefixes, labels), nil)
}

func node(local string) display.Node {
	return display.Simple(display.EntityDisplay{IRI: testutil.IRI(local), Identifier: local, Display: local})
}

func nodes(locals ...string) []display.Node {
	out := make([]display.Node, len(locals))
	for i, l := range locals {
		out[i] = node(l)
	}
	return out
}

func relationships(t *testing.T, c *Collector, local string) Set {
	t.Helper()
	set, err := c.Relationships(testutil.IRI(local))
	require.NoError(t, err)
	return set
}

func TestCollector_SubClassOf(t *testing.T) {
	c := collector([]owl.Axiom{
		testutil.SubClass("Dog", "Animal"),
		testutil.SubClass("Cat", "Animal"),
		testutil.SubClass("Animal", "LivingThing"),
	})

	animal := relationships(t, c, "Animal")
	assert.Equal(t, nodes("Dog", "Cat"), animal.SubClasses)
	assert.Equal(t, nodes("LivingThing"), animal.SuperClasses)

	dog := relationships(t, c, "Dog")
	assert.Equal(t, nodes("Animal"), dog.SuperClasses)
	assert.Empty(t, dog.SubClasses)
}

func TestCollector_SubClassOfCompound(t *testing.T) {
	restriction := owl.ObjectSomeValuesFrom{Property: testutil.Prop("eats"), Filler: testutil.Class("Mouse")}
	c := collector([]owl.Axiom{
		owl.SubClassOf{Sub: testutil.Class("Cat"), Super: restriction},
		owl.SubClassOf{Sub: owl.ObjectUnionOf{Operands: []owl.ClassExpression{
			testutil.Class("Lion"), testutil.Class("Tiger"),
		}}, Super: testutil.Class("Cat")},
	})

	cat := relationships(t, c, "Cat")
	want := Set{
		SuperClasses: []display.Node{display.SomeValuesFrom(node("eats"), node("Mouse"))},
		SubClasses:   []display.Node{display.Or(node("Lion"), node("Tiger"))},
	}
	if diff := cmp.Diff(want, cat); diff != "" {
		t.Errorf("relationship mismatch (-want +got):\n%s", diff)
	}

	mouse := relationships(t, c, "Mouse")
	assert.Empty(t, mouse.SuperClasses, "nested occurrences contribute nothing")
	assert.Empty(t, mouse.SubClasses)
}

func TestCollector_PropertyHierarchies(t *testing.T) {
	c := collector([]owl.Axiom{
		owl.SubObjectPropertyOf{Sub: testutil.Prop("hasLeg"), Super: testutil.Prop("hasPart")},
		owl.SubObjectPropertyOf{Sub: owl.InverseObjectProperty{Of: testutil.IRI("partOf")}, Super: testutil.Prop("hasPart")},
		owl.SubDataPropertyOf{Sub: testutil.IRI("ageInYears"), Super: testutil.IRI("age")},
		owl.SubAnnotationPropertyOf{Sub: testutil.IRI("note"), Super: testutil.IRI("comment")},
	})

	hasPart := relationships(t, c, "hasPart")
	assert.Equal(t, nodes("hasLeg"), hasPart.SubClasses, "inverse sub-property is not a named pair")
	assert.Equal(t, nodes("hasPart"), relationships(t, c, "hasLeg").SuperClasses)
	assert.Equal(t, nodes("ageInYears"), relationships(t, c, "age").SubClasses)
	assert.Equal(t, nodes("comment"), relationships(t, c, "note").SuperClasses)
}

func TestCollector_EquivalentClasses(t *testing.T) {
	c := collector([]owl.Axiom{
		owl.EquivalentClasses{Classes: []owl.ClassExpression{
			testutil.Class("X"), testutil.Class("Y"), testutil.Class("Z"),
		}},
	})

	assert.Equal(t, nodes("X", "Z"), relationships(t, c, "Y").EquivalentClasses)
	assert.Equal(t, nodes("Y", "Z"), relationships(t, c, "X").EquivalentClasses)
}

func TestCollector_InverseProperties(t *testing.T) {
	c := collector([]owl.Axiom{
		owl.InverseObjectProperties{First: testutil.Prop("hasPart"), Second: testutil.Prop("isPartOf")},
	})

	assert.Equal(t, nodes("isPartOf"), relationships(t, c, "hasPart").InverseProperties)
	assert.Equal(t, nodes("hasPart"), relationships(t, c, "isPartOf").InverseProperties)
}

func TestCollector_DomainAndRange(t *testing.T) {
	c := collector([]owl.Axiom{
		owl.ObjectPropertyDomain{Property: testutil.Prop("eats"), Domain: testutil.Class("Animal")},
		owl.ObjectPropertyRange{Property: testutil.Prop("eats"), Range: testutil.Class("Food")},
		owl.ObjectPropertyRange{Property: testutil.Prop("eats"), Range: testutil.Class("Organic")},
		owl.DataPropertyDomain{Property: testutil.IRI("age"), Domain: testutil.Class("Animal")},
		owl.DataPropertyRange{Property: testutil.IRI("age"), Datatype: vocabulary.XsdNamespace + "integer"},
	})

	eats := relationships(t, c, "eats")
	require.NotNil(t, eats.Domain)
	assert.Equal(t, node("Animal"), *eats.Domain)
	require.NotNil(t, eats.Range)
	assert.Equal(t, display.And(node("Food"), node("Organic")), *eats.Range, "several ranges intersect in axiom order")
	assert.True(t, eats.Combined)

	age := relationships(t, c, "age")
	require.NotNil(t, age.Range)
	assert.Equal(t, "xsd:integer", age.Range.Entity.Identifier)
	assert.False(t, age.Combined)

	animal := relationships(t, c, "Animal")
	assert.Nil(t, animal.Domain)
	assert.Nil(t, animal.Range)
}

func TestCollector_ClassAssertions(t *testing.T) {
	c := collector([]owl.Axiom{
		owl.ClassAssertion{Class: testutil.Class("Cat"), Individual: testutil.Individual("tom")},
		owl.ClassAssertion{Class: owl.ObjectComplementOf{Operand: testutil.Class("Dog")}, Individual: testutil.Individual("tom")},
		owl.ClassAssertion{Class: testutil.Class("Cat"), Individual: owl.Resource{NodeID: "_:b0"}},
	})

	assert.Equal(t, []display.Node{node("Cat"), display.Not(node("Dog"))}, relationships(t, c, "tom").ClassAssertions)
	assert.Empty(t, relationships(t, c, "Cat").ClassAssertions)
}

func TestCollector_Unsupported(t *testing.T) {
	c := collector([]owl.Axiom{
		owl.SubClassOf{Sub: testutil.Class("Cat"), Super: owl.ObjectExactCardinality{N: 4, Property: testutil.Prop("hasLeg")}},
		testutil.SubClass("Dog", "Animal"),
	})

	_, err := c.Relationships(testutil.IRI("Cat"))
	require.Error(t, err)
	assert.True(t, errors.IsUnsupportedConstruct(err))

	_, err = c.Relationships(testutil.IRI("Dog"))
	assert.NoError(t, err, "other entities are unaffected")
}

func TestCollector_Annotations(t *testing.T) {
	c := collector([]owl.Axiom{
		testutil.Label("Cat", "Kitty"),
		testutil.Label("Cat", "Cat"),
		testutil.Annotate("Cat", vocabulary.SkosDefinition, owl.Literal{Text: "A feline."}),
		testutil.Annotate("Cat", vocabulary.SkosDefinition, owl.Literal{Text: "Second definition."}),
		testutil.Annotate("Cat", vocabulary.SkosExample, owl.IRIValue("http://example.org/cats/tom")),
		testutil.Annotate("Cat", vocabulary.RdfsComment, owl.Literal{Text: "Purrs."}),
		testutil.Annotate("Cat", vocabulary.RdfsSeeAlso, owl.AnonymousValue("_:b1")),
		testutil.Annotate("Cat", vocabulary.DcTitle, owl.Literal{Text: "Cat page"}),
		testutil.Annotate("Dog", vocabulary.RdfsSeeAlso, owl.IRIValue(testutil.IRI("Cat"))),
	})

	got := c.Annotations(testutil.IRI("Cat"))
	want := Annotations{
		Label:      "Cat",
		Definition: "A feline.",
		Example:    "http://example.org/cats/tom",
		Generic: []display.AnnotationEntry{
			{PropertyIRI: vocabulary.RdfsLabel, PropertyDisplay: "rdfs:label", Value: "Kitty"},
			{PropertyIRI: vocabulary.SkosDefinition, PropertyDisplay: "skos:definition", Value: "Second definition."},
			{PropertyIRI: vocabulary.RdfsComment, PropertyDisplay: "rdfs:comment", Value: "Purrs."},
			{PropertyIRI: vocabulary.DcTitle, PropertyDisplay: "dcterms:title", Value: "Cat page"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("annotations mismatch (-want +got):\n%s", diff)
	}

	assert.Empty(t, c.Annotations(testutil.IRI("Ghost")).Generic)
}
