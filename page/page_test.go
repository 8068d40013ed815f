package page

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enioarz/ontology-server/display"
	"github.com/enioarz/ontology-server/errors"
	"github.com/enioarz/ontology-server/owl"
	"github.com/enioarz/ontology-server/resolve"
	"github.com/enioarz/ontology-server/testutil"
	"github.com/enioarz/ontology-server/vocabulary"
)

func zooBuilder(axioms []owl.Axiom) *Builder {
	prefixes := vocabulary.StandardPrefixes()
	prefixes.SetDefault(testutil.ZooNS)
	labels := resolve.BuildLabelIndex(axioms, []string{vocabulary.RdfsLabel}, "")
	return NewBuilder(owl.NewIndex(axioms), resolve.NewResolver(prefixes, labels), nil)
}

func entity(local, name string) display.EntityDisplay {
	return display.EntityDisplay{IRI: testutil.IRI(local), Identifier: local, Display: name}
}

func TestBuilder_Kind(t *testing.T) {
	b := zooBuilder([]owl.Axiom{
		testutil.Declare(owl.Class, "Cat"),
		testutil.Declare(owl.Class, "Dual"),
		testutil.Declare(owl.NamedIndividual, "Dual"),
	})

	kind, err := b.Kind(testutil.IRI("Cat"))
	require.NoError(t, err)
	assert.Equal(t, owl.Class, kind)

	kind, err = b.Kind(testutil.IRI("Dual"))
	require.NoError(t, err)
	assert.Equal(t, owl.NamedIndividual, kind, "last declaration wins")

	_, err = b.Kind(testutil.IRI("Ghost"))
	require.Error(t, err)
	assert.True(t, errors.IsUnknownEntityKind(err))
}

func TestBuilder_Entity(t *testing.T) {
	b := zooBuilder(testutil.ZooAxioms())

	p, err := b.Entity(testutil.IRI("Cat"))
	require.NoError(t, err)

	assert.Equal(t, owl.Class, p.Kind)
	assert.Equal(t, entity("Cat", "Cat"), p.Entity)
	assert.Equal(t, "Cat", p.Annotations.Label)
	assert.Equal(t, "A small domesticated feline.", p.Annotations.Definition)
	assert.Equal(t, []display.Node{display.Simple(entity("Animal", "Animal"))}, p.Relationships.SuperClasses)
	require.Len(t, p.Annotations.Generic, 1)
	assert.Equal(t, "rdfs:comment", p.Annotations.Generic[0].PropertyDisplay)

	_, err = b.Entity(testutil.IRI("Ghost"))
	var uk *errors.UnknownEntityKindError
	require.ErrorAs(t, err, &uk)
	assert.Equal(t, string(testutil.IRI("Ghost")), uk.IRI)
}

func TestBuilder_EntityUnsupported(t *testing.T) {
	axioms := append(testutil.ZooAxioms(), owl.SubClassOf{
		Sub:   testutil.Class("Dog"),
		Super: owl.ObjectHasSelf{Property: testutil.Prop("eats")},
	})
	b := zooBuilder(axioms)

	_, err := b.Entity(testutil.IRI("Dog"))
	assert.True(t, errors.IsUnsupportedConstruct(err))

	_, err = b.Entity(testutil.IRI("Cat"))
	assert.NoError(t, err)
}

func TestBuilder_Catalog(t *testing.T) {
	b := zooBuilder(testutil.ZooAxioms())

	c := b.Catalog(nil)
	assert.Equal(t, []display.EntityDisplay{
		entity("Animal", "Animal"), entity("Cat", "Cat"), entity("Dog", "Dog"), entity("Pet", "Pet"),
	}, c.Classes)
	assert.Equal(t, []display.EntityDisplay{entity("tom", "tom")}, c.NamedIndividuals)
	assert.Equal(t, []display.EntityDisplay{entity("hasPart", "hasPart"), entity("isPartOf", "isPartOf"), entity("eats", "eats")}, c.ObjectProperties)
	assert.Equal(t, []display.EntityDisplay{entity("note", "note")}, c.AnnotationProperties)
	assert.Equal(t, []display.EntityDisplay{entity("age", "age")}, c.DataProperties, "data properties use the same rule")
	assert.Equal(t, 10, c.Len())

	onlyCats := b.Catalog(func(iri owl.IRI) bool { return strings.HasSuffix(string(iri), "Cat") })
	assert.Equal(t, 1, onlyCats.Len())
}

func TestBuilder_Metadata(t *testing.T) {
	ont := testutil.ZooOntology()
	ont.Annotations = append(ont.Annotations,
		owl.Annotation{Property: vocabulary.DcTitle, Value: owl.Literal{Text: "Second title"}},
		owl.Annotation{Property: vocabulary.DcTermsContributor, Value: owl.Literal{Text: "Grace"}},
		owl.Annotation{Property: vocabulary.DcDescription, Value: owl.AnonymousValue("_:b0")},
	)
	b := zooBuilder(ont.Axioms)

	md := b.Metadata(ont, nil)
	assert.Equal(t, testutil.ZooTitle, md.Title)
	assert.Equal(t, "https://creativecommons.org/licenses/by/4.0/", md.License)
	assert.Empty(t, md.Description, "anonymous values are skipped")
	assert.Equal(t, owl.IRI("http://example.org/zoo/1.0"), md.VersionIRI)

	require.Len(t, md.Contributors, 2)
	assert.Equal(t, "Ada", md.Contributors[0].Value)
	assert.Equal(t, "dc:contributor", md.Contributors[0].PropertyDisplay)
	assert.Equal(t, "Grace", md.Contributors[1].Value)

	require.Len(t, md.Annotations, 2)
	assert.Equal(t, "For tests.", md.Annotations[0].Value)
	assert.Equal(t, "Second title", md.Annotations[1].Value)

	assert.Equal(t, 10, md.Sidebar.Len())
}

func TestEntityPage_Context(t *testing.T) {
	b := zooBuilder(testutil.ZooAxioms())

	p, err := b.Entity(testutil.IRI("eats"))
	require.NoError(t, err)
	ctx := p.Context()

	for _, key := range []string{
		KeyKind, KeyIRI, KeyLabel, KeyDefinition, KeyExample, KeyAnnotations,
		KeySuperClasses, KeySubClasses, KeyEquivalentClasses, KeyInverseOps,
		KeyOpRange, KeyOpDomain, KeyClassAssertions,
	} {
		assert.Contains(t, ctx, key)
	}
	assert.Equal(t, "object-property", ctx[KeyKind])
	assert.Nil(t, ctx[KeyLabel])
	assert.Equal(t, "eats", ctx[KeyDisplay])
	domain, ok := ctx[KeyOpDomain].(*display.Node)
	require.True(t, ok)
	assert.Equal(t, "Animal", domain.Entity.Display)
}

func TestMetadata_Context(t *testing.T) {
	ont := testutil.ZooOntology()
	b := zooBuilder(ont.Axioms)
	ctx := b.Metadata(ont, nil).Context()

	for _, key := range []string{
		KeyIRI, KeyVersion, KeyTitle, KeyDescription, KeyLicense, KeyContributors, KeyAnnotations, KeySidebar,
	} {
		assert.Contains(t, ctx, key)
	}
	assert.Equal(t, testutil.ZooTitle, ctx[KeyTitle])
	assert.Nil(t, ctx[KeyDescription])

	sidebar, ok := ctx[KeySidebar].(Context)
	require.True(t, ok)
	assert.Len(t, sidebar["classes"], 4)
}
