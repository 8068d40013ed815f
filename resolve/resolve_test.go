package resolve

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enioarz/ontology-server/display"
	"github.com/enioarz/ontology-server/owl"
	"github.com/enioarz/ontology-server/testutil"
	"github.com/enioarz/ontology-server/vocabulary"
)

var labelPredicates = []string{vocabulary.RdfsLabel}

func zooResolver(t *testing.T, axioms []owl.Axiom) *Resolver {
	t.Helper()
	prefixes := vocabulary.StandardPrefixes()
	require.NoError(t, prefixes.Add("zoo", testutil.ZooNS))
	return NewResolver(prefixes, BuildLabelIndex(axioms, labelPredicates, "en"))
}

func TestBuildLabelIndex(t *testing.T) {
	axioms := []owl.Axiom{
		testutil.Label("Cat", "Cat"),
		testutil.Annotate("Dog", vocabulary.RdfsLabel, owl.IRIValue(testutil.IRI("DogLabel"))),
		testutil.Annotate("Cow", vocabulary.RdfsComment, owl.Literal{Text: "not a label"}),
		owl.AnnotationAssertion{
			Subject:    owl.Resource{NodeID: "_:b0"},
			Annotation: owl.Annotation{Property: vocabulary.RdfsLabel, Value: owl.Literal{Text: "anon"}},
		},
		testutil.SubClass("Cat", "Animal"),
	}

	idx := BuildLabelIndex(axioms, labelPredicates, "")
	assert.Equal(t, LabelIndex{testutil.IRI("Cat"): "Cat"}, idx)
}

func TestBuildLabelIndex_TieBreak(t *testing.T) {
	tests := []struct {
		name     string
		labels   []owl.Axiom
		lang     string
		expected string
	}{
		{
			name:     "smallest text wins without a language",
			labels:   []owl.Axiom{testutil.Label("Cat", "Kitty"), testutil.Label("Cat", "Cat")},
			expected: "Cat",
		},
		{
			name:     "order does not matter",
			labels:   []owl.Axiom{testutil.Label("Cat", "Cat"), testutil.Label("Cat", "Kitty")},
			expected: "Cat",
		},
		{
			name: "preferred language beats smaller text",
			labels: []owl.Axiom{
				testutil.LangLabel("Cat", "Chat", "fr"),
				testutil.LangLabel("Cat", "Katze", "de"),
				testutil.LangLabel("Cat", "Gato", "es"),
			},
			lang:     "de",
			expected: "Katze",
		},
		{
			name: "language match is case insensitive",
			labels: []owl.Axiom{
				testutil.LangLabel("Cat", "Cat", "EN"),
				testutil.LangLabel("Cat", "Biscuit", "fr"),
			},
			lang:     "en",
			expected: "Cat",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := BuildLabelIndex(tt.labels, labelPredicates, tt.lang)
			assert.Equal(t, tt.expected, idx[testutil.IRI("Cat")])
		})
	}
}

func TestBuildLabelIndex_ExtraPredicates(t *testing.T) {
	axioms := []owl.Axiom{
		testutil.Annotate("Cat", vocabulary.SkosPrefLabel, owl.Literal{Text: "Felis"}),
	}
	assert.Empty(t, BuildLabelIndex(axioms, labelPredicates, ""))

	idx := BuildLabelIndex(axioms, []string{vocabulary.RdfsLabel, vocabulary.SkosPrefLabel}, "")
	assert.Equal(t, "Felis", idx[testutil.IRI("Cat")])
}

func TestResolver_Entity(t *testing.T) {
	r := zooResolver(t, []owl.Axiom{testutil.Label("Cat", "Cat")})

	tests := []struct {
		name     string
		iri      owl.IRI
		expected display.EntityDisplay
	}{
		{
			name:     "labelled",
			iri:      testutil.IRI("Cat"),
			expected: display.EntityDisplay{IRI: testutil.IRI("Cat"), Identifier: "zoo:Cat", Display: "Cat"},
		},
		{
			name:     "unlabelled falls back to the shrunk form",
			iri:      testutil.IRI("Dog"),
			expected: display.EntityDisplay{IRI: testutil.IRI("Dog"), Identifier: "zoo:Dog", Display: "zoo:Dog"},
		},
		{
			name:     "unknown namespace falls back to the IRI",
			iri:      "urn:x:thing",
			expected: display.EntityDisplay{IRI: "urn:x:thing", Identifier: "urn:x:thing", Display: "urn:x:thing"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Entity(tt.iri)
			assert.Equal(t, tt.expected, got)
			assert.NotEmpty(t, got.Identifier)
			assert.NotEmpty(t, got.Display)
		})
	}
}

func TestResolver_NilInputs(t *testing.T) {
	r := NewResolver(nil, nil)
	assert.Equal(t, "http://example.org/x", r.Label("http://example.org/x"))
	assert.NotNil(t, r.Prefixes())
}

func TestResolver_LabelProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	prefixes := vocabulary.StandardPrefixes()
	if err := prefixes.Add("zoo", testutil.ZooNS); err != nil {
		t.Fatal(err)
	}

	properties.Property("a single label is returned verbatim", prop.ForAll(
		func(local, text string) bool {
			axioms := []owl.Axiom{testutil.Label(local, text)}
			r := NewResolver(prefixes, BuildLabelIndex(axioms, labelPredicates, ""))
			return r.Label(testutil.IRI(local)) == text
		},
		gen.Identifier(),
		gen.Identifier(),
	))

	properties.Property("unlabelled entities resolve to their shrunk form", prop.ForAll(
		func(local string) bool {
			r := NewResolver(prefixes, nil)
			iri := testutil.IRI(local)
			return r.Label(iri) == r.Shrink(iri)
		},
		gen.Identifier(),
	))

	properties.TestingRun(t)
}
