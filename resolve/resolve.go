// Package resolve turns IRIs into the short identifiers and human labels
// shown on rendered pages.
package resolve

import (
	"strings"

	"github.com/enioarz/ontology-server/display"
	"github.com/enioarz/ontology-server/owl"
	"github.com/enioarz/ontology-server/vocabulary"
)

// LabelIndex maps an entity IRI to its chosen label. It is built once and
// then only read.
type LabelIndex map[owl.IRI]string

type candidate struct {
	text string
	lang string
}

// better reports whether c should replace cur as the chosen label.
func (c candidate) better(cur candidate, lang string) bool {
	if lang != "" {
		cm, curm := strings.EqualFold(c.lang, lang), strings.EqualFold(cur.lang, lang)
		if cm != curm {
			return cm
		}
	}
	return c.text < cur.text
}

// BuildLabelIndex scans axioms once for literal annotation assertions on
// named subjects whose property is one of predicates. With several labels on
// one subject the choice is deterministic and independent of axiom order: a
// literal tagged with lang wins, then the lexicographically smallest text.
func BuildLabelIndex(axioms []owl.Axiom, predicates []string, lang string) LabelIndex {
	wanted := make(map[owl.IRI]bool, len(predicates))
	for _, p := range predicates {
		wanted[owl.IRI(p)] = true
	}

	chosen := make(map[owl.IRI]candidate)
	for _, ax := range axioms {
		aa, ok := ax.(owl.AnnotationAssertion)
		if !ok || !aa.Subject.Named() || !wanted[aa.Annotation.Property] {
			continue
		}
		lit, ok := aa.Annotation.Value.(owl.Literal)
		if !ok {
			continue
		}
		c := candidate{text: lit.Text, lang: lit.Lang}
		if cur, seen := chosen[aa.Subject.IRI]; !seen || c.better(cur, lang) {
			chosen[aa.Subject.IRI] = c
		}
	}

	idx := make(LabelIndex, len(chosen))
	for iri, c := range chosen {
		idx[iri] = c.text
	}
	return idx
}

// Resolver shrinks IRIs and looks up labels. Safe for concurrent use once built.
type Resolver struct {
	prefixes *vocabulary.PrefixMap
	labels   LabelIndex
}

// NewResolver creates a resolver over prefixes and labels. Either may be nil.
func NewResolver(prefixes *vocabulary.PrefixMap, labels LabelIndex) *Resolver {
	if prefixes == nil {
		prefixes = vocabulary.NewPrefixMap()
	}
	if labels == nil {
		labels = LabelIndex{}
	}
	return &Resolver{prefixes: prefixes, labels: labels}
}

// Prefixes returns the prefix map the resolver shrinks with.
func (r *Resolver) Prefixes() *vocabulary.PrefixMap {
	return r.prefixes
}

// Shrink returns the compact form of iri, or iri itself.
func (r *Resolver) Shrink(iri owl.IRI) string {
	return r.prefixes.Shrink(string(iri))
}

// HasLabel returns the indexed label for iri.
func (r *Resolver) HasLabel(iri owl.IRI) (string, bool) {
	l, ok := r.labels[iri]
	return l, ok && l != ""
}

// Label returns the indexed label for iri, falling back to Shrink.
func (r *Resolver) Label(iri owl.IRI) string {
	if l, ok := r.HasLabel(iri); ok {
		return l
	}
	return r.Shrink(iri)
}

// Entity builds the display record for iri. The same rule applies to every
// entity kind.
func (r *Resolver) Entity(iri owl.IRI) display.EntityDisplay {
	id := r.Shrink(iri)
	if id == "" {
		id = string(iri)
	}
	name := id
	if l, ok := r.HasLabel(iri); ok {
		name = l
	}
	return display.EntityDisplay{IRI: iri, Identifier: id, Display: name}
}
