// Package page assembles the render models for entity pages and the ontology
// index page.
package page

import (
	"github.com/enioarz/ontology-server/display"
	"github.com/enioarz/ontology-server/errors"
	"github.com/enioarz/ontology-server/owl"
	"github.com/enioarz/ontology-server/relations"
	"github.com/enioarz/ontology-server/resolve"
	"github.com/enioarz/ontology-server/vocabulary"
)

// EntityPage is the full model for one entity page.
type EntityPage struct {
	Kind          owl.EntityKind
	Entity        display.EntityDisplay
	Annotations   relations.Annotations
	Relationships relations.Set
}

// Catalog lists every declared entity grouped by kind, in declaration order.
type Catalog struct {
	Classes              []display.EntityDisplay
	NamedIndividuals     []display.EntityDisplay
	ObjectProperties     []display.EntityDisplay
	AnnotationProperties []display.EntityDisplay
	DataProperties       []display.EntityDisplay
}

// Len returns the total number of entries.
func (c Catalog) Len() int {
	return len(c.Classes) + len(c.NamedIndividuals) + len(c.ObjectProperties) +
		len(c.AnnotationProperties) + len(c.DataProperties)
}

// Metadata is the model for the ontology index page.
type Metadata struct {
	IRI          owl.IRI
	VersionIRI   owl.IRI
	Title        string
	Description  string
	License      string
	Contributors []display.AnnotationEntry
	Annotations  []display.AnnotationEntry
	Imports      []owl.IRI
	Sidebar      Catalog
}

// Filter selects which IRIs appear in a catalog. A nil Filter keeps everything.
type Filter func(owl.IRI) bool

// Builder builds page models from a shared index. It holds no mutable state
// and may be used from several goroutines.
type Builder struct {
	index     *owl.Index
	resolver  *resolve.Resolver
	collector *relations.Collector
	routes    *vocabulary.Routes
}

// NewBuilder creates a Builder. A nil routes uses vocabulary.NewRoutes().
func NewBuilder(index *owl.Index, resolver *resolve.Resolver, routes *vocabulary.Routes) *Builder {
	if routes == nil {
		routes = vocabulary.NewRoutes()
	}
	return &Builder{
		index:     index,
		resolver:  resolver,
		collector: relations.NewCollector(index, resolver, routes),
		routes:    routes,
	}
}

// Resolver returns the resolver pages are built with.
func (b *Builder) Resolver() *resolve.Resolver {
	return b.resolver
}

// Kind returns the declared kind of iri. With several declarations the last
// one wins. No declaration is an *errors.UnknownEntityKindError.
func (b *Builder) Kind(iri owl.IRI) (owl.EntityKind, error) {
	kinds := b.index.Kinds(iri)
	if len(kinds) == 0 {
		return owl.Undefined, &errors.UnknownEntityKindError{IRI: string(iri)}
	}
	return kinds[len(kinds)-1], nil
}

// Entity builds the page model for iri.
func (b *Builder) Entity(iri owl.IRI) (*EntityPage, error) {
	kind, err := b.Kind(iri)
	if err != nil {
		return nil, err
	}
	rels, err := b.collector.Relationships(iri)
	if err != nil {
		return nil, err
	}
	return &EntityPage{
		Kind:          kind,
		Entity:        b.resolver.Entity(iri),
		Annotations:   b.collector.Annotations(iri),
		Relationships: rels,
	}, nil
}

// Catalog builds the sidebar catalog. Every kind uses the same display rule.
func (b *Builder) Catalog(filter Filter) Catalog {
	list := func(kind owl.EntityKind) []display.EntityDisplay {
		var out []display.EntityDisplay
		for _, iri := range b.index.Declared(kind) {
			if filter != nil && !filter(iri) {
				continue
			}
			out = append(out, b.resolver.Entity(iri))
		}
		return out
	}
	return Catalog{
		Classes:              list(owl.Class),
		NamedIndividuals:     list(owl.NamedIndividual),
		ObjectProperties:     list(owl.ObjectProperty),
		AnnotationProperties: list(owl.AnnotationProperty),
		DataProperties:       list(owl.DataProperty),
	}
}

// Metadata builds the index page model for ont. Title, description and
// license take the first matching annotation; repeats and every other
// predicate go to the generic list.
func (b *Builder) Metadata(ont *owl.Ontology, filter Filter) Metadata {
	md := Metadata{
		IRI:        ont.IRI,
		VersionIRI: ont.VersionIRI,
		Imports:    ont.Imports,
		Sidebar:    b.Catalog(filter),
	}

	for _, a := range ont.Annotations {
		value, ok := relations.ValueText(a.Value)
		if !ok {
			continue
		}
		entry := b.collector.Entry(a.Property, value)

		switch b.routes.Role(string(a.Property)) {
		case vocabulary.RoleTitle:
			if md.Title == "" {
				md.Title = value
				continue
			}
		case vocabulary.RoleDescription:
			if md.Description == "" {
				md.Description = value
				continue
			}
		case vocabulary.RoleLicense:
			if md.License == "" {
				md.License = value
				continue
			}
		case vocabulary.RoleContributor:
			md.Contributors = append(md.Contributors, entry)
			continue
		}
		md.Annotations = append(md.Annotations, entry)
	}
	return md
}
