package page

import (
	"github.com/enioarz/ontology-server/display"
)

// Templates a page context is rendered with.
const (
	EntityTemplate   = "entity.html"
	OntologyTemplate = "ontology.html"
)

// Template context keys for entity pages.
const (
	KeyKind              = "kind"
	KeyIRI               = "iri"
	KeyIdentifier        = "identifier"
	KeyDisplay           = "display"
	KeyLabel             = "label"
	KeyDefinition        = "definition"
	KeyExample           = "example"
	KeyAnnotations       = "annotations"
	KeySuperClasses      = "superClasses"
	KeySubClasses        = "subClasses"
	KeyEquivalentClasses = "equivalentClasses"
	KeyInverseOps        = "inverseOps"
	KeyOpRange           = "opRange"
	KeyOpDomain          = "opDomain"
	KeyClassAssertions   = "classAssertions"
)

// Template context keys for the index page.
const (
	KeyVersion      = "version"
	KeyTitle        = "title"
	KeyDescription  = "description"
	KeyLicense      = "license"
	KeyContributors = "contributors"
	KeyImports      = "imports"
	KeySidebar      = "sidebar"
)

// Context is the value handed to the template engine.
type Context map[string]any

// Context flattens the page into template keys. Absent single values are
// nil so templates can test them with {{with}}.
func (p *EntityPage) Context() Context {
	return Context{
		KeyKind:              p.Kind.String(),
		KeyIRI:               string(p.Entity.IRI),
		KeyIdentifier:        p.Entity.Identifier,
		KeyDisplay:           p.Entity.Display,
		KeyLabel:             optional(p.Annotations.Label),
		KeyDefinition:        optional(p.Annotations.Definition),
		KeyExample:           optional(p.Annotations.Example),
		KeyAnnotations:       p.Annotations.Generic,
		KeySuperClasses:      p.Relationships.SuperClasses,
		KeySubClasses:        p.Relationships.SubClasses,
		KeyEquivalentClasses: p.Relationships.EquivalentClasses,
		KeyInverseOps:        p.Relationships.InverseProperties,
		KeyOpRange:           p.Relationships.Range,
		KeyOpDomain:          p.Relationships.Domain,
		KeyClassAssertions:   p.Relationships.ClassAssertions,
	}
}

// Context flattens the catalog into the five sidebar lists.
func (c Catalog) Context() Context {
	return Context{
		"classes":              c.Classes,
		"namedIndividuals":     c.NamedIndividuals,
		"objectProperties":     c.ObjectProperties,
		"annotationProperties": c.AnnotationProperties,
		"dataProperties":       c.DataProperties,
	}
}

// Context flattens the metadata into template keys.
func (m Metadata) Context() Context {
	imports := make([]string, len(m.Imports))
	for i, iri := range m.Imports {
		imports[i] = string(iri)
	}
	return Context{
		KeyIRI:          optional(string(m.IRI)),
		KeyVersion:      optional(string(m.VersionIRI)),
		KeyTitle:        optional(m.Title),
		KeyDescription:  optional(m.Description),
		KeyLicense:      optional(m.License),
		KeyContributors: orEmpty(m.Contributors),
		KeyAnnotations:  orEmpty(m.Annotations),
		KeyImports:      imports,
		KeySidebar:      m.Sidebar.Context(),
	}
}

func optional(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func orEmpty(entries []display.AnnotationEntry) []display.AnnotationEntry {
	if entries == nil {
		return []display.AnnotationEntry{}
	}
	return entries
}
