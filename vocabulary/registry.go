package vocabulary

import (
	"sort"
)

// Role defines where an annotation value is rendered.
//
// Entity pages read the label, definition and example roles. The ontology
// index page reads title, description, license and contributor. Every other
// predicate, and any role the page does not read, lands in the generic
// annotation list.
type Role string

const (
	// RoleGeneric is the fallback for unrouted predicates.
	RoleGeneric Role = "generic"

	// RoleLabel feeds the label index and the entity page heading.
	//
	// Standard Mappings:
	//   - rdfs:label (RdfsLabel)
	RoleLabel Role = "label"

	// RoleDefinition is the entity's definition block.
	//
	// Standard Mappings:
	//   - skos:definition (SkosDefinition)
	RoleDefinition Role = "definition"

	// RoleExample is the entity's usage example.
	//
	// Standard Mappings:
	//   - skos:example (SkosExample)
	RoleExample Role = "example"

	// RoleTitle is the ontology title.
	//
	// Standard Mappings:
	//   - dcterms:title (DcTitle)
	RoleTitle Role = "title"

	// RoleDescription is the ontology description.
	RoleDescription Role = "description"

	// RoleLicense is the ontology license.
	RoleLicense Role = "license"

	// RoleContributor collects ontology contributors.
	//
	// Standard Mappings:
	//   - dc:contributor (DcElementsContributor)
	//   - dcterms:contributor (DcTermsContributor)
	RoleContributor Role = "contributor"
)

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// Routes is the predicate IRI to Role table shared by the entity page and
// ontology metadata builders. It is read-only once constructed.
type Routes struct {
	roles map[string]Role
}

// Option is a functional option for configuring the routing table.
type Option func(*Routes)

// WithRoute routes predicate iri to role, overriding any standard mapping.
//
// Example:
//
//	NewRoutes(WithRoute(SkosPrefLabel, RoleLabel))
func WithRoute(iri string, role Role) Option {
	return func(r *Routes) {
		r.roles[iri] = role
	}
}

// WithRoutes routes every IRI in iris to role.
func WithRoutes(role Role, iris ...string) Option {
	return func(r *Routes) {
		for _, iri := range iris {
			r.roles[iri] = role
		}
	}
}

// NewRoutes returns the standard routing table with opts applied on top.
func NewRoutes(opts ...Option) *Routes {
	r := &Routes{roles: map[string]Role{
		RdfsLabel:             RoleLabel,
		SkosDefinition:        RoleDefinition,
		SkosExample:           RoleExample,
		DcTitle:               RoleTitle,
		DcDescription:         RoleDescription,
		DcLicense:             RoleLicense,
		DcElementsContributor: RoleContributor,
		DcTermsContributor:    RoleContributor,
	}}

	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Role returns the role for predicate iri, RoleGeneric when unrouted.
func (r *Routes) Role(iri string) Role {
	if role, ok := r.roles[iri]; ok {
		return role
	}
	return RoleGeneric
}

// Predicates returns the IRIs routed to role in lexical order.
func (r *Routes) Predicates(role Role) []string {
	var out []string
	for iri, rr := range r.roles {
		if rr == role {
			out = append(out, iri)
		}
	}
	sort.Strings(out)
	return out
}
