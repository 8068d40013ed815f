// Package relations derives, for one entity, the relationships and
// annotations asserted about it.
package relations

import (
	"github.com/enioarz/ontology-server/display"
	"github.com/enioarz/ontology-server/errors"
	"github.com/enioarz/ontology-server/owl"
	"github.com/enioarz/ontology-server/resolve"
	"github.com/enioarz/ontology-server/unpack"
	"github.com/enioarz/ontology-server/vocabulary"
)

// Set holds the relationships asserted about one entity. Only explicitly
// asserted axioms contribute; nothing is inferred.
type Set struct {
	SuperClasses      []display.Node
	SubClasses        []display.Node
	EquivalentClasses []display.Node
	InverseProperties []display.Node
	Domain            *display.Node
	Range             *display.Node
	ClassAssertions   []display.Node
	// Combined is set when Domain or Range joins several axioms with and.
	Combined bool
}

// Annotations holds the routed annotations of one entity. Empty strings mean
// absent.
type Annotations struct {
	Label      string
	Definition string
	Example    string
	Generic    []display.AnnotationEntry
}

// Collector reads relationships from a shared axiom index.
type Collector struct {
	index    *owl.Index
	resolver *resolve.Resolver
	unpacker *unpack.Unpacker
	routes   *vocabulary.Routes
}

// NewCollector creates a Collector. A nil routes uses vocabulary.NewRoutes().
func NewCollector(index *owl.Index, resolver *resolve.Resolver, routes *vocabulary.Routes) *Collector {
	if routes == nil {
		routes = vocabulary.NewRoutes()
	}
	return &Collector{
		index:    index,
		resolver: resolver,
		unpacker: unpack.New(resolver),
		routes:   routes,
	}
}

// Relationships collects the relationship set for target. It fails with an
// unsupported construct error when any contributing expression cannot be
// rendered.
func (c *Collector) Relationships(target owl.IRI) (Set, error) {
	var (
		set     Set
		domains []display.Node
		ranges  []display.Node
	)

	for _, ax := range c.index.Referencing(target) {
		var err error
		switch a := ax.(type) {
		case owl.SubClassOf:
			sub, subNamed := owl.NamedClass(a.Sub)
			sup, supNamed := owl.NamedClass(a.Super)
			if subNamed && sub == target {
				set.SuperClasses, err = c.appendClass(set.SuperClasses, a.Super)
			}
			if err == nil && supNamed && sup == target {
				set.SubClasses, err = c.appendClass(set.SubClasses, a.Sub)
			}

		case owl.SubObjectPropertyOf:
			sub, subNamed := owl.NamedObjectProperty(a.Sub)
			sup, supNamed := owl.NamedObjectProperty(a.Super)
			if subNamed && supNamed {
				set.SuperClasses, set.SubClasses = c.hierarchy(set.SuperClasses, set.SubClasses, target, sub, sup)
			}

		case owl.SubDataPropertyOf:
			set.SuperClasses, set.SubClasses = c.hierarchy(set.SuperClasses, set.SubClasses, target, a.Sub, a.Super)

		case owl.SubAnnotationPropertyOf:
			set.SuperClasses, set.SubClasses = c.hierarchy(set.SuperClasses, set.SubClasses, target, a.Sub, a.Super)

		case owl.EquivalentClasses:
			if !containsClass(a.Classes, target) {
				continue
			}
			for _, member := range a.Classes {
				if iri, ok := owl.NamedClass(member); ok && iri == target {
					continue
				}
				if set.EquivalentClasses, err = c.appendClass(set.EquivalentClasses, member); err != nil {
					break
				}
			}

		case owl.InverseObjectProperties:
			first, firstNamed := owl.NamedObjectProperty(a.First)
			second, secondNamed := owl.NamedObjectProperty(a.Second)
			var other owl.ObjectPropertyExpression
			switch {
			case firstNamed && first == target:
				other = a.Second
			case secondNamed && second == target:
				other = a.First
			default:
				continue
			}
			var n display.Node
			if n, err = c.unpacker.ObjectPropertyExpression(other); err == nil {
				set.InverseProperties = append(set.InverseProperties, n)
			}

		case owl.ObjectPropertyDomain:
			if p, ok := owl.NamedObjectProperty(a.Property); ok && p == target {
				domains, err = c.appendClass(domains, a.Domain)
			}

		case owl.ObjectPropertyRange:
			if p, ok := owl.NamedObjectProperty(a.Property); ok && p == target {
				ranges, err = c.appendClass(ranges, a.Range)
			}

		case owl.DataPropertyDomain:
			if a.Property == target {
				domains, err = c.appendClass(domains, a.Domain)
			}

		case owl.DataPropertyRange:
			if a.Property == target && a.Datatype != "" {
				ranges = append(ranges, display.Simple(c.resolver.Entity(a.Datatype)))
			}

		case owl.ClassAssertion:
			if a.Individual.Named() && a.Individual.IRI == target {
				set.ClassAssertions, err = c.appendClass(set.ClassAssertions, a.Class)
			}
		}

		if err != nil {
			return Set{}, errors.Wrap(err, "Collector", "Relationships", "unpack "+string(target))
		}
	}

	set.Domain = combine(domains)
	set.Range = combine(ranges)
	set.Combined = len(domains) > 1 || len(ranges) > 1
	return set, nil
}

// Annotations routes the annotation assertions whose subject is target. The
// label field carries the label the resolver chose; other label assertions,
// repeated definitions and examples, and every non-entity role fall into the
// generic list. Anonymous values are skipped.
func (c *Collector) Annotations(target owl.IRI) Annotations {
	var out Annotations
	chosen, hasLabel := c.resolver.HasLabel(target)

	for _, ax := range c.index.Referencing(target) {
		aa, ok := ax.(owl.AnnotationAssertion)
		if !ok || aa.Subject.IRI != target {
			continue
		}
		value, ok := ValueText(aa.Annotation.Value)
		if !ok {
			continue
		}
		_, isLiteral := aa.Annotation.Value.(owl.Literal)

		switch c.routes.Role(string(aa.Annotation.Property)) {
		case vocabulary.RoleLabel:
			if hasLabel && isLiteral && out.Label == "" && value == chosen {
				out.Label = value
				continue
			}
		case vocabulary.RoleDefinition:
			if out.Definition == "" {
				out.Definition = value
				continue
			}
		case vocabulary.RoleExample:
			if out.Example == "" {
				out.Example = value
				continue
			}
		}
		out.Generic = append(out.Generic, c.Entry(aa.Annotation.Property, value))
	}
	return out
}

// Entry builds a generic annotation entry.
func (c *Collector) Entry(property owl.IRI, value string) display.AnnotationEntry {
	return display.AnnotationEntry{
		PropertyIRI:     property,
		PropertyDisplay: c.resolver.Shrink(property),
		Value:           value,
	}
}

// ValueText returns the rendered text of an annotation value: the literal
// text or the IRI. Anonymous values have no text.
func ValueText(v owl.AnnotationValue) (string, bool) {
	switch val := v.(type) {
	case owl.Literal:
		return val.Text, true
	case owl.IRIValue:
		return string(val), true
	default:
		return "", false
	}
}

func (c *Collector) appendClass(list []display.Node, ce owl.ClassExpression) ([]display.Node, error) {
	n, err := c.unpacker.ClassExpression(ce)
	if err != nil {
		return list, err
	}
	return append(list, n), nil
}

// hierarchy applies the super/sub rule to a pair of named properties.
func (c *Collector) hierarchy(supers, subs []display.Node, target, sub, sup owl.IRI) ([]display.Node, []display.Node) {
	if sub == target {
		supers = append(supers, display.Simple(c.resolver.Entity(sup)))
	}
	if sup == target {
		subs = append(subs, display.Simple(c.resolver.Entity(sub)))
	}
	return supers, subs
}

func containsClass(ces []owl.ClassExpression, target owl.IRI) bool {
	for _, ce := range ces {
		if iri, ok := owl.NamedClass(ce); ok && iri == target {
			return true
		}
	}
	return false
}

// combine joins several domain or range expressions into one intersection,
// in axiom order. No axiom overrides another.
func combine(nodes []display.Node) *display.Node {
	switch len(nodes) {
	case 0:
		return nil
	case 1:
		return &nodes[0]
	default:
		n := display.And(nodes...)
		return &n
	}
}
