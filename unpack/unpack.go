// Package unpack converts class expressions and object property expressions
// into display trees.
package unpack

import (
	"fmt"

	"github.com/enioarz/ontology-server/display"
	"github.com/enioarz/ontology-server/errors"
	"github.com/enioarz/ontology-server/owl"
	"github.com/enioarz/ontology-server/resolve"
)

// Unpacker renders expressions through a resolver.
type Unpacker struct {
	resolver *resolve.Resolver
}

// New creates an Unpacker.
func New(resolver *resolve.Resolver) *Unpacker {
	return &Unpacker{resolver: resolver}
}

func unsupported(construct string) error {
	return &errors.UnsupportedConstructError{Construct: construct}
}

// ClassExpression unpacks ce recursively. Cardinality restrictions, self
// restrictions, enumerations, data range restrictions and value restrictions
// on anonymous individuals return an *errors.UnsupportedConstructError; the
// construct is never dropped silently.
func (u *Unpacker) ClassExpression(ce owl.ClassExpression) (display.Node, error) {
	switch c := ce.(type) {
	case owl.ClassRef:
		return display.Simple(u.resolver.Entity(c.IRI)), nil

	case owl.ObjectIntersectionOf:
		children, err := u.all(c.Operands)
		if err != nil {
			return display.Node{}, err
		}
		return display.And(children...), nil

	case owl.ObjectUnionOf:
		children, err := u.all(c.Operands)
		if err != nil {
			return display.Node{}, err
		}
		return display.Or(children...), nil

	case owl.ObjectComplementOf:
		operand, err := u.ClassExpression(c.Operand)
		if err != nil {
			return display.Node{}, err
		}
		return display.Not(operand), nil

	case owl.ObjectSomeValuesFrom:
		rel, filler, err := u.restriction(c.Property, c.Filler)
		if err != nil {
			return display.Node{}, err
		}
		return display.SomeValuesFrom(rel, filler), nil

	case owl.ObjectAllValuesFrom:
		rel, filler, err := u.restriction(c.Property, c.Filler)
		if err != nil {
			return display.Node{}, err
		}
		return display.AllValuesFrom(rel, filler), nil

	case owl.ObjectHasValue:
		if !c.Individual.Named() {
			return display.Node{}, unsupported("ObjectHasValue with anonymous individual")
		}
		rel, err := u.ObjectPropertyExpression(c.Property)
		if err != nil {
			return display.Node{}, err
		}
		return display.HasValue(rel, display.Simple(u.resolver.Entity(c.Individual.IRI))), nil

	case owl.DataHasValue:
		return display.DataHasValue(display.Simple(u.resolver.Entity(c.Property)), c.Value.Text), nil

	case owl.ObjectOneOf:
		return display.Node{}, unsupported("ObjectOneOf")
	case owl.ObjectHasSelf:
		return display.Node{}, unsupported("ObjectHasSelf")
	case owl.ObjectMinCardinality:
		return display.Node{}, unsupported("ObjectMinCardinality")
	case owl.ObjectMaxCardinality:
		return display.Node{}, unsupported("ObjectMaxCardinality")
	case owl.ObjectExactCardinality:
		return display.Node{}, unsupported("ObjectExactCardinality")
	case owl.DataSomeValuesFrom:
		return display.Node{}, unsupported("DataSomeValuesFrom")
	case owl.DataAllValuesFrom:
		return display.Node{}, unsupported("DataAllValuesFrom")
	case owl.DataMinCardinality:
		return display.Node{}, unsupported("DataMinCardinality")
	case owl.DataMaxCardinality:
		return display.Node{}, unsupported("DataMaxCardinality")
	case owl.DataExactCardinality:
		return display.Node{}, unsupported("DataExactCardinality")
	case nil:
		return display.Node{}, unsupported("empty class expression")
	}
	return display.Node{}, unsupported(fmt.Sprintf("%T", ce))
}

// ObjectPropertyExpression renders a named property as a simple node. An
// inverse renders as the property it inverts.
func (u *Unpacker) ObjectPropertyExpression(ope owl.ObjectPropertyExpression) (display.Node, error) {
	switch p := ope.(type) {
	case owl.ObjectPropertyRef:
		return display.Simple(u.resolver.Entity(p.IRI)), nil
	case owl.InverseObjectProperty:
		return display.Simple(u.resolver.Entity(p.Of)), nil
	case nil:
		return display.Node{}, unsupported("empty object property expression")
	}
	return display.Node{}, unsupported(fmt.Sprintf("%T", ope))
}

func (u *Unpacker) all(ces []owl.ClassExpression) ([]display.Node, error) {
	out := make([]display.Node, 0, len(ces))
	for _, ce := range ces {
		n, err := u.ClassExpression(ce)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func (u *Unpacker) restriction(p owl.ObjectPropertyExpression, filler owl.ClassExpression) (display.Node, display.Node, error) {
	rel, err := u.ObjectPropertyExpression(p)
	if err != nil {
		return display.Node{}, display.Node{}, err
	}
	f, err := u.ClassExpression(filler)
	if err != nil {
		return display.Node{}, display.Node{}, err
	}
	return rel, f, nil
}
