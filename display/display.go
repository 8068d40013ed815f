// Package display holds the render-side view of an ontology: resolved entity
// names, expression trees and annotation entries. Everything here is plain
// data handed to templates.
package display

import (
	"github.com/enioarz/ontology-server/owl"
)

// EntityDisplay names an entity for rendering. Identifier and Display are
// never empty.
type EntityDisplay struct {
	IRI        owl.IRI `json:"iri"`
	Identifier string  `json:"identifier"`
	Display    string  `json:"display"`
}

// NodeKind tags a Node.
type NodeKind string

const (
	KindSimple       NodeKind = "simple"
	KindAnd          NodeKind = "and"
	KindOr           NodeKind = "or"
	KindNot          NodeKind = "not"
	KindSome         NodeKind = "some"
	KindAll          NodeKind = "all"
	KindHasValue     NodeKind = "value"
	KindDataHasValue NodeKind = "data"
)

// Node is one element of a rendered class expression tree. Which fields are
// set depends on Kind:
//
//	simple  Entity
//	and/or  Children
//	not     Operand
//	some, all, value  Relation and Filler
//	data    Relation and Literal
type Node struct {
	Kind     NodeKind       `json:"kind"`
	Entity   *EntityDisplay `json:"entity,omitempty"`
	Children []Node         `json:"children,omitempty"`
	Operand  *Node          `json:"operand,omitempty"`
	Relation *Node          `json:"relation,omitempty"`
	Filler   *Node          `json:"filler,omitempty"`
	Literal  string         `json:"literal,omitempty"`
}

func Simple(e EntityDisplay) Node {
	return Node{Kind: KindSimple, Entity: &e}
}

func And(children ...Node) Node {
	return Node{Kind: KindAnd, Children: children}
}

func Or(children ...Node) Node {
	return Node{Kind: KindOr, Children: children}
}

func Not(operand Node) Node {
	return Node{Kind: KindNot, Operand: &operand}
}

func SomeValuesFrom(relation, filler Node) Node {
	return Node{Kind: KindSome, Relation: &relation, Filler: &filler}
}

func AllValuesFrom(relation, filler Node) Node {
	return Node{Kind: KindAll, Relation: &relation, Filler: &filler}
}

func HasValue(relation, filler Node) Node {
	return Node{Kind: KindHasValue, Relation: &relation, Filler: &filler}
}

func DataHasValue(property Node, literal string) Node {
	return Node{Kind: KindDataHasValue, Relation: &property, Literal: literal}
}

// IsSimple reports whether n is an atomic entity reference.
func (n Node) IsSimple() bool {
	return n.Kind == KindSimple && n.Entity != nil
}

// AnnotationEntry is one rendered annotation.
type AnnotationEntry struct {
	PropertyIRI     owl.IRI `json:"propertyIri"`
	PropertyDisplay string  `json:"propertyDisplay"`
	Value           string  `json:"value"`
}
