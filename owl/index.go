package owl

// Index answers "which axioms mention this IRI" without rescanning the axiom
// set. It is built once per build and never mutated, so it can be shared by
// concurrent page builders.
type Index struct {
	axioms   []Axiom
	byIRI    map[IRI][]int
	declared map[EntityKind][]IRI
	kinds    map[IRI][]EntityKind
}

// NewIndex indexes axioms in a single pass. Axiom order is preserved in every
// lookup.
func NewIndex(axioms []Axiom) *Index {
	ix := &Index{
		axioms:   axioms,
		byIRI:    make(map[IRI][]int),
		declared: make(map[EntityKind][]IRI),
		kinds:    make(map[IRI][]EntityKind),
	}

	seen := make(map[EntityKind]map[IRI]bool)
	for i, ax := range axioms {
		for _, iri := range Signature(ax) {
			ix.byIRI[iri] = append(ix.byIRI[iri], i)
		}

		d, ok := ax.(Declaration)
		if !ok || d.Kind == Undefined {
			continue
		}
		ix.kinds[d.IRI] = append(ix.kinds[d.IRI], d.Kind)
		if seen[d.Kind] == nil {
			seen[d.Kind] = make(map[IRI]bool)
		}
		if !seen[d.Kind][d.IRI] {
			seen[d.Kind][d.IRI] = true
			ix.declared[d.Kind] = append(ix.declared[d.Kind], d.IRI)
		}
	}
	return ix
}

// Len returns the number of indexed axioms.
func (ix *Index) Len() int {
	return len(ix.axioms)
}

// Axioms returns every axiom in source order. The slice must not be modified.
func (ix *Index) Axioms() []Axiom {
	return ix.axioms
}

// Referencing returns the axioms whose signature contains iri, in source order.
func (ix *Index) Referencing(iri IRI) []Axiom {
	positions := ix.byIRI[iri]
	out := make([]Axiom, len(positions))
	for i, p := range positions {
		out[i] = ix.axioms[p]
	}
	return out
}

// Declared returns the IRIs declared with kind, in first-declaration order.
func (ix *Index) Declared(kind EntityKind) []IRI {
	return ix.declared[kind]
}

// Kinds returns every kind iri is declared with, in declaration order,
// duplicates included.
func (ix *Index) Kinds(iri IRI) []EntityKind {
	return ix.kinds[iri]
}

// Signature returns the distinct IRIs an axiom mentions, nested expressions
// included, in order of first appearance.
func Signature(ax Axiom) []IRI {
	s := &signature{seen: make(map[IRI]bool)}
	switch a := ax.(type) {
	case Declaration:
		s.add(a.IRI)
	case SubClassOf:
		s.class(a.Sub)
		s.class(a.Super)
	case EquivalentClasses:
		for _, c := range a.Classes {
			s.class(c)
		}
	case DisjointClasses:
		for _, c := range a.Classes {
			s.class(c)
		}
	case SubObjectPropertyOf:
		s.property(a.Sub)
		s.property(a.Super)
	case SubDataPropertyOf:
		s.add(a.Sub)
		s.add(a.Super)
	case SubAnnotationPropertyOf:
		s.add(a.Sub)
		s.add(a.Super)
	case InverseObjectProperties:
		s.property(a.First)
		s.property(a.Second)
	case ObjectPropertyDomain:
		s.property(a.Property)
		s.class(a.Domain)
	case ObjectPropertyRange:
		s.property(a.Property)
		s.class(a.Range)
	case DataPropertyDomain:
		s.add(a.Property)
		s.class(a.Domain)
	case DataPropertyRange:
		s.add(a.Property)
		s.add(a.Datatype)
	case ClassAssertion:
		s.class(a.Class)
		s.add(a.Individual.IRI)
	case AnnotationAssertion:
		s.add(a.Subject.IRI)
		s.add(a.Annotation.Property)
		if v, ok := a.Annotation.Value.(IRIValue); ok {
			s.add(IRI(v))
		}
	}
	return s.iris
}

type signature struct {
	iris []IRI
	seen map[IRI]bool
}

func (s *signature) add(iri IRI) {
	if iri == "" || s.seen[iri] {
		return
	}
	s.seen[iri] = true
	s.iris = append(s.iris, iri)
}

func (s *signature) property(ope ObjectPropertyExpression) {
	s.add(PropertyIRI(ope))
}

func (s *signature) class(ce ClassExpression) {
	switch c := ce.(type) {
	case ClassRef:
		s.add(c.IRI)
	case ObjectIntersectionOf:
		for _, op := range c.Operands {
			s.class(op)
		}
	case ObjectUnionOf:
		for _, op := range c.Operands {
			s.class(op)
		}
	case ObjectComplementOf:
		s.class(c.Operand)
	case ObjectOneOf:
		for _, ind := range c.Individuals {
			s.add(ind.IRI)
		}
	case ObjectSomeValuesFrom:
		s.property(c.Property)
		s.class(c.Filler)
	case ObjectAllValuesFrom:
		s.property(c.Property)
		s.class(c.Filler)
	case ObjectHasValue:
		s.property(c.Property)
		s.add(c.Individual.IRI)
	case ObjectHasSelf:
		s.property(c.Property)
	case ObjectMinCardinality:
		s.property(c.Property)
		s.class(c.Filler)
	case ObjectMaxCardinality:
		s.property(c.Property)
		s.class(c.Filler)
	case ObjectExactCardinality:
		s.property(c.Property)
		s.class(c.Filler)
	case DataSomeValuesFrom:
		s.add(c.Property)
		s.add(c.Datatype)
	case DataAllValuesFrom:
		s.add(c.Property)
		s.add(c.Datatype)
	case DataHasValue:
		s.add(c.Property)
	case DataMinCardinality:
		s.add(c.Property)
		s.add(c.Datatype)
	case DataMaxCardinality:
		s.add(c.Property)
		s.add(c.Datatype)
	case DataExactCardinality:
		s.add(c.Property)
		s.add(c.Datatype)
	}
}
