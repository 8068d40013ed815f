package owl

// ClassExpression is one of the OWL 2 class expression forms below.
type ClassExpression interface {
	classExpression()
}

// ObjectPropertyExpression is a named ObjectPropertyRef or an InverseObjectProperty.
type ObjectPropertyExpression interface {
	objectPropertyExpression()
}

// ObjectPropertyRef names an object property.
type ObjectPropertyRef struct {
	IRI IRI
}

// InverseObjectProperty is ObjectInverseOf(Of).
type InverseObjectProperty struct {
	Of IRI
}

func (ObjectPropertyRef) objectPropertyExpression()     {}
func (InverseObjectProperty) objectPropertyExpression() {}

// ClassRef names a class.
type ClassRef struct {
	IRI IRI
}

type ObjectIntersectionOf struct {
	Operands []ClassExpression
}

type ObjectUnionOf struct {
	Operands []ClassExpression
}

type ObjectComplementOf struct {
	Operand ClassExpression
}

type ObjectOneOf struct {
	Individuals []Resource
}

type ObjectSomeValuesFrom struct {
	Property ObjectPropertyExpression
	Filler   ClassExpression
}

type ObjectAllValuesFrom struct {
	Property ObjectPropertyExpression
	Filler   ClassExpression
}

type ObjectHasValue struct {
	Property   ObjectPropertyExpression
	Individual Resource
}

type ObjectHasSelf struct {
	Property ObjectPropertyExpression
}

// ObjectMinCardinality and its siblings leave Filler nil when unqualified.
type ObjectMinCardinality struct {
	N        int
	Property ObjectPropertyExpression
	Filler   ClassExpression
}

type ObjectMaxCardinality struct {
	N        int
	Property ObjectPropertyExpression
	Filler   ClassExpression
}

type ObjectExactCardinality struct {
	N        int
	Property ObjectPropertyExpression
	Filler   ClassExpression
}

// DataSomeValuesFrom keeps only the datatype of the range; complex data
// ranges are read with an empty Datatype.
type DataSomeValuesFrom struct {
	Property IRI
	Datatype IRI
}

type DataAllValuesFrom struct {
	Property IRI
	Datatype IRI
}

type DataHasValue struct {
	Property IRI
	Value    Literal
}

type DataMinCardinality struct {
	N        int
	Property IRI
	Datatype IRI
}

type DataMaxCardinality struct {
	N        int
	Property IRI
	Datatype IRI
}

type DataExactCardinality struct {
	N        int
	Property IRI
	Datatype IRI
}

func (ClassRef) classExpression()               {}
func (ObjectIntersectionOf) classExpression()   {}
func (ObjectUnionOf) classExpression()          {}
func (ObjectComplementOf) classExpression()     {}
func (ObjectOneOf) classExpression()            {}
func (ObjectSomeValuesFrom) classExpression()   {}
func (ObjectAllValuesFrom) classExpression()    {}
func (ObjectHasValue) classExpression()         {}
func (ObjectHasSelf) classExpression()          {}
func (ObjectMinCardinality) classExpression()   {}
func (ObjectMaxCardinality) classExpression()   {}
func (ObjectExactCardinality) classExpression() {}
func (DataSomeValuesFrom) classExpression()     {}
func (DataAllValuesFrom) classExpression()      {}
func (DataHasValue) classExpression()           {}
func (DataMinCardinality) classExpression()     {}
func (DataMaxCardinality) classExpression()     {}
func (DataExactCardinality) classExpression()   {}

// NamedClass returns the IRI of an atomic class expression.
func NamedClass(ce ClassExpression) (IRI, bool) {
	if c, ok := ce.(ClassRef); ok {
		return c.IRI, true
	}
	return "", false
}

// NamedObjectProperty returns the IRI of a named object property expression.
func NamedObjectProperty(ope ObjectPropertyExpression) (IRI, bool) {
	if p, ok := ope.(ObjectPropertyRef); ok {
		return p.IRI, true
	}
	return "", false
}

// PropertyIRI returns the underlying property of ope, looking through an inverse.
func PropertyIRI(ope ObjectPropertyExpression) IRI {
	switch p := ope.(type) {
	case ObjectPropertyRef:
		return p.IRI
	case InverseObjectProperty:
		return p.Of
	default:
		return ""
	}
}
