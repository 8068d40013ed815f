package owl

// Axiom is one of the axiom forms below.
type Axiom interface {
	axiom()
}

// Declaration states that IRI is an entity of Kind.
type Declaration struct {
	Kind EntityKind
	IRI  IRI
}

// SubClassOf states that every Sub is a Super.
type SubClassOf struct {
	Sub   ClassExpression
	Super ClassExpression
}

type EquivalentClasses struct {
	Classes []ClassExpression
}

type DisjointClasses struct {
	Classes []ClassExpression
}

type SubObjectPropertyOf struct {
	Sub   ObjectPropertyExpression
	Super ObjectPropertyExpression
}

type SubDataPropertyOf struct {
	Sub   IRI
	Super IRI
}

type SubAnnotationPropertyOf struct {
	Sub   IRI
	Super IRI
}

type InverseObjectProperties struct {
	First  ObjectPropertyExpression
	Second ObjectPropertyExpression
}

type ObjectPropertyDomain struct {
	Property ObjectPropertyExpression
	Domain   ClassExpression
}

type ObjectPropertyRange struct {
	Property ObjectPropertyExpression
	Range    ClassExpression
}

type DataPropertyDomain struct {
	Property IRI
	Domain   ClassExpression
}

// DataPropertyRange keeps only a datatype range.
type DataPropertyRange struct {
	Property IRI
	Datatype IRI
}

type ClassAssertion struct {
	Class      ClassExpression
	Individual Resource
}

type AnnotationAssertion struct {
	Subject    Resource
	Annotation Annotation
}

func (Declaration) axiom()             {}
func (SubClassOf) axiom()              {}
func (EquivalentClasses) axiom()       {}
func (DisjointClasses) axiom()         {}
func (SubObjectPropertyOf) axiom()     {}
func (SubDataPropertyOf) axiom()       {}
func (SubAnnotationPropertyOf) axiom() {}
func (InverseObjectProperties) axiom() {}
func (ObjectPropertyDomain) axiom()    {}
func (ObjectPropertyRange) axiom()     {}
func (DataPropertyDomain) axiom()      {}
func (DataPropertyRange) axiom()       {}
func (ClassAssertion) axiom()          {}
func (AnnotationAssertion) axiom()     {}
