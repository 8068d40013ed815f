// Package owx reads OWL 2 XML serialization (.owx) into the owl model.
package owx

import (
	"encoding/xml"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/enioarz/ontology-server/errors"
	"github.com/enioarz/ontology-server/owl"
)

// element is a schema-less view of one XML element.
type element struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []element  `xml:",any"`
	Text     string     `xml:",chardata"`
}

func (e *element) attr(local string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

func (e *element) name() string {
	return e.XMLName.Local
}

// Reader decodes OWL/XML documents. Axiom types the renderer has no use for
// (keys, chains, property characteristics, SWRL rules) are skipped and counted.
type Reader struct {
	logger *slog.Logger
}

// NewReader creates a Reader. A nil logger uses slog.Default().
func NewReader(logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{logger: logger}
}

// ReadFile opens path and reads it.
func (r *Reader) ReadFile(path string) (*owl.Ontology, error) {
	f, err := os.Open(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil, errors.WrapFatal(err, "Reader", "ReadFile", "open ontology source")
	}
	if err != nil {
		// An editor may hold the file mid-save; the next rebuild can succeed.
		return nil, errors.WrapTransient(fmt.Errorf("%w: %w", errors.ErrSourceUnavailable, err),
			"Reader", "ReadFile", "open ontology source")
	}
	defer f.Close()

	ont, err := r.Read(f)
	if err != nil {
		return nil, err
	}
	r.logger.Info("Ontology loaded", "path", path, "iri", ont.IRI, "axioms", len(ont.Axioms))
	return ont, nil
}

// Read decodes one OWL/XML document.
func (r *Reader) Read(src io.Reader) (*owl.Ontology, error) {
	var root element
	if err := xml.NewDecoder(src).Decode(&root); err != nil {
		return nil, errors.WrapInvalid(fmt.Errorf("%w: %w", errors.ErrParsingFailed, err),
			"Reader", "Read", "decode OWL/XML")
	}
	if root.name() != "Ontology" {
		return nil, errors.WrapInvalid(
			fmt.Errorf("%w: root element is %q, want Ontology", errors.ErrInvalidData, root.name()),
			"Reader", "Read", "check root element")
	}

	d := &document{prefixes: make(map[string]string), skipped: make(map[string]int)}
	ont := &owl.Ontology{}

	if v, ok := root.attr("ontologyIRI"); ok {
		ont.IRI = owl.IRI(strings.TrimSpace(v))
	}
	if v, ok := root.attr("versionIRI"); ok {
		ont.VersionIRI = owl.IRI(strings.TrimSpace(v))
	}
	d.base = string(ont.IRI)
	if v, ok := root.attr("base"); ok {
		d.base = v
	}

	// Prefixes may appear anywhere before use, but in practice lead the document.
	for i := range root.Children {
		c := &root.Children[i]
		if c.name() != "Prefix" {
			continue
		}
		name, _ := c.attr("name")
		iri, _ := c.attr("IRI")
		d.prefixes[name] = iri
		ont.Prefixes = append(ont.Prefixes, owl.Prefix{Name: name, IRI: iri})
	}

	for i := range root.Children {
		c := &root.Children[i]
		switch c.name() {
		case "Prefix":
		case "Import":
			ont.Imports = append(ont.Imports, owl.IRI(d.resolve(strings.TrimSpace(c.Text))))
		case "Annotation":
			a, err := d.annotation(c)
			if err != nil {
				d.skip(c.name(), err, r.logger)
				continue
			}
			ont.Annotations = append(ont.Annotations, a)
		default:
			ax, ok, err := d.axiom(c)
			if err != nil {
				d.skip(c.name(), err, r.logger)
				continue
			}
			if ok {
				ont.Axioms = append(ont.Axioms, ax)
			}
		}
	}

	if len(d.skipped) > 0 {
		kinds := make([]string, 0, len(d.skipped))
		for k := range d.skipped {
			kinds = append(kinds, k)
		}
		sort.Strings(kinds)
		r.logger.Debug("Skipped axioms", "kinds", kinds, "total", d.total())
	}
	return ont, nil
}

type document struct {
	base     string
	prefixes map[string]string
	skipped  map[string]int
}

func (d *document) skip(kind string, err error, logger *slog.Logger) {
	d.skipped[kind]++
	if err != nil {
		logger.Warn("Skipping malformed axiom", "element", kind, "error", err)
	}
}

func (d *document) total() int {
	n := 0
	for _, v := range d.skipped {
		n += v
	}
	return n
}

// resolve makes a possibly relative IRI absolute against xml:base.
func (d *document) resolve(iri string) string {
	if d.base == "" {
		return iri
	}
	if strings.HasPrefix(iri, "#") {
		base, _, _ := strings.Cut(d.base, "#")
		return base + iri
	}
	u, err := url.Parse(iri)
	if err != nil || u.IsAbs() {
		return iri
	}
	b, err := url.Parse(d.base)
	if err != nil {
		return iri
	}
	return b.ResolveReference(u).String()
}

func (d *document) expand(curie string) (string, error) {
	prefix, local, found := strings.Cut(curie, ":")
	if !found {
		return "", fmt.Errorf("%w: abbreviated IRI %q has no prefix", errors.ErrInvalidData, curie)
	}
	ns, ok := d.prefixes[prefix]
	if !ok {
		return "", fmt.Errorf("%w: undeclared prefix %q", errors.ErrInvalidData, prefix)
	}
	return ns + local, nil
}

// entityIRI reads the IRI or abbreviatedIRI attribute of an entity element.
func (d *document) entityIRI(e *element) (owl.IRI, error) {
	if v, ok := e.attr("IRI"); ok {
		return owl.IRI(d.resolve(strings.TrimSpace(v))), nil
	}
	if v, ok := e.attr("abbreviatedIRI"); ok {
		iri, err := d.expand(strings.TrimSpace(v))
		return owl.IRI(iri), err
	}
	return "", fmt.Errorf("%w: <%s> has no IRI", errors.ErrInvalidData, e.name())
}

// children returns the element children with axiom annotations removed.
func children(e *element) []*element {
	out := make([]*element, 0, len(e.Children))
	for i := range e.Children {
		if e.Children[i].name() == "Annotation" {
			continue
		}
		out = append(out, &e.Children[i])
	}
	return out
}

func arity(e *element, kids []*element, n int) error {
	if len(kids) < n {
		return fmt.Errorf("%w: <%s> needs %d operands, has %d", errors.ErrInvalidData, e.name(), n, len(kids))
	}
	return nil
}

var declarationKinds = map[string]owl.EntityKind{
	"Class":              owl.Class,
	"ObjectProperty":     owl.ObjectProperty,
	"DataProperty":       owl.DataProperty,
	"AnnotationProperty": owl.AnnotationProperty,
	"NamedIndividual":    owl.NamedIndividual,
}

// axiom converts one top-level element. ok is false for elements that are
// skipped on purpose.
func (d *document) axiom(e *element) (owl.Axiom, bool, error) {
	kids := children(e)

	switch e.name() {
	case "Declaration":
		if err := arity(e, kids, 1); err != nil {
			return nil, false, err
		}
		kind, known := declarationKinds[kids[0].name()]
		if !known {
			return nil, false, nil // Datatype
		}
		iri, err := d.entityIRI(kids[0])
		if err != nil {
			return nil, false, err
		}
		return owl.Declaration{Kind: kind, IRI: iri}, true, nil

	case "SubClassOf":
		ces, err := d.classes(e, kids, 2)
		if err != nil {
			return nil, false, err
		}
		return owl.SubClassOf{Sub: ces[0], Super: ces[1]}, true, nil

	case "EquivalentClasses":
		ces, err := d.classes(e, kids, 2)
		if err != nil {
			return nil, false, err
		}
		return owl.EquivalentClasses{Classes: ces}, true, nil

	case "DisjointClasses":
		ces, err := d.classes(e, kids, 2)
		if err != nil {
			return nil, false, err
		}
		return owl.DisjointClasses{Classes: ces}, true, nil

	case "SubObjectPropertyOf":
		if err := arity(e, kids, 2); err != nil {
			return nil, false, err
		}
		if kids[0].name() == "ObjectPropertyChain" {
			d.skipped["ObjectPropertyChain"]++
			return nil, false, nil
		}
		sub, err := d.objectProperty(kids[0])
		if err != nil {
			return nil, false, err
		}
		sup, err := d.objectProperty(kids[1])
		if err != nil {
			return nil, false, err
		}
		return owl.SubObjectPropertyOf{Sub: sub, Super: sup}, true, nil

	case "SubDataPropertyOf", "SubAnnotationPropertyOf":
		if err := arity(e, kids, 2); err != nil {
			return nil, false, err
		}
		sub, err := d.entityIRI(kids[0])
		if err != nil {
			return nil, false, err
		}
		sup, err := d.entityIRI(kids[1])
		if err != nil {
			return nil, false, err
		}
		if e.name() == "SubDataPropertyOf" {
			return owl.SubDataPropertyOf{Sub: sub, Super: sup}, true, nil
		}
		return owl.SubAnnotationPropertyOf{Sub: sub, Super: sup}, true, nil

	case "InverseObjectProperties":
		if err := arity(e, kids, 2); err != nil {
			return nil, false, err
		}
		first, err := d.objectProperty(kids[0])
		if err != nil {
			return nil, false, err
		}
		second, err := d.objectProperty(kids[1])
		if err != nil {
			return nil, false, err
		}
		return owl.InverseObjectProperties{First: first, Second: second}, true, nil

	case "ObjectPropertyDomain", "ObjectPropertyRange":
		if err := arity(e, kids, 2); err != nil {
			return nil, false, err
		}
		p, err := d.objectProperty(kids[0])
		if err != nil {
			return nil, false, err
		}
		ce, err := d.class(kids[1])
		if err != nil {
			return nil, false, err
		}
		if e.name() == "ObjectPropertyDomain" {
			return owl.ObjectPropertyDomain{Property: p, Domain: ce}, true, nil
		}
		return owl.ObjectPropertyRange{Property: p, Range: ce}, true, nil

	case "DataPropertyDomain":
		if err := arity(e, kids, 2); err != nil {
			return nil, false, err
		}
		p, err := d.entityIRI(kids[0])
		if err != nil {
			return nil, false, err
		}
		ce, err := d.class(kids[1])
		if err != nil {
			return nil, false, err
		}
		return owl.DataPropertyDomain{Property: p, Domain: ce}, true, nil

	case "DataPropertyRange":
		if err := arity(e, kids, 2); err != nil {
			return nil, false, err
		}
		p, err := d.entityIRI(kids[0])
		if err != nil {
			return nil, false, err
		}
		return owl.DataPropertyRange{Property: p, Datatype: d.datatype(kids[1])}, true, nil

	case "ClassAssertion":
		if err := arity(e, kids, 2); err != nil {
			return nil, false, err
		}
		ce, err := d.class(kids[0])
		if err != nil {
			return nil, false, err
		}
		ind, err := d.individual(kids[1])
		if err != nil {
			return nil, false, err
		}
		return owl.ClassAssertion{Class: ce, Individual: ind}, true, nil

	case "AnnotationAssertion":
		if err := arity(e, kids, 3); err != nil {
			return nil, false, err
		}
		prop, err := d.entityIRI(kids[0])
		if err != nil {
			return nil, false, err
		}
		subject, err := d.subject(kids[1])
		if err != nil {
			return nil, false, err
		}
		value, err := d.value(kids[2])
		if err != nil {
			return nil, false, err
		}
		return owl.AnnotationAssertion{
			Subject:    subject,
			Annotation: owl.Annotation{Property: prop, Value: value},
		}, true, nil
	}

	d.skipped[e.name()]++
	return nil, false, nil
}

func (d *document) annotation(e *element) (owl.Annotation, error) {
	kids := children(e)
	if err := arity(e, kids, 2); err != nil {
		return owl.Annotation{}, err
	}
	prop, err := d.entityIRI(kids[0])
	if err != nil {
		return owl.Annotation{}, err
	}
	value, err := d.value(kids[1])
	if err != nil {
		return owl.Annotation{}, err
	}
	return owl.Annotation{Property: prop, Value: value}, nil
}

// subject reads an annotation subject: IRI, AbbreviatedIRI or AnonymousIndividual.
func (d *document) subject(e *element) (owl.Resource, error) {
	switch e.name() {
	case "IRI":
		return owl.Resource{IRI: owl.IRI(d.resolve(strings.TrimSpace(e.Text)))}, nil
	case "AbbreviatedIRI":
		iri, err := d.expand(strings.TrimSpace(e.Text))
		return owl.Resource{IRI: owl.IRI(iri)}, err
	case "AnonymousIndividual":
		id, _ := e.attr("nodeID")
		return owl.Resource{NodeID: id}, nil
	}
	return owl.Resource{}, fmt.Errorf("%w: unexpected annotation subject <%s>", errors.ErrInvalidData, e.name())
}

func (d *document) value(e *element) (owl.AnnotationValue, error) {
	switch e.name() {
	case "Literal":
		return d.literal(e), nil
	case "AnonymousIndividual":
		id, _ := e.attr("nodeID")
		return owl.AnonymousValue(id), nil
	}
	r, err := d.subject(e)
	if err != nil {
		return nil, err
	}
	return owl.IRIValue(r.IRI), nil
}

func (d *document) literal(e *element) owl.Literal {
	lit := owl.Literal{Text: e.Text}
	if v, ok := e.attr("lang"); ok {
		lit.Lang = v
	}
	if v, ok := e.attr("datatypeIRI"); ok {
		lit.Datatype = owl.IRI(d.resolve(v))
	}
	return lit
}

func (d *document) individual(e *element) (owl.Resource, error) {
	switch e.name() {
	case "NamedIndividual":
		iri, err := d.entityIRI(e)
		return owl.Resource{IRI: iri}, err
	case "AnonymousIndividual":
		id, _ := e.attr("nodeID")
		return owl.Resource{NodeID: id}, nil
	}
	return owl.Resource{}, fmt.Errorf("%w: expected individual, got <%s>", errors.ErrInvalidData, e.name())
}

func (d *document) objectProperty(e *element) (owl.ObjectPropertyExpression, error) {
	switch e.name() {
	case "ObjectProperty":
		iri, err := d.entityIRI(e)
		return owl.ObjectPropertyRef{IRI: iri}, err
	case "ObjectInverseOf":
		kids := children(e)
		if err := arity(e, kids, 1); err != nil {
			return nil, err
		}
		iri, err := d.entityIRI(kids[0])
		return owl.InverseObjectProperty{Of: iri}, err
	}
	return nil, fmt.Errorf("%w: expected object property, got <%s>", errors.ErrInvalidData, e.name())
}

// datatype returns the IRI of a named datatype, or "" for complex data ranges.
func (d *document) datatype(e *element) owl.IRI {
	if e.name() != "Datatype" {
		return ""
	}
	iri, err := d.entityIRI(e)
	if err != nil {
		return ""
	}
	return iri
}

func (d *document) classes(e *element, kids []*element, atLeast int) ([]owl.ClassExpression, error) {
	if err := arity(e, kids, atLeast); err != nil {
		return nil, err
	}
	out := make([]owl.ClassExpression, 0, len(kids))
	for _, k := range kids {
		ce, err := d.class(k)
		if err != nil {
			return nil, err
		}
		out = append(out, ce)
	}
	return out, nil
}

func (d *document) cardinality(e *element) (int, error) {
	v, ok := e.attr("cardinality")
	if !ok {
		return 0, fmt.Errorf("%w: <%s> has no cardinality", errors.ErrInvalidData, e.name())
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: <%s> cardinality %q", errors.ErrInvalidData, e.name(), v)
	}
	return n, nil
}

func (d *document) class(e *element) (owl.ClassExpression, error) {
	kids := children(e)

	switch e.name() {
	case "Class":
		iri, err := d.entityIRI(e)
		return owl.ClassRef{IRI: iri}, err

	case "ObjectIntersectionOf", "ObjectUnionOf":
		ops, err := d.classes(e, kids, 1)
		if err != nil {
			return nil, err
		}
		if e.name() == "ObjectIntersectionOf" {
			return owl.ObjectIntersectionOf{Operands: ops}, nil
		}
		return owl.ObjectUnionOf{Operands: ops}, nil

	case "ObjectComplementOf":
		if err := arity(e, kids, 1); err != nil {
			return nil, err
		}
		op, err := d.class(kids[0])
		return owl.ObjectComplementOf{Operand: op}, err

	case "ObjectOneOf":
		inds := make([]owl.Resource, 0, len(kids))
		for _, k := range kids {
			ind, err := d.individual(k)
			if err != nil {
				return nil, err
			}
			inds = append(inds, ind)
		}
		return owl.ObjectOneOf{Individuals: inds}, nil

	case "ObjectSomeValuesFrom", "ObjectAllValuesFrom":
		if err := arity(e, kids, 2); err != nil {
			return nil, err
		}
		p, err := d.objectProperty(kids[0])
		if err != nil {
			return nil, err
		}
		filler, err := d.class(kids[1])
		if err != nil {
			return nil, err
		}
		if e.name() == "ObjectSomeValuesFrom" {
			return owl.ObjectSomeValuesFrom{Property: p, Filler: filler}, nil
		}
		return owl.ObjectAllValuesFrom{Property: p, Filler: filler}, nil

	case "ObjectHasValue":
		if err := arity(e, kids, 2); err != nil {
			return nil, err
		}
		p, err := d.objectProperty(kids[0])
		if err != nil {
			return nil, err
		}
		ind, err := d.individual(kids[1])
		return owl.ObjectHasValue{Property: p, Individual: ind}, err

	case "ObjectHasSelf":
		if err := arity(e, kids, 1); err != nil {
			return nil, err
		}
		p, err := d.objectProperty(kids[0])
		return owl.ObjectHasSelf{Property: p}, err

	case "ObjectMinCardinality", "ObjectMaxCardinality", "ObjectExactCardinality":
		n, err := d.cardinality(e)
		if err != nil {
			return nil, err
		}
		if err := arity(e, kids, 1); err != nil {
			return nil, err
		}
		p, err := d.objectProperty(kids[0])
		if err != nil {
			return nil, err
		}
		var filler owl.ClassExpression
		if len(kids) > 1 {
			if filler, err = d.class(kids[1]); err != nil {
				return nil, err
			}
		}
		switch e.name() {
		case "ObjectMinCardinality":
			return owl.ObjectMinCardinality{N: n, Property: p, Filler: filler}, nil
		case "ObjectMaxCardinality":
			return owl.ObjectMaxCardinality{N: n, Property: p, Filler: filler}, nil
		default:
			return owl.ObjectExactCardinality{N: n, Property: p, Filler: filler}, nil
		}

	case "DataSomeValuesFrom", "DataAllValuesFrom":
		if err := arity(e, kids, 2); err != nil {
			return nil, err
		}
		p, err := d.entityIRI(kids[0])
		if err != nil {
			return nil, err
		}
		dt := d.datatype(kids[len(kids)-1])
		if e.name() == "DataSomeValuesFrom" {
			return owl.DataSomeValuesFrom{Property: p, Datatype: dt}, nil
		}
		return owl.DataAllValuesFrom{Property: p, Datatype: dt}, nil

	case "DataHasValue":
		if err := arity(e, kids, 2); err != nil {
			return nil, err
		}
		p, err := d.entityIRI(kids[0])
		if err != nil {
			return nil, err
		}
		return owl.DataHasValue{Property: p, Value: d.literal(kids[1])}, nil

	case "DataMinCardinality", "DataMaxCardinality", "DataExactCardinality":
		n, err := d.cardinality(e)
		if err != nil {
			return nil, err
		}
		if err := arity(e, kids, 1); err != nil {
			return nil, err
		}
		p, err := d.entityIRI(kids[0])
		if err != nil {
			return nil, err
		}
		var dt owl.IRI
		if len(kids) > 1 {
			dt = d.datatype(kids[1])
		}
		switch e.name() {
		case "DataMinCardinality":
			return owl.DataMinCardinality{N: n, Property: p, Datatype: dt}, nil
		case "DataMaxCardinality":
			return owl.DataMaxCardinality{N: n, Property: p, Datatype: dt}, nil
		default:
			return owl.DataExactCardinality{N: n, Property: p, Datatype: dt}, nil
		}
	}

	return nil, fmt.Errorf("%w: unknown class expression <%s>", errors.ErrInvalidData, e.name())
}
