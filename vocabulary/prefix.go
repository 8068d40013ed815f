package vocabulary

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/enioarz/ontology-server/errors"
)

// PrefixMap holds registered prefix to namespace pairs plus an optional
// default namespace. IRIs under the default namespace shrink to their bare
// local name.
//
// A PrefixMap is not safe for concurrent mutation. Build it once, then share
// it read-only.
type PrefixMap struct {
	namespaces map[string]string
	defaultNS  string
}

// NewPrefixMap returns an empty map.
func NewPrefixMap() *PrefixMap {
	return &PrefixMap{namespaces: make(map[string]string)}
}

var standardPrefixes = &PrefixMap{namespaces: map[string]string{
	"rdf":     RdfNamespace,
	"rdfs":    RdfsNamespace,
	"owl":     OwlNamespace,
	"xsd":     XsdNamespace,
	"skos":    SkosNamespace,
	"dc":      DcNamespace,
	"dcterms": DcTermsNamespace,
}}

// StandardPrefixes returns a fresh map seeded with rdf, rdfs, owl, xsd,
// skos, dc and dcterms.
func StandardPrefixes() *PrefixMap {
	return standardPrefixes.Clone()
}

// Add registers prefix for namespace, replacing any previous binding of the
// same prefix. An empty prefix sets the default namespace.
func (m *PrefixMap) Add(prefix, namespace string) error {
	if namespace == "" {
		return errors.WrapInvalid(
			fmt.Errorf("%w: empty namespace for prefix %q", errors.ErrInvalidData, prefix),
			"PrefixMap", "Add", "namespace validation")
	}
	if prefix == "" {
		m.SetDefault(namespace)
		return nil
	}
	if !validPrefix(prefix) {
		return errors.WrapInvalid(
			fmt.Errorf("%w: prefix %q", errors.ErrInvalidData, prefix),
			"PrefixMap", "Add", "prefix validation")
	}
	m.namespaces[prefix] = namespace
	return nil
}

// SetDefault sets the namespace whose members shrink to a bare local name.
func (m *PrefixMap) SetDefault(namespace string) {
	m.defaultNS = namespace
}

// Default returns the default namespace, or "" when none is set.
func (m *PrefixMap) Default() string {
	return m.defaultNS
}

// Namespace returns the namespace bound to prefix.
func (m *PrefixMap) Namespace(prefix string) (string, bool) {
	ns, ok := m.namespaces[prefix]
	return ns, ok
}

// Prefixes returns the registered prefixes in lexical order.
func (m *PrefixMap) Prefixes() []string {
	out := make([]string, 0, len(m.namespaces))
	for p := range m.namespaces {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Clone returns an independent copy.
func (m *PrefixMap) Clone() *PrefixMap {
	c := NewPrefixMap()
	for p, ns := range m.namespaces {
		c.namespaces[p] = ns
	}
	c.defaultNS = m.defaultNS
	return c
}

// TryShrink returns the compact form of iri and true, or "" and false when no
// namespace matches with a non-empty local part. The longest matching
// namespace wins; the default namespace wins ties.
func (m *PrefixMap) TryShrink(iri string) (string, bool) {
	best, bestPrefix := "", ""
	isDefault := false

	if m.defaultNS != "" && len(iri) > len(m.defaultNS) && strings.HasPrefix(iri, m.defaultNS) {
		best, isDefault = m.defaultNS, true
	}
	for _, p := range m.Prefixes() {
		ns := m.namespaces[p]
		if len(ns) <= len(best) || len(iri) <= len(ns) || !strings.HasPrefix(iri, ns) {
			continue
		}
		best, bestPrefix, isDefault = ns, p, false
	}

	if best == "" {
		return "", false
	}
	local := iri[len(best):]
	if isDefault {
		return local, true
	}
	return bestPrefix + ":" + local, true
}

// Shrink returns the compact form of iri, or iri unchanged when no namespace
// matches. It never fails.
func (m *PrefixMap) Shrink(iri string) string {
	if s, ok := m.TryShrink(iri); ok {
		return s
	}
	return iri
}

// Expand reverses Shrink. A bare name expands against the default namespace.
func (m *PrefixMap) Expand(curie string) (string, bool) {
	prefix, local, found := strings.Cut(curie, ":")
	if !found {
		if m.defaultNS == "" || curie == "" {
			return "", false
		}
		return m.defaultNS + curie, true
	}
	ns, ok := m.namespaces[prefix]
	if !ok {
		return "", false
	}
	return ns + local, true
}

func validPrefix(p string) bool {
	for i, r := range p {
		switch {
		case unicode.IsLetter(r), r == '_':
		case i > 0 && (unicode.IsDigit(r) || r == '-' || r == '.'):
		default:
			return false
		}
	}
	return true
}
