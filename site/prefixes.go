package site

import (
	"strings"

	"github.com/enioarz/ontology-server/errors"
	"github.com/enioarz/ontology-server/owl"
	"github.com/enioarz/ontology-server/vocabulary"
)

// Import is an imported ontology rendered under its own prefix.
type Import struct {
	IRI    string `json:"iri" yaml:"iri"`
	Suffix string `json:"suffix" yaml:"suffix"`
}

// Prefixes builds the prefix map for ont: the standard prefixes, then the
// document's own prefixes, then one prefix per import. namespace, usually
// the configured ontology IRI, becomes the default namespace and overrides
// any default the document declared. Without it a document lacking a
// default falls back to its ontology IRI.
func Prefixes(ont *owl.Ontology, namespace string, imports []Import) (*vocabulary.PrefixMap, error) {
	m := vocabulary.StandardPrefixes()

	for _, p := range ont.Prefixes {
		if err := m.Add(p.Name, p.IRI); err != nil {
			return nil, errors.Wrap(err, "Site", "Prefixes", "document prefix "+p.Name)
		}
	}
	for _, imp := range imports {
		if imp.Suffix == "" {
			continue
		}
		if err := m.Add(imp.Suffix, imp.IRI); err != nil {
			return nil, errors.Wrap(err, "Site", "Prefixes", "import prefix "+imp.Suffix)
		}
	}

	switch {
	case namespace != "":
		m.SetDefault(withSeparator(namespace, ont))
	case m.Default() == "" && ont.IRI != "":
		m.SetDefault(withSeparator(string(ont.IRI), ont))
	}
	return m, nil
}

// withSeparator completes a namespace that ends in neither "#" nor "/".
// The separator is the one most declared entities of ont use after it;
// "#" on a tie.
func withSeparator(ns string, ont *owl.Ontology) string {
	if strings.HasSuffix(ns, "#") || strings.HasSuffix(ns, "/") {
		return ns
	}
	hash, slash := 0, 0
	for _, ax := range ont.Axioms {
		decl, ok := ax.(owl.Declaration)
		if !ok {
			continue
		}
		switch {
		case strings.HasPrefix(string(decl.IRI), ns+"#"):
			hash++
		case strings.HasPrefix(string(decl.IRI), ns+"/"):
			slash++
		}
	}
	if slash > hash {
		return ns + "/"
	}
	return ns + "#"
}
