package site

import (
	"path"
	"strings"

	"github.com/enioarz/ontology-server/display"
)

// Layout maps shrunk identifiers to output paths.
//
// A bare identifier lands at "<id>.html". With imports rendered, an
// identifier "p:local" whose prefix p is an import suffix lands at
// "p/local.html". Everything else has no page of its own.
type Layout struct {
	suffixes map[string]bool
}

// NewLayout creates a layout. Imports only take part when renderImports is set.
func NewLayout(imports []Import, renderImports bool) *Layout {
	l := &Layout{suffixes: make(map[string]bool)}
	if renderImports {
		for _, imp := range imports {
			if imp.Suffix != "" {
				l.suffixes[imp.Suffix] = true
			}
		}
	}
	return l
}

// Path returns the output path for identifier.
func (l *Layout) Path(identifier string) (string, bool) {
	if identifier == "" {
		return "", false
	}
	prefix, local, qualified := strings.Cut(identifier, ":")
	if !qualified {
		if !safeSegment(identifier) {
			return "", false
		}
		return identifier + ".html", true
	}
	if !l.suffixes[prefix] || !safeSegment(local) {
		return "", false
	}
	return path.Join(prefix, local+".html"), true
}

// Suffixes returns the import suffixes that get their own section.
func (l *Layout) Suffixes() []string {
	out := make([]string, 0, len(l.suffixes))
	for s := range l.suffixes {
		out = append(out, s)
	}
	return sortedStrings(out)
}

// Linker returns a link rule for the template engine: entities with a page
// link to it under base, the rest link to their IRI.
func (l *Layout) Linker(base string) func(display.EntityDisplay) string {
	if base != "" && !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return func(ed display.EntityDisplay) string {
		if p, ok := l.Path(ed.Identifier); ok {
			return base + p
		}
		return string(ed.IRI)
	}
}

func safeSegment(s string) bool {
	return s != "" && s != "." && s != ".." && !strings.ContainsAny(s, "/\\:#?")
}
