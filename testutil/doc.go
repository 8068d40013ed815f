// Package testutil holds fixtures shared by package tests: builders for
// axioms under a small zoo ontology, the same ontology as OWL/XML, and a
// recording template renderer.
package testutil
