package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enioarz/ontology-server/errors"
	"github.com/enioarz/ontology-server/owl"
	"github.com/enioarz/ontology-server/site"
	"github.com/enioarz/ontology-server/testutil"
)

func writeZoo(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "zoo.owx")
	require.NoError(t, os.WriteFile(path, []byte(testutil.ZooOWX), 0o600))
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.Execute()
	return stdout.String(), err
}

// The OWL/XML fixture gives Cat an exact cardinality restriction, so its
// page fails while the rest of the site builds.
func TestBuildCommand(t *testing.T) {
	src := writeZoo(t)
	out := filepath.Join(t.TempDir(), "public")
	metrics := filepath.Join(t.TempDir(), "build.prom")

	stdout, err := runCLI(t, "build", src, "-o", out, "--title", "Zoo Docs", "--metrics-file", metrics)
	require.NoError(t, err)
	assert.Contains(t, stdout, "1 failures")

	for _, name := range []string{"index.html", "Animal.html", filepath.Join("static", "style.css")} {
		assert.FileExists(t, filepath.Join(out, name))
	}
	assert.NoFileExists(t, filepath.Join(out, "Cat.html"))

	index, err := os.ReadFile(filepath.Join(out, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(index), testutil.ZooTitle)
	assert.Contains(t, string(index), `href="Animal.html"`)

	animal, err := os.ReadFile(filepath.Join(out, "Animal.html"))
	require.NoError(t, err)
	assert.Contains(t, string(animal), "Zoo Docs")

	prom, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "hyppo_build_pages_total")
	assert.Contains(t, string(prom), `hyppo_build_failures_total{class="invalid"} 1`)
	assert.Contains(t, string(prom), "hyppo_output_documents_total")
}

func TestBuildCommand_ConfigFile(t *testing.T) {
	src := writeZoo(t)
	dir := t.TempDir()
	out := filepath.Join(dir, "site")
	cfgPath := filepath.Join(dir, "hyppo.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("ontology:\n  source: "+src+"\nbuild:\n  output: "+out+"\n"), 0o600))

	_, err := runCLI(t, "build", "--config", cfgPath)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(out, "index.html"))
}

func TestBuildCommand_Strict(t *testing.T) {
	src := writeZoo(t)
	out := filepath.Join(t.TempDir(), "public")

	_, err := runCLI(t, "build", src, "-o", out, "--strict")
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
	assert.True(t, errors.IsUnsupportedConstruct(err))
	assert.FileExists(t, filepath.Join(out, "index.html"), "output is written before the strict check")
}

func TestBuildCommand_CustomTemplates(t *testing.T) {
	src := writeZoo(t)
	templates := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(templates, "entity.html"), []byte(`{{.display.NoSuchField}}`), 0o600))

	out := filepath.Join(t.TempDir(), "public")
	_, err := runCLI(t, "build", src, "-o", out, "--templates", templates, "--strict")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrTemplateRender)
	assert.FileExists(t, filepath.Join(out, "index.html"))
	assert.NoFileExists(t, filepath.Join(out, "Animal.html"))
}

func TestBuildCommand_Errors(t *testing.T) {
	_, err := runCLI(t, "build", "-o", t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err), "missing source")

	src := writeZoo(t)
	_, err = runCLI(t, "build", src, "-o", t.TempDir(), "--import", "nocolon")
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))

	_, err = runCLI(t, "build", src, "-o", t.TempDir(), "--log-level", "loud")
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))

	_, err = runCLI(t, "build", src, "-o", t.TempDir(), "--templates", filepath.Join(t.TempDir(), "none"))
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
}

func TestValidateCommand(t *testing.T) {
	src := writeZoo(t)
	stdout, err := runCLI(t, "validate", src)
	require.Error(t, err)
	assert.True(t, errors.IsUnsupportedConstruct(err))
	assert.Contains(t, stdout, "http://example.org/zoo#Cat [invalid]")
}

func TestPrintSummary(t *testing.T) {
	report := &site.Report{ID: "b1", Pages: 4, Documents: 5}

	var buf bytes.Buffer
	printSummary(&buf, report, "public")
	assert.Equal(t, "build b1: 4 pages, 5 documents, 0 failures in 0s\noutput: public\n", buf.String())

	buf.Reset()
	report.Combined = []owl.IRI{"http://example.org/zoo#eats"}
	printSummary(&buf, report, "")
	assert.Contains(t, buf.String(), "1 properties have several domain or range axioms; their pages show the intersection\n")
}

func TestVersionCommand(t *testing.T) {
	stdout, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, appName+" "+Version)
}

func TestSetupLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := setupLogger("debug", "json", &buf)
	logger.Debug("hello")
	assert.Contains(t, buf.String(), `"service":"hyppo"`)
	assert.Contains(t, buf.String(), `"source"`)

	buf.Reset()
	logger = setupLogger("warn", "text", &buf)
	logger.Info("hidden")
	assert.Empty(t, buf.String())
}
