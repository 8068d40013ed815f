package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enioarz/ontology-server/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoader_Defaults(t *testing.T) {
	t.Setenv("HYPPO_ONTOLOGY_IRI", "http://example.org/zoo")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, "http://example.org/zoo", cfg.Ontology.IRI)
	assert.Equal(t, "public", cfg.Build.Output)
	assert.Equal(t, 4, cfg.Build.Workers)
	assert.Equal(t, "en", cfg.Language)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoader_LoadYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "hyppo.yaml", `
ontology:
  iri: http://example.org/zoo
  source: zoo.owx
title: Zoo
imports:
  - iri: http://example.org/habitat#
    suffix: hab
annotations:
  label:
    - http://example.org/vocab#name
build:
  output: site
  render_imports: true
  workers: 2
log:
  level: debug
`)

	cfg, err := NewLoader().LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "zoo.owx", cfg.Ontology.Source)
	assert.Equal(t, "Zoo", cfg.Title)
	require.Len(t, cfg.Imports, 1)
	assert.Equal(t, "hab", cfg.Imports[0].Suffix)
	assert.Equal(t, []string{"http://example.org/vocab#name"}, cfg.Annotations.Label)
	assert.Equal(t, "site", cfg.Build.Output)
	assert.True(t, cfg.Build.RenderImports)
	assert.Equal(t, 2, cfg.Build.Workers)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format, "unset keys keep their defaults")
}

func TestLoader_LayersOverride(t *testing.T) {
	dir := t.TempDir()
	base := writeFile(t, dir, "base.json", `{
  "ontology": {"iri": "http://example.org/zoo"},
  "title": "Base",
  "build": {"output": "base", "workers": 8}
}`)
	override := writeFile(t, dir, "override.yml", "build:\n  output: override\n")

	l := NewLoader()
	l.AddLayer(base)
	l.AddLayer(override)
	cfg, err := l.Load()
	require.NoError(t, err)

	assert.Equal(t, "Base", cfg.Title)
	assert.Equal(t, "override", cfg.Build.Output)
	assert.Equal(t, 8, cfg.Build.Workers)
}

func TestLoader_SchemaRejectsFiles(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{name: "unknown key", file: "a.yaml", content: "ontology:\n  iri: http://example.org/zoo\nthemes: dark\n"},
		{name: "wrong type", file: "b.json", content: `{"build": {"workers": "many"}}`},
		{name: "bad enum", file: "c.yaml", content: "log:\n  format: xml\n"},
		{name: "import without iri", file: "d.yaml", content: "imports:\n  - suffix: hab\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), tt.file, tt.content)
			_, err := NewLoader().LoadFile(path)
			require.Error(t, err)
			assert.True(t, errors.IsInvalid(err))
			assert.ErrorIs(t, err, errors.ErrInvalidConfig)
		})
	}
}

func TestLoader_FileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := NewLoader().LoadFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrConfigNotFound)

	toml := writeFile(t, dir, "hyppo.toml", "title = 'x'")
	_, err = NewLoader().LoadFile(toml)
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))

	broken := writeFile(t, dir, "broken.json", `{"title": `)
	_, err = NewLoader().LoadFile(broken)
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
}

func TestLoader_EnvOverrides(t *testing.T) {
	path := writeFile(t, t.TempDir(), "hyppo.yaml", "ontology:\n  iri: http://example.org/zoo\ntitle: File\n")

	t.Setenv("HYPPO_TITLE", "Env")
	t.Setenv("HYPPO_BUILD_WORKERS", "6")
	t.Setenv("HYPPO_BUILD_STRICT", "true")
	t.Setenv("HYPPO_IMPORTS", "hab:http://example.org/habitat#, geo:http://example.org/geo#")

	cfg, err := NewLoader().LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "Env", cfg.Title)
	assert.Equal(t, 6, cfg.Build.Workers)
	assert.True(t, cfg.Build.Strict)
	require.Len(t, cfg.Imports, 2)
	assert.Equal(t, "geo", cfg.Imports[1].Suffix)
}

func TestLoader_EnvErrors(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"HYPPO_BUILD_WORKERS", "lots"},
		{"HYPPO_BUILD_RENDER_IMPORTS", "maybe"},
		{"HYPPO_IMPORTS", "nocolon"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv("HYPPO_ONTOLOGY_IRI", "http://example.org/zoo")
			t.Setenv(tt.key, tt.value)

			_, err := NewLoader().Load()
			require.Error(t, err)
			assert.True(t, errors.IsInvalid(err))
		})
	}
}

func TestLoader_EnvPrefix(t *testing.T) {
	l := NewLoader()
	l.SetEnvPrefix("DOCS")
	l.lookupEnv = func(key string) (string, bool) {
		if key == "DOCS_ONTOLOGY_IRI" {
			return "http://example.org/zoo", true
		}
		return "", false
	}

	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, "http://example.org/zoo", cfg.Ontology.IRI)
}

func TestLoader_DotEnv(t *testing.T) {
	const key = "HYPPO_BASEURL"
	require.Empty(t, os.Getenv(key))
	t.Cleanup(func() { os.Unsetenv(key) })

	dotenv := writeFile(t, t.TempDir(), "build.env",
		"HYPPO_ONTOLOGY_IRI=http://example.org/zoo\nHYPPO_BASEURL=https://docs.example.org/\n")
	t.Setenv("HYPPO_ONTOLOGY_IRI", "http://example.org/preset")

	l := NewLoader()
	l.AddDotEnv(dotenv)
	cfg, err := l.Load()
	require.NoError(t, err)

	assert.Equal(t, "https://docs.example.org/", cfg.BaseURL)
	assert.Equal(t, "http://example.org/preset", cfg.Ontology.IRI, "existing variables win over dotenv")

	missing := NewLoader()
	missing.AddDotEnv(filepath.Join(t.TempDir(), "none.env"))
	_, err = missing.Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrConfigNotFound)
}

func TestLoader_DisableValidation(t *testing.T) {
	l := NewLoader()
	l.EnableValidation(false)
	l.lookupEnv = func(string) (string, bool) { return "", false }

	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Ontology.IRI)
}

func TestSchema(t *testing.T) {
	assert.Contains(t, string(Schema()), `"ontology"`)
}
