package config

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/enioarz/ontology-server/errors"
	"github.com/enioarz/ontology-server/site"
	"github.com/enioarz/ontology-server/vocabulary"
)

// Config is the complete build configuration.
type Config struct {
	Ontology    OntologyConfig    `json:"ontology" yaml:"ontology"`
	Title       string            `json:"title,omitempty" yaml:"title,omitempty"`
	BaseURL     string            `json:"baseurl,omitempty" yaml:"baseurl,omitempty"`
	Imports     []site.Import     `json:"imports,omitempty" yaml:"imports,omitempty" validate:"dive"`
	Templates   string            `json:"templates,omitempty" yaml:"templates,omitempty"`
	Assets      string            `json:"assets,omitempty" yaml:"assets,omitempty"`
	Language    string            `json:"language,omitempty" yaml:"language,omitempty"`
	Annotations AnnotationsConfig `json:"annotations" yaml:"annotations"`
	Build       BuildConfig       `json:"build" yaml:"build"`
	Log         LogConfig         `json:"log" yaml:"log"`
}

// OntologyConfig names the ontology being documented.
type OntologyConfig struct {
	IRI string `json:"iri" yaml:"iri" validate:"required,uri"`
	// Source is the OWL/XML file to read.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
	// Suffix overrides the default namespace.
	Suffix string `json:"suffix,omitempty" yaml:"suffix,omitempty"`
}

// AnnotationsConfig routes extra annotation predicates to page roles, on top
// of the built-in vocabulary.
type AnnotationsConfig struct {
	Label       []string `json:"label,omitempty" yaml:"label,omitempty" validate:"dive,uri"`
	Definition  []string `json:"definition,omitempty" yaml:"definition,omitempty" validate:"dive,uri"`
	Example     []string `json:"example,omitempty" yaml:"example,omitempty" validate:"dive,uri"`
	Title       []string `json:"title,omitempty" yaml:"title,omitempty" validate:"dive,uri"`
	Description []string `json:"description,omitempty" yaml:"description,omitempty" validate:"dive,uri"`
	License     []string `json:"license,omitempty" yaml:"license,omitempty" validate:"dive,uri"`
	Contributor []string `json:"contributor,omitempty" yaml:"contributor,omitempty" validate:"dive,uri"`
}

// BuildConfig controls output.
type BuildConfig struct {
	Output          string `json:"output" yaml:"output" validate:"required"`
	RenderImports   bool   `json:"render_imports" yaml:"render_imports"`
	Workers         int    `json:"workers" yaml:"workers" validate:"gte=0"`
	OwnEntitiesOnly bool   `json:"own_entities_only" yaml:"own_entities_only"`
	// Strict fails the build when any page failed.
	Strict      bool   `json:"strict" yaml:"strict"`
	MetricsFile string `json:"metrics_file,omitempty" yaml:"metrics_file,omitempty"`
}

// LogConfig selects the log level and handler.
type LogConfig struct {
	Level  string `json:"level" yaml:"level" validate:"oneof=debug info warn error"`
	Format string `json:"format" yaml:"format" validate:"oneof=json text"`
}

var validate = validator.New()

// Default returns the configuration every load starts from.
func Default() *Config {
	return &Config{
		Language: "en",
		Build: BuildConfig{
			Output:  "public",
			Workers: 4,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate expands compact annotation predicates, then checks field
// constraints and import suffixes.
func (c *Config) Validate() error {
	c.Annotations.expand(c.prefixes())
	if err := validate.Struct(c); err != nil {
		return errors.WrapInvalid(formatValidationError(err), "Config", "Validate", "check fields")
	}
	seen := make(map[string]bool, len(c.Imports))
	for _, imp := range c.Imports {
		if imp.Suffix == "" {
			continue
		}
		if seen[imp.Suffix] {
			return errors.WrapInvalid(fmt.Errorf("%w: import suffix %q used twice", errors.ErrInvalidConfig, imp.Suffix),
				"Config", "Validate", "check imports")
		}
		seen[imp.Suffix] = true
	}
	return nil
}

// prefixes returns the standard prefixes plus every import that names one.
func (c *Config) prefixes() *vocabulary.PrefixMap {
	m := vocabulary.StandardPrefixes()
	for _, imp := range c.Imports {
		if imp.Suffix != "" {
			_ = m.Add(imp.Suffix, imp.IRI)
		}
	}
	return m
}

// expand rewrites entries such as "skos:definition" to full IRIs. Entries
// that do not expand are left for validation to reject.
func (a *AnnotationsConfig) expand(m *vocabulary.PrefixMap) {
	for _, list := range []*[]string{
		&a.Label, &a.Definition, &a.Example, &a.Title,
		&a.Description, &a.License, &a.Contributor,
	} {
		for i, entry := range *list {
			if strings.Contains(entry, "://") {
				continue
			}
			if iri, ok := m.Expand(entry); ok {
				(*list)[i] = iri
			}
		}
	}
}

// formatValidationError flattens validator errors into one readable error.
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", errors.ErrInvalidConfig, strings.Join(msgs, "; "))
}

// Routes builds the annotation routing table.
func (c *Config) Routes() *vocabulary.Routes {
	a := c.Annotations
	return vocabulary.NewRoutes(
		vocabulary.WithRoutes(vocabulary.RoleLabel, a.Label...),
		vocabulary.WithRoutes(vocabulary.RoleDefinition, a.Definition...),
		vocabulary.WithRoutes(vocabulary.RoleExample, a.Example...),
		vocabulary.WithRoutes(vocabulary.RoleTitle, a.Title...),
		vocabulary.WithRoutes(vocabulary.RoleDescription, a.Description...),
		vocabulary.WithRoutes(vocabulary.RoleLicense, a.License...),
		vocabulary.WithRoutes(vocabulary.RoleContributor, a.Contributor...),
	)
}

// Site converts the configuration into build settings. The ontology IRI is
// the default namespace unless a suffix overrides it.
func (c *Config) Site() site.Config {
	namespace := c.Ontology.IRI
	if c.Ontology.Suffix != "" {
		namespace = c.Ontology.Suffix
	}
	return site.Config{
		Namespace:       namespace,
		Title:           c.Title,
		BaseURL:         c.BaseURL,
		Imports:         append([]site.Import(nil), c.Imports...),
		Language:        c.Language,
		RenderImports:   c.Build.RenderImports,
		OwnEntitiesOnly: c.Build.OwnEntitiesOnly,
		Workers:         c.Build.Workers,
		Routes:          c.Routes(),
	}
}

// AddImport parses "prefix:iri" and appends it to the imports.
func (c *Config) AddImport(spec string) error {
	prefix, iri, ok := strings.Cut(spec, ":")
	if !ok || iri == "" {
		return errors.WrapInvalid(fmt.Errorf("%w: import %q is not prefix:iri", errors.ErrInvalidConfig, spec),
			"Config", "AddImport", "parse import")
	}
	c.Imports = append(c.Imports, site.Import{IRI: iri, Suffix: prefix})
	return nil
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	if c == nil {
		return Default()
	}
	data, err := json.Marshal(c)
	if err != nil {
		copied := *c
		return &copied
	}
	var clone Config
	if err := json.Unmarshal(data, &clone); err != nil {
		copied := *c
		return &copied
	}
	return &clone
}

// SaveToFile writes the configuration as YAML or JSON, chosen by extension.
func (c *Config) SaveToFile(path string) error {
	var (
		data []byte
		err  error
	)
	switch formatOf(path) {
	case formatYAML:
		data, err = yaml.Marshal(c)
	case formatJSON:
		data, err = json.MarshalIndent(c, "", "  ")
	default:
		return errors.WrapInvalid(fmt.Errorf("%w: unsupported config extension %q", errors.ErrInvalidConfig, path),
			"Config", "SaveToFile", "select format")
	}
	if err != nil {
		return errors.WrapFatal(err, "Config", "SaveToFile", "encode config")
	}
	if err := writeConfigFile(path, data); err != nil {
		return errors.Wrap(err, "Config", "SaveToFile", "write config")
	}
	return nil
}

// String renders the configuration as indented JSON for debugging.
func (c *Config) String() string {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Sprintf("Config{error: %v}", err)
	}
	return string(data)
}

// Exists reports whether path names an existing regular file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
