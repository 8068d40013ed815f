package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/enioarz/ontology-server/errors"
)

// DefaultEnvPrefix prefixes every environment override.
const DefaultEnvPrefix = "HYPPO"

// Loader loads configuration in layers: defaults, dotenv files, config
// files in the order added, then environment variables.
type Loader struct {
	layers     []string
	dotenv     []string
	validation bool
	envPrefix  string
	lookupEnv  func(string) (string, bool)
}

// NewLoader creates a loader with validation enabled and the HYPPO prefix.
func NewLoader() *Loader {
	return &Loader{
		validation: true,
		envPrefix:  DefaultEnvPrefix,
		lookupEnv:  os.LookupEnv,
	}
}

// AddLayer adds a configuration file layer. Later layers override earlier ones.
func (l *Loader) AddLayer(path string) {
	l.layers = append(l.layers, path)
}

// AddDotEnv loads path into the process environment before overrides are
// read. Variables already set are left alone. Without any AddDotEnv call the
// loader reads ./.env when it exists.
func (l *Loader) AddDotEnv(path string) {
	l.dotenv = append(l.dotenv, path)
}

// EnableValidation enables or disables validation of the merged result.
func (l *Loader) EnableValidation(enable bool) {
	l.validation = enable
}

// SetEnvPrefix changes the environment variable prefix.
func (l *Loader) SetEnvPrefix(prefix string) {
	l.envPrefix = prefix
}

// LoadFile loads configuration from a single file
func (l *Loader) LoadFile(path string) (*Config, error) {
	l.layers = []string{path}
	return l.Load()
}

// Load loads and merges all configuration layers
func (l *Loader) Load() (*Config, error) {
	if err := l.loadDotEnv(); err != nil {
		return nil, err
	}

	merged, err := toMap(Default())
	if err != nil {
		return nil, errors.WrapFatal(err, "Loader", "Load", "encode defaults")
	}
	for _, path := range l.layers {
		raw, err := l.loadRaw(path)
		if err != nil {
			return nil, err
		}
		merged = deepMergeMaps(merged, raw)
	}

	cfg, err := fromMap(merged)
	if err != nil {
		return nil, errors.WrapInvalid(err, "Loader", "Load", "decode merged config")
	}

	if err := l.applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if l.validation {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func (l *Loader) loadDotEnv() error {
	files := l.dotenv
	if len(files) == 0 {
		if !Exists(".env") {
			return nil
		}
		files = []string{".env"}
	}
	if err := godotenv.Load(files...); err != nil {
		return errors.WrapInvalid(fmt.Errorf("%w: %w", errors.ErrConfigNotFound, err),
			"Loader", "loadDotEnv", "load dotenv")
	}
	return nil
}

// loadRaw reads one layer as a generic map and checks it against the schema.
func (l *Loader) loadRaw(path string) (map[string]any, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, errors.WrapInvalid(fmt.Errorf("%w: %w", errors.ErrConfigNotFound, err),
			"Loader", "loadRaw", "read "+path)
	}

	raw := map[string]any{}
	switch formatOf(path) {
	case formatJSON:
		if err := checkJSONDepth(data); err != nil {
			return nil, errors.WrapInvalid(fmt.Errorf("%w: %w", errors.ErrParsingFailed, err),
				"Loader", "loadRaw", "check JSON structure")
		}
		err = json.Unmarshal(data, &raw)
	case formatYAML:
		err = yaml.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, errors.WrapInvalid(fmt.Errorf("%w: %w", errors.ErrParsingFailed, err),
			"Loader", "loadRaw", "parse "+path)
	}
	if raw == nil {
		raw = map[string]any{}
	}

	if err := validateSchema(path, raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// deepMergeMaps merges override into base; nested maps merge, everything
// else replaces.
func deepMergeMaps(base, override map[string]any) map[string]any {
	result := make(map[string]any, len(base))
	for k, v := range base {
		result[k] = v
	}
	for k, v := range override {
		if v == nil {
			continue
		}
		if overrideMap, ok := v.(map[string]any); ok {
			if baseMap, ok := result[k].(map[string]any); ok {
				result[k] = deepMergeMaps(baseMap, overrideMap)
				continue
			}
		}
		result[k] = v
	}
	return result
}

func toMap(cfg *Config) (map[string]any, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func fromMap(m map[string]any) (*Config, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnvOverrides reads <PREFIX>_* variables. HYPPO_IMPORTS holds
// comma-separated prefix:iri pairs appended to the configured imports.
func (l *Loader) applyEnvOverrides(cfg *Config) error {
	strs := map[string]*string{
		"ONTOLOGY_IRI":       &cfg.Ontology.IRI,
		"ONTOLOGY_SOURCE":    &cfg.Ontology.Source,
		"ONTOLOGY_SUFFIX":    &cfg.Ontology.Suffix,
		"TITLE":              &cfg.Title,
		"BASEURL":            &cfg.BaseURL,
		"TEMPLATES":          &cfg.Templates,
		"ASSETS":             &cfg.Assets,
		"LANGUAGE":           &cfg.Language,
		"BUILD_OUTPUT":       &cfg.Build.Output,
		"BUILD_METRICS_FILE": &cfg.Build.MetricsFile,
		"LOG_LEVEL":          &cfg.Log.Level,
		"LOG_FORMAT":         &cfg.Log.Format,
	}
	for name, dst := range strs {
		val, ok, err := l.env(name)
		if err != nil {
			return err
		}
		if ok {
			*dst = val
		}
	}

	bools := map[string]*bool{
		"BUILD_RENDER_IMPORTS":    &cfg.Build.RenderImports,
		"BUILD_OWN_ENTITIES_ONLY": &cfg.Build.OwnEntitiesOnly,
		"BUILD_STRICT":            &cfg.Build.Strict,
	}
	for name, dst := range bools {
		val, ok, err := l.env(name)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(val)
		if err != nil {
			return l.envError(name, err)
		}
		*dst = b
	}

	if val, ok, err := l.env("BUILD_WORKERS"); err != nil {
		return err
	} else if ok {
		n, err := strconv.Atoi(val)
		if err != nil {
			return l.envError("BUILD_WORKERS", err)
		}
		cfg.Build.Workers = n
	}

	if val, ok, err := l.env("IMPORTS"); err != nil {
		return err
	} else if ok {
		for _, spec := range strings.Split(val, ",") {
			if spec = strings.TrimSpace(spec); spec == "" {
				continue
			}
			if err := cfg.AddImport(spec); err != nil {
				return err
			}
		}
	}
	return nil
}

// env looks up <PREFIX>_name; empty values count as unset.
func (l *Loader) env(name string) (string, bool, error) {
	key := l.envPrefix + "_" + name
	val, ok := l.lookupEnv(key)
	if !ok || val == "" {
		return "", false, nil
	}
	if err := checkEnvValue(key, val); err != nil {
		return "", false, errors.WrapInvalid(err, "Loader", "applyEnvOverrides", "read "+key)
	}
	return val, true, nil
}

func (l *Loader) envError(name string, err error) error {
	return errors.WrapInvalid(fmt.Errorf("%w: %s_%s: %w", errors.ErrInvalidConfig, l.envPrefix, name, err),
		"Loader", "applyEnvOverrides", "parse environment")
}
