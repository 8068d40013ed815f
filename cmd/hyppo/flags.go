package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/enioarz/ontology-server/config"
)

// cliFlags holds command-line settings. Only flags the user set override
// the loaded configuration.
type cliFlags struct {
	configPath string
	envFile    string

	iri             string
	suffix          string
	output          string
	baseURL         string
	title           string
	templates       string
	assets          string
	language        string
	imports         []string
	renderImports   bool
	ownEntitiesOnly bool
	workers         int
	strict          bool
	metricsFile     string
	logLevel        string
	logFormat       string
}

// defaultConfigFiles are tried in order when --config is not given.
var defaultConfigFiles = []string{"hyppo.yaml", "hyppo.yml", "hyppo.json"}

func (f *cliFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.configPath, "config", "c", "", "Configuration file (default: hyppo.yaml, hyppo.yml or hyppo.json if present)")
	fs.StringVar(&f.envFile, "env-file", "", "Dotenv file to load before reading HYPPO_* variables (default: .env if present)")

	fs.StringVar(&f.iri, "iri", "", "Ontology IRI (default: the IRI declared by the source)")
	fs.StringVar(&f.suffix, "namespace", "", "Default namespace; its members shrink to bare names")
	fs.StringVarP(&f.output, "output", "o", "", "Output directory")
	fs.StringVar(&f.baseURL, "baseurl", "", "Base URL prefixed to generated links")
	fs.StringVar(&f.title, "title", "", "Site title")
	fs.StringVar(&f.templates, "templates", "", "Directory of templates overriding the built-in theme")
	fs.StringVar(&f.assets, "assets", "", "Directory copied to static/ in place of the built-in stylesheet")
	fs.StringVar(&f.language, "language", "", "Preferred label language")
	fs.StringArrayVar(&f.imports, "import", nil, "Imported ontology as prefix:iri (repeatable)")
	fs.BoolVar(&f.renderImports, "render-imports", false, "Render pages for imported entities under their prefix")
	fs.BoolVar(&f.ownEntitiesOnly, "own-entities-only", false, "List only entities of the ontology's namespace on the index page")
	fs.IntVar(&f.workers, "workers", 0, "Concurrent page renders")
	fs.BoolVar(&f.strict, "strict", false, "Exit non-zero when any page fails")
	fs.StringVar(&f.metricsFile, "metrics-file", "", "Write build metrics in Prometheus text format")
	fs.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.StringVar(&f.logFormat, "log-format", "", "Log format: json, text")
}

// loadConfig merges defaults, dotenv, the config file, environment and
// flags. The result is not validated yet: the ontology IRI may still come
// from the source document.
func (f *cliFlags) loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	loader := config.NewLoader()
	loader.EnableValidation(false)
	if f.envFile != "" {
		loader.AddDotEnv(f.envFile)
	}

	path := f.configPath
	if path == "" {
		for _, candidate := range defaultConfigFiles {
			if config.Exists(candidate) {
				path = candidate
				break
			}
		}
	}
	if path != "" {
		loader.AddLayer(path)
	}

	cfg, err := loader.Load()
	if err != nil {
		return nil, err
	}
	if err := f.apply(cmd.Flags(), cfg); err != nil {
		return nil, err
	}
	if len(args) > 0 {
		cfg.Ontology.Source = args[0]
	}
	return cfg, nil
}

func (f *cliFlags) apply(fs *pflag.FlagSet, cfg *config.Config) error {
	strs := []struct {
		name string
		val  string
		dst  *string
	}{
		{"iri", f.iri, &cfg.Ontology.IRI},
		{"namespace", f.suffix, &cfg.Ontology.Suffix},
		{"output", f.output, &cfg.Build.Output},
		{"baseurl", f.baseURL, &cfg.BaseURL},
		{"title", f.title, &cfg.Title},
		{"templates", f.templates, &cfg.Templates},
		{"assets", f.assets, &cfg.Assets},
		{"language", f.language, &cfg.Language},
		{"metrics-file", f.metricsFile, &cfg.Build.MetricsFile},
		{"log-level", f.logLevel, &cfg.Log.Level},
		{"log-format", f.logFormat, &cfg.Log.Format},
	}
	for _, s := range strs {
		if fs.Changed(s.name) {
			*s.dst = s.val
		}
	}

	if fs.Changed("render-imports") {
		cfg.Build.RenderImports = f.renderImports
	}
	if fs.Changed("own-entities-only") {
		cfg.Build.OwnEntitiesOnly = f.ownEntitiesOnly
	}
	if fs.Changed("workers") {
		cfg.Build.Workers = f.workers
	}
	if fs.Changed("strict") {
		cfg.Build.Strict = f.strict
	}
	for _, spec := range f.imports {
		if err := cfg.AddImport(spec); err != nil {
			return err
		}
	}
	return nil
}
