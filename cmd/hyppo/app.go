package main

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/enioarz/ontology-server/config"
	"github.com/enioarz/ontology-server/errors"
	"github.com/enioarz/ontology-server/metric"
	"github.com/enioarz/ontology-server/owl"
	"github.com/enioarz/ontology-server/owx"
	"github.com/enioarz/ontology-server/site"
	"github.com/enioarz/ontology-server/theme"
)

// app wires one command invocation: configuration, logger and metrics.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *metric.MetricsRegistry
}

// readOntology parses the configured source and fills in the ontology IRI
// when the configuration leaves it out. The completed configuration is
// validated here.
func (a *app) readOntology() (*owl.Ontology, error) {
	if a.cfg.Ontology.Source == "" {
		return nil, errors.WrapInvalid(fmt.Errorf("%w: no ontology source given", errors.ErrMissingConfig),
			"app", "readOntology", "locate source")
	}

	ont, err := owx.NewReader(a.logger).ReadFile(a.cfg.Ontology.Source)
	if err != nil {
		return nil, err
	}

	switch {
	case a.cfg.Ontology.IRI == "":
		a.cfg.Ontology.IRI = string(ont.IRI)
	case a.cfg.Ontology.IRI != string(ont.IRI):
		a.logger.Warn("configured ontology IRI differs from the source",
			"configured", a.cfg.Ontology.IRI, "source", ont.IRI)
	}
	if err := a.cfg.Validate(); err != nil {
		return nil, err
	}

	a.logger.Info("ontology loaded",
		"source", a.cfg.Ontology.Source,
		"iri", ont.IRI,
		"axioms", len(ont.Axioms))
	return ont, nil
}

// orchestrator builds the template engine and the site orchestrator.
func (a *app) orchestrator() (*site.Orchestrator, error) {
	sc := a.cfg.Site()
	layout := site.NewLayout(sc.Imports, sc.RenderImports)

	engine, err := theme.New(a.cfg.Templates,
		theme.WithBaseURL(sc.BaseURL),
		theme.WithLinker(layout.Linker(sc.BaseURL)))
	if err != nil {
		return nil, err
	}

	opts := []site.Option{site.WithLogger(a.logger)}
	if a.registry != nil {
		opts = append(opts, site.WithMetrics(a.registry))
	}
	return site.New(sc, engine, opts...), nil
}

// build reads the ontology and renders the site in memory.
func (a *app) build(ctx context.Context) (*site.Result, error) {
	ont, err := a.readOntology()
	if err != nil {
		return nil, err
	}
	orch, err := a.orchestrator()
	if err != nil {
		return nil, err
	}
	return orch.Build(ctx, ont)
}

// assets returns the tree copied to static/.
func (a *app) assets() (fs.FS, error) {
	if a.cfg.Assets == "" {
		return theme.DefaultStatic(), nil
	}
	info, err := os.Stat(a.cfg.Assets)
	if err != nil || !info.IsDir() {
		return nil, errors.WrapInvalid(fmt.Errorf("%w: assets directory %q", errors.ErrConfigNotFound, a.cfg.Assets),
			"app", "assets", "locate assets")
	}
	return os.DirFS(a.cfg.Assets), nil
}

// finish applies the strict policy and writes the metrics file.
func (a *app) finish(report *site.Report) error {
	if path := a.cfg.Build.MetricsFile; path != "" && a.registry != nil {
		if err := a.registry.WriteTextfile(path); err != nil {
			return err
		}
	}
	if a.cfg.Build.Strict && report.Failed() {
		return report.Err()
	}
	return nil
}
