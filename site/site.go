// Package site drives a whole ontology through the page builders and the
// template engine, producing one document per declared entity plus the
// index pages.
package site

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/enioarz/ontology-server/errors"
	"github.com/enioarz/ontology-server/metric"
	"github.com/enioarz/ontology-server/owl"
	"github.com/enioarz/ontology-server/page"
	"github.com/enioarz/ontology-server/pkg/worker"
	"github.com/enioarz/ontology-server/resolve"
	"github.com/enioarz/ontology-server/vocabulary"
)

// Extra context keys added on top of the page contexts.
const (
	KeySite    = "site"
	KeyBaseURL = "baseurl"
	// KeyCombined lists, on the main index, the properties whose domain or
	// range page shows the intersection of several axioms.
	KeyCombined = "combined"
)

// Renderer turns a template name and context into document bytes. Names
// are page.EntityTemplate and page.OntologyTemplate.
type Renderer interface {
	Render(name string, data any) ([]byte, error)
}

// Config holds the settings a build reads.
type Config struct {
	// Namespace is the default namespace; its members shrink to bare names.
	Namespace string
	Title     string
	BaseURL   string
	Imports   []Import
	// Language is preferred when an entity carries several labels.
	Language        string
	RenderImports   bool
	OwnEntitiesOnly bool
	Workers         int
	Routes          *vocabulary.Routes
}

// Page is one rendered entity page.
type Page struct {
	IRI        owl.IRI
	Kind       owl.EntityKind
	Identifier string
	Content    []byte
	// Combined is set when the page joins several domain or range axioms.
	Combined bool
}

// Document is one file of the built site.
type Document struct {
	Path    string
	Content []byte
}

// Result is the outcome of a build. Pages holds at most one entry per IRI.
type Result struct {
	Pages     map[owl.IRI]Page
	Documents []Document
	Report    *Report
}

// Orchestrator builds sites. It keeps no state between builds.
type Orchestrator struct {
	cfg      Config
	renderer Renderer
	logger   *slog.Logger
	metrics  *metric.MetricsRegistry
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics records build metrics into registry.
func WithMetrics(registry *metric.MetricsRegistry) Option {
	return func(o *Orchestrator) {
		o.metrics = registry
	}
}

// New creates an Orchestrator rendering through renderer.
func New(cfg Config, renderer Renderer, opts ...Option) *Orchestrator {
	if cfg.Routes == nil {
		cfg.Routes = vocabulary.NewRoutes()
	}
	o := &Orchestrator{
		cfg:      cfg,
		renderer: renderer,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Layout returns the output layout builds use.
func (o *Orchestrator) Layout() *Layout {
	return NewLayout(o.cfg.Imports, o.cfg.RenderImports)
}

// Build renders every declared entity of ont and the index pages. A page
// that fails is recorded in the report and the others are still built; the
// returned error is reserved for failures that stop the whole build, such as
// a bad prefix or an unrenderable index page.
func (o *Orchestrator) Build(ctx context.Context, ont *owl.Ontology) (*Result, error) {
	b, err := o.prepare(ont)
	if err != nil {
		return nil, err
	}
	iris, conflicts := Entities(b.index)
	b.report.Conflicts = conflicts
	for _, iri := range conflicts {
		b.logger.Warn("entity declared under several kinds", "iri", iri, "kinds", kindNames(b.index.Kinds(iri)))
	}

	result, err := o.render(ctx, b, iris)
	if err != nil {
		return nil, err
	}

	b.report.Combined = combined(result.Pages, iris)
	if n := len(b.report.Combined); n > 0 {
		b.logger.Info("several domain or range axioms rendered as their intersection", "properties", n)
	}

	layout := o.Layout()
	for _, iri := range iris {
		p, ok := result.Pages[iri]
		if !ok {
			continue
		}
		path, ok := layout.Path(p.Identifier)
		if !ok {
			log := b.logger.Debug
			if p.Identifier == string(iri) {
				// Not under the default namespace or any prefix.
				log = b.logger.Warn
			}
			log("no output path for entity", "iri", iri, "identifier", p.Identifier)
			continue
		}
		result.Documents = append(result.Documents, Document{Path: path, Content: p.Content})
	}

	indexDocs, err := o.buildIndexes(b.pages, ont, layout, b.report.Combined)
	if err != nil {
		return nil, err
	}
	result.Documents = append(result.Documents, indexDocs...)

	o.finish(b, result)
	return result, nil
}

// RenderEntities renders the entity pages of the given IRIs only. Each IRI
// fails or succeeds on its own; no documents or index pages are produced.
func (o *Orchestrator) RenderEntities(ctx context.Context, ont *owl.Ontology, iris ...owl.IRI) (*Result, error) {
	b, err := o.prepare(ont)
	if err != nil {
		return nil, err
	}
	result, err := o.render(ctx, b, iris)
	if err != nil {
		return nil, err
	}
	o.finish(b, result)
	return result, nil
}

type build struct {
	started time.Time
	report  *Report
	logger  *slog.Logger
	index   *owl.Index
	pages   *page.Builder
}

// prepare builds the per-build lookup structures: prefix map, axiom index
// and label index.
func (o *Orchestrator) prepare(ont *owl.Ontology) (*build, error) {
	b := &build{
		started: time.Now(),
		report:  &Report{ID: uuid.NewString(), Axioms: len(ont.Axioms)},
	}
	b.report.StartedAt = b.started
	b.logger = o.logger.With("build_id", b.report.ID)

	prefixes, err := Prefixes(ont, o.cfg.Namespace, o.cfg.Imports)
	if err != nil {
		return nil, err
	}
	b.index = owl.NewIndex(ont.Axioms)
	labels := resolve.BuildLabelIndex(ont.Axioms, o.cfg.Routes.Predicates(vocabulary.RoleLabel), o.cfg.Language)
	b.pages = page.NewBuilder(b.index, resolve.NewResolver(prefixes, labels), o.cfg.Routes)
	return b, nil
}

func (o *Orchestrator) render(ctx context.Context, b *build, iris []owl.IRI) (*Result, error) {
	b.report.Entities = len(iris)
	result := &Result{Pages: make(map[owl.IRI]Page, len(iris)), Report: b.report}
	if err := o.buildPages(ctx, b.pages, iris, result, b.logger); err != nil {
		return nil, err
	}
	return result, nil
}

func (o *Orchestrator) finish(b *build, result *Result) {
	report := result.Report
	report.Pages = len(result.Pages)
	report.Documents = len(result.Documents)
	report.Duration = time.Since(b.started)
	report.sortFailures()

	if o.metrics != nil {
		o.metrics.Metrics.RecordBuild(report.Duration, report.Axioms)
	}
	b.logger.Info("site built",
		"pages", report.Pages,
		"documents", report.Documents,
		"failures", len(report.Failures),
		"duration", report.Duration)
}

// buildPages renders every entity page on a worker pool. Page failures go to
// the report; only cancellation aborts.
func (o *Orchestrator) buildPages(ctx context.Context, builder *page.Builder, iris []owl.IRI,
	result *Result, logger *slog.Logger) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "Site", "Build", "render entity pages")
	}
	var mu sync.Mutex

	render := func(_ context.Context, iri owl.IRI) error {
		p, err := o.entityPage(builder, iri)
		if err != nil {
			return err
		}
		mu.Lock()
		result.Pages[iri] = p
		mu.Unlock()
		if o.metrics != nil {
			o.metrics.Metrics.RecordPage(p.Kind.String())
		}
		return nil
	}
	fail := func(iri owl.IRI, err error) {
		class := errors.Classify(err)
		logger.Warn("entity page failed", "iri", iri, "error", err, "class", class.String())
		mu.Lock()
		result.Report.Failures = append(result.Report.Failures, Failure{IRI: iri, Err: err, Class: class})
		mu.Unlock()
		if o.metrics != nil {
			o.metrics.Metrics.RecordFailure(class.String())
		}
	}

	opts := []worker.Option[owl.IRI]{worker.WithErrorHandler(fail)}
	if o.metrics != nil {
		opts = append(opts, worker.WithMetricsRegistry[owl.IRI](o.metrics, "hyppo_render"))
	}
	pool := worker.NewPool(o.cfg.Workers, 2*max(o.cfg.Workers, 1), render, opts...)

	poolCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	if err := pool.Start(poolCtx); err != nil {
		return errors.WrapFatal(err, "Site", "Build", "start render pool")
	}
	for _, iri := range iris {
		if err := pool.Submit(ctx, iri); err != nil {
			cancel()
			_ = pool.Stop(time.Second)
			return errors.Wrap(err, "Site", "Build", "submit "+string(iri))
		}
	}
	if err := pool.Stop(time.Hour); err != nil {
		return errors.WrapFatal(err, "Site", "Build", "drain render pool")
	}
	return ctx.Err()
}

func (o *Orchestrator) entityPage(builder *page.Builder, iri owl.IRI) (Page, error) {
	model, err := builder.Entity(iri)
	if err != nil {
		return Page{}, err
	}
	data := model.Context()
	data[KeySite] = o.siteContext()

	content, err := o.renderer.Render(page.EntityTemplate, data)
	if err != nil {
		return Page{}, err
	}
	return Page{
		IRI:        iri,
		Kind:       model.Kind,
		Identifier: model.Entity.Identifier,
		Content:    content,
		Combined:   model.Relationships.Combined,
	}, nil
}

// combined returns, in iris order, the pages that joined several domain or
// range axioms.
func combined(pages map[owl.IRI]Page, iris []owl.IRI) []owl.IRI {
	var out []owl.IRI
	for _, iri := range iris {
		if pages[iri].Combined {
			out = append(out, iri)
		}
	}
	return out
}

// buildIndexes renders index.html and, with imports rendered, one
// "<suffix>/index.html" per import restricted to that import's namespace.
func (o *Orchestrator) buildIndexes(builder *page.Builder, ont *owl.Ontology, layout *Layout,
	merged []owl.IRI) ([]Document, error) {
	var filter page.Filter
	if o.cfg.OwnEntitiesOnly {
		filter = underNamespace(string(ont.IRI), builder.Resolver().Prefixes().Default())
	}

	notes := make([]string, 0, len(merged))
	for _, iri := range merged {
		notes = append(notes, builder.Resolver().Shrink(iri))
	}
	main, err := o.renderIndex(builder.Metadata(ont, filter), "index", page.Context{KeyCombined: notes})
	if err != nil {
		return nil, err
	}
	docs := []Document{{Path: "index.html", Content: main}}

	for _, suffix := range layout.Suffixes() {
		imp := o.importFor(suffix)
		md := builder.Metadata(&owl.Ontology{IRI: owl.IRI(imp.IRI)}, underNamespace(imp.IRI))
		content, err := o.renderIndex(md, suffix, nil)
		if err != nil {
			return nil, err
		}
		docs = append(docs, Document{Path: suffix + "/index.html", Content: content})
	}
	return docs, nil
}

func (o *Orchestrator) renderIndex(md page.Metadata, identifier string, extra page.Context) ([]byte, error) {
	data := md.Context()
	for k, v := range extra {
		data[k] = v
	}
	data[page.KeyIdentifier] = identifier
	data[KeySite] = o.siteContext()
	content, err := o.renderer.Render(page.OntologyTemplate, data)
	if err != nil {
		return nil, errors.Wrap(err, "Site", "Build", "render index "+identifier)
	}
	return content, nil
}

func (o *Orchestrator) siteContext() page.Context {
	return page.Context{
		page.KeyTitle: o.cfg.Title,
		KeyBaseURL:    o.cfg.BaseURL,
	}
}

func (o *Orchestrator) importFor(suffix string) Import {
	for _, imp := range o.cfg.Imports {
		if imp.Suffix == suffix {
			return imp
		}
	}
	return Import{Suffix: suffix}
}

// Entities lists every declared IRI once, in kind order: classes, named
// individuals, data properties, object properties, annotation properties.
// An IRI keeps the position of its first declaration; IRIs declared under
// more than one kind are also returned as conflicts.
func Entities(index *owl.Index) (iris, conflicts []owl.IRI) {
	seen := make(map[owl.IRI]owl.EntityKind)
	for _, kind := range []owl.EntityKind{
		owl.Class, owl.NamedIndividual, owl.DataProperty, owl.ObjectProperty, owl.AnnotationProperty,
	} {
		for _, iri := range index.Declared(kind) {
			first, dup := seen[iri]
			if !dup {
				seen[iri] = kind
				iris = append(iris, iri)
				continue
			}
			if first != kind && !containsIRI(conflicts, iri) {
				conflicts = append(conflicts, iri)
			}
		}
	}
	return iris, conflicts
}

func underNamespace(namespaces ...string) page.Filter {
	var ns []string
	for _, n := range namespaces {
		if n != "" {
			ns = append(ns, n)
		}
	}
	return func(iri owl.IRI) bool {
		for _, n := range ns {
			if strings.HasPrefix(string(iri), n) {
				return true
			}
		}
		return false
	}
}

func containsIRI(list []owl.IRI, iri owl.IRI) bool {
	for _, v := range list {
		if v == iri {
			return true
		}
	}
	return false
}

func kindNames(kinds []owl.EntityKind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return fmt.Sprint(names)
}
