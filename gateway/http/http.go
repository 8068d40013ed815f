// Package http serves a built site for local preview.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"mime"
	"net/http"
	"path"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/enioarz/ontology-server/errors"
	"github.com/enioarz/ontology-server/gateway"
	"github.com/enioarz/ontology-server/health"
	"github.com/enioarz/ontology-server/metric"
	"github.com/enioarz/ontology-server/site"
)

// BuildComponent names the build in health reports.
const BuildComponent = "build"

// BuildFunc produces a fresh site.
type BuildFunc func(ctx context.Context) (*site.Result, error)

// getOrGenerateRequestID extracts X-Request-ID from the request or creates one.
func getOrGenerateRequestID(r *http.Request) string {
	if reqID := r.Header.Get("X-Request-ID"); reqID != "" {
		return reqID
	}
	return uuid.NewString()
}

// Gateway serves the documents of the most recent successful build.
type Gateway struct {
	config   gateway.Config
	build    BuildFunc
	static   fs.FS
	registry *metric.MetricsRegistry
	monitor  *health.Monitor
	logger   *slog.Logger

	// rebuildMu serializes builds; mu guards the served documents.
	rebuildMu sync.Mutex
	mu        sync.RWMutex
	documents map[string][]byte
	lastBuild time.Time

	requestsTotal  atomic.Uint64
	requestsFailed atomic.Uint64
	bytesSent      atomic.Uint64
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Gateway) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithStatic serves fsys under /static/.
func WithStatic(fsys fs.FS) Option {
	return func(g *Gateway) {
		g.static = fsys
	}
}

// WithMetrics exposes the registry on /metrics.
func WithMetrics(registry *metric.MetricsRegistry) Option {
	return func(g *Gateway) {
		g.registry = registry
	}
}

// WithMonitor reports build health to an existing monitor.
func WithMonitor(m *health.Monitor) Option {
	return func(g *Gateway) {
		if m != nil {
			g.monitor = m
		}
	}
}

// NewGateway validates config and creates a Gateway. Nothing is served
// until the first Rebuild succeeds.
func NewGateway(config gateway.Config, build BuildFunc, opts ...Option) (*Gateway, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.WrapInvalid(err, "Gateway", "NewGateway", "config validation")
	}
	if build == nil {
		return nil, errors.WrapFatal(errors.ErrMissingConfig, "Gateway", "NewGateway",
			"build function is required")
	}

	g := &Gateway{
		config:    config,
		build:     build,
		monitor:   health.NewMonitor(),
		logger:    slog.Default(),
		documents: map[string][]byte{},
	}
	for _, opt := range opts {
		opt(g)
	}
	g.monitor.Update(BuildComponent, health.NewDegraded(BuildComponent, "no build yet"))
	return g, nil
}

// Rebuild runs the build function and swaps in its documents. A build
// error keeps the previous documents.
func (g *Gateway) Rebuild(ctx context.Context) (*site.Result, error) {
	g.rebuildMu.Lock()
	defer g.rebuildMu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, g.config.RebuildTimeout())
	defer cancel()

	result, err := g.build(ctx)
	if err != nil {
		g.monitor.Update(BuildComponent, health.FromError(BuildComponent, err))
		return nil, errors.Wrap(err, "Gateway", "Rebuild", "build site")
	}

	docs := make(map[string][]byte, len(result.Documents))
	for _, doc := range result.Documents {
		docs[doc.Path] = doc.Content
	}

	g.mu.Lock()
	g.documents = docs
	g.lastBuild = time.Now()
	g.mu.Unlock()

	g.monitor.Update(BuildComponent, result.Report.Health(BuildComponent))
	g.logger.Info("site rebuilt",
		"build_id", result.Report.ID,
		"documents", len(docs),
		"failures", len(result.Report.Failures))
	return result, nil
}

// Router returns the HTTP handler.
func (g *Gateway) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(g.requestID)
	r.Use(middleware.Recoverer)
	r.Use(g.logRequests)
	if g.config.EnableCORS {
		r.Use(g.cors)
	}

	r.Get("/health", g.handleHealth)
	if g.registry != nil {
		r.Handle("/metrics", g.registry.Handler())
	}
	r.Post("/rebuild", g.handleRebuild)
	if g.static != nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(g.static)))
	}
	r.Get("/*", g.handleDocument)
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (g *Gateway) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              g.config.Addr,
		Handler:           g.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		g.logger.Info("preview server listening", "addr", g.config.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return errors.WrapFatal(err, "Gateway", "ListenAndServe", "serve")
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.WrapTransient(err, "Gateway", "ListenAndServe", "shutdown")
	}
	return nil
}

// Stats reports request counters.
func (g *Gateway) Stats() (total, failed, bytesSent uint64) {
	return g.requestsTotal.Load(), g.requestsFailed.Load(), g.bytesSent.Load()
}

func (g *Gateway) handleDocument(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(path.Clean("/"+chi.URLParam(r, "*")), "/")
	if name == "" || strings.HasSuffix(r.URL.Path, "/") {
		name = path.Join(name, "index.html")
	}

	g.mu.RLock()
	content, ok := g.documents[name]
	g.mu.RUnlock()
	if !ok {
		g.writeError(w, http.StatusNotFound, "resource not found")
		return
	}

	ctype := mime.TypeByExtension(path.Ext(name))
	if ctype == "" {
		ctype = "text/html; charset=utf-8"
	}
	w.Header().Set("Content-Type", ctype)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(content); err != nil {
		g.requestsFailed.Add(1)
		return
	}
	g.bytesSent.Add(uint64(len(content)))
}

func (g *Gateway) handleHealth(w http.ResponseWriter, _ *http.Request) {
	status := g.monitor.AggregateHealth("hyppo")
	code := http.StatusOK
	if status.IsUnhealthy() {
		code = http.StatusServiceUnavailable
	}
	g.writeJSON(w, code, status)
}

type rebuildResponse struct {
	BuildID   string `json:"build_id"`
	Pages     int    `json:"pages"`
	Documents int    `json:"documents"`
	Failures  int    `json:"failures"`
}

func (g *Gateway) handleRebuild(w http.ResponseWriter, r *http.Request) {
	result, err := g.Rebuild(r.Context())
	if err != nil {
		g.writeError(w, mapErrorToHTTPStatus(err), sanitizeError(err))
		return
	}
	g.writeJSON(w, http.StatusOK, rebuildResponse{
		BuildID:   result.Report.ID,
		Pages:     result.Report.Pages,
		Documents: result.Report.Documents,
		Failures:  len(result.Report.Failures),
	})
}

func (g *Gateway) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := getOrGenerateRequestID(r)
		w.Header().Set("X-Request-ID", id)
		g.requestsTotal.Add(1)
		next.ServeHTTP(w, r)
	})
}

func (g *Gateway) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		g.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", w.Header().Get("X-Request-ID"))
	})
}

func (g *Gateway) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		for _, allowed := range g.config.CORSOrigins {
			if allowed != "*" && allowed != origin {
				continue
			}
			if origin != "" {
				w.Header().Set("Access-Control-Allow-Origin", origin)
			} else {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.Header().Set("Access-Control-Max-Age", "3600")
			break
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// mapErrorToHTTPStatus maps a classified error to a status code.
func mapErrorToHTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusInternalServerError
	case errors.IsInvalid(err):
		return http.StatusUnprocessableEntity
	case errors.IsTransient(err):
		if strings.Contains(err.Error(), "deadline exceeded") || strings.Contains(err.Error(), "timeout") {
			return http.StatusGatewayTimeout
		}
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// sanitizeError returns a message that is safe to show a client.
func sanitizeError(err error) string {
	switch {
	case err == nil:
		return "internal server error"
	case errors.IsInvalid(err):
		return "build failed: invalid ontology or configuration"
	case errors.IsTransient(err):
		if strings.Contains(err.Error(), "deadline exceeded") || strings.Contains(err.Error(), "timeout") {
			return "build timeout"
		}
		return "service temporarily unavailable"
	}
	return "internal server error"
}

func (g *Gateway) writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		g.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		g.requestsFailed.Add(1)
		return
	}
	g.bytesSent.Add(uint64(len(data)))
}

func (g *Gateway) writeError(w http.ResponseWriter, status int, message string) {
	g.requestsFailed.Add(1)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	data, _ := json.Marshal(map[string]any{
		"error":  message,
		"status": status,
	})
	_, _ = w.Write(data)
}

// String describes the gateway for logs.
func (g *Gateway) String() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.lastBuild.IsZero() {
		return fmt.Sprintf("preview gateway on %s (not built)", g.config.Addr)
	}
	return fmt.Sprintf("preview gateway on %s (%d documents, built %s)",
		g.config.Addr, len(g.documents), g.lastBuild.Format(time.RFC3339))
}
