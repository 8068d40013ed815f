// Package file writes a built site to a directory.
package file

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/enioarz/ontology-server/errors"
	"github.com/enioarz/ontology-server/metric"
	"github.com/enioarz/ontology-server/site"
)

// StaticDir is the directory assets are copied into.
const StaticDir = "static"

// Config holds configuration for the file writer
type Config struct {
	Directory string `json:"directory"`
	// Workers bounds concurrent file writes. Zero means 8.
	Workers  int         `json:"workers"`
	FileMode os.FileMode `json:"file_mode"`
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	if c.Directory == "" {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate", "directory is required")
	}
	if c.Workers < 0 {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate", "workers cannot be negative")
	}
	return nil
}

// DefaultConfig returns default configuration for file output
func DefaultConfig() Config {
	return Config{
		Directory: "./public",
		Workers:   8,
		FileMode:  0o644,
	}
}

// Stats counts what a Writer has written.
type Stats struct {
	Documents int64 `json:"documents"`
	Assets    int64 `json:"assets"`
	Bytes     int64 `json:"bytes"`
}

// Writer writes documents below its directory. It is safe for concurrent use.
type Writer struct {
	directory string
	workers   int
	mode      os.FileMode
	logger    *slog.Logger
	metrics   *metric.Metrics

	documents atomic.Int64
	assets    atomic.Int64
	bytes     atomic.Int64
}

// Option configures a Writer.
type Option func(*Writer)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Writer) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithMetrics counts written documents and bytes.
func WithMetrics(m *metric.Metrics) Option {
	return func(w *Writer) {
		w.metrics = m
	}
}

// NewWriter validates cfg and creates a Writer.
func NewWriter(cfg Config, opts ...Option) (*Writer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w := &Writer{
		directory: cfg.Directory,
		workers:   cfg.Workers,
		mode:      cfg.FileMode,
		logger:    slog.Default(),
	}
	if w.workers == 0 {
		w.workers = 8
	}
	if w.mode == 0 {
		w.mode = 0o644
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Initialize creates the output directory.
func (w *Writer) Initialize() error {
	if err := os.MkdirAll(w.directory, 0o755); err != nil {
		return errors.WrapFatal(err, "Writer", "Initialize", "create output directory")
	}
	return nil
}

// Directory returns the output directory.
func (w *Writer) Directory() string {
	return w.directory
}

// Write writes every document, creating parent directories as needed. It
// stops at the first failure.
func (w *Writer) Write(ctx context.Context, docs []site.Document) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(w.workers)

	for _, doc := range docs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return w.writeOne(doc)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	w.logger.Debug("documents written", "directory", w.directory, "count", len(docs))
	return nil
}

func (w *Writer) writeOne(doc site.Document) error {
	target, err := w.target(doc.Path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return errors.WrapFatal(err, "Writer", "Write", "create directory for "+doc.Path)
	}
	if err := os.WriteFile(target, doc.Content, w.mode); err != nil {
		return errors.WrapFatal(err, "Writer", "Write", "write "+doc.Path)
	}

	w.documents.Add(1)
	w.bytes.Add(int64(len(doc.Content)))
	if w.metrics != nil {
		w.metrics.RecordDocument(len(doc.Content))
	}
	return nil
}

// target resolves a document path inside the output directory.
func (w *Writer) target(path string) (string, error) {
	local := filepath.FromSlash(path)
	if !filepath.IsLocal(local) {
		return "", errors.WrapInvalid(fmt.Errorf("%w: document path %q escapes the output directory",
			errors.ErrInvalidData, path), "Writer", "Write", "resolve path")
	}
	return filepath.Join(w.directory, local), nil
}

// CopyAssets copies the tree src into the static directory.
func (w *Writer) CopyAssets(src fs.FS) error {
	dst := filepath.Join(w.directory, StaticDir)
	err := fs.WalkDir(src, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(dst, filepath.FromSlash(path))
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		n, err := copyFile(src, path, target, w.mode)
		if err != nil {
			return err
		}
		w.assets.Add(1)
		w.bytes.Add(n)
		return nil
	})
	if err != nil {
		return errors.WrapFatal(err, "Writer", "CopyAssets", "copy assets")
	}
	return nil
}

func copyFile(src fs.FS, path, target string, mode os.FileMode) (int64, error) {
	in, err := src.Open(path)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	return n, err
}

// Stats returns the running totals.
func (w *Writer) Stats() Stats {
	return Stats{
		Documents: w.documents.Load(),
		Assets:    w.assets.Load(),
		Bytes:     w.bytes.Load(),
	}
}
