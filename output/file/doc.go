// Package file writes the documents of a built site to disk.
//
// # Overview
//
// A Writer takes the slash-separated document paths produced by the site
// orchestrator and writes each one below its output directory, creating
// parent directories as needed. Writes run in parallel, bounded by
// Config.Workers.
//
// # Quick Start
//
//	w, err := file.NewWriter(file.Config{Directory: "public"},
//	    file.WithLogger(logger),
//	    file.WithMetrics(registry.CoreMetrics()))
//	if err != nil {
//	    return err
//	}
//	if err := w.Initialize(); err != nil {
//	    return err
//	}
//	if err := w.Write(ctx, result.Documents); err != nil {
//	    return err
//	}
//	return w.CopyAssets(theme.DefaultStatic())
//
// # Paths
//
// Document paths must stay inside the output directory. Absolute paths and
// paths climbing out with ".." are rejected as invalid data.
//
// # Assets
//
// CopyAssets copies a file tree into the "static" subdirectory, where the
// built-in templates expect the stylesheet.
package file
