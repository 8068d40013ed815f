// Package config loads and validates hyppo build configuration.
//
// # Layers
//
// A Loader merges configuration in this order, each layer overriding the
// ones before it:
//
//  1. Default()
//  2. dotenv files (./.env unless others are added), loaded into the
//     process environment without replacing variables already set
//  3. configuration files, JSON or YAML by extension, in the order added
//  4. HYPPO_* environment variables
//
// Command-line flags are applied by the caller after Load.
//
// Every file layer is checked against an embedded JSON schema before it is
// merged, so unknown keys and mistyped values are reported with the file
// name. The merged result is validated with struct tags.
//
// # Basic Usage
//
//	loader := config.NewLoader()
//	loader.AddLayer("hyppo.yaml")
//	cfg, err := loader.Load()
//	if err != nil {
//	    return err
//	}
//	result, err := site.New(cfg.Site(), engine).Build(ctx, ont)
//
// # Environment Variables
//
// Scalar settings map to HYPPO_<SECTION>_<FIELD>, for example
// HYPPO_ONTOLOGY_IRI, HYPPO_BUILD_OUTPUT, HYPPO_BUILD_WORKERS and
// HYPPO_LOG_LEVEL. HYPPO_IMPORTS takes comma-separated prefix:iri pairs that
// are appended to the configured imports.
//
// # Errors
//
// Every load or validation failure is classified invalid, so callers can
// report it as a usage problem rather than a crash.
package config
