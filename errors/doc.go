// Package errors provides standardized error handling patterns for hyppo components.
//
// # Overview
//
// Errors fall into three classes: Transient (temporary, retryable), Invalid
// (bad input, non-retryable), and Fatal (unrecoverable, stop processing).
// Callers use the class to decide whether a failure ends the build or is
// reported and skipped.
//
// # Build Error Taxonomy
//
// A site build can fail for a single page without failing the site:
//
//   - ErrUnsupportedConstruct: an expression shape the unpacker does not render
//     (cardinality restrictions, self restrictions, anonymous-individual values)
//   - ErrUnknownEntityKind: a page was requested for an IRI with no declaration
//   - ErrTemplateRender: the template engine rejected a page context
//
// All three classify as Invalid. The typed forms carry the offending construct
// or IRI and unwrap to the sentinel:
//
//	var uc *errors.UnsupportedConstructError
//	if stderrors.As(err, &uc) {
//	    logger.Warn("skipping page", "construct", uc.Construct)
//	}
//
// Prefix shrinking never fails from the caller's point of view, so there is no
// error for it.
//
// # Error Wrapping Pattern
//
// All error wrapping follows the standardized format:
//
//	"component.method: action failed: %w"
//
// Three wrapper functions provide classification-aware wrapping:
//
//	errors.WrapTransient(err, "Component", "Method", "action")  // For retryable errors
//	errors.WrapInvalid(err, "Component", "Method", "action")    // For validation errors
//	errors.WrapFatal(err, "Component", "Method", "action")      // For unrecoverable errors
//
// The generic Wrap() function preserves the original error's classification:
//
//	errors.Wrap(err, "Component", "Method", "action")
package errors
