package site

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/enioarz/ontology-server/errors"
	"github.com/enioarz/ontology-server/health"
	"github.com/enioarz/ontology-server/owl"
)

// Failure records one entity page that could not be built.
type Failure struct {
	IRI   owl.IRI           `json:"iri"`
	Err   error             `json:"-"`
	Class errors.ErrorClass `json:"-"`
}

// Error implements error.
func (f Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.IRI, f.Err)
}

// Unwrap returns the underlying error.
func (f Failure) Unwrap() error {
	return f.Err
}

// Report summarises one build.
type Report struct {
	ID        string        `json:"id"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
	Axioms    int           `json:"axioms"`
	Entities  int           `json:"entities"`
	Pages     int           `json:"pages"`
	Documents int           `json:"documents"`
	Failures  []Failure     `json:"failures,omitempty"`
	// Conflicts lists IRIs declared under more than one kind.
	Conflicts []owl.IRI `json:"conflicts,omitempty"`
	// Combined lists properties with several domain or range axioms. Their
	// pages show the intersection of all of them.
	Combined []owl.IRI `json:"combined,omitempty"`
}

// Failed reports whether any page failed.
func (r *Report) Failed() bool {
	return len(r.Failures) > 0
}

// Err joins every page failure into one error, or returns nil. The result
// unwraps to each failure.
func (r *Report) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	return errors.WrapInvalid(failureList(r.Failures), "Site", "Build", "render entity pages")
}

type failureList []Failure

func (l failureList) Error() string {
	msgs := make([]string, len(l))
	for i, f := range l {
		msgs[i] = f.Error()
	}
	return fmt.Sprintf("%d page(s) failed: %s", len(l), strings.Join(msgs, "; "))
}

func (l failureList) Unwrap() []error {
	errs := make([]error, len(l))
	for i, f := range l {
		errs[i] = f
	}
	return errs
}

// Health summarises the build as a health status: healthy without failures,
// degraded when some pages failed, unhealthy when every page failed.
func (r *Report) Health(component string) health.Status {
	var s health.Status
	switch {
	case len(r.Failures) == 0:
		s = health.NewHealthy(component, fmt.Sprintf("%d pages built", r.Pages))
	case r.Pages == 0:
		s = health.NewUnhealthy(component, fmt.Sprintf("all %d pages failed", len(r.Failures)))
	default:
		s = health.NewDegraded(component, fmt.Sprintf("%d pages built, %d failed", r.Pages, len(r.Failures)))
	}
	return s.WithMetrics(&health.Metrics{
		BuildDuration: r.Duration,
		ErrorCount:    len(r.Failures),
		PagesBuilt:    int64(r.Pages),
		LastBuild:     r.StartedAt.Add(r.Duration),
	})
}

func (r *Report) sortFailures() {
	sort.Slice(r.Failures, func(i, j int) bool {
		return r.Failures[i].IRI < r.Failures[j].IRI
	})
}

func sortedStrings(s []string) []string {
	sort.Strings(s)
	return s
}
