package health

import (
	"regexp"
	"strings"
	"time"
)

// State is the coarse health of a check.
type State string

const (
	StateHealthy   State = "healthy"
	StateDegraded  State = "degraded"
	StateUnhealthy State = "unhealthy"
)

// severity orders states from best to worst.
func (s State) severity() int {
	switch s {
	case StateHealthy:
		return 0
	case StateDegraded:
		return 1
	}
	return 2
}

// Status is the health of one check, or of a system built from several.
type Status struct {
	Component   string    `json:"component"`
	Healthy     bool      `json:"healthy"`
	Status      State     `json:"status"`
	Message     string    `json:"message"`
	Timestamp   time.Time `json:"timestamp"`
	SubStatuses []Status  `json:"sub_statuses,omitempty"`
	Metrics     *Metrics  `json:"metrics,omitempty"`
}

// Metrics summarises the build behind a status.
type Metrics struct {
	BuildDuration time.Duration `json:"build_duration"`
	ErrorCount    int           `json:"error_count"`
	PagesBuilt    int64         `json:"pages_built,omitempty"`
	LastBuild     time.Time     `json:"last_build,omitempty"`
}

// New creates a status stamped with the current time.
func New(component string, state State, message string) Status {
	return Status{
		Component: component,
		Healthy:   state == StateHealthy,
		Status:    state,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NewHealthy creates a healthy status.
func NewHealthy(component, message string) Status {
	return New(component, StateHealthy, message)
}

// NewDegraded creates a degraded status.
func NewDegraded(component, message string) Status {
	return New(component, StateDegraded, message)
}

// NewUnhealthy creates an unhealthy status.
func NewUnhealthy(component, message string) Status {
	return New(component, StateUnhealthy, message)
}

// FromError builds an unhealthy status whose message is the sanitized error.
func FromError(component string, err error) Status {
	msg := "unknown error"
	if err != nil {
		msg = sanitizeErrorMessage(err.Error())
	}
	return NewUnhealthy(component, msg)
}

func (s Status) IsHealthy() bool   { return s.Status == StateHealthy }
func (s Status) IsDegraded() bool  { return s.Status == StateDegraded }
func (s Status) IsUnhealthy() bool { return s.Status == StateUnhealthy }

// WithMetrics returns a copy of the status with metrics attached.
func (s Status) WithMetrics(metrics *Metrics) Status {
	s.Metrics = metrics
	return s
}

// WithSubStatus returns a copy with sub appended; the receiver's slice is
// not shared.
func (s Status) WithSubStatus(sub Status) Status {
	subs := make([]Status, len(s.SubStatuses), len(s.SubStatuses)+1)
	copy(subs, s.SubStatuses)
	s.SubStatuses = append(subs, sub)
	return s
}

// Aggregate combines subs under component. The result takes the worst
// state among subs; no subs is healthy.
func Aggregate(component string, subs []Status) Status {
	worst := StateHealthy
	for _, sub := range subs {
		if sub.Status.severity() > worst.severity() {
			worst = sub.Status
		}
	}

	var msg string
	switch {
	case len(subs) == 0:
		msg = "no checks registered"
	case worst == StateHealthy:
		msg = "all checks healthy"
	default:
		var names []string
		for _, sub := range subs {
			if sub.Status == worst {
				names = append(names, sub.Component)
			}
		}
		msg = strings.Join(names, ", ") + " " + string(worst)
	}

	status := New(component, worst, msg)
	if len(subs) > 0 {
		status.SubStatuses = append([]Status(nil), subs...)
	}
	return status
}

// Patterns stripped from error messages before they are exposed.
var (
	urlRegex         = regexp.MustCompile(`(?:https?|wss?|file)://[^\s]+`)
	unixPathRegex    = regexp.MustCompile(`/[a-zA-Z0-9/_.-]+`)
	windowsPathRegex = regexp.MustCompile(`[A-Z]:\\[^:\s]+`)
	ipAddrRegex      = regexp.MustCompile(`\b\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}\b`)
	portRegex        = regexp.MustCompile(`:\d{2,5}\b`)
	credentialRegex  = regexp.MustCompile(`(?i)(password|token|key|secret|credential)[^a-zA-Z]*[:=][^,\s}]+`)
)

// sanitizeErrorMessage replaces URLs, file paths, IP addresses, ports and
// credential-looking pairs with placeholders. URLs go first since they
// contain paths.
func sanitizeErrorMessage(msg string) string {
	msg = urlRegex.ReplaceAllString(msg, "[URL]")
	msg = unixPathRegex.ReplaceAllString(msg, "[PATH]")
	msg = windowsPathRegex.ReplaceAllString(msg, "[PATH]")
	msg = ipAddrRegex.ReplaceAllString(msg, "[IP]")
	msg = portRegex.ReplaceAllString(msg, "[PORT]")
	return credentialRegex.ReplaceAllString(msg, "[REDACTED]")
}
