package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates every component failed.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Component is a named dependency to ping.
type Component struct {
	Name   string
	Pinger Pinger
}

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	components []Component
}

// New creates a Service. Components with a nil Pinger are ignored.
func New(components ...Component) *Service {
	kept := make([]Component, 0, len(components))
	for _, c := range components {
		if c.Pinger != nil {
			kept = append(kept, c)
		}
	}
	return &Service{components: kept}
}

// Check pings every component.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, len(s.components))
	failed := 0

	for _, c := range s.components {
		if err := c.Pinger.Ping(ctx); err != nil {
			checks[c.Name] = CheckError
			failed++
			continue
		}
		checks[c.Name] = CheckOK
	}

	status := Healthy
	switch {
	case failed == 0:
	case failed == len(s.components):
		status = Unhealthy
	default:
		status = Degraded
	}

	return Report{Status: status, Checks: checks}
}
