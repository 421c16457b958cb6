package health

import (
	"context"
	"sync"
)

// Registry fans one readiness request out to every registered checker.
type Registry struct {
	checkers []Checker
}

func NewRegistry(checkers ...Checker) *Registry {
	return &Registry{checkers: checkers}
}

// CheckResult pairs a checker's name with its probe outcome.
type CheckResult struct {
	Name    string `json:"name"`
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

// ReadinessResponse is the aggregate served on the readiness endpoint.
// Status is down as soon as any single check is down.
type ReadinessResponse struct {
	Status Status        `json:"status"`
	Checks []CheckResult `json:"checks,omitempty"`
}

// CheckAll probes every dependency concurrently and aggregates the results.
// An empty registry reports up.
func (r *Registry) CheckAll(ctx context.Context) ReadinessResponse {
	results := make([]CheckResult, len(r.checkers))

	var wg sync.WaitGroup
	wg.Add(len(r.checkers))
	for i, checker := range r.checkers {
		go func(i int, checker Checker) {
			defer wg.Done()
			probe := checker.Check(ctx)
			results[i] = CheckResult{
				Name:    checker.Name(),
				Status:  probe.Status,
				Message: probe.Message,
			}
		}(i, checker)
	}
	wg.Wait()

	response := ReadinessResponse{Status: StatusUp, Checks: results}
	for _, res := range results {
		if res.Status == StatusDown {
			response.Status = StatusDown
			break
		}
	}
	if len(results) == 0 {
		response.Checks = nil
	}
	return response
}
