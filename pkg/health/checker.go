// Package health aggregates per-dependency probes behind liveness and
// readiness endpoints.
package health

import (
	"context"
	"time"
)

// DefaultTimeout bounds a single probe run.
const DefaultTimeout = 5 * time.Second

// Status of one component, or of the service as a whole.
type Status string

const (
	StatusUp   Status = "up"
	StatusDown Status = "down"
)

// Result is what a single probe reports. Message carries the failure cause
// and stays empty while the component is up.
type Result struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

// Checker probes one dependency.
type Checker interface {
	Name() string
	Check(ctx context.Context) Result
}

// pingChecker adapts a dependency's ping function to Checker. Most
// dependencies here reduce to "can I round-trip a ping".
type pingChecker struct {
	name string
	ping func(ctx context.Context) error
}

func (c pingChecker) Name() string { return c.name }

func (c pingChecker) Check(ctx context.Context) Result {
	if err := c.ping(ctx); err != nil {
		return Result{Status: StatusDown, Message: err.Error()}
	}
	return Result{Status: StatusUp}
}
