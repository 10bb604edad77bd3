package wporg

import (
	"fmt"

	"github.com/pluginpulse/pluginpulse/internal/domain"
)

// Sentinel failures callers branch on with errors.Is. They alias the domain
// taxonomy so the application layer never imports this package to handle
// failures.
var (
	ErrUnavailable = domain.ErrUpstreamUnavailable
	ErrBadStatus   = domain.ErrUpstreamStatus
	ErrMalformed   = domain.ErrUpstreamMalformed
	ErrNotFound    = domain.ErrPluginNotFound
)

// APIError carries the request context of a failed Plugin API call.
type APIError struct {
	Op     string // "search" or "info"
	URL    string
	Status int // 0 when the request never got a response
	Err    error
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("wporg %s %s: status %d: %v", e.Op, e.URL, e.Status, e.Err)
	}
	return fmt.Sprintf("wporg %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *APIError) Unwrap() error { return e.Err }
