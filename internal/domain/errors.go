package domain

import "errors"

// Port-level failure taxonomy. Adapters wrap these so the application layer
// can pick a recovery path without knowing the transport.
var (
	// ErrUpstreamUnavailable covers network failures, timeouts and 5xx
	// responses; the caller may fall back to a stale cache entry.
	ErrUpstreamUnavailable = errors.New("plugin api unavailable")

	// ErrUpstreamMalformed means the response body could not be decoded.
	ErrUpstreamMalformed = errors.New("plugin api returned a malformed payload")

	// ErrUpstreamStatus covers unexpected non-2xx responses.
	ErrUpstreamStatus = errors.New("plugin api returned an unexpected status")

	// ErrPluginNotFound means the requested slug does not exist upstream.
	ErrPluginNotFound = errors.New("plugin not found")
)
