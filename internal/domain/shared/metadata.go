// Package shared holds small types common to all bounded contexts.
package shared

// Metadata identifies the caller of an operation. Actor is a free-text
// identity taken from the request; RequestID correlates log lines across
// services.
type Metadata struct {
	RequestID string
	Actor     string
}
