// ABOUTME: Typed transport error for failed source retrievals
// ABOUTME: Carries the HTTP status when one was received and classifies timeouts

package fetch

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// TransportError reports a network failure, timeout, oversized body, or non-2xx status.
type TransportError struct {
	Source     string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Source, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the retrieval ran past its deadline.
func (e *TransportError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}
