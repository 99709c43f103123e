package http

import (
	"time"
)

// RequestOption defines a functional option for configuring the HTTP client
type RequestOption func(*ClientManager)

// WithHeader sets a header sent on every request
func WithHeader(key, value string) RequestOption {
	return func(c *ClientManager) {
		c.Headers[key] = value
	}
}

// WithTimeout sets a timeout
func WithTimeout(duration time.Duration) RequestOption {
	return func(c *ClientManager) {
		c.Timeout = duration
	}
}

// WithFastHTTP sets the flag to use fastHTTP
func WithFastHTTP() RequestOption {
	return func(c *ClientManager) {
		c.UseFastHTTP = true
	}
}
