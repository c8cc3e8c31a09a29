// Package httpclient hands out http.Clients that share one transport, so the
// chat, embedding, reranker, and knowledge API clients reuse connections
// instead of opening a fresh TCP session per request.
package httpclient

import (
	"net/http"
	"time"
)

var sharedTransport = &http.Transport{
	MaxIdleConns:        20,
	MaxIdleConnsPerHost: 10,
	IdleConnTimeout:     120 * time.Second,
	DisableKeepAlives:   false,
}

// NewPooledClient creates an http.Client with the shared connection pool and
// the given total request timeout.
func NewPooledClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: sharedTransport,
	}
}
