// Package httpclient builds the pooled client used for outgoing calls.
package httpclient

import (
	"net"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/leaguehub/server/internal/shared/config"
	"github.com/leaguehub/server/internal/utils/requestctx"
)

// RequestIDHeader carries the originating request ID to downstream services.
const RequestIDHeader = "X-Request-ID"

// New creates a pooled client whose requests carry the caller's trace
// context and request ID.
func New(cfg *config.HTTPClientConfig) *http.Client {
	base := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.DialTimeout,
			KeepAlive: cfg.KeepAlive,
		}).DialContext,
		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		MaxConnsPerHost:     cfg.MaxConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,
		TLSHandshakeTimeout: cfg.TLSHandshakeTimeout,
		ForceAttemptHTTP2:   true,
	}

	return &http.Client{
		Transport: &transport{base: base, userAgent: cfg.UserAgent},
		Timeout:   cfg.ResponseTimeout,
	}
}

type transport struct {
	base      http.RoundTripper
	userAgent string
}

// RoundTrip decorates a clone of req; the caller's request is left untouched.
func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	out := req.Clone(ctx)

	if t.userAgent != "" && out.Header.Get("User-Agent") == "" {
		out.Header.Set("User-Agent", t.userAgent)
	}
	if id := requestctx.RequestID(ctx); id != "" {
		out.Header.Set(RequestIDHeader, id)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(out.Header))

	return t.base.RoundTrip(out)
}
