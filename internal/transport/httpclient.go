package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	domainErrors "github.com/cassiomorais/paybridge/internal/domain/errors"
	"github.com/cassiomorais/paybridge/pkg/retry"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Doer executes one transport-ready request descriptor. Implemented by
// Client; test doubles stand in for it in engine tests.
type Doer interface {
	Do(ctx context.Context, req Request) (*Response, error)
}

// Client is the HTTP transport collaborator. It owns connection pooling,
// per-call timeouts and retries; connector logic above it never touches the
// network directly. Network-level failures come back wrapped in ErrNetwork so
// the engine can classify them as retryable.
type Client struct {
	httpClient *http.Client
	retryCfg   retry.Config
	logger     zerolog.Logger
	tracer     trace.Tracer
}

// NewClient builds a transport client. The http.Client's transport is shared
// across all providers; per-provider timeouts ride on the request descriptor.
func NewClient(logger zerolog.Logger, retryCfg retry.Config) *Client {
	return &Client{
		httpClient: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		retryCfg: retryCfg,
		logger:   logger,
		tracer:   otel.Tracer("paybridge/transport"),
	}
}

// Do executes the request, retrying network-level failures only. Provider
// responses, including non-2xx ones, are returned as-is for the engine to
// classify.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	ctx, span := c.tracer.Start(ctx, "connector.http",
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.url", req.URL),
		))
	defer span.End()

	resp, err := retry.DoWithResult(ctx, c.retryCfg, func() (*Response, error) {
		return c.doOnce(ctx, req)
	}, func(err error) bool {
		return errors.Is(err, domainErrors.ErrNetwork)
	}, func(n uint, err error) {
		c.logger.Warn().Uint("attempt", n).Err(err).Str("url", req.URL).Msg("retrying provider call")
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	return resp, nil
}

func (c *Client) doOnce(ctx context.Context, req Request) (*Response, error) {
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	var body io.Reader
	if !req.Body.Empty() {
		body = bytes.NewReader(req.Body.Payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for _, h := range req.Headers {
		httpReq.Header.Set(h.Name, h.Value)
	}
	if !req.Body.Empty() && req.Body.ContentType != "" {
		httpReq.Header.Set("Content-Type", req.Body.ContentType)
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, classifyNetworkError(err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response body: %v", domainErrors.ErrNetwork, err)
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}, nil
}

// classifyNetworkError wraps timeouts, resets and DNS failures in ErrNetwork.
// Context cancellation is passed through so callers can tell the difference.
func classifyNetworkError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", domainErrors.ErrNetwork, err)
	}
	// url.Error wraps everything the client can fail with; anything left is
	// still a transport-level failure from the caller's point of view.
	return fmt.Errorf("%w: %v", domainErrors.ErrNetwork, err)
}
