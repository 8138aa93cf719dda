package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/ElectroRoute-Japan/mms-client/pkg/audit"
	"github.com/ElectroRoute-Japan/mms-client/pkg/security"
	"github.com/ElectroRoute-Japan/mms-client/pkg/types"
)

// TLS version bounds for MMS connections.
const (
	TLS12 = tls.VersionTLS12
	TLS13 = tls.VersionTLS13
)

// Retry policy for submissions. Client errors are fatal; everything else is
// retried with exponential backoff, failing over to the backup endpoint on
// server errors.
const (
	maxAttempts      = 3
	initialBackoff   = time.Second
	soapContentType  = "application/soap+xml; charset=utf-8"
	defaultUserAgent = "mms-client/1.0"
)

// HTTPError is a non-2xx HTTP response from the MMS.
type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected status code %d: %s", e.StatusCode, string(e.Body))
}

// Fatal reports whether retrying cannot help: the server rejected the
// request itself.
func (e *HTTPError) Fatal() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// TransportError is a submission that exhausted its attempts without a
// usable response. The last underlying failure is wrapped.
type TransportError struct {
	Endpoint string
	Attempts int
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("mms submission to %s failed after %d attempts: %v", e.Endpoint, e.Attempts, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Config carries the settings for one service connection.
type Config struct {
	// Client and Iface select the endpoint set.
	Client ClientType
	Iface  Interface
	// Certificate authenticates the TLS connection.
	Certificate *security.Certificate
	// Endpoints overrides the default endpoint table when non-nil.
	Endpoints Endpoints
	// Test selects the test endpoint instead of main/backup.
	Test bool
	// Timeout bounds each HTTP exchange. Defaults to 60s.
	Timeout time.Duration
	// Interceptors observe the raw SOAP traffic.
	Interceptors []audit.Interceptor
	// Logger receives transport diagnostics. Defaults to slog.Default.
	Logger *slog.Logger
}

// Client submits MmsRequests to one MMS web service over mutual TLS.
type Client struct {
	httpClient   *http.Client
	iface        Interface
	endpoint     ServiceEndpoint
	interceptors []audit.Interceptor
	logger       *slog.Logger

	mu       sync.Mutex
	selected string
}

// NewClient builds a transport client for the configured service.
func NewClient(cfg Config) (*Client, error) {
	if !cfg.Client.Valid() {
		return nil, fmt.Errorf("invalid client type %q", cfg.Client)
	}
	if cfg.Certificate == nil {
		return nil, fmt.Errorf("a client certificate is required")
	}

	endpoints := cfg.Endpoints
	if endpoints == nil {
		endpoints = DefaultEndpoints()
	}
	endpoint, err := endpoints.Endpoint(cfg.Client, cfg.Iface)
	if err != nil {
		return nil, err
	}
	selected := endpoint.Main
	if cfg.Test {
		selected = endpoint.Test
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tlsConfig := &tls.Config{
		MinVersion:   TLS12,
		MaxVersion:   TLS13,
		Certificates: []tls.Certificate{cfg.Certificate.TLSCertificate()},
	}
	httpTransport := &http.Transport{
		TLSClientConfig:     tlsConfig,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
	}

	return &Client{
		httpClient: &http.Client{
			Transport: httpTransport,
			Timeout:   timeout,
		},
		iface:        cfg.Iface,
		endpoint:     endpoint,
		interceptors: cfg.Interceptors,
		logger:       logger,
		selected:     selected,
	}, nil
}

// Endpoint returns the URL the next submission will use.
func (c *Client) Endpoint() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

func (c *Client) failover() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected != c.endpoint.Backup && c.endpoint.Backup != "" {
		c.logger.Warn("mms server error, switching to backup endpoint", "backup", c.endpoint.Backup)
		c.selected = c.endpoint.Backup
	}
}

// Submit sends the request through the submitAttachment operation,
// retrying transient failures and failing over to the backup endpoint on
// server errors.
func (c *Client) Submit(ctx context.Context, req *types.MmsRequest) (*types.MmsResponse, error) {
	return c.submit(ctx, req, maxAttempts)
}

// SubmitOnce sends the request without retrying. Submissions are not
// idempotent on the server, so write operations use this path. A server
// error still switches subsequent calls to the backup endpoint.
func (c *Client) SubmitOnce(ctx context.Context, req *types.MmsRequest) (*types.MmsResponse, error) {
	return c.submit(ctx, req, 1)
}

func (c *Client) submit(ctx context.Context, req *types.MmsRequest, attempts int) (*types.MmsResponse, error) {
	body, err := encodeEnvelope(c.iface, req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode SOAP request: %w", err)
	}

	backoff := initialBackoff
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		resp, err := c.exchange(ctx, body)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		var httpErr *HTTPError
		if errors.As(err, &httpErr) {
			if httpErr.Fatal() {
				return nil, err
			}
			if httpErr.StatusCode >= 500 {
				c.failover()
			}
		}
		if attempt == attempts {
			break
		}

		c.logger.Debug("mms submission failed, retrying", "attempt", attempt, "error", err)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return nil, &TransportError{Endpoint: c.Endpoint(), Attempts: attempts, Err: lastErr}
}

func (c *Client) exchange(ctx context.Context, body []byte) (*types.MmsResponse, error) {
	endpoint := c.Endpoint()
	for _, in := range c.interceptors {
		in.OnRequestBytes(ctx, endpoint, body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", soapContentType)
	httpReq.Header.Set("User-Agent", defaultUserAgent)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	for _, in := range c.interceptors {
		in.OnResponseBytes(ctx, endpoint, respBody)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, &HTTPError{StatusCode: httpResp.StatusCode, Body: respBody}
	}
	return decodeEnvelope(respBody)
}
