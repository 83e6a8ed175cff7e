package airmee

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

const defaultTimeout = 30 * time.Second

// HTTPTransport is the production Transport implementation.
type HTTPTransport struct {
	httpClient *http.Client
	headers    http.Header
}

// HTTPTransportConfig holds configuration for the HTTP transport.
type HTTPTransportConfig struct {
	Timeout time.Duration
	Headers http.Header // extra headers attached to every request
	Client  *http.Client
}

// NewHTTPTransport creates an HTTP transport for production use.
func NewHTTPTransport(cfg HTTPTransportConfig) *HTTPTransport {
	client := cfg.Client
	if client == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = defaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	return &HTTPTransport{
		httpClient: client,
		headers:    cfg.Headers,
	}
}

// Send performs one HTTP request. A non-2xx status is not an error at this
// level; only transport failures are.
func (t *HTTPTransport) Send(ctx context.Context, req *Request) (*Response, error) {
	target := req.URL
	if len(req.Query) > 0 {
		u, err := url.Parse(req.URL)
		if err != nil {
			return nil, fmt.Errorf("invalid request url %q: %w", req.URL, err)
		}
		u.RawQuery = req.Query.Encode()
		target = u.String()
	}

	var bodyReader io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	for key, values := range t.headers {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}
	for key, values := range req.Header {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", "airmee-sdk-go/"+Version)
	httpReq.Header.Set("X-Request-Id", uuid.New().String())

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}

var _ Transport = (*HTTPTransport)(nil)
