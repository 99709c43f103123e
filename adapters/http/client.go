// Package http provides the outbound HTTP client used for dataset and input
// file downloads and for worker API calls. It abstracts the transport to
// support both the standard library and FastHTTP clients.
package http

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/abhissng/precompute/utils/helpers"
)

// HTTPClient defines the interface for HTTP client implementations.
type HTTPClient interface {
	Do(config *ClientManager, method, requestURL string, headers map[string]string, body []byte) (int, []byte, error)
}

// stdHTTPClient implements HTTPClient using the standard net/http package.
type stdHTTPClient struct{}

// Do executes an HTTP request using the standard net/http client.
func (c *stdHTTPClient) Do(config *ClientManager, method, requestURL string, headers map[string]string, body []byte) (int, []byte, error) {
	req, err := http.NewRequest(method, requestURL, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	for key, value := range config.Headers {
		req.Header.Set(key, value)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	client := &http.Client{Timeout: config.Timeout}
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, respBody, nil
}

// fastHTTPClient implements HTTPClient using the valyala/fasthttp package.
type fastHTTPClient struct{}

// Do executes an HTTP request using the FastHTTP client.
func (c *fastHTTPClient) Do(config *ClientManager, method, requestURL string, headers map[string]string, body []byte) (int, []byte, error) {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(requestURL)
	req.Header.SetMethod(method)
	req.SetBody(body)
	for key, value := range config.Headers {
		req.Header.Set(key, value)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	client := &fasthttp.Client{
		ReadTimeout:  config.Timeout,
		WriteTimeout: config.Timeout,
	}
	if err := client.Do(req, resp); err != nil {
		return 0, nil, err
	}

	// The response body is pooled; copy it out before release.
	respBody := append([]byte(nil), resp.Body()...)
	return resp.StatusCode(), respBody, nil
}

// ClientManager holds the client configuration shared across requests.
type ClientManager struct {
	Headers     map[string]string
	Timeout     time.Duration
	UseFastHTTP bool

	client HTTPClient
}

// DefaultTimeout bounds every download and reporting request.
const DefaultTimeout = 30 * time.Second

// NewClientManager creates a ClientManager with the provided options.
func NewClientManager(opts ...RequestOption) *ClientManager {
	manager := &ClientManager{
		Headers: map[string]string{},
		Timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(manager)
	}
	if manager.UseFastHTTP {
		manager.client = &fastHTTPClient{}
	} else {
		manager.client = &stdHTTPClient{}
	}
	return manager
}

// Get downloads the content at requestURL with a single attempt. It returns
// the response bytes only for a 2xx response.
func (c *ClientManager) Get(requestURL string) ([]byte, error) {
	if err := helpers.ValidateURL(requestURL); err != nil {
		return nil, err
	}
	status, body, err := c.client.Do(c, http.MethodGet, requestURL, nil, nil)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, fmt.Errorf("unexpected status %d for %s", status, requestURL)
	}
	return body, nil
}

// Post sends body to requestURL and returns the response status and bytes.
// Status interpretation is left to the caller.
func (c *ClientManager) Post(requestURL string, headers map[string]string, body []byte) (int, []byte, error) {
	if err := helpers.ValidateURL(requestURL); err != nil {
		return 0, nil, err
	}
	return c.client.Do(c, http.MethodPost, requestURL, headers, body)
}
