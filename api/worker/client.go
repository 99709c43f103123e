// Package worker provides the client that reports pre-compute exit causes
// to the worker API orchestrating the task.
package worker

import (
	"encoding/json"
	"fmt"

	"github.com/abhissng/precompute/adapters/environ"
	httpadapter "github.com/abhissng/precompute/adapters/http"
	"github.com/abhissng/precompute/adapters/log"
	"github.com/abhissng/precompute/blame"
	"github.com/abhissng/precompute/compute"
)

// DefaultWorkerHost is used when the session does not name a worker host.
const DefaultWorkerHost = "worker:13100"

// Client is a thin wrapper around the HTTP client that knows how to reach
// the worker API.
type Client struct {
	baseURL string
	client  *httpadapter.ClientManager
	logger  *log.Log
}

// ClientOption defines a functional option for configuring the Client.
type ClientOption func(*Client)

// WithClientManager overrides the HTTP client manager.
func WithClientManager(manager *httpadapter.ClientManager) ClientOption {
	return func(c *Client) {
		c.client = manager
	}
}

// NewClient creates a worker API client for the given base URL.
func NewClient(baseURL string, logger *log.Log, opts ...ClientOption) *Client {
	client := &Client{
		baseURL: baseURL,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.client == nil {
		client.client = httpadapter.NewClientManager(
			httpadapter.WithHeader("Content-Type", "application/json"),
		)
	}
	return client
}

// NewClientFromEnviron creates a worker API client with the host taken from
// the session environment, falling back to DefaultWorkerHost.
func NewClientFromEnviron(env environ.Provider, logger *log.Log, opts ...ClientOption) *Client {
	host, ok := env.Lookup(compute.EnvWorkerHost)
	if !ok {
		host = DefaultWorkerHost
	}
	return NewClient("http://"+host, logger, opts...)
}

// SendExitCauses reports the ordered exit cause list for the pre-compute
// stage of the given task. The list is serialized verbatim as
// [{"cause": TAG, "message": text}, ...]. A transport failure or a
// non-success status maps to the catch-all cause.
func (c *Client) SendExitCauses(authorization, chainTaskID string, exitCauses []blame.Blame) blame.Blame {
	url := fmt.Sprintf("%s/compute/pre/%s/exit", c.baseURL, chainTaskID)

	body, err := json.Marshal(blame.ExitCauses(exitCauses))
	if err != nil {
		return blame.UnknownIssue().WithCause(err)
	}

	status, respBody, err := c.client.Post(url, map[string]string{"Authorization": authorization}, body)
	if err != nil {
		c.logger.Error("Failed to send exit causes", log.String("url", url), log.Err(err))
		return blame.UnknownIssue().WithCause(err)
	}
	if status < 200 || status > 299 {
		c.logger.Error("Failed to send exit causes",
			log.Int("status", status), log.String("body", string(respBody)))
		return blame.UnknownIssue()
	}
	return nil
}
