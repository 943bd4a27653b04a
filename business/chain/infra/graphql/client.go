// Package graphql implements the chain context's upstream adapters: a
// GraphQL POST client plus archive and daemon readers built on it.
package graphql

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/url"
	"strings"
	"sync"

	"github.com/fd1az/minaview/internal/apperror"
	"github.com/fd1az/minaview/internal/httpclient"
)

// request is the standard GraphQL POST envelope.
type request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// envelope is the standard GraphQL response envelope.
type envelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors"`
}

type gqlError struct {
	Message string `json:"message"`
}

// Client POSTs GraphQL documents to one retargetable endpoint. Endpoint
// swaps are guarded so an in-flight query keeps the endpoint it captured at
// call start.
type Client struct {
	http httpclient.Client
	name string

	mu       sync.RWMutex
	endpoint string
}

// NewClient creates a client named for log and metric labels. The endpoint
// is set later by the network session.
func NewClient(name string, http httpclient.Client) *Client {
	return &Client{http: http, name: name}
}

// SetEndpoint retargets the client. Safe to call concurrently with Query.
func (c *Client) SetEndpoint(url string) {
	c.mu.Lock()
	c.endpoint = url
	c.mu.Unlock()
}

// Endpoint returns the current target.
func (c *Client) Endpoint() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.endpoint
}

// Query executes one GraphQL document and decodes the data payload into out.
// A response carrying GraphQL errors fails closed: partial data is never
// decoded. out may be nil to discard the payload.
func (c *Client) Query(ctx context.Context, query string, variables map[string]any, out any) error {
	endpoint := c.Endpoint()
	if endpoint == "" {
		return apperror.New(apperror.CodeConfigurationError,
			apperror.WithMessage("graphql client has no endpoint"),
			apperror.WithContext("client", c.name))
	}

	resp, err := c.http.NewRequest().
		SetHeader("Content-Type", "application/json").
		SetBody(request{Query: query, Variables: variables}).
		Post(ctx, endpoint)
	if err != nil {
		return c.classifyTransport(err, endpoint)
	}

	if resp.IsError() {
		// The body is never parsed on a non-2xx status.
		return apperror.New(apperror.CodeTransportError,
			apperror.WithStatusCode(resp.StatusCode),
			apperror.WithContext("client", c.name),
			apperror.WithContext("endpoint", endpoint),
			apperror.WithContext("status", resp.StatusCode))
	}

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return apperror.New(apperror.CodeTransportError,
			apperror.WithMessage("malformed graphql response"),
			apperror.WithCause(err),
			apperror.WithContext("client", c.name))
	}

	if len(env.Errors) > 0 {
		msgs := make([]string, len(env.Errors))
		for i, e := range env.Errors {
			msgs[i] = e.Message
		}
		return apperror.New(apperror.CodeGraphQLError,
			apperror.WithMessage(strings.Join(msgs, "; ")),
			apperror.WithContext("client", c.name))
	}

	if out == nil {
		return nil
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return apperror.New(apperror.CodeGraphQLError,
			apperror.WithMessage("response carried no data"),
			apperror.WithContext("client", c.name))
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return apperror.New(apperror.CodeGraphQLError,
			apperror.WithMessage("undecodable data payload"),
			apperror.WithCause(err),
			apperror.WithContext("client", c.name))
	}
	return nil
}

// classifyTransport separates unreachable-endpoint failures, the class a
// browser reports as a CORS/fetch error, from other transport faults so the
// caller can explain them specifically.
func (c *Client) classifyTransport(err error, endpoint string) error {
	if isUnreachable(err) {
		return apperror.New(apperror.CodeEndpointUnreachable,
			apperror.WithCause(err),
			apperror.WithContext("client", c.name),
			apperror.WithContext("endpoint", endpoint))
	}
	return apperror.New(apperror.CodeTransportError,
		apperror.WithCause(err),
		apperror.WithContext("client", c.name),
		apperror.WithContext("endpoint", endpoint))
}

func isUnreachable(err error) bool {
	var netErr *net.OpError
	if errors.As(err, &netErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		msg := urlErr.Error()
		for _, marker := range []string{"connection refused", "no such host", "Failed to fetch", "NetworkError", "CORS"} {
			if strings.Contains(msg, marker) {
				return true
			}
		}
	}
	return false
}
