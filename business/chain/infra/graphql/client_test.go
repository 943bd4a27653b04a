package graphql

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/fd1az/minaview/internal/apperror"
	"github.com/fd1az/minaview/internal/httpclient"
)

func newTestHTTPClient(t *testing.T) httpclient.Client {
	t.Helper()
	c, err := httpclient.NewInstrumentedClient(httpclient.WithProviderName("test"))
	if err != nil {
		t.Fatalf("NewInstrumentedClient: %v", err)
	}
	return c
}

func graphqlServer(t *testing.T, handler func(req request) (int, string)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("malformed request body: %v", err)
		}
		status, body := handler(req)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func TestClient_QuerySuccess(t *testing.T) {
	server := graphqlServer(t, func(req request) (int, string) {
		if req.Query == "" {
			t.Error("empty query document")
		}
		return 200, `{"data":{"blocks":[{"blockHeight":42}]}}`
	})
	defer server.Close()

	c := NewClient("archive", newTestHTTPClient(t))
	c.SetEndpoint(server.URL)

	var data blocksData
	if err := c.Query(context.Background(), queryBestHeight, nil, &data); err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(data.Blocks) != 1 || data.Blocks[0].BlockHeight != 42 {
		t.Errorf("decoded %+v", data)
	}
}

func TestClient_GraphQLErrorsFailClosed(t *testing.T) {
	// Partial data next to errors must be discarded, never decoded.
	server := graphqlServer(t, func(req request) (int, string) {
		return 200, `{"data":{"blocks":[{"blockHeight":42}]},"errors":[{"message":"field exploded"},{"message":"twice"}]}`
	})
	defer server.Close()

	c := NewClient("archive", newTestHTTPClient(t))
	c.SetEndpoint(server.URL)

	var data blocksData
	err := c.Query(context.Background(), queryBestHeight, nil, &data)
	if !apperror.IsCode(err, apperror.CodeGraphQLError) {
		t.Fatalf("expected GRAPHQL_ERROR, got %v", err)
	}
	if len(data.Blocks) != 0 {
		t.Error("partial data must not be decoded")
	}
}

func TestClient_NonOKIsTransportError(t *testing.T) {
	server := graphqlServer(t, func(req request) (int, string) {
		// Body happens to look like a GraphQL error; status wins, the body
		// is never parsed.
		return 502, `{"errors":[{"message":"ignored"}]}`
	})
	defer server.Close()

	c := NewClient("archive", newTestHTTPClient(t))
	c.SetEndpoint(server.URL)

	err := c.Query(context.Background(), queryBestHeight, nil, nil)
	if !apperror.IsCode(err, apperror.CodeTransportError) {
		t.Fatalf("expected TRANSPORT_ERROR, got %v", err)
	}
	if apperror.IsCode(err, apperror.CodeGraphQLError) {
		t.Fatal("non-2xx must not classify as a GraphQL error")
	}
}

func TestClient_UnreachableEndpoint(t *testing.T) {
	c := NewClient("daemon", newTestHTTPClient(t))
	c.SetEndpoint("http://127.0.0.1:1") // nothing listens on port 1

	err := c.Query(context.Background(), queryPooledUserCommands, nil, nil)
	if !apperror.IsCode(err, apperror.CodeEndpointUnreachable) {
		t.Fatalf("expected ENDPOINT_UNREACHABLE, got %v", err)
	}
}

func TestClient_NoEndpointConfigured(t *testing.T) {
	c := NewClient("archive", newTestHTTPClient(t))

	err := c.Query(context.Background(), queryBestHeight, nil, nil)
	if !apperror.IsCode(err, apperror.CodeConfigurationError) {
		t.Fatalf("expected CONFIGURATION_ERROR, got %v", err)
	}
}

func TestClient_EndpointSwap(t *testing.T) {
	var mu sync.Mutex
	hits := map[string]int{}

	mkServer := func(name string) *httptest.Server {
		return graphqlServer(t, func(req request) (int, string) {
			mu.Lock()
			hits[name]++
			mu.Unlock()
			return 200, `{"data":{"blocks":[]}}`
		})
	}
	first := mkServer("first")
	defer first.Close()
	second := mkServer("second")
	defer second.Close()

	c := NewClient("archive", newTestHTTPClient(t))
	c.SetEndpoint(first.URL)

	var data blocksData
	if err := c.Query(context.Background(), queryBestHeight, nil, &data); err != nil {
		t.Fatalf("Query: %v", err)
	}

	c.SetEndpoint(second.URL)
	if c.Endpoint() != second.URL {
		t.Errorf("endpoint = %s, want %s", c.Endpoint(), second.URL)
	}
	if err := c.Query(context.Background(), queryBestHeight, nil, &data); err != nil {
		t.Fatalf("Query after swap: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if hits["first"] != 1 || hits["second"] != 1 {
		t.Errorf("hits = %v, want one per endpoint", hits)
	}
}

func TestClient_NullDataWithoutErrors(t *testing.T) {
	server := graphqlServer(t, func(req request) (int, string) {
		return 200, `{"data":null}`
	})
	defer server.Close()

	c := NewClient("archive", newTestHTTPClient(t))
	c.SetEndpoint(server.URL)

	var data blocksData
	err := c.Query(context.Background(), queryBestHeight, nil, &data)
	if !apperror.IsCode(err, apperror.CodeGraphQLError) {
		t.Fatalf("expected GRAPHQL_ERROR for null data, got %v", err)
	}
}
