package service

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func TestIsLoopbackHost(t *testing.T) {
	tests := []struct {
		host string
		want bool
	}{
		{"localhost", true},
		{"LOCALHOST", true},
		{"127.0.0.1", true},
		{"::1", true},
		{" localhost ", true},
		{"example.com", false},
		{"127.0.0.2", false},
		{"", false},
		{"local", false},
	}
	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			if got := isLoopbackHost(tt.host); got != tt.want {
				t.Errorf("isLoopbackHost(%q) = %v, want %v", tt.host, got, tt.want)
			}
		})
	}
}

func TestNormalizeHost(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		wantOk bool
	}{
		{"localhost:8001", "localhost", true},
		{"example.com:443", "example.com", true},
		{"[::1]:8001", "::1", true},
		{"[::1]", "::1", true},
		{"::1", "::1", true},
		{"example.com", "example.com", true},
		{"", "", false},
		{"  ", "", false},
		{"[::1", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := normalizeHost(tt.input)
			if ok != tt.wantOk {
				t.Errorf("normalizeHost(%q) ok = %v, want %v", tt.input, ok, tt.wantOk)
			}
			if got != tt.want {
				t.Errorf("normalizeHost(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseAllowedHosts(t *testing.T) {
	got := parseAllowedHosts([]string{" Calc.Example.COM ", "", "other.example.com"})
	if len(got) != 2 {
		t.Fatalf("expected 2 hosts, got %d: %v", len(got), got)
	}
	if _, ok := got["calc.example.com"]; !ok {
		t.Error("expected lowercased calc.example.com")
	}
	if _, ok := got["other.example.com"]; !ok {
		t.Error("expected other.example.com")
	}
}

func TestValidateLocalRequest(t *testing.T) {
	transport := NewHTTPTransport("localhost:8001")

	t.Run("loopback host allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "http://localhost:8001/health", nil)
		req.Host = "localhost:8001"
		if err := transport.validateLocalRequest(req); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("remote host rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "http://evil.example.com/health", nil)
		req.Host = "evil.example.com"
		if err := transport.validateLocalRequest(req); err == nil {
			t.Error("expected error for non-loopback host")
		}
	})

	t.Run("remote origin rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "http://localhost:8001/health", nil)
		req.Host = "localhost:8001"
		req.Header.Set("Origin", "http://evil.example.com")
		if err := transport.validateLocalRequest(req); err == nil {
			t.Error("expected error for non-loopback origin")
		}
	})

	t.Run("loopback origin allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "http://localhost:8001/health", nil)
		req.Host = "localhost:8001"
		req.Header.Set("Origin", "http://127.0.0.1:3000")
		if err := transport.validateLocalRequest(req); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("configured host allowed", func(t *testing.T) {
		configured := NewHTTPTransport("localhost:8001")
		configured.allowedHosts = parseAllowedHosts([]string{"calc.example.com"})
		req := httptest.NewRequest(http.MethodGet, "http://calc.example.com/health", nil)
		req.Host = "calc.example.com"
		if err := configured.validateLocalRequest(req); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestAllowedHostsEnv(t *testing.T) {
	t.Setenv("MCPCALC_ALLOWED_HOSTS", "calc.example.com, other.example.com")
	transport := NewHTTPTransport("localhost:8001")
	if !transport.isAllowedHostHeader("calc.example.com:8001") {
		t.Error("expected env-configured host to be allowed")
	}
	if transport.isAllowedHostHeader("evil.example.com") {
		t.Error("expected unlisted host to be rejected")
	}
}

func TestHandleHealth(t *testing.T) {
	server, err := newServer()
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	transport := NewHTTPTransportWithServer("localhost:8001", server.mcpServer)
	ts := httptest.NewServer(transport.Handler())
	defer ts.Close()

	t.Run("ok", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/health")
		if err != nil {
			t.Fatalf("get health: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("expected 200, got %d", resp.StatusCode)
		}
		body, _ := io.ReadAll(resp.Body)
		if string(body) != "OK" {
			t.Errorf("expected OK body, got %q", body)
		}
	})

	t.Run("method not allowed", func(t *testing.T) {
		resp, err := http.Post(ts.URL+"/health", "text/plain", strings.NewReader(""))
		if err != nil {
			t.Fatalf("post health: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", resp.StatusCode)
		}
	})

	t.Run("bad origin", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, ts.URL+"/health", nil)
		if err != nil {
			t.Fatalf("new request: %v", err)
		}
		req.Header.Set("Origin", "http://evil.example.com")
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("do request: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
	})
}

func TestSSETransportServesCalculator(t *testing.T) {
	server, err := newServer()
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	transport := NewHTTPTransportWithServer("localhost:8001", server.mcpServer)
	ts := httptest.NewServer(transport.Handler())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, &mcp.SSEClientTransport{Endpoint: ts.URL + "/sse"}, nil)
	if err != nil {
		t.Fatalf("connect over SSE: %v", err)
	}
	defer session.Close()

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "add",
		Arguments: map[string]any{"a": 5, "b": 3},
	})
	if err != nil {
		t.Fatalf("call add: %v", err)
	}
	if result == nil || result.IsError {
		t.Fatalf("add failed: %+v", result)
	}
	if got := decodeStructuredContent[valuePayload](t, result.StructuredContent).Result; got != 8 {
		t.Errorf("expected 8, got %v", got)
	}
}

func TestStartStopsOnContextCancel(t *testing.T) {
	server, err := newServer()
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	transport := NewHTTPTransportWithServer("127.0.0.1:0", server.mcpServer)

	ctx, cancel := context.WithCancel(context.Background())
	startErr := make(chan error, 1)
	go func() {
		startErr <- transport.Start(ctx)
	}()

	// Give the listener a moment to come up before cancelling.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-startErr:
		if err != nil {
			t.Fatalf("start returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("start did not stop after cancel")
	}
}

func TestStartListenError(t *testing.T) {
	server, err := newServer()
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	transport := NewHTTPTransportWithServer("127.0.0.1:0", server.mcpServer)

	original := listenTCP
	listenTCP = func(network, addr string) (net.Listener, error) {
		return nil, errors.New("listen refused")
	}
	defer func() { listenTCP = original }()

	err = transport.Start(context.Background())
	if err == nil {
		t.Fatal("expected error when listener fails")
	}
	if !strings.Contains(err.Error(), "listen refused") {
		t.Errorf("expected listen error, got: %v", err)
	}
}
