package mcp

import (
	"context"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestParseTransport(t *testing.T) {
	for in, want := range map[string]Transport{"": TransportHTTP, "HTTP": TransportHTTP, " stdio ": TransportStdio} {
		got, err := ParseTransport(in)
		if err != nil || got != want {
			t.Fatalf("ParseTransport(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseTransport("sse"); err == nil {
		t.Fatal("expected unsupported transport")
	}
}

func TestEndpointURL(t *testing.T) {
	bound := &net.TCPAddr{IP: net.IPv4zero, Port: 9000}
	tests := []struct {
		requested string
		tls       bool
		want      string
	}{
		{requested: "127.0.0.1:0", want: "http://127.0.0.1:9000/mcp"},
		{requested: "0.0.0.0:9000", want: "http://127.0.0.1:9000/mcp"},
		{requested: ":9000", tls: true, want: "https://127.0.0.1:9000/mcp"},
		{requested: "[::1]:9000", want: "http://[::1]:9000/mcp"},
	}
	for _, tt := range tests {
		if got := endpointURL(tt.requested, bound, endpointPath(""), tt.tls); got != tt.want {
			t.Fatalf("endpointURL(%q) = %q, want %q", tt.requested, got, tt.want)
		}
	}
	if got := endpointPath("journal"); got != "/journal" {
		t.Fatalf("endpointPath = %q", got)
	}
}

func TestRunnerServesHTTPUntilCancelled(t *testing.T) {
	svc := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	urls := make(chan string, 1)
	r := Runner{
		Service:   svc.App,
		Transport: TransportHTTP,
		Addr:      "127.0.0.1:0",
		Listening: func(url string) { urls <- url },
	}
	done := make(chan error, 1)
	go func() { done <- r.Do(ctx) }()

	var url string
	select {
	case url = <-urls:
	case err := <-done:
		t.Fatalf("runner exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("runner never listened")
	}
	if !strings.HasPrefix(url, "http://127.0.0.1:") || !strings.HasSuffix(url, "/mcp") {
		t.Fatalf("unexpected url %q", url)
	}
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Head(url)
	if err != nil {
		t.Fatalf("head: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		t.Fatal("endpoint not mounted")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("runner: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("runner did not stop")
	}
}

func TestRunnerRejectsHalfTLS(t *testing.T) {
	svc := newTestService(t)
	r := Runner{Service: svc.App, TLSCert: "cert.pem"}
	if err := r.Do(context.Background()); err == nil {
		t.Fatal("expected tls error")
	}
}
