package mcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"tableflip.dev/palette/pkg/app"
)

// Transport selects the mechanism used to expose the MCP server.
type Transport string

const (
	// TransportHTTP serves MCP via the streamable HTTP transport.
	TransportHTTP Transport = "http"
	// TransportStdio serves MCP over stdio.
	TransportStdio Transport = "stdio"

	defaultAddr = "127.0.0.1:8080"
	defaultPath = "/mcp"
)

// ParseTransport maps a flag value to a Transport; empty is HTTP.
func ParseTransport(s string) (Transport, error) {
	switch t := Transport(strings.ToLower(strings.TrimSpace(s))); t {
	case "", TransportHTTP:
		return TransportHTTP, nil
	case TransportStdio:
		return t, nil
	}
	return "", fmt.Errorf("unsupported transport %q (expected http or stdio)", s)
}

// Runner serves the journal to MCP clients until its context ends.
type Runner struct {
	Service *app.Service
	Name    string
	Version string

	Transport Transport
	// Addr is host:port for the HTTP transport; port 0 picks a free one.
	Addr string
	// Path is the HTTP endpoint, "/mcp" when empty.
	Path    string
	TLSCert string
	TLSKey  string
	// Listening is told the endpoint URL once the HTTP listener is up.
	Listening func(url string)
}

// NewServer builds the MCP server with every palette tool and resource.
func NewServer(name, version string, svc *app.Service) *server.MCPServer {
	srv := server.NewMCPServer(
		fmt.Sprintf("%s MCP", name),
		version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions("Read, record and analyze mood journal entries. Each day holds at most four entries; colors are #RRGGBB."),
		server.WithResourceRecovery(),
		server.WithRecovery(),
	)

	s := NewService(svc)
	registerResources(srv, s)
	registerTools(srv, s)
	return srv
}

func (r Runner) Do(ctx context.Context) error {
	if r.Service == nil || r.Service.Persistence == nil {
		return errors.New("mcp runner requires persistence")
	}
	name := r.Name
	if name == "" {
		name = "palette"
	}
	version := r.Version
	if version == "" {
		version = "dev"
	}

	srv := NewServer(name, version, r.Service)
	defer r.Service.Wait()
	log := r.Service.Logger().With(zap.String("transport", string(r.Transport)))

	switch r.Transport {
	case "", TransportHTTP:
		return r.serveHTTP(ctx, srv, log)
	case TransportStdio:
		log.Debug("mcp: serving on stdio")
		return server.ServeStdio(srv)
	}
	return fmt.Errorf("unknown MCP transport %q", r.Transport)
}

func (r Runner) serveHTTP(ctx context.Context, srv *server.MCPServer, log *zap.Logger) error {
	tls := r.TLSCert != "" || r.TLSKey != ""
	if tls && (r.TLSCert == "" || r.TLSKey == "") {
		return errors.New("both tls cert and key must be provided")
	}
	path := endpointPath(r.Path)
	addr := r.Addr
	if addr == "" {
		addr = defaultAddr
	}

	mux := http.NewServeMux()
	mux.Handle(path, server.NewStreamableHTTPServer(srv))
	httpSrv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("mcp: listen %s: %w", addr, err)
	}
	url := endpointURL(addr, ln.Addr(), path, tls)
	log.Info("mcp: listening", zap.String("url", url))
	if r.Listening != nil {
		r.Listening(url)
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	if tls {
		err = httpSrv.ServeTLS(ln, r.TLSCert, r.TLSKey)
	} else {
		err = httpSrv.Serve(ln)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func endpointPath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return defaultPath
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

// endpointURL is the address a client should dial. Wildcard hosts are
// reported as the bound IP, or loopback.
func endpointURL(requested string, bound net.Addr, path string, tls bool) string {
	scheme := "http"
	if tls {
		scheme = "https"
	}
	host, _, err := net.SplitHostPort(requested)
	if err != nil {
		host = requested
	}
	port := ""
	if tcp, ok := bound.(*net.TCPAddr); ok {
		port = strconv.Itoa(tcp.Port)
		if host == "" || host == "0.0.0.0" || host == "::" {
			host = "127.0.0.1"
			if tcp.IP != nil && !tcp.IP.IsUnspecified() {
				host = tcp.IP.String()
			}
		}
	} else if _, p, err := net.SplitHostPort(bound.String()); err == nil {
		port = p
	}
	return fmt.Sprintf("%s://%s%s", scheme, net.JoinHostPort(host, port), path)
}
