package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/ghfinder/internal/core/domain"
	"github.com/custodia-labs/ghfinder/internal/logger"
)

// Version is the MCP server version.
const Version = "0.1.0"

// shutdownTimeout bounds how long in-flight GitHub lookups may finish once
// the HTTP server is asked to stop.
const shutdownTimeout = 5 * time.Second

// instructions tells clients how the tools relate to each other.
const instructions = "Find GitHub users with " + toolSearchUsers + " (query of at least 3 characters, " +
	"pages of up to 100, at most 1000 results reachable), then page through one user's " +
	"repositories, most recently updated first, with " + toolListRepositories + ". " +
	"Failures are returned as the same short messages the terminal interface shows."

// Server exposes GitHub user search and repository listing to MCP clients.
type Server struct {
	ports    *Ports
	settings domain.Settings
	server   *mcp.Server
}

// NewServer creates a new MCP server with the given ports. Zero-valued
// settings take the interactive defaults.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	settings := ports.Settings
	settings.Normalize()

	s := &Server{
		ports:    ports,
		settings: settings,
		server: mcp.NewServer(
			&mcp.Implementation{Name: "ghfinder", Version: Version},
			&mcp.ServerOptions{Instructions: instructions},
		),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run serves a single client over stdin/stdout, the way editors launch
// `ghfinder mcp serve`. It blocks until the client disconnects or ctx ends.
func (s *Server) Run(ctx context.Context) error {
	logger.Debug("mcp: serving on stdio against %s", s.settings.GitHub.BaseURL)
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Handler returns the streamable HTTP handler. Every session shares the
// same directory service, so concurrent clients asking for the same page
// cost one upstream request.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)
}

// RunHTTP serves Handler on addr for `ghfinder mcp serve --port`.
// Cancelling ctx stops accepting sessions and waits up to shutdownTimeout
// for in-flight lookups.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("mcp: serving on %s against %s", addr, s.settings.GitHub.BaseURL)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("mcp: shutdown: %v", err)
		}
	}()

	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
