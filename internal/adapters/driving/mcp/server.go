package mcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/discovery-updater/internal/logger"
)

// Version is the MCP server version.
const Version = "0.1.0"

const serverInstructions = `discovery-updater answers questions about a discovery-artifact-manager checkout.

Use resolve_discovery_documents to map API ids (name:version) to discovery document
paths, optionally keeping only preferred APIs or skipping ids. Use list_discovery_index
to see which APIs the index marks as preferred. Every request may name a repo_dir; the
server's --repo-dir is used otherwise.`

// shutdownTimeout bounds how long in-flight HTTP sessions may take to drain.
const shutdownTimeout = 5 * time.Second

var log = logger.With("mcp")

// Server exposes the document resolver over MCP.
type Server struct {
	ports  *Ports
	server *mcp.Server
}

// NewServer creates a new MCP server with the given ports.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{
		ports: ports,
		server: mcp.NewServer(
			&mcp.Implementation{Name: "discovery-updater", Version: Version},
			&mcp.ServerOptions{Instructions: serverInstructions},
		),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run serves a single client over stdio until ctx is cancelled or the
// client disconnects.
func (s *Server) Run(ctx context.Context) error {
	log.Debug("serving stdio for %s", s.defaultRepo())
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Handler returns the streamable HTTP handler. Every HTTP session shares the
// same tools and resources.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)
}

// RunHTTP listens on addr and serves streamable HTTP until ctx is cancelled.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts HTTP connections on ln until ctx is cancelled, then drains
// open requests for up to shutdownTimeout before closing the rest. ln is
// closed on return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		drainCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(drainCtx); err != nil {
			log.Warn("closing remaining MCP sessions: %v", err)
			httpServer.Close() //nolint:errcheck
		}
	}()

	log.Info("serving http://%s for %s", ln.Addr(), s.defaultRepo())
	if err := httpServer.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-stopped
	return nil
}

func (s *Server) defaultRepo() string {
	if s.ports.RepoDir == "" {
		return "requests naming their own repo_dir"
	}
	return s.ports.RepoDir
}
