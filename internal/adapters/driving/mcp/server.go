package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/zaibi117/readme-maker/internal/logger"
)

// Version is the MCP server version.
const Version = "0.1.0"

// instructions is sent to clients on initialize.
const instructions = `readme-maker writes README.md files for GitHub repositories.
Call generate_readme with "owner/repo" to build one (this can take minutes for
large repositories). get_readme and the readme:// resources return READMEs that
were already generated; cached_summaries shows the per-file summaries they were
built from.`

const shutdownTimeout = 5 * time.Second

// Server exposes README generation and the stored results over MCP.
type Server struct {
	ports  *Ports
	server *mcp.Server
}

// NewServer creates a server. Generation tools are only registered when
// ports carries a processor factory.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{
		ports: ports,
		server: mcp.NewServer(
			&mcp.Implementation{Name: "readme-maker", Version: Version},
			&mcp.ServerOptions{Instructions: instructions},
		),
	}
	s.registerTools()
	s.registerResources()
	return s, nil
}

// Run serves over stdio until ctx is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	logger.Debug("mcp: serving on stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves streamable HTTP on addr until ctx is cancelled.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	stop := context.AfterFunc(ctx, func() { shutdown(httpServer) })
	defer stop()

	logger.Info("mcp: listening on %s", addr)
	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func shutdown(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("mcp: shutdown: %v", err)
	}
}
