// Package mcpserver exposes the Higgsfield client as MCP tools and resources.
package mcpserver

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"higgsfield-mcp/internal/domain"
	"higgsfield-mcp/internal/infra"
	"higgsfield-mcp/internal/providers/higgsfield"
)

const serverName = "Higgsfield AI"

const instructions = `This server provides access to Higgsfield AI image and video generation.

- generate_image turns a text prompt into images with the Soul model.
- generate_video animates an image with a motion preset using the DoP model.
- create_character registers a reusable face reference for consistent characters.
- Browse presets through the higgsfield://styles, higgsfield://motions and higgsfield://characters resources.

Generation is asynchronous. Every generate call returns a job_set_id; poll get_generation_status
with it roughly every 10 seconds until the status is completed, failed or nsfw. Results are retained for 7 days.`

// Provider is the subset of the Higgsfield client the tools depend on.
type Provider interface {
	GenerateImage(ctx context.Context, req higgsfield.ImageRequest) (*domain.JobSet, error)
	GenerateVideo(ctx context.Context, req higgsfield.VideoRequest) (*domain.JobSet, error)
	CreateCharacter(ctx context.Context, name string, imageURLs []string) (*domain.Character, error)
	GetJobSet(ctx context.Context, jobSetID string) (*domain.JobSet, error)
	ListCharacters(ctx context.Context, page, pageSize int) (*domain.CharacterPage, error)
	GetCharacter(ctx context.Context, characterID string) (*domain.Character, error)
	DeleteCharacter(ctx context.Context, characterID string) error
	ListStyles(ctx context.Context) ([]domain.Style, error)
	ListMotions(ctx context.Context) ([]domain.Motion, error)
}

var _ Provider = (*higgsfield.Client)(nil)

// Server owns the MCP registration and its transports.
type Server struct {
	provider Provider
	logger   *infra.Logger
	mcp      *server.MCPServer
}

// New registers every tool and resource against provider.
func New(provider Provider, logger *infra.Logger, version string) *Server {
	if logger == nil {
		logger = infra.NopLogger()
	}
	s := &Server{provider: provider, logger: logger}
	s.mcp = server.NewMCPServer(
		serverName,
		version,
		server.WithInstructions(instructions),
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithToolHandlerMiddleware(s.logToolCalls),
		server.WithRecovery(),
	)
	s.registerTools()
	s.registerResources()
	return s
}

// MCP returns the underlying protocol server.
func (s *Server) MCP() *server.MCPServer {
	return s.mcp
}

// ServeStdio speaks MCP over stdin/stdout until ctx is cancelled.
func (s *Server) ServeStdio(ctx context.Context) error {
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(log.New(s.logger, "", 0))
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}

// HTTPHandler returns the streamable HTTP transport.
func (s *Server) HTTPHandler() http.Handler {
	return server.NewStreamableHTTPServer(s.mcp)
}

func (s *Server) logToolCalls(next server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		callID := uuid.NewString()
		start := time.Now()
		logger := s.logger.With().
			Str("call_id", callID).
			Str("tool", req.Params.Name).
			Logger()
		logger.Debug().Msg("tool call started")

		result, err := next(ctx, req)

		event := logger.Info()
		if err != nil || (result != nil && result.IsError) {
			event = logger.Warn().Err(err)
		}
		event.Dur("elapsed", time.Since(start)).
			Bool("is_error", result != nil && result.IsError).
			Msg("tool call finished")
		return result, err
	}
}
