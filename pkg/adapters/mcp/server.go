// Package mcp exposes the component as a Model Context Protocol server.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/templates/internal/logging"
	"github.com/aretw0/templates/pkg/describe"
	"github.com/aretw0/templates/pkg/domain"
	"github.com/aretw0/templates/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ToolRender is the name of the rendering tool.
const ToolRender = "render_template"

// ResourceDescribe is the URI of the self-description resource.
const ResourceDescribe = "templates://describe"

// Server wraps a component and exposes it as an MCP Server.
type Server struct {
	invoker   ports.Invoker
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// NewServer creates a new MCP Server instance.
func NewServer(invoker ports.Invoker, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		invoker:   invoker,
		mcpServer: server.NewMCPServer("templates-mcp", describe.ComponentVersion),
		logger:    logger,
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server, for hosts that mount their own transport.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	renderTool := mcp.NewTool(ToolRender,
		mcp.WithDescription("Render a template invocation and return the component result envelope."),
		mcp.WithString("invocation", mcp.Required(),
			mcp.Description(`JSON invocation: {"config", "msg", "payload", "state"?, "node_id"?}`)),
		mcp.WithString("operation", mcp.Description(`Operation identifier (default "text")`)),
	)
	s.mcpServer.AddTool(renderTool, s.handleRender)
}

func (s *Server) handleRender(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	operation, _ := args["operation"].(string)
	if operation == "" {
		operation = domain.OperationText
	}
	invocation, _ := args["invocation"].(string)
	if invocation == "" {
		return mcp.NewToolResultError("invocation is required"), nil
	}

	out, err := s.invoker.Invoke(ctx, operation, []byte(invocation))
	if err != nil {
		s.logger.Warn("MCP render rejected", "operation", operation, "error", err)
		kind := domain.KindOf(err)
		if kind == "" {
			return nil, err
		}
		return mcp.NewToolResultError(fmt.Sprintf("%s: %v", kind, err)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(ResourceDescribe, "Component self-description",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		d, err := describe.Describe()
		if err != nil {
			return nil, fmt.Errorf("failed to describe component: %w", err)
		}
		jsonBytes, err := json.Marshal(d)
		if err != nil {
			return nil, fmt.Errorf("failed to encode description: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      ResourceDescribe,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
