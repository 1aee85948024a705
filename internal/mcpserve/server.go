// Package mcpserve exposes the app and list operations as MCP tools.
package mcpserve

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/agentic-research/playmap/api"
	"github.com/agentic-research/playmap/internal/play"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Operations is the subset of play.Client the tools call.
type Operations interface {
	App(ctx context.Context, opts play.AppOptions) (api.Record, error)
	List(ctx context.Context, opts play.ListOptions) (play.ListResult, error)
}

// Server wires Operations into MCP tool handlers.
type Server struct {
	ops    Operations
	logger *slog.Logger
}

// New returns a Server. A nil logger means slog.Default().
func New(ops Operations, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{ops: ops, logger: logger}
}

// MCP builds the protocol server with both tools registered.
func (s *Server) MCP(version string) *server.MCPServer {
	m := server.NewMCPServer("playmap", version, server.WithToolCapabilities(false))

	m.AddTool(mcp.NewTool("app",
		mcp.WithDescription("Fetch one app's store listing and return its details as JSON."),
		mcp.WithString("app_id", mcp.Required(), mcp.Description("Package name, e.g. com.google.android.apps.maps")),
		mcp.WithString("lang", mcp.Description("Two letter language code"), mcp.DefaultString(play.DefaultLang)),
		mcp.WithString("country", mcp.Description("Two letter country code"), mcp.DefaultString(play.DefaultCountry)),
	), s.handleApp)

	m.AddTool(mcp.NewTool("list",
		mcp.WithDescription("List the apps shown on a store category page as JSON."),
		mcp.WithString("category", mcp.Description("Category id, e.g. GAME_ACTION (default APPLICATION)")),
		mcp.WithString("lang", mcp.Description("Two letter language code"), mcp.DefaultString(play.DefaultLang)),
		mcp.WithString("country", mcp.Description("Two letter country code"), mcp.DefaultString(play.DefaultCountry)),
		mcp.WithBoolean("not_merge", mcp.Description("Return the collection groups instead of one merged list")),
	), s.handleList)

	return m
}

// ServeStdio serves MCP over stdin/stdout until the client disconnects.
func (s *Server) ServeStdio(version string) error {
	return server.ServeStdio(s.MCP(version))
}

func (s *Server) handleApp(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("app_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rec, err := s.ops.App(ctx, play.AppOptions{
		AppID:   id,
		Lang:    req.GetString("lang", play.DefaultLang),
		Country: req.GetString("country", play.DefaultCountry),
	})
	if err != nil {
		s.logger.Warn("app tool failed", "app_id", id, "err", err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(rec)
}

func (s *Server) handleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	opts := play.ListOptions{
		Category: req.GetString("category", ""),
		Lang:     req.GetString("lang", play.DefaultLang),
		Country:  req.GetString("country", play.DefaultCountry),
		NotMerge: req.GetBool("not_merge", false),
	}
	res, err := s.ops.List(ctx, opts)
	if err != nil {
		s.logger.Warn("list tool failed", "category", opts.Category, "err", err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(res.Value())
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(data)), nil
}
