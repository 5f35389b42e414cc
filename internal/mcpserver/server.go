// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the note adapter for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/ansuz/internal/api"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/noteadapter"
)

// Server wraps the MCP server with note registry tools.
type Server struct {
	mcp     *server.MCPServer
	adapter api.NoteAdapter
}

// New creates a new MCP server with the note tools registered.
func New(adapter api.NoteAdapter) *Server {
	s := &Server{adapter: adapter}

	s.mcp = server.NewMCPServer(
		"Ansuz",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("get_notes",
		mcp.WithDescription("Read notes from the chain-backed registry. "+
			"Pass an id for a single note, or identity/url/cursor/limit for a paginated query."),
		mcp.WithString("identity", mcp.Description("Identity to read notes for (e.g. an Ethereum address)")),
		mcp.WithString("platform", mcp.Description("Identity platform (default Ethereum)")),
		mcp.WithString("id", mcp.Description("Composite note id for a single lookup (e.g. 7-10)")),
		mcp.WithString("url", mcp.Description("Only notes pointing at this external URL")),
		mcp.WithString("cursor", mcp.Description("Opaque pagination cursor from a previous page")),
		mcp.WithString("limit", mcp.Description("Page size")),
	), s.getNotes)

	s.mcp.AddTool(mcp.NewTool("post_note",
		mcp.WithDescription("Write a note to the chain-backed registry. "+
			"Action is add (default), update, or remove. Input is the note as a JSON object; "+
			"update and remove require its id field."),
		mcp.WithString("identity", mcp.Required(), mcp.Description("Identity performing the write")),
		mcp.WithString("platform", mcp.Description("Identity platform (default Ethereum)")),
		mcp.WithString("action", mcp.Description("add, update, or remove")),
		mcp.WithString("input", mcp.Description("Note content as a JSON object")),
	), s.postNote)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) getNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	opts := noteadapter.GetOptions{}
	if v, err := req.RequireString("identity"); err == nil {
		opts.Identity = v
	}
	if v, err := req.RequireString("platform"); err == nil {
		opts.Platform = v
	}
	if v, err := req.RequireString("id"); err == nil {
		opts.Filter.ID = v
	}
	if v, err := req.RequireString("url"); err == nil {
		opts.Filter.URL = v
	}
	if v, err := req.RequireString("cursor"); err == nil {
		opts.Cursor = v
	}
	if v, err := req.RequireString("limit"); err == nil {
		opts.Limit, _ = strconv.Atoi(v)
	}

	page, err := s.adapter.Get(ctx, opts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(page, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) postNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	identity, err := req.RequireString("identity")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	opts := noteadapter.SetOptions{Identity: identity}
	if v, err := req.RequireString("platform"); err == nil {
		opts.Platform = v
	}
	if v, err := req.RequireString("action"); err == nil {
		opts.Action = noteadapter.Action(v)
	}

	var input models.Note
	if v, err := req.RequireString("input"); err == nil && v != "" {
		if err := json.Unmarshal([]byte(v), &input); err != nil {
			return mcp.NewToolResultError("input is not a valid JSON object: " + err.Error()), nil
		}
	}

	outcome, err := s.adapter.Set(ctx, opts, input)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(outcome, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}
