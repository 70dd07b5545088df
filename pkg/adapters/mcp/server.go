// Package mcp exposes the bot as an MCP server, so agent hosts can
// drive a reservation conversation through tool calls.
package mcp

import (
	"context"
	"strings"

	"github.com/dmoraisb/maitred"
	"github.com/dmoraisb/maitred/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server wraps the bot and exposes it as an MCP server.
type Server struct {
	bot       *maitred.Bot
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance.
func NewServer(bot *maitred.Bot, version string) *Server {
	s := &Server{
		bot:       bot,
		mcpServer: server.NewMCPServer("maitred", strings.TrimSpace(version)),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	chat := mcp.NewTool("chat",
		mcp.WithDescription("Send a message to the reservation bot and get its replies. Starts the conversation with a greeting when the conversation is new."),
		mcp.WithString("conversation_id",
			mcp.Required(),
			mcp.Description("Identifier of the conversation; reuse it across calls to continue the dialog."),
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The user's message."),
		),
	)
	s.mcpServer.AddTool(chat, s.handleChat)

	reset := mcp.NewTool("reset",
		mcp.WithDescription("Forget a conversation entirely, discarding reservation and dialog state."),
		mcp.WithString("conversation_id",
			mcp.Required(),
			mcp.Description("Identifier of the conversation to forget."),
		),
	)
	s.mcpServer.AddTool(reset, s.handleReset)
}

func (s *Server) handleChat(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	conversationID, err := req.RequireString("conversation_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	replies, err := s.bot.Turn(ctx, domain.Message(conversationID, text))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(flatten(replies)), nil
}

func (s *Server) handleReset(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	conversationID, err := req.RequireString("conversation_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.bot.Sessions().Delete(ctx, conversationID); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("conversation forgotten"), nil
}

// flatten renders replies (cards included) as plain text for the tool
// result.
func flatten(replies []domain.Reply) string {
	var b strings.Builder
	for i, r := range replies {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(r.Text)
		if r.Card != nil {
			b.WriteString("\n" + r.Card.Title + ":")
			for _, item := range r.Card.Items {
				b.WriteString("\n- " + item)
			}
		}
	}
	return b.String()
}
