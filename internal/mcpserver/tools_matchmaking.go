package mcpserver

import (
	"context"

	"pitch-arena/internal/matchgateway"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerMatchmakingTools() {
	s.mcpServer.AddTool(
		mcp.NewTool(
			"join_match",
			mcp.WithDescription("Join the open lobby as a named player. Returns session_id for all later calls."),
			mcp.WithString("name", mcp.Required(), mcp.Description("Display name")),
		),
		s.handleJoinMatch,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"leave_match",
			mcp.WithDescription("Leave the current match; the match continues without you."),
			mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id from join_match")),
		),
		s.handleLeaveMatch,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"start_match",
			mcp.WithDescription("Host-only: close the lobby early, topping the roster up with filler players."),
			mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id from join_match")),
		),
		s.handleAction("start"),
	)
}

func (s *Server) handleJoinMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return toolError("invalid_request", err.Error()), nil
	}
	resp, joinErr := s.coord.Join(matchgateway.JoinRequest{Name: name})
	if joinErr != nil {
		return gatewayError(joinErr), nil
	}
	return toolResult(resp), nil
}

func (s *Server) handleLeaveMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return toolError("invalid_request", err.Error()), nil
	}
	if leaveErr := s.coord.Leave(sessionID); leaveErr != nil {
		return gatewayError(leaveErr), nil
	}
	return toolResult(map[string]any{"ok": true}), nil
}
