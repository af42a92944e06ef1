package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPublicTools() {
	s.mcpServer.AddTool(
		mcp.NewTool(
			"list_matches",
			mcp.WithDescription("List running matches with phase, round and player count"),
		),
		s.handleListMatches,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"match_public_state",
			mcp.WithDescription("Spectator view of a match: no player's private holding is exposed"),
			mcp.WithString("match_id", mcp.Required(), mcp.Description("Match id")),
		),
		s.handleMatchPublicState,
	)
}

func (s *Server) handleListMatches(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return toolResult(map[string]any{"matches": s.coord.ListMatches()}), nil
}

func (s *Server) handleMatchPublicState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	matchID, err := request.RequireString("match_id")
	if err != nil {
		return toolError("invalid_request", err.Error()), nil
	}
	state, ok := s.coord.PublicState(matchID)
	if !ok {
		return toolError("match_not_found", "no match with that id"), nil
	}
	return toolResult(state), nil
}
