package mcpserver

import (
	"context"
	"strings"

	"pitch-arena/internal/matchgateway"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerGameplayTools() {
	s.mcpServer.AddTool(
		mcp.NewTool(
			"match_state",
			mcp.WithDescription("Current match state from your point of view: phase, timer, shop, holding, scores."),
			mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id from join_match")),
		),
		s.handleMatchState,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"buy_card",
			mcp.WithDescription("Buy the technology card at the given shop index. Preparation phase only."),
			mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id from join_match")),
			mcp.WithNumber("index", mcp.Required(), mcp.Description("Zero-based index into the shop offer")),
		),
		s.handleBuyCard,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"reroll_shop",
			mcp.WithDescription("Pay the reroll cost for a fresh shop offer. Preparation phase only."),
			mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id from join_match")),
		),
		s.handleAction("reroll"),
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"field_cards",
			mcp.WithDescription("Choose which held cards to field this round. Replaces the previous selection."),
			mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id from join_match")),
			mcp.WithString("card_ids", mcp.Required(), mcp.Description("Comma-separated card ids from your holding")),
		),
		s.handleFieldCards,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"submit_pitch",
			mcp.WithDescription("Submit or overwrite your pitch text for this round. Preparation phase only."),
			mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id from join_match")),
			mcp.WithString("pitch", mcp.Required(), mcp.Description("Pitch text")),
		),
		s.handleSubmitPitch,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"set_ready",
			mcp.WithDescription("Signal readiness; the match advances when every connected player is ready."),
			mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id from join_match")),
		),
		s.handleAction("ready"),
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"next_round",
			mcp.WithDescription("Host-only: advance past the round result without waiting for the timer."),
			mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id from join_match")),
		),
		s.handleAction("next"),
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"restart_match",
			mcp.WithDescription("Host-only: reset a finished match back to the lobby."),
			mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id from join_match")),
		),
		s.handleAction("restart"),
	)
}

// handleAction covers the argument-free verbs that differ only by type.
func (s *Server) handleAction(actionType string) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sessionID, err := request.RequireString("session_id")
		if err != nil {
			return toolError("invalid_request", err.Error()), nil
		}
		resp, actErr := s.coord.SubmitAction(sessionID, matchgateway.ActionRequest{Type: actionType})
		if actErr != nil {
			return gatewayError(actErr), nil
		}
		return toolResult(resp), nil
	}
}

func (s *Server) handleMatchState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return toolError("invalid_request", err.Error()), nil
	}
	snap, stateErr := s.coord.State(sessionID)
	if stateErr != nil {
		return gatewayError(stateErr), nil
	}
	return toolResult(snap), nil
}

func (s *Server) handleBuyCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return toolError("invalid_request", err.Error()), nil
	}
	index, err := request.RequireInt("index")
	if err != nil {
		return toolError("invalid_request", err.Error()), nil
	}
	resp, actErr := s.coord.SubmitAction(sessionID, matchgateway.ActionRequest{Type: "purchase", Index: index})
	if actErr != nil {
		return gatewayError(actErr), nil
	}
	return toolResult(resp), nil
}

func (s *Server) handleFieldCards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return toolError("invalid_request", err.Error()), nil
	}
	raw, err := request.RequireString("card_ids")
	if err != nil {
		return toolError("invalid_request", err.Error()), nil
	}
	var ids []string
	for _, part := range strings.Split(raw, ",") {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	resp, actErr := s.coord.SubmitAction(sessionID, matchgateway.ActionRequest{Type: "field", CardIDs: ids})
	if actErr != nil {
		return gatewayError(actErr), nil
	}
	return toolResult(resp), nil
}

func (s *Server) handleSubmitPitch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return toolError("invalid_request", err.Error()), nil
	}
	pitch, err := request.RequireString("pitch")
	if err != nil {
		return toolError("invalid_request", err.Error()), nil
	}
	resp, actErr := s.coord.SubmitAction(sessionID, matchgateway.ActionRequest{Type: "pitch", Text: pitch})
	if actErr != nil {
		return gatewayError(actErr), nil
	}
	return toolResult(resp), nil
}
