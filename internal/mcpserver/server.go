package mcpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"pitch-arena/internal/matchgateway"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server exposes the match gateway over MCP so LLM-driven players can
// join and play matches through tool calls instead of raw HTTP.
type Server struct {
	coord *matchgateway.Coordinator

	mcpServer  *server.MCPServer
	httpServer *server.StreamableHTTPServer
}

func New(coord *matchgateway.Coordinator) *Server {
	mcpSrv := server.NewMCPServer(
		"pitch-arena",
		"0.1.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithRecovery(),
		server.WithResourceRecovery(),
	)
	s := &Server{
		coord:      coord,
		mcpServer:  mcpSrv,
		httpServer: server.NewStreamableHTTPServer(mcpSrv, server.WithStateLess(true), server.WithDisableStreaming(true)),
	}
	s.registerPublicTools()
	s.registerMatchmakingTools()
	s.registerGameplayTools()
	s.registerResources()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.httpServer
}

func (s *Server) registerResources() {
	s.mcpServer.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"match://{match_id}/public_state",
			"match_public_state",
			mcp.WithTemplateDescription("Public match state by match id"),
			mcp.WithTemplateMIMEType("application/json"),
		),
		func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			raw := request.Params.URI
			if !strings.HasPrefix(raw, "match://") || !strings.HasSuffix(raw, "/public_state") {
				return nil, nil
			}
			matchID := strings.TrimPrefix(raw, "match://")
			matchID = strings.TrimSuffix(matchID, "/public_state")
			if matchID == "" {
				return nil, nil
			}
			state, ok := s.coord.PublicState(matchID)
			if !ok {
				return nil, nil
			}
			payload, err := json.Marshal(map[string]any{
				"match_id": matchID,
				"state":    state,
			})
			if err != nil {
				return nil, err
			}
			return []mcp.ResourceContents{
				mcp.TextResourceContents{
					URI:      raw,
					MIMEType: "application/json",
					Text:     string(payload),
				},
			}, nil
		},
	)
}
