package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/relink-labs/relink-cli/internal/core/domain"
)

// uriScheme is the custom URI scheme for Relink resources.
const uriScheme = "relink://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for the closed reason set and its reciprocal
	// labels, so assistants can construct valid sync reasons.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "match-reasons",
		Name:        "match-reasons",
		Description: "Known match reasons and their reciprocal back-link labels",
		MIMEType:    "application/json",
	}, s.handleReasonsResource)
}

// handleReasonsResource returns the reason/label table.
func (s *Server) handleReasonsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type reasonInfo struct {
		Reason     string `json:"reason"`
		Reciprocal string `json:"reciprocal"`
	}

	reasons := domain.KnownReasons()
	infos := make([]reasonInfo, len(reasons))
	for i, reason := range reasons {
		infos[i] = reasonInfo{
			Reason:     string(reason),
			Reciprocal: reason.ReciprocalLabel(),
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling reasons: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
