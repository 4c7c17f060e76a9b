package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jnphilipp/papis-search-provider/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"free-text query, e.g. 'deep learning author:lecun'; empty lists every document"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []MetaOutput `json:"results"`
	Count   int          `json:"count"`
	Total   int          `json:"total"`
}

// MetaOutput is the display data of one document.
type MetaOutput struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Found       bool   `json:"found"`
}

// ResultMetasInput is the input schema for the result_metas tool.
type ResultMetasInput struct {
	IDs []string `json:"ids" jsonschema:"papis_id values to describe"`
}

// ResultMetasOutput is the output schema for the result_metas tool.
type ResultMetasOutput struct {
	Metas []MetaOutput `json:"metas"`
}

// OpenInput is the input schema for the open tool.
type OpenInput struct {
	ID string `json:"id" jsonschema:"papis_id of the document whose first file to open"`
}

// OpenOutput is the output schema for the open tool.
type OpenOutput struct {
	ID string `json:"id"`
}

// ReindexInput is the input schema for the reindex tool.
type ReindexInput struct{}

// ReindexOutput is the output schema for the reindex tool.
type ReindexOutput struct {
	Documents int `json:"documents"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search the papis library; all terms must match",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "result_metas",
		Description: "Get title and abstract for papis document ids",
	}, s.handleResultMetas)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "open",
		Description: "Open the first file of a papis document with the default application",
	}, s.handleOpen)

	if s.ports.Index != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "reindex",
			Description: "Rescan the papis libraries and rebuild the search index",
		}, s.handleReindex)
	}
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	ids := s.ports.SearchProvider.InitialResultSet(ctx, domain.SearchTerms(strings.Fields(input.Query)))
	total := len(ids)
	if len(ids) > limit {
		ids = ids[:limit]
	}

	results := toMetaOutputs(s.ports.SearchProvider.ResultMetas(ctx, ids))
	return nil, SearchOutput{
		Results: results,
		Count:   len(results),
		Total:   total,
	}, nil
}

// handleResultMetas handles the result_metas tool invocation.
func (s *Server) handleResultMetas(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ResultMetasInput,
) (*mcp.CallToolResult, ResultMetasOutput, error) {
	metas := s.ports.SearchProvider.ResultMetas(ctx, input.IDs)
	return nil, ResultMetasOutput{Metas: toMetaOutputs(metas)}, nil
}

// handleOpen handles the open tool invocation.
func (s *Server) handleOpen(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input OpenInput,
) (*mcp.CallToolResult, OpenOutput, error) {
	if input.ID == "" {
		return nil, OpenOutput{}, fmt.Errorf("id is required: %w", domain.ErrInvalidInput)
	}
	s.ports.SearchProvider.ActivateResult(ctx, input.ID, nil, 0)
	return nil, OpenOutput{ID: input.ID}, nil
}

// handleReindex handles the reindex tool invocation.
func (s *Server) handleReindex(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ReindexInput,
) (*mcp.CallToolResult, ReindexOutput, error) {
	n, err := s.ports.Index.Reindex(ctx)
	if err != nil {
		return nil, ReindexOutput{}, err
	}
	return nil, ReindexOutput{Documents: n}, nil
}

func toMetaOutputs(metas []domain.ResultMeta) []MetaOutput {
	out := make([]MetaOutput, len(metas))
	for i, meta := range metas {
		out[i] = MetaOutput{ID: meta.ID, Found: meta.Name != nil}
		if meta.Name != nil {
			out[i].Name = *meta.Name
		}
		if meta.Description != nil {
			out[i].Description = *meta.Description
		}
	}
	return out
}
