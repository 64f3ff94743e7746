package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/valuewise/marketval/core"
	"github.com/valuewise/marketval/internal/casefile"
	"github.com/valuewise/marketval/internal/contract"
	"github.com/valuewise/marketval/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

// parseCase decodes the case_json argument shared by all tools.
func (h *toolHandler) parseCase(request mcp.CallToolRequest) (*casefile.Case, error) {
	raw := request.GetString("case_json", "")
	if raw == "" {
		return nil, fmt.Errorf("case_json is required")
	}
	return casefile.Parse([]byte(raw))
}

func (h *toolHandler) handleCalculateMarketValue(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c, err := h.parseCase(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid case: %v", err)), nil
	}
	if id := request.GetString("appraisal_id", ""); id != "" {
		c.AppraisalID = id
	}

	engine := core.EngineFromConfig(h.baseCfg.Clone())
	analysis, err := engine.CachedCalculateMarketValue(h.mgr, c.AppraisalID, &c.LossVehicle, c.Comparables, c.InsuranceValue)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("calculation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(analysis, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleValidateComparables(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c, err := h.parseCase(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid case: %v", err)), nil
	}

	engine := core.EngineFromConfig(h.baseCfg.Clone())
	results := engine.ValidateMultiple(c.Comparables, &c.LossVehicle)
	summary := engine.ValidationSummary(results)

	document := struct {
		Results []schema.ValidationResult `json:"results"`
		Summary schema.ValidationSummary  `json:"summary"`
	}{Results: results, Summary: summary}

	jsonData, _ := json.MarshalIndent(document, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleScoreComparable(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c, err := h.parseCase(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid case: %v", err)), nil
	}

	idx := request.GetInt("comparable_index", 0)
	if idx < 0 || idx >= len(c.Comparables) {
		return mcp.NewToolResultError(fmt.Sprintf("comparable_index %d is out of range for %d comparables", idx, len(c.Comparables))), nil
	}

	engine := core.EngineFromConfig(h.baseCfg.Clone())
	breakdown := engine.ScoreComparable(&c.Comparables[idx], &c.LossVehicle)

	jsonData, _ := json.MarshalIndent(breakdown, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
