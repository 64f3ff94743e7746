// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/valuewise/marketval/internal/contract"
)

// NewMCPServer initializes and configures the marketval MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Market Value Calculation Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: calculate_market_value ---
	s.AddTool(mcp.NewTool("calculate_market_value",
		mcp.WithDescription("Calculate the quality-weighted market value for an appraisal case (loss vehicle, comparables, insurance value)."),
		mcp.WithString("case_json", mcp.Description("Appraisal case as JSON: {appraisalId, lossVehicle, comparables, insuranceValue}."), mcp.Required()),
		mcp.WithString("appraisal_id", mcp.Description("Override for the case's appraisal ID.")),
	), h.handleCalculateMarketValue)

	// --- 2. Tool: validate_comparables ---
	s.AddTool(mcp.NewTool("validate_comparables",
		mcp.WithDescription("Validate a case's comparable vehicles, returning field-level errors, warnings and a set summary."),
		mcp.WithString("case_json", mcp.Description("Appraisal case as JSON: {lossVehicle, comparables}."), mcp.Required()),
	), h.handleValidateComparables)

	// --- 3. Tool: score_comparable ---
	s.AddTool(mcp.NewTool("score_comparable",
		mcp.WithDescription("Compute the quality score breakdown for one comparable against the case's loss vehicle."),
		mcp.WithString("case_json", mcp.Description("Appraisal case as JSON: {lossVehicle, comparables}."), mcp.Required()),
		mcp.WithNumber("comparable_index", mcp.Description("Zero-based index of the comparable to score. Defaults to 0.")),
	), h.handleScoreComparable)

	return s
}

// StartMCPServer starts the marketval MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
