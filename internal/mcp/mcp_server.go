// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/AgitatedBuddha/protein-analyser/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the protein-analyser MCP server
// without starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Protein Analyser Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: score_products ---
	s.AddTool(mcp.NewTool("score_products",
		mcp.WithDescription("Score extracted protein-powder records across the cut, bulk, and clean fitness goals."),
		mcp.WithString("path", mcp.Description("Record file or directory (defaults to the configured records path).")),
		mcp.WithString("mode", mcp.Description("Primary mode for run summaries (cut, bulk, clean). Defaults to 'cut'."), mcp.Enum("cut", "bulk", "clean")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of reports returned.")),
	), h.handleScoreProducts)

	// --- 2. Tool: get_leaderboard ---
	s.AddTool(mcp.NewTool("get_leaderboard",
		mcp.WithDescription("Rank scored products for one fitness goal; rejected products sort last."),
		mcp.WithString("path", mcp.Description("Record file or directory.")),
		mcp.WithString("mode", mcp.Description("Scoring mode to rank by."), mcp.Required(), mcp.Enum("cut", "bulk", "clean")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of ranked entries.")),
	), h.handleGetLeaderboard)

	// --- 3. Tool: check_spiking ---
	s.AddTool(mcp.NewTool("check_spiking",
		mcp.WithDescription("Assess products for suspected amino spiking, rule by rule. Heuristic screen, not a diagnosis."),
		mcp.WithString("path", mcp.Description("Record file or directory.")),
	), h.handleCheckSpiking)

	// --- 4. Tool: list_modes ---
	s.AddTool(mcp.NewTool("list_modes",
		mcp.WithDescription("Return the active scoring configuration: reject rules, weights, and normalization bounds per mode."),
	), h.handleListModes)

	return s
}

// StartMCPServer starts the protein-analyser MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
