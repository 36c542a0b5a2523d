package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/AgitatedBuddha/protein-analyser/core"
	"github.com/AgitatedBuddha/protein-analyser/internal/contract"
	"github.com/AgitatedBuddha/protein-analyser/internal/ingest"
	"github.com/AgitatedBuddha/protein-analyser/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

func (h *toolHandler) handleScoreProducts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("path", ""); p != "" {
		cfg.InputPath = p
	}
	if m := request.GetString("mode", ""); m != "" {
		mode := schema.ScoringMode(m)
		if _, ok := schema.ValidScoringModes[mode]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid mode %q", m)), nil
		}
		cfg.Mode = mode
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	reports, err := core.ScoreBatch(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scoring failed: %v", err)), nil
	}
	if len(reports) > cfg.ResultLimit {
		reports = reports[:cfg.ResultLimit]
	}

	jsonData, _ := json.MarshalIndent(reports, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetLeaderboard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("path", ""); p != "" {
		cfg.InputPath = p
	}
	mode := schema.ScoringMode(request.GetString("mode", ""))
	if _, ok := schema.ValidScoringModes[mode]; !ok {
		return mcp.NewToolResultError(fmt.Sprintf("invalid mode %q", string(mode))), nil
	}
	cfg.Mode = mode
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	reports, err := core.ScoreBatch(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scoring failed: %v", err)), nil
	}

	ranked := core.RankReports(reports, cfg.Mode, cfg.ResultLimit)
	enriched := schema.EnrichLeaderboard(ranked, cfg.GradeThresholds)
	jsonData, _ := json.MarshalIndent(enriched, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleCheckSpiking(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("path", ""); p != "" {
		cfg.InputPath = p
	}

	records, err := ingest.LoadRecords(cfg.InputPath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("record load failed: %v", err)), nil
	}

	rows := core.AssessSpiking(cfg, records)
	jsonData, _ := json.MarshalIndent(rows, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListModes(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()

	model := core.BuildModesModel(cfg.Scoring)
	jsonData, _ := json.MarshalIndent(model, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}
