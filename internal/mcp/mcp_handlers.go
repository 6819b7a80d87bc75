package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dugoutlab/trackstat/core"
	"github.com/dugoutlab/trackstat/internal/contract"
	"github.com/dugoutlab/trackstat/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	store   contract.StatStore
}

func profileFor(name string) (*schema.StatProfile, error) {
	switch name {
	case "", "batting":
		return schema.BattingProfile, nil
	case "pitching":
		return schema.PitchingProfile, nil
	default:
		return nil, fmt.Errorf("unknown profile %q: must be batting or pitching", name)
	}
}

func (h *toolHandler) handleGetLeaders(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	profile, err := profileFor(request.GetString("profile", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	cfg := h.baseCfg.Clone()
	cfg.Stat = request.GetString("stat", "")
	if s := request.GetInt("season", 0); s > 0 {
		cfg.Season = s
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	rows, err := core.Leaders(ctx, h.store, profile, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("leaderboard failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(rows, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetPlayerStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	profile, err := profileFor(request.GetString("profile", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	player := request.GetString("player", "")
	team := request.GetString("team", "")
	if player == "" || team == "" {
		return mcp.NewToolResultError("player and team are required"), nil
	}
	season := request.GetInt("season", 0)
	if season <= 0 {
		season = h.baseCfg.Season
	}

	key := schema.EntityKey{Player: player, Team: team, Year: season}
	lines, err := h.store.FetchStats(ctx, profile, []schema.EntityKey{key})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("lookup failed: %v", err)), nil
	}
	line, ok := lines[key]
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("no %s line for %s (%s) in %d", profile.Name, player, team, season)), nil
	}

	jsonData, _ := json.MarshalIndent(line, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetZoneProfile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	player := request.GetString("player", "")
	if player == "" {
		return mcp.NewToolResultError("player is required"), nil
	}
	season := request.GetInt("season", 0)
	if season <= 0 {
		season = h.baseCfg.Season
	}

	cfg := h.baseCfg.Clone()
	cfg.Season = season
	bins, err := core.ZoneBinsFor(ctx, h.store, cfg, player)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("zone lookup failed: %v", err)), nil
	}
	if len(bins) == 0 {
		return mcp.NewToolResultError(fmt.Sprintf("no zone bins for %s in %d", player, season)), nil
	}

	jsonData, _ := json.MarshalIndent(bins, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
