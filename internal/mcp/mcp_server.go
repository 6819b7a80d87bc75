// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/dugoutlab/trackstat/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Trackstat MCP server
// without starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, store contract.StatStore) *server.MCPServer {
	s := server.NewMCPServer(
		"Trackstat Stats Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		store:   store,
	}

	// --- 1. Tool: get_leaders ---
	s.AddTool(mcp.NewTool("get_leaders",
		mcp.WithDescription("Get the season leaderboard for one batting or pitching stat."),
		mcp.WithString("profile", mcp.Description("Stat table to query (batting or pitching). Defaults to 'batting'."), mcp.Enum("batting", "pitching")),
		mcp.WithString("stat", mcp.Description("Stat column to rank by (e.g. batting_avg, k_per, whip)."), mcp.Required()),
		mcp.WithNumber("season", mcp.Description("Season year. Defaults to the configured season.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleGetLeaders)

	// --- 2. Tool: get_player_stats ---
	s.AddTool(mcp.NewTool("get_player_stats",
		mcp.WithDescription("Get the full season stat line for one player."),
		mcp.WithString("profile", mcp.Description("Stat table to query (batting or pitching). Defaults to 'batting'."), mcp.Enum("batting", "pitching")),
		mcp.WithString("player", mcp.Description("Player name exactly as it appears in the source data."), mcp.Required()),
		mcp.WithString("team", mcp.Description("Team code for the player."), mcp.Required()),
		mcp.WithNumber("season", mcp.Description("Season year. Defaults to the configured season.")),
	), h.handleGetPlayerStats)

	// --- 3. Tool: get_zone_profile ---
	s.AddTool(mcp.NewTool("get_zone_profile",
		mcp.WithDescription("Get a pitcher's 13-zone pitch location profile for a season."),
		mcp.WithString("player", mcp.Description("Pitcher name exactly as it appears in the source data."), mcp.Required()),
		mcp.WithNumber("season", mcp.Description("Season year. Defaults to the configured season.")),
	), h.handleGetZoneProfile)

	return s
}

// StartMCPServer starts the Trackstat MCP server over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, store contract.StatStore) error {
	s := NewMCPServer(baseCfg, store)
	return server.ServeStdio(s)
}
