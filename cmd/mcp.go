package cmd

import (
	"github.com/dugoutlab/trackstat/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Trackstat MCP server",
	Long: `Launch an MCP server that allows AI agents to query leaderboards,
player stat lines and zone profiles via standard tools. The protocol
runs over stdio, so all logging goes to stderr.`,
	PreRunE: sharedSetupWrapper,
	PostRun: closeStore,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, statStore)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
