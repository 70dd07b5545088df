package cmd

import (
	"fmt"
	"os"

	mcpadapter "github.com/dmoraisb/maitred/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Expose the bot as an MCP server on stdio",
	Long:  `Starts an MCP server whose "chat" tool drives the reservation dialog, letting agent hosts book tables on a user's behalf.`,
	Run: func(cmd *cobra.Command, args []string) {
		bot, err := buildLocalBot()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing bot: %v\n", err)
			os.Exit(1)
		}

		srv := mcpadapter.NewServer(bot, Version)
		if err := srv.ServeStdio(); err != nil {
			fmt.Fprintf(os.Stderr, "MCP server error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
