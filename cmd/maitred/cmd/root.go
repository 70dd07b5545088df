package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// rootCmd represents the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:     "maitred",
	Short:   "A reservation chat bot",
	Long:    `maitred collects restaurant reservations over a multi-turn dialog: time, party size, name and a confirmation, skipping anything the opening message already answered.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Default to the interactive chat when no subcommand is given.
	rootCmd.Run = chatCmd.Run
}
