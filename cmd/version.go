package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set with -ldflags "-X main.version=...".
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "aquabot", version)
	},
}

func init() {
	// no config needed to print the version
	versionCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {}
	rootCmd.AddCommand(versionCmd)
}
