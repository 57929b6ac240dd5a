package main

import (
	"fmt"
	"os"
)

// @title        AquaBot Telemetry API
// @version      1.0
// @description  Ingests water-quality and navigation telemetry from the patrol boat and serves the recent window to the dashboard.
// @BasePath     /
func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
