package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "cdtcli",
	Short: "drive the constrained Delaunay triangulation engine",
	Long: `cdtcli builds and inspects constrained Delaunay triangulations
from YAML scenario files:
	- build: insert a scenario's points and constraints incrementally,
	- bulk: construct the same scenario with the circle-sweep bulk loader,
	- render: write either result to a PNG for visual inspection.`,
}

// Execute adds all child commands to the root command and runs it. It is
// called once from main.main.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
