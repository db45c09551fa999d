package main

import (
	"github.com/spf13/cobra"
)

const appName = "dslparse"

var flagRestricted bool

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "Parse a workspace architecture DSL source tree",
	Long: appName + " parses Structurizr-style workspace DSL (a graph of people, " +
		"software systems, containers, components, deployment nodes and views) " +
		"and reports the resulting workspace model.",
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagRestricted, "restricted", false,
		"disable !include/!docs/!adrs, logo/icon file references, and environment-variable substitution")
	rootCmd.AddCommand(parseCmd, checkCmd)
}
