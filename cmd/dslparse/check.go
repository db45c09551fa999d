package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dsleng/structurizr-dsl/internal/dsl"
)

var checkCmd = &cobra.Command{
	Use:   "check <path>",
	Short: "Parse-only; exit non-zero if the workspace DSL fails to parse",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := dsl.New()
		p.SetRestricted(flagRestricted)
		if err := p.ParseFile(args[0]); err != nil {
			return err
		}
		fmt.Printf("%s: ok\n", args[0])
		return nil
	},
}
