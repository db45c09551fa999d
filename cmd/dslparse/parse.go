package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dsleng/structurizr-dsl/internal/dsl"
	"github.com/dsleng/structurizr-dsl/internal/workspace"
)

var flagFormat string

var parseCmd = &cobra.Command{
	Use:   "parse <path-or->",
	Short: "Parse a workspace DSL file or directory and print a summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := parseTarget(args[0])
		if err != nil {
			return err
		}
		summary := ws.Summarize()
		if flagFormat == "yaml" {
			out, err := yaml.Marshal(summary)
			if err != nil {
				return err
			}
			fmt.Print(string(out))
			return nil
		}
		fmt.Printf("workspace %q\n", summary.Name)
		fmt.Printf("  elements:      %d (%v)\n", summary.ElementCount, summary.ElementKinds)
		fmt.Printf("  relationships: %d\n", summary.RelationshipCount)
		fmt.Printf("  views:         %d\n", summary.ViewCount)
		return nil
	},
}

func init() {
	parseCmd.Flags().StringVar(&flagFormat, "format", "text", `output format: "text" or "yaml"`)
}

// parseTarget runs the DSL engine over path, which may be "-" for stdin, a
// single file, or a directory.
func parseTarget(path string) (*workspace.Workspace, error) {
	p := dsl.New()
	p.SetRestricted(flagRestricted)

	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		if err := p.ParseString(string(data)); err != nil {
			return nil, err
		}
		return p.Workspace(), nil
	}

	if err := p.ParseFile(path); err != nil {
		return nil, err
	}
	return p.Workspace(), nil
}
