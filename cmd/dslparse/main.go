// Command dslparse wraps the internal/dsl engine in a small cobra CLI, the
// way adest-aes-scripts' devshell wraps its dsl engine in cmd_root.go and
// pflow-xyz-go-pflow wraps its own engine under cmd/pflow.
package main

import (
	"fmt"
	"os"
)

func main() {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
