package cliutils

import "github.com/spf13/cobra"

// OptionsFunc customizes a command after it is built, e.g. to redirect its output in tests.
type OptionsFunc func(*cobra.Command)

func ApplyOptions(cmd *cobra.Command, funcs []OptionsFunc) {
	for _, v := range funcs {
		v(cmd)
	}
}
