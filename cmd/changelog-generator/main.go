package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/solo-io/changelog-generator/contextutils"
	"github.com/solo-io/changelog-generator/internal/commands"
	"github.com/spf13/afero"
)

func main() {
	ctx := contextutils.WithLogger(context.Background(), "changelog-generator")
	if err := commands.RootCommand(ctx, afero.NewOsFs()).Execute(); err != nil {
		_, _ = color.New(color.FgRed).Fprint(os.Stderr, "error: ")
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
