// cmd/audiotekameta/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/valpere/audiotekameta/internal/errors"
)

// Version information (set by build flags)
var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

func newRootCmd() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:           "audiotekameta",
		Short:         "Audiobook metadata provider for the Audioteka catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to a YAML configuration file")
	root.PersistentFlags().BoolP("verbose", "v", false, "show technical error details")

	root.AddCommand(newServeCmd(&configFile))
	root.AddCommand(newSearchCmd(&configFile))
	root.AddCommand(newVersionCmd())
	return root
}

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		verbose, _ := root.PersistentFlags().GetBool("verbose")
		_, _ = fmt.Fprint(os.Stderr, errors.FormatForCLI(err, verbose))
		os.Exit(errors.ExitCode(err))
	}
}
