package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for reviewlens.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reviewlens",
		Short: "Summarize product reviews through an analysis endpoint",
		Long: `reviewlens sends a product link to a review analysis endpoint and shows
the summary it returns, together with the links analyzed so far.

Run "reviewlens serve" for the browser page or "reviewlens analyze" for
the terminal. The endpoint is configured with --endpoint or a .reviewlens
file (see "reviewlens init").`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewHealthCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
