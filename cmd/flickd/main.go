package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	flickd "github.com/nayakiniki/Flickd"
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "flickd",
		Short: "Smart tagging engine for fashion images",
		Long: `flickd assigns color, object and scene tags with confidence scores to
uploaded images. It runs as an HTTP service or tags local files directly.`,
		SilenceUsage: true,
	}

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(
		newServeCmd(),
		newTagCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "flickd version %s\n", flickd.GetVersion())
		},
	}
}
