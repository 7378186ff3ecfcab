package main

import (
	"net/http"
	"os"

	"github.com/spf13/cobra"
)

const defaultAPIURL = "http://localhost:8000"

func newRootCmd() *cobra.Command {
	var stream bool
	cmd := &cobra.Command{
		Use:          "minivault <prompt>",
		Short:        "Send a prompt to the MiniVault API",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			apiURL := os.Getenv("MINIVAULT_API_URL")
			if apiURL == "" {
				apiURL = defaultAPIURL
			}
			return callGenerate(cmd.Context(), http.DefaultClient, apiURL, args[0], stream, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&stream, "stream", false, "Use streaming endpoint")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
