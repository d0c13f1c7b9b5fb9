package main

import (
	"fmt"
	"io"
	"os"
	"usercheck/internal/api/fnadapter"
	"usercheck/internal/config"

	"github.com/spf13/cobra"
)

func invokeCommand(cfg *config.Config) *cobra.Command {
	var eventPath string

	cmd := &cobra.Command{
		Use:   "invoke",
		Short: "Handles one function-style event read from stdin or a file",
		Long: `Reads a JSON event ({"method", "query", "headers", "body"} or the API
gateway equivalent) and prints {"statusCode", "headers", "body"}.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if eventPath != "" && eventPath != "-" {
				f, err := os.Open(eventPath)
				if err != nil {
					return fmt.Errorf("could not open event: %w", err)
				}
				defer func() { _ = f.Close() }()
				in = f
			}

			raw, err := io.ReadAll(in)
			if err != nil {
				return fmt.Errorf("could not read event: %w", err)
			}
			event, err := fnadapter.DecodeEvent(raw)
			if err != nil {
				return fmt.Errorf("invalid event: %w", err)
			}

			adapter := fnadapter.New(newChecker(cmd.Context(), cfg, nil))
			resp := adapter.Invoke(cmd.Context(), event)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(fnadapter.EncodeResponse(resp)))

			return err //nolint: wrapcheck
		},
	}

	cmd.Flags().StringVarP(&eventPath, "event", "e", "-", "Event file, - for stdin")

	return cmd
}
