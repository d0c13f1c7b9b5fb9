package main

import (
	"fmt"
	"usercheck/internal/config"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func sitesCommand(cfg *config.Config) *cobra.Command {
	var (
		locator string
		nsfw    bool
	)

	cmd := &cobra.Command{
		Use:   "sites",
		Short: "Lists the sites of the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newSource(cfg).Load(cmd.Context(), locator)
			if err != nil {
				return err //nolint: wrapcheck
			}
			if !nsfw {
				c = c.FilterNSFW(nil)
			}

			out := cmd.OutOrStdout()
			red := color.New(color.FgRed)
			for _, s := range c.Sites() {
				_, _ = fmt.Fprint(out, s.Name)
				if s.NSFW {
					_, _ = red.Fprint(out, " (NSFW)")
				}
				_, _ = fmt.Fprintln(out)
			}
			_, _ = color.New(color.FgCyan).Fprintf(out, "%d site(s)\n", c.Len())

			return nil
		},
	}

	cmd.Flags().StringVar(&locator, "catalog", "", "Catalog URL or .json path")
	cmd.Flags().BoolVar(&nsfw, "nsfw", false, "Include NSFW sites")

	return cmd
}
