package main

import (
	"fmt"
	"io"
	"usercheck/internal/api/transport"
	"usercheck/internal/config"
	"usercheck/internal/lookup"
	"usercheck/pkg/domain"

	"github.com/fatih/color"
	"github.com/go-faster/jx"
	"github.com/spf13/cobra"
)

func checkCommand(cfg *config.Config) *cobra.Command {
	var (
		sites     []string
		asJSON    bool
		showAll   bool
		nsfw      bool
		timeout   int
		maxSites  int
		proxy     string
		catalogAt string
	)

	cmd := &cobra.Command{
		Use:   "check <username>",
		Short: "Looks up a username once and prints the results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := lookup.NewRequest(args[0])
			req.Sites = sites
			req.IncludeNSFW = nsfw
			req.TimeoutSeconds = timeout
			req.MaxSites = maxSites
			req.Proxy = proxy
			req.CatalogSource = catalogAt
			req.OnlyClaimed = !showAll

			resp, err := newChecker(cmd.Context(), cfg, nil).Check(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("lookup failed: %w", err)
			}

			if asJSON {
				e := jx.Encoder{}
				e.SetIdent(2)
				transport.EncodeResponse(&e, resp)
				_, err = fmt.Fprintln(cmd.OutOrStdout(), e.String())

				return err //nolint: wrapcheck
			}
			printTable(cmd.OutOrStdout(), resp)

			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&sites, "sites", "s", nil, "Only check these sites (comma separated)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the JSON response")
	cmd.Flags().BoolVarP(&showAll, "all", "a", false, "Show every site, not only claimed ones")
	cmd.Flags().BoolVar(&nsfw, "nsfw", false, "Include NSFW sites")
	cmd.Flags().IntVarP(&timeout, "timeout", "t", lookup.DefaultTimeoutSeconds, "Per-site timeout in seconds")
	cmd.Flags().IntVarP(&maxSites, "max-sites", "m", lookup.DefaultMaxSites, "Maximum sites to check, 0 for all")
	cmd.Flags().StringVarP(&proxy, "proxy", "p", "", "Proxy URL (http, https, socks5)")
	cmd.Flags().StringVar(&catalogAt, "catalog", "", "Catalog URL or .json path")

	return cmd
}

func statusColor(status string) *color.Color {
	switch domain.Status(status) {
	case domain.StatusClaimed:
		return color.New(color.FgGreen, color.Bold)
	case domain.StatusAvailable:
		return color.New(color.FgRed)
	case domain.StatusWAF:
		return color.New(color.FgMagenta)
	case domain.StatusIllegal:
		return color.New(color.FgHiBlack)
	default:
		return color.New(color.FgYellow)
	}
}

func printTable(w io.Writer, resp *lookup.Response) {
	cyan := color.New(color.FgCyan)
	_, _ = cyan.Fprintf(w, "Checking username %s on %d sites\n", resp.Username, resp.TotalSites)

	for _, r := range resp.Results {
		url := ""
		if r.URLUser != nil {
			url = *r.URLUser
		}
		_, _ = statusColor(r.Status).Fprintf(w, "[%-9s] ", r.Status)
		_, _ = fmt.Fprintf(w, "%s: %s\n", r.Site, url)
	}

	_, _ = cyan.Fprintf(w, "%d result(s)\n", len(resp.Results))
}
