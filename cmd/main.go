// Package main provides the CLI entrypoint for the username check service.
// It wires subcommands (serve, check, invoke, sites), loads configuration,
// and initializes logging.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"usercheck/internal/config"
	"usercheck/internal/lookup"
	"usercheck/pkg/catalog"
	"usercheck/pkg/engine/probe"
	"usercheck/pkg/logger"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// newSource creates the catalog loader described by the configuration.
func newSource(cfg *config.Config) *catalog.Loader {
	return catalog.NewLoader(&http.Client{Timeout: cfg.Catalog.FetchTimeout}, catalog.Options{
		DefaultLocator: cfg.Catalog.DefaultLocator,
		MaxBytes:       cfg.Catalog.MaxBytes,
	})
}

// newChecker wires the lookup pipeline: catalog loader, probe engine and
// metrics. A nil meter provider uses the otel global.
func newChecker(ctx context.Context, cfg *config.Config, mp metric.MeterProvider) lookup.Checker {
	enumerator := probe.New(probe.Options{
		Workers:      cfg.Engine.Workers,
		UserAgent:    cfg.Engine.UserAgent,
		MaxBodyBytes: cfg.Engine.MaxBodyBytes,
	})

	checker, err := lookup.New(newSource(cfg), enumerator, lookup.Options{MeterProvider: mp})
	if err != nil {
		logger.Fatal(ctx, "could not create lookup service", zap.Error(err))
	}

	return checker
}

// main sets up the root Cobra command, loads configuration and logging, and
// registers subcommands before executing the CLI.
func main() {
	rootCmd := &cobra.Command{
		Use:   "usercheck",
		Short: "Checks which websites a username is registered on",
	}

	// there is no way to access flags before command execution in cobra.
	// configPath here is parsed using the standard flags package.
	// following line is just added to prevent errors when Cobra is parsing the flags.
	rootCmd.PersistentFlags().StringP("config", "c", "config.yml", "Config File Path")

	configPath := flag.String("c", "config.yml", "The config file path")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("could not load config file: ", err)
	}

	logger.Setup(cfg.Environment, cfg.LogLevel)

	ctx := context.Background()

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			logger.Sync()

			panic(p)
		}
	}()

	rootCmd.AddCommand(
		serveCommand(cfg),
		checkCommand(cfg),
		invokeCommand(cfg),
		sitesCommand(cfg),
	)

	err = rootCmd.Execute()
	logger.Sync()
	if err != nil {
		os.Exit(1) //nolint: gocritic
	}
}
