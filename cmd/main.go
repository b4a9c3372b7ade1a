package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"githubreport/config"
	"githubreport/db"
	"githubreport/enricher"
	"githubreport/github"
	"githubreport/logger"
	"githubreport/service"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		concurrency  int
		countCommits bool
		logLevel     string
		databaseDSN  string
	)

	cmd := &cobra.Command{
		Use:   "githubreport <username> [output-file.csv]",
		Short: "Export a GitHub account's repositories with commit metadata to CSV",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := args[0]
			outputPath := ""
			if len(args) == 2 {
				outputPath = args[1]
			}

			cfg := config.NewConfig()
			if err := cfg.Load(); err != nil {
				return err
			}

			// Flags win over environment and credentials file.
			if cmd.Flags().Changed("concurrency") {
				cfg.Concurrency = concurrency
			}
			if cmd.Flags().Changed("count-commits") {
				cfg.CountCommits = countCommits
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if cmd.Flags().Changed("db-dsn") {
				cfg.DatabaseDSN = databaseDSN
			}

			if err := logger.Initialize(cfg.LogLevel); err != nil {
				return err
			}
			defer logger.Sync()

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			client := github.NewClient(cfg.GitHubToken)
			enr := enricher.New(client, cfg.CountCommits)

			var store service.ReportStore
			if cfg.DatabaseDSN != "" {
				database, err := db.New(cfg.DatabaseDSN)
				if err != nil {
					return err
				}
				defer database.Close()
				store = database
			}

			svc := service.New(cfg, client, enr, store, cmd.OutOrStdout())
			_, err := svc.Run(ctx, username, outputPath)
			return err
		},
		SilenceUsage: true,
	}

	cmd.Flags().IntVar(&concurrency, "concurrency", 10, "maximum number of concurrent commit lookups")
	cmd.Flags().BoolVar(&countCommits, "count-commits", false, "count every commit on the default branch (one API call per page of history)")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&databaseDSN, "db-dsn", "", "optional Postgres DSN to also store the report in")

	return cmd
}
