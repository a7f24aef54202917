// Command carefinder is the Carefinder operations CLI.
//
// Usage:
//
//	carefinder mcp
//	carefinder data check
//	carefinder data check --data-dir ./data
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mgcare/carefinder/internal/cache"
	"github.com/mgcare/carefinder/internal/config"
	"github.com/mgcare/carefinder/internal/cqc"
	"github.com/mgcare/carefinder/internal/dataset"
	"github.com/mgcare/carefinder/internal/mcpserver"
	"github.com/mgcare/carefinder/internal/postcode"
)

// The MCP transport owns stdout, so all logging goes to stderr.
var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "carefinder",
		Short: "Carefinder operations CLI",
	}

	root.AddCommand(mcpCmd())
	root.AddCommand(dataCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// mcp command
// --------------------------------------------------------------------------

func mcpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run the MCP server over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			snapshot := dataset.Load(cfg.DataDir, logger)
			appCache := cache.New(cfg.CacheEnabled)
			cqcClient := cqc.NewClient(cfg.CQCBaseURL, cfg.CQCSubscriptionKey, cfg.CQCRequestsPerMin, cfg.EnrichBatchSize, logger)
			postcodes := postcode.NewClient(cfg.PostcodesBaseURL, appCache, logger)

			logger.Info("Starting MCP server", "transport", "stdio")
			return mcpserver.New(snapshot, cqcClient, postcodes, logger).Serve()
		},
	}
}

// --------------------------------------------------------------------------
// data command
// --------------------------------------------------------------------------

func dataCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "data",
		Short: "Inspect the bundled register files",
	}
	cmd.AddCommand(dataCheckCmd())
	return cmd
}

func dataCheckCmd() *cobra.Command {
	var dataDir string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report register record counts and data age",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if dataDir != "" {
				cfg.DataDir = dataDir
			}

			snapshot := dataset.Load(cfg.DataDir, logger)
			ts := snapshot.Timestamps

			report := []struct {
				register string
				records  int
				stamp    string
			}{
				{"Care Inspectorate (Scotland)", len(snapshot.Scotland), ts.Scotland},
				{"RQIA (Northern Ireland)", len(snapshot.NorthernIreland), ts.RQIA},
				{"HIQA (Ireland)", len(snapshot.Ireland), ts.HIQA},
			}

			fmt.Printf("Data directory: %s\n\n", cfg.DataDir)
			warn := false
			for _, row := range report {
				note := ""
				switch {
				case row.records == 0:
					note = "  [missing]"
					warn = true
				case dataset.Stale(row.stamp):
					note = "  [stale]"
					warn = true
				}
				fmt.Printf("%-32s %6d records  %s%s\n",
					row.register, row.records, dataset.FormatAge(row.stamp), note)
			}
			if warn {
				fmt.Printf("\nOne or more registers need a refresh. Download the latest exports\ninto %s and update %s.\n",
					cfg.DataDir, config.TimestampsFile)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Override the configured data directory")
	return cmd
}
