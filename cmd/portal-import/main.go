package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"portal-import/internal/config"
)

func main() {
	cfg := config.Load()
	logger := config.SetupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	root := newRootCmd(cfg, logger)
	err := root.ExecuteContext(ctx)
	stop()
	if err != nil {
		log.Error().Err(err).Msg("portal-import failed")
		os.Exit(1)
	}
}

func newRootCmd(cfg config.Config, logger zerolog.Logger) *cobra.Command {
	opts := importOptions{
		headerRow:   config.DefaultHeaderRow,
		sampleCount: config.DefaultSampleSize,
		dateFmt:     config.DefaultDateLayout,
		reportDir:   cfg.ReportDir,
		aliases:     cfg.AliasesFile,
		metricsFile: cfg.MetricsFile,
	}

	cmd := &cobra.Command{
		Use:           "portal-import <path>",
		Short:         "Import the portal monitoring workbook into the dashboard store",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.path = args[0]
			return runImport(cmd.Context(), cfg, logger, opts)
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.headerRow, "headerRow", opts.headerRow, "1-based row holding the column headers")
	f.BoolVar(&opts.dryRun, "dryRun", false, "Read and report only, write nothing to the store")
	f.BoolVar(&opts.reset, "reset", false, "Delete every stored record before importing")
	f.IntVar(&opts.sampleCount, "sampleCount", opts.sampleCount, "Records per sheet in the sample report")
	f.StringVar(&opts.dateFmt, "dateFmt", opts.dateFmt, "Delivery date layout: dd/MM/yyyy, dd/MM/yy or dd/MM/yyy")
	f.StringVar(&opts.reportDir, "reportDir", opts.reportDir, "Directory for last_import_map.json and last_import_sample.json")
	f.StringVar(&opts.aliases, "aliases", opts.aliases, "YAML file with extra header aliases")
	f.StringVar(&opts.metricsFile, "metricsFile", opts.metricsFile, "Write run metrics in textfile-collector format")

	cmd.AddCommand(newServeCmd(cfg, logger))
	return cmd
}
