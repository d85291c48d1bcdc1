package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"portal-import/internal/config"
	"portal-import/internal/fileio"
	"portal-import/internal/importer/fields"
	"portal-import/internal/importer/model"
	"portal-import/internal/importer/service"
	"portal-import/internal/metrics"
	"portal-import/internal/report"
	"portal-import/internal/store"
)

type importOptions struct {
	path        string
	headerRow   int
	dryRun      bool
	reset       bool
	sampleCount int
	dateFmt     string
	reportDir   string
	aliases     string
	metricsFile string
}

func runImport(ctx context.Context, cfg config.Config, logger zerolog.Logger, opts importOptions) error {
	if !service.ValidDateLayout(opts.dateFmt) {
		return fmt.Errorf("invalid --dateFmt %q", opts.dateFmt)
	}
	dict, err := fields.Load(opts.aliases)
	if err != nil {
		return err
	}

	path, err := filepath.Abs(opts.path)
	if err != nil {
		path = opts.path
	}
	wb, err := fileio.Open(path)
	if err != nil {
		return err
	}

	var st store.Store
	if !opts.dryRun {
		st, err = store.Open(ctx, cfg.StoreURI, store.Options{
			Database:   cfg.StoreDatabase,
			Collection: cfg.StoreCollection,
		})
		if err != nil {
			return err
		}
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := st.Close(closeCtx); err != nil {
				logger.Warn().Err(err).Msg("store close")
			}
		}()
	}

	reg := prometheus.NewRegistry()
	im := service.NewImporter(st, dict, metrics.New(reg), logger)
	res, err := im.Run(ctx, wb, model.Options{
		HeaderRow:   opts.headerRow,
		DryRun:      opts.dryRun,
		Reset:       opts.reset,
		SampleCount: opts.sampleCount,
		DateLayout:  opts.dateFmt,
	})
	if err != nil {
		return err
	}

	mapping, sample := report.Build(res, uuid.NewString(), time.Now())
	writeReport(logger, filepath.Join(opts.reportDir, report.MappingFile), mapping)
	writeReport(logger, filepath.Join(opts.reportDir, report.SampleFile), sample)

	if opts.metricsFile != "" {
		if err := metrics.WriteTextfile(opts.metricsFile, reg); err != nil {
			logger.Warn().Err(err).Str("path", opts.metricsFile).Msg("metrics file not written")
		}
	}
	return nil
}

func writeReport[T any](logger zerolog.Logger, path string, rep *T) {
	if rep == nil {
		return
	}
	if err := report.WriteJSON(path, rep); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("report not written")
		return
	}
	logger.Info().Str("path", path).Msg("report written")
}
