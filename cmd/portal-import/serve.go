package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"portal-import/internal/config"
	"portal-import/internal/importer/fields"
	"portal-import/internal/importer/service"
	"portal-import/internal/metrics"
	"portal-import/internal/store"
	serverhttp "portal-import/server/http"
)

func newServeCmd(cfg config.Config, logger zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve POST /import for workbook uploads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), cfg, logger)
		},
	}
}

func serve(ctx context.Context, cfg config.Config, logger zerolog.Logger) error {
	dict, err := fields.Load(cfg.AliasesFile)
	if err != nil {
		return err
	}
	st, err := store.Open(ctx, cfg.StoreURI, store.Options{
		Database:   cfg.StoreDatabase,
		Collection: cfg.StoreCollection,
	})
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	im := service.NewImporter(st, dict, metrics.New(reg), logger)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           serverhttp.NewRouter(cfg, im, reg, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Addr()).Msg("server starting")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err = <-errc:
	case <-ctx.Done():
		logger.Info().Msg("server shutting down")
		shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = srv.Shutdown(shutCtx)
		cancel()
	}
	if errors.Is(err, http.ErrServerClosed) {
		err = nil
	}

	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if cerr := st.Close(closeCtx); cerr != nil {
		logger.Warn().Err(cerr).Msg("store close")
	}
	logger.Info().Msg("bye")
	return err
}
