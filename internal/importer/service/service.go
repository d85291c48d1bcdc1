package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"portal-import/internal/fileio"
	"portal-import/internal/importer/fields"
	"portal-import/internal/importer/model"
	"portal-import/internal/metrics"
	"portal-import/internal/store"
)

var ErrNoStore = errors.New("no store configured")

// Importer runs the sheet pipeline and persists the records.
type Importer struct {
	store   store.Store // may be nil for dry runs
	dict    fields.Dictionary
	metrics *metrics.Metrics
	log     zerolog.Logger
}

func NewImporter(st store.Store, dict fields.Dictionary, m *metrics.Metrics, log zerolog.Logger) *Importer {
	if dict == nil {
		dict = fields.Default()
	}
	return &Importer{store: st, dict: dict, metrics: m, log: log}
}

// Run processes the sheets one after another. Within a sheet records are
// upserted one at a time, each write awaited before the next. Sheets without
// a header row or without data are skipped with a warning; a store error
// aborts the run.
func (im *Importer) Run(ctx context.Context, wb fileio.Workbook, opts model.Options) (model.RunResult, error) {
	res := model.RunResult{File: wb.Path, Options: opts}
	log := im.log.With().Str("file", wb.Path).Logger()

	if opts.DryRun {
		log.Info().Msg("DRY RUN: nothing will be written, only the reports are produced")
	} else {
		if im.store == nil {
			return res, ErrNoStore
		}
		if opts.Reset {
			before, err := im.store.Count(ctx)
			if err != nil {
				return res, fmt.Errorf("reset: count: %w", err)
			}
			removed, err := im.store.DeleteAll(ctx)
			if err != nil {
				return res, fmt.Errorf("reset: %w", err)
			}
			log.Info().Int64("removed", removed).Int64("before", before).Msg("collection reset")
		}
	}

	for _, sh := range wb.Sheets {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		sr := ProcessSheet(sh, opts, im.dict)
		if sr.Skip != "" {
			log.Warn().Str("sheet", sh.Name).Str("reason", sr.Skip).Int("header_row", opts.HeaderRow).Msg("sheet skipped")
			im.metrics.Skipped(sr.Skip)
			res.Skipped++
			res.Sheets = append(res.Sheets, sr)
			continue
		}

		if !opts.DryRun {
			for _, rec := range sr.Records {
				start := time.Now()
				if err := im.store.Upsert(ctx, rec); err != nil {
					return res, fmt.Errorf("sheet %q: upsert %s: %w", sh.Name, rec.ID, err)
				}
				im.metrics.Upserted(time.Since(start))
				sr.Upserts++
			}
		}
		im.metrics.SheetRows(len(sr.Records))

		log.Info().
			Str("sheet", sh.Name).
			Int("rows", len(sr.Records)).
			Int("unique_ids", sr.UniqueIDs).
			Int("upserts", sr.Upserts).
			Bool("dry_run", opts.DryRun).
			Msg("sheet imported")

		res.Rows += len(sr.Records)
		res.Upserts += sr.Upserts
		res.Sheets = append(res.Sheets, sr)
	}

	im.metrics.RunFinished(time.Now())
	log.Info().
		Int("rows", res.Rows).
		Int("upserts", res.Upserts).
		Int("sheets", len(wb.Sheets)).
		Int("skipped", res.Skipped).
		Bool("dry_run", opts.DryRun).
		Msg("import total")
	return res, nil
}
