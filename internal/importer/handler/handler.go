package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"portal-import/internal/config"
	"portal-import/internal/fileio"
	"portal-import/internal/importer/model"
	"portal-import/internal/importer/service"
	"portal-import/internal/middleware"
	"portal-import/internal/report"
)

// Response is the body of a successful POST /import. A nil report means the
// run produced nothing for it (no header row anywhere, or no records).
type Response struct {
	Mapping *report.MappingReport `json:"mapping"`
	Sample  *report.SampleReport  `json:"sample"`
}

// Import возвращает http.HandlerFunc для r.Post("/import", ...).
// The upload runs through the same pipeline as the CLI, the reports come back
// in the response instead of being written to disk.
func Import(cfg config.Config, im *service.Importer, logger zerolog.Logger) http.HandlerFunc {
	maxMem := int64(cfg.MaxUploadMB) << 20
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := logger.With().Str("rid", middleware.GetRequestID(r)).Logger()

		defer r.Body.Close()
		if err := r.ParseMultipartForm(maxMem); err != nil {
			writeError(w, http.StatusBadRequest, "bad multipart form: "+err.Error())
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, "missing file: "+err.Error())
			return
		}
		defer file.Close()

		opts, err := parseOptions(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		wb, err := fileio.Read(file, header.Filename)
		if err != nil {
			writeError(w, http.StatusBadRequest, "failed to read workbook: "+err.Error())
			return
		}

		res, err := im.Run(r.Context(), wb, opts)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, service.ErrNoStore) {
				status = http.StatusServiceUnavailable
			}
			log.Error().Err(err).Str("file", header.Filename).Msg("import failed")
			writeError(w, status, err.Error())
			return
		}

		mapping, sample := report.Build(res, uuid.NewString(), time.Now())
		writeJSON(w, http.StatusOK, Response{Mapping: mapping, Sample: sample})

		log.Info().
			Str("file", header.Filename).
			Int("rows", res.Rows).
			Int("upserts", res.Upserts).
			Bool("dry_run", opts.DryRun).
			Dur("elapsed", time.Since(start)).
			Msg("import done")
	}
}

func parseOptions(r *http.Request) (model.Options, error) {
	opts := model.Options{
		HeaderRow:   atoi(r.FormValue("headerRow"), config.DefaultHeaderRow),
		DryRun:      toBool(r.FormValue("dryRun"), false),
		Reset:       toBool(r.FormValue("reset"), false),
		SampleCount: atoi(r.FormValue("sampleCount"), config.DefaultSampleSize),
		DateLayout:  r.FormValue("dateFmt"),
	}
	if opts.DateLayout == "" {
		opts.DateLayout = config.DefaultDateLayout
	}
	if !service.ValidDateLayout(opts.DateLayout) {
		return opts, errUnsupportedLayout(opts.DateLayout)
	}
	return opts, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// Health отвечает на GET /health.
func Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
