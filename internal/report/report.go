// Package report builds the audit artifacts of an import run: which column
// fed which field, and a preview of the assembled records.
package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"portal-import/internal/importer/model"
)

const (
	MappingFile = "last_import_map.json"
	SampleFile  = "last_import_sample.json"
)

type SheetMapping struct {
	Sheet       string             `json:"sheet"`
	HeaderRow   int                `json:"headerRow"`
	DetectedMap model.FieldMapping `json:"detected_map"`
	Suggestions map[string]string  `json:"suggestions,omitempty"`
}

type SkippedSheet struct {
	Sheet  string `json:"sheet"`
	Reason string `json:"reason"`
}

type Totals struct {
	ProcessedRows int `json:"processedRows"`
	Upserts       int `json:"upserts"`
	Sheets        int `json:"sheets"`
	SkippedSheets int `json:"skippedSheets"`
}

type MappingReport struct {
	RunID       string         `json:"runId"`
	File        string         `json:"file"`
	HeaderRow   int            `json:"headerRow"`
	DryRun      bool           `json:"dryRun"`
	Sheets      []SheetMapping `json:"sheets"`
	Skipped     []SkippedSheet `json:"skipped"`
	Totals      Totals         `json:"totals"`
	GeneratedAt string         `json:"generatedAt"`
}

// Sample is the subset of a record shown in the sample report.
type Sample struct {
	ID               string `json:"_id"`
	DataEntrega      string `json:"dataEntrega"`
	Referencia       string `json:"referencia"`
	Portal           string `json:"portal"`
	MesAnoReferencia string `json:"mesAnoReferencia"`
	MesAnoEnvio      string `json:"mesAnoEnvio"`
	Esfera           string `json:"esfera"`
	Status           string `json:"status"`
}

type SheetSample struct {
	Sheet         string   `json:"sheet"`
	SampleCount   int      `json:"sampleCount"`
	UniqueIDCount int      `json:"uniqueIdCount"`
	TotalDocs     int      `json:"totalDocs"`
	Samples       []Sample `json:"samples"`
}

type SampleReport struct {
	RunID       string        `json:"runId"`
	File        string        `json:"file"`
	HeaderRow   int           `json:"headerRow"`
	Sheets      []SheetSample `json:"sheets"`
	GeneratedAt string        `json:"generatedAt"`
}

// Build derives both reports from a run. The mapping report is nil when no
// sheet had a header row, the sample report is nil when no sheet produced
// records.
func Build(res model.RunResult, runID string, now time.Time) (*MappingReport, *SampleReport) {
	stamp := now.UTC().Format(time.RFC3339)
	mr := &MappingReport{
		RunID:     runID,
		File:      res.File,
		HeaderRow: res.Options.HeaderRow,
		DryRun:    res.Options.DryRun,
		Sheets:    []SheetMapping{},
		Skipped:   []SkippedSheet{},
		Totals: Totals{
			ProcessedRows: res.Rows,
			Upserts:       res.Upserts,
			Sheets:        len(res.Sheets),
			SkippedSheets: res.Skipped,
		},
		GeneratedAt: stamp,
	}
	sr := &SampleReport{
		RunID:       runID,
		File:        res.File,
		HeaderRow:   res.Options.HeaderRow,
		Sheets:      []SheetSample{},
		GeneratedAt: stamp,
	}

	limit := max(res.Options.SampleCount, 0)
	for _, sh := range res.Sheets {
		if sh.Skip != "" {
			mr.Skipped = append(mr.Skipped, SkippedSheet{Sheet: sh.Sheet, Reason: sh.Skip})
		}
		if sh.Skip == model.SkipNoHeader {
			continue
		}
		mr.Sheets = append(mr.Sheets, SheetMapping{
			Sheet:       sh.Sheet,
			HeaderRow:   res.Options.HeaderRow,
			DetectedMap: sh.Mapping,
			Suggestions: sh.Suggestions,
		})
		if len(sh.Records) == 0 {
			continue
		}
		n := min(limit, len(sh.Records))
		samples := make([]Sample, 0, n)
		for _, r := range sh.Records[:n] {
			samples = append(samples, Sample{
				ID:               r.ID,
				DataEntrega:      r.DataEntrega,
				Referencia:       r.Referencia,
				Portal:           r.Portal,
				MesAnoReferencia: r.MesAnoReferencia,
				MesAnoEnvio:      r.MesAnoEnvio,
				Esfera:           r.Esfera,
				Status:           r.Status,
			})
		}
		sr.Sheets = append(sr.Sheets, SheetSample{
			Sheet:         sh.Sheet,
			SampleCount:   len(samples),
			UniqueIDCount: sh.UniqueIDs,
			TotalDocs:     len(sh.Records),
			Samples:       samples,
		})
	}

	if len(mr.Sheets) == 0 {
		mr = nil
	}
	if len(sr.Sheets) == 0 {
		sr = nil
	}
	return mr, sr
}

// WriteJSON writes v as indented JSON, replacing path atomically.
func WriteJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(b, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
