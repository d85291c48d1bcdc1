package service

import (
	"portal-import/internal/fileio"
	"portal-import/internal/importer/fields"
	"portal-import/internal/importer/model"
)

// rowView reads one data row through the resolved column mapping.
type rowView struct {
	cells   []fileio.Cell
	mapping model.FieldMapping
}

func (r rowView) cell(field string) fileio.Cell {
	i := r.mapping.Lookup(field)
	if i < 0 || i >= len(r.cells) {
		return fileio.Cell{}
	}
	return r.cells[i]
}

func (r rowView) text(field string) string     { return ToText(r.cell(field)) }
func (r rowView) integer(field string) *int64  { return ToInt(r.cell(field)) }
func (r rowView) number(field string) *float64 { return ToFloat(r.cell(field)) }
func (r rowView) flag(field string) bool       { return ToBool(r.cell(field)) }

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// assemble builds the record of one data row. sheetDate is the delivery date
// taken from the sheet name ("" when it has none); rowIdx is 0-based below the
// header row.
func assemble(r rowView, sheet, sheetDate string, rowIdx int) model.Portal {
	portal := r.text(fields.Portal)
	mesAnoEnvio := r.text(fields.MesAnoEnvio)
	mesAnoRef := r.text(fields.MesAnoReferencia)
	dataEntrega := firstNonEmpty(mesAnoEnvio, sheetDate)

	return model.Portal{
		ID: DeriveID(dataEntrega, portal, mesAnoRef, sheet, rowIdx),
		// vintages differ in which column says "when": fall back in order
		Referencia: firstNonEmpty(
			dataEntrega,
			sheetDate,
			r.text(fields.Referencia),
			mesAnoRef,
			mesAnoEnvio,
			r.text(fields.UltimaReferencia),
			r.text(fields.UltimoMesEnviado),
		),
		DataEntrega:      dataEntrega,
		Portal:           portal,
		Esfera:           r.text(fields.Esfera),
		MesAnoEnvio:      mesAnoEnvio,
		MesAnoReferencia: mesAnoRef,

		VolumeFonte:              r.integer(fields.VolumeFonte),
		VolumetriaDados:          r.integer(fields.VolumetriaDados),
		VolumetriaServicos:       r.integer(fields.VolumetriaServicos),
		IndiceDados:              r.number(fields.IndiceDados),
		IndiceServicos:           r.number(fields.IndiceServicos),
		VolumeCpfsUnicosDados:    r.integer(fields.VolumeCpfsUnicosDados),
		VolumeCpfsUnicosServicos: r.integer(fields.VolumeCpfsUnicosServicos),
		MediaMovelCpfsUnicos:     r.integer(fields.MediaMovelCpfsUnicos),

		UltimoMesEnviado:         r.text(fields.UltimoMesEnviado),
		UltimaReferencia:         r.text(fields.UltimaReferencia),
		UltimaVolumetriaEnviada:  r.integer(fields.UltimaVolumetriaEnviada),
		MediaMovelUltimos12Meses: r.integer(fields.MediaMovelUltimos12Meses),
		Media:                    r.integer(fields.Media),
		Minimo:                   r.integer(fields.Minimo),
		MesCompetenciaMinimo:     r.text(fields.MesCompetenciaMinimo),
		Maximo:                   r.integer(fields.Maximo),
		MesCompetenciaMaximo:     r.text(fields.MesCompetenciaMaximo),

		PercentualVolumetriaUltima:     r.number(fields.PercentualVolumetriaUltima),
		PercentualVolumetriaMediaMovel: r.number(fields.PercentualVolumetriaMediaMovel),
		PercentualVolumetriaMedia:      r.number(fields.PercentualVolumetriaMedia),
		PercentualVolumetriaMinimo:     r.number(fields.PercentualVolumetriaMinimo),
		PercentualVolumetriaMaximo:     r.number(fields.PercentualVolumetriaMaximo),

		PulouCompetencia:    r.flag(fields.PulouCompetencia),
		DefasagemNosDados:   r.flag(fields.DefasagemNosDados),
		NovosDados:          r.flag(fields.NovosDados),
		Status:              r.text(fields.Status),
		ObservacaoTimeDados: r.text(fields.ObservacaoTimeDados),
		Enviar:              r.flag(fields.Enviar),
	}
}

// ProcessSheet resolves headers and assembles the records of one sheet. It
// does no I/O; Skip is set when the sheet contributes nothing.
func ProcessSheet(sheet fileio.Sheet, opts model.Options, dict fields.Dictionary) model.SheetResult {
	res := model.SheetResult{Sheet: sheet.Name}

	hdrRow := max(opts.HeaderRow, 1)
	headers, ok := headerCells(sheet, hdrRow)
	if !ok {
		res.Skip = model.SkipNoHeader
		return res
	}
	res.Mapping = ResolveHeaders(headers, dict)
	res.Suggestions = suggestHeaders(headers, res.Mapping, dict)

	sheetDate := DeliveryDateFromSheet(sheet.Name, opts.DateLayout)
	seen := map[string]struct{}{}
	for i, row := range sheet.Rows[hdrRow:] {
		if fileio.RowBlank(row) {
			continue
		}
		rec := assemble(rowView{cells: row, mapping: res.Mapping}, sheet.Name, sheetDate, i)
		seen[rec.ID] = struct{}{}
		res.Records = append(res.Records, rec)
	}
	res.UniqueIDs = len(seen)
	if len(res.Records) == 0 {
		res.Skip = model.SkipNoRows
	}
	return res
}
