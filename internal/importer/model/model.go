package model

import (
	"bytes"
	"encoding/json"
)

// Portal is the record read by the dashboard backend (collection "portals").
// Numeric metrics are pointers: nil means the sheet had no usable value and the
// field is left out of the stored document.
type Portal struct {
	ID               string `json:"_id" bson:"_id"`
	Referencia       string `json:"referencia" bson:"referencia"`
	DataEntrega      string `json:"dataEntrega" bson:"dataEntrega"`
	Portal           string `json:"portal" bson:"portal"`
	Esfera           string `json:"esfera" bson:"esfera"`
	MesAnoEnvio      string `json:"mesAnoEnvio" bson:"mesAnoEnvio"`
	MesAnoReferencia string `json:"mesAnoReferencia" bson:"mesAnoReferencia"`

	VolumeFonte              *int64   `json:"volumeFonte,omitempty" bson:"volumeFonte,omitempty"`
	VolumetriaDados          *int64   `json:"volumetriaDados,omitempty" bson:"volumetriaDados,omitempty"`
	VolumetriaServicos       *int64   `json:"volumetriaServicos,omitempty" bson:"volumetriaServicos,omitempty"`
	IndiceDados              *float64 `json:"indiceDados,omitempty" bson:"indiceDados,omitempty"`
	IndiceServicos           *float64 `json:"indiceServicos,omitempty" bson:"indiceServicos,omitempty"`
	VolumeCpfsUnicosDados    *int64   `json:"volumeCpfsUnicosDados,omitempty" bson:"volumeCpfsUnicosDados,omitempty"`
	VolumeCpfsUnicosServicos *int64   `json:"volumeCpfsUnicosServicos,omitempty" bson:"volumeCpfsUnicosServicos,omitempty"`
	MediaMovelCpfsUnicos     *int64   `json:"mediaMovelCpfsUnicos,omitempty" bson:"mediaMovelCpfsUnicos,omitempty"`

	UltimoMesEnviado         string `json:"ultimoMesEnviado" bson:"ultimoMesEnviado"`
	UltimaReferencia         string `json:"ultimaReferencia" bson:"ultimaReferencia"`
	UltimaVolumetriaEnviada  *int64 `json:"ultimaVolumetriaEnviada,omitempty" bson:"ultimaVolumetriaEnviada,omitempty"`
	MediaMovelUltimos12Meses *int64 `json:"mediaMovelUltimos12Meses,omitempty" bson:"mediaMovelUltimos12Meses,omitempty"`
	Media                    *int64 `json:"media,omitempty" bson:"media,omitempty"`
	Minimo                   *int64 `json:"minimo,omitempty" bson:"minimo,omitempty"`
	MesCompetenciaMinimo     string `json:"mesCompetenciaMinimo" bson:"mesCompetenciaMinimo"`
	Maximo                   *int64 `json:"maximo,omitempty" bson:"maximo,omitempty"`
	MesCompetenciaMaximo     string `json:"mesCompetenciaMaximo" bson:"mesCompetenciaMaximo"`

	PercentualVolumetriaUltima     *float64 `json:"percentualVolumetriaUltima,omitempty" bson:"percentualVolumetriaUltima,omitempty"`
	PercentualVolumetriaMediaMovel *float64 `json:"percentualVolumetriaMediaMovel,omitempty" bson:"percentualVolumetriaMediaMovel,omitempty"`
	PercentualVolumetriaMedia      *float64 `json:"percentualVolumetriaMedia,omitempty" bson:"percentualVolumetriaMedia,omitempty"`
	PercentualVolumetriaMinimo     *float64 `json:"percentualVolumetriaMinimo,omitempty" bson:"percentualVolumetriaMinimo,omitempty"`
	PercentualVolumetriaMaximo     *float64 `json:"percentualVolumetriaMaximo,omitempty" bson:"percentualVolumetriaMaximo,omitempty"`

	PulouCompetencia    bool   `json:"pulouCompetencia" bson:"pulouCompetencia"`
	DefasagemNosDados   bool   `json:"defasagemNosDados" bson:"defasagemNosDados"`
	NovosDados          bool   `json:"novosDados" bson:"novosDados"`
	Status              string `json:"status" bson:"status"`
	ObservacaoTimeDados string `json:"observacaoTimeDados" bson:"observacaoTimeDados"`
	Enviar              bool   `json:"enviar" bson:"enviar"`
}

// Options control one import run.
type Options struct {
	HeaderRow   int    // строка заголовков (1-based)
	DryRun      bool   // everything except writes
	Reset       bool   // clear the collection before the first write
	SampleCount int    // records per sheet in the sample report
	DateLayout  string // dd/MM/yyyy | dd/MM/yy | dd/MM/yyy
}

// FieldMatch is the resolution of one canonical field on one sheet.
// Index is the 0-based column, -1 when no alias matched.
type FieldMatch struct {
	Field  string
	Header string
	Index  int
}

func (m FieldMatch) Matched() bool { return m.Index >= 0 }

// FieldMapping keeps dictionary order; it serialises as a JSON object
// {field: header|null} in that order.
type FieldMapping []FieldMatch

// Lookup returns the column index resolved for field, or -1.
func (fm FieldMapping) Lookup(field string) int {
	for _, m := range fm {
		if m.Field == field {
			return m.Index
		}
	}
	return -1
}

func (fm FieldMapping) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range fm {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(m.Field)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		if !m.Matched() {
			buf.WriteString("null")
			continue
		}
		v, err := json.Marshal(m.Header)
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Skip reasons for a sheet.
const (
	SkipNoHeader = "no header row"
	SkipNoRows   = "no valid rows"
)

// SheetResult is everything one sheet produced. It is built without touching
// the store; the importer persists Records afterwards.
type SheetResult struct {
	Sheet       string
	Mapping     FieldMapping
	Suggestions map[string]string
	Records     []Portal
	UniqueIDs   int
	Skip        string // empty when the sheet was imported
	Upserts     int
}

// RunResult accumulates sheet results in workbook order.
type RunResult struct {
	File    string
	Options Options
	Sheets  []SheetResult
	Rows    int
	Upserts int
	Skipped int
}
