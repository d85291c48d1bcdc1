package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portal-import/internal/importer/fields"
)

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "media movel", NormalizeHeader("  Média\u00A0  Móvel "))
	assert.Equal(t, "mes/ano envio", NormalizeHeader("MÊS/ANO ENVIO"))
	assert.Equal(t, "", NormalizeHeader("   "))
}

func TestResolveHeaders_BotAlias(t *testing.T) {
	m := ResolveHeaders([]string{"Bot", "Volume Fonte", "Status"}, fields.Default())
	assert.Equal(t, 0, m.Lookup(fields.Portal))
	assert.Equal(t, 1, m.Lookup(fields.VolumeFonte))
	assert.Equal(t, 2, m.Lookup(fields.Status))
	assert.Equal(t, -1, m.Lookup(fields.Esfera))
}

func TestResolveField_AliasOrderBeatsColumnOrder(t *testing.T) {
	dict := fields.Default()
	// "bot" is declared before "Fonte"
	m := ResolveHeaders([]string{"Fonte", "Bot"}, dict)
	assert.Equal(t, 1, m.Lookup(fields.Portal))

	// same alias twice: leftmost column
	m = ResolveHeaders([]string{"x", "PORTAL", "Portal"}, dict)
	assert.Equal(t, 1, m.Lookup(fields.Portal))

	assert.Equal(t, -1, ResolveField([]string{"a", "b"}, []string{"c"}))
}

func TestResolveHeaders_Accents(t *testing.T) {
	m := ResolveHeaders([]string{"Mes/Ano Envio", "Indice Dados", "mínimo total"}, fields.Default())
	assert.Equal(t, 0, m.Lookup(fields.MesAnoEnvio))
	assert.Equal(t, 1, m.Lookup(fields.IndiceDados))
	assert.Equal(t, 2, m.Lookup(fields.Minimo))
}

func TestResolveHeaders_KeepsDictionaryOrderAndHeaderText(t *testing.T) {
	dict := fields.Default()
	m := ResolveHeaders([]string{" Status ", "Bot"}, dict)
	require.Len(t, m, len(dict))
	for i, f := range dict {
		assert.Equal(t, f.Name, m[i].Field)
	}
	for _, fm := range m {
		if fm.Field == fields.Status {
			assert.Equal(t, " Status ", fm.Header)
		}
	}
}

func TestSuggestHeaders(t *testing.T) {
	dict := fields.Default()
	headers := []string{"Bot", "Volume Fontes", "Statsu", "Qualquer coisa"}
	m := ResolveHeaders(headers, dict)
	require.Equal(t, -1, m.Lookup(fields.VolumeFonte))

	s := suggestHeaders(headers, m, dict)
	assert.Equal(t, "Volume Fontes", s[fields.VolumeFonte])
	assert.NotContains(t, s, fields.Portal, "matched fields get no suggestion")
	for _, h := range s {
		assert.NotEqual(t, "Qualquer coisa", h)
	}
	// suggestions never change the mapping
	assert.Equal(t, -1, m.Lookup(fields.VolumeFonte))
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, similarity("abc", "abc"))
	assert.Equal(t, 1, damerauLevenshtein("status", "statsu"))
	assert.Equal(t, 3, damerauLevenshtein("", "abc"))
	assert.InDelta(t, 1-1.0/13, similarity("volume fonte", "volume fontes"), 1e-9)
}
