// Package fields holds the canonical portal fields and the spreadsheet header
// spellings accepted for each of them.
package fields

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Canonical field names.
const (
	ID                             = "_id"
	Referencia                     = "referencia"
	Portal                         = "portal"
	Esfera                         = "esfera"
	MesAnoEnvio                    = "mesAnoEnvio"
	MesAnoReferencia               = "mesAnoReferencia"
	VolumeFonte                    = "volumeFonte"
	VolumetriaDados                = "volumetriaDados"
	VolumetriaServicos             = "volumetriaServicos"
	IndiceDados                    = "indiceDados"
	IndiceServicos                 = "indiceServicos"
	VolumeCpfsUnicosDados          = "volumeCpfsUnicosDados"
	VolumeCpfsUnicosServicos       = "volumeCpfsUnicosServicos"
	MediaMovelCpfsUnicos           = "mediaMovelCpfsUnicos"
	UltimoMesEnviado               = "ultimoMesEnviado"
	UltimaReferencia               = "ultimaReferencia"
	UltimaVolumetriaEnviada        = "ultimaVolumetriaEnviada"
	MediaMovelUltimos12Meses       = "mediaMovelUltimos12Meses"
	Media                          = "media"
	Minimo                         = "minimo"
	MesCompetenciaMinimo           = "mesCompetenciaMinimo"
	Maximo                         = "maximo"
	MesCompetenciaMaximo           = "mesCompetenciaMaximo"
	PercentualVolumetriaUltima     = "percentualVolumetriaUltima"
	PercentualVolumetriaMediaMovel = "percentualVolumetriaMediaMovel"
	PercentualVolumetriaMedia      = "percentualVolumetriaMedia"
	PercentualVolumetriaMinimo     = "percentualVolumetriaMinimo"
	PercentualVolumetriaMaximo     = "percentualVolumetriaMaximo"
	PulouCompetencia               = "pulouCompetencia"
	DefasagemNosDados              = "defasagemNosDados"
	NovosDados                     = "novosDados"
	Status                         = "status"
	ObservacaoTimeDados            = "observacaoTimeDados"
	Enviar                         = "enviar"
)

type Field struct {
	Name    string
	Aliases []string
}

// Dictionary is ordered: reports list fields in this order and aliases are
// tried in declaration order.
type Dictionary []Field

// Aliases returns the alias list of name, nil for an unknown field.
func (d Dictionary) Aliases(name string) []string {
	for _, f := range d {
		if f.Name == name {
			return f.Aliases
		}
	}
	return nil
}

// Default returns a fresh copy of the built-in dictionary.
func Default() Dictionary {
	out := make(Dictionary, len(builtin))
	for i, f := range builtin {
		out[i] = Field{Name: f.Name, Aliases: append([]string(nil), f.Aliases...)}
	}
	return out
}

var builtin = Dictionary{
	{ID, []string{"_id", "id", "ID"}},
	{Referencia, []string{"referencia", "Referência", "aba", "ref"}},
	{Portal, []string{
		"portal", "Portal",
		"bot", "Bot", "BOT",
		"Nome do Bot", "Nome Bot",
		"Portal/Bot", "Portal - Bot",
		"Fonte", "Origem",
		"Serviço", "Servico", "Serviços", "Servicos",
		"Serviço/Bot", "Servicos/Bot", "Serviços/Bot",
		"Sistema", "Produto", "Aplicação", "Aplicacao",
	}},
	{Esfera, []string{"esfera", "Esfera"}},
	{MesAnoEnvio, []string{"mesAnoEnvio", "Mês/Ano Envio", "Mes/Ano Envio", "Mês/Ano de Envio", "Mes/Ano de Envio"}},
	{MesAnoReferencia, []string{
		"mesAnoReferencia",
		"Mês/Ano Referência", "Mes/Ano Referencia",
		"Mês/Ano de referência (Competência do envio atual)",
		"Mes/Ano de referencia (Competencia do envio atual)",
	}},
	{VolumeFonte, []string{"volumeFonte", "Volume Fonte", "Volume da fonte"}},
	{VolumetriaDados, []string{"volumetriaDados", "Volumetria Dados", "Volumetria de agregação (Dados)"}},
	{VolumetriaServicos, []string{"volumetriaServicos", "Volumetria Serviços", "Volumetria Servicos", "Volumetria a ser enviada (Serviços)"}},
	{IndiceDados, []string{"indiceDados", "Índice Dados", "Indice Dados", "Índice agregação (Dados)"}},
	{IndiceServicos, []string{"indiceServicos", "Índice Serviços", "Indice Servicos", "Índice agregação (Serviços)"}},
	{VolumeCpfsUnicosDados, []string{"volumeCpfsUnicosDados", "Volume CPFs Únicos (Dados)", "Volume CPFs Unicos (Dados)", "Volume cpfs únicos (Dados)"}},
	{VolumeCpfsUnicosServicos, []string{"volumeCpfsUnicosServicos", "Volume CPFs Únicos (Serviços)", "Volume CPFs Unicos (Servicos)", "Volume cpfs únicos (Serviços)"}},
	{MediaMovelCpfsUnicos, []string{"mediaMovelCpfsUnicos", "Média Móvel CPFs Únicos", "Media Movel CPFs Unicos", "Média Móvel CPFs únicos (últimos 12 meses)"}},
	{UltimoMesEnviado, []string{"ultimoMesEnviado", "Último Mês Enviado", "Ultimo Mes Enviado", "Último mês enviado"}},
	{UltimaReferencia, []string{"ultimaReferencia", "Última Referência", "Ultima Referencia", "Última referência enviada"}},
	{UltimaVolumetriaEnviada, []string{"ultimaVolumetriaEnviada", "Última Volumetria Enviada", "Ultima Volumetria Enviada", "Última Volumetria Total enviada"}},
	{MediaMovelUltimos12Meses, []string{"mediaMovelUltimos12Meses", "Média Móvel (Últimos 12 Meses)", "Media Movel (Ultimos 12 Meses)", "Média Móvel Total (últimos 12 meses)"}},
	{Media, []string{"media", "Média", "Media", "Média Histórica Total"}},
	{Minimo, []string{"minimo", "Mínimo", "Minimo", "Mínimo Total"}},
	{MesCompetenciaMinimo, []string{"mesCompetenciaMinimo", "Mês Competência Mínimo", "Mes Competencia Minimo"}},
	{Maximo, []string{"maximo", "Máximo", "Maximo"}},
	{MesCompetenciaMaximo, []string{"mesCompetenciaMaximo", "Mês Competência Máximo", "Mes Competencia Maximo"}},
	{PercentualVolumetriaUltima, []string{"percentualVolumetriaUltima", "% Volumetria vs Última", "% Volumetria vs Ultima", "% Volumetria vs última volumetria enviada"}},
	{PercentualVolumetriaMediaMovel, []string{"percentualVolumetriaMediaMovel", "% Volumetria vs Média Móvel", "% Volumetria vs Media Movel"}},
	{PercentualVolumetriaMedia, []string{"percentualVolumetriaMedia", "% Volumetria vs Média", "% Volumetria vs Media"}},
	{PercentualVolumetriaMinimo, []string{"percentualVolumetriaMinimo", "% Volumetria vs Mínimo", "% Volumetria vs Minimo"}},
	{PercentualVolumetriaMaximo, []string{"percentualVolumetriaMaximo", "% Volumetria vs Máximo", "% Volumetria vs Maximo"}},
	{PulouCompetencia, []string{"pulouCompetencia", "Pulou Competência?", "Pulou Competencia?"}},
	{DefasagemNosDados, []string{"defasagemNosDados", "Defasagem nos Dados?", "Defasagem nos Dados", "Há defasagem nos dados?"}},
	{NovosDados, []string{"novosDados", "Novos Dados?", "Novos Dados", "Com novos dados?"}},
	{Status, []string{"status", "Status"}},
	{ObservacaoTimeDados, []string{"observacaoTimeDados", "Observação Time Dados", "Observacao Time Dados", "Observação - Time Dados"}},
	{Enviar, []string{"enviar", "Enviar?", "Enviar"}},
}

// overlay is the YAML shape of an aliases file:
//
//	fields:
//	  portal: ["Robô", "Nome do Robô"]
type overlay struct {
	Fields map[string][]string `yaml:"fields"`
}

// Extend appends the aliases of a YAML overlay to d. Aliases are added after
// the built-in ones, so built-in spellings keep precedence. Unknown field
// names are an error.
func (d Dictionary) Extend(data []byte) (Dictionary, error) {
	var ov overlay
	if err := yaml.Unmarshal(data, &ov); err != nil {
		return nil, fmt.Errorf("aliases: %w", err)
	}
	out := make(Dictionary, len(d))
	copy(out, d)
	for name, extra := range ov.Fields {
		idx := -1
		for i := range out {
			if out[i].Name == name {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("aliases: unknown field %q", name)
		}
		merged := append([]string(nil), out[idx].Aliases...)
		out[idx] = Field{Name: name, Aliases: append(merged, extra...)}
	}
	return out, nil
}

// Load returns the built-in dictionary, extended with the overlay at path
// when path is not empty.
func Load(path string) (Dictionary, error) {
	d := Default()
	if path == "" {
		return d, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("aliases: %w", err)
	}
	return d.Extend(data)
}
