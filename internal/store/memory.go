package store

import (
	"context"
	"sync"

	"portal-import/internal/importer/model"
)

// Memory keeps records in a map. Upsert has the same merge semantics as the
// mongo $set: nil metrics of rec keep the stored values.
type Memory struct {
	mu   sync.Mutex
	docs map[string]model.Portal
	// Writes counts Upsert and DeleteAll calls.
	Writes int
}

func NewMemory() *Memory {
	return &Memory{docs: make(map[string]model.Portal)}
}

func (m *Memory) Upsert(_ context.Context, rec model.Portal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Writes++
	if prev, ok := m.docs[rec.ID]; ok {
		rec = mergePortal(prev, rec)
	}
	m.docs[rec.ID] = rec
	return nil
}

func (m *Memory) DeleteAll(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Writes++
	n := int64(len(m.docs))
	m.docs = make(map[string]model.Portal)
	return n, nil
}

func (m *Memory) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.docs)), nil
}

func (m *Memory) Get(id string) (model.Portal, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.docs[id]
	return p, ok
}

func (m *Memory) Close(context.Context) error { return nil }

// mergePortal applies next over prev: every non-pointer field is replaced,
// pointer metrics only when next carries a value.
func mergePortal(prev, next model.Portal) model.Portal {
	keepInt := func(dst **int64, old *int64) {
		if *dst == nil {
			*dst = old
		}
	}
	keepFloat := func(dst **float64, old *float64) {
		if *dst == nil {
			*dst = old
		}
	}
	keepInt(&next.VolumeFonte, prev.VolumeFonte)
	keepInt(&next.VolumetriaDados, prev.VolumetriaDados)
	keepInt(&next.VolumetriaServicos, prev.VolumetriaServicos)
	keepFloat(&next.IndiceDados, prev.IndiceDados)
	keepFloat(&next.IndiceServicos, prev.IndiceServicos)
	keepInt(&next.VolumeCpfsUnicosDados, prev.VolumeCpfsUnicosDados)
	keepInt(&next.VolumeCpfsUnicosServicos, prev.VolumeCpfsUnicosServicos)
	keepInt(&next.MediaMovelCpfsUnicos, prev.MediaMovelCpfsUnicos)
	keepInt(&next.UltimaVolumetriaEnviada, prev.UltimaVolumetriaEnviada)
	keepInt(&next.MediaMovelUltimos12Meses, prev.MediaMovelUltimos12Meses)
	keepInt(&next.Media, prev.Media)
	keepInt(&next.Minimo, prev.Minimo)
	keepInt(&next.Maximo, prev.Maximo)
	keepFloat(&next.PercentualVolumetriaUltima, prev.PercentualVolumetriaUltima)
	keepFloat(&next.PercentualVolumetriaMediaMovel, prev.PercentualVolumetriaMediaMovel)
	keepFloat(&next.PercentualVolumetriaMedia, prev.PercentualVolumetriaMedia)
	keepFloat(&next.PercentualVolumetriaMinimo, prev.PercentualVolumetriaMinimo)
	keepFloat(&next.PercentualVolumetriaMaximo, prev.PercentualVolumetriaMaximo)
	return next
}
