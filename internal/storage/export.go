package storage

import (
	"io"

	"github.com/san-kum/wavefield/internal/metrics"
)

type ExportData struct {
	Meta  RunMetadata          `json:"meta"`
	Stats []metrics.FrameStats `json:"stats"`
}

// ExportJSON writes metadata and every frame stat of a run as one document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	stats, err := s.LoadStats(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{Meta: *meta, Stats: stats})
}
