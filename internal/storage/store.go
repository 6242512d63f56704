package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/san-kum/wavefield/internal/metrics"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrRunNotFound indicates no recording exists under the requested id.
var ErrRunNotFound = errors.New("storage: run not found")

const (
	metadataFile = "metadata.json"
	statsFile    = "stats.csv"
	frameFile    = "frame.svg"
)

var statsHeader = []string{"time", "max_offset", "mean_offset", "energy", "cursor_speed", "cursor_x", "cursor_y"}

type Store struct {
	baseDir string
	log     *zap.Logger
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, log: zap.NewNop()}
}

func (s *Store) WithLogger(l *zap.Logger) *Store {
	s.log = l
	return s
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string          `json:"id"`
	Preset    string          `json:"preset"`
	Timestamp time.Time       `json:"timestamp"`
	Seed      float64         `json:"seed"`
	Width     float64         `json:"width"`
	Height    float64         `json:"height"`
	FPS       float64         `json:"fps"`
	Frames    int             `json:"frames"`
	Cursor    string          `json:"cursor"`
	Lines     int             `json:"lines"`
	Points    int             `json:"points"`
	Summary   metrics.Summary `json:"summary"`
}

// Save writes a recording: metadata, per-frame stats and, when frame is
// non-nil, the last rendered SVG. It returns the run id.
func (s *Store) Save(meta RunMetadata, stats []metrics.FrameStats, frame io.WriterTo) (string, error) {
	if meta.ID == "" {
		meta.ID = fmt.Sprintf("%s_%s", meta.Preset, uuid.NewString()[:8])
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(runDir, metadataFile), data, 0644); err != nil {
		return "", err
	}

	if err := writeStats(filepath.Join(runDir, statsFile), stats); err != nil {
		return "", err
	}

	if frame != nil {
		f, err := os.Create(filepath.Join(runDir, frameFile))
		if err != nil {
			return "", err
		}
		defer f.Close()
		if _, err := frame.WriteTo(f); err != nil {
			return "", err
		}
	}

	s.log.Debug("saved run", zap.String("id", meta.ID), zap.Int("frames", len(stats)))
	return meta.ID, nil
}

func writeStats(path string, stats []metrics.FrameStats) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(statsHeader); err != nil {
		return err
	}
	for _, st := range stats {
		row := []string{
			formatFloat(st.Time),
			formatFloat(st.MaxOffset),
			formatFloat(st.MeanOffset),
			formatFloat(st.Energy),
			formatFloat(st.CursorSpeed),
			formatFloat(st.CursorX),
			formatFloat(st.CursorY),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			s.log.Debug("skipping unreadable run", zap.String("dir", entry.Name()), zap.Error(err))
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadStats(runID string) ([]metrics.FrameStats, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, statsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	stats := make([]metrics.FrameStats, 0, max(len(records)-1, 0))
	for i := 1; i < len(records); i++ {
		rec := records[i]
		if len(rec) < len(statsHeader) {
			continue
		}
		vals := make([]float64, len(statsHeader))
		ok := true
		for j := range vals {
			v, err := strconv.ParseFloat(rec[j], 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}
		stats = append(stats, metrics.FrameStats{
			Time:        vals[0],
			MaxOffset:   vals[1],
			MeanOffset:  vals[2],
			Energy:      vals[3],
			CursorSpeed: vals[4],
			CursorX:     vals[5],
			CursorY:     vals[6],
		})
	}
	return stats, nil
}

// FramePath is where the last frame of a run is stored.
func (s *Store) FramePath(runID string) string {
	return filepath.Join(s.baseDir, runID, frameFile)
}

// StatsPath is the per-frame CSV of a run.
func (s *Store) StatsPath(runID string) string {
	return filepath.Join(s.baseDir, runID, statsFile)
}
