package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/wavefield/internal/metrics"
	"github.com/san-kum/wavefield/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	stats := []metrics.FrameStats{
		{Time: 0, MaxOffset: 0, Energy: 0},
		{Time: 16.666667, MaxOffset: 12.5, MeanOffset: 0.25, Energy: 3.5, CursorSpeed: 40, CursorX: 10, CursorY: 20},
	}
	meta := RunMetadata{
		Preset: "calm",
		Seed:   42,
		Width:  100,
		Height: 100,
		FPS:    60,
		Frames: 2,
		Cursor: "circle",
		Summary: metrics.Summary{
			Frames:     2,
			PeakEnergy: 3.5,
		},
	}

	doc := render.NewDocument(100, 100)
	doc.NewPath().SetD("M 0 0 L 1 1")

	runID, err := st.Save(meta, stats, doc)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(runID, "calm_"))

	loaded, err := st.Load(runID)
	require.NoError(t, err)
	assert.Equal(t, runID, loaded.ID)
	assert.Equal(t, 42.0, loaded.Seed)
	assert.Equal(t, "circle", loaded.Cursor)
	assert.Equal(t, 3.5, loaded.Summary.PeakEnergy)
	assert.False(t, loaded.Timestamp.IsZero())

	gotStats, err := st.LoadStats(runID)
	require.NoError(t, err)
	require.Len(t, gotStats, 2)
	assert.InDelta(t, 16.666667, gotStats[1].Time, 1e-9)
	assert.Equal(t, 12.5, gotStats[1].MaxOffset)
	assert.Equal(t, 20.0, gotStats[1].CursorY)

	svg, err := os.ReadFile(st.FramePath(runID))
	require.NoError(t, err)
	assert.Contains(t, string(svg), `d="M 0 0 L 1 1"`)
}

func TestStoreSaveWithoutFrame(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	runID, err := st.Save(RunMetadata{ID: "fixed", Preset: "default"}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "fixed", runID)

	_, err = os.Stat(st.FramePath(runID))
	assert.True(t, os.IsNotExist(err))

	stats, err := st.LoadStats(runID)
	require.NoError(t, err)
	assert.Empty(t, stats)
}

func TestStoreList(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	require.NoError(t, st.Init())

	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	_, err := st.Save(RunMetadata{ID: "b", Timestamp: base.Add(time.Minute)}, nil, nil)
	require.NoError(t, err)
	_, err = st.Save(RunMetadata{ID: "a", Timestamp: base}, nil, nil)
	require.NoError(t, err)

	// junk that List must skip
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "broken"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stray.txt"), []byte("x"), 0644))

	runs, err := st.List()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "a", runs[0].ID)
	assert.Equal(t, "b", runs[1].ID)
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "absent"))
	runs, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestStoreLoadNotFound(t *testing.T) {
	st := New(t.TempDir())

	_, err := st.Load("nope")
	assert.ErrorIs(t, err, ErrRunNotFound)

	_, err = st.LoadStats("nope")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	runID, err := st.Save(RunMetadata{Preset: "storm", Seed: 3}, []metrics.FrameStats{{Time: 1, Energy: 2}}, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, st.ExportJSON(&buf, runID))

	var out ExportData
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, runID, out.Meta.ID)
	require.Len(t, out.Stats, 1)
	assert.Equal(t, 2.0, out.Stats[0].Energy)
}

func TestExportJSONUsesStatsColumnNames(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	runID, err := st.Save(RunMetadata{Preset: "calm"}, []metrics.FrameStats{{Time: 1, MaxOffset: 4}}, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, st.ExportJSON(&buf, runID))

	var raw struct {
		Stats []map[string]float64 `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	require.Len(t, raw.Stats, 1)

	keys := make([]string, 0, len(raw.Stats[0]))
	for k := range raw.Stats[0] {
		keys = append(keys, k)
	}
	assert.ElementsMatch(t, statsHeader, keys)
	assert.Equal(t, 4.0, raw.Stats[0]["max_offset"])
}
