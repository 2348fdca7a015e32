package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/metaball/contour"
)

func frame() []contour.Polyline {
	return []contour.Polyline{
		{
			Points: []contour.Point{{X: 1, Y: 1}, {X: 3, Y: 1}, {X: 3, Y: 3}, {X: 1, Y: 3}},
			Closed: true,
		},
		{
			Points: []contour.Point{{X: 5, Y: 0}, {X: 6, Y: 2}},
		},
	}
}

func TestWriteContoursCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteContoursCSV(&buf, 42, frame()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 7)
	assert.Equal(t, []string{"frame", "polyline", "index", "x", "y", "closed"}, rows[0])
	assert.Equal(t, []string{"42", "0", "0", "1", "1", "true"}, rows[1])
	assert.Equal(t, []string{"42", "1", "1", "6", "2", "false"}, rows[6])
}

func TestRowsEmpty(t *testing.T) {
	assert.Empty(t, Rows(0, nil))
}

func TestPlotContours(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "frame.png")
	sources := []contour.Source{{Center: contour.Point{X: 2, Y: 2}, Radius: 1}}

	err := PlotContours(path, frame(), sources, PlotOptions{Title: "test", Width: 10, Height: 10, WidthIn: 2, HeightIn: 2})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")), "expected PNG signature")
}

func TestSnapshotter(t *testing.T) {
	assert.Nil(t, NewSnapshotter("", 10, PlotOptions{}))
	assert.Nil(t, NewSnapshotter(t.TempDir(), 0, PlotOptions{}))

	var disabled *Snapshotter
	assert.False(t, disabled.Due(10))
	assert.NoError(t, disabled.Write(10, frame(), nil))

	dir := t.TempDir()
	s := NewSnapshotter(dir, 5, PlotOptions{WidthIn: 2, HeightIn: 2})
	assert.False(t, s.Due(3))
	require.True(t, s.Due(10))
	require.NoError(t, s.Write(10, frame(), nil))

	assert.FileExists(t, filepath.Join(dir, "frame_000010.png"))
	assert.FileExists(t, filepath.Join(dir, "frame_000010.csv"))
}
