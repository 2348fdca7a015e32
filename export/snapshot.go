package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pthm-cable/metaball/contour"
)

// Snapshotter writes a PNG and CSV pair for selected frames into a directory.
type Snapshotter struct {
	dir   string
	every int32
	opts  PlotOptions
}

// NewSnapshotter returns nil when dir is empty or every is not positive,
// which disables snapshots.
func NewSnapshotter(dir string, every int32, opts PlotOptions) *Snapshotter {
	if dir == "" || every <= 0 {
		return nil
	}
	return &Snapshotter{dir: dir, every: every, opts: opts}
}

// Due reports whether tick should be snapshotted.
func (s *Snapshotter) Due(tick int32) bool {
	return s != nil && tick%s.every == 0
}

// Write stores frame_<tick>.png and frame_<tick>.csv.
func (s *Snapshotter) Write(tick int32, polylines []contour.Polyline, sources []contour.Source) error {
	if s == nil {
		return nil
	}
	base := filepath.Join(s.dir, fmt.Sprintf("frame_%06d", tick))

	opts := s.opts
	if opts.Title == "" {
		opts.Title = fmt.Sprintf("tick %d", tick)
	}
	if err := PlotContours(base+".png", polylines, sources, opts); err != nil {
		return err
	}

	f, err := os.Create(base + ".csv")
	if err != nil {
		return fmt.Errorf("creating %s.csv: %w", base, err)
	}
	werr := WriteContoursCSV(f, tick, polylines)
	return errors.Join(werr, f.Close())
}
