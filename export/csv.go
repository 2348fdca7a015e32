package export

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/metaball/contour"
)

// PointRow is one polyline vertex in CSV form.
type PointRow struct {
	Frame    int32   `csv:"frame"`
	Polyline int     `csv:"polyline"`
	Index    int     `csv:"index"`
	X        float64 `csv:"x"`
	Y        float64 `csv:"y"`
	Closed   bool    `csv:"closed"`
}

// Rows flattens polylines into PointRows tagged with frame.
func Rows(frame int32, polylines []contour.Polyline) []PointRow {
	var rows []PointRow
	for i, pl := range polylines {
		for j, p := range pl.Points {
			rows = append(rows, PointRow{
				Frame:    frame,
				Polyline: i,
				Index:    j,
				X:        p.X,
				Y:        p.Y,
				Closed:   pl.Closed,
			})
		}
	}
	return rows
}

// WriteContoursCSV writes every polyline vertex of a frame to w with a header.
func WriteContoursCSV(w io.Writer, frame int32, polylines []contour.Polyline) error {
	rows := Rows(frame, polylines)
	if rows == nil {
		rows = []PointRow{}
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("writing contours: %w", err)
	}
	return nil
}
