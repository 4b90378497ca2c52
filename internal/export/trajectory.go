package export

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/san-kum/metaballs/internal/sim"
)

// TrajectoryRow is one circle at one recorded frame.
type TrajectoryRow struct {
	Frame  int     `csv:"frame"`
	TimeMs float64 `csv:"time_ms"`
	Circle int     `csv:"circle"`
	X      float64 `csv:"x"`
	Y      float64 `csv:"y"`
	R      float64 `csv:"r"`
	DX     float64 `csv:"dx"`
	DY     float64 `csv:"dy"`
}

func TrajectoryRows(result *sim.Result) []TrajectoryRow {
	rows := make([]TrajectoryRow, 0)
	for _, snap := range result.Trajectory {
		for i, c := range snap.Scene {
			rows = append(rows, TrajectoryRow{
				Frame:  snap.Frame,
				TimeMs: snap.Time,
				Circle: i,
				X:      c.X,
				Y:      c.Y,
				R:      c.R,
				DX:     c.DX,
				DY:     c.DY,
			})
		}
	}
	return rows
}

// WriteTrajectoryCSV writes every recorded snapshot, one row per circle.
func WriteTrajectoryCSV(w io.Writer, result *sim.Result) error {
	rows := TrajectoryRows(result)
	if len(rows) == 0 {
		return fmt.Errorf("no trajectory recorded")
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("writing trajectory: %w", err)
	}
	return nil
}
