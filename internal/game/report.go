package game

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/google/uuid"
)

// NetworkReport is a snapshot of the rail network and its traffic, built
// for the debug overlay, the clipboard export, and the headless runner.
type NetworkReport struct {
	RunID       string
	Seed        int64
	Tick        int
	RailTiles   int
	TrackCounts [trackTypeCount]int
	Stations    [][2]int
	// Linked[i][j] is true when a rail path exists from station i to j.
	Linked [][]bool
	Trains []TrainSummary
}

// TrainSummary is the per-train line of a report.
type TrainSummary struct {
	ID        int
	Type      TrainType
	Carriages int
	X, Y      int
	Heading   Direction
	Age       float64
	AtStation bool
}

// BuildNetworkReport surveys the world: classifies every track tile, checks
// pairwise station reachability over the rails, and summarises the fleet.
func (w *World) BuildNetworkReport() NetworkReport {
	r := NetworkReport{
		RunID: uuid.NewString(),
		Seed:  w.Seed,
		Tick:  w.Tick,
	}
	g := w.Grid
	for x := 0; x < g.Size; x++ {
		for y := 0; y < g.Size; y++ {
			if !g.IsRail(x, y) {
				continue
			}
			r.RailTiles++
			r.TrackCounts[g.AdjacentRail(x, y).TrackType()]++
		}
	}

	r.Stations = g.StationOrigins()
	r.Linked = make([][]bool, len(r.Stations))
	for i := range r.Stations {
		r.Linked[i] = make([]bool, len(r.Stations))
		for j := range r.Stations {
			if i == j {
				r.Linked[i][j] = true
				continue
			}
			a, b := r.Stations[i], r.Stations[j]
			r.Linked[i][j] = FindRailPath(g, a[0], a[1], b[0], b[1]) != nil
		}
	}

	for _, t := range w.Trains {
		r.Trains = append(r.Trains, TrainSummary{
			ID:        t.ID,
			Type:      t.Type,
			Carriages: len(t.Carriages),
			X:         t.X,
			Y:         t.Y,
			Heading:   t.Heading,
			Age:       t.Age,
			AtStation: t.AtStation,
		})
	}
	return r
}

// String renders the report as plain text.
func (r NetworkReport) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "--- tinyburg rail network report ---\n")
	fmt.Fprintf(&b, "run=%s seed=%d tick=%d\n", r.RunID, r.Seed, r.Tick)
	fmt.Fprintf(&b, "rail tiles: %d\n", r.RailTiles)

	b.WriteString("track shapes:")
	for t := TrackType(0); t < trackTypeCount; t++ {
		if r.TrackCounts[t] > 0 {
			fmt.Fprintf(&b, " %s=%d", t, r.TrackCounts[t])
		}
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "stations: %d\n", len(r.Stations))
	for i, s := range r.Stations {
		linked := 0
		for j := range r.Stations {
			if j != i && r.Linked[i][j] {
				linked++
			}
		}
		fmt.Fprintf(&b, "  #%d at (%d,%d) reaches %d/%d\n", i, s[0], s[1], linked, len(r.Stations)-1)
	}

	fmt.Fprintf(&b, "trains: %d\n", len(r.Trains))
	for _, t := range r.Trains {
		status := "running"
		if t.AtStation {
			status = "at station"
		}
		fmt.Fprintf(&b, "  train %d %s cars=%d at (%d,%d) %s age=%.0fs %s\n",
			t.ID, t.Type, t.Carriages, t.X, t.Y, t.Heading, t.Age, status)
	}
	return b.String()
}

// CopyToClipboard puts the text report on the system clipboard.
func (r NetworkReport) CopyToClipboard() error {
	return clipboard.WriteAll(r.String())
}
