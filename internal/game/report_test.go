package game

import (
	"strings"
	"testing"
)

func TestBuildNetworkReport_Counts(t *testing.T) {
	w := NewEmptyWorld(1)
	g := w.Grid
	// A short line plus an isolated stub.
	for y := 0; y <= 4; y++ {
		g.Place(2, y, BuildingRail)
	}
	g.Place(9, 9, BuildingRail)

	r := w.BuildNetworkReport()
	if r.RailTiles != 6 {
		t.Fatalf("expected 6 rail tiles, got %d", r.RailTiles)
	}
	if r.TrackCounts[TrackStraightEW] != 3 {
		t.Fatalf("expected 3 straight tiles, got %d", r.TrackCounts[TrackStraightEW])
	}
	if r.TrackCounts[TrackEndE]+r.TrackCounts[TrackEndW] != 2 {
		t.Fatalf("expected the line's two dead ends, got %+v", r.TrackCounts)
	}
	if r.TrackCounts[TrackSingle] != 1 {
		t.Fatalf("expected 1 isolated stub, got %d", r.TrackCounts[TrackSingle])
	}
	if r.RunID == "" {
		t.Fatal("report needs a run id")
	}
}

func TestBuildNetworkReport_StationLinks(t *testing.T) {
	w := NewEmptyWorld(1)
	g := w.Grid
	for y := 0; y <= 10; y++ {
		g.Place(3, y, BuildingRail)
	}
	g.Place(1, 1, BuildingRailStation) // footprint touches the line
	g.Place(1, 7, BuildingRailStation)
	g.Place(20, 20, BuildingRailStation) // disconnected

	r := w.BuildNetworkReport()
	if len(r.Stations) != 3 {
		t.Fatalf("expected 3 stations, got %d", len(r.Stations))
	}
	if !r.Linked[0][1] || !r.Linked[1][0] {
		t.Fatal("stations on the same line should be linked")
	}
	if r.Linked[0][2] || r.Linked[2][1] {
		t.Fatal("isolated station should not be linked")
	}
}

func TestNetworkReport_String(t *testing.T) {
	w := NewWorld(9)
	for i := 0; i < 5000; i++ {
		w.Step(1.0/60.0, 2.0)
	}
	s := w.BuildNetworkReport().String()
	for _, want := range []string{"rail network report", "rail tiles:", "stations:", "trains:"} {
		if !strings.Contains(s, want) {
			t.Fatalf("report text missing %q:\n%s", want, s)
		}
	}
}
