package game

import (
	"math/rand"
	"testing"
)

func TestSpawnTrain_EmptyGrid(t *testing.T) {
	g := NewGrid(GridSize)
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		if tr := SpawnTrain(g, rng, i); tr != nil {
			t.Fatal("no rail tiles: spawn must return nil")
		}
	}
}

func TestSpawnTrain_TinyNetworkRefused(t *testing.T) {
	g := NewGrid(GridSize)
	for y := 0; y < minRailForSpawn-1; y++ {
		g.Place(0, y, BuildingRail)
	}
	rng := rand.New(rand.NewSource(2))
	if tr := SpawnTrain(g, rng, 0); tr != nil {
		t.Fatalf("%d rail tiles is under the minimum, spawn must refuse", minRailForSpawn-1)
	}
}

// lineGrid lays a straight rail line along y on row x=0, n tiles long.
func lineGrid(n int) *Grid {
	g := NewGrid(GridSize)
	for y := 0; y < n; y++ {
		g.Place(0, y, BuildingRail)
	}
	return g
}

func TestSpawnTrain_Composition(t *testing.T) {
	g := lineGrid(20)
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 60; i++ {
		tr := SpawnTrain(g, rng, i)
		if tr == nil {
			continue // station branch may fail; irrelevant here (no stations)
		}
		n := len(tr.Carriages)
		switch tr.Type {
		case TrainPassenger:
			if n < 5 || n > 8 {
				t.Fatalf("passenger train with %d carriages", n)
			}
			if tr.Speed < 0.25 || tr.Speed >= 0.35 {
				t.Fatalf("passenger speed %f out of range", tr.Speed)
			}
			if tr.MaxAge < 60 || tr.MaxAge >= 90 {
				t.Fatalf("passenger max age %f out of range", tr.MaxAge)
			}
		case TrainFreight:
			if n < 6 || n > 10 {
				t.Fatalf("freight train with %d carriages", n)
			}
			if tr.Speed < 0.18 || tr.Speed >= 0.26 {
				t.Fatalf("freight speed %f out of range", tr.Speed)
			}
			if tr.MaxAge < 60 || tr.MaxAge >= 100 {
				t.Fatalf("freight max age %f out of range", tr.MaxAge)
			}
		}
		if tr.Carriages[0].Type != CarriageLocomotive {
			t.Fatal("first carriage must be the locomotive")
		}
		if tr.Carriages[n-1].Type != CarriageCaboose {
			t.Fatal("last carriage must be the caboose")
		}
		for j := 1; j < n-1; j++ {
			ct := tr.Carriages[j].Type
			if tr.Type == TrainPassenger && ct != CarriagePassenger {
				t.Fatalf("passenger body car %d has type %d", j, ct)
			}
			if tr.Type == TrainFreight &&
				ct != CarriageFreightBox && ct != CarriageFreightTank && ct != CarriageFreightFlat {
				t.Fatalf("freight body car %d has type %d", j, ct)
			}
		}
		for j, c := range tr.Carriages {
			want := -float64(j) * carriageSpacing
			if c.Progress != want {
				t.Fatalf("carriage %d initial progress %f, want %f", j, c.Progress, want)
			}
		}
		if tr.Type == TrainFreight && tr.Carriages[n-1].Colour != freightCabooseColour {
			t.Fatal("freight caboose must use the fixed caboose colour")
		}
		if tr.Type == TrainPassenger && tr.Carriages[n-1].Colour != tr.Carriages[0].Colour {
			t.Fatal("passenger tail car shares the locomotive colour")
		}
	}
}

func TestSpawnTrain_StationWithoutRailFails(t *testing.T) {
	g := lineGrid(15)
	// Station far away from the line, nothing adjacent.
	g.Place(20, 20, BuildingRailStation)
	rng := rand.New(rand.NewSource(4))
	sawNil := false
	for i := 0; i < 200; i++ {
		tr := SpawnTrain(g, rng, i)
		if tr == nil {
			sawNil = true
			continue
		}
		// Non-station spawns must land on the line.
		if tr.X != 0 {
			t.Fatalf("spawned off the rail line at (%d,%d)", tr.X, tr.Y)
		}
	}
	if !sawNil {
		t.Fatal("station branch should fail sometimes when the station has no adjacent rail")
	}
}

func TestSpawnTrain_NearStation(t *testing.T) {
	g := lineGrid(15)
	// Station whose footprint sits beside the line: origin (1,5) covers
	// (1..2, 5..6); the rail at (0,5) is its orthogonal north neighbor.
	g.Place(1, 5, BuildingRailStation)
	rng := rand.New(rand.NewSource(5))
	found := false
	for i := 0; i < 200; i++ {
		tr := SpawnTrain(g, rng, i)
		if tr == nil {
			continue
		}
		found = true
		if !g.IsRail(tr.X, tr.Y) {
			t.Fatalf("train spawned on non-rail tile (%d,%d)", tr.X, tr.Y)
		}
	}
	if !found {
		t.Fatal("expected at least one successful spawn")
	}
}

func TestTrainCap(t *testing.T) {
	cases := []struct {
		rails int
		want  int
	}{
		{0, 0},
		{9, 0},
		{10, 1},
		{24, 1},
		{25, 1},
		{50, 2},
		{100, 4},
		{500, 8},
	}
	for _, c := range cases {
		if got := TrainCap(c.rails); got != c.want {
			t.Errorf("TrainCap(%d) = %d, want %d", c.rails, got, c.want)
		}
	}
}
