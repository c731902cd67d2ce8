package game

import (
	"math"
	"testing"
)

// testTrain builds a minimal train by hand so movement tests control every
// parameter.
func testTrain(x, y int, heading Direction, speed float64, carriages int, typ TrainType) *Train {
	t := &Train{
		ID:      0,
		Type:    typ,
		X:       x,
		Y:       y,
		Heading: heading,
		Speed:   speed,
		MaxAge:  1e9,
		history: []Point{{x, y}},
	}
	t.Carriages = make([]TrainCarriage, carriages)
	for i := range t.Carriages {
		t.Carriages[i] = TrainCarriage{
			Type: CarriagePassenger, X: x, Y: y, Heading: heading,
			Progress: -float64(i) * carriageSpacing,
		}
	}
	t.Carriages[0].Type = CarriageLocomotive
	return t
}

func TestTrain_StraightLineTraversal(t *testing.T) {
	const n = 10
	g := lineGrid(n)
	tr := testTrain(0, 0, West, 0.3, 2, TrainFreight)

	const dt = 0.05
	ticks := int(math.Ceil(float64(n)/0.3/dt)) + 10
	maxY := 0
	for i := 0; i < ticks; i++ {
		if !tr.Update(dt, 1.0, g) {
			t.Fatal("train should stay alive on the line")
		}
		if tr.Y < maxY && tr.Heading == West {
			t.Fatalf("train moved backward to y=%d while still heading west", tr.Y)
		}
		if tr.Y > maxY {
			maxY = tr.Y
		}
		if tr.Y == n-1 {
			break
		}
	}
	if maxY != n-1 {
		t.Fatalf("train never reached the far end, got to y=%d", maxY)
	}
	// Arrival time should be about (n-1)/speed seconds.
	wantAge := float64(n-1) / 0.3
	if tr.Age < wantAge-1 || tr.Age > wantAge+1 {
		t.Fatalf("arrival age %.2fs, want about %.2fs", tr.Age, wantAge)
	}
}

func TestTrain_LoopRunsForever(t *testing.T) {
	g := NewGrid(GridSize)
	for i := 2; i <= 7; i++ {
		g.Place(2, i, BuildingRail)
		g.Place(7, i, BuildingRail)
		g.Place(i, 2, BuildingRail)
		g.Place(i, 7, BuildingRail)
	}
	tr := testTrain(2, 4, West, 0.3, 3, TrainFreight)

	prev := tr.Heading
	for i := 0; i < 20000; i++ {
		if !tr.Update(0.05, 1.0, g) {
			t.Fatalf("train died on a closed loop at tick %d", i)
		}
		if tr.Heading == prev.Opposite() {
			t.Fatalf("train reversed on a closed loop at tick %d", i)
		}
		prev = tr.Heading
	}
}

func TestTrain_TerminusReversesInPlace(t *testing.T) {
	g := NewGrid(GridSize)
	g.Place(4, 5, BuildingRail)
	g.Place(5, 5, BuildingRail)
	// Heading south off the end of the stub: nothing at (6,5).
	tr := testTrain(5, 5, South, 0.5, 2, TrainFreight)
	tr.Progress = 0.9

	if !tr.Update(0.5, 1.0, g) {
		t.Fatal("a dead-ended train bounces, it is not removed")
	}
	if tr.X != 5 || tr.Y != 5 {
		t.Fatalf("train must stay in place, moved to (%d,%d)", tr.X, tr.Y)
	}
	if tr.Heading != North {
		t.Fatalf("train should reverse to north, got %s", tr.Heading)
	}
	if tr.Progress != 0.5 {
		t.Fatalf("bounce must reset progress to 0.5, got %f", tr.Progress)
	}
}

func TestTrain_RemovedWhenTrackBulldozed(t *testing.T) {
	g := lineGrid(12)
	tr := testTrain(0, 5, West, 0.3, 2, TrainFreight)
	if !tr.Update(0.05, 1.0, g) {
		t.Fatal("train should start alive")
	}
	g.Bulldoze(0, tr.Y)
	if tr.Update(0.05, 1.0, g) {
		t.Fatal("train on bulldozed track must be removed")
	}
}

func TestTrain_AgeOut(t *testing.T) {
	g := lineGrid(12)
	tr := testTrain(0, 0, West, 0.3, 2, TrainFreight)
	tr.MaxAge = 1.0
	alive := true
	for i := 0; i < 100 && alive; i++ {
		alive = tr.Update(0.05, 1.0, g)
	}
	if alive {
		t.Fatal("train should age out")
	}
	if tr.Age <= tr.MaxAge {
		t.Fatalf("removed at age %f before max age %f", tr.Age, tr.MaxAge)
	}
}

func TestTrain_PassengerDwellsAtStation(t *testing.T) {
	g := NewGrid(GridSize)
	// Vertical line on x=3 interrupted by a station footprint: origin (2,4)
	// covers (2..3, 4..5), so (3,4) and (3,5) are footprint cells.
	for y := 0; y < 12; y++ {
		if y == 4 || y == 5 {
			continue
		}
		g.Place(3, y, BuildingRail)
	}
	g.Place(2, 4, BuildingRailStation)

	tr := testTrain(3, 2, West, 0.4, 2, TrainPassenger)
	entered := false
	for i := 0; i < 2000; i++ {
		tr.Update(0.05, 1.0, g)
		if tr.AtStation {
			entered = true
			break
		}
	}
	if !entered {
		t.Fatal("passenger train never dwelled at the station")
	}
	if !g.IsRailStation(tr.X, tr.Y) {
		t.Fatalf("dwelling off-station at (%d,%d)", tr.X, tr.Y)
	}
	// Dwell holds position and counts down.
	hx, hy, hp := tr.X, tr.Y, tr.Progress
	tr.Update(0.05, 1.0, g)
	if tr.X != hx || tr.Y != hy || tr.Progress != hp {
		t.Fatal("train must not move while dwelling")
	}
	// Dwell runs out after stationDwellTime seconds.
	for i := 0; i < int(stationDwellTime/0.05)+5; i++ {
		tr.Update(0.05, 1.0, g)
	}
	if tr.AtStation {
		t.Fatal("dwell should have expired")
	}
}

func TestTrain_FreightNeverDwells(t *testing.T) {
	g := NewGrid(GridSize)
	for y := 0; y < 12; y++ {
		if y == 4 || y == 5 {
			continue
		}
		g.Place(3, y, BuildingRail)
	}
	g.Place(2, 4, BuildingRailStation)

	tr := testTrain(3, 2, West, 0.4, 2, TrainFreight)
	for i := 0; i < 2000; i++ {
		tr.Update(0.05, 1.0, g)
		if tr.AtStation {
			t.Fatal("freight trains do not stop at stations")
		}
	}
}

func TestCarriages_ProgressAlwaysClamped(t *testing.T) {
	for carriages := 2; carriages <= 10; carriages++ {
		g := lineGrid(20)
		tr := testTrain(0, 0, West, 0.3, carriages, TrainFreight)
		for i := 0; i < 3000; i++ {
			tr.Update(0.05, 1.0, g)
			for j, c := range tr.Carriages {
				if c.Progress < 0 || c.Progress > 0.99 {
					t.Fatalf("%d carriages, tick %d: carriage %d progress %f out of [0,0.99]",
						carriages, i, j, c.Progress)
				}
			}
		}
	}
}

func TestCarriages_FollowLead(t *testing.T) {
	g := lineGrid(20)
	tr := testTrain(0, 0, West, 0.3, 4, TrainFreight)
	// Run long enough for the whole train to be on the line.
	for i := 0; i < 800; i++ {
		tr.Update(0.05, 1.0, g)
	}
	if tr.Carriages[0].X != tr.X || tr.Carriages[0].Y != tr.Y {
		t.Fatal("locomotive must mirror the lead tile")
	}
	if tr.Carriages[0].Progress != clampProgress(tr.Progress) {
		t.Fatal("locomotive must mirror the lead progress")
	}
	// Carriages trail in order: absolute position (tile + progress) must be
	// non-increasing from the locomotive back.
	posOf := func(c TrainCarriage) float64 { return float64(c.Y) + c.Progress }
	for j := 1; j < len(tr.Carriages); j++ {
		if posOf(tr.Carriages[j]) > posOf(tr.Carriages[j-1]) {
			t.Fatalf("carriage %d is ahead of carriage %d", j, j-1)
		}
	}
}

func TestTrain_FastTickStopsAtStation(t *testing.T) {
	g := NewGrid(GridSize)
	for y := 0; y < 12; y++ {
		if y == 4 || y == 5 {
			continue
		}
		g.Place(3, y, BuildingRail)
	}
	g.Place(2, 4, BuildingRailStation)

	// One tick worth 4.5 tiles of travel crosses the station boundary mid
	// catch-up. The train must halt there, not bank the rest of the frame
	// and end up dwelling past the platform.
	tr := testTrain(3, 2, West, 1.0, 2, TrainPassenger)
	if !tr.Update(4.5, 1.0, g) {
		t.Fatal("train should survive the long tick")
	}
	if tr.X != 3 || tr.Y != 4 {
		t.Fatalf("train should stop on the station tile, at (%d,%d)", tr.X, tr.Y)
	}
	if !tr.AtStation || tr.Dwell != stationDwellTime {
		t.Fatalf("expected a fresh dwell, got AtStation=%v Dwell=%f", tr.AtStation, tr.Dwell)
	}
	if tr.Progress >= 1 {
		t.Fatalf("leftover catch-up progress %f must not survive the stop", tr.Progress)
	}
}

func TestTrain_HandBuiltLiteralIsSafe(t *testing.T) {
	g := lineGrid(12)
	tr := &Train{
		Type:      TrainFreight,
		Y:         2,
		Heading:   West,
		Speed:     0.3,
		MaxAge:    100,
		Carriages: make([]TrainCarriage, 3),
	}
	// No seeded path history: the first update must still resolve every
	// carriage onto the lead tile instead of panicking.
	if !tr.Update(0.05, 1.0, g) {
		t.Fatal("train should stay alive")
	}
	for i, c := range tr.Carriages {
		if c.X != tr.X || c.Y != tr.Y {
			t.Fatalf("carriage %d at (%d,%d), want the lead tile (%d,%d)", i, c.X, c.Y, tr.X, tr.Y)
		}
	}
}

func TestTrain_MultipleTileCrossingsInOneTick(t *testing.T) {
	g := lineGrid(15)
	tr := testTrain(0, 0, West, 1.0, 2, TrainFreight)
	// One huge tick worth 3.4 tiles of travel.
	if !tr.Update(3.4, 1.0, g) {
		t.Fatal("train should survive a long tick")
	}
	if tr.Y != 3 {
		t.Fatalf("expected the train to cross 3 tiles, at y=%d", tr.Y)
	}
	if tr.Progress < 0.39 || tr.Progress > 0.41 {
		t.Fatalf("expected ~0.4 residual progress, got %f", tr.Progress)
	}
}
