package game

import (
	"image/color"
	"math/rand"
)

// TrainType distinguishes the two service kinds.
type TrainType uint8

const (
	TrainPassenger TrainType = iota
	TrainFreight
)

func (t TrainType) String() string {
	if t == TrainFreight {
		return "freight"
	}
	return "passenger"
}

// CarriageType is the closed set of rolling stock kinds. Drawing dispatches
// on it with a switch; carriages themselves stay plain data.
type CarriageType uint8

const (
	CarriageLocomotive CarriageType = iota
	CarriagePassenger
	CarriageFreightBox
	CarriageFreightTank
	CarriageFreightFlat
	CarriageCaboose
)

// Carriage spacing and history bounds. History must cover the furthest
// trailing carriage: 10 carriages x 0.28 spacing is under 3 tiles, so 80
// entries leaves a wide margin for slow frames.
const (
	carriageSpacing    = 0.28
	pathHistoryMax     = 80
	stationDwellTime   = 2.0 // seconds a passenger train waits at a station
	minRailForSpawn    = 10  // below this the network is too small for trains
	maxTrains          = 8
	railTilesPerTrain  = 25 // cap scales down on small networks
	stationSpawnChance = 0.7
)

// TrainCarriage is one unit of a train. Everything here is recomputed from
// the train's lead state and path history each tick.
type TrainCarriage struct {
	Type     CarriageType
	Colour   color.RGBA
	X, Y     int
	Progress float64
	Heading  Direction
}

// Train is one multi-carriage agent on the rail network.
type Train struct {
	ID        int
	Type      TrainType
	Carriages []TrainCarriage // index 0 is the locomotive

	X, Y     int     // lead tile
	Heading  Direction
	Progress float64 // [0,1) along the current tile in the heading direction
	Speed    float64 // tiles per second

	Age    float64
	MaxAge float64

	AtStation bool
	Dwell     float64

	history []Point // recently visited tiles, oldest first, last = lead tile
}

var locomotiveColours = []color.RGBA{
	{R: 178, G: 52, B: 46, A: 255},
	{R: 46, G: 94, B: 160, A: 255},
	{R: 44, G: 110, B: 62, A: 255},
	{R: 150, G: 110, B: 36, A: 255},
	{R: 80, G: 70, B: 120, A: 255},
}

var freightColours = []color.RGBA{
	{R: 120, G: 86, B: 56, A: 255},
	{R: 90, G: 96, B: 104, A: 255},
	{R: 128, G: 64, B: 48, A: 255},
	{R: 74, G: 98, B: 80, A: 255},
	{R: 140, G: 122, B: 70, A: 255},
	{R: 66, G: 80, B: 110, A: 255},
}

// passengerBodyColour is shared by all passenger body cars of one train.
var passengerBodyColour = color.RGBA{R: 186, G: 170, B: 120, A: 255}

// freightCabooseColour is the fixed tail colour of freight trains.
var freightCabooseColour = color.RGBA{R: 110, G: 34, B: 30, A: 255}

// SpawnTrain tries to place a new train on the network and returns it, or
// nil when no valid spawn exists. The caller owns the live-train cap; this
// function only refuses when the network itself offers no spot.
func SpawnTrain(g *Grid, rng *rand.Rand, id int) *Train {
	if g.CountRailTiles() < minRailForSpawn {
		return nil
	}

	var x, y int
	var heading Direction
	var found bool

	stations := g.StationOrigins()
	if len(stations) > 0 && rng.Float64() < stationSpawnChance {
		// Spawn next to a station, heading away from it. No fallback: if the
		// chosen station has no adjacent track the spawn attempt fails.
		x, y, heading, found = stationSpawnPoint(g, rng, stations)
		if !found {
			return nil
		}
	} else {
		x, y, found = randomSpawnTile(g, rng)
		if !found {
			return nil
		}
		dirs := validHeadings(g, x, y)
		if len(dirs) == 0 {
			return nil
		}
		heading = dirs[rng.Intn(len(dirs))]
	}

	t := &Train{
		ID:      id,
		X:       x,
		Y:       y,
		Heading: heading,
		history: []Point{{x, y}},
	}

	loco := locomotiveColours[rng.Intn(len(locomotiveColours))]
	var count int
	if rng.Intn(2) == 0 {
		t.Type = TrainPassenger
		count = 5 + rng.Intn(4)
		t.Speed = 0.25 + rng.Float64()*0.10
		t.MaxAge = 60 + rng.Float64()*30
	} else {
		t.Type = TrainFreight
		count = 6 + rng.Intn(5)
		t.Speed = 0.18 + rng.Float64()*0.08
		t.MaxAge = 60 + rng.Float64()*40
	}

	t.Carriages = make([]TrainCarriage, count)
	for i := range t.Carriages {
		c := &t.Carriages[i]
		switch {
		case i == 0:
			c.Type = CarriageLocomotive
			c.Colour = loco
		case i == count-1:
			c.Type = CarriageCaboose
			if t.Type == TrainPassenger {
				c.Colour = loco
			} else {
				c.Colour = freightCabooseColour
			}
		case t.Type == TrainPassenger:
			c.Type = CarriagePassenger
			c.Colour = passengerBodyColour
		default:
			c.Type = CarriageFreightBox + CarriageType(rng.Intn(3))
			c.Colour = freightColours[rng.Intn(len(freightColours))]
		}
		c.X, c.Y = x, y
		c.Heading = heading
		// Negative progress marks carriages still "off the map edge"; the
		// follow step resolves it against path history as the train moves.
		c.Progress = -float64(i) * carriageSpacing
	}
	return t
}

// stationSpawnOffsets lists candidate cells around a station origin: the 4
// orthogonal neighbors first, then 8 further cells that account for the 2x2
// footprint extending one tile south and west of the origin.
var stationSpawnOffsets = [12][2]int{
	{-1, 0}, {0, -1}, {1, 0}, {0, 1},
	{-1, -1}, {-1, 1}, {1, -1}, {1, 1},
	{2, 0}, {0, 2}, {2, 1}, {1, 2},
}

func stationSpawnPoint(g *Grid, rng *rand.Rand, stations [][2]int) (int, int, Direction, bool) {
	s := stations[rng.Intn(len(stations))]
	for _, off := range stationSpawnOffsets {
		x, y := s[0]+off[0], s[1]+off[1]
		if !g.IsRail(x, y) {
			continue
		}
		return x, y, awayFromStation(g, x, y, off), true
	}
	return 0, 0, North, false
}

// awayFromStation picks a spawn heading that leads out of the station
// neighborhood: a valid heading on the dominant axis of the offset if one
// exists, otherwise any valid heading.
func awayFromStation(g *Grid, x, y int, off [2]int) Direction {
	var want Direction
	if intAbs(off[0]) >= intAbs(off[1]) {
		if off[0] > 0 {
			want = South
		} else {
			want = North
		}
	} else {
		if off[1] > 0 {
			want = West
		} else {
			want = East
		}
	}
	dirs := validHeadings(g, x, y)
	for _, d := range dirs {
		if d == want {
			return d
		}
	}
	if len(dirs) > 0 {
		return dirs[0]
	}
	return want
}

// randomSpawnTile picks a uniformly random rail tile, preferring tiles with
// at least two connections so trains do not start on dead ends.
func randomSpawnTile(g *Grid, rng *rand.Rand) (int, int, bool) {
	var connected, all [][2]int
	for x := 0; x < g.Size; x++ {
		for y := 0; y < g.Size; y++ {
			if !g.IsRail(x, y) {
				continue
			}
			all = append(all, [2]int{x, y})
			if g.AdjacentRail(x, y).Count() >= 2 {
				connected = append(connected, [2]int{x, y})
			}
		}
	}
	pool := connected
	if len(pool) == 0 {
		pool = all
	}
	if len(pool) == 0 {
		return 0, 0, false
	}
	p := pool[rng.Intn(len(pool))]
	return p[0], p[1], true
}

// validHeadings returns the directions a train at (x, y) could move in,
// in canonical order.
func validHeadings(g *Grid, x, y int) []Direction {
	return g.AdjacentRail(x, y).Directions()
}

// TrainCap returns the live-train limit for a network with railTiles tiles
// of track: one train per 25 rail tiles, at most 8, at least 1 once the
// network meets the spawn minimum.
func TrainCap(railTiles int) int {
	if railTiles < minRailForSpawn {
		return 0
	}
	limit := railTiles / railTilesPerTrain
	if limit < 1 {
		limit = 1
	}
	if limit > maxTrains {
		limit = maxTrains
	}
	return limit
}
