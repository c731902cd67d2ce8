package game

import "math/rand"

// cityConfig holds tuneable parameters for starter-town generation.
type cityConfig struct {
	AvenueCount  int     // straight roads spanning the map
	LoopInset    int     // distance of the rail loop from the map edge
	BranchCount  int     // dead-end branch lines off the loop
	StationCount int     // 2x2 stations placed beside the loop
	BuildingFill float64 // chance a road-adjacent cell gets a building
	ParkPatches  int
	WaterPatches int
}

var defaultCityConfig = cityConfig{
	AvenueCount:  3,
	LoopInset:    9,
	BranchCount:  2,
	StationCount: 3,
	BuildingFill: 0.45,
	ParkPatches:  4,
	WaterPatches: 2,
}

// GenerateCity stamps a procedural starter town into the grid: avenues, a
// rail loop with branch lines and stations, and buildings along the roads.
// Rail crossing an existing road becomes an overlay tile (level crossing).
func GenerateCity(g *Grid, rng *rand.Rand, cfg cityConfig) {
	genAvenues(g, rng, cfg.AvenueCount)
	genRailLoop(g, cfg.LoopInset)
	genBranches(g, rng, cfg.LoopInset, cfg.BranchCount)
	genStations(g, rng, cfg.StationCount)
	genBuildings(g, rng, cfg.BuildingFill)
	genPatches(g, rng, BuildingPark, cfg.ParkPatches)
	genPatches(g, rng, BuildingWater, cfg.WaterPatches)
}

// genAvenues lays straight roads across the full map, alternating axes,
// spread with jitter like the road generator this adapts.
func genAvenues(g *Grid, rng *rand.Rand, count int) {
	for i := 0; i < count; i++ {
		margin := g.Size / 6
		pos := margin + rng.Intn(max(1, g.Size-2*margin))
		if i%2 == 0 {
			for y := 0; y < g.Size; y++ {
				g.Place(pos, y, BuildingRoad)
			}
		} else {
			for x := 0; x < g.Size; x++ {
				g.Place(x, pos, BuildingRoad)
			}
		}
	}
}

// genRailLoop stamps a closed rectangular main line inset from the edges.
func genRailLoop(g *Grid, inset int) {
	lo, hi := inset, g.Size-1-inset
	for i := lo; i <= hi; i++ {
		g.Place(lo, i, BuildingRail)
		g.Place(hi, i, BuildingRail)
		g.Place(i, lo, BuildingRail)
		g.Place(i, hi, BuildingRail)
	}
}

// genBranches grows dead-end branch lines outward from the loop.
func genBranches(g *Grid, rng *rand.Rand, inset int, count int) {
	lo, hi := inset, g.Size-1-inset
	for i := 0; i < count; i++ {
		along := lo + 2 + rng.Intn(max(1, hi-lo-4))
		length := 3 + rng.Intn(inset-2)
		switch i % 4 {
		case 0:
			for k := 1; k <= length; k++ {
				g.Place(lo-k, along, BuildingRail)
			}
		case 1:
			for k := 1; k <= length; k++ {
				g.Place(hi+k, along, BuildingRail)
			}
		case 2:
			for k := 1; k <= length; k++ {
				g.Place(along, lo-k, BuildingRail)
			}
		default:
			for k := 1; k <= length; k++ {
				g.Place(along, hi+k, BuildingRail)
			}
		}
	}
}

// genStations places 2x2 stations with their footprint beside the track.
// Candidates are scanned outward from random loop-adjacent cells; a station
// only lands where the full footprint is clear and touches rail.
func genStations(g *Grid, rng *rand.Rand, count int) {
	placed := 0
	for attempt := 0; attempt < 200 && placed < count; attempt++ {
		x := rng.Intn(g.Size)
		y := rng.Intn(g.Size)
		if !g.CanPlaceStation(x, y) {
			continue
		}
		if !stationTouchesRail(g, x, y) {
			continue
		}
		// CanPlaceStation sees a neighbouring station's empty footprint
		// cells as free ground, so rule out overlap explicitly.
		overlaps := false
		for dx := 0; dx <= 1 && !overlaps; dx++ {
			for dy := 0; dy <= 1; dy++ {
				if g.IsRailStation(x+dx, y+dy) {
					overlaps = true
					break
				}
			}
		}
		if overlaps {
			continue
		}
		g.Place(x, y, BuildingRailStation)
		placed++
	}
}

// stationTouchesRail reports whether any cell of the 2x2 footprint with
// origin (x, y) has an orthogonally adjacent rail tile.
func stationTouchesRail(g *Grid, x, y int) bool {
	for dx := 0; dx <= 1; dx++ {
		for dy := 0; dy <= 1; dy++ {
			for d := North; d < directionCount; d++ {
				nx, ny := d.Step(x+dx, y+dy)
				if g.IsRail(nx, ny) {
					return true
				}
			}
		}
	}
	return false
}

// genBuildings fills cells next to roads with houses and shops.
func genBuildings(g *Grid, rng *rand.Rand, fill float64) {
	for x := 0; x < g.Size; x++ {
		for y := 0; y < g.Size; y++ {
			if g.BuildingAt(x, y) != BuildingEmpty {
				continue
			}
			if g.IsRailStation(x, y) {
				continue
			}
			nearRoad := false
			for d := North; d < directionCount; d++ {
				nx, ny := d.Step(x, y)
				if g.BuildingAt(nx, ny) == BuildingRoad {
					nearRoad = true
					break
				}
			}
			if !nearRoad || rng.Float64() >= fill {
				continue
			}
			b := BuildingHouse
			switch rng.Intn(5) {
			case 0:
				b = BuildingShop
			case 1:
				b = BuildingFactory
			}
			g.Place(x, y, b)
			if t := g.At(x, y); t != nil {
				t.Variant = uint8(rng.Intn(13))
			}
		}
	}
}

// genPatches scatters small rectangular park or water patches on open land.
func genPatches(g *Grid, rng *rand.Rand, b BuildingType, count int) {
	for i := 0; i < count; i++ {
		w := 2 + rng.Intn(3)
		h := 2 + rng.Intn(3)
		x := rng.Intn(max(1, g.Size-h))
		y := rng.Intn(max(1, g.Size-w))
		for dx := 0; dx < h; dx++ {
			for dy := 0; dy < w; dy++ {
				if g.BuildingAt(x+dx, y+dy) == BuildingEmpty && !g.IsRailStation(x+dx, y+dy) {
					g.Place(x+dx, y+dy, b)
				}
			}
		}
	}
}

func intAbs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
