package game

// GridSize is the fixed edge length of the square city grid, in tiles.
const GridSize = 48

// BuildingType identifies what occupies a tile.
type BuildingType uint8

const (
	BuildingEmpty       BuildingType = iota // bare ground
	BuildingRoad                            // road surface (may carry a rail overlay)
	BuildingRail                            // dedicated track bed
	BuildingRailStation                     // station origin; footprint spans 2x2 from here
	BuildingHouse                           // residential
	BuildingShop                            // commercial
	BuildingFactory                         // industrial
	BuildingPark                            // green space
	BuildingWater                           // pond / canal
	buildingTypeCount                       // sentinel
)

// buildingBaseColour returns the base RGB colour for a building type.
func buildingBaseColour(b BuildingType) (r, g, bl uint8) {
	switch b {
	case BuildingEmpty:
		return 66, 88, 54
	case BuildingRoad:
		return 52, 50, 46
	case BuildingRail:
		return 70, 84, 56
	case BuildingRailStation:
		return 96, 72, 52
	case BuildingHouse:
		return 120, 96, 72
	case BuildingShop:
		return 92, 100, 124
	case BuildingFactory:
		return 104, 98, 90
	case BuildingPark:
		return 48, 92, 48
	case BuildingWater:
		return 40, 62, 96
	default:
		return 66, 88, 54
	}
}

// Tile represents one cell of the city.
type Tile struct {
	Building       BuildingType
	HasRailOverlay bool  // only meaningful when Building == BuildingRoad
	Variant        uint8 // cosmetic shade offset for houses/shops
}

// Grid is the authoritative city layout. Tiles are addressed as (x, y) with
// the simulation's axis convention: x-1 is north, y-1 is east, x+1 is south,
// y+1 is west. Storage is row-major on x.
type Grid struct {
	Size  int
	Tiles []Tile // index = x*Size + y
}

// NewGrid creates an empty grid of the given edge length.
func NewGrid(size int) *Grid {
	return &Grid{Size: size, Tiles: make([]Tile, size*size)}
}

// InBounds returns true if (x, y) is within the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Size && y >= 0 && y < g.Size
}

// At returns a pointer to the tile at (x, y), or nil if out of bounds.
func (g *Grid) At(x, y int) *Tile {
	if !g.InBounds(x, y) {
		return nil
	}
	return &g.Tiles[x*g.Size+y]
}

// BuildingAt returns the building type at (x, y); BuildingEmpty out of bounds.
func (g *Grid) BuildingAt(x, y int) BuildingType {
	if !g.InBounds(x, y) {
		return BuildingEmpty
	}
	return g.Tiles[x*g.Size+y].Building
}

// Place sets the building type at (x, y). Placing rail on an existing road
// does not replace the road: it sets the rail overlay flag instead (a level
// crossing). Placing anything else clears a stale overlay flag.
func (g *Grid) Place(x, y int, b BuildingType) {
	t := g.At(x, y)
	if t == nil {
		return
	}
	if b == BuildingRail && t.Building == BuildingRoad {
		t.HasRailOverlay = true
		return
	}
	t.Building = b
	if b != BuildingRoad {
		t.HasRailOverlay = false
	}
}

// Bulldoze clears the tile at (x, y). A road with a rail overlay loses the
// overlay first and the road on a second pass. Bulldozing any tile of a
// station footprint removes the station origin.
func (g *Grid) Bulldoze(x, y int) {
	t := g.At(x, y)
	if t == nil {
		return
	}
	if t.Building == BuildingRoad && t.HasRailOverlay {
		t.HasRailOverlay = false
		return
	}
	if ox, oy, ok := g.stationOrigin(x, y); ok {
		if o := g.At(ox, oy); o != nil {
			o.Building = BuildingEmpty
		}
		return
	}
	t.Building = BuildingEmpty
	t.HasRailOverlay = false
}

// stationOrigin resolves the station footprint covering (x, y), if any.
// A station origin covers (ox..ox+1, oy..oy+1); only the origin tile holds
// BuildingRailStation, the other three stay empty.
func (g *Grid) stationOrigin(x, y int) (int, int, bool) {
	if g.BuildingAt(x, y) == BuildingRailStation {
		return x, y, true
	}
	if g.BuildingAt(x, y) != BuildingEmpty {
		return 0, 0, false
	}
	for _, d := range [3][2]int{{-1, 0}, {0, -1}, {-1, -1}} {
		if g.BuildingAt(x+d[0], y+d[1]) == BuildingRailStation {
			return x + d[0], y + d[1], true
		}
	}
	return 0, 0, false
}

// CanPlaceStation reports whether a 2x2 station footprint fits with its
// origin at (x, y): all four cells in bounds and empty.
func (g *Grid) CanPlaceStation(x, y int) bool {
	for dx := 0; dx <= 1; dx++ {
		for dy := 0; dy <= 1; dy++ {
			if !g.InBounds(x+dx, y+dy) || g.BuildingAt(x+dx, y+dy) != BuildingEmpty {
				return false
			}
		}
	}
	return true
}

// CountRailTiles returns the number of tiles carrying track (dedicated rail
// plus road tiles with a rail overlay).
func (g *Grid) CountRailTiles() int {
	n := 0
	for x := 0; x < g.Size; x++ {
		for y := 0; y < g.Size; y++ {
			if g.IsRail(x, y) {
				n++
			}
		}
	}
	return n
}

// StationOrigins returns the coordinates of every station origin tile.
func (g *Grid) StationOrigins() [][2]int {
	var out [][2]int
	for x := 0; x < g.Size; x++ {
		for y := 0; y < g.Size; y++ {
			if g.Tiles[x*g.Size+y].Building == BuildingRailStation {
				out = append(out, [2]int{x, y})
			}
		}
	}
	return out
}
