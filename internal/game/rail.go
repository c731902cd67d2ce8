package game

// Direction is a cardinal heading on the grid. The axis convention is fixed
// by the isometric projection and must not be "corrected": north is x-1,
// east is y-1, south is x+1, west is y+1.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
	directionCount // sentinel
)

// directionDeltas holds the (dx, dy) step for each direction, indexed in the
// canonical N, E, S, W order used everywhere ties must break deterministically.
var directionDeltas = [directionCount][2]int{
	North: {-1, 0},
	East:  {0, -1},
	South: {1, 0},
	West:  {0, 1},
}

// Step returns the neighbor coordinate one tile away in direction d.
func (d Direction) Step(x, y int) (int, int) {
	return x + directionDeltas[d][0], y + directionDeltas[d][1]
}

// Opposite returns the reverse heading.
func (d Direction) Opposite() Direction {
	return (d + 2) % directionCount
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "?"
	}
}

// RailConnection records which of a tile's four neighbors carry track.
// It is always derived from the live grid, never stored.
type RailConnection struct {
	North bool
	East  bool
	South bool
	West  bool
}

// Has returns whether direction d is connected.
func (c RailConnection) Has(d Direction) bool {
	switch d {
	case North:
		return c.North
	case East:
		return c.East
	case South:
		return c.South
	case West:
		return c.West
	default:
		return false
	}
}

// Count returns the number of connected directions.
func (c RailConnection) Count() int {
	n := 0
	for d := North; d < directionCount; d++ {
		if c.Has(d) {
			n++
		}
	}
	return n
}

// Directions returns the connected directions in canonical N, E, S, W order.
func (c RailConnection) Directions() []Direction {
	out := make([]Direction, 0, 4)
	for d := North; d < directionCount; d++ {
		if c.Has(d) {
			out = append(out, d)
		}
	}
	return out
}

// TrackType is the shape a track tile takes given its neighbor connections.
// There are exactly 16 shapes, one per connection combination.
type TrackType uint8

const (
	TrackSingle     TrackType = iota // no connections: isolated stub
	TrackStraightNS                  // north-south through line
	TrackStraightEW                  // east-west through line
	TrackCurveNE                     // curve joining north and east
	TrackCurveSE                     // curve joining south and east
	TrackCurveSW                     // curve joining south and west
	TrackCurveNW                     // curve joining north and west
	TrackTeeN                        // T junction, north leg missing
	TrackTeeE                        // T junction, east leg missing
	TrackTeeS                        // T junction, south leg missing
	TrackTeeW                        // T junction, west leg missing
	TrackCross                       // four-way crossing
	TrackEndN                        // dead end facing north (connected south)
	TrackEndE                        // dead end facing east (connected west)
	TrackEndS                        // dead end facing south (connected north)
	TrackEndW                        // dead end facing west (connected east)
	trackTypeCount                   // sentinel
)

func (t TrackType) String() string {
	names := [trackTypeCount]string{
		"single", "straight-ns", "straight-ew",
		"curve-ne", "curve-se", "curve-sw", "curve-nw",
		"tee-n", "tee-e", "tee-s", "tee-w",
		"cross",
		"end-n", "end-e", "end-s", "end-w",
	}
	if int(t) >= len(names) {
		return "?"
	}
	return names[t]
}

// TrackType classifies the connection pattern into one of the 16 shapes.
// A dead end faces away from its only neighbor.
func (c RailConnection) TrackType() TrackType {
	switch c.Count() {
	case 4:
		return TrackCross
	case 3:
		switch {
		case !c.North:
			return TrackTeeN
		case !c.East:
			return TrackTeeE
		case !c.South:
			return TrackTeeS
		default:
			return TrackTeeW
		}
	case 2:
		switch {
		case c.North && c.South:
			return TrackStraightNS
		case c.East && c.West:
			return TrackStraightEW
		case c.North && c.East:
			return TrackCurveNE
		case c.South && c.East:
			return TrackCurveSE
		case c.South && c.West:
			return TrackCurveSW
		default:
			return TrackCurveNW
		}
	case 1:
		switch {
		case c.South:
			return TrackEndN
		case c.West:
			return TrackEndE
		case c.North:
			return TrackEndS
		default:
			return TrackEndW
		}
	default:
		return TrackSingle
	}
}

// IsRail returns true if (x, y) carries track: a rail tile, or a road tile
// with the rail overlay. Out of bounds is never rail.
func (g *Grid) IsRail(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	t := g.Tiles[x*g.Size+y]
	return t.Building == BuildingRail || (t.Building == BuildingRoad && t.HasRailOverlay)
}

// IsRailStation returns true if (x, y) is a station origin tile, or an empty
// tile inside a 2x2 station footprint (origin at its north, east, or
// north-east neighbor under the grid's axis convention).
func (g *Grid) IsRailStation(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	b := g.Tiles[x*g.Size+y].Building
	if b == BuildingRailStation {
		return true
	}
	if b != BuildingEmpty {
		return false
	}
	return g.BuildingAt(x-1, y) == BuildingRailStation ||
		g.BuildingAt(x, y-1) == BuildingRailStation ||
		g.BuildingAt(x-1, y-1) == BuildingRailStation
}

// isStationFootprint is the footprint-only station test: true for the empty
// cells of a 2x2 station, false for the origin tile itself.
func (g *Grid) isStationFootprint(x, y int) bool {
	return g.InBounds(x, y) &&
		g.Tiles[x*g.Size+y].Building == BuildingEmpty &&
		g.IsRailStation(x, y)
}

// AdjacentRail reports which neighbors of (x, y) carry track for traffic and
// classification purposes. Station footprints count via their empty cells
// only; the origin tile itself does not (see AdjacentRailForOverlay).
func (g *Grid) AdjacentRail(x, y int) RailConnection {
	occ := func(nx, ny int) bool {
		return g.IsRail(nx, ny) || g.isStationFootprint(nx, ny)
	}
	return RailConnection{
		North: occ(x-1, y),
		East:  occ(x, y-1),
		South: occ(x+1, y),
		West:  occ(x, y+1),
	}
}

// AdjacentRailForOverlay is the variant used when rendering rails inset into
// road tiles. Unlike AdjacentRail it also counts station origin tiles as
// occupied, so overlay rails visually connect into the station building.
func (g *Grid) AdjacentRailForOverlay(x, y int) RailConnection {
	occ := func(nx, ny int) bool {
		return g.IsRail(nx, ny) || g.IsRailStation(nx, ny)
	}
	return RailConnection{
		North: occ(x-1, y),
		East:  occ(x, y-1),
		South: occ(x+1, y),
		West:  occ(x, y+1),
	}
}

// isTrafficTile reports whether a train may occupy (x, y): track, or an
// empty station footprint cell. Matches the occupancy AdjacentRail sees, so
// heading selection and movement agree.
func (g *Grid) isTrafficTile(x, y int) bool {
	return g.IsRail(x, y) || g.isStationFootprint(x, y)
}
