package game

import "math"

// Track geometry ratios, all relative to the tile edge length. The same
// ratios drive ballast, ties, rails and carriage placement so every layer
// stays aligned at any zoom.
const (
	trackGaugeRatio   = 0.13 // distance between the two rails of one track
	trackSepRatio     = 0.34 // distance between the two parallel tracks
	ballastWidthRatio = 0.62 // full width of the gravel bed
	tieLengthRatio    = 0.24 // tie length (per track)
	tieSpacingRatio   = 0.21 // distance between tie centres along the track
	tieWidthRatio     = 0.05
	railWidthRatio    = 0.035
	curveSamples      = 8 // straight segments per sampled quadratic
)

// Segment is one stroked line primitive in pixel coordinates relative to
// the tile's top-left corner.
type Segment struct {
	X0, Y0, X1, Y1 float64
	W              float64 // stroke width
}

// TrackLayers is the draw-call contract for one track tile: three ordered
// layers, bottom to top. Purely derived from the TrackType and tile size;
// the rasterizer never needs the raw connections.
type TrackLayers struct {
	Ballast []Segment
	Ties    []Segment
	Rails   []Segment
}

// connectionsOf inverts classification: the neighbor pattern a shape stands
// for. Single stubs render as a short north-south piece.
func connectionsOf(t TrackType) RailConnection {
	switch t {
	case TrackStraightNS:
		return RailConnection{North: true, South: true}
	case TrackStraightEW:
		return RailConnection{East: true, West: true}
	case TrackCurveNE:
		return RailConnection{North: true, East: true}
	case TrackCurveSE:
		return RailConnection{South: true, East: true}
	case TrackCurveSW:
		return RailConnection{South: true, West: true}
	case TrackCurveNW:
		return RailConnection{North: true, West: true}
	case TrackTeeN:
		return RailConnection{East: true, South: true, West: true}
	case TrackTeeE:
		return RailConnection{North: true, South: true, West: true}
	case TrackTeeS:
		return RailConnection{North: true, East: true, West: true}
	case TrackTeeW:
		return RailConnection{North: true, East: true, South: true}
	case TrackCross:
		return RailConnection{North: true, East: true, South: true, West: true}
	case TrackEndN:
		return RailConnection{South: true}
	case TrackEndE:
		return RailConnection{West: true}
	case TrackEndS:
		return RailConnection{North: true}
	case TrackEndW:
		return RailConnection{East: true}
	default:
		return RailConnection{}
	}
}

// edgeMidpoint returns the unit-tile coordinate of the midpoint of the edge
// shared with the neighbor in direction d. Horizontal screen axis follows
// the grid's y axis (east at 0), vertical follows x (north at 0).
func edgeMidpoint(d Direction) (u, v float64) {
	switch d {
	case North:
		return 0.5, 0
	case East:
		return 0, 0.5
	case South:
		return 0.5, 1
	default:
		return 1, 0.5
	}
}

// centerlines returns the track centreline polylines for a shape, in
// unit-tile coordinates. Through-shapes get edge-to-edge lines, curves a
// sampled quadratic with its control point at the tile centre, junction
// shapes one arm per connection, and stubs/ends a short straight piece.
func centerlines(t TrackType) [][][2]float64 {
	conn := connectionsOf(t)
	switch t {
	case TrackSingle:
		return [][][2]float64{{{0.5, 0.3}, {0.5, 0.7}}}
	case TrackStraightNS, TrackStraightEW:
		a := conn.Directions()
		u0, v0 := edgeMidpoint(a[0])
		u1, v1 := edgeMidpoint(a[1])
		return [][][2]float64{{{u0, v0}, {u1, v1}}}
	case TrackCurveNE, TrackCurveSE, TrackCurveSW, TrackCurveNW:
		a := conn.Directions()
		u0, v0 := edgeMidpoint(a[0])
		u1, v1 := edgeMidpoint(a[1])
		line := make([][2]float64, 0, curveSamples+1)
		for i := 0; i <= curveSamples; i++ {
			s := float64(i) / curveSamples
			u, v := quadPoint(u0, v0, 0.5, 0.5, u1, v1, s)
			line = append(line, [2]float64{u, v})
		}
		return [][][2]float64{line}
	default:
		// Tees, crossings and dead ends: one straight arm per connection,
		// from the tile centre to the edge.
		var out [][][2]float64
		for _, d := range conn.Directions() {
			u, v := edgeMidpoint(d)
			out = append(out, [][2]float64{{0.5, 0.5}, {u, v}})
		}
		return out
	}
}

// quadPoint evaluates the quadratic Bezier (x0,y0)-(cx,cy)-(x1,y1) at s.
func quadPoint(x0, y0, cx, cy, x1, y1, s float64) (float64, float64) {
	a := (1 - s) * (1 - s)
	b := 2 * s * (1 - s)
	c := s * s
	return a*x0 + b*cx + c*x1, a*y0 + b*cy + c*y1
}

// quadTangent returns the (unnormalised) derivative of the same curve at s.
func quadTangent(x0, y0, cx, cy, x1, y1, s float64) (float64, float64) {
	return 2*(1-s)*(cx-x0) + 2*s*(x1-cx), 2*(1-s)*(cy-y0) + 2*s*(y1-cy)
}

// TrackGeometry produces the three visual layers for a track shape at tile
// size ts. Ballast hugs the centreline wide enough for both tracks, ties sit
// across each track at fixed spacing, and each track contributes two rails
// offset by half the gauge.
func TrackGeometry(t TrackType, ts float64) TrackLayers {
	var out TrackLayers
	sep := trackSepRatio * ts / 2
	gauge := trackGaugeRatio * ts / 2

	for _, line := range centerlines(t) {
		// Ballast: thick strokes straight along the centreline.
		for i := 0; i+1 < len(line); i++ {
			out.Ballast = append(out.Ballast, Segment{
				X0: line[i][0] * ts, Y0: line[i][1] * ts,
				X1: line[i+1][0] * ts, Y1: line[i+1][1] * ts,
				W: ballastWidthRatio * ts,
			})
		}

		for _, side := range [2]float64{-sep, sep} {
			track := offsetPolyline(line, side/ts)
			// Ties across this track.
			out.Ties = append(out.Ties, tiesAlong(track, ts)...)
			// Two rails per track.
			for _, r := range [2]float64{-gauge, gauge} {
				rail := offsetPolyline(track, r/ts)
				for i := 0; i+1 < len(rail); i++ {
					out.Rails = append(out.Rails, Segment{
						X0: rail[i][0] * ts, Y0: rail[i][1] * ts,
						X1: rail[i+1][0] * ts, Y1: rail[i+1][1] * ts,
						W: railWidthRatio * ts,
					})
				}
			}
		}
	}
	return out
}

// RailsOnlyGeometry is the lighter-weight variant for rails inset into road
// tiles: no ballast bed, no ties.
func RailsOnlyGeometry(t TrackType, ts float64) []Segment {
	return TrackGeometry(t, ts).Rails
}

// offsetPolyline shifts a polyline sideways by off (unit-tile units),
// perpendicular to the local tangent at each point.
func offsetPolyline(line [][2]float64, off float64) [][2]float64 {
	out := make([][2]float64, len(line))
	for i, p := range line {
		var tx, ty float64
		switch {
		case i == 0:
			tx, ty = line[1][0]-p[0], line[1][1]-p[1]
		case i == len(line)-1:
			tx, ty = p[0]-line[i-1][0], p[1]-line[i-1][1]
		default:
			tx, ty = line[i+1][0]-line[i-1][0], line[i+1][1]-line[i-1][1]
		}
		l := math.Hypot(tx, ty)
		if l == 0 {
			out[i] = p
			continue
		}
		// Perpendicular: rotate the tangent a quarter turn.
		out[i] = [2]float64{p[0] - ty/l*off, p[1] + tx/l*off}
	}
	return out
}

// tiesAlong emits tie segments across a track polyline at fixed arc-length
// spacing.
func tiesAlong(line [][2]float64, ts float64) []Segment {
	var out []Segment
	spacing := tieSpacingRatio
	half := tieLengthRatio / 2
	carry := spacing / 2
	for i := 0; i+1 < len(line); i++ {
		x0, y0 := line[i][0], line[i][1]
		x1, y1 := line[i+1][0], line[i+1][1]
		segLen := math.Hypot(x1-x0, y1-y0)
		if segLen == 0 {
			continue
		}
		tx, ty := (x1-x0)/segLen, (y1-y0)/segLen
		for carry <= segLen {
			cx, cy := x0+tx*carry, y0+ty*carry
			out = append(out, Segment{
				X0: (cx + ty*half) * ts, Y0: (cy - tx*half) * ts,
				X1: (cx - ty*half) * ts, Y1: (cy + tx*half) * ts,
				W: tieWidthRatio * ts,
			})
			carry += spacing
		}
		carry -= segLen
	}
	return out
}

// CarriagePose is a carriage's resolved world-space position and rotation.
type CarriagePose struct {
	PX, PY float64 // pixels
	Angle  float64 // radians, travel direction
}

// carriageUnitPose interpolates a carriage's position inside its tile.
// Straight and junction tiles interpolate linearly from the entry edge to
// the exit edge; curves interpolate position and heading angle along the
// quadratic, which keeps carriages visually on the rails through a turn.
func carriageUnitPose(t TrackType, heading Direction, progress float64) (u, v, angle float64) {
	xu, xv := edgeMidpoint(heading)
	conn := connectionsOf(t)

	isCurve := t == TrackCurveNE || t == TrackCurveSE || t == TrackCurveSW || t == TrackCurveNW
	if isCurve && conn.Has(heading) {
		// Entry is the curve's other connection.
		var entry Direction
		for _, d := range conn.Directions() {
			if d != heading {
				entry = d
			}
		}
		eu, ev := edgeMidpoint(entry)
		u, v = quadPoint(eu, ev, 0.5, 0.5, xu, xv, progress)
		tx, ty := quadTangent(eu, ev, 0.5, 0.5, xu, xv, progress)
		return u, v, math.Atan2(ty, tx)
	}

	eu, ev := edgeMidpoint(heading.Opposite())
	u = eu + (xu-eu)*progress
	v = ev + (xv-ev)*progress
	return u, v, math.Atan2(xv-ev, xu-eu)
}

// CarriageWorldPose resolves a carriage to pixels, offset onto its side of
// the double track: north/east-bound traffic keeps one side, south/west the
// other, so opposing trains pass each other.
func CarriageWorldPose(g *Grid, c TrainCarriage, ts float64) CarriagePose {
	t := g.AdjacentRail(c.X, c.Y).TrackType()
	u, v, angle := carriageUnitPose(t, c.Heading, c.Progress)

	// Shift onto the right-hand track of the pair. The perpendicular frame
	// rotates with the heading, so a constant offset lands north/east-bound
	// traffic on one world-space side and south/west-bound on the other,
	// matching the rail offset convention in offsetPolyline.
	const side = trackSepRatio / 2
	u += -math.Sin(angle) * side
	v += math.Cos(angle) * side

	return CarriagePose{
		PX:    (float64(c.Y) + u) * ts,
		PY:    (float64(c.X) + v) * ts,
		Angle: angle,
	}
}
