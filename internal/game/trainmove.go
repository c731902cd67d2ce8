package game

// Update advances the train by dt seconds scaled by speedMult. It returns
// false when the caller must remove the train: either it aged out, or the
// track under it was bulldozed and a reversal could not save it.
func (t *Train) Update(dt, speedMult float64, g *Grid) bool {
	t.Age += dt * speedMult
	if t.Age > t.MaxAge {
		return false
	}

	if t.AtStation {
		t.Dwell -= dt * speedMult
		if t.Dwell <= 0 {
			t.AtStation = false
			t.Dwell = 0
		}
		return true
	}

	// Track may have been edited away under the train since last tick.
	if !g.IsRail(t.X, t.Y) && !g.IsRailStation(t.X, t.Y) {
		return false
	}

	t.Progress += t.Speed * dt * speedMult

	// A fast train on a slow frame can cross more than one tile boundary.
	for t.Progress >= 1 {
		nx, ny := t.Heading.Step(t.X, t.Y)
		if !g.isTrafficTile(nx, ny) {
			alt, ok := t.alternativeHeading(g)
			if !ok {
				// Nowhere to go: bounce in place and face back the way we came.
				t.Heading = t.Heading.Opposite()
				t.Progress = 0.5
				break
			}
			t.Heading = alt
			continue
		}

		t.X, t.Y = nx, ny
		t.Progress -= 1

		if t.Type == TrainPassenger && g.IsRailStation(t.X, t.Y) {
			t.AtStation = true
			t.Dwell = stationDwellTime
		}

		t.Heading = nextHeading(g.AdjacentRail(t.X, t.Y), t.Heading)

		t.history = append(t.history, Point{t.X, t.Y})
		if len(t.history) > pathHistoryMax {
			t.history = t.history[1:]
		}

		// A dwelling train stops where it is, even mid catch-up. Excess
		// progress from the fast frame is discarded, not banked through the
		// dwell, so departure starts from the platform.
		if t.AtStation {
			if t.Progress >= 1 {
				t.Progress = 0
			}
			break
		}
	}

	t.updateCarriages()
	return true
}

// alternativeHeading looks for another way out of the current tile when the
// tile ahead is not track: any connected direction other than the blocked
// heading and its reverse, in canonical order. The neighbor is re-checked
// against traffic occupancy so a stale connection cannot loop forever.
func (t *Train) alternativeHeading(g *Grid) (Direction, bool) {
	conn := g.AdjacentRail(t.X, t.Y)
	for d := North; d < directionCount; d++ {
		if d == t.Heading || d == t.Heading.Opposite() {
			continue
		}
		if !conn.Has(d) {
			continue
		}
		if nx, ny := d.Step(t.X, t.Y); g.isTrafficTile(nx, ny) {
			return d, true
		}
	}
	return North, false
}

// nextHeading picks the heading to leave a tile with the given connections,
// having arrived moving in `incoming`. Trains never backtrack unless the
// tile is a dead end: straights continue through, curves force their single
// turn, and junctions continue straight when possible, otherwise take the
// first remaining option in canonical order. That last rule is a deliberate
// simplification carried over from the traffic model this reimplements.
func nextHeading(conn RailConnection, incoming Direction) Direction {
	reverse := incoming.Opposite()
	if conn.Has(incoming) {
		return incoming
	}
	for d := North; d < directionCount; d++ {
		if d != reverse && conn.Has(d) {
			return d
		}
	}
	return reverse
}

// updateCarriages recomputes every carriage's rendered position from the
// lead state and path history. Carriage i trails the locomotive by
// i*carriageSpacing progress units; a deficit below zero walks backward
// through history one tile per whole unit. A freshly spawned train whose
// history is still short pins the overflow carriages to the spawn tile,
// which reads on screen as the train pulling in from off-map.
func (t *Train) updateCarriages() {
	// SpawnTrain seeds history with the spawn tile; a hand-built Train may
	// not, so start its trail at the lead tile.
	if len(t.history) == 0 {
		t.history = append(t.history, Point{t.X, t.Y})
	}
	for i := range t.Carriages {
		c := &t.Carriages[i]
		if i == 0 {
			c.X, c.Y = t.X, t.Y
			c.Progress = clampProgress(t.Progress)
			c.Heading = t.Heading
			continue
		}

		p := t.Progress - float64(i)*carriageSpacing
		idx := len(t.history) - 1
		for p < 0 && idx > 0 {
			idx--
			p += 1
		}
		if p < 0 {
			p = 0
		}

		c.X, c.Y = t.history[idx].X, t.history[idx].Y
		c.Progress = clampProgress(p)
		if idx+1 < len(t.history) {
			c.Heading = headingBetween(t.history[idx], t.history[idx+1])
		} else {
			c.Heading = t.Heading
		}
	}
}

// headingBetween derives the travel direction from one visited tile to the
// next. Consecutive history entries are always orthogonal neighbors.
func headingBetween(from, to Point) Direction {
	switch {
	case to.X < from.X:
		return North
	case to.Y < from.Y:
		return East
	case to.X > from.X:
		return South
	default:
		return West
	}
}

func clampProgress(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 0.99 {
		return 0.99
	}
	return p
}
