package game

// Point is a grid coordinate.
type Point struct {
	X, Y int
}

// FindRailPath returns the shortest rail path from (sx, sy) to (ex, ey) as
// an ordered list of coordinates including both endpoints, or nil if the
// destination is unreachable. Breadth-first search over the 4-neighbor
// graph; a step is legal iff the destination cell is rail-or-station.
// Neighbors expand in N, E, S, W order so equal-length results are
// deterministic.
func FindRailPath(g *Grid, sx, sy, ex, ey int) []Point {
	if !g.InBounds(sx, sy) || !g.InBounds(ex, ey) {
		return nil
	}
	walkable := func(x, y int) bool {
		return g.IsRail(x, y) || g.IsRailStation(x, y)
	}
	if !walkable(ex, ey) {
		return nil
	}

	key := func(x, y int) int { return x*g.Size + y }
	visited := make(map[int]bool, g.Size)
	parent := make(map[int]Point)

	queue := []Point{{sx, sy}}
	visited[key(sx, sy)] = true

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.X == ex && cur.Y == ey {
			// Walk parents back to the start.
			path := []Point{cur}
			for cur.X != sx || cur.Y != sy {
				cur = parent[key(cur.X, cur.Y)]
				path = append(path, cur)
			}
			for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
				path[i], path[j] = path[j], path[i]
			}
			return path
		}
		for d := North; d < directionCount; d++ {
			nx, ny := d.Step(cur.X, cur.Y)
			if !g.InBounds(nx, ny) || visited[key(nx, ny)] || !walkable(nx, ny) {
				continue
			}
			visited[key(nx, ny)] = true
			parent[key(nx, ny)] = cur
			queue = append(queue, Point{nx, ny})
		}
	}
	return nil
}
