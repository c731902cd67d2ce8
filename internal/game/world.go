package game

import "math/rand"

// Spawn attempts are throttled so a failed attempt (station with no
// adjacent track, tiny network) does not retry every frame.
const spawnInterval = 2.0 // seconds between spawn attempts

// World owns the complete simulation state: the city grid and the live
// trains. Everything runs on the caller's single tick; the world never
// starts goroutines of its own.
type World struct {
	Grid   *Grid
	Trains []*Train

	Tick int
	Seed int64

	rng         *rand.Rand
	nextTrainID int
	spawnTimer  float64
}

// NewWorld builds a world with a generated starter town. The seed fully
// determines the town layout and all train spawns.
func NewWorld(seed int64) *World {
	w := &World{
		Grid: NewGrid(GridSize),
		Seed: seed,
		rng:  rand.New(rand.NewSource(seed)), // #nosec G404 -- simulation, not crypto
	}
	GenerateCity(w.Grid, w.rng, defaultCityConfig)
	return w
}

// NewEmptyWorld builds a world over a bare grid, for tests and tools that
// lay their own track.
func NewEmptyWorld(seed int64) *World {
	return &World{
		Grid: NewGrid(GridSize),
		Seed: seed,
		rng:  rand.New(rand.NewSource(seed)), // #nosec G404
	}
}

// Step advances the simulation by dt seconds at the given speed multiplier.
// It updates every train, drops the ones that report removal, and attempts
// a spawn while the network is under its train cap.
func (w *World) Step(dt, speedMult float64) {
	w.Tick++

	kept := w.Trains[:0]
	for _, t := range w.Trains {
		if t.Update(dt, speedMult, w.Grid) {
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(w.Trains); i++ {
		w.Trains[i] = nil
	}
	w.Trains = kept

	w.spawnTimer -= dt * speedMult
	if w.spawnTimer > 0 {
		return
	}
	w.spawnTimer = spawnInterval

	rails := w.Grid.CountRailTiles()
	if len(w.Trains) >= TrainCap(rails) {
		return
	}
	if t := SpawnTrain(w.Grid, w.rng, w.nextTrainID); t != nil {
		w.nextTrainID++
		w.Trains = append(w.Trains, t)
	}
}
