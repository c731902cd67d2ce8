// Command headless-report runs the city simulation without a window and
// prints a rail network report per run, plus an aggregate traffic summary.
// Useful for checking that generated towns produce working train service.
package main

import (
	"flag"
	"fmt"

	"github.com/okvee/tinyburg/internal/game"
)

type runStats struct {
	runIndex int
	seed     int64

	railTiles    int
	stations     int
	linkedPairs  int
	stationPairs int

	spawned   int
	retired   int
	peakLive  int
	finalLive int
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var verbose bool

	flag.IntVar(&runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&ticks, "ticks", 18000, "simulation ticks per run (60 = 1s)")
	flag.Int64Var(&seedBase, "seed", 1000, "seed of the first run")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.BoolVar(&verbose, "v", false, "print the full network report per run")
	flag.Parse()

	const dt = 1.0 / 60.0

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		w := game.NewWorld(seed)

		st := runStats{runIndex: i, seed: seed}
		maxID := -1
		for t := 0; t < ticks; t++ {
			w.Step(dt, 1.0)
			if n := len(w.Trains); n > st.peakLive {
				st.peakLive = n
			}
			for _, tr := range w.Trains {
				if tr.ID > maxID {
					maxID = tr.ID
				}
			}
		}
		st.spawned = maxID + 1
		st.finalLive = len(w.Trains)
		st.retired = st.spawned - st.finalLive

		rep := w.BuildNetworkReport()
		st.railTiles = rep.RailTiles
		st.stations = len(rep.Stations)
		for a := range rep.Linked {
			for b := range rep.Linked[a] {
				if a == b {
					continue
				}
				st.stationPairs++
				if rep.Linked[a][b] {
					st.linkedPairs++
				}
			}
		}

		if verbose {
			fmt.Println(rep)
		}
		fmt.Printf("run %d seed=%d rail=%d stations=%d linked=%d/%d spawned=%d retired=%d peak=%d live=%d\n",
			st.runIndex, st.seed, st.railTiles, st.stations, st.linkedPairs, st.stationPairs,
			st.spawned, st.retired, st.peakLive, st.finalLive)
		all = append(all, st)
	}

	var spawned, retired, linked, pairs int
	for _, st := range all {
		spawned += st.spawned
		retired += st.retired
		linked += st.linkedPairs
		pairs += st.stationPairs
	}
	fmt.Printf("\n%d runs x %d ticks: %d trains spawned, %d retired, %d/%d station pairs linked\n",
		len(all), ticks, spawned, retired, linked, pairs)
}
