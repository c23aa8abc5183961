// Command mapgen renders a rectangle of procedurally generated overworld
// terrain to stdout as an ASCII map. Useful for eyeballing seeds and
// adjacency behavior without running the full server.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/lawnchairsociety/openworldmud/server/internal/overworld"
	"github.com/lawnchairsociety/openworldmud/server/internal/terrain"
)

func main() {
	seed := flag.Int64("seed", 0, "world seed")
	originX := flag.Int("x", 0, "west edge of the rendered rectangle (world coordinate)")
	originY := flag.Int("y", 0, "north edge of the rendered rectangle (world coordinate)")
	width := flag.Int("width", 64, "rectangle width in tiles")
	height := flag.Int("height", 32, "rectangle height in tiles")
	blockSize := flag.Int("blocksize", overworld.DefaultBlockSize, "block side length in tiles")
	legend := flag.Bool("legend", false, "print the tile legend after the map")
	flag.Parse()

	if *width <= 0 || *height <= 0 {
		fmt.Fprintln(os.Stderr, "width and height must be positive")
		os.Exit(1)
	}

	m, err := overworld.NewManagerSized(*seed, *blockSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create world: %v\n", err)
		os.Exit(1)
	}

	var row strings.Builder
	for y := *originY; y < *originY+*height; y++ {
		row.Reset()
		for x := *originX; x < *originX+*width; x++ {
			row.WriteRune(m.TileAt(x, y).Symbol())
		}
		fmt.Println(row.String())
	}

	if *legend {
		fmt.Println()
		for _, k := range terrain.AllKinds() {
			pass := "passable"
			if !k.Passable() {
				pass = "impassable"
			}
			fmt.Printf("%c  %-10s %s\n", k.Symbol(), k.String(), pass)
		}
	}

	if n := m.ContradictionCount(); n > 0 {
		fmt.Fprintf(os.Stderr, "warning: %d solver contradictions resolved\n", n)
	}
}
