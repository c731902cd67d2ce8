package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/okvee/tinyburg/internal/game"
)

func main() {
	ebiten.SetWindowTitle("Tinyburg")
	ebiten.SetWindowSize(1288, 808)
	if err := ebiten.RunGame(game.New()); err != nil {
		log.Fatal(err)
	}
}
