package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/xichen1997/RTS-made-by-AI/internal/game"
)

func main() {
	ebiten.SetWindowSize(1024, 640)
	ebiten.SetWindowTitle("Red Horizon")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(game.New()); err != nil {
		log.Fatal(err)
	}
}
