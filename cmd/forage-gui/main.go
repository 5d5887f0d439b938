//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"forage/internal/app"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	logger := log.New(os.Stderr, "[forage] ", log.LstdFlags|log.Lmicroseconds)

	w, err := app.BuildWorld(cfg)
	if err != nil {
		logger.Fatalf("build world: %v", err)
	}

	game := app.New(w, cfg.Scale, cfg.TPS, cfg.Seed, logger)
	size := w.Size()

	ebiten.SetWindowTitle("forage - " + w.Name())
	ebiten.SetWindowSize(size.W*cfg.Scale+app.HUDWidth, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal(err)
	}
}
