package main

import (
	"flag"
	"log"

	"VoxelScape/jogo/internal/app"
	"VoxelScape/shared/config"
)

func main() {
	log.SetFlags(log.Ltime)
	log.Printf("==============================================")
	log.Printf("  VoxelScape - exploração em mundo de voxels")
	log.Printf("==============================================")

	worldName := flag.String("world", "", "nome do mundo (sobrescreve o config)")
	seed := flag.Int64("seed", 0, "seed do terreno para mundos novos")
	flag.Parse()

	cfg := config.Load()
	if *worldName != "" {
		cfg.WorldName = *worldName
	}
	if *seed != 0 {
		cfg.WorldSeed = *seed
	}

	a, err := app.New(cfg)
	if err != nil {
		log.Fatalf("[Main] Falha fatal na inicialização: %v", err)
	}

	a.Run()
	log.Printf("[Main] Até a próxima!")
}
