package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/listkeeper/internal/server"
	"github.com/dmitrijs2005/listkeeper/internal/server/config"
	"github.com/joho/godotenv"
)

func main() {

	// .env is optional; real environments configure via env vars or flags
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
