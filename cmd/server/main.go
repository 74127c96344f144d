package main

import (
	"context"
	"log"

	"github.com/khonsu303/estudio/internal/server"
	"github.com/khonsu303/estudio/internal/server/config"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {

	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("%v", err)
		return
	}

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(ctx, cfg, version)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
