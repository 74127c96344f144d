package main

import (
	"context"
	"fmt"
	"log"

	"github.com/khonsu303/estudio/internal/client/cli"
	"github.com/khonsu303/estudio/internal/client/config"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {

	fmt.Printf("Estudio client %s\n", version)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		log.Printf("%v", err)
	}

}
