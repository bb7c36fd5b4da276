package main

import (
	"context"
	"log"
	"os"

	"nutridiary/internal/buildinfo"
	"nutridiary/internal/cli"
	"nutridiary/internal/config"
	"nutridiary/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewTextLogger(os.Stderr, false)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}
	defer app.Close()

	app.Run(ctx)

}
