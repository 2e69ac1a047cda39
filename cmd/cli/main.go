package main

import (
	"context"
	"log"
	"os"

	"remindcli/internal/buildinfo"
	"remindcli/internal/client/cli"
	"remindcli/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
