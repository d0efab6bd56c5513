package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/peerpods-dev/peerpods/internal/router"
	"github.com/peerpods-dev/peerpods/internal/setup"
	"github.com/peerpods-dev/peerpods/shared/config"
	"github.com/peerpods-dev/peerpods/shared/logger"
)

func main() {
	log.SetFlags(log.Lshortfile)

	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	deps, err := setup.SetupDependencies(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer deps.Storage.Cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	deps.Refresher.StartBackgroundRefresh(ctx, cfg.Public.StateRefreshInterval*time.Second)

	r := router.New(deps)

	log.Print("Server started")
	httpPort := os.Getenv("PORT")
	if httpPort == "" {
		httpPort = "8080"
	}

	log.Fatal(http.ListenAndServe(":"+httpPort, r))
}
