package main

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/natblog/blogapi/config"
	"github.com/natblog/blogapi/models"
	"github.com/natblog/blogapi/routes"
	"github.com/natblog/blogapi/utils"
)

func main() {
	cfg, err := config.Load("config/config.json")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}
	defer func() { _ = utils.Logger.Sync() }()

	db, err := config.OpenDatabase(cfg, models.All()...)
	if err != nil {
		utils.Sugar.Fatalf("database: %v", err)
	}
	defer func() {
		if err := config.CloseDatabase(db); err != nil {
			utils.Sugar.Warnf("close database: %v", err)
		}
	}()

	rc := utils.NewRedis(cfg)
	if rc != nil {
		defer func() { _ = rc.Close() }()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := routes.SetupRouter(cfg, routes.Dependencies{DB: db, Redis: rc, Registry: reg})

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Errorf("server stopped with error: %v", err)
	}
}
