package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/canada-ca/tracker-sub010/config"
	"github.com/canada-ca/tracker-sub010/internal/database"
	"github.com/canada-ca/tracker-sub010/internal/repository"
	"github.com/canada-ca/tracker-sub010/server"
)

func main() {
	app := &cli.App{
		Name:  "tracker",
		Usage: "Tracker API for web and email security compliance",
		Commands: []*cli.Command{
			{
				Name:   "migrate",
				Usage:  "Run database migrations",
				Action: migrate,
			},
			{
				Name:   "server",
				Usage:  "Start the application server",
				Action: serve,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func migrate(_ *cli.Context) error {
	cfg, err := config.InitConfig()
	if err != nil {
		return cli.Exit("Config initialization failed: "+err.Error(), 1)
	}

	trackerDB, err := database.InitTrackerDatabase(cfg.TrackerDatabaseConfig)
	if err != nil {
		return cli.Exit("Tracker database initialization failed: "+err.Error(), 1)
	}

	if err := repository.MigrateTrackerDB(cfg.TrackerDatabaseConfig, trackerDB); err != nil {
		return cli.Exit("Database migration failed: "+err.Error(), 1)
	}
	log.Println("Database migration completed successfully")
	return nil
}

func serve(_ *cli.Context) error {
	cfg, err := config.InitConfig()
	if err != nil {
		return cli.Exit("Config initialization failed: "+err.Error(), 1)
	}

	trackerDB, err := database.InitTrackerDatabase(cfg.TrackerDatabaseConfig)
	if err != nil {
		return cli.Exit("Tracker database initialization failed: "+err.Error(), 1)
	}

	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("Tracker starting up...")

	srv, err := server.NewServer(cfg, trackerDB)
	if err != nil {
		return cli.Exit("Server setup failed: "+err.Error(), 1)
	}

	return srv.Run()
}
