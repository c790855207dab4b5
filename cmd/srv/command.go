package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	s.app = cli.NewApp()
	s.app.Action = cli.ShowAppHelp
	s.app.Name = "Groove"
	s.app.Usage = "Dance community backend"
	s.app.Commands = []*cli.Command{
		{
			Action:      s.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Category:    "Api",
			Description: `Used for start service api, it main service included all apis.`,
		},
		{
			Action:   s.startMigrate,
			Name:     "migrate",
			Usage:    "Migrate the database schema",
			Category: "Database",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "auto",
					Usage: "create missing tables from entities instead of running sql migrations",
				},
				&cli.BoolFlag{
					Name:  "rollback",
					Usage: "roll back every applied sql migration",
				},
			},
			Description: `Used to apply the embedded sql migrations to the configured database.`,
		},
		{
			Action:      s.startSubscriber,
			Name:        "subscriber",
			Usage:       "Start service subscriber",
			Category:    "Worker",
			Description: `Used to start worker that stores notifications consumed from the activity topic.`,
		},
	}
}
