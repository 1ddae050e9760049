package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	configFlag := &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path of the TOML config file",
		EnvVars: []string{"YATUBE_CONFIG"},
	}

	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "Yatube"
	app.Usage = "A blogging platform"
	app.Flags = []cli.Flag{configFlag}
	app.Before = s.loadConfig
	app.Commands = []*cli.Command{
		{
			Action:      s.startApi,
			Name:        "api",
			Usage:       "Start the web server",
			Category:    "Server",
			Description: `Serves the pages of the site.`,
		},
		{
			Action:      s.startMigrate,
			Name:        "migrate",
			Usage:       "Migrate the database",
			Category:    "Database",
			Description: `Applies the schema to the configured database.`,
		},
		{
			Name:     "group",
			Usage:    "Manage groups",
			Category: "Admin",
			Subcommands: []*cli.Command{
				{
					Action: s.createGroup,
					Name:   "create",
					Usage:  "Create a group",
					Flags: []cli.Flag{
						&cli.StringFlag{Name: "slug", Required: true},
						&cli.StringFlag{Name: "title", Required: true},
						&cli.StringFlag{Name: "description"},
					},
				},
				{
					Action: s.deleteGroup,
					Name:   "delete",
					Usage:  "Delete a group, its posts are kept without group",
					Flags: []cli.Flag{
						&cli.StringFlag{Name: "slug", Required: true},
					},
				},
			},
		},
		{
			Name:     "cache",
			Usage:    "Manage the page cache",
			Category: "Admin",
			Subcommands: []*cli.Command{
				{
					Action: s.clearCache,
					Name:   "clear",
					Usage:  "Remove every cached page",
				},
			},
		},
		{
			Name:     "search",
			Usage:    "Manage the search index",
			Category: "Admin",
			Subcommands: []*cli.Command{
				{
					Action: s.reindex,
					Name:   "reindex",
					Usage:  "Index every post again",
				},
			},
		},
	}

	s.app = app
}
