package main

import (
	"os"

	"github.com/mbolis/quick-forms/config"
	"github.com/mbolis/quick-forms/log"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:   "quick-forms",
		Usage:  "custom forms with validated answers",
		Flags:  config.Flags,
		Action: serve,
		Commands: []*cli.Command{
			serveCommand,
			migrateCommand,
			createUserCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal("main:", err)
	}
}
