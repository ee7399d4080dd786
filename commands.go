package main

import (
	"github.com/mbolis/quick-forms/httpx"
	"github.com/mbolis/quick-forms/log"
	"github.com/urfave/cli/v2"
)

var migrateCommand = &cli.Command{
	Name:  "migrate",
	Usage: "Bring the database schema up to date and exit",
	Action: func(c *cli.Context) error {
		_, db, err := setup(c)
		if err != nil {
			return err
		}
		return db.Close()
	},
}

var createUserCommand = &cli.Command{
	Name:  "create-user",
	Usage: "Create an admin user, or reset its password",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "username",
			Aliases:  []string{"u"},
			Usage:    "admin user name",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "password",
			Aliases:  []string{"p"},
			Usage:    "admin password",
			EnvVars:  []string{"QUICKFORMS_ADMIN_PASSWORD"},
			Required: true,
		},
	},
	Action: func(c *cli.Context) error {
		_, db, err := setup(c)
		if err != nil {
			return err
		}
		defer db.Close()

		username := c.String("username")
		if err := httpx.CreateUser(c.Context, db, username, c.String("password")); err != nil {
			return err
		}
		log.WithFields(log.Fields{"username": username}).Info("admin user saved")
		return nil
	},
}
