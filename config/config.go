package config

import (
	"errors"
	"net"
	"regexp"
	"strconv"
	"time"

	"github.com/urfave/cli/v2"
)

const envPrefix = "QUICKFORMS_"

type Config struct {
	Addr        string
	DBUrl       string
	TokenSecret string
	TokenTTL    time.Duration
	Debug       bool
	LogFormat   string
}

// Flags are the global command line flags; each can also be set through a
// QUICKFORMS_* environment variable.
var Flags = []cli.Flag{
	&cli.StringFlag{
		Name:    "host",
		Value:   "0.0.0.0",
		Usage:   "listen host name",
		EnvVars: env("HOST"),
	},
	&cli.UintFlag{
		Name:    "port",
		Value:   80,
		Usage:   "listen port number",
		EnvVars: env("PORT"),
	},
	&cli.StringFlag{
		Name:    "db-url",
		Value:   "qforms.sqlite",
		Usage:   "path to SQLite3 DB file",
		EnvVars: env("DB_URL"),
	},
	&cli.StringFlag{
		Name:    "token-secret",
		Usage:   "secret key for token encryption and decryption",
		EnvVars: env("TOKEN_SECRET"),
	},
	&cli.DurationFlag{
		Name:    "token-ttl",
		Value:   120 * time.Second,
		Usage:   "access token TTL",
		EnvVars: env("TOKEN_TTL"),
	},
	&cli.BoolFlag{
		Name:    "debug",
		Usage:   "log at DEBUG level",
		EnvVars: env("DEBUG"),
	},
	&cli.StringFlag{
		Name:    "log-format",
		Value:   "text",
		Usage:   "log output format (text or json)",
		EnvVars: env("LOG_FORMAT"),
	},
}

func env(name string) []string {
	return []string{envPrefix + name}
}

func FromContext(c *cli.Context) (cfg Config, err error) {
	cfg.Addr = net.JoinHostPort(c.String("host"), strconv.Itoa(int(c.Uint("port"))))
	cfg.DBUrl = c.String("db-url")
	cfg.TokenSecret = c.String("token-secret")
	cfg.TokenTTL = c.Duration("token-ttl")
	cfg.Debug = c.Bool("debug")
	cfg.LogFormat = c.String("log-format")

	if cfg.DBUrl == "" {
		err = errors.New("missing parameter --db-url")
	}
	return
}

// RequireSecret fails when no token secret was given; serving without one
// would sign admin tokens with an empty key.
func (cfg Config) RequireSecret() error {
	if cfg.TokenSecret == "" {
		return errors.New("missing parameter --token-secret")
	}
	return nil
}

func (cfg Config) Url() (url string) {
	url = cfg.Addr
	url = regexp.MustCompile(`^0.0.0.0`).ReplaceAllString(url, "localhost")
	url = "http://" + url
	return
}
