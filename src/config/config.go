package config

import (
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
)

// Defaults are suitable for local dev against the docker-compose database.
// Override for live deploys.
var Config = InkwellConfig{
	Env:         Dev,
	Addr:        ":9001",
	PrivateAddr: "localhost:9002",
	BaseUrl:     "http://localhost:9001",
	LogLevel:    zerolog.TraceLevel,
	Postgres: PostgresConfig{
		User:     "inkwell",
		Password: "password",
		Hostname: "localhost",
		Port:     5432,
		DbName:   "inkwell",
		LogLevel: tracelog.LogLevelWarn,
		MinConn:  2,
		MaxConn:  8,
	},
	Auth: AuthConfig{
		MinSecurityDelayMs: 500,
	},
}
