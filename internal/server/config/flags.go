package config

import (
	"flag"
	"time"

	"github.com/khonsu303/estudio/internal/flagx"
)

// parseFlags overlays selected fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":5000")
//	-g string   gRPC health bind address ("" disables)
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      token validity, minutes
//	-e string   environment (development, production)
//	-l string   log level
//	-r string   redis address
//	-k string   comma-separated kafka brokers
//
// Duration flags are accepted as integers in minutes.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-g", "-d", "-s", "-t", "-e", "-l", "-r", "-k"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.StringVar(&cfg.HTTPAddr, "a", cfg.HTTPAddr, "address and port to run the REST API")
	fs.StringVar(&cfg.GRPCHealthAddr, "g", cfg.GRPCHealthAddr, "address and port of the gRPC health endpoint")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "secret key")
	tokenValidity := fs.Int("t", int(cfg.TokenValidityDuration.Minutes()), "token validity (in minutes)")
	fs.StringVar(&cfg.Env, "e", cfg.Env, "environment")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "redis address for token revocation")
	brokers := fs.String("k", "", "comma-separated kafka brokers")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.TokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
	if *brokers != "" {
		cfg.KafkaBrokers = splitList(*brokers)
	}
}
