package config

import (
	"flag"

	"github.com/dmitrijs2005/authkeeper/internal/flagx"
)

// parseFlags overlays command-line flags onto config.
//
//	-a string     HTTP bind address (":8080")
//	-g string     gRPC bind address (":50051")
//	-b string     database driver, "pgx" or "sqlite"
//	-d string     database DSN
//	-s string     token signing key
//	-l string     log level
//	-t duration   graceful shutdown timeout
//
// Other arguments are left to their owners (see flagx.FilterArgs).
func parseFlags(config *Config, args []string) {
	args = flagx.FilterArgs(args, "a", "g", "b", "d", "s", "l", "t")

	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "HTTP address and port")
	fs.StringVar(&config.GRPCAddr, "g", config.GRPCAddr, "gRPC address and port")
	fs.StringVar(&config.DatabaseDriver, "b", config.DatabaseDriver, "database driver (pgx|sqlite)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "token signing key")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.DurationVar(&config.ShutdownTimeout, "t", config.ShutdownTimeout, "graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
