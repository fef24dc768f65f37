package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/blogauth/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-d string   PostgreSQL DSN, "sqlite:<path>", or "memory" for the in-process store
//	-u string   client base URL used in password-reset links
//	-l string   log level
//	-s string   access token secret
//	-f string   refresh token secret
//	-w string   password-reset token secret
//	-t int      access token validity, minutes
//	-r int      refresh token validity, minutes
//	-x int      password-reset token validity, minutes
//	-n string   notifier: discard, smtp or kafka
//	-k string   comma-separated Kafka brokers
//
// Token lifetimes are accepted as integers in minutes and only replace the
// current values when the flag is present.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-u", "-l", "-s", "-f", "-w", "-t", "-r", "-x", "-n", "-k"})

	fs := flag.NewFlagSet("blogauth", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.ClientURL, "u", config.ClientURL, "client base URL")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.AccessTokenSecret, "s", config.AccessTokenSecret, "access token secret")
	fs.StringVar(&config.RefreshTokenSecret, "f", config.RefreshTokenSecret, "refresh token secret")
	fs.StringVar(&config.PasswordResetTokenSecret, "w", config.PasswordResetTokenSecret, "password reset token secret")

	access := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	refresh := fs.Int("r", int(config.RefreshTokenValidityDuration.Minutes()), "refresh token validity (in minutes)")
	reset := fs.Int("x", int(config.PasswordResetTokenValidityDuration.Minutes()), "password reset token validity (in minutes)")

	fs.StringVar(&config.Notifier, "n", config.Notifier, "notifier backend")
	brokers := fs.String("k", "", "kafka brokers, comma separated")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.AccessTokenValidityDuration = time.Duration(*access) * time.Minute
		case "r":
			config.RefreshTokenValidityDuration = time.Duration(*refresh) * time.Minute
		case "x":
			config.PasswordResetTokenValidityDuration = time.Duration(*reset) * time.Minute
		}
	})

	if *brokers != "" {
		config.KafkaBrokers = splitCSV(*brokers)
	}

	return nil
}
