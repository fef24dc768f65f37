package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type lookupFunc func(key string) (string, bool)

// envLookup resolves keys from the process environment first and then from
// the dotenv file at path. A missing file is not an error.
func envLookup(path string) (lookupFunc, error) {
	fileVars, err := godotenv.Read(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		fileVars = map[string]string{}
	}
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileVars[key]
		return v, ok
	}, nil
}

// parseEnv overlays environment variables onto config.
//
//	GRPC_ADDRESS, DATABASE_DSN, CLIENT_URL, LOG_LEVEL
//	ACCESS_TOKEN_SECRET, REFRESH_TOKEN_SECRET, PASSWORD_RESET_TOKEN_SECRET
//	ACCESS_TOKEN_TTL, REFRESH_TOKEN_TTL, PASSWORD_RESET_TOKEN_TTL, STORE_TIMEOUT (Go durations)
//	HASH_TIME, HASH_MEMORY_KIB, HASH_THREADS
//	NOTIFIER, SMTP_HOST, SMTP_PORT, SMTP_USER, SMTP_PASSWORD, SMTP_FROM
//	KAFKA_BROKERS (comma separated), KAFKA_TOPIC
func parseEnv(config *Config, lookup lookupFunc) error {
	strs := map[string]*string{
		"GRPC_ADDRESS":                &config.EndpointAddrGRPC,
		"DATABASE_DSN":                &config.DatabaseDSN,
		"CLIENT_URL":                  &config.ClientURL,
		"LOG_LEVEL":                   &config.LogLevel,
		"ACCESS_TOKEN_SECRET":         &config.AccessTokenSecret,
		"REFRESH_TOKEN_SECRET":        &config.RefreshTokenSecret,
		"PASSWORD_RESET_TOKEN_SECRET": &config.PasswordResetTokenSecret,
		"NOTIFIER":                    &config.Notifier,
		"SMTP_HOST":                   &config.SMTPHost,
		"SMTP_PORT":                   &config.SMTPPort,
		"SMTP_USER":                   &config.SMTPUser,
		"SMTP_PASSWORD":               &config.SMTPPassword,
		"SMTP_FROM":                   &config.SMTPFrom,
		"KAFKA_TOPIC":                 &config.KafkaTopic,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	durations := map[string]*time.Duration{
		"ACCESS_TOKEN_TTL":         &config.AccessTokenValidityDuration,
		"REFRESH_TOKEN_TTL":        &config.RefreshTokenValidityDuration,
		"PASSWORD_RESET_TOKEN_TTL": &config.PasswordResetTokenValidityDuration,
		"STORE_TIMEOUT":            &config.StoreTimeout,
	}
	for key, dst := range durations {
		v, ok := lookup(key)
		if !ok || v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = d
	}

	uints := map[string]*uint32{
		"HASH_TIME":       &config.HashTime,
		"HASH_MEMORY_KIB": &config.HashMemoryKiB,
	}
	for key, dst := range uints {
		v, ok := lookup(key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = uint32(n)
	}

	if v, ok := lookup("HASH_THREADS"); ok && v != "" {
		n, err := strconv.ParseUint(v, 10, 8)
		if err != nil {
			return fmt.Errorf("HASH_THREADS: %w", err)
		}
		config.HashThreads = uint8(n)
	}

	if v, ok := lookup("KAFKA_BROKERS"); ok && v != "" {
		config.KafkaBrokers = splitCSV(v)
	}

	return nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
