package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/blogauth/internal/flagx"
	"github.com/dmitrijs2005/blogauth/internal/timex"
)

// JsonConfig is the on-disk shape of the JSON config file. Durations accept
// either "15m"-style strings or integer nanoseconds. Only keys present in
// the file override the current values.
type JsonConfig struct {
	EndpointAddrGRPC string `json:"endpoint_addr_grpc"`
	DatabaseDSN      string `json:"database_dsn"`
	ClientURL        string `json:"client_url"`
	LogLevel         string `json:"log_level"`

	AccessTokenSecret        string `json:"access_token_secret"`
	RefreshTokenSecret       string `json:"refresh_token_secret"`
	PasswordResetTokenSecret string `json:"password_reset_token_secret"`

	AccessTokenValidityDuration        *timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration       *timex.Duration `json:"refresh_token_validity_duration"`
	PasswordResetTokenValidityDuration *timex.Duration `json:"password_reset_token_validity_duration"`

	HashTime      *uint32 `json:"hash_time"`
	HashMemoryKiB *uint32 `json:"hash_memory_kib"`
	HashThreads   *uint8  `json:"hash_threads"`

	StoreTimeout *timex.Duration `json:"store_timeout"`

	Notifier     string   `json:"notifier"`
	SMTPHost     string   `json:"smtp_host"`
	SMTPPort     string   `json:"smtp_port"`
	SMTPUser     string   `json:"smtp_user"`
	SMTPPassword string   `json:"smtp_password"`
	SMTPFrom     string   `json:"smtp_from"`
	KafkaBrokers []string `json:"kafka_brokers"`
	KafkaTopic   string   `json:"kafka_topic"`
}

// parseJson overlays the file named by -c / -config onto config. Without
// the flag nothing is loaded.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigFilePath(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return err
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.ClientURL, c.ClientURL)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.AccessTokenSecret, c.AccessTokenSecret)
	setString(&config.RefreshTokenSecret, c.RefreshTokenSecret)
	setString(&config.PasswordResetTokenSecret, c.PasswordResetTokenSecret)
	setString(&config.Notifier, c.Notifier)
	setString(&config.SMTPHost, c.SMTPHost)
	setString(&config.SMTPPort, c.SMTPPort)
	setString(&config.SMTPUser, c.SMTPUser)
	setString(&config.SMTPPassword, c.SMTPPassword)
	setString(&config.SMTPFrom, c.SMTPFrom)
	setString(&config.KafkaTopic, c.KafkaTopic)

	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RefreshTokenValidityDuration != nil {
		config.RefreshTokenValidityDuration = c.RefreshTokenValidityDuration.Duration
	}
	if c.PasswordResetTokenValidityDuration != nil {
		config.PasswordResetTokenValidityDuration = c.PasswordResetTokenValidityDuration.Duration
	}
	if c.StoreTimeout != nil {
		config.StoreTimeout = c.StoreTimeout.Duration
	}
	if c.HashTime != nil {
		config.HashTime = *c.HashTime
	}
	if c.HashMemoryKiB != nil {
		config.HashMemoryKiB = *c.HashMemoryKiB
	}
	if c.HashThreads != nil {
		config.HashThreads = *c.HashThreads
	}
	if len(c.KafkaBrokers) > 0 {
		config.KafkaBrokers = c.KafkaBrokers
	}

	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
