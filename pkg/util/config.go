package util

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lintang-b-s/Accessx/pkg"
	"github.com/spf13/viper"
)

func SetConfigDefaults() {
	viper.SetDefault("API_PORT", 6060)
	viper.SetDefault("API_TIMEOUT", "30s")
	viper.SetDefault("HTTP_SERVER_READ_TIMEOUT", "10s")
	viper.SetDefault("HTTP_SERVER_WRITE_TIMEOUT", "10s")
	viper.SetDefault("HTTP_SERVER_IDLE_TIMEOUT", "60s")
	viper.SetDefault("HTTP_SERVER_READ_HEADER_TIMEOUT", "5s")
	viper.SetDefault("RATE_LIMIT_RPS", 50.0)
	viper.SetDefault("RATE_LIMIT_BURST", 100)
	viper.SetDefault("REFERENCE_TIMEZONE", pkg.REFERENCE_TIMEZONE)
	viper.SetDefault("WORKERS", 8)
	viper.SetDefault("MAX_EDGES_PER_REQUEST", 100000)
	viper.SetDefault("MAX_REQUEST_BODY_BYTES", 64<<20)
	viper.SetDefault("TRUST_PROXY_HEADERS", false)
	viper.SetDefault("OPENING_HOURS_CACHE_SIZE", pkg.DEFAULT_OPENING_HOURS_CACHE_SIZE)
}

// ReadConfig. defaults, then ./data/config.yaml if present, then environment variables.
func ReadConfig() error {
	SetConfigDefaults()

	viper.SetConfigName("config")
	viper.AddConfigPath("./data/")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}
