package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration, loaded from an app.env file and
// overridable through environment variables.
type Config struct {
	DBSource      string        `mapstructure:"DB_SOURCE"`
	ServerAddress string        `mapstructure:"SERVER_ADDRESS"`
	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	StatsCacheTTL time.Duration `mapstructure:"STATS_CACHE_TTL"`
}

// LoadConfig reads configuration from the given directory.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	err = viper.ReadInConfig()
	if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	return
}
