package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/SergeyParamoshkin/marucat/internal/apperror"
	"github.com/spf13/viper"
)

// DatabaseMongo is the only supported database type.
const DatabaseMongo = "mongodb"

var envReplacer = strings.NewReplacer(".", "_")

type Config struct {
	Debug    bool           `mapstructure:"debug"`
	Database DatabaseConfig `mapstructure:"database"`
	MongoDB  MongoConfig    `mapstructure:"mongodb"`
	Admin    AdminConfig    `mapstructure:"admin"`
}

type DatabaseConfig struct {
	Type string `mapstructure:"type"`
}

type MongoConfig struct {
	URI                string        `mapstructure:"uri"`
	Schema             string        `mapstructure:"schema"`
	ArticlesCollection string        `mapstructure:"articles_collection"`
	SettingsCollection string        `mapstructure:"settings_collection"`
	ConnectTimeout     time.Duration `mapstructure:"connect_timeout"`
}

type AdminConfig struct {
	Token string `mapstructure:"token"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("database.type", DatabaseMongo)
	v.SetDefault("mongodb.uri", "mongodb://localhost:27017")
	v.SetDefault("mongodb.schema", "marucat")
	v.SetDefault("mongodb.articles_collection", "articles")
	v.SetDefault("mongodb.settings_collection", "settings")
	v.SetDefault("mongodb.connect_timeout", 10*time.Second)
	v.SetDefault("admin.token", "")
}

// Load reads the YAML file at path over the defaults. An empty path loads
// defaults only. Environment variables prefixed with MARUCAT_ override both,
// e.g. MARUCAT_MONGODB_URI.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("marucat")
	v.SetEnvKeyReplacer(envReplacer)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Database.Type != DatabaseMongo {
		return &apperror.DatabaseNotSupportedError{Name: c.Database.Type}
	}

	return nil
}

func GetEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return defaultValue
}

func GetEnvBool(key string, defaultValue bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return b
}
