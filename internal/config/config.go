package config

import (
	"bytes"
	_ "embed"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

//go:embed defaults.yaml
var defaults []byte

type Config struct {
	HTTP     HTTPConfig     `mapstructure:"http"`
	Postgres DatabaseConfig `mapstructure:"postgres"`
	Log      LogConfig      `mapstructure:"log"`
	Import   ImportConfig   `mapstructure:"import"`
}

type HTTPConfig struct {
	Addr      string `mapstructure:"addr"`
	StaticDir string `mapstructure:"static_dir"`
}

type DatabaseConfig struct {
	DSN                string        `mapstructure:"dsn"`
	InsecureSkipVerify bool          `mapstructure:"insecure_skip_verify"`
	MaxOpenConns       int           `mapstructure:"max_open_conns"`
	MaxIdleConns       int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime    time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime    time.Duration `mapstructure:"conn_max_idle_time"`
	PingTimeout        time.Duration `mapstructure:"ping_timeout"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type ImportConfig struct {
	File string `mapstructure:"file"`
}

// Load reads embedded defaults, merges user YAML (if provided), and applies
// env overrides (KKARTEI_*). A .env file in the working directory is loaded
// first; the database DSN additionally honors the platform-injected
// DATABASE_URL.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	// embedded defaults
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return Config{}, err
	}

	if path != "" {
		v.SetConfigFile(path)
		_ = v.MergeInConfig()
	}

	// env override (KKARTEI_*)
	v.SetEnvPrefix("KKARTEI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("postgres.dsn", "KKARTEI_POSTGRES_DSN", "DATABASE_URL")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
