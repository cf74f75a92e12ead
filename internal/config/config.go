package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App    AppConfig    `mapstructure:"app"`
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	DB     DBConfig     `mapstructure:"db"`
	Auth   AuthConfig   `mapstructure:"auth"`
	Roster RosterConfig `mapstructure:"roster"`
	Deals  DealsConfig  `mapstructure:"deals"`
	Cron   CronConfig   `mapstructure:"cron"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	HTTPAddr string `mapstructure:"http_addr"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

// DBConfig covers both source databases. They live on the same MySQL host
// and share credentials; only the schema name differs.
type DBConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	User           string        `mapstructure:"user"`
	Password       string        `mapstructure:"password"`
	MT5Name        string        `mapstructure:"mt5_name"`
	AdminName      string        `mapstructure:"admin_name"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	Timezone       string        `mapstructure:"timezone"`
}

// AuthConfig holds the single dashboard operator credential. The password
// may be plain text or a bcrypt hash ($2a$/$2b$ prefix).
type AuthConfig struct {
	OperatorEmail    string `mapstructure:"operator_email"`
	OperatorPassword string `mapstructure:"operator_password"`
	SessionSecret    string `mapstructure:"session_secret"`
}

type RosterConfig struct {
	HouseAccountEmail string `mapstructure:"house_account_email"`
	// ExcludeHouseFromWeightedAvg drops House Account rows from the
	// equity-weighted average gain/loss in the roster summary.
	ExcludeHouseFromWeightedAvg bool `mapstructure:"exclude_house_from_weighted_avg"`
}

type DealsConfig struct {
	DefaultLimit int `mapstructure:"default_limit"`
	MaxLimit     int `mapstructure:"max_limit"`
}

type CronConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	HealthProbe string `mapstructure:"health_probe"`
}

func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetDefault("app.env", "dev")
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)
	v.SetDefault("db.host", "127.0.0.1")
	v.SetDefault("db.port", 3306)
	v.SetDefault("db.user", "client_fund")
	v.SetDefault("db.mt5_name", "fund-mt5")
	v.SetDefault("db.admin_name", "fund_production")
	v.SetDefault("db.connect_timeout", "15s")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("auth.operator_email", "admin@upside.com")
	v.SetDefault("auth.session_secret", "change-me-in-prod")
	v.SetDefault("roster.house_account_email", "analytics@theupsidefunding.com")
	v.SetDefault("roster.exclude_house_from_weighted_avg", false)
	v.SetDefault("deals.default_limit", 50)
	v.SetDefault("deals.max_limit", 500)
	v.SetDefault("cron.enabled", true)
	v.SetDefault("cron.health_probe", "@every 5m")
	// No defaults for db.password and auth.operator_password: both are
	// mandatory and checked by Validate.

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate enforces the mandatory fields once at startup.
func (c Config) Validate() error {
	if strings.TrimSpace(c.DB.Password) == "" {
		return errors.New("config: db.password is required")
	}
	if strings.TrimSpace(c.Auth.OperatorPassword) == "" {
		return errors.New("config: auth.operator_password is required")
	}
	if strings.TrimSpace(c.DB.MT5Name) == "" || strings.TrimSpace(c.DB.AdminName) == "" {
		return errors.New("config: both database names are required")
	}
	return nil
}
