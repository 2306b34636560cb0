package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the process configuration
type Config struct {
	DiscordToken       string `validate:"required"`
	DiscordAppID       string `validate:"required"`
	ForceCommandUpdate bool

	DataDir     string `validate:"required"`
	DatabaseURL string `validate:"omitempty,url"`
	DBMaxConns  int    `validate:"gte=1"`
	SeedFile    string

	HTTPPort int `validate:"gte=0,lte=65535"`

	LogLevel    string `validate:"oneof=debug info warn warning error"`
	LogFormat   string `validate:"oneof=text json"`
	LogDir      string
	Environment string `validate:"required"`
	Version     string

	FeedTimeout      time.Duration `validate:"gt=0"`
	FeedSSRFGuard    bool
	FeedAllowedPorts []int `validate:"dive,gt=0,lte=65535"`

	AlertInterval   time.Duration `validate:"gt=0"`
	StatusTick      time.Duration `validate:"gt=0"`
	WorkerCount     int           `validate:"gte=1,lte=64"`
	DMRatePerSecond float64       `validate:"gt=0"`
	CooldownDevMode bool
}

// Load reads configuration from .env, an optional config.yaml and the
// environment, in increasing order of precedence.
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName(ConfigFileName)
	v.SetConfigType(ConfigFileType)
	for _, p := range ConfigPaths {
		v.AddConfigPath(p)
	}
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf(ErrMsgReadConfigFailed, err)
		}
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyDataDir, DefaultDataDir)
	v.SetDefault(KeyDBMaxConns, DefaultDBMaxConns)
	v.SetDefault(KeyHTTPPort, DefaultHTTPPort)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLogFormat, DefaultLogFormat)
	v.SetDefault(KeyEnvironment, DefaultEnvironment)
	v.SetDefault(KeyVersion, DefaultVersion)
	v.SetDefault(KeyFeedTimeout, DefaultFeedTimeout)
	v.SetDefault(KeyFeedAllowedPorts, DefaultFeedAllowedPorts)
	v.SetDefault(KeyAlertInterval, DefaultAlertInterval)
	v.SetDefault(KeyStatusTick, DefaultStatusTick)
	v.SetDefault(KeyWorkerCount, DefaultWorkerCount)
	v.SetDefault(KeyDMRatePerSecond, DefaultDMRatePerSecond)
}

func fromViper(v *viper.Viper) (*Config, error) {
	ports, err := parsePorts(v.GetStringSlice(KeyFeedAllowedPorts))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DiscordToken:       v.GetString(KeyDiscordToken),
		DiscordAppID:       v.GetString(KeyDiscordAppID),
		ForceCommandUpdate: v.GetBool(KeyForceCommandUpdate),
		DataDir:            v.GetString(KeyDataDir),
		DatabaseURL:        v.GetString(KeyDatabaseURL),
		DBMaxConns:         v.GetInt(KeyDBMaxConns),
		SeedFile:           v.GetString(KeyGuildSeedFile),
		HTTPPort:           v.GetInt(KeyHTTPPort),
		LogLevel:           strings.ToLower(v.GetString(KeyLogLevel)),
		LogFormat:          strings.ToLower(v.GetString(KeyLogFormat)),
		LogDir:             v.GetString(KeyLogDir),
		Environment:        v.GetString(KeyEnvironment),
		Version:            v.GetString(KeyVersion),
		FeedTimeout:        v.GetDuration(KeyFeedTimeout),
		FeedSSRFGuard:      v.GetBool(KeyFeedSSRFGuard),
		FeedAllowedPorts:   ports,
		AlertInterval:      v.GetDuration(KeyAlertInterval),
		StatusTick:         v.GetDuration(KeyStatusTick),
		WorkerCount:        v.GetInt(KeyWorkerCount),
		DMRatePerSecond:    v.GetFloat64(KeyDMRatePerSecond),
		CooldownDevMode:    v.GetBool(KeyCooldownDevMode),
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parsePorts accepts both a YAML list and a comma separated env value
func parsePorts(raw []string) ([]int, error) {
	var ports []int
	for _, entry := range raw {
		for _, part := range strings.Split(entry, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			port, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf(ErrMsgInvalidPort, KeyFeedAllowedPorts, part, err)
			}
			ports = append(ports, port)
		}
	}
	return ports, nil
}

// UsePostgres reports whether the Postgres store is configured
func (c *Config) UsePostgres() bool {
	return c.DatabaseURL != ""
}

// IsProduction reports whether the process runs in production
func (c *Config) IsProduction() bool {
	switch strings.ToLower(c.Environment) {
	case "prod", "production":
		return true
	}
	return false
}
