package logger

import (
	"log/slog"
	"strings"
)

// Config selects the slog handler installed by InitLogger
type Config struct {
	Level       string
	Format      string // json or text
	ServiceName string
	Version     string
	Environment string
	AddSource   bool
}

var levels = map[string]slog.Level{
	LogLevelDebug:   slog.LevelDebug,
	LogLevelInfo:    slog.LevelInfo,
	LogLevelWarn:    slog.LevelWarn,
	LogLevelWarning: slog.LevelWarn,
	LogLevelError:   slog.LevelError,
}

// NewConfig creates a config from the process settings
func NewConfig(level, format, serviceName, version, environment string, addSource bool) Config {
	return Config{
		Level:       level,
		Format:      format,
		ServiceName: serviceName,
		Version:     version,
		Environment: environment,
		AddSource:   addSource,
	}
}

// DefaultConfig is used by tests and tools that never load process config
func DefaultConfig() Config {
	return NewConfig(LogLevelInfo, LogFormatText, DefaultServiceName, DefaultVersion, EnvironmentDev, false)
}

// LogLevel maps the configured level name to a slog level. Unknown names log at info.
func (c Config) LogLevel() slog.Level {
	if lvl, ok := levels[strings.ToLower(c.Level)]; ok {
		return lvl
	}
	return slog.LevelInfo
}

// IsJSON reports whether records are written as JSON
func (c Config) IsJSON() bool {
	return strings.EqualFold(c.Format, LogFormatJSON)
}

// BaseAttributes are attached to every record
func (c Config) BaseAttributes() []slog.Attr {
	return []slog.Attr{
		slog.String(AttrKeyService, c.ServiceName),
		slog.String(AttrKeyVersion, c.Version),
		slog.String(AttrKeyEnvironment, c.Environment),
	}
}
