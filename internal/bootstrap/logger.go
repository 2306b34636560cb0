package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/osse101/FarmBot_Go/internal/config"
	"github.com/osse101/FarmBot_Go/internal/logger"
)

// SetupLogger installs the process logger. With a log directory configured,
// output also goes to a timestamped session file and old sessions beyond the
// retention count are removed. The returned file is nil without a log
// directory; otherwise the caller must close it.
func SetupLogger(cfg *config.Config) (*os.File, error) {
	logCfg := logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		logger.DefaultServiceName,
		cfg.Version,
		cfg.Environment,
		cfg.LogLevel == logger.LogLevelDebug,
	)

	var logFile *os.File
	if cfg.LogDir == "" {
		logger.InitLogger(logCfg)
	} else {
		if err := os.MkdirAll(cfg.LogDir, DirPermission); err != nil {
			return nil, fmt.Errorf(ErrMsgFailedCreateLogsDir, err)
		}
		cleanupLogs(cfg.LogDir, LogFileRetentionCount)

		name := filepath.Join(cfg.LogDir, fmt.Sprintf(LogFileNamePattern, time.Now().Format(LogFileTimestampFormat)))
		f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, LogFilePermission)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgFailedOpenLogFile, err)
		}
		logFile = f
		logger.InitLoggerWithWriter(logCfg, io.MultiWriter(os.Stdout, f))
	}

	slog.Info(LogMsgLoggingInitialized, "level", logCfg.LogLevel(), "format", cfg.LogFormat)
	slog.Info(LogMsgStartingFarmBot,
		"environment", cfg.Environment,
		"version", cfg.Version)
	slog.Debug(LogMsgConfigurationLoaded,
		"storage", storageKind(cfg),
		"data_dir", cfg.DataDir,
		"http_port", cfg.HTTPPort,
		"workers", cfg.WorkerCount,
		"status_tick", cfg.StatusTick,
		"alert_interval", cfg.AlertInterval)

	for _, w := range config.Warnings(cfg) {
		slog.Warn(LogMsgConfigWarning, "warning", w)
	}

	return logFile, nil
}

// cleanupLogs removes the oldest session logs so that at most keep remain.
// Session file names sort chronologically.
func cleanupLogs(logDir string, keep int) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}

	var logFiles []os.DirEntry
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), LogFileExtension) {
			logFiles = append(logFiles, entry)
		}
	}

	for i := 0; i < len(logFiles)-keep; i++ {
		if err := os.Remove(filepath.Join(logDir, logFiles[i].Name())); err != nil {
			slog.Warn(LogMsgFailedDeleteOldLog, "file", logFiles[i].Name(), "error", err)
		}
	}
}

func storageKind(cfg *config.Config) string {
	if cfg.UsePostgres() {
		return "postgres"
	}
	return "file"
}
