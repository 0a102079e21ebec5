package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "dfamin"
	configFolderPath = "."

	envPrefix = "DFAMIN"

	configFlagName      = "config"
	formatFlagName      = "format"
	inputFormatFlagName = "input-format"
	outputFlagName      = "output"
	parallelFlagName    = "parallel"
	verifyFlagName      = "verify"
	statsFlagName       = "stats"
	minimizedFlagName   = "minimized"
	diffFlagName        = "diff"
	logFileFlagName     = "log-file"
	verboseFlagName     = "verbose"

	outputFormatKey = "output.format"
	inputFormatKey  = "input.format"
	parallelKey     = "minimize.parallel"
	verifyKey       = "minimize.verify"

	defaultOutputFormat = "xml"
	defaultInputFormat  = ""
	defaultParallel     = 1
	defaultVerify       = false

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".dfamin.log"
	defaultLogLevel      = "info"
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

// newConfig returns a viper instance with defaults and environment lookup in place. The
// config file is read later by loadConfig, once flags are parsed.
func newConfig() *viper.Viper {
	v := viper.New()
	v.SetConfigName(configBaseName)
	v.SetConfigType("yaml")
	v.AddConfigPath(configFolderPath)
	v.AutomaticEnv()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	v.SetDefault(configVersionKey, currentConfigVersion)
	v.SetDefault(outputFormatKey, defaultOutputFormat)
	v.SetDefault(inputFormatKey, defaultInputFormat)
	v.SetDefault(parallelKey, defaultParallel)
	v.SetDefault(verifyKey, defaultVerify)

	// Logging defaults (used by config/env and as fallbacks for flags).
	v.SetDefault(logFilenameKey, defaultLogFilename)
	v.SetDefault(logLevelKey, defaultLogLevel)
	v.SetDefault(logVerboseKey, defaultLogVerbose)
	v.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	v.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	v.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	v.SetDefault(logCompressKey, defaultLogCompress)

	return v
}

// loadConfig reads path, or dfamin.yaml from the working directory when path is empty.
// A missing default file is not an error; a missing explicit file is.
func loadConfig(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	if version := v.GetInt(configVersionKey); version != currentConfigVersion {
		return fmt.Errorf("unsupported config version %d", version)
	}
	return nil
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger builds the run logger writing to a rotating file. It logs at the
// configured level, or at Debug when verbose is set. Every record carries the run id.
func configureLogger(v *viper.Viper) (*slog.Logger, *lumberjack.Logger) {
	logPath := strings.TrimSpace(v.GetString(logFilenameKey))
	if logPath == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if v.GetBool(logVerboseKey) {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(v.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    v.GetInt(logMaxSizeKey),
		MaxBackups: v.GetInt(logMaxBackupsKey),
		MaxAge:     v.GetInt(logMaxAgeKey),
		Compress:   v.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: logLevel,
	})

	logger := slog.New(handler).With(slog.String("run_id", uuid.Must(uuid.NewV7()).String()))
	return logger, logWriter
}
