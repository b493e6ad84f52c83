package config

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path"

	"github.com/adrg/xdg"
)

var (
	errConfigWrite = errors.New("failed to write config file")
	errConfigRead  = errors.New("failed to read config file")
	errLoggerInit  = errors.New("failed to initialize logger")
)

const (
	ConfigDirName     = "courtkeep"
	DefaultConfigName = "courtkeep"
	DefaultDBName     = "courtkeep.db"
	DefaultLogName    = "courtkeep.log"
	EnvPrefix         = "courtkeep"
)

type Config struct {
	// ChromeURL points at a Chrome remote debugging endpoint used to render
	// share images. When empty, a local headless Chrome is launched per
	// render instead.
	ChromeURL string `mapstructure:"chrome_url"`
	// ShareCommand is an optional program invoked with (title, png path)
	// when sharing. Without it, sharing falls back to saving the file.
	ShareCommand string `mapstructure:"share_command"`
	// SaveDir overrides where shared images are written. Defaults to the
	// XDG download directory.
	SaveDir string `mapstructure:"save_dir"`
	// Ephemeral keeps game state in memory only; nothing survives exit.
	Ephemeral bool `mapstructure:"ephemeral"`
	Debug     bool `mapstructure:"debug"`
	FPS       int  `mapstructure:"fps"`
}

// Path generates a path pointing to the filename under this apps defined $XDG_CONFIG_HOME.
func Path(name string) string {
	fullPath, errFullPath := xdg.ConfigFile(path.Join(ConfigDirName, name))
	if errFullPath != nil {
		panic(errFullPath)
	}

	return fullPath
}

// PathData returns a path for durable data under $XDG_DATA_HOME.
func PathData(name string) string {
	fullPath, errFullPath := xdg.DataFile(path.Join(ConfigDirName, name))
	if errFullPath != nil {
		panic(errFullPath)
	}

	return fullPath
}

// LoggerInit sets up the slog global handler to use a log file as we cant print to the console.
func LoggerInit(logPath string, level slog.Level) (io.Closer, error) {
	logFile, errLogFile := os.Create(path.Join(xdg.ConfigHome, ConfigDirName, logPath))
	if errLogFile != nil {
		return nil, errors.Join(errLogFile, errLoggerInit)
	}

	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{
		AddSource: false,
		Level:     level,
	}))

	slog.SetDefault(logger)

	return logFile, nil
}
