package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/fang"
	"github.com/courtkeep/courtkeep/internal/config"
	"github.com/courtkeep/courtkeep/internal/export"
	"github.com/courtkeep/courtkeep/internal/game"
	"github.com/courtkeep/courtkeep/internal/persist"
	"github.com/courtkeep/courtkeep/internal/render"
	"github.com/courtkeep/courtkeep/internal/share"
	"github.com/courtkeep/courtkeep/internal/ui"
	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"
)

var (
	BuildVersion   = "master"
	BuildCommit    = "00000000"
	BuildDate      = time.Now().Format("2006-01-02T15:04:05Z")
	BuildGoVersion = runtime.Version()
	cfgFile        string
	rootCmd        = &cobra.Command{
		Use:   "courtkeep",
		Short: "Two team scorekeeper TUI",
		Long:  `courtkeep - a pickup basketball scorekeeper with per-player box scores and shareable images`,
		RunE:  run,
	}

	versionCmd = &cobra.Command{
		Use:               "version",
		Short:             "Print version information",
		Long:              "Print detailed version information about courtkeep",
		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		Run:               version,
	}
)

var errApp = errors.New("application error")

func main() {
	configPath := config.Path(config.DefaultConfigName)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", configPath,
		"Config file path")
	rootCmd.AddCommand(versionCmd)

	if err := fang.Execute(context.Background(), rootCmd); err != nil {
		slog.Error("Exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func version(_ *cobra.Command, _ []string) {
	fmt.Printf("courtkeep - scorekeeper TUI\n\n") //nolint:forbidigo
	fmt.Printf("  Version: %s\n", BuildVersion)   //nolint:forbidigo
	fmt.Printf("  Commit:  %s\n", BuildCommit)    //nolint:forbidigo
	fmt.Printf("  Built:   %s\n", BuildDate)      //nolint:forbidigo
	fmt.Printf("  Runtime: %s\n\n", BuildGoVersion) //nolint:forbidigo
}

// run is the main entry point of courtkeep.
func run(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	// If PROFILE is set, it will be used as the output file path for the profiler.
	if len(os.Getenv("PROFILE")) > 0 {
		f, err := os.Create(os.Getenv("PROFILE"))
		if err != nil {
			return errors.Join(err, errApp)
		}

		if errStart := pprof.StartCPUProfile(f); errStart != nil {
			return errors.Join(errStart, errApp)
		}
		defer pprof.StopCPUProfile()
	}

	// Make sure our config & data home exists.
	if err := os.MkdirAll(path.Join(xdg.ConfigHome, config.ConfigDirName), 0o750); err != nil {
		return errors.Join(err, errApp)
	}

	configUpdates := make(chan config.Config)

	loader := config.NewLoader(configUpdates)
	userConfig, errConfig := loader.Read()
	if errConfig != nil {
		return errors.Join(errConfig, errApp)
	}

	// Setup file based logger. This is very useful for us as our console is taken over by the ui.
	level := slog.LevelInfo
	if userConfig.Debug {
		level = slog.LevelDebug
	}
	logFile, errLogger := config.LoggerInit(config.DefaultLogName, level)
	if errLogger != nil {
		return errors.Join(errLogger, errApp)
	}

	defer func(closer io.Closer) {
		if err := closer.Close(); err != nil {
			slog.Error("Failed to close log file", slog.String("error", err.Error()))
		}
	}(logFile)

	slog.Info("Starting courtkeep", slog.String("version", BuildVersion),
		slog.String("commit", BuildCommit), slog.String("date", BuildDate),
		slog.String("go", runtime.Version()))

	// Setup the persistence layer. Ephemeral mode keeps everything in memory,
	// nothing survives exit.
	var store persist.Store
	if userConfig.Ephemeral {
		store = persist.NewMemoryStore()
	} else {
		database, errDB := persist.Open(ctx, config.PathData(config.DefaultDBName), true)
		if errDB != nil {
			return errors.Join(errDB, errApp)
		}

		defer func() {
			if err := database.Close(); err != nil {
				slog.Error("Error closing database", slog.String("error", err.Error()))
			}
		}()

		store = database
	}

	// Restore the last session, falling back to a fresh setup on first run or
	// a corrupted snapshot.
	state, restored := persist.LoadState(ctx, store)
	if restored {
		slog.Info("Restored previous session", slog.String("phase", state.Phase))
	}

	currentGame := game.FromState(state, game.WithSink(func(snapshot persist.State) {
		persist.SaveState(ctx, store, snapshot)
	}))

	preparer := share.NewPreparer(render.NewChrome(userConfig.ChromeURL))
	exporter := export.New(userConfig.ShareCommand, userConfig.SaveDir)

	app := NewApp(userConfig, configUpdates)

	done := make(chan any)

	go func() {
		userInterface := app.createUI(ctx, ui.Deps{
			Game:         currentGame,
			Store:        store,
			Preparer:     preparer,
			Exporter:     exporter,
			Writer:       loader,
			BuildVersion: BuildVersion,
			BuildDate:    BuildDate,
			BuildCommit:  BuildCommit,
		})
		if err := userInterface.Run(); err != nil {
			slog.Error("Failed to run UI", slog.String("error", err.Error()))
		}

		done <- "buzzer"
	}()

	app.Start(ctx, done)

	return nil
}
