package main

import (
	"context"

	"github.com/courtkeep/courtkeep/internal/config"
	"github.com/courtkeep/courtkeep/internal/ui"
)

// App is the main application container. It owns the UI handle and forwards
// external events, currently just config file changes, into the event loop.
type App struct {
	ui            *ui.UI
	config        config.Config
	configUpdates chan config.Config
}

// NewApp returns a new application instance. To actually start the app you
// must call Start().
func NewApp(conf config.Config, configUpdates chan config.Config) *App {
	return &App{
		config:        conf,
		configUpdates: configUpdates,
	}
}

// Start blocks until the UI exits, routing config reloads from the file
// watcher into the UI in the meantime.
func (app *App) Start(ctx context.Context, done <-chan any) {
	for {
		select {
		case conf := <-app.configUpdates:
			app.config = conf
			if app.ui != nil {
				app.ui.Send(conf)
			}
		case <-ctx.Done():
			return
		case <-done:
			return
		}
	}
}

func (app *App) createUI(ctx context.Context, deps ui.Deps) *ui.UI {
	if app.ui == nil {
		app.ui = ui.New(ctx, app.config, deps)
	}

	return app.ui
}
