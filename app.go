package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

const (
	ConfigFile = "./config.yml"
	EnvFile    = "./config.env"
)

type AppProvider interface {
	Run() error
	Clean()
}

type App struct {
	logger   *zap.Logger
	config   *Config
	shell    *Shell
	cleanups []func() error
}

// NewApp provides an instance of App wired to the standard input and output.
func NewApp() (AppProvider, error) {
	config, err := LoadAndInitConfigs(ConfigFile, EnvFile, GitCommit, GitTag, BuildTime)
	if err != nil {
		return nil, fmt.Errorf("failed to setup app configuration: %w", err)
	}
	app, err := NewAppWithConfig(config, os.Stdin, os.Stdout)
	if err != nil {
		return nil, err
	}
	return app, nil
}

// NewAppWithConfig builds the logging, the storage and the shell from the given config.
func NewAppWithConfig(config *Config, in io.Reader, out io.Writer) (*App, error) {
	// ensure the logs folder exists and Setup the logging module.
	err := os.MkdirAll(config.LogFolder, 0o700)
	if err != nil {
		return nil, fmt.Errorf("failed to create logging folder: %s", err)
	}
	clock := NewClock(config.IsProduction)
	logWriter := NewRSyncWriter(config, clock)
	logger, flusher := SetupLogging(config, logWriter, NewTickClock(clock))

	// Setup the storage selected by the configuration.
	store, err := NewLibraryStore(logger, config)
	if err != nil {
		_ = flusher()
		_ = logWriter.Close()
		return nil, fmt.Errorf("failed to setup %s storage: %w", config.Storage.Driver, err)
	}

	libraryService := NewLibraryService(logger, config, store)
	shell := NewShell(logger, in, out, NewIDsHandler(), libraryService)

	return &App{
		logger: logger,
		config: config,
		shell:  shell,
		cleanups: []func() error{
			store.Close,
			flusher,
			logWriter.Close,
		},
	}, nil
}

// Run loads the library and serves the shell until the user exits or
// an interrupt signal is received.
func (app *App) Run() error {
	defer app.Clean()
	nCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app.logger.Info("library manager starting",
		zap.String("app.storage", app.config.Storage.Driver),
	)
	library := app.shell.LoadLibrary(nCtx)
	err := app.shell.Run(nCtx, library)
	app.logger.Info("library manager stopped", zap.Error(err))
	return err
}

// Clean calls all registered cleanups functions.
func (app *App) Clean() {
	var errs []error
	for _, f := range app.cleanups {
		errs = append(errs, f())
	}
	if err := errors.Join(errs...); err != nil {
		fmt.Fprintln(os.Stderr, "error during cleanup:", err)
	}
}
