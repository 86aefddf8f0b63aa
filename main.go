package main

import (
	"log/slog"
	"os"

	"github.com/aviaudio/chirpdata/cmd"
	"github.com/aviaudio/chirpdata/internal/conf"
	"github.com/aviaudio/chirpdata/internal/logging"
)

func main() {
	logging.Init()

	settings, err := conf.Load()
	if err != nil {
		logging.Fatal("error loading configuration", "error", err)
	}

	if settings.Debug {
		logging.SetLevel(slog.LevelDebug)
	}

	rootCmd := cmd.RootCommand(settings)
	if err := rootCmd.Execute(); err != nil {
		logging.Error("command failed", "error", err)
		os.Exit(1)
	}
}
