package main

import (
	"log/slog"
	"os"

	"github.com/lk16/reversi/internal"
	"github.com/lk16/reversi/internal/config"
)

func main() {
	config.SetLogLevel()

	// Setup app
	app, cfg, services := internal.SetupApp()

	// Start server
	address := cfg.ServerHost + ":" + cfg.ServerPort
	err := app.Listen(address)

	services.Close()

	if err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
