// cmd/retroterm/main.go
//
// Entry point for the retroterm client. Loads configuration from the user's
// config directory, opens the log file, and hands control to the TUI. The
// terminal belongs to bubbletea from then on; everything noteworthy goes to
// retroterm.log and the in-app activity panel.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/retroterm/retroterm/internal/config"
	"github.com/retroterm/retroterm/internal/logging"
	"github.com/retroterm/retroterm/internal/tui"
)

func main() {
	serverURL := flag.String("server", "", "backend base URL (overrides config)")
	configDir := flag.String("config-dir", "", "config directory (defaults to the user config dir)")
	flag.Parse()

	var cfg *config.Config
	var err error
	if *configDir != "" {
		cfg, err = config.LoadFrom(*configDir)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if *serverURL != "" {
		cfg.Server.BaseURL = *serverURL
	}

	logger, err := logging.New(cfg.Dir, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	logger.Info("starting retroterm", zap.String("server", cfg.Server.BaseURL))

	app, err := tui.NewApp(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
