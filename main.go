package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"jethabot/config"
	"jethabot/provider"
	"jethabot/server"
	"jethabot/ui"
)

const (
	Version = "v0.01.00"
	License = "MIT"
)

func main() {
	serve := flag.Bool("serve", false, "Serve the HTTP session API instead of the terminal UI")
	listen := flag.String("listen", "", "Address for -serve (overrides settings.toml)")
	debug := flag.Bool("debug", false, "Write debug.log to the cache directory")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("jethabot %s (%s)\n", Version, License)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		if *serve {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}

		errorModal := ui.NewErrorModal("Configuration Error", fmt.Sprintf(
			"%v\n\nFix %s and relaunch jethabot.", err, config.GetSettingsFilePath()))
		p := tea.NewProgram(errorModal, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}

	if *listen != "" {
		cfg.ServerListen = *listen
	}

	config.InitDebugLog(config.GetCacheDir(), *debug)
	config.Debugf("Starting jethabot %s with provider %s (model %s)", Version, cfg.Provider, cfg.Model)

	connect := provider.ConnectorFor(cfg)

	if *serve {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := server.Run(ctx, cfg, connect); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	p := tea.NewProgram(
		ui.NewAppView(cfg, connect, Version, License),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
