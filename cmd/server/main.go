package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/GriffinCanCode/filesystem-mcp/internal/infrastructure/config"
	"github.com/GriffinCanCode/filesystem-mcp/internal/infrastructure/server"
)

func main() {
	// Parse flags
	port := flag.String("port", "8123", "Server port")
	allowedRoot := flag.String("allowed-root", ".", "Directory all tool paths are confined to")
	configFile := flag.String("config", "", "YAML or TOML config file")
	dev := flag.Bool("dev", false, "Development mode (console logs, debug level)")
	flag.Parse()

	cfg, err := config.LoadFile(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Explicitly set flags override file and environment
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "port":
			cfg.Server.Port = *port
		case "allowed-root":
			cfg.Filesystem.AllowedRoot = *allowedRoot
		case "dev":
			cfg.Logging.Development = *dev
			if *dev {
				cfg.Logging.Level = "debug"
			}
		}
	})

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Run(); err != nil {
			errChan <- err
		}
	}()

	select {
	case <-sigChan:
		if err := srv.Close(); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	case err := <-errChan:
		_ = srv.Close()
		log.Fatalf("Server error: %v", err)
	}
}
