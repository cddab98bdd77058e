package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/vibent/internal/services"
	"github.com/desertthunder/vibent/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)
	if os.Getenv("DEBUG") != "" {
		shared.SetLogLevel(logger, log.DebugLevel)
	}

	if err := shared.LoadDotenv(".env"); err != nil {
		logger.Warn("failed to load .env", "error", err)
	}

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}
	config.ApplyEnv()

	runner := NewRunner(RunnerOpts{
		Config:       config,
		Spotify:      services.NewSpotifyService(config.Credentials.Spotify.Map()),
		Ticketmaster: services.NewTicketmasterService(config.Credentials.Ticketmaster.APIKey),
		Amadeus:      services.NewAmadeusService(config.Credentials.Amadeus.ClientID, config.Credentials.Amadeus.ClientSecret),
		Logger:       logger,
	})

	app := &cli.Command{
		Name:     "vibent",
		Usage:    "Find concerts for your favorite artists and flights to get there",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
