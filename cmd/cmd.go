// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print output",
		},
		&cli.BoolFlag{
			Name:  "save",
			Usage: "Cache results in the local database",
		},
	}
}

// setupCommand initializes config and database
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Initialize config file and lookup cache database",
		Flags:  []cli.Flag{configFlag()},
		Action: r.Setup,
	}
}

// serveCommand runs the HTTP relay
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the upstream relay server",
		Flags: []cli.Flag{
			configFlag(),
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on (overrides config)",
			},
		},
		Action: r.Serve,
	}
}

// authCommand handles the Spotify OAuth flow and status
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Spotify authentication",
		Commands: []*cli.Command{
			{
				Name:   "login",
				Usage:  "Authenticate with Spotify using OAuth2",
				Flags:  []cli.Flag{configFlag()},
				Action: r.AuthLogin,
			},
			{
				Name:   "status",
				Usage:  "Show stored credential state",
				Flags:  []cli.Flag{configFlag()},
				Action: r.AuthStatus,
			},
		},
	}
}

// artistsCommand handles Spotify artist lookups
func artistsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "artists",
		Usage: "Spotify artist operations",
		Commands: []*cli.Command{
			{
				Name:  "top",
				Usage: "List your top artists",
				Flags: append([]cli.Flag{
					configFlag(),
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of artists to return",
						Value: 20,
					},
				}, outputFlags()...),
				Action: r.ArtistsTop,
			},
			{
				Name:  "related",
				Usage: "List artists related to an artist ID",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  append([]cli.Flag{configFlag()}, outputFlags()...),
				Action: r.ArtistsRelated,
			},
		},
	}
}

// concertsCommand searches events across artists
func concertsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "concerts",
		Usage: "Search upcoming concerts for one or more artists",
		Arguments: []cli.Argument{
			&cli.StringArgs{Name: "artists", Min: 0, Max: -1},
		},
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:  "city",
				Usage: "Filter by city (substring match)",
			},
			&cli.StringFlag{
				Name:  "state",
				Usage: "Filter by state (substring match)",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Output format: text, json, csv, markdown",
				Value: "text",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print JSON output",
			},
			&cli.BoolFlag{
				Name:  "save",
				Usage: "Cache results in the local database",
			},
		},
		Action: r.Concerts,
	}
}

// flightsCommand searches flight offers
func flightsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "flights",
		Usage: "Search flight offers",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:     "origin",
				Aliases:  []string{"o"},
				Usage:    "Origin airport IATA code",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "destination",
				Aliases:  []string{"d"},
				Usage:    "Destination airport IATA code",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "date",
				Usage:    "Departure date (YYYY-MM-DD)",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "return",
				Usage: "Return date (YYYY-MM-DD) for round trips",
			},
			&cli.IntFlag{
				Name:  "adults",
				Usage: "Number of adult travelers",
				Value: 1,
			},
			&cli.IntFlag{
				Name:  "max",
				Usage: "Maximum number of offers to return",
				Value: 5,
			},
			&cli.FloatFlag{
				Name:  "max-price",
				Usage: "Hide offers above this price",
			},
			&cli.IntFlag{
				Name:  "max-stops",
				Usage: "Hide offers with more than this many stops",
			},
			&cli.StringFlag{
				Name:  "airport",
				Usage: "Only show offers touching this airport code",
			},
			&cli.StringFlag{
				Name:  "sort",
				Usage: "Sort order: price, price-desc, duration, stops",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Output format: text, json, csv",
				Value: "text",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print JSON output",
			},
			&cli.BoolFlag{
				Name:  "raw",
				Usage: "Print the unmodified provider response",
			},
		},
		Action: r.Flights,
	}
}

// cacheCommand inspects and manages the local lookup cache
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect the local lookup cache",
		Commands: []*cli.Command{
			{
				Name:  "artists",
				Usage: "Search cached artists by name",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:  "name",
						Usage: "Name fragment to search for",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results",
						Value: 20,
					},
				},
				Action: r.CacheArtists,
			},
			{
				Name:  "events",
				Usage: "List cached events for an artist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "artist"},
				},
				Flags:  []cli.Flag{configFlag()},
				Action: r.CacheEvents,
			},
			{
				Name:   "stats",
				Usage:  "Show cache row counts",
				Flags:  []cli.Flag{configFlag()},
				Action: r.CacheStats,
			},
			{
				Name:   "clear",
				Usage:  "Delete all cached rows",
				Flags:  []cli.Flag{configFlag()},
				Action: r.CacheClear,
			},
		},
	}
}

// tuiCommand launches the interactive UI
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Launch the interactive terminal UI",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:  "origin",
				Usage: "Home airport IATA code for flight searches",
				Value: "JFK",
			},
		},
		Action: r.TUI,
	}
}
