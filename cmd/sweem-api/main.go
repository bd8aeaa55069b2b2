// Command sweem-api serves the clients, projects and users API.
//
// @title        Sweem API
// @version      1.0
// @description  Clients, projects and users with paginated CRUD and referential integrity.
// @BasePath     /
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	_ "github.com/sweem/sweem-api/docs"
	"github.com/sweem/sweem-api/internal/pkg/config"
	"github.com/sweem/sweem-api/pkg/logger"
)

const serviceName = "sweem-api"

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

// app carries what every subcommand needs once the root has initialised.
type app struct {
	cfg *config.Config
	log zerolog.Logger
}

func main() {
	a := &app{}

	root := &cobra.Command{
		Use:           serviceName,
		Short:         "Clients, projects and users API",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Context())
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = logger.Init(logger.Options{
				Level:   cfg.LogLevel,
				Pretty:  cfg.IsDevelopment(),
				Service: serviceName,
				Version: version,
			})
			return nil
		},
	}

	serve := newServeCmd(a)
	// Running the binary without a subcommand serves.
	root.RunE = serve.RunE

	root.AddCommand(serve)
	root.AddCommand(newMigrateCmd(a))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
