// cmd/audiotekameta/serve.go
package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/valpere/audiotekameta/internal/server"
)

func newServeCmd(configFile *string) *cobra.Command {
	var o overrides

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP search endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configFile, o)
			if err != nil {
				return err
			}
			a, err := newApp(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			srv := server.New(server.Config{
				Port:            cfg.Server.Port,
				ReadTimeout:     cfg.Server.ReadTimeout,
				WriteTimeout:    cfg.Server.WriteTimeout,
				ShutdownTimeout: cfg.Server.ShutdownTimeout,
				Language:        cfg.Catalog.Language,
				AddBacklink:     cfg.Description.AddBacklink,
				Version:         version,
			}, a.provider, a.logger, a.metrics)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}

	cmd.Flags().IntVarP(&o.port, "port", "p", 0, "listen port (overrides config and PORT)")
	cmd.Flags().StringVarP(&o.language, "language", "l", "", "catalog language: pl or cz")
	return cmd
}
