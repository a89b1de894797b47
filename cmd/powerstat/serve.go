package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/krkonrad/Calculation-data/internal/certs"
	"github.com/krkonrad/Calculation-data/internal/cli"
	"github.com/krkonrad/Calculation-data/internal/config"
	"github.com/krkonrad/Calculation-data/internal/normalize"
	"github.com/krkonrad/Calculation-data/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the statistics over an HTTP JSON API",
		Long: `Serve the statistics over HTTP:

  GET /health               liveness
  GET /locations            location catalog, everyone last
  GET /summary              statistics for everyone
  GET /summary/{location}   statistics for one location (404 when it has no data)
  GET /metrics              Prometheus metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			metrics := server.NewMetrics()
			ds, err := openDataset(cfg, normalize.WithDropObserver(metrics.ObserveDrop))
			if err != nil {
				return err
			}

			opts := []server.Option{
				server.WithLogger(slog.Default()),
				server.WithAccessLog(cmd.ErrOrStderr()),
				server.WithWholeLabel(cfg.WholeLabel),
			}
			if viper.GetBool("server.tls") {
				certDir := config.ExpandPath(viper.GetString("server.cert_dir"))
				tlsConfig, err := certs.NewFileManager(certDir).TLSConfig()
				if err != nil {
					return err
				}
				opts = append(opts, server.WithTLS(tlsConfig))
			}

			srv := server.New(ds, metrics, opts...)

			interrupts := cli.NewInterruptHandler(cmd.ErrOrStderr())
			ctx := interrupts.HandleInterrupts(cmd.Context(), "Server")

			if err := srv.Warm(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), cli.RenderBox("powerstat API", listenBanner(cfg.ServerAddr, viper.GetBool("server.tls"))))
			return srv.ListenAndServe(ctx, cfg.ServerAddr)
		},
	}

	cmd.Flags().String("addr", ":8080", "listen address")
	cmd.Flags().Bool("tls", false, "serve HTTPS with a self-signed localhost certificate")
	cmd.Flags().String("cert-dir", filepath.Join("~", ".config", "powerstat", "certs"), "directory holding the localhost certificate")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("server.tls", cmd.Flags().Lookup("tls"))
	_ = viper.BindPFlag("server.cert_dir", cmd.Flags().Lookup("cert-dir"))

	return cmd
}

func listenBanner(addr string, tls bool) string {
	scheme := "http"
	if tls {
		scheme = "https"
	}
	host := addr
	if strings.HasPrefix(addr, ":") {
		host = "localhost" + addr
	}
	return fmt.Sprintf("Listening on %s://%s\nMetrics at %s://%s/metrics\nPress Ctrl+C to stop", scheme, host, scheme, host)
}
