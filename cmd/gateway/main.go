package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/cuemby/kvstore/pkg/auth"
	"github.com/cuemby/kvstore/pkg/gateway"
	"github.com/cuemby/kvstore/pkg/gatewaycatalog"
	"github.com/cuemby/kvstore/pkg/log"
	"github.com/cuemby/kvstore/pkg/metrics"
)

var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "gateway",
	Short:   "kvstore gateway: HTTP front door for tenants, proxying to storage nodes",
	Version: Version,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("gateway version %s\nCommit: %s\n", Version, Commit))
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", true, "Output logs in JSON format")
	cobra.OnInitialize(initLogging)
	rootCmd.AddCommand(serveCmd)
}

func initLogging() {
	level, _ := rootCmd.PersistentFlags().GetString("log-level")
	jsonOutput, _ := rootCmd.PersistentFlags().GetBool("log-json")
	log.Init(log.Config{Level: log.Level(level), JSONOutput: jsonOutput})
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the gateway's HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		listenAddr, _ := cmd.Flags().GetString("listen-addr")
		metricsAddr, _ := cmd.Flags().GetString("metrics-addr")
		catalogDSN, _ := cmd.Flags().GetString("catalog-dsn")
		storageAddr, _ := cmd.Flags().GetString("storage-node-addr")
		privateKeyPath, _ := cmd.Flags().GetString("jwt-private-key")
		publicKeyPath, _ := cmd.Flags().GetString("jwt-public-key")

		privateKey, err := auth.LoadPrivateKey(privateKeyPath)
		if err != nil {
			return fmt.Errorf("load jwt private key: %w", err)
		}
		publicKey, err := auth.LoadPublicKey(publicKeyPath)
		if err != nil {
			return fmt.Errorf("load jwt public key: %w", err)
		}

		db, err := gatewaycatalog.Open(catalogDSN)
		if err != nil {
			return fmt.Errorf("open catalog database: %w", err)
		}
		defer db.Close()

		storageClient, err := gateway.NewStorageClient(storageAddr)
		if err != nil {
			return fmt.Errorf("connect to storage node %s: %w", storageAddr, err)
		}
		defer storageClient.Close()

		srv := gateway.NewServer(gateway.Config{
			Tenants:    gatewaycatalog.NewTenantRepo(db),
			Namespaces: gatewaycatalog.NewNamespaceRepo(db),
			Issuer:     auth.NewRSAIssuer(privateKey),
			Validator:  auth.NewRSAValidator(publicKey),
			Storage:    storageClient,
		})

		httpServer := &http.Server{
			Addr:    listenAddr,
			Handler: srv.Handler(),
		}

		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", metrics.Handler())
			if err := http.ListenAndServe(metricsAddr, mux); err != nil {
				log.WithComponent("gateway").Error().Err(err).Msg("metrics server error")
			}
		}()

		errCh := make(chan error, 1)
		go func() {
			log.WithComponent("gateway").Info().
				Str("listen_addr", listenAddr).Str("storage_node_addr", storageAddr).
				Msg("gateway listening")
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errCh <- err
			}
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

		select {
		case <-sigCh:
			log.WithComponent("gateway").Info().Msg("shutting down")
		case err := <-errCh:
			return fmt.Errorf("http server error: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(ctx)
	},
}

func init() {
	serveCmd.Flags().String("listen-addr", "127.0.0.1:8080", "HTTP listen address")
	serveCmd.Flags().String("metrics-addr", "127.0.0.1:9091", "Prometheus metrics listen address")
	serveCmd.Flags().String("catalog-dsn", "", "Postgres DSN for the tenant/namespace catalog (required)")
	serveCmd.Flags().String("storage-node-addr", "127.0.0.1:9443", "Storage node gRPC address")
	serveCmd.Flags().String("jwt-private-key", "", "Path to the RS256 private key (PEM) used to issue bearer tokens (required)")
	serveCmd.Flags().String("jwt-public-key", "", "Path to the RS256 public key (PEM) used to validate bearer tokens (required)")
	serveCmd.MarkFlagRequired("catalog-dsn")
	serveCmd.MarkFlagRequired("jwt-private-key")
	serveCmd.MarkFlagRequired("jwt-public-key")
}
