package main

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"

	"github.com/cuemby/kvstore/internal/storagepb"
	"github.com/cuemby/kvstore/pkg/auth"
	"github.com/cuemby/kvstore/pkg/catalog"
	"github.com/cuemby/kvstore/pkg/log"
	"github.com/cuemby/kvstore/pkg/metrics"
	"github.com/cuemby/kvstore/pkg/rpcauth"
	"github.com/cuemby/kvstore/pkg/storageservice"
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
	Use:     "storagenode",
	Short:   "kvstore storage node: partitioned, tenant-scoped key-value storage over gRPC",
	Version: Version,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("storagenode version %s\nCommit: %s\n", Version, Commit))
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
	Short: "Start the storage node's gRPC server",
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, _ := cmd.Flags().GetString("data-dir")
		listenAddr, _ := cmd.Flags().GetString("listen-addr")
		metricsAddr, _ := cmd.Flags().GetString("metrics-addr")
		publicKeyPath, _ := cmd.Flags().GetString("jwt-public-key")

		publicKey, err := auth.LoadPublicKey(publicKeyPath)
		if err != nil {
			return fmt.Errorf("load jwt public key: %w", err)
		}
		validator := auth.NewRSAValidator(publicKey)

		lookup, err := catalog.Load(dataDir)
		if err != nil {
			return fmt.Errorf("load partition catalog: %w", err)
		}

		svc := storageservice.New(lookup)

		grpcServer := grpc.NewServer(grpc.UnaryInterceptor(rpcauth.AuthInterceptor(validator)))
		storagepb.RegisterStorageServer(grpcServer, svc)

		lis, err := net.Listen("tcp", listenAddr)
		if err != nil {
			return fmt.Errorf("listen on %s: %w", listenAddr, err)
		}

		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", metrics.Handler())
			if err := http.ListenAndServe(metricsAddr, mux); err != nil {
				log.WithComponent("storagenode").Error().Err(err).Msg("metrics server error")
			}
		}()

		errCh := make(chan error, 1)
		go func() {
			log.WithComponent("storagenode").Info().
				Str("listen_addr", listenAddr).Str("data_dir", dataDir).
				Msg("storage node listening")
			if err := grpcServer.Serve(lis); err != nil {
				errCh <- err
			}
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

		select {
		case <-sigCh:
			log.WithComponent("storagenode").Info().Msg("shutting down")
		case err := <-errCh:
			return fmt.Errorf("grpc server error: %w", err)
		}

		grpcServer.GracefulStop()
		return nil
	},
}

func init() {
	serveCmd.Flags().String("data-dir", "./kvstore-data", "Directory holding the partition catalog and engine files")
	serveCmd.Flags().String("listen-addr", "127.0.0.1:9443", "gRPC listen address")
	serveCmd.Flags().String("metrics-addr", "127.0.0.1:9090", "Prometheus metrics listen address")
	serveCmd.Flags().String("jwt-public-key", "", "Path to the RS256 public key (PEM) used to validate bearer tokens (required)")
	serveCmd.MarkFlagRequired("jwt-public-key")
}
