// Command cellstore runs the cell store service and a small RPC client.
//
// Logging:
//   - Base logger is created here with output format and level
//   - Logger is passed to all components via dependency injection
//   - No global slog configuration (no slog.SetDefault)
//   - Components scope loggers with their own attributes
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	apiv1 "cellstore/api/gen/cellstore/v1"
	"cellstore/internal/config"
	"cellstore/internal/logging"
	"cellstore/internal/server"
	"cellstore/internal/store"
	storefile "cellstore/internal/store/file"
	storemem "cellstore/internal/store/memory"

	"connectrpc.com/connect"
)

var version = "dev"

func main() {
	baseHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug, // allow all levels; filtering done by ComponentFilterHandler
	})

	rootCmd := &cobra.Command{
		Use:   "cellstore",
		Short: "Chunked cell storage service",
	}

	serverCmd := &cobra.Command{
		Use:   "server",
		Short: "Start the cellstore service",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr, _ = cmd.Flags().GetString("addr")
			}
			if cmd.Flags().Changed("data") {
				cfg.DataDir, _ = cmd.Flags().GetString("data")
			}
			if cmd.Flags().Changed("store-type") {
				cfg.StoreType, _ = cmd.Flags().GetString("store-type")
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			level, err := config.ParseLevel(cfg.LogLevel)
			if err != nil {
				return err
			}
			filterHandler := logging.NewComponentFilterHandler(baseHandler, level)
			logger := slog.New(filterHandler)

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			return run(ctx, logger, cfg)
		},
	}
	serverCmd.Flags().String("config", "", "path to config file (JSON)")
	serverCmd.Flags().String("addr", ":50051", "listen address (host:port)")
	serverCmd.Flags().String("data", "data", "store directory for the file store")
	serverCmd.Flags().String("store-type", config.StoreTypeFile, "store type: file or memory")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}

	rootCmd.AddCommand(serverCmd, versionCmd)
	rootCmd.AddCommand(clientCommands()...)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig loads the config file when given, falling back to defaults.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	cfg, err := config.NewStore(path).Load()
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config file %s does not exist", path)
	}
	return cfg, nil
}

// run wires the backend, engine, and server, then blocks until the context
// is canceled or the server fails.
func run(ctx context.Context, logger *slog.Logger, cfg *config.Config) error {
	var backend store.Backend
	var closeBackend func() error

	switch cfg.StoreType {
	case config.StoreTypeFile:
		compression := storefile.CompressionNone
		if cfg.Compression == config.CompressionZstd {
			compression = storefile.CompressionZstd
		}
		fb, err := storefile.NewBackend(storefile.Config{
			Dir:         cfg.DataDir,
			Compression: compression,
			Logger:      logger,
		})
		if err != nil {
			return err
		}
		backend = fb
		closeBackend = fb.Close
	case config.StoreTypeMemory:
		logger.Warn("memory store selected; nothing will survive a restart")
		backend = storemem.NewBackend(storemem.Config{Logger: logger})
		closeBackend = func() error { return nil }
	default:
		return fmt.Errorf("unknown store_type %q", cfg.StoreType)
	}
	defer func() {
		if err := closeBackend(); err != nil {
			logger.Error("backend close failed", "error", err)
		}
	}()

	engine, err := store.NewEngine(store.Config{
		Backend:       backend,
		CacheSize:     cfg.CacheSize,
		SnapshotEvery: cfg.SnapshotEvery,
		Logger:        logger,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := engine.Close(); err != nil {
			logger.Error("engine close failed", "error", err)
		}
	}()

	srv := server.New(engine, server.Config{Logger: logger})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ServeTCP(cfg.Addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Stop(stopCtx); err != nil {
		return err
	}
	return <-errCh
}

// clientCommands builds the get/put/cput/delete verbs that talk to a
// running service.
func clientCommands() []*cobra.Command {
	var serverURL string

	newClient := func() *server.Client {
		return server.NewClient(serverURL)
	}

	getCmd := &cobra.Command{
		Use:   "get <row> <col>",
		Short: "Read one cell",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient().Storage.Get(cmd.Context(),
				connect.NewRequest(&apiv1.GetRequest{Row: args[0], Col: args[1]}))
			if err != nil {
				return clientError(err)
			}
			fmt.Println(resp.Msg.Val)
			return nil
		},
	}

	putCmd := &cobra.Command{
		Use:   "put <row> <col> <val>",
		Short: "Write one cell",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := newClient().Storage.Put(cmd.Context(),
				connect.NewRequest(&apiv1.PutRequest{Row: args[0], Col: args[1], Val: args[2]}))
			return clientError(err)
		},
	}

	cputCmd := &cobra.Command{
		Use:   "cput <row> <col> <expected> <new>",
		Short: "Write one cell only if its current value matches",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := newClient().Storage.CPut(cmd.Context(),
				connect.NewRequest(&apiv1.CPutRequest{Row: args[0], Col: args[1], Val1: args[2], Val2: args[3]}))
			return clientError(err)
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <row> <col>",
		Short: "Delete one cell",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := newClient().Storage.Delete(cmd.Context(),
				connect.NewRequest(&apiv1.DeleteRequest{Row: args[0], Col: args[1]}))
			return clientError(err)
		},
	}

	cmds := []*cobra.Command{getCmd, putCmd, cputCmd, deleteCmd}
	for _, cmd := range cmds {
		cmd.Flags().StringVar(&serverURL, "server", "http://localhost:50051", "base URL of the cellstore service")
	}
	return cmds
}

// clientError strips the connect wrapping down to a readable message.
func clientError(err error) error {
	if err == nil {
		return nil
	}
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return fmt.Errorf("%s: %s", connectErr.Code(), connectErr.Message())
	}
	return err
}
