// Command spatiod is the spatio server: it loads configuration, builds the
// collection store and command registry, and serves RESP over TCP.
package main

import (
	"fmt"
	"log"
	"net"
	"os"

	"github.com/spf13/cobra"

	"github.com/kass/spatio/internal/command"
	"github.com/kass/spatio/internal/config"
	"github.com/kass/spatio/internal/server"
	"github.com/kass/spatio/internal/store"
)

var (
	host       string
	port       int
	logLevel   string
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "spatiod",
	Short: "spatio: a networked, in-memory geospatial key-value store",
	Long:  `spatiod serves RESP commands over TCP backed by a per-collection R-tree spatial index.`,
	RunE:  runServer,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&host, "host", "", "bind address (overrides config file)")
	rootCmd.PersistentFlags().IntVar(&port, "port", 0, "bind port (overrides config file)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "trace|debug|info|warn|error")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if host != "" {
		cfg.Server.Host = host
	}
	if port != 0 {
		cfg.Server.Port = port
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	logger := log.New(os.Stderr, "spatiod ", log.LstdFlags)
	logger.Printf("starting with log level %s", cfg.Logging.Level)

	s := store.New(cfg.Storage.MaxEntries)
	registry := command.NewRegistry(s)
	srv := server.New(registry, logger)

	addr := net.JoinHostPort(cfg.Server.Host, fmt.Sprintf("%d", cfg.Server.Port))
	if err := srv.ListenAndServe(addr); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}
