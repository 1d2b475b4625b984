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
	"gopkg.in/yaml.v3"

	httpAdapter "github.com/aprenda/tutor/pkg/adapters/http"
)

// serveConfig is the optional YAML config file for the server.
type serveConfig struct {
	Port   string `yaml:"port"`
	Redis  string `yaml:"redis"`
	Topics string `yaml:"topics"`
}

func loadServeConfig(path string) (*serveConfig, error) {
	cfg := &serveConfig{}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Starts the tutor engine in server mode, exposing the learning and simulator orchestrators over a JSON API.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := loadServeConfig(configPath)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}

		// Flags win over config file values.
		port, _ := cmd.Flags().GetString("port")
		if !cmd.Flags().Changed("port") && cfg.Port != "" {
			port = cfg.Port
		}
		if !cmd.Flags().Changed("redis") && cfg.Redis != "" {
			_ = cmd.Flags().Set("redis", cfg.Redis)
		}
		topicsPath, _ := cmd.Flags().GetString("topics")
		if !cmd.Flags().Changed("topics") && cfg.Topics != "" {
			topicsPath = cfg.Topics
		}

		engine, logger, err := buildEngine(cmd, topicsPath)
		if err != nil {
			fmt.Printf("Error initializing tutor: %v\n", err)
			os.Exit(1)
		}

		handler := httpAdapter.NewHandler(engine, httpAdapter.WithLogger(logger))

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting Tutor Server on %s\n", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Tutor Server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().StringP("config", "c", "", "Path to YAML config file")
	serveCmd.Flags().String("topics", "", "Path to a topic catalog file (default: embedded catalog)")
}
