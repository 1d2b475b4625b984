package main

import (
	"log/slog"

	backend "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/aprenda/tutor"
	"github.com/aprenda/tutor/internal/logging"
	redisAdapter "github.com/aprenda/tutor/pkg/adapters/redis"
	"github.com/aprenda/tutor/pkg/lessonspec"
)

// buildEngine assembles a tutor engine from the command's flags: in-memory
// stores by default, Redis persistence plus distributed locking when --redis
// is set.
func buildEngine(cmd *cobra.Command, topicsPath string) (*tutor.Engine, *slog.Logger, error) {
	debug, _ := cmd.Flags().GetBool("debug")
	redisAddr, _ := cmd.Flags().GetString("redis")

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := logging.New(level)

	opts := []tutor.Option{tutor.WithLogger(logger)}

	if topicsPath != "" {
		catalog, err := lessonspec.LoadCatalog(topicsPath)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, tutor.WithCatalog(catalog))
	}

	if redisAddr != "" {
		client := backend.NewClient(&backend.Options{Addr: redisAddr})
		opts = append(opts,
			tutor.WithSessionStore(redisAdapter.NewSessionStore(client)),
			tutor.WithSimulatorStore(redisAdapter.NewSimulatorStore(client, redisAdapter.WithPrefix("tutor:simulator:"))),
			tutor.WithLocker(redisAdapter.NewLocker(client, "tutor:lock:")),
		)
		logger.Info("Using Redis session persistence", "addr", redisAddr)
	}

	engine, err := tutor.New(opts...)
	if err != nil {
		return nil, nil, err
	}
	return engine, logger, nil
}
