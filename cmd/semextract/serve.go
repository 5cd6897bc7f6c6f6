package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/c360studio/semstreams/component"
	"github.com/spf13/cobra"

	"github.com/c360studio/semextract/models"
	entityanalyzer "github.com/c360studio/semextract/processor/entity-analyzer"
)

func serveCmd() *cobra.Command {
	var (
		streamName   string
		consumerName string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the entity-analyzer stream processor",
		Long: `Serve consumes document analysis jobs from JetStream, analyzes each
document and publishes the resulting entities to the graph ingestion
stream. The command runs until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, streamName, consumerName)
		},
	}

	cmd.Flags().StringVar(&streamName, "stream", "DOCS", "JetStream stream carrying analysis jobs")
	cmd.Flags().StringVar(&consumerName, "consumer", "entity-analyzer", "Durable consumer name")

	return cmd
}

func runServe(cmd *cobra.Command, streamName, consumerName string) error {
	logger := slog.Default()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	models.InitGlobal(models.NewRegistry(cfg, logger))

	ctx := cmd.Context()
	nc, err := connectNATS(ctx, cfg.NATS.URL, logger)
	if err != nil {
		return err
	}
	defer nc.Close(ctx)

	componentConfig := entityanalyzer.DefaultConfig()
	componentConfig.StreamName = streamName
	componentConfig.ConsumerName = consumerName
	rawConfig, err := json.Marshal(componentConfig)
	if err != nil {
		return fmt.Errorf("marshal component config: %w", err)
	}

	discoverable, err := entityanalyzer.NewComponent(rawConfig, component.Dependencies{
		NATSClient: nc,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("create entity-analyzer: %w", err)
	}
	proc := discoverable.(*entityanalyzer.Component)

	signalCtx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := proc.Start(signalCtx); err != nil {
		return fmt.Errorf("start entity-analyzer: %w", err)
	}

	<-signalCtx.Done()
	logger.Info("Received shutdown signal")

	if err := proc.Stop(30 * time.Second); err != nil {
		logger.Error("Error stopping entity-analyzer", "error", err)
	}

	logger.Info("Semextract shutdown complete")
	return nil
}
