package entityanalyzer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"github.com/c360studio/semstreams/component"
	"github.com/c360studio/semstreams/natsclient"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/c360studio/semextract/analysis"
	"github.com/c360studio/semextract/graph"
	"github.com/c360studio/semextract/models"
)

// analyzerSchema defines the configuration schema.
var analyzerSchema = component.GenerateConfigSchema(reflect.TypeOf(Config{}))

// indexSubject is where analyzed documents are announced for downstream
// search indexing.
const indexSubject = "doc.index.request"

// Component implements the entity-analyzer processor.
type Component struct {
	name       string
	config     Config
	natsClient *natsclient.Client
	logger     *slog.Logger
	platform   component.PlatformMeta
	registry   *models.Registry
	handler    *Handler

	// Lifecycle management
	running   bool
	startTime time.Time
	mu        sync.RWMutex
	cancel    context.CancelFunc
	wg        sync.WaitGroup

	// Metrics
	documentsAnalyzed atomic.Int64
	entitiesEmitted   atomic.Int64
	errors            atomic.Int64
	lastActivityMu    sync.RWMutex
	lastActivity      time.Time
}

// NewComponent creates a new entity-analyzer processor component. The
// analysis stack comes from the global models registry.
func NewComponent(rawConfig json.RawMessage, deps component.Dependencies) (component.Discoverable, error) {
	var config Config
	if err := json.Unmarshal(rawConfig, &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Use default config if ports not set
	if config.Ports == nil {
		config = DefaultConfig()
		// Re-unmarshal to get user-provided values
		if err := json.Unmarshal(rawConfig, &config); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	c := &Component{
		name:       "entity-analyzer",
		config:     config,
		natsClient: deps.NATSClient,
		logger:     deps.GetLogger(),
		platform:   deps.Platform,
		registry:   models.Global(),
	}

	return c, nil
}

// Initialize prepares the component.
func (c *Component) Initialize() error {
	return nil
}

// Start begins processing analysis jobs.
func (c *Component) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return fmt.Errorf("component already running")
	}
	if c.natsClient == nil {
		c.mu.Unlock()
		return fmt.Errorf("NATS client required")
	}
	c.running = true
	c.startTime = time.Now()
	c.mu.Unlock()

	// Build the analyzer up front so a missing model fails the start
	// instead of the first job.
	if _, err := c.registry.Analyzer(ctx); err != nil {
		c.mu.Lock()
		c.running = false
		c.mu.Unlock()
		return fmt.Errorf("build analyzer: %w", err)
	}
	c.handler = NewHandler(c.registry, c.config.GetAnalysisTimeout(), c.logger)

	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.consumeMessages(runCtx)
	}()

	c.logger.Info("Entity analyzer started",
		"stream", c.config.StreamName,
		"consumer", c.config.ConsumerName)

	return nil
}

// consumeMessages processes incoming analysis jobs.
func (c *Component) consumeMessages(ctx context.Context) {
	js, err := c.natsClient.JetStream()
	if err != nil {
		c.logger.Error("Failed to get JetStream context", "error", err)
		return
	}

	consumer, err := js.Consumer(ctx, c.config.StreamName, c.config.ConsumerName)
	if err != nil {
		c.logger.Error("Failed to get consumer", "error", err, "stream", c.config.StreamName, "consumer", c.config.ConsumerName)
		return
	}

	c.logger.Info("Consumer connected", "stream", c.config.StreamName, "consumer", c.config.ConsumerName)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		msgs, err := consumer.Fetch(1, jetstream.FetchMaxWait(5*time.Second))
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			continue // Timeout, try again
		}

		for msg := range msgs.Messages() {
			select {
			case <-ctx.Done():
				// NAK the current message so it can be redelivered
				_ = msg.Nak()
				for remaining := range msgs.Messages() {
					_ = remaining.Nak()
				}
				return
			default:
				c.handleMessage(ctx, msg)
			}
		}
	}
}

// handleMessage processes a single analysis job.
func (c *Component) handleMessage(ctx context.Context, msg jetstream.Msg) {
	c.updateLastActivity()
	start := time.Now()

	var job JobPayload
	if err := json.Unmarshal(msg.Data(), &job); err != nil {
		c.logger.Warn("Failed to parse analysis job", "error", err)
		c.errors.Add(1)
		processingErrors.WithLabelValues("parse").Inc()
		_ = msg.Nak()
		return
	}
	if err := job.Validate(); err != nil {
		c.logger.Warn("Invalid analysis job", "error", err)
		c.errors.Add(1)
		processingErrors.WithLabelValues("validate").Inc()
		// Malformed jobs never become valid, drop them.
		_ = msg.Ack()
		return
	}

	c.logger.Info("Processing analysis job", "job_id", job.JobID_)

	result, err := c.handler.ProcessJob(ctx, &job)
	if err != nil {
		c.logger.Error("Failed to analyze document", "job_id", job.JobID_, "error", err)
		c.errors.Add(1)
		processingErrors.WithLabelValues("analyze").Inc()
		processingDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		if errors.Is(err, analysis.ErrMissingID) {
			// A document without an id never becomes analyzable, drop it.
			_ = msg.Ack()
			return
		}
		_ = msg.Nak()
		return
	}

	if result.Skipped() {
		_ = msg.Ack()
		processingDuration.WithLabelValues("skipped").Observe(time.Since(start).Seconds())
		return
	}

	// Publish extracted entities first, the document fragment last, so
	// graph consumers see a document's entities before its summary
	// properties.
	for _, entity := range result.Entities {
		if err := graph.PublishEntity(ctx, c.natsClient, entity, c.config.GetSource()); err != nil {
			c.logger.Error("Failed to publish entity", "entity_id", entity.ID, "error", err)
			c.errors.Add(1)
			processingErrors.WithLabelValues("publish").Inc()
			_ = msg.Nak()
			return
		}
		c.entitiesEmitted.Add(1)
		entitiesPublished.WithLabelValues(entity.Schema.Name).Inc()
	}
	if err := graph.PublishEntity(ctx, c.natsClient, result.Document, c.config.GetSource()); err != nil {
		c.logger.Error("Failed to publish document fragment", "entity_id", result.Document.ID, "error", err)
		c.errors.Add(1)
		processingErrors.WithLabelValues("publish").Inc()
		_ = msg.Nak()
		return
	}

	// Indexing is downstream best-effort; a failed notification never
	// fails the job.
	if err := c.notifyIndex(ctx, job.JobID_, result.Document.ID); err != nil {
		c.logger.Warn("Failed to request indexing", "entity_id", result.Document.ID, "error", err)
	}

	c.documentsAnalyzed.Add(1)
	documentsProcessed.Inc()
	processingDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())
	_ = msg.Ack()

	c.logger.Info("Document analyzed",
		"job_id", job.JobID_,
		"document", result.Document.ID,
		"entities", len(result.Entities))
}

// notifyIndex announces an analyzed document for search indexing.
func (c *Component) notifyIndex(ctx context.Context, jobID, entityID string) error {
	data, err := json.Marshal(map[string]string{
		"job_id":    jobID,
		"entity_id": entityID,
	})
	if err != nil {
		return fmt.Errorf("marshal index request: %w", err)
	}
	return c.natsClient.PublishToStream(ctx, indexSubject, data)
}

// updateLastActivity safely updates the last activity timestamp.
func (c *Component) updateLastActivity() {
	c.lastActivityMu.Lock()
	c.lastActivity = time.Now()
	c.lastActivityMu.Unlock()
}

// getLastActivity safely retrieves the last activity timestamp.
func (c *Component) getLastActivity() time.Time {
	c.lastActivityMu.RLock()
	defer c.lastActivityMu.RUnlock()
	return c.lastActivity
}

// Stop gracefully stops the component within the given timeout.
func (c *Component) Stop(timeout time.Duration) error {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return nil
	}

	if c.cancel != nil {
		c.cancel()
	}
	c.mu.Unlock()

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	var err error
	select {
	case <-done:
		// Graceful shutdown completed
	case <-time.After(timeout):
		err = fmt.Errorf("stop timed out after %v", timeout)
	}

	c.mu.Lock()
	c.running = false
	c.mu.Unlock()

	c.logger.Info("Entity analyzer stopped",
		"documents_analyzed", c.documentsAnalyzed.Load(),
		"entities_published", c.entitiesEmitted.Load(),
		"errors", c.errors.Load())

	return err
}

// Discoverable interface implementation

// Meta returns component metadata.
func (c *Component) Meta() component.Metadata {
	return component.Metadata{
		Name:        "entity-analyzer",
		Type:        "processor",
		Description: "Document entity analysis for knowledge graph population",
		Version:     "0.1.0",
	}
}

// InputPorts returns configured input port definitions.
func (c *Component) InputPorts() []component.Port {
	if c.config.Ports == nil {
		return []component.Port{}
	}

	ports := make([]component.Port, len(c.config.Ports.Inputs))
	for i, portDef := range c.config.Ports.Inputs {
		ports[i] = buildPort(portDef, component.DirectionInput)
	}
	return ports
}

// OutputPorts returns configured output port definitions.
func (c *Component) OutputPorts() []component.Port {
	if c.config.Ports == nil {
		return []component.Port{}
	}

	ports := make([]component.Port, len(c.config.Ports.Outputs))
	for i, portDef := range c.config.Ports.Outputs {
		ports[i] = buildPort(portDef, component.DirectionOutput)
	}
	return ports
}

// buildPort creates a component.Port from a PortDefinition.
func buildPort(portDef component.PortDefinition, direction component.Direction) component.Port {
	port := component.Port{
		Name:        portDef.Name,
		Direction:   direction,
		Required:    portDef.Required,
		Description: portDef.Description,
	}
	if portDef.Type == "jetstream" {
		port.Config = component.JetStreamPort{
			StreamName: portDef.StreamName,
			Subjects:   []string{portDef.Subject},
		}
	} else {
		port.Config = component.NATSPort{
			Subject: portDef.Subject,
		}
	}
	return port
}

// ConfigSchema returns the configuration schema.
func (c *Component) ConfigSchema() component.ConfigSchema {
	return analyzerSchema
}

// Health returns the current health status.
func (c *Component) Health() component.HealthStatus {
	c.mu.RLock()
	running := c.running
	startTime := c.startTime
	c.mu.RUnlock()

	return component.HealthStatus{
		Healthy:    running,
		LastCheck:  time.Now(),
		ErrorCount: int(c.errors.Load()),
		Uptime:     time.Since(startTime),
		Status:     c.getStatusString(running),
	}
}

// getStatusString returns a status string based on running state.
func (c *Component) getStatusString(running bool) string {
	if running {
		return "running"
	}
	return "stopped"
}

// DataFlow returns current data flow metrics.
func (c *Component) DataFlow() component.FlowMetrics {
	return component.FlowMetrics{
		MessagesPerSecond: 0,
		BytesPerSecond:    0,
		ErrorRate:         0,
		LastActivity:      c.getLastActivity(),
	}
}
