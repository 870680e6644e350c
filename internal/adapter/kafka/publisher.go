package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/reservoir-dashboard/internal/config"
	"github.com/couchcryptid/reservoir-dashboard/internal/presenter"
)

// Publisher produces one message per rendered dashboard.
// It implements pipeline.Renderer.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured sink topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger}
}

func (p *Publisher) Name() string { return "kafka" }

// Render publishes the dashboard snapshot keyed by its run id.
func (p *Publisher) Render(ctx context.Context, d presenter.Dashboard) error {
	msg, err := serializeToMessage(d)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish dashboard %s: %w", d.RunID, err)
	}
	p.logger.Debug("dashboard published", "run_id", d.RunID, "topic", p.writer.Topic)
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals a Dashboard into a Kafka message.
func serializeToMessage(d presenter.Dashboard) (kafkago.Message, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize dashboard: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(d.RunID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "generated_at", Value: []byte(d.GeneratedAt.Format(time.RFC3339))},
			{Key: "total_records", Value: []byte(strconv.Itoa(d.KPIs.TotalRecords))},
		},
	}, nil
}
