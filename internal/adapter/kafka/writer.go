package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/predict-dashboard-service/internal/config"
	"github.com/couchcryptid/predict-dashboard-service/internal/domain"
	"github.com/couchcryptid/predict-dashboard-service/internal/pipeline"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
)

// AssessmentEvent is the wire form of a settled assessment.
type AssessmentEvent struct {
	EventID        string        `json:"event_id"`
	Kind           domain.Kind   `json:"kind"`
	Token          uint64        `json:"token"`
	Origin         domain.Origin `json:"origin"`
	Degraded       bool          `json:"degraded"`
	Tier           domain.Tier   `json:"tier"`
	PrimaryMetric  float64       `json:"primary_metric"`
	District       string        `json:"district,omitempty"`
	Recommendation string        `json:"recommendation"`
	SettledAt      time.Time     `json:"settled_at"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Writer publishes settled assessments to a Kafka topic.
// It implements pipeline.Publisher.
type Writer struct {
	writer messageWriter
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured assessment topic.
// Messages are keyed by district so one district's events stay ordered.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish writes one settlement as an AssessmentEvent.
func (w *Writer) Publish(ctx context.Context, s pipeline.Settlement) error {
	event := newEvent(s)
	msg, err := serializeToMessage(event)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s assessment: %w", s.Kind, err)
	}
	w.logger.Debug("assessment published",
		"event_id", event.EventID,
		"kind", event.Kind,
		"token", event.Token,
	)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

func newEvent(s pipeline.Settlement) AssessmentEvent {
	r := s.Assessment.Result
	district := s.Assessment.District
	if district == "" {
		district = r.Meta.District
	}
	return AssessmentEvent{
		EventID:        uuid.NewString(),
		Kind:           s.Kind,
		Token:          s.Token,
		Origin:         r.Origin,
		Degraded:       s.Assessment.Degraded,
		Tier:           r.Tier,
		PrimaryMetric:  r.PrimaryMetric,
		District:       district,
		Recommendation: r.Recommendation,
		SettledAt:      s.SettledAt.UTC(),
	}
}

// serializeToMessage marshals an AssessmentEvent into a Kafka message.
func serializeToMessage(event AssessmentEvent) (kafkago.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize assessment event: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(event.District),
		Value: data,
		Time:  event.SettledAt,
		Headers: []kafkago.Header{
			{Key: "kind", Value: []byte(event.Kind)},
			{Key: "origin", Value: []byte(event.Origin)},
			{Key: "event_id", Value: []byte(event.EventID)},
		},
	}, nil
}
