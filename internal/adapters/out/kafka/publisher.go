// Package kafka publishes saved rounds to a Kafka topic, one message per courier
// tour, keyed by courier id so that a courier's tours stay on one partition.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"routeplanner/internal/core/domain/model/kernel"
	"routeplanner/internal/core/domain/model/roadgraph"
	"routeplanner/internal/core/domain/model/tour"

	skafka "github.com/segmentio/kafka-go"
)

// EventType tags every message written by TourPublisher.
const EventType = "round.tour.saved"

// Writer is the part of *kafka.Writer the publisher needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...skafka.Message) error
	Close() error
}

// TourSavedEvent is the JSON payload of one message.
type TourSavedEvent struct {
	Type      string          `json:"type"`
	RoundID   string          `json:"roundId"`
	CourierID string          `json:"courierId"`
	Sequence  []string        `json:"sequence"`
	Stops     []StopEventPart `json:"stops"`
	Cost      float64         `json:"costMeters"`
	Optimal   bool            `json:"optimal"`
	Start     time.Time       `json:"start"`
	End       time.Time       `json:"end"`
}

type StopEventPart struct {
	Intersection string    `json:"intersection"`
	Arrival      time.Time `json:"arrival"`
	Departure    time.Time `json:"departure"`
}

// TourPublisher implements ports.TourPublisher on top of a kafka-go writer.
type TourPublisher struct {
	writer Writer
	logger *slog.Logger
}

// NewTourPublisher creates a publisher writing to topic on the given brokers.
//
// Example:
//
//	publisher := kafka.NewTourPublisher([]string{"localhost:9092"}, "rounds", slog.Default())
//	defer publisher.Close()
func NewTourPublisher(brokers []string, topic string, logger *slog.Logger) *TourPublisher {
	return NewTourPublisherWithWriter(&skafka.Writer{
		Addr:                   skafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &skafka.Hash{},
		AllowAutoTopicCreation: true,
	}, logger)
}

// NewTourPublisherWithWriter wraps an existing writer.
func NewTourPublisherWithWriter(writer Writer, logger *slog.Logger) *TourPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &TourPublisher{
		writer: writer,
		logger: logger.With("component", "TourPublisher"),
	}
}

// PublishRound writes all tours of the round in a single batch.
func (p *TourPublisher) PublishRound(ctx context.Context, roundID kernel.UUID, tours []*tour.Tour) error {
	if len(tours) == 0 {
		return nil
	}

	msgs := make([]skafka.Message, 0, len(tours))
	for _, t := range tours {
		value, err := json.Marshal(newTourSavedEvent(roundID, t))
		if err != nil {
			return fmt.Errorf("encode tour of courier %s: %w", t.CourierID(), err)
		}
		msgs = append(msgs, skafka.Message{
			Key:   []byte(t.CourierID().String()),
			Value: value,
			Headers: []skafka.Header{
				{Key: "event-type", Value: []byte(EventType)},
				{Key: "round-id", Value: []byte(roundID.String())},
			},
		})
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		p.logger.Error("failed to publish round", "round", roundID.String(), "error", err)
		return err
	}

	p.logger.Info("round published", "round", roundID.String(), "tours", len(msgs))
	return nil
}

// Close flushes and closes the underlying writer.
func (p *TourPublisher) Close() error {
	return p.writer.Close()
}

func newTourSavedEvent(roundID kernel.UUID, t *tour.Tour) TourSavedEvent {
	event := TourSavedEvent{
		Type:      EventType,
		RoundID:   roundID.String(),
		CourierID: t.CourierID().String(),
		Sequence:  idsToStrings(t.Sequence()),
		Cost:      t.Cost(),
		Optimal:   t.Optimal(),
		Start:     t.Start(),
		End:       t.End(),
	}
	for _, s := range t.Stops() {
		event.Stops = append(event.Stops, StopEventPart{
			Intersection: string(s.Intersection),
			Arrival:      s.Arrival,
			Departure:    s.Departure,
		})
	}
	return event
}

func idsToStrings(ids []roadgraph.IntersectionID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
