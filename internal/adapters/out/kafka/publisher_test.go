package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"routeplanner/internal/adapters/out/kafka"
	"routeplanner/internal/core/domain/model/kernel"
	"routeplanner/internal/core/domain/model/tour"
	"routeplanner/internal/core/ports"

	skafka "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWriter records the messages written.
type fakeWriter struct {
	msgs   []skafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...skafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

var _ ports.TourPublisher = (*kafka.TourPublisher)(nil)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTourPublisher_PublishRound(t *testing.T) {
	start := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	roundID := kernel.NewUUID()

	t.Run("one keyed message per tour", func(t *testing.T) {
		// Given
		fw := &fakeWriter{}
		p := kafka.NewTourPublisherWithWriter(fw, quietLogger())
		first, err := tour.NewIdleTour(kernel.NewUUID(), "W", start)
		require.NoError(t, err)
		second, err := tour.NewIdleTour(kernel.NewUUID(), "W", start)
		require.NoError(t, err)

		// When
		err = p.PublishRound(context.Background(), roundID, []*tour.Tour{first, second})

		// Then
		require.NoError(t, err)
		require.Len(t, fw.msgs, 2)
		assert.Equal(t, first.CourierID().String(), string(fw.msgs[0].Key))

		var event kafka.TourSavedEvent
		require.NoError(t, json.Unmarshal(fw.msgs[1].Value, &event))
		assert.Equal(t, kafka.EventType, event.Type)
		assert.Equal(t, roundID.String(), event.RoundID)
		assert.Equal(t, second.CourierID().String(), event.CourierID)
		assert.Equal(t, []string{"W", "W"}, event.Sequence)
		assert.True(t, event.Optimal)
		assert.True(t, event.Start.Equal(start))

		require.Len(t, fw.msgs[0].Headers, 2)
		assert.Equal(t, roundID.String(), string(fw.msgs[0].Headers[1].Value))
	})

	t.Run("empty round writes nothing", func(t *testing.T) {
		fw := &fakeWriter{}
		p := kafka.NewTourPublisherWithWriter(fw, quietLogger())

		require.NoError(t, p.PublishRound(context.Background(), roundID, nil))
		assert.Empty(t, fw.msgs)
	})

	t.Run("writer error is returned", func(t *testing.T) {
		writeErr := errors.New("leader not available")
		fw := &fakeWriter{err: writeErr}
		p := kafka.NewTourPublisherWithWriter(fw, quietLogger())
		idle, _ := tour.NewIdleTour(kernel.NewUUID(), "W", start)

		err := p.PublishRound(context.Background(), roundID, []*tour.Tour{idle})

		assert.ErrorIs(t, err, writeErr)
	})
}

func TestTourPublisher_Close(t *testing.T) {
	fw := &fakeWriter{}
	p := kafka.NewTourPublisherWithWriter(fw, nil)

	require.NoError(t, p.Close())
	assert.True(t, fw.closed)
}
