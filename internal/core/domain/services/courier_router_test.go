package services_test

import (
	"context"
	"testing"

	"routeplanner/internal/core/domain/model/roadgraph"
	"routeplanner/internal/core/domain/services"
	"routeplanner/internal/core/domain/services/tsp"
	"routeplanner/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCourierRouter(t *testing.T) {
	ctx := context.Background()
	g := diamondGraph(t)
	c := newCourier(t, 15)

	t.Run("diamond tour", func(t *testing.T) {
		// When
		r, err := services.NewCourierRouter(ctx, g, c, "W", []roadgraph.IntersectionID{"B", "A"}, unlimited, testSchedule)

		// Then
		require.NoError(t, err)
		assert.Equal(t, []roadgraph.IntersectionID{"W", "A", "B", "W"}, r.Tour().Sequence())
		assert.InDelta(t, 3, r.Tour().Cost(), 1e-12)
		assert.True(t, r.Tour().Optimal())
		assert.Equal(t, roadgraph.IntersectionID("W"), r.Warehouse())
		assert.Equal(t, []roadgraph.IntersectionID{"B", "A"}, r.Stops())
	})

	t.Run("no stops gives idle tour", func(t *testing.T) {
		r, err := services.NewCourierRouter(ctx, g, c, "W", nil, unlimited, testSchedule)

		require.NoError(t, err)
		assert.Equal(t, []roadgraph.IntersectionID{"W", "W"}, r.Tour().Sequence())
		assert.Zero(t, r.Tour().Cost())
	})

	t.Run("duplicate stop", func(t *testing.T) {
		_, err := services.NewCourierRouter(ctx, g, c, "W", []roadgraph.IntersectionID{"A", "A"}, unlimited, testSchedule)

		assert.ErrorIs(t, err, errs.ErrInvalidOperation)
	})

	t.Run("unreachable stop", func(t *testing.T) {
		_, err := services.NewCourierRouter(ctx, g, c, "W", []roadgraph.IntersectionID{"Z"}, unlimited, testSchedule)

		assert.ErrorIs(t, err, errs.ErrUnreachablePair)
	})

	t.Run("zero budget keeps insertion order", func(t *testing.T) {
		r, err := services.NewCourierRouter(ctx, g, c, "W", []roadgraph.IntersectionID{"B", "A"},
			tsp.Options{TimeLimit: tsp.BudgetSpent}, testSchedule)

		require.NoError(t, err)
		assert.False(t, r.Tour().Optimal())
		assert.Equal(t, []roadgraph.IntersectionID{"W", "B", "A", "W"}, r.Tour().Sequence())
	})
}

func TestCourierRouter_Edits(t *testing.T) {
	ctx := context.Background()
	g := diamondGraph(t)
	c := newCourier(t, 15)
	base, err := services.NewCourierRouter(ctx, g, c, "W", []roadgraph.IntersectionID{"A", "B"}, unlimited, testSchedule)
	require.NoError(t, err)

	t.Run("add then remove restores cost", func(t *testing.T) {
		// When
		grown, err := base.WithStop(ctx, "C")
		require.NoError(t, err)
		shrunk, err := grown.WithoutStop(ctx, "C")
		require.NoError(t, err)

		// Then
		assert.Equal(t, []roadgraph.IntersectionID{"W", "A", "B", "C", "W"}, grown.Tour().Sequence())
		assert.InDelta(t, 6, grown.Tour().Cost(), 1e-12)
		assert.InDelta(t, base.Tour().Cost(), shrunk.Tour().Cost(), 1e-12)
		assert.ElementsMatch(t, base.Tour().Deliveries(), shrunk.Tour().Deliveries())
	})

	t.Run("incremental matrix equals full rebuild", func(t *testing.T) {
		grown, err := base.WithStop(ctx, "C")
		require.NoError(t, err)
		full, err := services.NewCourierRouter(ctx, g, c, "W", []roadgraph.IntersectionID{"A", "B", "C"}, unlimited, testSchedule)
		require.NoError(t, err)

		assert.InDelta(t, full.Tour().Cost(), grown.Tour().Cost(), 1e-12)
	})

	t.Run("receiver is untouched by edits", func(t *testing.T) {
		_, err := base.WithStop(ctx, "C")
		require.NoError(t, err)
		_, err = base.WithoutStop(ctx, "A")
		require.NoError(t, err)

		assert.Equal(t, []roadgraph.IntersectionID{"A", "B"}, base.Stops())
		assert.Equal(t, []roadgraph.IntersectionID{"W", "A", "B", "W"}, base.Tour().Sequence())
	})

	t.Run("invalid edits", func(t *testing.T) {
		_, err := base.WithStop(ctx, "A")
		assert.ErrorIs(t, err, errs.ErrInvalidOperation)

		_, err = base.WithStop(ctx, "W")
		assert.ErrorIs(t, err, errs.ErrInvalidOperation)

		_, err = base.WithoutStop(ctx, "C")
		assert.ErrorIs(t, err, errs.ErrInvalidOperation)

		_, err = base.WithoutStop(ctx, "W")
		assert.ErrorIs(t, err, errs.ErrInvalidOperation)

		_, err = base.WithStop(ctx, "Z")
		assert.ErrorIs(t, err, errs.ErrUnreachablePair)

		_, err = base.WithStop(ctx, "ghost")
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("refine keeps stops", func(t *testing.T) {
		refined, err := base.Refine(ctx, tsp.Options{TimeLimit: tsp.NoTimeLimit, Strategy: tsp.Baseline{}})

		require.NoError(t, err)
		assert.InDelta(t, base.Tour().Cost(), refined.Tour().Cost(), 1e-12)
		assert.True(t, refined.Has("A"))
		assert.False(t, refined.Has("W"))
	})
}
