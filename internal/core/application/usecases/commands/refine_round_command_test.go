package commands_test

import (
	"testing"
	"time"

	"routeplanner/internal/core/application/usecases/commands"
	"routeplanner/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefineRoundCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	budget := 30 * time.Second

	t.Run("nothing refined saves nothing", func(t *testing.T) {
		// Given
		p := new(MockPlanner)
		factory := new(MockTourUoWFactory)
		publisher := new(MockTourPublisher)
		p.On("RefineTimedOut", ctx, budget).Return(0, nil).Once()
		cmd, err := commands.NewRefineRoundCommand(kernel.NewUUID(), budget)
		require.NoError(t, err)

		// When
		replaced, err := commands.NewRefineRoundCommandHandler(p, factory, publisher).Handle(ctx, cmd)

		// Then
		require.NoError(t, err)
		assert.Zero(t, replaced)
		factory.AssertNotCalled(t, "Create")
	})

	t.Run("refined round is saved and published", func(t *testing.T) {
		// Given
		roundID := kernel.NewUUID()
		current, tours := idleRound(1)
		p := new(MockPlanner)
		repo := new(MockTourRepository)
		uow := new(MockTourUoW)
		factory := new(MockTourUoWFactory)
		publisher := new(MockTourPublisher)
		p.On("RefineTimedOut", ctx, budget).Return(1, nil).Once()
		p.On("Tours").Return(current).Once()
		factory.On("Create").Return(uow).Once()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("TourRepository").Return(repo).Once()
		repo.On("Add", ctx, roundID, tours[0]).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		publisher.On("PublishRound", ctx, roundID, tours).Return(nil).Once()
		cmd, _ := commands.NewRefineRoundCommand(roundID, budget)

		// When
		replaced, err := commands.NewRefineRoundCommandHandler(p, factory, publisher).Handle(ctx, cmd)

		// Then
		require.NoError(t, err)
		assert.Equal(t, 1, replaced)
		repo.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})
}
