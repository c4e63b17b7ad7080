package queries

import (
	"context"
	"errors"
	"time"

	"routeplanner/internal/core/domain/model/kernel"
	"routeplanner/internal/pkg/errs"
	"routeplanner/internal/pkg/guard"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxSavedRounds caps the number of rounds a single query returns.
const MaxSavedRounds = 100

var ErrGetSavedRoundsQueryIsNotConstructed = errors.New(
	"GetSavedRoundsQuery must be created via NewGetSavedRoundsQuery constructor",
)

// GetSavedRoundsQuery lists the most recent saved round snapshots.
type GetSavedRoundsQuery struct {
	limit int

	guard guard.ConstructorGuard
}

// NewGetSavedRoundsQuery creates a query returning at most limit rounds, newest first.
// Returns an error if limit is outside 1..MaxSavedRounds.
func NewGetSavedRoundsQuery(limit int) (GetSavedRoundsQuery, error) {
	if limit < 1 || limit > MaxSavedRounds {
		return GetSavedRoundsQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxSavedRounds)
	}

	return GetSavedRoundsQuery{limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q GetSavedRoundsQuery) Validate() error {
	return q.guard.Validate(ErrGetSavedRoundsQueryIsNotConstructed)
}

func (q GetSavedRoundsQuery) Limit() int {
	return q.limit
}

// GetSavedRoundsQueryResponse summarizes one saved round.
type GetSavedRoundsQueryResponse struct {
	RoundID   kernel.UUID
	Tours     int
	TotalCost float64
	// Optimal is true when no tour of the round was cut off by the time budget.
	Optimal bool
	SavedAt time.Time
}

// GetSavedRoundsQueryHandler reads round summaries with plain SQL over the tours table.
type GetSavedRoundsQueryHandler struct {
	db *gorm.DB
}

func NewGetSavedRoundsQueryHandler(db *gorm.DB) GetSavedRoundsQueryHandler {
	return GetSavedRoundsQueryHandler{db: db}
}

func (h GetSavedRoundsQueryHandler) Handle(
	ctx context.Context,
	query GetSavedRoundsQuery,
) ([]GetSavedRoundsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rounds := make([]GetSavedRoundsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			round_id,
			COUNT(*)         AS tours,
			SUM(cost)        AS total_cost,
			BOOL_AND(optimal) AS optimal,
			MAX(created_at)  AS saved_at
		FROM tours
		GROUP BY round_id
		ORDER BY saved_at DESC
		LIMIT ?
	`, query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var round GetSavedRoundsQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&round.Tours,
			&round.TotalCost,
			&round.Optimal,
			&round.SavedAt,
		)
		if err != nil {
			return nil, err
		}

		roundID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		round.RoundID = roundID
		rounds = append(rounds, round)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return rounds, nil
}
