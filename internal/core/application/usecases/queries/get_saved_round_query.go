package queries

import (
	"context"
	"errors"

	"routeplanner/internal/core/domain/model/kernel"
	"routeplanner/internal/core/domain/model/roadgraph"
	"routeplanner/internal/core/ports"
	"routeplanner/internal/pkg/guard"
)

var ErrGetSavedRoundQueryIsNotConstructed = errors.New(
	"GetSavedRoundQuery must be created via NewGetSavedRoundQuery or NewGetLatestSavedRoundQuery",
)

// GetSavedRoundQuery reads the tours of one saved round, or of the latest one.
type GetSavedRoundQuery struct {
	roundID kernel.UUID
	latest  bool

	guard guard.ConstructorGuard
}

func NewGetSavedRoundQuery(roundID kernel.UUID) (GetSavedRoundQuery, error) {
	if err := roundID.Validate(); err != nil {
		return GetSavedRoundQuery{}, err
	}

	return GetSavedRoundQuery{roundID: roundID, guard: guard.NewConstructorGuard()}, nil
}

func NewGetLatestSavedRoundQuery() GetSavedRoundQuery {
	return GetSavedRoundQuery{latest: true, guard: guard.NewConstructorGuard()}
}

func (q GetSavedRoundQuery) Validate() error {
	return q.guard.Validate(ErrGetSavedRoundQueryIsNotConstructed)
}

// RoundID is the zero UUID when Latest is true.
func (q GetSavedRoundQuery) RoundID() kernel.UUID {
	return q.roundID
}

func (q GetSavedRoundQuery) Latest() bool {
	return q.latest
}

// GetSavedRoundQueryResponse lists the stored tours in courier order.
type GetSavedRoundQueryResponse struct {
	RoundID kernel.UUID
	Tours   []SavedTourResponse
}

type SavedTourResponse struct {
	CourierID kernel.UUID
	Sequence  []roadgraph.IntersectionID
	Stops     []StopResponse
	Route     []roadgraph.IntersectionID
	Cost      float64
	Optimal   bool
}

// GetSavedRoundQueryHandler restores round snapshots through the tour repository.
type GetSavedRoundQueryHandler struct {
	repository ports.TourRepository
}

func NewGetSavedRoundQueryHandler(repository ports.TourRepository) GetSavedRoundQueryHandler {
	return GetSavedRoundQueryHandler{repository: repository}
}

func (h GetSavedRoundQueryHandler) Handle(
	ctx context.Context,
	query GetSavedRoundQuery,
) (GetSavedRoundQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetSavedRoundQueryResponse{}, err
	}

	roundID := query.RoundID()
	if query.Latest() {
		latest, err := h.repository.GetLatestRoundID(ctx)
		if err != nil {
			return GetSavedRoundQueryResponse{}, err
		}
		roundID = latest
	}

	tours, err := h.repository.GetByRound(ctx, roundID)
	if err != nil {
		return GetSavedRoundQueryResponse{}, err
	}

	response := GetSavedRoundQueryResponse{
		RoundID: roundID,
		Tours:   make([]SavedTourResponse, 0, len(tours)),
	}
	for _, t := range tours {
		response.Tours = append(response.Tours, SavedTourResponse{
			CourierID: t.CourierID(),
			Sequence:  t.Sequence(),
			Stops:     stopsOf(t),
			Route:     routeOf(t),
			Cost:      t.Cost(),
			Optimal:   t.Optimal(),
		})
	}

	return response, nil
}
