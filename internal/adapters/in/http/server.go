package http

import (
	"context"
	"errors"
	"io"
	"net/http"

	"routeplanner/internal/adapters/in/mapxml"
	"routeplanner/internal/adapters/in/osmimport"
	"routeplanner/internal/core/application/planner"
	"routeplanner/internal/core/application/usecases/commands"
	"routeplanner/internal/core/application/usecases/queries"
	"routeplanner/internal/core/domain/model/kernel"
	"routeplanner/internal/core/domain/model/roadgraph"
	"routeplanner/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// DefaultSavedRoundsLimit is used when GET /api/v1/rounds has no limit.
const DefaultSavedRoundsLimit = 10

// Handlers groups the use cases the HTTP server dispatches to.
type Handlers struct {
	// Command handlers
	InitializeFleet commands.InitializeFleetCommandHandler
	LoadMap         commands.LoadMapCommandHandler
	LoadRequests    commands.LoadRequestsCommandHandler
	ComputeRound    commands.ComputeRoundCommandHandler
	ChangeStop      commands.ChangeStopCommandHandler
	ChangeWarehouse commands.ChangeWarehouseCommandHandler
	NavigateHistory commands.NavigateHistoryCommandHandler

	// Query handlers
	GetCurrentRound         queries.GetCurrentRoundQueryHandler
	GetSavedRounds          queries.GetSavedRoundsQueryHandler
	GetSavedRound           queries.GetSavedRoundQueryHandler
	FindNearestIntersection queries.FindNearestIntersectionQueryHandler
}

// Server implements ServerInterface.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
}

var _ ServerInterface = (*Server)(nil)

func NewServer(handlers Handlers) *Server {
	return &Server{handlers: handlers}
}

// InitializeFleet handles PUT /api/v1/fleet.
func (s *Server) InitializeFleet(ctx echo.Context) error {
	var body NewFleet
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewInitializeFleetCommand(body.Couriers)
	if err != nil {
		return problem(ctx, err)
	}

	if err = s.handlers.InitializeFleet.Handle(ctx.Request().Context(), cmd); err != nil {
		return problem(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// LoadMap handles POST /api/v1/map. The body is a map document, an OSM XML
// extract or an OSM PBF extract depending on the format parameter.
func (s *Server) LoadMap(ctx echo.Context, params LoadMapParams) error {
	format := MapFormatXML
	if params.Format != nil {
		format = *params.Format
	}

	intersections, segments, err := parseMap(ctx.Request().Context(), format, ctx.Request().Body)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewLoadMapCommand(intersections, segments)
	if err != nil {
		return problem(ctx, err)
	}

	if err = s.handlers.LoadMap.Handle(ctx.Request().Context(), cmd); err != nil {
		return problem(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// LoadRequests handles POST /api/v1/requests.
func (s *Server) LoadRequests(ctx echo.Context) error {
	doc, err := mapxml.ParseRequests(ctx.Request().Body)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewLoadRequestsCommand(doc.Warehouse, doc.Deliveries)
	if err != nil {
		return problem(ctx, err)
	}

	if err = s.handlers.LoadRequests.Handle(ctx.Request().Context(), cmd); err != nil {
		return problem(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ComputeRound handles POST /api/v1/rounds. Every computation is saved as a new round.
func (s *Server) ComputeRound(ctx echo.Context, params ComputeRoundParams) error {
	mode := planner.Naive
	if params.Optimized != nil && *params.Optimized {
		mode = planner.Optimized
	}

	roundID := kernel.NewUUID()
	cmd, err := commands.NewComputeRoundCommand(roundID, mode)
	if err != nil {
		return problem(ctx, err)
	}

	if err = s.handlers.ComputeRound.Handle(ctx.Request().Context(), cmd); err != nil {
		return problem(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, ComputedRound{RoundId: roundID.Bytes()})
}

// GetSavedRounds handles GET /api/v1/rounds.
func (s *Server) GetSavedRounds(ctx echo.Context, params GetSavedRoundsParams) error {
	limit := DefaultSavedRoundsLimit
	if params.Limit != nil {
		limit = *params.Limit
	}

	query, err := queries.NewGetSavedRoundsQuery(limit)
	if err != nil {
		return problem(ctx, err)
	}

	rounds, err := s.handlers.GetSavedRounds.Handle(ctx.Request().Context(), query)
	if err != nil {
		return problem(ctx, err)
	}

	response := make([]SavedRound, len(rounds))
	for i, r := range rounds {
		response[i] = SavedRound{
			RoundId:   r.RoundID.Bytes(),
			Tours:     r.Tours,
			TotalCost: r.TotalCost,
			Optimal:   r.Optimal,
			SavedAt:   r.SavedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// LatestRound is the roundId of GET /api/v1/rounds/{roundId} that names the newest round.
const LatestRound = "latest"

// GetSavedRound handles GET /api/v1/rounds/{roundId}.
func (s *Server) GetSavedRound(ctx echo.Context, roundId string) error {
	query := queries.NewGetLatestSavedRoundQuery()
	if roundId != LatestRound {
		id, err := kernel.UUIDFromString(roundId)
		if err != nil {
			return problem(ctx, errs.NewValueIsInvalidError("roundId"))
		}
		if query, err = queries.NewGetSavedRoundQuery(id); err != nil {
			return problem(ctx, err)
		}
	}

	round, err := s.handlers.GetSavedRound.Handle(ctx.Request().Context(), query)
	if err != nil {
		return problem(ctx, err)
	}

	response := SavedRoundDetail{
		RoundId: round.RoundID.Bytes(),
		Tours:   make([]SavedTour, len(round.Tours)),
	}
	for i, t := range round.Tours {
		response.Tours[i] = SavedTour{
			CourierId: t.CourierID.Bytes(),
			Sequence:  idStrings(t.Sequence),
			Stops:     stopsFromQuery(t.Stops),
			Route:     idStrings(t.Route),
			Cost:      t.Cost,
			Optimal:   t.Optimal,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetTours handles GET /api/v1/tours.
func (s *Server) GetTours(ctx echo.Context) error {
	round, err := s.handlers.GetCurrentRound.Handle(ctx.Request().Context(), queries.NewGetCurrentRoundQuery())
	if err != nil {
		return problem(ctx, err)
	}

	return ctx.JSON(http.StatusOK, roundFromQuery(round))
}

// AddStop handles POST /api/v1/couriers/{index}/stops.
func (s *Server) AddStop(ctx echo.Context, index int) error {
	var body IntersectionRef
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAddStopCommand(index, roadgraph.IntersectionID(body.Intersection))
	if err != nil {
		return problem(ctx, err)
	}

	return s.changeStop(ctx, cmd)
}

// RemoveStop handles DELETE /api/v1/couriers/{index}/stops/{intersection}.
func (s *Server) RemoveStop(ctx echo.Context, index int, intersection string) error {
	cmd, err := commands.NewRemoveStopCommand(index, roadgraph.IntersectionID(intersection))
	if err != nil {
		return problem(ctx, err)
	}

	return s.changeStop(ctx, cmd)
}

func (s *Server) changeStop(ctx echo.Context, cmd commands.ChangeStopCommand) error {
	if err := s.handlers.ChangeStop.Handle(ctx.Request().Context(), cmd); err != nil {
		return problem(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SetWarehouse handles PUT /api/v1/warehouse.
func (s *Server) SetWarehouse(ctx echo.Context) error {
	var body IntersectionRef
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewSetWarehouseCommand(roadgraph.IntersectionID(body.Intersection))
	if err != nil {
		return problem(ctx, err)
	}

	return s.changeWarehouse(ctx, cmd)
}

// ClearWarehouse handles DELETE /api/v1/warehouse.
func (s *Server) ClearWarehouse(ctx echo.Context) error {
	return s.changeWarehouse(ctx, commands.NewClearWarehouseCommand())
}

func (s *Server) changeWarehouse(ctx echo.Context, cmd commands.ChangeWarehouseCommand) error {
	if err := s.handlers.ChangeWarehouse.Handle(ctx.Request().Context(), cmd); err != nil {
		return problem(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// Undo handles POST /api/v1/history/undo.
func (s *Server) Undo(ctx echo.Context) error {
	return s.navigate(ctx, commands.NewUndoCommand())
}

// Redo handles POST /api/v1/history/redo.
func (s *Server) Redo(ctx echo.Context) error {
	return s.navigate(ctx, commands.NewRedoCommand())
}

func (s *Server) navigate(ctx echo.Context, cmd commands.NavigateHistoryCommand) error {
	if err := s.handlers.NavigateHistory.Handle(ctx.Request().Context(), cmd); err != nil {
		return problem(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetNearestIntersection handles GET /api/v1/intersections/nearest.
func (s *Server) GetNearestIntersection(ctx echo.Context, params GetNearestIntersectionParams) error {
	query, err := queries.NewFindNearestIntersectionQuery(params.Lat, params.Lon)
	if err != nil {
		return problem(ctx, err)
	}

	found, err := s.handlers.FindNearestIntersection.Handle(ctx.Request().Context(), query)
	if err != nil {
		return problem(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Intersection{
		Id:       string(found.ID),
		Lat:      found.Latitude,
		Lon:      found.Longitude,
		Distance: found.Distance,
	})
}

func parseMap(
	ctx context.Context,
	format MapFormat,
	body io.Reader,
) ([]roadgraph.Intersection, []roadgraph.Segment, error) {
	switch format {
	case MapFormatXML:
		doc, err := mapxml.ParseMap(body)
		return doc.Intersections, doc.Segments, err
	case MapFormatOSM:
		doc, err := osmimport.ParseXML(ctx, body)
		return doc.Intersections, doc.Segments, err
	case MapFormatPBF:
		doc, err := osmimport.ParsePBF(ctx, body)
		return doc.Intersections, doc.Segments, err
	default:
		return nil, nil, errs.NewValueIsInvalidError("format")
	}
}

func roundFromQuery(round queries.GetCurrentRoundQueryResponse) Round {
	response := Round{
		Requests: make([]Request, len(round.Requests)),
		Couriers: make([]CourierTour, len(round.Couriers)),
		CanUndo:  round.CanUndo,
		CanRedo:  round.CanRedo,
	}

	if round.Warehouse != "" {
		warehouse := string(round.Warehouse)
		response.Warehouse = &warehouse
	}

	for i, r := range round.Requests {
		response.Requests[i] = Request{
			Id:      r.ID.Bytes(),
			Address: string(r.Address),
			Status:  r.Status,
		}
		if r.CourierID != nil {
			courierID := openapi_types.UUID(r.CourierID.Bytes())
			response.Requests[i].CourierId = &courierID
		}
	}

	for i, c := range round.Couriers {
		response.Couriers[i] = CourierTour{
			Index:     c.Index,
			CourierId: c.CourierID.Bytes(),
			Name:      c.CourierName,
			Assigned:  c.Assigned,
			Sequence:  idStrings(c.Sequence),
			Stops:     stopsFromQuery(c.Stops),
			Route:     idStrings(c.Route),
			Cost:      c.Cost,
			Optimal:   c.Optimal,
		}
	}

	return response
}

func stopsFromQuery(in []queries.StopResponse) []Stop {
	out := make([]Stop, len(in))
	for i, stop := range in {
		out[i] = Stop{
			Intersection: string(stop.Intersection),
			Arrival:      stop.Arrival,
			Departure:    stop.Departure,
		}
	}
	return out
}

func idStrings(ids []roadgraph.IntersectionID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

// problem renders a use case error with the status matching its kind.
func problem(ctx echo.Context, err error) error {
	status := statusOf(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		ctx.Logger().Error(err)
		message = http.StatusText(status)
	}

	return ctx.JSON(status, Error{Code: status, Message: message})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrUnreachablePair):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidOperation):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
