package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface lists one method per operation of api/openapi.yaml.
type ServerInterface interface {
	// PUT /api/v1/fleet
	InitializeFleet(ctx echo.Context) error
	// POST /api/v1/map
	LoadMap(ctx echo.Context, params LoadMapParams) error
	// POST /api/v1/requests
	LoadRequests(ctx echo.Context) error
	// GET /api/v1/rounds
	GetSavedRounds(ctx echo.Context, params GetSavedRoundsParams) error
	// POST /api/v1/rounds
	ComputeRound(ctx echo.Context, params ComputeRoundParams) error
	// GET /api/v1/rounds/{roundId}
	GetSavedRound(ctx echo.Context, roundId string) error
	// GET /api/v1/tours
	GetTours(ctx echo.Context) error
	// POST /api/v1/couriers/{index}/stops
	AddStop(ctx echo.Context, index int) error
	// DELETE /api/v1/couriers/{index}/stops/{intersection}
	RemoveStop(ctx echo.Context, index int, intersection string) error
	// PUT /api/v1/warehouse
	SetWarehouse(ctx echo.Context) error
	// DELETE /api/v1/warehouse
	ClearWarehouse(ctx echo.Context) error
	// POST /api/v1/history/undo
	Undo(ctx echo.Context) error
	// POST /api/v1/history/redo
	Redo(ctx echo.Context) error
	// GET /api/v1/intersections/nearest
	GetNearestIntersection(ctx echo.Context, params GetNearestIntersectionParams) error
}

// ServerInterfaceWrapper binds path and query parameters before calling the handler.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) InitializeFleet(ctx echo.Context) error {
	return w.Handler.InitializeFleet(ctx)
}

func (w *ServerInterfaceWrapper) LoadMap(ctx echo.Context) error {
	var params LoadMapParams

	err := runtime.BindQueryParameter("form", true, false, "format", ctx.QueryParams(), &params.Format)
	if err != nil {
		return invalidParameter("format", err)
	}

	return w.Handler.LoadMap(ctx, params)
}

func (w *ServerInterfaceWrapper) LoadRequests(ctx echo.Context) error {
	return w.Handler.LoadRequests(ctx)
}

func (w *ServerInterfaceWrapper) GetSavedRounds(ctx echo.Context) error {
	var params GetSavedRoundsParams

	err := runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit)
	if err != nil {
		return invalidParameter("limit", err)
	}

	return w.Handler.GetSavedRounds(ctx, params)
}

func (w *ServerInterfaceWrapper) ComputeRound(ctx echo.Context) error {
	var params ComputeRoundParams

	err := runtime.BindQueryParameter("form", true, false, "optimized", ctx.QueryParams(), &params.Optimized)
	if err != nil {
		return invalidParameter("optimized", err)
	}

	return w.Handler.ComputeRound(ctx, params)
}

func (w *ServerInterfaceWrapper) GetSavedRound(ctx echo.Context) error {
	var roundId string

	err := runtime.BindStyledParameterWithOptions("simple", "roundId", ctx.Param("roundId"), &roundId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return invalidParameter("roundId", err)
	}

	return w.Handler.GetSavedRound(ctx, roundId)
}

func (w *ServerInterfaceWrapper) GetTours(ctx echo.Context) error {
	return w.Handler.GetTours(ctx)
}

func (w *ServerInterfaceWrapper) AddStop(ctx echo.Context) error {
	index, err := bindCourierIndex(ctx)
	if err != nil {
		return err
	}

	return w.Handler.AddStop(ctx, index)
}

func (w *ServerInterfaceWrapper) RemoveStop(ctx echo.Context) error {
	index, err := bindCourierIndex(ctx)
	if err != nil {
		return err
	}

	var intersection string
	err = runtime.BindStyledParameterWithOptions("simple", "intersection", ctx.Param("intersection"), &intersection,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return invalidParameter("intersection", err)
	}

	return w.Handler.RemoveStop(ctx, index, intersection)
}

func (w *ServerInterfaceWrapper) SetWarehouse(ctx echo.Context) error {
	return w.Handler.SetWarehouse(ctx)
}

func (w *ServerInterfaceWrapper) ClearWarehouse(ctx echo.Context) error {
	return w.Handler.ClearWarehouse(ctx)
}

func (w *ServerInterfaceWrapper) Undo(ctx echo.Context) error {
	return w.Handler.Undo(ctx)
}

func (w *ServerInterfaceWrapper) Redo(ctx echo.Context) error {
	return w.Handler.Redo(ctx)
}

func (w *ServerInterfaceWrapper) GetNearestIntersection(ctx echo.Context) error {
	var params GetNearestIntersectionParams

	if err := runtime.BindQueryParameter("form", true, true, "lat", ctx.QueryParams(), &params.Lat); err != nil {
		return invalidParameter("lat", err)
	}
	if err := runtime.BindQueryParameter("form", true, true, "lon", ctx.QueryParams(), &params.Lon); err != nil {
		return invalidParameter("lon", err)
	}

	return w.Handler.GetNearestIntersection(ctx, params)
}

// EchoRouter is satisfied by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers mounts every operation under its documented path.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	w := &ServerInterfaceWrapper{Handler: si}

	router.PUT("/api/v1/fleet", w.InitializeFleet)
	router.POST("/api/v1/map", w.LoadMap)
	router.POST("/api/v1/requests", w.LoadRequests)
	router.GET("/api/v1/rounds", w.GetSavedRounds)
	router.POST("/api/v1/rounds", w.ComputeRound)
	router.GET("/api/v1/rounds/:roundId", w.GetSavedRound)
	router.GET("/api/v1/tours", w.GetTours)
	router.POST("/api/v1/couriers/:index/stops", w.AddStop)
	router.DELETE("/api/v1/couriers/:index/stops/:intersection", w.RemoveStop)
	router.PUT("/api/v1/warehouse", w.SetWarehouse)
	router.DELETE("/api/v1/warehouse", w.ClearWarehouse)
	router.POST("/api/v1/history/undo", w.Undo)
	router.POST("/api/v1/history/redo", w.Redo)
	router.GET("/api/v1/intersections/nearest", w.GetNearestIntersection)
}

func bindCourierIndex(ctx echo.Context) (int, error) {
	var index int

	err := runtime.BindStyledParameterWithOptions("simple", "index", ctx.Param("index"), &index,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return 0, invalidParameter("index", err)
	}

	return index, nil
}

func invalidParameter(name string, err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
}
