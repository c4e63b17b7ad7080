package http

import (
	"errors"
	"fmt"
	"net/http"

	"routeplanner/internal/adapters/in/http/api"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewEcho builds the web server: the API behind OpenAPI request validation,
// the OpenAPI document itself, a Swagger UI reading it, and a health probe.
func NewEcho(server ServerInterface) (*echo.Echo, error) {
	doc, err := api.Load()
	if err != nil {
		return nil, err
	}

	validator, err := OpenAPIValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = errorHandler
	e.Use(validator)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/openapi.yaml", func(c echo.Context) error {
		return c.Blob(http.StatusOK, "application/yaml", api.Spec)
	})
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.URL("/openapi.yaml")))

	RegisterHandlers(e, server)

	return e, nil
}

// errorHandler renders every error escaping a handler with the Error schema.
func errorHandler(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := http.StatusText(status)

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		status = httpErr.Code
		message = fmt.Sprint(httpErr.Message)
	} else {
		ctx.Logger().Error(err)
	}

	if err = ctx.JSON(status, Error{Code: status, Message: message}); err != nil {
		ctx.Logger().Error(err)
	}
}
