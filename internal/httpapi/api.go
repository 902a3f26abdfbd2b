// Package httpapi exposes a board session over HTTP for a browser
// rendering layer.
package httpapi

import (
	"errors"
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/bft-labs/kanban/internal/app"
	"github.com/bft-labs/kanban/internal/domain"
	"github.com/bft-labs/kanban/internal/ports"
)

const maxActionBytes = 1 << 20

// Dispatcher is the part of a board session the API needs.
type Dispatcher interface {
	Dispatch(a domain.Action) domain.Board
	State() domain.Board
}

// New returns an Echo instance with CORS, the sonic serializer, and all
// routes registered.
func New(d Dispatcher, logger ports.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = sonicSerializer{}
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))
	Register(e, d, logger)
	return e
}

// Register wires up all API routes on the provided Echo instance.
func Register(e *echo.Echo, d Dispatcher, logger ports.Logger) {
	e.GET("/api/board", getBoard(d))
	e.POST("/api/actions", postAction(d, logger))
	e.GET("/healthz", healthz())
}

type errorResponse struct {
	Error string `json:"error"`
}

func healthz() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
}

func getBoard(d Dispatcher) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, d.State())
	}
}

func postAction(d Dispatcher, logger ports.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxActionBytes+1))
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "read body"})
		}
		if len(body) > maxActionBytes {
			return c.JSON(http.StatusRequestEntityTooLarge, errorResponse{Error: "action too large"})
		}

		a, err := app.DecodeAction(body)
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, domain.ErrUnknownActionType) {
				status = http.StatusUnprocessableEntity
			}
			logger.Debug("rejected action", ports.Err(err))
			return c.JSON(status, errorResponse{Error: err.Error()})
		}

		board := d.Dispatch(a)
		logger.Debug("dispatched action", ports.String("action", domain.TypeOf(a)))
		return c.JSON(http.StatusOK, board)
	}
}

// sonicSerializer implements echo.JSONSerializer with bytedance/sonic.
type sonicSerializer struct{}

func (sonicSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := sonic.ConfigStd.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (sonicSerializer) Deserialize(c echo.Context, i interface{}) error {
	err := sonic.ConfigStd.NewDecoder(c.Request().Body).Decode(i)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	return nil
}
