package handler

import (
	"time"

	"github.com/deppfellow/social-network/internal/middleware"
	"github.com/deppfellow/social-network/internal/server"
	"github.com/deppfellow/social-network/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Handler holds the shared application dependencies and is embedded by
// every concrete handler.
type Handler struct {
	server *server.Server
}

func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// HandlerFunc is a typed endpoint receiving an already validated request.
// Req is a pointer type so echo can bind into it.
type HandlerFunc[Req validation.Validatable, Res any] func(c echo.Context, req Req) (Res, error)

// HandlerFuncNoContent is a typed endpoint that writes no body.
type HandlerFuncNoContent[Req validation.Validatable] func(c echo.Context, req Req) error

// Handle adapts a typed JSON endpoint to echo. newReq builds a fresh
// request value for every call since echo binds into it.
func Handle[Req validation.Validatable, Res any](
	handler HandlerFunc[Req, Res],
	status int,
	newReq func() Req,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		result, err := serve(c, "handler", newReq(), func(req Req) (any, error) {
			return handler(c, req)
		})
		if err != nil {
			return err
		}
		return c.JSON(status, result)
	}
}

// HandleNoContent adapts a typed endpoint that responds without a body.
func HandleNoContent[Req validation.Validatable](
	handler HandlerFuncNoContent[Req],
	status int,
	newReq func() Req,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, err := serve(c, "handler_no_content", newReq(), func(req Req) (any, error) {
			return nil, handler(c, req)
		}); err != nil {
			return err
		}
		return c.NoContent(status)
	}
}

// serve binds and validates req, then runs fn. Errors are returned for the
// global error handler to render and log.
func serve[Req validation.Validatable](
	c echo.Context,
	operation string,
	req Req,
	fn func(Req) (any, error),
) (any, error) {
	route := c.Path()
	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", operation).
		Str("route", route).
		Logger()

	start := time.Now()
	if err := validation.BindAndValidate(c, req); err != nil {
		logger.Warn().Err(err).Msg("request validation failed")
		record(txn, "validation", start, err)
		return nil, err
	}
	validationDuration := record(txn, "validation", start, nil)

	handlerStart := time.Now()
	result, err := fn(req)
	handlerDuration := record(txn, "handler", handlerStart, err)
	if err != nil {
		logger.Debug().Err(err).Dur("handler_duration", handlerDuration).Msg("handler returned error")
		return nil, err
	}

	logger.Info().
		Dur("validation_duration", validationDuration).
		Dur("handler_duration", handlerDuration).
		Msg("request completed successfully")

	return result, nil
}

// record stores <stage>.status and <stage>.duration_ms on the transaction
// and returns the elapsed time.
func record(txn *newrelic.Transaction, stage string, start time.Time, err error) time.Duration {
	elapsed := time.Since(start)
	if txn == nil {
		return elapsed
	}

	status := "success"
	if err != nil {
		status = "failed"
		txn.NoticeError(nrpkgerrors.Wrap(err))
	}
	txn.AddAttribute(stage+".status", status)
	txn.AddAttribute(stage+".duration_ms", elapsed.Milliseconds())

	return elapsed
}
