package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/studio-showcase/internal/apperr"
	"github.com/iliyamo/studio-showcase/internal/repository"
)

var kindMessage = map[apperr.Kind]string{
	apperr.KindValidation:      "Validation failed.",
	apperr.KindUnauthenticated: "Authentication required.",
	apperr.KindForbidden:       "Access denied.",
	apperr.KindNotFound:        "Resource not found.",
	apperr.KindConflict:        "Resource already exists.",
	apperr.KindRateLimited:     "Too many requests.",
	apperr.KindUpstream:        "An error occurred.",
}

// ErrorHandler renders every error as an Envelope. Causes of 5xx responses
// are logged and never sent to the client.
func ErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		status, env := errorEnvelope(err)
		if status >= http.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("route", c.Path()),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
				zap.Error(err))
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(status)
		} else {
			werr = c.JSON(status, env)
		}
		if werr != nil {
			log.Warn("error response write failed", zap.Error(werr))
		}
	}
}

func errorEnvelope(err error) (int, Envelope) {
	if ae, ok := apperr.As(err); ok {
		msg, found := kindMessage[ae.Kind]
		if !found {
			msg = kindMessage[apperr.KindUpstream]
		}
		return ae.HTTPStatus(), Envelope{
			Message: msg,
			Error:   &ErrorBody{Code: ae.Code, Description: ae.Message, Fields: ae.Fields},
		}
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		status := he.Code
		code := strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))
		desc := http.StatusText(status)
		switch status {
		case http.StatusBadRequest:
			// Binder failures: malformed JSON, form or query values.
			status, code, desc = http.StatusUnprocessableEntity, string(apperr.KindValidation), "Request could not be parsed."
		case http.StatusNotFound:
			code, desc = "NOT_FOUND", "The requested endpoint does not exist."
		case http.StatusUnauthorized:
			code = "UNAUTHENTICATED"
		}
		msg := "Request failed."
		if status >= http.StatusInternalServerError {
			msg = kindMessage[apperr.KindUpstream]
		}
		return status, Envelope{Message: msg, Error: &ErrorBody{Code: code, Description: desc}}
	}

	return http.StatusInternalServerError, Envelope{
		Message: kindMessage[apperr.KindUpstream],
		Error:   &ErrorBody{Code: "INTERNAL_ERROR", Description: "An unexpected error occurred."},
	}
}

// storeError translates repository sentinels for resource handlers.
// notFound and conflict may be nil when the operation cannot produce them.
func storeError(err error, notFound, conflict *apperr.Error) error {
	if notFound != nil && errors.Is(err, repository.ErrNotFound) {
		return notFound
	}
	if conflict != nil && errors.Is(err, repository.ErrDuplicate) {
		return conflict
	}
	if _, ok := apperr.As(err); ok {
		return err
	}
	return apperr.Upstream("DATABASE_ERROR", "A database error occurred.", err)
}
