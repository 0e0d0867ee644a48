package rest

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"foodgram-service/internal/domain/domainerr"
	"foodgram-service/internal/infrastructure/logger"
)

// Response is the error envelope. Successful calls return the resource itself.
type Response struct {
	Status  string            `json:"status"`
	Message string            `json:"message,omitempty"`
	Code    int               `json:"code,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func statusForKind(kind domainerr.Kind) int {
	switch kind {
	case domainerr.KindInvalidArgument:
		return http.StatusBadRequest
	case domainerr.KindNotFound:
		return http.StatusNotFound
	case domainerr.KindConflict:
		return http.StatusConflict
	case domainerr.KindForbidden:
		return http.StatusForbidden
	case domainerr.KindUnauthorized:
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// NewErrorHandler maps domain errors to status codes. Anything unrecognised is
// logged and reported as a generic 500.
func NewErrorHandler(log *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		resp := Response{Status: "error"}

		var de *domainerr.Error
		var he *echo.HTTPError
		switch {
		case errors.As(err, &de):
			resp.Code = statusForKind(de.Kind)
			resp.Message = de.Message
			resp.Errors = de.Fields
		case errors.As(err, &he):
			resp.Code = he.Code
			if msg, ok := he.Message.(string); ok {
				resp.Message = msg
			} else {
				resp.Message = http.StatusText(he.Code)
			}
		default:
			resp.Code = http.StatusInternalServerError
			resp.Message = "internal server error"
		}

		if resp.Code >= http.StatusInternalServerError {
			log.Error("request failed", "method", c.Request().Method, "path", c.Path(), "error", err)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(resp.Code)
		} else {
			err = c.JSON(resp.Code, resp)
		}
		if err != nil {
			log.Warn("failed to write error response", "error", err)
		}
	}
}

func statusForError(err error) int {
	var de *domainerr.Error
	if errors.As(err, &de) {
		return statusForKind(de.Kind)
	}
	return http.StatusInternalServerError
}
