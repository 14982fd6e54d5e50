package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "docvault/pkg/errors"
)

// CustomHTTPErrorHandler maps sentinel errors to HTTP status codes,
// sanitizes internal errors and logs with the request id attached.
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Internal server error"

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
		message = fmt.Sprintf("%v", httpErr.Message)
	} else {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			code = http.StatusNotFound
			message = "Resource not found"
		case errors.Is(err, apperrors.ErrUnauthorized):
			code = http.StatusUnauthorized
			message = "Unauthorized"
		case errors.Is(err, apperrors.ErrInvalidCredentials):
			code = http.StatusUnauthorized
			message = "Invalid credentials"
		case errors.Is(err, apperrors.ErrForbidden):
			code = http.StatusForbidden
			message = "Forbidden"
		case errors.Is(err, apperrors.ErrBadRequest):
			code = http.StatusBadRequest
			message = "Bad request"
		case errors.Is(err, apperrors.ErrConflict):
			code = http.StatusConflict
			message = "Resource already exists"
		case errors.Is(err, apperrors.ErrExpired):
			code = http.StatusGone
			message = "Resource expired"
		case errors.Is(err, apperrors.ErrUsageExceeded):
			code = http.StatusGone
			message = "Usage limit exceeded"
		}

		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			if code < 500 {
				message = appErr.Message
			}
		}
	}

	requestID := c.Response().Header().Get(echo.HeaderXRequestID)
	if requestID == "" {
		requestID = "unknown"
	}

	if code >= 500 {
		c.Logger().Errorf("request %s failed with %d: %v", requestID, code, err)
		// Never leak internals to clients.
		message = "Internal server error"
	} else {
		c.Logger().Warnf("request %s rejected with %d: %v", requestID, code, err)
	}

	if err := c.JSON(code, map[string]any{
		"error":      message,
		"request_id": requestID,
	}); err != nil {
		c.Logger().Error(err)
	}
}
