package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	contentTypeJSON          = "application/json"
	maxStrictBodyBytes int64 = 1 << 20
	// Upload bodies carry base64 content; the bound covers the 200 MB
	// default ceiling with base64 overhead and headroom for raised limits.
	maxUploadBodyBytes int64 = 300 << 20
)

func bindJSON(c echo.Context, dst any, maxBytes int64) error {
	if !strings.HasPrefix(strings.ToLower(c.Request().Header.Get(echo.HeaderContentType)), contentTypeJSON) {
		return echo.NewHTTPError(http.StatusUnsupportedMediaType, msgContentTypeJSONRequired)
	}

	body := io.LimitReader(c.Request().Body, maxBytes)
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidRequestBody)
	}

	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidRequestBody)
	}

	return nil
}

func bindStrictJSON(c echo.Context, dst any) error {
	return bindJSON(c, dst, maxStrictBodyBytes)
}

func bindUploadJSON(c echo.Context, dst any) error {
	return bindJSON(c, dst, maxUploadBodyBytes)
}
