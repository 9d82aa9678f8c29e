// Package respond shapes every API payload into the common envelope:
// {success, data|message, errors?, meta?}.
package respond

import (
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

type Meta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

func NewMeta(total, page, limit int) Meta {
	return Meta{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}
}

func OK(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": data})
}

func Created(c echo.Context, data any) error {
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": data})
}

func Paginated(c echo.Context, data any, meta Meta) error {
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": data, "meta": meta})
}

func BadRequest(c echo.Context, message string, errs ...any) error {
	body := echo.Map{"success": false, "message": message}
	if len(errs) > 0 {
		body["errors"] = errs[0]
	}
	return c.JSON(http.StatusBadRequest, body)
}

func Unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Unauthorized"})
}

func Forbidden(c echo.Context, message string) error {
	return c.JSON(http.StatusForbidden, echo.Map{"success": false, "message": message})
}

func NotFound(c echo.Context, message string) error {
	return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": message})
}

func ServerError(c echo.Context, message string) error {
	return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": message})
}

// Pagination parses page/limit query params: page >= 1 (default 1),
// limit clamped to 1..100 (default 10).
func Pagination(c echo.Context) (page, limit, offset int) {
	page = 1
	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil && v > 1 {
		page = v
	}
	limit = 10
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil {
		switch {
		case v < 1:
			limit = 1
		case v > 100:
			limit = 100
		default:
			limit = v
		}
	}
	return page, limit, (page - 1) * limit
}
