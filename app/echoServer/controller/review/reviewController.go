package review

import (
	"log/slog"
	"strconv"

	"campusshelter/app/echoServer/jwtx"
	"campusshelter/app/echoServer/respond"
	"campusshelter/model"
	reviewsvc "campusshelter/service/review"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc reviewsvc.Service
	Log *slog.Logger
}

// POST /reviews
func (ct *Controller) Create(c echo.Context) error {
	ident, ok := jwtx.FromContext(c)
	if !ok {
		return respond.Unauthorized(c)
	}
	if !ident.HasRole(model.RoleStudent) {
		return respond.Forbidden(c, "Only students can create reviews")
	}

	var req model.CreateReviewReq
	if err := c.Bind(&req); err != nil {
		return respond.BadRequest(c, "invalid JSON")
	}
	if err := c.Validate(req); err != nil {
		return respond.BadRequest(c, "Validation failed", err.Error())
	}

	rv, err := ct.Svc.Create(c.Request().Context(), ident.UserID, req)
	if err != nil {
		switch reviewsvc.Code(err) {
		case reviewsvc.ErrNoApprovedBooking:
			return respond.Forbidden(c, "You can only review properties you have booked")
		case reviewsvc.ErrDuplicate:
			return respond.BadRequest(c, "You have already reviewed this property")
		default:
			ct.Log.Error("review create", "err", err)
			return respond.ServerError(c, "Failed to create review")
		}
	}
	return respond.Created(c, rv)
}

// GET /properties/:id/reviews
func (ct *Controller) ListForProperty(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return respond.BadRequest(c, "invalid id")
	}

	page, limit, offset := respond.Pagination(c)
	rows, total, err := ct.Svc.ListForProperty(c.Request().Context(), id, limit, offset)
	if err != nil {
		if reviewsvc.Code(err) == reviewsvc.ErrPropertyNotFound {
			return respond.NotFound(c, "Property not found")
		}
		ct.Log.Error("review list", "err", err)
		return respond.ServerError(c, "Failed to fetch reviews")
	}
	return respond.Paginated(c, rows, respond.NewMeta(total, page, limit))
}
