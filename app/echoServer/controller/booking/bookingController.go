package booking

import (
	"log/slog"
	"strconv"

	"campusshelter/app/echoServer/jwtx"
	"campusshelter/app/echoServer/respond"
	"campusshelter/model"
	bookingsvc "campusshelter/service/booking"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc bookingsvc.Service
	Log *slog.Logger
}

// GET /bookings
// Students see their own, landlords see bookings on owned properties,
// admins see everything. The scoping happens in the query, not here.
func (ct *Controller) List(c echo.Context) error {
	ident, ok := jwtx.FromContext(c)
	if !ok {
		return respond.Unauthorized(c)
	}

	page, limit, offset := respond.Pagination(c)
	rows, total, err := ct.Svc.List(c.Request().Context(), ident.UserID, ident.Role, limit, offset)
	if err != nil {
		ct.Log.Error("booking list", "err", err)
		return respond.ServerError(c, "Failed to fetch bookings")
	}
	return respond.Paginated(c, rows, respond.NewMeta(total, page, limit))
}

// POST /bookings
func (ct *Controller) Create(c echo.Context) error {
	ident, ok := jwtx.FromContext(c)
	if !ok {
		return respond.Unauthorized(c)
	}
	if !ident.HasRole(model.RoleStudent) {
		return respond.Forbidden(c, "Only students can create bookings")
	}

	var req model.CreateBookingReq
	if err := c.Bind(&req); err != nil {
		return respond.BadRequest(c, "invalid JSON")
	}
	if err := c.Validate(req); err != nil {
		return respond.BadRequest(c, "Validation failed", err.Error())
	}

	b, err := ct.Svc.Create(c.Request().Context(), ident.UserID, req)
	if err != nil {
		switch bookingsvc.Code(err) {
		case bookingsvc.ErrDateOrder:
			return respond.BadRequest(c, "Lease end date must be after start date")
		case bookingsvc.ErrPropertyNotFound:
			return respond.NotFound(c, "Property not found")
		case bookingsvc.ErrOverlap:
			return respond.BadRequest(c, "Property is already booked for the selected dates")
		default:
			ct.Log.Error("booking create", "err", err)
			return respond.ServerError(c, "Failed to create booking")
		}
	}
	return respond.Created(c, b)
}

// PATCH /bookings/:id
func (ct *Controller) UpdateStatus(c echo.Context) error {
	ident, ok := jwtx.FromContext(c)
	if !ok {
		return respond.Unauthorized(c)
	}
	if !ident.HasRole(model.RoleLandlord) {
		return respond.Forbidden(c, "Only landlords can manage bookings")
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return respond.BadRequest(c, "invalid id")
	}

	var req model.UpdateBookingStatusReq
	if err := c.Bind(&req); err != nil {
		return respond.BadRequest(c, "invalid JSON")
	}
	if err := c.Validate(req); err != nil {
		return respond.BadRequest(c, "Validation failed", err.Error())
	}

	b, err := ct.Svc.UpdateStatus(c.Request().Context(), id, ident.UserID, req.Status)
	if err != nil {
		switch bookingsvc.Code(err) {
		case bookingsvc.ErrNotFound:
			return respond.NotFound(c, "Booking not found")
		case bookingsvc.ErrNotOwner:
			return respond.Forbidden(c, "You can only manage bookings for your own properties")
		case bookingsvc.ErrAlreadyProcessed:
			return respond.BadRequest(c, "Booking has already been processed")
		default:
			ct.Log.Error("booking update", "err", err)
			return respond.ServerError(c, "Failed to update booking")
		}
	}
	return respond.OK(c, b)
}
