package lease

import (
	"log/slog"
	"strconv"

	"campusshelter/app/echoServer/jwtx"
	"campusshelter/app/echoServer/respond"
	"campusshelter/model"
	leasesvc "campusshelter/service/lease"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc leasesvc.Service
	Log *slog.Logger
}

// POST /leases
func (ct *Controller) Create(c echo.Context) error {
	ident, ok := jwtx.FromContext(c)
	if !ok {
		return respond.Unauthorized(c)
	}

	var req model.CreateLeaseReq
	if err := c.Bind(&req); err != nil {
		return respond.BadRequest(c, "invalid JSON")
	}
	if err := c.Validate(req); err != nil {
		return respond.BadRequest(c, "Validation failed", err.Error())
	}

	l, err := ct.Svc.Create(c.Request().Context(), ident.UserID, req)
	if err != nil {
		switch leasesvc.Code(err) {
		case leasesvc.ErrBookingNotFound:
			return respond.NotFound(c, "Booking not found")
		case leasesvc.ErrNotApproved:
			return respond.BadRequest(c, "Lease can only be created for approved bookings")
		case leasesvc.ErrNotOwner:
			return respond.Forbidden(c, "Only the property landlord can create leases")
		case leasesvc.ErrAlreadyLeased:
			return respond.BadRequest(c, "Lease already exists for this booking")
		default:
			ct.Log.Error("lease create", "err", err)
			return respond.ServerError(c, "Failed to create lease")
		}
	}
	return respond.Created(c, l)
}

// GET /leases/:id
func (ct *Controller) Detail(c echo.Context) error {
	ident, ok := jwtx.FromContext(c)
	if !ok {
		return respond.Unauthorized(c)
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return respond.BadRequest(c, "invalid id")
	}

	l, err := ct.Svc.Get(c.Request().Context(), id, ident.UserID, ident.Role)
	if err != nil {
		// Non-parties get the same not-found as a missing lease.
		if leasesvc.Code(err) == leasesvc.ErrNotFound {
			return respond.NotFound(c, "Lease not found")
		}
		ct.Log.Error("lease detail", "err", err)
		return respond.ServerError(c, "Failed to fetch lease")
	}
	return respond.OK(c, l)
}
