package maintenance

import (
	"log/slog"
	"strconv"

	"campusshelter/app/echoServer/jwtx"
	"campusshelter/app/echoServer/respond"
	"campusshelter/model"
	maintenancesvc "campusshelter/service/maintenance"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc maintenancesvc.Service
	Log *slog.Logger
}

// GET /maintenance
func (ct *Controller) List(c echo.Context) error {
	ident, ok := jwtx.FromContext(c)
	if !ok {
		return respond.Unauthorized(c)
	}

	page, limit, offset := respond.Pagination(c)
	rows, total, err := ct.Svc.List(c.Request().Context(), ident.UserID, ident.Role, limit, offset)
	if err != nil {
		ct.Log.Error("maintenance list", "err", err)
		return respond.ServerError(c, "Failed to fetch maintenance requests")
	}
	return respond.Paginated(c, rows, respond.NewMeta(total, page, limit))
}

// POST /maintenance
func (ct *Controller) Create(c echo.Context) error {
	ident, ok := jwtx.FromContext(c)
	if !ok {
		return respond.Unauthorized(c)
	}
	if !ident.HasRole(model.RoleStudent) {
		return respond.Forbidden(c, "Only students can create maintenance requests")
	}

	var req model.CreateMaintenanceReq
	if err := c.Bind(&req); err != nil {
		return respond.BadRequest(c, "invalid JSON")
	}
	if err := c.Validate(req); err != nil {
		return respond.BadRequest(c, "Validation failed", err.Error())
	}

	m, err := ct.Svc.Create(c.Request().Context(), ident.UserID, req)
	if err != nil {
		switch maintenancesvc.Code(err) {
		case maintenancesvc.ErrPropertyNotFound:
			return respond.NotFound(c, "Property not found")
		case maintenancesvc.ErrNoApprovedBooking:
			return respond.Forbidden(c, "You can only create maintenance requests for properties you are renting")
		default:
			ct.Log.Error("maintenance create", "err", err)
			return respond.ServerError(c, "Failed to create maintenance request")
		}
	}
	return respond.Created(c, m)
}

// PATCH /maintenance/:id
func (ct *Controller) UpdateStatus(c echo.Context) error {
	ident, ok := jwtx.FromContext(c)
	if !ok {
		return respond.Unauthorized(c)
	}
	if !ident.HasRole(model.RoleLandlord, model.RoleAdmin) {
		return respond.Forbidden(c, "Only landlords or admins can update maintenance requests")
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return respond.BadRequest(c, "invalid id")
	}

	var req model.UpdateMaintenanceReq
	if err := c.Bind(&req); err != nil {
		return respond.BadRequest(c, "invalid JSON")
	}
	if err := c.Validate(req); err != nil {
		return respond.BadRequest(c, "Validation failed", err.Error())
	}

	m, err := ct.Svc.UpdateStatus(c.Request().Context(), id, ident.UserID, ident.Role, req.Status)
	if err != nil {
		switch maintenancesvc.Code(err) {
		case maintenancesvc.ErrNotFound:
			return respond.NotFound(c, "Maintenance request not found")
		case maintenancesvc.ErrNotOwner:
			return respond.Forbidden(c, "You can only manage maintenance requests for your own properties")
		default:
			ct.Log.Error("maintenance update", "err", err)
			return respond.ServerError(c, "Failed to update maintenance request")
		}
	}
	return respond.OK(c, m)
}
