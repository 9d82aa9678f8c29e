package admin

import (
	"log/slog"
	"strconv"

	"campusshelter/app/echoServer/jwtx"
	"campusshelter/app/echoServer/respond"
	"campusshelter/model"
	adminsvc "campusshelter/service/admin"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc adminsvc.Service
	Log *slog.Logger
}

// GET /admin/users
// Optional query param role filters by STUDENT, LANDLORD or ADMIN.
func (ct *Controller) Users(c echo.Context) error {
	ident, ok := jwtx.FromContext(c)
	if !ok {
		return respond.Unauthorized(c)
	}
	if !ident.HasRole(model.RoleAdmin) {
		return respond.Forbidden(c, "Admin access required")
	}

	role := model.Role(c.QueryParam("role"))
	switch role {
	case "", model.RoleStudent, model.RoleLandlord, model.RoleAdmin:
	default:
		return respond.BadRequest(c, "invalid role filter")
	}

	page, limit, offset := respond.Pagination(c)
	rows, total, err := ct.Svc.Users(c.Request().Context(), role, limit, offset)
	if err != nil {
		ct.Log.Error("admin users", "err", err)
		return respond.ServerError(c, "Failed to fetch users")
	}
	return respond.Paginated(c, rows, respond.NewMeta(total, page, limit))
}

// GET /admin/analytics
func (ct *Controller) Analytics(c echo.Context) error {
	ident, ok := jwtx.FromContext(c)
	if !ok {
		return respond.Unauthorized(c)
	}
	if !ident.HasRole(model.RoleAdmin) {
		return respond.Forbidden(c, "Admin access required")
	}

	a, err := ct.Svc.Analytics(c.Request().Context())
	if err != nil {
		ct.Log.Error("admin analytics", "err", err)
		return respond.ServerError(c, "Failed to fetch analytics")
	}
	return respond.OK(c, a)
}

// PATCH /admin/properties/:id
func (ct *Controller) SetPropertyApproval(c echo.Context) error {
	ident, ok := jwtx.FromContext(c)
	if !ok {
		return respond.Unauthorized(c)
	}
	if !ident.HasRole(model.RoleAdmin) {
		return respond.Forbidden(c, "Admin access required")
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return respond.BadRequest(c, "invalid id")
	}

	var req model.ApprovePropertyReq
	if err := c.Bind(&req); err != nil {
		return respond.BadRequest(c, "invalid JSON")
	}
	if err := c.Validate(req); err != nil {
		return respond.BadRequest(c, "Validation failed", err.Error())
	}

	p, err := ct.Svc.SetPropertyApproval(c.Request().Context(), id, *req.Approved)
	if err != nil {
		if adminsvc.Code(err) == adminsvc.ErrPropertyNotFound {
			return respond.NotFound(c, "Property not found")
		}
		ct.Log.Error("admin property approval", "err", err)
		return respond.ServerError(c, "Failed to update property")
	}
	return respond.OK(c, p)
}

// DELETE /admin/properties/:id
func (ct *Controller) DeleteProperty(c echo.Context) error {
	ident, ok := jwtx.FromContext(c)
	if !ok {
		return respond.Unauthorized(c)
	}
	if !ident.HasRole(model.RoleAdmin) {
		return respond.Forbidden(c, "Admin access required")
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return respond.BadRequest(c, "invalid id")
	}

	if err := ct.Svc.DeleteProperty(c.Request().Context(), id); err != nil {
		if adminsvc.Code(err) == adminsvc.ErrPropertyNotFound {
			return respond.NotFound(c, "Property not found")
		}
		ct.Log.Error("admin property delete", "err", err)
		return respond.ServerError(c, "Failed to delete property")
	}
	return respond.OK(c, echo.Map{"deleted": true})
}
