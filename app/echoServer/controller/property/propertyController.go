package property

import (
	"log/slog"
	"strconv"

	"campusshelter/app/echoServer/jwtx"
	"campusshelter/app/echoServer/respond"
	"campusshelter/model"
	propertysvc "campusshelter/service/property"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc propertysvc.Service
	Log *slog.Logger
}

// GET /properties
// Public: only approved listings show up here.
func (ct *Controller) List(c echo.Context) error {
	page, limit, offset := respond.Pagination(c)
	f := parseFilter(c)

	items, total, err := ct.Svc.Search(c.Request().Context(), f, limit, offset)
	if err != nil {
		ct.Log.Error("property search", "err", err)
		return respond.ServerError(c, "Failed to fetch properties")
	}
	return respond.Paginated(c, items, respond.NewMeta(total, page, limit))
}

func parseFilter(c echo.Context) model.PropertyFilter {
	var f model.PropertyFilter
	if v, err := strconv.ParseFloat(c.QueryParam("minPrice"), 64); err == nil {
		f.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(c.QueryParam("maxPrice"), 64); err == nil {
		f.MaxPrice = &v
	}
	f.Location = c.QueryParam("location")
	f.Wifi = c.QueryParam("wifi") == "true"
	f.Furnished = c.QueryParam("furnished") == "true"
	switch rt := model.RoomType(c.QueryParam("roomType")); rt {
	case model.RoomSingle, model.RoomSelfCon, model.RoomMiniFlat:
		f.RoomType = rt
	}
	if v, err := strconv.ParseFloat(c.QueryParam("maxDistance"), 64); err == nil {
		f.MaxDistance = &v
	}
	if v, err := strconv.ParseFloat(c.QueryParam("minRating"), 64); err == nil {
		f.MinRating = &v
	}
	return f
}

// GET /properties/:id
func (ct *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return respond.BadRequest(c, "invalid id")
	}

	p, err := ct.Svc.Get(c.Request().Context(), id)
	if err != nil {
		if propertysvc.Code(err) == propertysvc.ErrNotFound {
			return respond.NotFound(c, "Property not found")
		}
		ct.Log.Error("property detail", "err", err)
		return respond.ServerError(c, "Failed to fetch property")
	}
	return respond.OK(c, p)
}

// POST /properties
func (ct *Controller) Create(c echo.Context) error {
	ident, ok := jwtx.FromContext(c)
	if !ok {
		return respond.Unauthorized(c)
	}
	if !ident.HasRole(model.RoleLandlord) {
		return respond.Forbidden(c, "Only landlords can create properties")
	}

	var req model.CreatePropertyReq
	if err := c.Bind(&req); err != nil {
		return respond.BadRequest(c, "invalid JSON")
	}
	if err := c.Validate(req); err != nil {
		return respond.BadRequest(c, "Validation failed", err.Error())
	}

	p, err := ct.Svc.Create(c.Request().Context(), ident.UserID, req)
	if err != nil {
		ct.Log.Error("property create", "err", err)
		return respond.ServerError(c, "Failed to create property")
	}
	return respond.Created(c, p)
}

// PATCH /properties/:id
func (ct *Controller) Update(c echo.Context) error {
	ident, ok := jwtx.FromContext(c)
	if !ok {
		return respond.Unauthorized(c)
	}
	if !ident.HasRole(model.RoleLandlord) {
		return respond.Forbidden(c, "Only landlords can update properties")
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return respond.BadRequest(c, "invalid id")
	}

	var req model.UpdatePropertyReq
	if err := c.Bind(&req); err != nil {
		return respond.BadRequest(c, "invalid JSON")
	}
	if err := c.Validate(req); err != nil {
		return respond.BadRequest(c, "Validation failed", err.Error())
	}

	p, err := ct.Svc.Update(c.Request().Context(), id, ident.UserID, req)
	if err != nil {
		switch propertysvc.Code(err) {
		case propertysvc.ErrNotFound:
			return respond.NotFound(c, "Property not found")
		case propertysvc.ErrNotOwner:
			return respond.Forbidden(c, "You can only update your own properties")
		default:
			ct.Log.Error("property update", "err", err)
			return respond.ServerError(c, "Failed to update property")
		}
	}
	return respond.OK(c, p)
}

// DELETE /properties/:id
func (ct *Controller) Delete(c echo.Context) error {
	ident, ok := jwtx.FromContext(c)
	if !ok {
		return respond.Unauthorized(c)
	}
	if !ident.HasRole(model.RoleLandlord, model.RoleAdmin) {
		return respond.Forbidden(c, "Forbidden")
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return respond.BadRequest(c, "invalid id")
	}

	if err := ct.Svc.Delete(c.Request().Context(), id, ident.UserID, ident.Role); err != nil {
		switch propertysvc.Code(err) {
		case propertysvc.ErrNotFound:
			return respond.NotFound(c, "Property not found")
		case propertysvc.ErrNotOwner:
			return respond.Forbidden(c, "You can only delete your own properties")
		default:
			ct.Log.Error("property delete", "err", err)
			return respond.ServerError(c, "Failed to delete property")
		}
	}
	return respond.OK(c, echo.Map{"message": "Property deleted successfully"})
}
