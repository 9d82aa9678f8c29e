package auth

import (
	"log/slog"
	"net/http"

	"campusshelter/app/echoServer/respond"
	"campusshelter/model"
	authsvc "campusshelter/service/auth"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc authsvc.Service
	Log *slog.Logger
}

// POST /auth/register
func (ct *Controller) Register(c echo.Context) error {
	var req model.RegisterReq
	if err := c.Bind(&req); err != nil {
		return respond.BadRequest(c, "invalid JSON")
	}
	if err := c.Validate(req); err != nil {
		return respond.BadRequest(c, "Validation failed", err.Error())
	}

	u, token, err := ct.Svc.Register(c.Request().Context(), req)
	if err != nil {
		switch authsvc.Code(err) {
		case authsvc.ErrEmailTaken:
			return respond.BadRequest(c, "Email already registered")
		default:
			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			ct.Log.Error("register failed", "err", err, "req_id", rid)
			return respond.ServerError(c, "Failed to register user")
		}
	}

	return respond.Created(c, echo.Map{"user": u, "token": token})
}

// POST /auth/login
func (ct *Controller) Login(c echo.Context) error {
	var req model.LoginReq
	if err := c.Bind(&req); err != nil {
		return respond.BadRequest(c, "invalid JSON")
	}
	if err := c.Validate(req); err != nil {
		return respond.BadRequest(c, "Validation failed", err.Error())
	}

	u, token, err := ct.Svc.Login(c.Request().Context(), req)
	if err != nil {
		switch authsvc.Code(err) {
		case authsvc.ErrInvalidCreds:
			return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Invalid email or password"})
		default:
			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			ct.Log.Error("login failed", "err", err, "req_id", rid)
			return respond.ServerError(c, "Failed to login")
		}
	}

	return respond.OK(c, echo.Map{"user": u, "token": token})
}
