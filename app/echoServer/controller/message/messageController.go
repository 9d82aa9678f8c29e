package message

import (
	"log/slog"
	"strconv"

	"campusshelter/app/echoServer/jwtx"
	"campusshelter/app/echoServer/respond"
	"campusshelter/model"
	messagesvc "campusshelter/service/message"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc messagesvc.Service
	Log *slog.Logger
}

// GET /messages
// Optional query param userId narrows to one conversation partner.
func (ct *Controller) List(c echo.Context) error {
	ident, ok := jwtx.FromContext(c)
	if !ok {
		return respond.Unauthorized(c)
	}

	var partnerID *int64
	if v, err := strconv.ParseInt(c.QueryParam("userId"), 10, 64); err == nil && v > 0 {
		partnerID = &v
	}

	page, limit, offset := respond.Pagination(c)
	rows, total, err := ct.Svc.List(c.Request().Context(), ident.UserID, partnerID, limit, offset)
	if err != nil {
		ct.Log.Error("message list", "err", err)
		return respond.ServerError(c, "Failed to fetch messages")
	}
	return respond.Paginated(c, rows, respond.NewMeta(total, page, limit))
}

// POST /messages
func (ct *Controller) Send(c echo.Context) error {
	ident, ok := jwtx.FromContext(c)
	if !ok {
		return respond.Unauthorized(c)
	}

	var req model.SendMessageReq
	if err := c.Bind(&req); err != nil {
		return respond.BadRequest(c, "invalid JSON")
	}
	if err := c.Validate(req); err != nil {
		return respond.BadRequest(c, "Validation failed", err.Error())
	}

	m, err := ct.Svc.Send(c.Request().Context(), ident.UserID, req)
	if err != nil {
		switch messagesvc.Code(err) {
		case messagesvc.ErrSelfSend:
			return respond.BadRequest(c, "You cannot send a message to yourself")
		case messagesvc.ErrReceiverNotFound:
			return respond.NotFound(c, "Receiver not found")
		default:
			ct.Log.Error("message send", "err", err)
			return respond.ServerError(c, "Failed to send message")
		}
	}
	return respond.Created(c, m)
}
