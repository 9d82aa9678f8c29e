package document

import (
	"log/slog"

	"campusshelter/app/echoServer/jwtx"
	"campusshelter/app/echoServer/respond"
	documentsvc "campusshelter/service/document"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc documentsvc.Service
	Log *slog.Logger
}

// POST /documents/upload
// multipart/form-data: file (<= 10 MB) and type.
func (ct *Controller) Upload(c echo.Context) error {
	ident, ok := jwtx.FromContext(c)
	if !ok {
		return respond.Unauthorized(c)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return respond.BadRequest(c, "File is required")
	}
	docType := c.FormValue("type")
	if docType == "" {
		return respond.BadRequest(c, "Document type is required")
	}

	src, err := fh.Open()
	if err != nil {
		ct.Log.Error("document open", "err", err)
		return respond.ServerError(c, "Failed to upload document")
	}
	defer src.Close()

	d, err := ct.Svc.Save(c.Request().Context(), ident.UserID, docType, fh.Filename, fh.Size, src)
	if err != nil {
		if documentsvc.Code(err) == documentsvc.ErrTooLarge {
			return respond.BadRequest(c, "File size must not exceed 10MB")
		}
		ct.Log.Error("document save", "err", err)
		return respond.ServerError(c, "Failed to upload document")
	}
	return respond.Created(c, d)
}
