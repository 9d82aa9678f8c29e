package respond

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func ctxWithQuery(t *testing.T, query string) echo.Context {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestPagination_Defaults(t *testing.T) {
	page, limit, offset := Pagination(ctxWithQuery(t, ""))
	require.Equal(t, 1, page)
	require.Equal(t, 10, limit)
	require.Equal(t, 0, offset)
}

func TestPagination_Clamps(t *testing.T) {
	page, limit, _ := Pagination(ctxWithQuery(t, "page=0&limit=0"))
	require.Equal(t, 1, page)
	require.Equal(t, 1, limit)

	_, limit, _ = Pagination(ctxWithQuery(t, "limit=500"))
	require.Equal(t, 100, limit)

	page, limit, offset := Pagination(ctxWithQuery(t, "page=3&limit=25"))
	require.Equal(t, 3, page)
	require.Equal(t, 25, limit)
	require.Equal(t, 50, offset)
}

func TestPagination_IgnoresGarbage(t *testing.T) {
	page, limit, offset := Pagination(ctxWithQuery(t, "page=abc&limit=xyz"))
	require.Equal(t, 1, page)
	require.Equal(t, 10, limit)
	require.Equal(t, 0, offset)
}

func TestNewMeta(t *testing.T) {
	m := NewMeta(25, 2, 10)
	require.Equal(t, 25, m.Total)
	require.Equal(t, 2, m.Page)
	require.Equal(t, 10, m.Limit)
	require.Equal(t, 3, m.TotalPages)

	require.Equal(t, 0, NewMeta(0, 1, 10).TotalPages)
}
