package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paginationFor(t *testing.T, query string) (*Pagination, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/label/videos"+query, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	return GetPaginationFromCtx(c)
}

func TestGetPaginationFromCtx(t *testing.T) {
	p, err := paginationFor(t, "")
	require.NoError(t, err)
	assert.False(t, p.Enabled())
	lo, hi := Paginate(p, 7)
	assert.Equal(t, 0, lo)
	assert.Equal(t, 7, hi)

	p, err = paginationFor(t, "?page=2&size=3")
	require.NoError(t, err)
	assert.True(t, p.Enabled())
	assert.Equal(t, 3, p.GetOffset())
	lo, hi = Paginate(p, 7)
	assert.Equal(t, 3, lo)
	assert.Equal(t, 6, hi)

	p, err = paginationFor(t, "?page=4&size=3")
	require.NoError(t, err)
	lo, hi = Paginate(p, 7)
	assert.Equal(t, 7, lo)
	assert.Equal(t, 7, hi)

	_, err = paginationFor(t, "?size=abc")
	assert.Error(t, err)
	_, err = paginationFor(t, "?page=0&size=2")
	assert.Error(t, err)
}

func TestGetHasMoreAndTotalPages(t *testing.T) {
	assert.True(t, GetHasMore(2, 7, 3))
	assert.False(t, GetHasMore(3, 7, 3))
	assert.Equal(t, 3, GetTotalPages(7, 3))
	assert.Equal(t, 1, GetTotalPages(7, 0))
}

func TestPaginationNextQueryString(t *testing.T) {
	p := &Pagination{Page: 2, Size: 5}
	assert.Equal(t, "page=2&size=5", p.GetQueryString())
	assert.Equal(t, "page=3&size=5", p.Next().GetQueryString())
	assert.Equal(t, 2, p.Page)
}

func TestContentTypeByName(t *testing.T) {
	assert.Equal(t, "video/mp4", ContentTypeByName("solve.mp4"))
	assert.Equal(t, echo.MIMEOctetStream, ContentTypeByName("solve.unknownext"))
}
