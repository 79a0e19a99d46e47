package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymmate/internal/api/config"
)

func newTestContext(t *testing.T, target string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", target, nil)
	return c, w
}

func TestParse(t *testing.T) {
	cfg := config.PageConfig{DefaultSize: 30, MaxSize: 100}

	cases := []struct {
		name    string
		target  string
		page    int
		perPage int
	}{
		{"defaults", "/api/v1/exercises", 1, 30},
		{"explicit", "/api/v1/exercises?page=3&per_page=10", 3, 10},
		{"clamped to max", "/api/v1/exercises?per_page=500", 1, 100},
		{"garbage falls back", "/api/v1/exercises?page=x&per_page=-1", 1, 30},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestContext(t, tc.target)
			p := Parse(c, cfg)
			assert.Equal(t, tc.page, p.Page)
			assert.Equal(t, tc.perPage, p.PerPage)
		})
	}
}

func TestParamsOffset(t *testing.T) {
	p := Params{Page: 3, PerPage: 10}
	assert.Equal(t, 10, p.Limit())
	assert.Equal(t, 20, p.Offset())
}

func TestSetHeaders(t *testing.T) {
	t.Run("middle page links both ways", func(t *testing.T) {
		c, w := newTestContext(t, "/api/v1/exercises?page=2&per_page=10")
		SetHeaders(c, Params{Page: 2, PerPage: 10}, 35)

		link := w.Header().Get("Link")
		assert.Contains(t, link, `rel="next"`)
		assert.Contains(t, link, `rel="prev"`)
		assert.Contains(t, link, "page=3")
		assert.Contains(t, link, "page=1")
		assert.Equal(t, "35", w.Header().Get("X-Total-Count"))
	})

	t.Run("first page has no prev", func(t *testing.T) {
		c, w := newTestContext(t, "/api/v1/exercises?per_page=10")
		SetHeaders(c, Params{Page: 1, PerPage: 10}, 35)

		link := w.Header().Get("Link")
		assert.Contains(t, link, `rel="next"`)
		assert.NotContains(t, link, `rel="prev"`)
	})

	t.Run("last page has no next", func(t *testing.T) {
		c, w := newTestContext(t, "/api/v1/exercises?page=4&per_page=10")
		SetHeaders(c, Params{Page: 4, PerPage: 10}, 35)

		link := w.Header().Get("Link")
		require.NotEmpty(t, link)
		assert.NotContains(t, link, `rel="next"`)
		assert.Contains(t, link, `rel="prev"`)
	})

	t.Run("single page emits only the total", func(t *testing.T) {
		c, w := newTestContext(t, "/api/v1/exercises")
		SetHeaders(c, Params{Page: 1, PerPage: 30}, 5)

		assert.Empty(t, w.Header().Get("Link"))
		assert.Equal(t, "5", w.Header().Get("X-Total-Count"))
	})
}
