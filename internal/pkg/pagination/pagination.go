package pagination

import (
	"fmt"
	"strconv"
	"strings"

	"gymmate/internal/api/config"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPageSize = 30
	MaxPageSize     = 100
)

// Params 解析后的分页参数
type Params struct {
	Page    int
	PerPage int
}

func (p Params) Limit() int {
	return p.PerPage
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Parse 从查询串读取 page 与 per_page，越界值回退到服务端上限
func Parse(c *gin.Context, cfg config.PageConfig) Params {
	defaultSize := cfg.DefaultSize
	if defaultSize <= 0 {
		defaultSize = DefaultPageSize
	}
	maxSize := cfg.MaxSize
	if maxSize <= 0 {
		maxSize = MaxPageSize
	}

	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}

	perPage, err := strconv.Atoi(c.Query("per_page"))
	if err != nil || perPage < 1 {
		perPage = defaultSize
	}
	if perPage > maxSize {
		perPage = maxSize
	}

	return Params{Page: page, PerPage: perPage}
}

// SetHeaders 以 Link 头携带翻页导航，总数放在 X-Total-Count
func SetHeaders(c *gin.Context, p Params, total int64) {
	var links []string

	if int64(p.Page*p.PerPage) < total {
		links = append(links, fmt.Sprintf(`<%s>; rel="next"`, pageURL(c, p.Page+1)))
	}
	if p.Page > 1 {
		links = append(links, fmt.Sprintf(`<%s>; rel="prev"`, pageURL(c, p.Page-1)))
	}

	if len(links) > 0 {
		c.Header("Link", strings.Join(links, ", "))
	}
	c.Header("X-Total-Count", strconv.FormatInt(total, 10))
}

func pageURL(c *gin.Context, page int) string {
	u := *c.Request.URL
	query := u.Query()
	query.Set("page", strconv.Itoa(page))
	u.RawQuery = query.Encode()
	return u.String()
}
