package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"gymmate/internal/api/config"
	"gymmate/internal/pkg/pagination"
	"gymmate/internal/pkg/response"
)

// pathID 解析路径中的资源 ID，非法 ID 一律按不存在处理
func pathID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.Detail(c, http.StatusNotFound, "Not found.")
		return 0, false
	}
	return id, true
}

func pageHeaders(c *gin.Context, p pagination.Params, total int64) {
	pagination.SetHeaders(c, p, total)
}

func pageParams(c *gin.Context) pagination.Params {
	pageCfg := config.PageConfig{}
	if config.Cfg != nil {
		pageCfg = config.Cfg.Page
	}
	return pagination.Parse(c, pageCfg)
}

// queryUint64 读取可选的数值过滤参数，缺省或非法返回 nil
func queryUint64(c *gin.Context, key string) *uint64 {
	value := c.Query(key)
	if value == "" {
		return nil
	}
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return nil
	}
	return &parsed
}

// queryDate 读取可选的日期过滤参数，格式 YYYY-MM-DD
func queryDate(c *gin.Context, key string) *time.Time {
	value := c.Query(key)
	if value == "" {
		return nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil
	}
	return &parsed
}

// queryBool 读取可选的布尔过滤参数
func queryBool(c *gin.Context, key string) *bool {
	value := c.Query(key)
	if value == "" {
		return nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return nil
	}
	return &parsed
}
