package response

import (
	"errors"
	log "log/slog"
	"net/http"

	"gymmate/internal/pkg/validate"
	"gymmate/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

// Success 成功返回封装
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// NoContent 无返回体的成功响应
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Detail 带说明信息的响应
func Detail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"detail": message})
}

// Error 处理错误：字段校验错误逐字段返回，业务错误按 ErrorMap 映射状态码
func Error(c *gin.Context, err error) {
	if fieldErrors, ok := validate.AsFieldErrors(err); ok {
		c.JSON(http.StatusBadRequest, fieldErrors)
		return
	}

	var unmarshalTypeError *json.UnmarshalTypeError
	if errors.As(err, &unmarshalTypeError) {
		Detail(c, http.StatusBadRequest, "Malformed request body")
		return
	}

	status, ok := service.ErrorMap[err]
	if !ok {
		status = http.StatusInternalServerError
		log.Error("Error", "err", err)
	}
	Detail(c, status, err.Error())
}
