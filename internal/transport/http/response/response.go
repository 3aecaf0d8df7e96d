package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-contacts-api/internal/service"
)

// Fail 统一错误体 {"error": msg}
func Fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

// Message 统一提示体 {"message": msg}
func Message(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

// FromError 业务错误按其 Code 映射为 HTTP 状态；
// 其它错误一律 500，细节只进日志不出响应
func FromError(c *gin.Context, err error) {
	var se *service.Error
	if errors.As(err, &se) {
		Fail(c, se.Code, se.Msg)
		return
	}
	Fail(c, http.StatusInternalServerError, "internal server error")
}
