package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-contacts-api/internal/transport/http/response"
)

// Timeout 请求级超时；已开始的删号事务由存储层自行提交或回滚
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
		if ctx.Err() == context.DeadlineExceeded && !c.Writer.Written() {
			response.Fail(c, http.StatusGatewayTimeout, "timeout")
			c.Abort()
		}
	}
}
