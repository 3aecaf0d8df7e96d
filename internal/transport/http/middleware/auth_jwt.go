package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"go-contacts-api/internal/core/auth"
	"go-contacts-api/internal/domain"
	"go-contacts-api/internal/transport/http/response"
)

// context key
const (
	KeyUserID = "userId"
	KeyEmail  = "email"
)

// AuthJWT 校验 Bearer 会话令牌。令牌无状态不可吊销，
// 所以每个请求都回库确认用户仍然存在——删号后的旧令牌在这里失效。
func AuthJWT(j *auth.JWTer, users domain.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			abort(c, "missing token")
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			if err == auth.ErrExpiredToken {
				abort(c, "token expired")
			} else {
				abort(c, "invalid token")
			}
			return
		}
		// 重置令牌不能当会话用
		if claims.Type != auth.TokenTypeSession {
			abort(c, "invalid token")
			return
		}
		u, err := users.FindByID(claims.UID)
		if err != nil {
			response.Fail(c, http.StatusInternalServerError, "internal server error")
			c.Abort()
			return
		}
		if u == nil {
			abort(c, "invalid token, user no longer exists")
			return
		}
		c.Set(KeyUserID, u.ID)
		c.Set(KeyEmail, u.Email)
		c.Next()
	}
}

func abort(c *gin.Context, msg string) {
	response.Fail(c, http.StatusUnauthorized, msg)
	c.Abort()
}
