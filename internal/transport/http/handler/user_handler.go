package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-contacts-api/internal/service"
	mdw "go-contacts-api/internal/transport/http/middleware"
	"go-contacts-api/internal/transport/http/response"
)

type UserHandler struct {
	users *service.UserService
	log   *zap.Logger
}

func NewUserHandler(users *service.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{users: users, log: log}
}

func (h *UserHandler) Profile(c *gin.Context) {
	u, err := h.users.Profile(c.GetString(mdw.KeyUserID))
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

type profileReq struct {
	Name      string `json:"name" binding:"required,max=64"`
	Phone     string `json:"phone" binding:"omitempty,max=32"`
	AvatarURL string `json:"avatar_url" binding:"omitempty,max=255"`
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req profileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	u, err := h.users.UpdateProfile(c.GetString(mdw.KeyUserID), service.ProfileInput{
		Name: req.Name, Phone: req.Phone, AvatarURL: req.AvatarURL,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u, "message": "profile updated"})
}

func (h *UserHandler) DeleteAccount(c *gin.Context) {
	uid := c.GetString(mdw.KeyUserID)
	if err := h.users.DeleteAccount(c.Request.Context(), uid); err != nil {
		h.log.Error("delete account failed",
			zap.Error(err),
			zap.String("user_id", uid),
			zap.String("rid", c.GetString(mdw.KeyRequestID)),
		)
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "account deleted"})
}
