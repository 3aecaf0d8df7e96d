package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-contacts-api/internal/service"
	mdw "go-contacts-api/internal/transport/http/middleware"
	"go-contacts-api/internal/transport/http/response"
)

type AuthHandler struct {
	auth  *service.AuthService
	users *service.UserService
	log   *zap.Logger
}

func NewAuthHandler(auth *service.AuthService, users *service.UserService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, users: users, log: log}
}

type registerReq struct {
	Name     string `json:"name" binding:"required,max=64"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"omitempty,max=32"`
	Password string `json:"password" binding:"required,min=6"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	u, token, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		Name: req.Name, Email: req.Email, Phone: req.Phone, Password: req.Password,
	})
	if err != nil {
		h.logErr(c, "register failed", err)
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": token, "user": u})
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	u, token, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": u})
}

func (h *AuthHandler) Profile(c *gin.Context) {
	u, err := h.users.Profile(c.GetString(mdw.KeyUserID))
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

type forgotReq struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	// 无论邮箱是否存在都返回同一提示
	if err := h.auth.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		h.logErr(c, "forgot password failed", err)
		response.FromError(c, err)
		return
	}
	response.Message(c, "if the email is registered, reset instructions have been issued")
}

type resetReq struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.auth.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		response.FromError(c, err)
		return
	}
	response.Message(c, "password reset successfully")
}

func (h *AuthHandler) logErr(c *gin.Context, msg string, err error) {
	h.log.Error(msg,
		zap.Error(err),
		zap.String("rid", c.GetString(mdw.KeyRequestID)),
	)
}
