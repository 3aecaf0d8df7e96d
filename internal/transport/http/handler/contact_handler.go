package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-contacts-api/internal/domain"
	"go-contacts-api/internal/service"
	mdw "go-contacts-api/internal/transport/http/middleware"
	"go-contacts-api/internal/transport/http/response"
)

type ContactHandler struct {
	contacts *service.ContactService
}

func NewContactHandler(contacts *service.ContactService) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

func (h *ContactHandler) List(c *gin.Context) {
	f := domain.ContactFilter{
		Search: c.Query("search"),
		Status: c.Query("status"),
		Letter: c.Query("letter"),
	}
	cts, err := h.contacts.List(c.GetString(mdw.KeyUserID), f)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, cts)
}

func (h *ContactHandler) Get(c *gin.Context) {
	ct, err := h.contacts.Get(c.Param("id"), c.GetString(mdw.KeyUserID))
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, ct)
}

type contactReq struct {
	Name  string `json:"name" binding:"required,max=128"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone" binding:"omitempty,max=32"`
	Notes string `json:"notes" binding:"omitempty,max=1024"`
	// status 由服务端推导，客户端传入一律忽略
	Status string `json:"status"`
}

func (h *ContactHandler) Create(c *gin.Context) {
	var req contactReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	ct, err := h.contacts.Create(c.GetString(mdw.KeyUserID), service.ContactInput{
		Name: req.Name, Email: req.Email, Phone: req.Phone, Notes: req.Notes,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"contact": ct})
}

func (h *ContactHandler) Update(c *gin.Context) {
	var req contactReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	ct, err := h.contacts.Update(c.Param("id"), c.GetString(mdw.KeyUserID), service.ContactInput{
		Name: req.Name, Email: req.Email, Phone: req.Phone, Notes: req.Notes,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contact": ct})
}

func (h *ContactHandler) Delete(c *gin.Context) {
	if err := h.contacts.Delete(c.Param("id"), c.GetString(mdw.KeyUserID)); err != nil {
		response.FromError(c, err)
		return
	}
	response.Message(c, "contact deleted")
}
