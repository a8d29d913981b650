package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/avolkov/librarian/internal/library"
)

// MemberRequest is the payload of the member panel's add/update form. The
// membership date is never part of it; the service assigns that itself.
type MemberRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone" binding:"required"`
}

type MembersController struct {
	service *library.Service
	log     *zap.Logger
}

func NewMembersController(service *library.Service, log *zap.Logger) *MembersController {
	return &MembersController{service: service, log: log}
}

// List returns all registered members.
func (controller *MembersController) List(c *gin.Context) {
	rows, err := controller.service.ListMembers()
	if err != nil {
		respondDomainError(c, controller.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": rows, "count": len(rows)})
}

func (controller *MembersController) Create(c *gin.Context) {
	var req MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	member, err := controller.service.CreateMember(req.Name, req.Email, req.Phone)
	if err != nil {
		respondDomainError(c, controller.log, err)
		return
	}
	respondCreated(c, member)
}

func (controller *MembersController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	member, err := controller.service.UpdateMember(id, req.Name, req.Email, req.Phone)
	if err != nil {
		respondDomainError(c, controller.log, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

func (controller *MembersController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := controller.service.DeleteMember(id); err != nil {
		respondDomainError(c, controller.log, err)
		return
	}
	respondSuccess(c, "member deleted")
}
