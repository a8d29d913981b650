package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/avolkov/librarian/internal/library"
)

// CategoryRequest is the payload of the category panel's add/update form.
type CategoryRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color" binding:"required,hexcolor"`
}

type CategoriesController struct {
	service *library.Service
	log     *zap.Logger
}

func NewCategoriesController(service *library.Service, log *zap.Logger) *CategoriesController {
	return &CategoriesController{service: service, log: log}
}

// List returns all categories with their book counts.
func (controller *CategoriesController) List(c *gin.Context) {
	rows, err := controller.service.ListCategoriesWithBookCounts()
	if err != nil {
		respondDomainError(c, controller.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": rows, "count": len(rows)})
}

func (controller *CategoriesController) Create(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	category, err := controller.service.CreateCategory(req.Name, req.Color)
	if err != nil {
		respondDomainError(c, controller.log, err)
		return
	}
	respondCreated(c, category)
}

func (controller *CategoriesController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	category, err := controller.service.UpdateCategory(id, req.Name, req.Color)
	if err != nil {
		respondDomainError(c, controller.log, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (controller *CategoriesController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := controller.service.DeleteCategory(id); err != nil {
		respondDomainError(c, controller.log, err)
		return
	}
	respondSuccess(c, "category deleted")
}
