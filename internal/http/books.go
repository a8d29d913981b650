package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/avolkov/librarian/internal/entities"
	"github.com/avolkov/librarian/internal/library"
)

// BookRequest is the payload of the book panel's add/update form.
// Availability is caller-supplied, as in the original application.
type BookRequest struct {
	Title        string `json:"title" binding:"required"`
	Author       string `json:"author" binding:"required"`
	CategoryID   uint   `json:"category_id" binding:"required"`
	Availability string `json:"availability" binding:"required,availability"`
}

type BooksController struct {
	service *library.Service
	log     *zap.Logger
}

func NewBooksController(service *library.Service, log *zap.Logger) *BooksController {
	return &BooksController{service: service, log: log}
}

// List returns all books joined with their category.
func (controller *BooksController) List(c *gin.Context) {
	rows, err := controller.service.ListBooksWithCategory()
	if err != nil {
		respondDomainError(c, controller.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"books": rows, "count": len(rows)})
}

func (controller *BooksController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := controller.service.GetBook(id)
	if err != nil {
		respondDomainError(c, controller.log, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (controller *BooksController) Create(c *gin.Context) {
	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	book, err := controller.service.CreateBook(req.Title, req.Author, req.CategoryID, entities.Availability(req.Availability))
	if err != nil {
		respondDomainError(c, controller.log, err)
		return
	}
	respondCreated(c, book)
}

func (controller *BooksController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	book, err := controller.service.UpdateBook(id, req.Title, req.Author, req.CategoryID, entities.Availability(req.Availability))
	if err != nil {
		respondDomainError(c, controller.log, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (controller *BooksController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := controller.service.DeleteBook(id); err != nil {
		respondDomainError(c, controller.log, err)
		return
	}
	respondSuccess(c, "book deleted")
}
