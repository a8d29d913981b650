package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/avolkov/librarian/internal/library"
)

// BorrowRequest is the payload of the borrow panel's form.
type BorrowRequest struct {
	BookID   uint `json:"book_id" binding:"required"`
	MemberID uint `json:"member_id" binding:"required"`
}

type BorrowsController struct {
	service *library.Service
	log     *zap.Logger
}

func NewBorrowsController(service *library.Service, log *zap.Logger) *BorrowsController {
	return &BorrowsController{service: service, log: log}
}

// List returns the full borrow ledger joined with book titles and member
// names.
func (controller *BorrowsController) List(c *gin.Context) {
	rows, err := controller.service.ListBorrowRecordsJoined()
	if err != nil {
		respondDomainError(c, controller.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"borrow_records": rows, "count": len(rows)})
}

// Borrow checks a book out to a member.
func (controller *BorrowsController) Borrow(c *gin.Context) {
	var req BorrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	borrow, err := controller.service.BorrowBook(req.BookID, req.MemberID)
	if err != nil {
		respondDomainError(c, controller.log, err)
		return
	}
	respondCreated(c, borrow)
}

// Return closes an open borrow record.
func (controller *BorrowsController) Return(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	borrow, err := controller.service.ReturnBook(id)
	if err != nil {
		respondDomainError(c, controller.log, err)
		return
	}
	c.JSON(http.StatusOK, borrow)
}

// Delete removes a ledger row without touching the book's availability.
func (controller *BorrowsController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := controller.service.DeleteBorrowRecord(id); err != nil {
		respondDomainError(c, controller.log, err)
		return
	}
	respondSuccess(c, "borrow record deleted")
}
