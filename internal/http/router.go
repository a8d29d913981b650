package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())

	RegisterValidations()

	health := NewHealthController(cfg.Database, cfg.Version)
	categoriesController := NewCategoriesController(cfg.Service, cfg.Logger)
	booksController := NewBooksController(cfg.Service, cfg.Logger)
	membersController := NewMembersController(cfg.Service, cfg.Logger)
	borrowsController := NewBorrowsController(cfg.Service, cfg.Logger)
	eventsController := NewEventsController(cfg.Bus, cfg.Logger)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Category panel endpoints
	router.GET("/api/categories", categoriesController.List)
	router.POST("/api/categories", categoriesController.Create)
	router.PUT("/api/categories/:id", categoriesController.Update)
	router.DELETE("/api/categories/:id", categoriesController.Delete)

	// Book panel endpoints
	router.GET("/api/books", booksController.List)
	router.GET("/api/books/:id", booksController.Get)
	router.POST("/api/books", booksController.Create)
	router.PUT("/api/books/:id", booksController.Update)
	router.DELETE("/api/books/:id", booksController.Delete)

	// Member panel endpoints
	router.GET("/api/members", membersController.List)
	router.POST("/api/members", membersController.Create)
	router.PUT("/api/members/:id", membersController.Update)
	router.DELETE("/api/members/:id", membersController.Delete)

	// Circulation endpoints
	router.GET("/api/borrows", borrowsController.List)
	router.POST("/api/borrows", borrowsController.Borrow)
	router.POST("/api/borrows/:id/return", borrowsController.Return)
	router.DELETE("/api/borrows/:id", borrowsController.Delete)

	// Change notification feed
	router.GET("/api/events", eventsController.Stream)

	return router
}
