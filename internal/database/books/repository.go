// Package books provides database operations for the book catalog.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.GetByID(123)
package books

import (
	"gorm.io/gorm"

	"github.com/avolkov/librarian/internal/entities"
)

// BookWithCategory is one row of the book overview, joined with the
// owning category's name and color.
type BookWithCategory struct {
	ID            uint                  `json:"id"`
	Title         string                `json:"title"`
	Author        string                `json:"author"`
	Availability  entities.Availability `json:"availability"`
	CategoryID    uint                  `json:"category_id"`
	CategoryName  string                `json:"category_name"`
	CategoryColor string                `json:"category_color"`
}

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new book.
func (r *Repository) Create(title, author string, categoryID uint, availability entities.Availability) (*entities.Book, error) {
	book := &entities.Book{
		CategoryID:   categoryID,
		Title:        title,
		Author:       author,
		Availability: availability,
	}
	if err := r.db.Create(book).Error; err != nil {
		return nil, err
	}
	return book, nil
}

// GetByID retrieves a book by ID.
func (r *Repository) GetByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// Update replaces all editable fields of an existing book.
// Returns gorm.ErrRecordNotFound if the book does not exist.
func (r *Repository) Update(id uint, title, author string, categoryID uint, availability entities.Availability) (*entities.Book, error) {
	var book entities.Book
	if err := r.db.First(&book, id).Error; err != nil {
		return nil, err
	}
	book.Title = title
	book.Author = author
	book.CategoryID = categoryID
	book.Availability = availability
	if err := r.db.Save(&book).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// Delete removes a book and all its borrow rows, open or closed, in one
// transaction. Returns gorm.ErrRecordNotFound if the book does not exist.
func (r *Repository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var book entities.Book
		if err := tx.First(&book, id).Error; err != nil {
			return err
		}
		if err := tx.Where("book_id = ?", id).Delete(&entities.Borrow{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Book{}, id).Error
	})
}

// ListWithCategory returns all books joined with their category, matching
// the original book panel query.
func (r *Repository) ListWithCategory() ([]BookWithCategory, error) {
	var rows []BookWithCategory
	err := r.db.Table("Book").
		Select("Book.id, Book.title, Book.author, Book.availability, Book.category_id, " +
			"BookCategory.name AS category_name, BookCategory.color AS category_color").
		Joins("JOIN BookCategory ON BookCategory.id = Book.category_id").
		Order("Book.id ASC").
		Scan(&rows).Error
	return rows, err
}

// HasOpenBorrow reports whether an open borrow row references the book.
func (r *Repository) HasOpenBorrow(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&entities.Borrow{}).
		Where("book_id = ? AND return_date IS NULL", id).
		Count(&count).Error
	return count > 0, err
}
