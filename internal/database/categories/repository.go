// Package categories provides database operations for book categories.
//
// # Usage
//
//	repo := categories.NewRepository(db)
//	category, err := repo.GetByID(123)
package categories

import (
	"gorm.io/gorm"

	"github.com/avolkov/librarian/internal/entities"
)

// CategoryWithCount is one row of the category overview: the category plus
// the number of books currently assigned to it.
type CategoryWithCount struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	BookCount int64  `json:"book_count"`
}

// Repository handles all category database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new categories repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new category.
func (r *Repository) Create(name, color string) (*entities.Category, error) {
	category := &entities.Category{
		Name:  name,
		Color: color,
	}
	if err := r.db.Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// GetByID retrieves a category by ID.
func (r *Repository) GetByID(id uint) (*entities.Category, error) {
	var category entities.Category
	err := r.db.First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// Update replaces name and color of an existing category.
// Returns gorm.ErrRecordNotFound if the category does not exist.
func (r *Repository) Update(id uint, name, color string) (*entities.Category, error) {
	var category entities.Category
	if err := r.db.First(&category, id).Error; err != nil {
		return nil, err
	}
	category.Name = name
	category.Color = color
	if err := r.db.Save(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// Delete removes a category together with all its books and every borrow
// row of those books, in one transaction. Returns gorm.ErrRecordNotFound if
// the category does not exist.
func (r *Repository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var category entities.Category
		if err := tx.First(&category, id).Error; err != nil {
			return err
		}

		if err := tx.Exec(
			`DELETE FROM Borrow WHERE book_id IN (SELECT id FROM Book WHERE category_id = ?)`, id,
		).Error; err != nil {
			return err
		}
		if err := tx.Where("category_id = ?", id).Delete(&entities.Book{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Category{}, id).Error
	})
}

// ListWithBookCounts returns all categories with their book counts,
// matching the original category panel query.
func (r *Repository) ListWithBookCounts() ([]CategoryWithCount, error) {
	var rows []CategoryWithCount
	err := r.db.Table("BookCategory").
		Select("BookCategory.id, BookCategory.name, BookCategory.color, COUNT(Book.id) AS book_count").
		Joins("LEFT JOIN Book ON Book.category_id = BookCategory.id").
		Group("BookCategory.id").
		Order("BookCategory.id ASC").
		Scan(&rows).Error
	return rows, err
}
