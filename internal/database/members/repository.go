// Package members provides database operations for library members.
package members

import (
	"time"

	"gorm.io/gorm"

	"github.com/avolkov/librarian/internal/entities"
)

// Repository handles all member database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new members repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new member. membershipDate is assigned by the caller
// (the service) at creation time; it is never user-supplied.
func (r *Repository) Create(name, email, phone string, membershipDate time.Time) (*entities.Member, error) {
	member := &entities.Member{
		Name:           name,
		Email:          email,
		Phone:          phone,
		MembershipDate: membershipDate,
	}
	if err := r.db.Create(member).Error; err != nil {
		return nil, err
	}
	return member, nil
}

// GetByID retrieves a member by ID.
func (r *Repository) GetByID(id uint) (*entities.Member, error) {
	var member entities.Member
	err := r.db.First(&member, id).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// Update replaces name, email and phone of an existing member. The
// membership date is immutable and deliberately left untouched.
// Returns gorm.ErrRecordNotFound if the member does not exist.
func (r *Repository) Update(id uint, name, email, phone string) (*entities.Member, error) {
	var member entities.Member
	if err := r.db.First(&member, id).Error; err != nil {
		return nil, err
	}
	member.Name = name
	member.Email = email
	member.Phone = phone
	if err := r.db.Save(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// Delete removes a member and all their borrow rows, open or closed, in one
// transaction. Returns gorm.ErrRecordNotFound if the member does not exist.
func (r *Repository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var member entities.Member
		if err := tx.First(&member, id).Error; err != nil {
			return err
		}
		if err := tx.Where("member_id = ?", id).Delete(&entities.Borrow{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Member{}, id).Error
	})
}

// List returns all members.
func (r *Repository) List() ([]entities.Member, error) {
	var members []entities.Member
	err := r.db.Order("id ASC").Find(&members).Error
	return members, err
}
