// Package borrows provides database operations for the borrow ledger.
//
// The circulation transitions (borrow, return) touch both the Borrow table
// and the book's availability flag; each runs inside a single transaction
// so the two can never be observed out of sync.
package borrows

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/avolkov/librarian/internal/entities"
)

// Sentinel errors for circulation rule violations. The service layer maps
// these onto its error taxonomy.
var (
	ErrBookNotFound    = errors.New("book does not exist")
	ErrMemberNotFound  = errors.New("member does not exist")
	ErrBookUnavailable = errors.New("book is not available")
	ErrAlreadyBorrowed = errors.New("an open borrow record already exists for this book")
	ErrBorrowNotFound  = errors.New("borrow record does not exist")
	ErrAlreadyReturned = errors.New("borrow record is already closed")
)

// BorrowWithDetails is one ledger row joined with book title and member
// name, matching the original borrow panel display.
type BorrowWithDetails struct {
	ID         uint       `json:"id"`
	BookID     uint       `json:"book_id"`
	BookTitle  string     `json:"book_title"`
	MemberID   uint       `json:"member_id"`
	MemberName string     `json:"member_name"`
	BorrowDate time.Time  `json:"borrow_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
}

// Repository handles all borrow-ledger database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new borrows repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Borrow opens a new borrow row for the book at the given time and flips
// the book to Not Available, in one transaction.
//
// The availability flag and the ledger are maintained separately, so both
// are checked here; either one being in the borrowed state aborts the
// transition before anything is written.
func (r *Repository) Borrow(bookID, memberID uint, at time.Time) (*entities.Borrow, error) {
	var borrow *entities.Borrow
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var book entities.Book
		if err := tx.First(&book, bookID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookNotFound
			}
			return err
		}
		if book.Availability != entities.Available {
			return ErrBookUnavailable
		}

		var openCount int64
		if err := tx.Model(&entities.Borrow{}).
			Where("book_id = ? AND return_date IS NULL", bookID).
			Count(&openCount).Error; err != nil {
			return err
		}
		if openCount > 0 {
			return ErrAlreadyBorrowed
		}

		var member entities.Member
		if err := tx.First(&member, memberID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMemberNotFound
			}
			return err
		}

		borrow = &entities.Borrow{
			BookID:     bookID,
			MemberID:   memberID,
			BorrowDate: at,
		}
		if err := tx.Create(borrow).Error; err != nil {
			return err
		}

		book.Availability = entities.NotAvailable
		return tx.Save(&book).Error
	})
	if err != nil {
		return nil, err
	}
	return borrow, nil
}

// Return closes the given borrow row at the given time and flips the book
// back to Available, in one transaction. The row must currently be open.
func (r *Repository) Return(borrowID uint, at time.Time) (*entities.Borrow, error) {
	var borrow entities.Borrow
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&borrow, borrowID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBorrowNotFound
			}
			return err
		}
		if !borrow.Open() {
			return ErrAlreadyReturned
		}

		borrow.ReturnDate = &at
		if err := tx.Save(&borrow).Error; err != nil {
			return err
		}

		return tx.Model(&entities.Book{}).
			Where("id = ?", borrow.BookID).
			Update("availability", entities.Available).Error
	})
	if err != nil {
		return nil, err
	}
	return &borrow, nil
}

// Delete removes a borrow row without touching the book's availability.
// Used for correcting erroneous ledger entries, not for returns.
// Returns ErrBorrowNotFound if the row does not exist.
func (r *Repository) Delete(borrowID uint) error {
	result := r.db.Delete(&entities.Borrow{}, borrowID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBorrowNotFound
	}
	return nil
}

// GetByID retrieves a borrow row by ID.
func (r *Repository) GetByID(id uint) (*entities.Borrow, error) {
	var borrow entities.Borrow
	err := r.db.First(&borrow, id).Error
	if err != nil {
		return nil, err
	}
	return &borrow, nil
}

// OpenBorrowForBook returns the open borrow row for the book, or
// gorm.ErrRecordNotFound if the book is not checked out.
func (r *Repository) OpenBorrowForBook(bookID uint) (*entities.Borrow, error) {
	var borrow entities.Borrow
	err := r.db.Where("book_id = ? AND return_date IS NULL", bookID).First(&borrow).Error
	if err != nil {
		return nil, err
	}
	return &borrow, nil
}

// CountForBook returns the total number of ledger rows for the book.
func (r *Repository) CountForBook(bookID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Borrow{}).Where("book_id = ?", bookID).Count(&count).Error
	return count, err
}

// ListJoined returns the full ledger joined with book titles and member
// names, matching the original borrow panel query.
func (r *Repository) ListJoined() ([]BorrowWithDetails, error) {
	var rows []BorrowWithDetails
	err := r.db.Table("Borrow").
		Select("Borrow.id, Borrow.book_id, Book.title AS book_title, " +
			"Borrow.member_id, Member.name AS member_name, " +
			"Borrow.borrow_date, Borrow.return_date").
		Joins("JOIN Book ON Book.id = Borrow.book_id").
		Joins("JOIN Member ON Member.id = Borrow.member_id").
		Order("Borrow.id ASC").
		Scan(&rows).Error
	return rows, err
}
