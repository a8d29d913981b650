// Package library implements the library domain service: the only component
// permitted to mutate categories, books, members and the borrow ledger.
//
// Every multi-statement mutation runs inside a transaction, so the
// availability invariant (a book is Not Available iff an open borrow row
// references it) is never observably violated. After each successful
// commit the service publishes one EntityChanged event per affected entity
// kind, which external view components consume to refresh themselves.
package library

import (
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/avolkov/librarian/internal/database"
	"github.com/avolkov/librarian/internal/database/books"
	"github.com/avolkov/librarian/internal/database/borrows"
	"github.com/avolkov/librarian/internal/database/categories"
	"github.com/avolkov/librarian/internal/database/members"
	"github.com/avolkov/librarian/internal/entities"
	"github.com/avolkov/librarian/internal/events"
	"github.com/avolkov/librarian/internal/utils"
)

// Service owns all validated mutations and queries against the four entity
// types. It assumes at most one in-flight call at a time (single-user
// desktop model); it provides no internal locking.
type Service struct {
	categories *categories.Repository
	books      *books.Repository
	members    *members.Repository
	borrows    *borrows.Repository
	bus        *events.Bus
	log        *zap.Logger
}

// NewService wires the service over an open database and an event bus.
func NewService(db *database.Database, bus *events.Bus, log *zap.Logger) *Service {
	return &Service{
		categories: categories.NewRepository(db.DB),
		books:      books.NewRepository(db.DB),
		members:    members.NewRepository(db.DB),
		borrows:    borrows.NewRepository(db.DB),
		bus:        bus,
		log:        log,
	}
}

func (s *Service) publish(kinds ...events.Kind) {
	for _, kind := range kinds {
		s.bus.Publish(events.EntityChanged{Kind: kind})
	}
}

// --- Categories ---

// CreateCategory adds a new category. The color is normalized to uppercase
// "#RRGGBB" form before it is stored.
func (s *Service) CreateCategory(name, color string) (*entities.Category, error) {
	if err := requireNonEmpty("name", name); err != nil {
		return nil, err
	}
	if err := requireNonEmpty("color", color); err != nil {
		return nil, err
	}
	normalized, err := utils.NormalizeHexColor(color)
	if err != nil {
		return nil, &ValidationError{Field: "color", Reason: err.Error()}
	}

	category, err := s.categories.Create(name, normalized)
	if err != nil {
		return nil, storage("create category", err)
	}

	s.log.Info("category created", zap.Uint("id", category.ID), zap.String("name", name))
	s.publish(events.KindCategories)
	return category, nil
}

// UpdateCategory replaces name and color of an existing category. Books
// display their category's color, so the books view is notified as well.
func (s *Service) UpdateCategory(id uint, name, color string) (*entities.Category, error) {
	if err := requireNonEmpty("name", name); err != nil {
		return nil, err
	}
	if err := requireNonEmpty("color", color); err != nil {
		return nil, err
	}
	normalized, err := utils.NormalizeHexColor(color)
	if err != nil {
		return nil, &ValidationError{Field: "color", Reason: err.Error()}
	}

	category, err := s.categories.Update(id, name, normalized)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "category", ID: id}
		}
		return nil, storage("update category", err)
	}

	s.publish(events.KindCategories, events.KindBooks)
	return category, nil
}

// DeleteCategory removes the category, all books in it and every borrow row
// of those books. Irreversible; confirmation is a presentation concern.
func (s *Service) DeleteCategory(id uint) error {
	err := s.categories.Delete(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Entity: "category", ID: id}
		}
		return storage("delete category", err)
	}

	s.log.Info("category deleted with its books and borrow records", zap.Uint("id", id))
	s.publish(events.KindCategories, events.KindBooks, events.KindBorrowRecords)
	return nil
}

// GetCategory retrieves a single category.
func (s *Service) GetCategory(id uint) (*entities.Category, error) {
	category, err := s.categories.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "category", ID: id}
		}
		return nil, storage("get category", err)
	}
	return category, nil
}

// ListCategoriesWithBookCounts returns a fresh snapshot of all categories
// with the number of books assigned to each.
func (s *Service) ListCategoriesWithBookCounts() ([]categories.CategoryWithCount, error) {
	rows, err := s.categories.ListWithBookCounts()
	if err != nil {
		return nil, storage("list categories", err)
	}
	return rows, nil
}

// --- Books ---

func (s *Service) validateBookFields(title, author string, categoryID uint, availability entities.Availability) error {
	if err := requireNonEmpty("title", title); err != nil {
		return err
	}
	if err := requireNonEmpty("author", author); err != nil {
		return err
	}
	if categoryID == 0 {
		return &ValidationError{Field: "category_id", Reason: "must be set"}
	}
	if !availability.Valid() {
		return &ValidationError{Field: "availability", Reason: "must be 'Available' or 'Not Available'"}
	}
	return nil
}

// CreateBook adds a new book to the catalog. The initial availability is
// caller-supplied, as in the original application; it is validated against
// the enum but not derived from the (empty) ledger.
func (s *Service) CreateBook(title, author string, categoryID uint, availability entities.Availability) (*entities.Book, error) {
	if err := s.validateBookFields(title, author, categoryID, availability); err != nil {
		return nil, err
	}
	if _, err := s.categories.GetByID(categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "category", ID: categoryID}
		}
		return nil, storage("create book", err)
	}

	book, err := s.books.Create(title, author, categoryID, availability)
	if err != nil {
		return nil, storage("create book", err)
	}

	s.log.Info("book created", zap.Uint("id", book.ID), zap.String("title", title))
	s.publish(events.KindBooks)
	return book, nil
}

// UpdateBook replaces all editable fields of a book. The availability here
// is a raw override: it does not open or close borrow records and can
// therefore drift from the ledger until the next borrow/return.
func (s *Service) UpdateBook(id uint, title, author string, categoryID uint, availability entities.Availability) (*entities.Book, error) {
	if err := s.validateBookFields(title, author, categoryID, availability); err != nil {
		return nil, err
	}
	if _, err := s.categories.GetByID(categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "category", ID: categoryID}
		}
		return nil, storage("update book", err)
	}

	book, err := s.books.Update(id, title, author, categoryID, availability)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "book", ID: id}
		}
		return nil, storage("update book", err)
	}

	s.publish(events.KindBooks)
	return book, nil
}

// DeleteBook removes a book and its entire borrow history, open or closed.
// No orphaned borrow rows are retained.
func (s *Service) DeleteBook(id uint) error {
	err := s.books.Delete(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Entity: "book", ID: id}
		}
		return storage("delete book", err)
	}

	s.publish(events.KindBooks, events.KindBorrowRecords)
	return nil
}

// GetBook retrieves a single book.
func (s *Service) GetBook(id uint) (*entities.Book, error) {
	book, err := s.books.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "book", ID: id}
		}
		return nil, storage("get book", err)
	}
	return book, nil
}

// ListBooksWithCategory returns a fresh snapshot of the catalog joined with
// category names and colors.
func (s *Service) ListBooksWithCategory() ([]books.BookWithCategory, error) {
	rows, err := s.books.ListWithCategory()
	if err != nil {
		return nil, storage("list books", err)
	}
	return rows, nil
}

// --- Members ---

func (s *Service) validateMemberFields(name, email, phone string) error {
	if err := requireNonEmpty("name", name); err != nil {
		return err
	}
	if err := requireNonEmpty("email", email); err != nil {
		return err
	}
	return requireNonEmpty("phone", phone)
}

// CreateMember registers a new member. The membership date is assigned
// here, from the current clock, and is immutable afterwards.
func (s *Service) CreateMember(name, email, phone string) (*entities.Member, error) {
	if err := s.validateMemberFields(name, email, phone); err != nil {
		return nil, err
	}

	now := time.Now()
	membershipDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	member, err := s.members.Create(name, email, phone, membershipDate)
	if err != nil {
		return nil, storage("create member", err)
	}

	s.log.Info("member created", zap.Uint("id", member.ID), zap.String("name", name))
	s.publish(events.KindMembers)
	return member, nil
}

// UpdateMember replaces name, email and phone; the membership date stays.
func (s *Service) UpdateMember(id uint, name, email, phone string) (*entities.Member, error) {
	if err := s.validateMemberFields(name, email, phone); err != nil {
		return nil, err
	}

	member, err := s.members.Update(id, name, email, phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "member", ID: id}
		}
		return nil, storage("update member", err)
	}

	s.publish(events.KindMembers)
	return member, nil
}

// DeleteMember removes a member and all their borrow rows, leaving other
// members' records untouched.
func (s *Service) DeleteMember(id uint) error {
	err := s.members.Delete(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Entity: "member", ID: id}
		}
		return storage("delete member", err)
	}

	s.publish(events.KindMembers, events.KindBorrowRecords)
	return nil
}

// GetMember retrieves a single member.
func (s *Service) GetMember(id uint) (*entities.Member, error) {
	member, err := s.members.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "member", ID: id}
		}
		return nil, storage("get member", err)
	}
	return member, nil
}

// ListMembers returns all registered members.
func (s *Service) ListMembers() ([]entities.Member, error) {
	rows, err := s.members.List()
	if err != nil {
		return nil, storage("list members", err)
	}
	return rows, nil
}

// --- Circulation ---

// BorrowBook opens a borrow record for the book and flips it to
// Not Available, atomically. The book must exist, be Available, and have no
// open borrow row; availability and ledger are checked independently so the
// two can never drift through this write path.
func (s *Service) BorrowBook(bookID, memberID uint) (*entities.Borrow, error) {
	if bookID == 0 {
		return nil, &ValidationError{Field: "book_id", Reason: "must be set"}
	}
	if memberID == 0 {
		return nil, &ValidationError{Field: "member_id", Reason: "must be set"}
	}

	borrow, err := s.borrows.Borrow(bookID, memberID, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, borrows.ErrBookNotFound):
			return nil, &ConflictError{Reason: "book does not exist"}
		case errors.Is(err, borrows.ErrBookUnavailable):
			return nil, &ConflictError{Reason: "the book is already borrowed"}
		case errors.Is(err, borrows.ErrAlreadyBorrowed):
			return nil, &ConflictError{Reason: "an open borrow record already exists for this book"}
		case errors.Is(err, borrows.ErrMemberNotFound):
			return nil, &NotFoundError{Entity: "member", ID: memberID}
		}
		return nil, storage("borrow book", err)
	}

	s.log.Info("book borrowed",
		zap.Uint("borrow_id", borrow.ID),
		zap.Uint("book_id", bookID),
		zap.Uint("member_id", memberID))
	s.publish(events.KindBorrowRecords, events.KindBooks)
	return borrow, nil
}

// ReturnBook closes the given borrow record and flips the book back to
// Available, atomically. The record must currently be open.
func (s *Service) ReturnBook(borrowID uint) (*entities.Borrow, error) {
	if borrowID == 0 {
		return nil, &ValidationError{Field: "borrow_id", Reason: "must be set"}
	}

	borrow, err := s.borrows.Return(borrowID, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, borrows.ErrBorrowNotFound):
			return nil, &ConflictError{Reason: "borrow record does not exist"}
		case errors.Is(err, borrows.ErrAlreadyReturned):
			return nil, &ConflictError{Reason: "borrow record is already closed"}
		}
		return nil, storage("return book", err)
	}

	s.log.Info("book returned",
		zap.Uint("borrow_id", borrow.ID),
		zap.Uint("book_id", borrow.BookID))
	s.publish(events.KindBorrowRecords, events.KindBooks)
	return borrow, nil
}

// DeleteBorrowRecord removes a ledger row without touching the book's
// availability. This corrects erroneous entries; it is not a return.
func (s *Service) DeleteBorrowRecord(borrowID uint) error {
	err := s.borrows.Delete(borrowID)
	if err != nil {
		if errors.Is(err, borrows.ErrBorrowNotFound) {
			return &NotFoundError{Entity: "borrow record", ID: borrowID}
		}
		return storage("delete borrow record", err)
	}

	s.publish(events.KindBorrowRecords)
	return nil
}

// ListBorrowRecordsJoined returns a fresh snapshot of the full ledger
// joined with book titles and member names.
func (s *Service) ListBorrowRecordsJoined() ([]borrows.BorrowWithDetails, error) {
	rows, err := s.borrows.ListJoined()
	if err != nil {
		return nil, storage("list borrow records", err)
	}
	return rows, nil
}
