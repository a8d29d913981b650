package entities

import (
	"time"
)

// Availability is the circulation state of a book.
type Availability string

const (
	Available    Availability = "Available"
	NotAvailable Availability = "Not Available"
)

// Valid reports whether the value is one of the two known states.
func (a Availability) Valid() bool {
	return a == Available || a == NotAvailable
}

// Category groups books under a name and a display color (hex, "#RRGGBB").
type Category struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:100;not null" json:"name"`
	Color string `gorm:"size:10;not null" json:"color"`

	Books []Book `gorm:"foreignKey:CategoryID" json:"-"`
}

// Book belongs to exactly one category. Availability is derived from the
// borrow ledger: "Not Available" iff an open borrow row references the book.
type Book struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	CategoryID   uint         `gorm:"index;not null" json:"category_id"`
	Title        string       `gorm:"size:512;not null" json:"title"`
	Author       string       `gorm:"size:256;not null" json:"author"`
	Availability Availability `gorm:"size:20;not null;default:'Available'" json:"availability"`

	Category Category `gorm:"foreignKey:CategoryID" json:"-"`
	Borrows  []Borrow `gorm:"foreignKey:BookID" json:"-"`
}

// Member is a registered library user. MembershipDate is assigned by the
// service at creation time and never changes afterwards.
type Member struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"size:256;not null" json:"name"`
	Email          string    `gorm:"size:255;not null" json:"email"`
	Phone          string    `gorm:"size:50;not null" json:"phone"`
	MembershipDate time.Time `gorm:"not null" json:"membership_date"`

	Borrows []Borrow `gorm:"foreignKey:MemberID" json:"-"`
}

// Borrow is one ledger row. A nil ReturnDate marks the row as open, i.e. the
// book is currently checked out.
type Borrow struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	BookID     uint       `gorm:"index;not null" json:"book_id"`
	MemberID   uint       `gorm:"index;not null" json:"member_id"`
	BorrowDate time.Time  `gorm:"not null" json:"borrow_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`

	Book   Book   `gorm:"foreignKey:BookID" json:"-"`
	Member Member `gorm:"foreignKey:MemberID" json:"-"`
}

// Open reports whether the book of this row is still checked out.
func (b Borrow) Open() bool {
	return b.ReturnDate == nil
}

// Table names follow the original desktop application's schema.

func (Category) TableName() string {
	return "BookCategory"
}

func (Book) TableName() string {
	return "Book"
}

func (Member) TableName() string {
	return "Member"
}

func (Borrow) TableName() string {
	return "Borrow"
}
