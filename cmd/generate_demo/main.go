// Command generate_demo creates a demo database with a small sample
// library: a few categories, public domain books, members and an active
// borrow, so the UI has something to show on first run.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"flag"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/avolkov/librarian/internal/database"
	"github.com/avolkov/librarian/internal/entities"
	"github.com/avolkov/librarian/internal/events"
	"github.com/avolkov/librarian/internal/library"
)

const defaultDemoDatabasePath = "./demo/demo.db"

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo database at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}

	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	// Seed through the service so every invariant holds in the demo data.
	service := library.NewService(db, events.NewBus(), zap.NewNop())

	categories := createCategories(service)
	books := createBooks(service, categories)
	members := createMembers(service)

	// Leave one book checked out so the borrow panel is not empty.
	if len(books) > 0 && len(members) > 0 {
		if _, err := service.BorrowBook(books[0].ID, members[0].ID); err != nil {
			log.Printf("Failed to create demo borrow: %v", err)
		}
	}

	log.Println("Demo database generated successfully!")
}

func createCategories(service *library.Service) map[string]*entities.Category {
	configs := []struct {
		name  string
		color string
	}{
		{"Fiction", "#1F77B4"},
		{"Philosophy", "#2CA02C"},
		{"Science", "#D62728"},
		{"History", "#9467BD"},
	}

	categories := make(map[string]*entities.Category)
	for _, cfg := range configs {
		category, err := service.CreateCategory(cfg.name, cfg.color)
		if err != nil {
			log.Printf("Failed to create category %s: %v", cfg.name, err)
			continue
		}
		categories[cfg.name] = category
	}
	return categories
}

func createBooks(service *library.Service, categories map[string]*entities.Category) []*entities.Book {
	configs := []struct {
		title    string
		author   string
		category string
	}{
		{"Pride and Prejudice", "Jane Austen", "Fiction"},
		{"Moby-Dick", "Herman Melville", "Fiction"},
		{"The Count of Monte Cristo", "Alexandre Dumas", "Fiction"},
		{"Meditations", "Marcus Aurelius", "Philosophy"},
		{"Beyond Good and Evil", "Friedrich Nietzsche", "Philosophy"},
		{"On the Origin of Species", "Charles Darwin", "Science"},
		{"Relativity: The Special and General Theory", "Albert Einstein", "Science"},
		{"The History of the Peloponnesian War", "Thucydides", "History"},
	}

	var books []*entities.Book
	for _, cfg := range configs {
		category, ok := categories[cfg.category]
		if !ok {
			continue
		}
		book, err := service.CreateBook(cfg.title, cfg.author, category.ID, entities.Available)
		if err != nil {
			log.Printf("Failed to create book %s: %v", cfg.title, err)
			continue
		}
		log.Printf("Saved: %s by %s", cfg.title, cfg.author)
		books = append(books, book)
	}
	return books
}

func createMembers(service *library.Service) []*entities.Member {
	configs := []struct {
		name  string
		email string
		phone string
	}{
		{"Ada Lovelace", "ada@example.com", "555-0100"},
		{"Alan Turing", "alan@example.com", "555-0101"},
		{"Grace Hopper", "grace@example.com", "555-0102"},
	}

	var members []*entities.Member
	for _, cfg := range configs {
		member, err := service.CreateMember(cfg.name, cfg.email, cfg.phone)
		if err != nil {
			log.Printf("Failed to create member %s: %v", cfg.name, err)
			continue
		}
		members = append(members, member)
	}
	return members
}
