package members

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/avolkov/librarian/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, *gorm.DB, func()) {
	dbPath := "./test_members_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entities.Category{},
		&entities.Book{},
		&entities.Member{},
		&entities.Borrow{},
	)
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, db, cleanup
}

func TestRepository_Create(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	joined := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	member, err := repo.Create("Alice", "a@x.com", "555-0001", joined)

	require.NoError(t, err)
	assert.NotZero(t, member.ID)
	assert.Equal(t, "Alice", member.Name)
	assert.True(t, member.MembershipDate.Equal(joined))
}

func TestRepository_Update_KeepsMembershipDate(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	joined := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	member, err := repo.Create("Alice", "a@x.com", "555-0001", joined)
	require.NoError(t, err)

	updated, err := repo.Update(member.ID, "Alice B.", "alice@x.com", "555-0002")
	require.NoError(t, err)
	assert.Equal(t, "Alice B.", updated.Name)
	assert.Equal(t, "alice@x.com", updated.Email)
	assert.True(t, updated.MembershipDate.Equal(joined))
}

func TestRepository_Update_NotFound(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.Update(999, "Ghost", "g@x.com", "555-0000")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_Delete_CascadesOwnBorrowsOnly(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	category := entities.Category{Name: "Fiction", Color: "#FF0000"}
	require.NoError(t, db.Create(&category).Error)
	book := entities.Book{CategoryID: category.ID, Title: "Dune", Author: "Herbert", Availability: entities.Available}
	require.NoError(t, db.Create(&book).Error)

	alice, err := repo.Create("Alice", "a@x.com", "555-0001", time.Now())
	require.NoError(t, err)
	bob, err := repo.Create("Bob", "b@x.com", "555-0002", time.Now())
	require.NoError(t, err)

	require.NoError(t, db.Create(&entities.Borrow{BookID: book.ID, MemberID: alice.ID, BorrowDate: time.Now()}).Error)
	require.NoError(t, db.Create(&entities.Borrow{BookID: book.ID, MemberID: bob.ID, BorrowDate: time.Now()}).Error)

	require.NoError(t, repo.Delete(alice.ID))

	var aliceBorrows int64
	require.NoError(t, db.Model(&entities.Borrow{}).Where("member_id = ?", alice.ID).Count(&aliceBorrows).Error)
	assert.Zero(t, aliceBorrows)

	var bobBorrows int64
	require.NoError(t, db.Model(&entities.Borrow{}).Where("member_id = ?", bob.ID).Count(&bobBorrows).Error)
	assert.Equal(t, int64(1), bobBorrows)
}

func TestRepository_List(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.Create("Alice", "a@x.com", "555-0001", time.Now())
	require.NoError(t, err)
	_, err = repo.Create("Bob", "b@x.com", "555-0002", time.Now())
	require.NoError(t, err)

	members, err := repo.List()
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "Alice", members[0].Name)
	assert.Equal(t, "Bob", members[1].Name)
}
