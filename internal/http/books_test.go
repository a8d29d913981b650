package http

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestCategory(t *testing.T, router *gin.Engine, name string) uint {
	t.Helper()

	w := performJSON(t, router, "POST", "/api/categories", map[string]string{
		"name": name, "color": "#336699",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var category struct {
		ID uint `json:"id"`
	}
	decodeBody(t, w, &category)
	return category.ID
}

func TestBooksEndpoints(t *testing.T) {
	t.Run("create returns 201", func(t *testing.T) {
		router, _, cleanup := setupTestRouter(t)
		defer cleanup()
		categoryID := createTestCategory(t, router, "Sci-Fi")

		w := performJSON(t, router, "POST", "/api/books", map[string]any{
			"title":        "Dune",
			"author":       "Frank Herbert",
			"category_id":  categoryID,
			"availability": "Available",
		})
		assert.Equal(t, http.StatusCreated, w.Code)

		var created struct {
			ID           uint   `json:"id"`
			Title        string `json:"title"`
			Availability string `json:"availability"`
		}
		decodeBody(t, w, &created)
		assert.NotZero(t, created.ID)
		assert.Equal(t, "Dune", created.Title)
		assert.Equal(t, "Available", created.Availability)
	})

	t.Run("create rejects an unknown availability value", func(t *testing.T) {
		router, _, cleanup := setupTestRouter(t)
		defer cleanup()
		categoryID := createTestCategory(t, router, "Sci-Fi")

		w := performJSON(t, router, "POST", "/api/books", map[string]any{
			"title":        "Dune",
			"author":       "Frank Herbert",
			"category_id":  categoryID,
			"availability": "Maybe",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("create against a missing category returns 404", func(t *testing.T) {
		router, _, cleanup := setupTestRouter(t)
		defer cleanup()

		w := performJSON(t, router, "POST", "/api/books", map[string]any{
			"title":        "Dune",
			"author":       "Frank Herbert",
			"category_id":  999,
			"availability": "Available",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("get returns the stored book", func(t *testing.T) {
		router, _, cleanup := setupTestRouter(t)
		defer cleanup()
		categoryID := createTestCategory(t, router, "Sci-Fi")

		w := performJSON(t, router, "POST", "/api/books", map[string]any{
			"title":        "Dune",
			"author":       "Frank Herbert",
			"category_id":  categoryID,
			"availability": "Available",
		})
		require.Equal(t, http.StatusCreated, w.Code)
		var created struct {
			ID uint `json:"id"`
		}
		decodeBody(t, w, &created)

		w = performJSON(t, router, "GET", "/api/books/1", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var fetched struct {
			ID     uint   `json:"id"`
			Author string `json:"author"`
		}
		decodeBody(t, w, &fetched)
		assert.Equal(t, created.ID, fetched.ID)
		assert.Equal(t, "Frank Herbert", fetched.Author)
	})

	t.Run("get of a missing book returns 404", func(t *testing.T) {
		router, _, cleanup := setupTestRouter(t)
		defer cleanup()

		w := performJSON(t, router, "GET", "/api/books/999", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("list joins category name and color", func(t *testing.T) {
		router, _, cleanup := setupTestRouter(t)
		defer cleanup()
		categoryID := createTestCategory(t, router, "Sci-Fi")

		w := performJSON(t, router, "POST", "/api/books", map[string]any{
			"title":        "Dune",
			"author":       "Frank Herbert",
			"category_id":  categoryID,
			"availability": "Available",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		w = performJSON(t, router, "GET", "/api/books", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var listing struct {
			Books []struct {
				Title         string `json:"title"`
				CategoryName  string `json:"category_name"`
				CategoryColor string `json:"category_color"`
			} `json:"books"`
			Count int `json:"count"`
		}
		decodeBody(t, w, &listing)
		require.Equal(t, 1, listing.Count)
		assert.Equal(t, "Sci-Fi", listing.Books[0].CategoryName)
		assert.Equal(t, "#336699", listing.Books[0].CategoryColor)
	})

	t.Run("update replaces all editable fields", func(t *testing.T) {
		router, _, cleanup := setupTestRouter(t)
		defer cleanup()
		categoryID := createTestCategory(t, router, "Sci-Fi")

		w := performJSON(t, router, "POST", "/api/books", map[string]any{
			"title":        "Dune",
			"author":       "Frank Herbert",
			"category_id":  categoryID,
			"availability": "Available",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		w = performJSON(t, router, "PUT", "/api/books/1", map[string]any{
			"title":        "Dune Messiah",
			"author":       "Frank Herbert",
			"category_id":  categoryID,
			"availability": "Not Available",
		})
		assert.Equal(t, http.StatusOK, w.Code)

		var updated struct {
			Title        string `json:"title"`
			Availability string `json:"availability"`
		}
		decodeBody(t, w, &updated)
		assert.Equal(t, "Dune Messiah", updated.Title)
		assert.Equal(t, "Not Available", updated.Availability)
	})

	t.Run("delete removes the book", func(t *testing.T) {
		router, _, cleanup := setupTestRouter(t)
		defer cleanup()
		categoryID := createTestCategory(t, router, "Sci-Fi")

		w := performJSON(t, router, "POST", "/api/books", map[string]any{
			"title":        "Dune",
			"author":       "Frank Herbert",
			"category_id":  categoryID,
			"availability": "Available",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		w = performJSON(t, router, "DELETE", "/api/books/1", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		w = performJSON(t, router, "GET", "/api/books/1", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
