package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoriesEndpoints(t *testing.T) {
	t.Run("create returns 201 and the stored category", func(t *testing.T) {
		router, _, cleanup := setupTestRouter(t)
		defer cleanup()

		w := performJSON(t, router, "POST", "/api/categories", map[string]string{
			"name":  "Fiction",
			"color": "#ff8800",
		})
		assert.Equal(t, http.StatusCreated, w.Code)

		var created struct {
			ID    uint   `json:"id"`
			Name  string `json:"name"`
			Color string `json:"color"`
		}
		decodeBody(t, w, &created)
		assert.NotZero(t, created.ID)
		assert.Equal(t, "Fiction", created.Name)
		assert.Equal(t, "#FF8800", created.Color)
	})

	t.Run("create rejects a malformed color", func(t *testing.T) {
		router, _, cleanup := setupTestRouter(t)
		defer cleanup()

		w := performJSON(t, router, "POST", "/api/categories", map[string]string{
			"name":  "Fiction",
			"color": "red",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("create rejects a missing name", func(t *testing.T) {
		router, _, cleanup := setupTestRouter(t)
		defer cleanup()

		w := performJSON(t, router, "POST", "/api/categories", map[string]string{
			"color": "#FF8800",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("list includes book counts", func(t *testing.T) {
		router, _, cleanup := setupTestRouter(t)
		defer cleanup()

		w := performJSON(t, router, "POST", "/api/categories", map[string]string{
			"name": "Fiction", "color": "#FF8800",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var category struct {
			ID uint `json:"id"`
		}
		decodeBody(t, w, &category)

		w = performJSON(t, router, "POST", "/api/books", map[string]any{
			"title":        "Dune",
			"author":       "Frank Herbert",
			"category_id":  category.ID,
			"availability": "Available",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		w = performJSON(t, router, "GET", "/api/categories", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var listing struct {
			Categories []struct {
				ID        uint   `json:"id"`
				Name      string `json:"name"`
				BookCount int64  `json:"book_count"`
			} `json:"categories"`
			Count int `json:"count"`
		}
		decodeBody(t, w, &listing)
		require.Equal(t, 1, listing.Count)
		assert.Equal(t, int64(1), listing.Categories[0].BookCount)
	})

	t.Run("update of a missing category returns 404", func(t *testing.T) {
		router, _, cleanup := setupTestRouter(t)
		defer cleanup()

		w := performJSON(t, router, "PUT", "/api/categories/999", map[string]string{
			"name": "Fiction", "color": "#FF8800",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("delete of a missing category returns 404", func(t *testing.T) {
		router, _, cleanup := setupTestRouter(t)
		defer cleanup()

		w := performJSON(t, router, "DELETE", "/api/categories/999", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("non-numeric id returns 400", func(t *testing.T) {
		router, _, cleanup := setupTestRouter(t)
		defer cleanup()

		w := performJSON(t, router, "DELETE", "/api/categories/abc", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
