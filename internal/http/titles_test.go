package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mimiru/mimiru/internal/actions"
	"github.com/mimiru/mimiru/internal/database"
	"github.com/mimiru/mimiru/internal/database/titles"
	"github.com/mimiru/mimiru/internal/entities"
)

func setupTitlesRouter(t *testing.T) (*gin.Engine, *database.Database, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_titles_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	titleActions := actions.NewTitles(titles.NewRepository(db.DB), nil, nil)
	controller := NewTitlesController(titleActions)

	router := gin.New()
	router.GET("/api/titles", controller.ListTitles)
	router.GET("/api/titles/search", controller.SearchTitles)
	router.GET("/api/titles/:id", controller.GetTitle)
	router.POST("/api/titles", controller.CreateTitle)
	router.PUT("/api/titles/:id", controller.UpdateTitle)
	router.DELETE("/api/titles/:id", controller.DeleteTitle)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return router, db, cleanup
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func TestTitlesController_CreateAndGet(t *testing.T) {
	router, _, cleanup := setupTitlesRouter(t)
	defer cleanup()

	body := bytes.NewBufferString(`{"title":"Blade of Dawn","description":"A story"}`)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/titles", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)

	var created entities.Title
	require.NoError(t, json.Unmarshal(resp.Data, &created))
	assert.Equal(t, "Blade of Dawn", created.Title)
	assert.Equal(t, entities.TitleStatusOngoing, created.Status)
	assert.NotZero(t, created.ID)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/api/titles/1", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}

func TestTitlesController_ValidationErrorIsBadRequest(t *testing.T) {
	router, _, cleanup := setupTitlesRouter(t)
	defer cleanup()

	body := bytes.NewBufferString(`{"title":"ab"}`)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/titles", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Title must be at least 3 characters long", resp.Error)
}

func TestTitlesController_SearchQueryTooShort(t *testing.T) {
	router, _, cleanup := setupTitlesRouter(t)
	defer cleanup()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/titles/search?q=a", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Search query must be at least 2 characters long", resp.Error)
}

func TestTitlesController_PaginatedListing(t *testing.T) {
	router, db, cleanup := setupTitlesRouter(t)
	defer cleanup()

	for i := 0; i < 25; i++ {
		require.NoError(t, db.DB.Create(&entities.Title{Title: "Bulk Title"}).Error)
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/titles?page=3&limit=10", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Data       []entities.Title `json:"data"`
			Total      int64            `json:"total"`
			TotalPages int              `json:"totalPages"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	assert.Equal(t, int64(25), resp.Data.Total)
	assert.Equal(t, 3, resp.Data.TotalPages)
	assert.Len(t, resp.Data.Data, 5)
}

func TestTitlesController_InvalidIDParam(t *testing.T) {
	router, _, cleanup := setupTitlesRouter(t)
	defer cleanup()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/titles/abc", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTitlesController_DeleteMissingIsSuccess(t *testing.T) {
	router, _, cleanup := setupTitlesRouter(t)
	defer cleanup()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/api/titles/999", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}
