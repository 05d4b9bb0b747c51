package dining

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dining-calendar/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestRouter(repo Repository) http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, NewService(repo, NewNormalizer(nil)), logger.Nop())
	return r
}

func TestHandlers_StorageFailureIs500(t *testing.T) {
	repo := new(mockRepo)
	repo.On("List", mock.Anything).Return([]DiningEvent(nil), errors.New("disk on fire"))

	rec := httptest.NewRecorder()
	newTestRouter(repo).ServeHTTP(rec, httptest.NewRequest("GET", "/events/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "disk on fire")
}

func TestHandlers_InvalidJSON(t *testing.T) {
	h := newTestRouter(new(mockRepo))

	for _, tc := range []struct{ method, path, body string }{
		{"POST", "/events/", "{"},
		{"POST", "/events/", "null"},
		{"PUT", "/events/1", "[1,2]"},
	} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body)))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "%s %s %s", tc.method, tc.path, tc.body)
	}
}

func TestHandlers_CostTotalIsJSONNumber(t *testing.T) {
	repo := new(mockRepo)
	repo.On("GetByID", mock.Anything, int64(1)).Return(DiningEvent{ID: 1, CostTotal: validInput().CostTotal}, nil)

	rec := httptest.NewRecorder()
	newTestRouter(repo).ServeHTTP(rec, httptest.NewRequest("GET", "/events/1", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"cost_total":12`)
	assert.Contains(t, rec.Body.String(), `"participants":[]`)
}
