package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"equitylens/internal/domain"
	"equitylens/internal/handler"
	"equitylens/internal/router"
	"equitylens/mocks"
)

func setupEngine(svc *mocks.MockStatementService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return router.Setup(
		handler.NewStatementHandler(svc, 1024),
		handler.NewHealthHandler(svc),
		router.Options{AllowedOrigins: []string{"http://localhost:3000"}, MaxFileSize: 1024},
	)
}

func TestRouter_Routes(t *testing.T) {
	svc := new(mocks.MockStatementService)
	svc.On("Ready", mock.Anything).Return(nil)
	svc.On("List", mock.Anything, 0, 20).Return([]domain.Analysis{}, 0, nil)
	r := setupEngine(svc)

	for _, path := range []string{"/healthz", "/readyz", "/api/v1/analyses"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, path, http.NoBody)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"), path)
	}
	svc.AssertExpectations(t)
}

func TestRouter_AnalyzeWithoutFile(t *testing.T) {
	svc := new(mocks.MockStatementService)
	r := setupEngine(svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/statements/analyze", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "MISSING_FILE")
}

func TestRouter_UnknownRoute(t *testing.T) {
	r := setupEngine(new(mocks.MockStatementService))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/files", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
