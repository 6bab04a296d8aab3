package handler_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"equitylens/internal/handler"
	"equitylens/mocks"
)

func TestHealthHandler_Liveness(t *testing.T) {
	h := handler.NewHealthHandler(new(mocks.MockStatementService))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/healthz", http.NoBody)

	h.Liveness(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHealthHandler_Readiness(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"ready", nil, http.StatusOK},
		{"store down", errors.New("connection refused"), http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(mocks.MockStatementService)
			mockSvc.On("Ready", mock.Anything).Return(tt.err)
			h := handler.NewHealthHandler(mockSvc)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request, _ = http.NewRequest(http.MethodGet, "/readyz", http.NoBody)

			h.Readiness(c)

			assert.Equal(t, tt.status, w.Code)
			mockSvc.AssertExpectations(t)
		})
	}
}
