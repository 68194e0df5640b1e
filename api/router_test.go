package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prasetyowira/mxlabel/constant"
	"github.com/prasetyowira/mxlabel/domain/label"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Helper to build a router over a mock service
func newTestRouter(mockService *MockLabelService, username, password string) *Router {
	router := NewRouter(NewHandler(mockService), username, password)
	router.SetupRoutes()
	return router
}

func TestNewRouter(t *testing.T) {
	// Arrange
	handler := NewHandler(new(MockLabelService))

	// Act
	router := NewRouter(handler, "", "")

	// Assert
	assert.NotNil(t, router)
	assert.Equal(t, handler, router.handler)
	assert.NotNil(t, router.router)
}

func TestRouter_Healthcheck(t *testing.T) {
	// Arrange
	router := newTestRouter(new(MockLabelService), "", "")

	req := httptest.NewRequest("GET", constant.RouteHealthcheck, nil)
	w := httptest.NewRecorder()

	// Act
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, constant.MsgHealthy, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(constant.HeaderRequestID))
}

func TestRouter_CreateLabelRoute(t *testing.T) {
	// Arrange
	mockService := new(MockLabelService)
	mockService.On("GenerateLabel", mock.Anything, mock.Anything, label.VariantQR).
		Return(testLabel(nil), nil)
	router := newTestRouter(mockService, "", "")

	reqBody, _ := json.Marshal(CreateLabelRequest{URL: "https://app.getmaintainx.com/parts/42"})
	req := httptest.NewRequest("POST", constant.RouteCreateLabel, bytes.NewBuffer(reqBody))
	w := httptest.NewRecorder()

	// Act
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusCreated, w.Code)
	mockService.AssertExpectations(t)
}

func TestRouter_DownloadDocumentRoute(t *testing.T) {
	// Arrange
	mockService := new(MockLabelService)
	mockService.On("GenerateLabel", mock.Anything, "https://app.getmaintainx.com/parts/42", label.VariantQR).
		Return(testLabel(nil), nil)
	router := newTestRouter(mockService, "", "")

	req := httptest.NewRequest("GET", constant.RouteLabelDocument+"?url=https://app.getmaintainx.com/parts/42", nil)
	w := httptest.NewRecorder()

	// Act
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
}

func TestRouter_HistoryRoute(t *testing.T) {
	// Arrange
	mockService := new(MockLabelService)
	mockService.On("History", mock.Anything, defaultHistoryLimit).
		Return([]label.JournalEntry{}, nil)
	router := newTestRouter(mockService, "", "")

	req := httptest.NewRequest("GET", constant.RouteLabelHistory, nil)
	w := httptest.NewRecorder()

	// Act
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestRouter_UnknownRoute(t *testing.T) {
	// Arrange
	router := newTestRouter(new(MockLabelService), "", "")

	req := httptest.NewRequest("GET", "/api/unknown", nil)
	w := httptest.NewRecorder()

	// Act
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_BasicAuthRejectsMissingCredentials(t *testing.T) {
	// Arrange
	mockService := new(MockLabelService)
	router := newTestRouter(mockService, "operator", "secret")

	req := httptest.NewRequest("GET", constant.RouteLabelHistory, nil)
	w := httptest.NewRecorder()

	// Act
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockService.AssertNotCalled(t, "History")
}

func TestRouter_BasicAuthAcceptsValidCredentials(t *testing.T) {
	// Arrange
	mockService := new(MockLabelService)
	mockService.On("History", mock.Anything, defaultHistoryLimit).
		Return([]label.JournalEntry{}, nil)
	router := newTestRouter(mockService, "operator", "secret")

	req := httptest.NewRequest("GET", constant.RouteLabelHistory, nil)
	req.SetBasicAuth("operator", "secret")
	w := httptest.NewRecorder()

	// Act
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestRouter_BasicAuthSkipsHealthcheck(t *testing.T) {
	// Arrange
	router := newTestRouter(new(MockLabelService), "operator", "secret")

	req := httptest.NewRequest("GET", constant.RouteHealthcheck, nil)
	w := httptest.NewRecorder()

	// Act
	router.ServeHTTP(w, req)

	// Assert - the healthcheck stays open for probes
	assert.Equal(t, http.StatusOK, w.Code)
}
