package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/slatrack/slatrack/internal/usecase"
)

// MockAuthService is a mock implementation of AuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func TestAuthHandler_Login(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    string
		mockToken      string
		mockError      error
		expectedStatus int
		expectedBody   string
		expectCall     bool
	}{
		{
			name:           "successful login",
			requestBody:    `{"email":"admin@example.com","password":"secret123"}`,
			mockToken:      "signed-token",
			expectedStatus: http.StatusOK,
			expectedBody:   `"access_token":"signed-token"`,
			expectCall:     true,
		},
		{
			name:           "invalid request body",
			requestBody:    `{"email": }`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "wrong credentials",
			requestBody:    `{"email":"admin@example.com","password":"wrong"}`,
			mockError:      usecase.ErrInvalidCredentials,
			expectedStatus: http.StatusUnauthorized,
			expectCall:     true,
		},
		{
			name:           "backend failure",
			requestBody:    `{"email":"admin@example.com","password":"secret123"}`,
			mockError:      assert.AnError,
			expectedStatus: http.StatusInternalServerError,
			expectCall:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authService := new(MockAuthService)
			if tt.expectCall {
				authService.On("Login", mock.Anything, mock.Anything, mock.Anything).Return(tt.mockToken, tt.mockError)
			}

			handler := NewAuthHandler(authService)

			req := httptest.NewRequest("POST", "/api/v1/auth/login", bytes.NewBufferString(tt.requestBody))
			w := httptest.NewRecorder()
			handler.Login(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, w.Body.String(), tt.expectedBody)
			}
		})
	}
}
