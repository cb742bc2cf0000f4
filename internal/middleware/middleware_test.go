package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/educompact/school-records/internal/app/models"
	"github.com/educompact/school-records/internal/app/models/dto"
	"github.com/educompact/school-records/internal/pkg/apperrors"
	"github.com/educompact/school-records/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"student not found", apperrors.ErrStudentNotFound, http.StatusNotFound},
		{"staff not found", apperrors.ErrStaffNotFound, http.StatusNotFound},
		{"bad request", apperrors.NewBadRequestError("invalid status"), http.StatusBadRequest},
		{"file too large", apperrors.ErrFileTooLarge, http.StatusBadRequest},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{"permission denied", apperrors.ErrPermissionDenied, http.StatusForbidden},
		{"email exists", apperrors.ErrEmailAlreadyExists, http.StatusConflict},
		{"unknown", errors.New("database exploded"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			HandleAPIError(c, tc.err)

			assert.Equal(t, tc.status, w.Code)
		})
	}
}

func TestHandleAPIErrorHidesInternalDetails(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleAPIError(c, errors.New("pq: connection refused"))

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Internal server error", body.Error)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestHandleAPIErrorUsesCustomMessage(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleAPIError(c, apperrors.NewBadRequestError("invalid staff type"))

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "invalid staff type", body.Error)
}

func newAuthTestRouter(t *testing.T, exp time.Duration) (*gin.Engine, *auth.JWTService) {
	t.Helper()

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: exp,
		TokenIssuer:    "test",
	})
	m := NewAuthMiddleware(jwtService)

	router := gin.New()
	read := router.Group("", m.JWTAuth())
	read.GET("/records", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"role": c.GetString(ContextRole)})
	})
	write := read.Group("", m.WriteAccessRequired())
	write.POST("/records", func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	return router, jwtService
}

func tokenFor(t *testing.T, jwtService *auth.JWTService, role models.UserRole) string {
	t.Helper()
	token, _, err := jwtService.GenerateToken(&models.User{
		ID:    7,
		Email: "user@educompact.education",
		Role:  role,
	})
	require.NoError(t, err)
	return token
}

func TestJWTAuthMissingToken(t *testing.T) {
	router, _ := newAuthTestRouter(t, time.Hour)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/records", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthExpiredToken(t *testing.T) {
	router, jwtService := newAuthTestRouter(t, -time.Minute)

	req := httptest.NewRequest("GET", "/records", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, jwtService, models.RoleHead))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "expired")
}

func TestJWTAuthValidToken(t *testing.T) {
	router, jwtService := newAuthTestRouter(t, time.Hour)

	req := httptest.NewRequest("GET", "/records", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, jwtService, models.RoleHead))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), string(models.RoleHead))
}

func TestWriteAccessRequired(t *testing.T) {
	router, jwtService := newAuthTestRouter(t, time.Hour)

	t.Run("head is rejected", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/records", nil)
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, jwtService, models.RoleHead))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("administrator is allowed", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/records", nil)
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, jwtService, models.RoleAdministrator))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})
}
