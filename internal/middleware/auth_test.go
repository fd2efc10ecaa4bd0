package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type stubValidator struct {
	claims *TokenClaims
	err    error
}

func (v *stubValidator) ValidateToken(token string) (*TokenClaims, error) {
	return v.claims, v.err
}

func newProtectedRouter(validator TokenValidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(AuthMiddleware(validator))
	router.GET("/ping", func(c *gin.Context) {
		userID, ok := UserIDFromContext(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": userID.String()})
	})
	return router
}

func TestAuthMiddleware(t *testing.T) {
	userID := uuid.New()

	cases := []struct {
		name      string
		header    string
		validator *stubValidator
		wantCode  int
	}{
		{"missing header", "", &stubValidator{}, http.StatusUnauthorized},
		{"malformed header", "Token abc", &stubValidator{}, http.StatusUnauthorized},
		{"rejected token", "Bearer abc", &stubValidator{err: errors.New("invalid token")}, http.StatusUnauthorized},
		{"valid token", "Bearer abc", &stubValidator{claims: &TokenClaims{UserID: userID}}, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newProtectedRouter(tc.validator)

			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.wantCode, w.Code)
			if tc.wantCode == http.StatusOK {
				assert.Contains(t, w.Body.String(), userID.String())
			}
		})
	}
}
