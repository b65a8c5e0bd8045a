package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fitai/plan-service/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

func signToken(t *testing.T, secret string, role domain.Role, expiresIn time.Duration) string {
	t.Helper()
	claims := &jwtClaims{
		UserID: "652f1c2b9d1e8a0012345678",
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatal(err)
	}
	return "Bearer " + s
}

func TestAuthAndRoleMiddleware(t *testing.T) {
	router := gin.New()
	router.GET("/admin", AuthMiddleware(testSecret), RoleMiddleware(domain.RoleAdmin), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextUserIDKey))
	})

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"admin", signToken(t, testSecret, domain.RoleAdmin, time.Hour), http.StatusOK},
		{"other role", signToken(t, testSecret, domain.Role("client"), time.Hour), http.StatusForbidden},
		{"expired", signToken(t, testSecret, domain.RoleAdmin, -time.Minute), http.StatusUnauthorized},
		{"wrong secret", signToken(t, "other-secret", domain.RoleAdmin, time.Hour), http.StatusUnauthorized},
		{"not bearer", "Basic YWxhZGRpbjpvcGVuc2VzYW1l", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/admin", nil)
			r.Header.Set("Authorization", tc.header)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, r)
			if w.Code != tc.want {
				t.Errorf("status = %d, want %d (%s)", w.Code, tc.want, w.Body)
			}
		})
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(RequestIDMiddleware(), RecoveryMiddleware(zap.NewNop()))
	router.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d", w.Code)
	}
	if w.Header().Get(RequestIDHeader) == "" {
		t.Error("request id missing on recovered response")
	}
}
