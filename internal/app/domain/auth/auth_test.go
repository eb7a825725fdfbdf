package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/wanderbase/wanderbase/internal/pkg/config"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("open-sesame"), bcrypt.MinCost)
	require.NoError(t, err)

	return NewService(config.AdminConfig{
		Email:        "admin@example.com",
		PasswordHash: string(hash),
		JWTSecret:    "test-secret",
		TokenTTL:     time.Hour,
	}, zap.NewNop())
}

func newTestEngine(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", svc.HandleLogin)
	protected := r.Group("/", svc.RequireAdmin())
	protected.GET("/secret", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": c.GetString("adminEmail")})
	})
	return r
}

func doLogin(t *testing.T, r *gin.Engine, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(gin.H{"email": email, "password": password})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoginIssuesToken(t *testing.T) {
	r := newTestEngine(newTestService(t))

	w := doLogin(t, r, "Admin@Example.com", "open-sesame")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token     string    `json:"token"`
		ExpiresAt time.Time `json:"expiresAt"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.True(t, resp.ExpiresAt.After(time.Now()))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	r := newTestEngine(newTestService(t))

	assert.Equal(t, http.StatusUnauthorized, doLogin(t, r, "admin@example.com", "wrong").Code)
	assert.Equal(t, http.StatusUnauthorized, doLogin(t, r, "other@example.com", "open-sesame").Code)
	assert.Equal(t, http.StatusBadRequest, doLogin(t, r, "", "").Code)
}

func TestLoginUnconfigured(t *testing.T) {
	svc := NewService(config.AdminConfig{Email: "admin@example.com"}, zap.NewNop())
	r := newTestEngine(svc)

	w := doLogin(t, r, "admin@example.com", "anything")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	svc := newTestService(t)
	r := newTestEngine(svc)

	login := doLogin(t, r, "admin@example.com", "open-sesame")
	require.Equal(t, http.StatusOK, login.Code)
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(login.Body.Bytes(), &resp))

	req := httptest.NewRequest(http.MethodGet, "/secret", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin@example.com")

	// no header at all
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/secret", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// garbage token
	req = httptest.NewRequest(http.MethodGet, "/secret", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdminRejectsForeignSignature(t *testing.T) {
	issuer := newTestService(t)
	verifier := NewService(config.AdminConfig{
		Email:        "admin@example.com",
		PasswordHash: issuer.cfg.PasswordHash,
		JWTSecret:    "a-different-secret",
		TokenTTL:     time.Hour,
	}, zap.NewNop())

	login := doLogin(t, newTestEngine(issuer), "admin@example.com", "open-sesame")
	require.Equal(t, http.StatusOK, login.Code)
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(login.Body.Bytes(), &resp))

	req := httptest.NewRequest(http.MethodGet, "/secret", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	w := httptest.NewRecorder()
	newTestEngine(verifier).ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
