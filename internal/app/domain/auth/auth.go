// Package auth guards the admin hub endpoints with a single configured
// admin account and short-lived bearer tokens.
package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/wanderbase/wanderbase/internal/app/observability/metrics"
	"github.com/wanderbase/wanderbase/internal/pkg/config"
)

type Service struct {
	logger *zap.Logger
	cfg    config.AdminConfig
}

func NewService(cfg config.AdminConfig, logger *zap.Logger) *Service {
	return &Service{logger: logger, cfg: cfg}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// HandleLogin exchanges admin credentials for a bearer token.
func (s *Service) HandleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	if s.cfg.PasswordHash == "" || s.cfg.JWTSecret == "" {
		s.logger.Error("Admin login attempted without ADMIN_PASSWORD_HASH / ADMIN_JWT_SECRET configured")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "admin login is not configured"})
		return
	}

	emailOK := subtle.ConstantTimeCompare([]byte(strings.ToLower(req.Email)), []byte(strings.ToLower(s.cfg.Email))) == 1
	passwordErr := bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(req.Password))
	if !emailOK || passwordErr != nil {
		s.logger.Warn("Admin login rejected", zap.String("email", req.Email))
		metrics.RecordAdminLogin(c.Request.Context(), false)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: s.cfg.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
		},
	})

	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		s.logger.Error("Failed to sign admin token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	metrics.RecordAdminLogin(c.Request.Context(), true)
	c.JSON(http.StatusOK, gin.H{
		"token":     signed,
		"expiresAt": now.Add(s.cfg.TokenTTL),
	})
}

// RequireAdmin validates the Authorization bearer token for the admin
// route group.
func (s *Service) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenStr, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		parsed, err := jwt.ParseWithClaims(tokenStr, &claims{}, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(s.cfg.JWTSecret), nil
		})
		if err != nil || !parsed.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		if cl, ok := parsed.Claims.(*claims); ok {
			c.Set("adminEmail", cl.Email)
		}
		c.Next()
	}
}
