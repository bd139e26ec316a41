package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"golang.org/x/crypto/bcrypt"

	"stockpulse/internal/domain"
)

const userContextKey = "user"

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func verifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (m ApiHandler) createAccessToken(email string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub": email,
		"iat": now.Unix(),
		"exp": now.Add(m.TokenTTL).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(m.JwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// parseAccessToken verifies the signature and expiry and returns the subject
// email.
func (m ApiHandler) parseAccessToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(m.JwtSecret), nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return sub, nil
}

// requireUser gates a route on a valid bearer token and loads the account
// into the request context.
func (m ApiHandler) requireUser(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		returnErrorJsonCode(fmt.Errorf("missing bearer token"), c, 401)
		return
	}
	email, err := m.parseAccessToken(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		returnErrorJsonCode(fmt.Errorf("invalid credentials"), c, 401)
		return
	}
	user, err := m.UserAccountRepository.GetByEmail(email)
	if err != nil {
		returnErrorJsonCode(fmt.Errorf("invalid credentials"), c, 401)
		return
	}
	c.Set(userContextKey, user)
	c.Next()
}

func currentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok
}
