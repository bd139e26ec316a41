package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"stockpulse/internal/repository"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (m ApiHandler) register(c *gin.Context) {
	var requestBody RegisterRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}
	email := strings.ToLower(strings.TrimSpace(requestBody.Email))
	if email == "" || len(requestBody.Password) < 8 {
		returnErrorJsonCode(fmt.Errorf("email and a password of at least 8 characters are required"), c, 400)
		return
	}

	if _, err := m.UserAccountRepository.GetByEmail(email); err == nil {
		returnErrorJsonCode(fmt.Errorf("email already registered"), c, 400)
		return
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		returnErrorJson(err, c)
		return
	}

	hash, err := hashPassword(requestBody.Password)
	if err != nil {
		returnErrorJson(err, c)
		return
	}
	user, err := m.UserAccountRepository.Create(email, hash)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	token, err := m.createAccessToken(user.Email)
	if err != nil {
		returnErrorJson(err, c)
		return
	}
	c.JSON(201, TokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (m ApiHandler) login(c *gin.Context) {
	var requestBody RegisterRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	user, err := m.UserAccountRepository.GetByEmail(strings.ToLower(requestBody.Email))
	if err != nil || !verifyPassword(requestBody.Password, user.PasswordHash) {
		returnErrorJsonCode(fmt.Errorf("invalid email or password"), c, 401)
		return
	}

	token, err := m.createAccessToken(user.Email)
	if err != nil {
		returnErrorJson(err, c)
		return
	}
	c.JSON(200, TokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (m ApiHandler) me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		returnErrorJsonCode(fmt.Errorf("not authenticated"), c, 401)
		return
	}
	c.JSON(200, user)
}
