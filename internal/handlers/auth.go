package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"olcmelab/internal/models"
	"olcmelab/internal/security"
)

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) RegisterHandler(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request: email and password are required"})
		return
	}

	var existing models.User
	err := h.DB.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"detail": "Email already registered"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("ERROR: Could not check existing user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Could not register user"})
		return
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		log.Printf("ERROR: Could not hash password: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Could not register user"})
		return
	}

	user := models.User{Email: req.Email, PasswordHash: hash}
	if err := h.DB.Create(&user).Error; err != nil {
		log.Printf("ERROR: Could not create user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Could not register user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) LoginHandler(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request: email and password are required"})
		return
	}

	// A missing user and a wrong password answer identically so the
	// status code cannot be used to enumerate accounts.
	var user models.User
	err := h.DB.Where("email = ?", req.Email).First(&user).Error
	if err != nil || !security.VerifyPassword(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Bad credentials"})
		return
	}

	token, err := security.CreateAccessToken(user.Email, h.Cfg.JWTSecret, h.Cfg.JWTAlg, h.Cfg.AccessTokenTTL())
	if err != nil {
		log.Printf("ERROR: Could not sign access token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
}
