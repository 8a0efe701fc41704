package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jobdeck/jobdeck/internal/auth"
	"github.com/jobdeck/jobdeck/internal/models"
	"gorm.io/gorm"
)

type AuthHandler struct {
	DB           *gorm.DB
	TokenService *auth.TokenService
}

func NewAuthHandler(db *gorm.DB, ts *auth.TokenService) *AuthHandler {
	return &AuthHandler{DB: db, TokenService: ts}
}

// Login issues a bearer token for the given email, creating the user record
// on first sight.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "valid email required"})
		return
	}

	var user models.User
	if err := h.DB.Where(models.User{Email: req.Email}).FirstOrCreate(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user lookup failed"})
		return
	}

	token, err := h.TokenService.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user_id": user.ID})
}
