package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/voyageclub/voyageclub-golang/internal/auth"
	"github.com/voyageclub/voyageclub-golang/internal/models"
)

//
// --- Member Registration & Login ---
//

// RegisterInput is separate from models.User because we never accept
// an id, role, tier or status from the client.
type RegisterInput struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// Register is the handler for POST /v1/register
// New members start active on the Silver tier with zero points.
func (h *Handlers) Register(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 2. --- Hash the Password ---
	var password models.Password
	if err := password.Set(input.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	// 3. --- Insert the User ---
	now := time.Now()
	query := `
		INSERT INTO users
		(role, status, email, password_hash, full_name, membership_tier, points, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, 0, ?, ?)`

	result, err := h.DB.Exec(query,
		models.RoleMember, models.StatusActive, input.Email, password.Hash,
		input.FullName, models.TierSilver, now, now)
	if err != nil {
		// The unique index on email is the usual culprit here.
		c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})
		return
	}
	userID, err := result.LastInsertId()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get new user ID"})
		return
	}

	// 4. --- Issue a Token So the Member Is Signed In Right Away ---
	token, err := auth.GenerateToken(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Welcome to VoyageClub",
		"token":   token,
		"userId":  userID,
	})
}

// LoginInput defines the JSON body for POST /v1/login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login is the handler for POST /v1/login
func (h *Handlers) Login(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 2. --- Find User By Email ---
	var user models.User
	query := "SELECT id, password_hash, role, status FROM users WHERE email = ?"

	err := h.DB.QueryRow(query, input.Email).Scan(
		&user.ID,
		&user.PasswordHash,
		&user.Role,
		&user.Status,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	// 3. --- Check Account Status ---
	// A deactivated member keeps their tier and points, but cannot
	// sign in. The notice matches what the protected routes return.
	if user.Status == models.StatusInactive {
		c.JSON(http.StatusForbidden, gin.H{
			"error":       "Your account has been deactivated. Please contact support.",
			"deactivated": true,
		})
		return
	}

	// 4. --- Check Password ---
	var password models.Password
	password.Hash = user.PasswordHash

	match, err := password.Matches(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check password"})
		return
	}
	if !match {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	// 5. --- Generate JWT ---
	token, err := auth.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
	})
}

// GetMe is the handler for GET /v1/profile/me
// It returns the logged-in member's profile and membership attributes.
func (h *Handlers) GetMe(c *gin.Context) {
	// 1. --- Get User ID (set by AuthMiddleware) ---
	userID_raw, _ := c.Get("userID")
	userID := userID_raw.(int64)

	// 2. --- Load the Profile ---
	var user models.User
	query := `
		SELECT id, role, status, email, full_name, membership_tier, points, phone_number, created_at, updated_at
		FROM users
		WHERE id = ?`

	err := h.DB.QueryRow(query, userID).Scan(
		&user.ID,
		&user.Role,
		&user.Status,
		&user.Email,
		&user.FullName,
		&user.MembershipTier,
		&user.Points,
		&user.PhoneNumber,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
