package middleware

import (
	"database/sql"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/voyageclub/voyageclub-golang/internal/auth"
	"github.com/voyageclub/voyageclub-golang/internal/models"
)

// Identity states. The gate resolves every request into exactly one of
// these; Loading does not exist server-side because resolution happens
// synchronously per request.
const (
	IdentityAnonymous = "anonymous"
	IdentityActive    = "active"
	IdentityInactive  = "inactive"
)

// Identity is the resolved auth state for one request.
type Identity struct {
	State  string
	UserID int64
	Tier   string
	Role   string
}

// ResolveIdentity turns a raw Authorization header into an Identity.
//
// Any failure along the way (bad token, user row gone, database error)
// fails closed to Anonymous: the caller gets the least-privileged state
// and the error is logged, never propagated as a crash. The user's
// status and tier are re-read from the database on every request, so a
// deactivation takes effect immediately without waiting for the token
// to expire.
func ResolveIdentity(db *sql.DB, authHeader string) Identity {
	anonymous := Identity{State: IdentityAnonymous}

	// 1. --- Extract the Bearer token ---
	if authHeader == "" {
		return anonymous
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return anonymous
	}

	// 2. --- Validate Token ---
	userID, err := auth.ValidateToken(parts[1])
	if err != nil {
		return anonymous
	}

	// 3. --- Load live status, tier and role ---
	var status, tier, role string
	err = db.QueryRow("SELECT status, membership_tier, role FROM users WHERE id = ?", userID).
		Scan(&status, &tier, &role)
	if err != nil {
		if err != sql.ErrNoRows {
			// Fail closed: a resolution error must never grant access.
			log.Printf("identity resolution failed for user %d: %v", userID, err)
		}
		return anonymous
	}

	ident := Identity{UserID: userID, Tier: tier, Role: role}
	if status == models.StatusInactive {
		ident.State = IdentityInactive
	} else {
		ident.State = IdentityActive
	}
	return ident
}

// identityResolver turns an Authorization header into an Identity.
// AuthMiddleware plugs ResolveIdentity in; tests can substitute one.
type identityResolver func(authHeader string) Identity

// AuthMiddleware guards protected routes.
//
// Anonymous visitors get 401 (the frontend redirects to sign-in).
// Inactive members get 403 with an explicit deactivation notice — once
// per request, which the frontend surfaces once per mount. Active
// members proceed with their identity stored in the gin context.
func AuthMiddleware(db *sql.DB) gin.HandlerFunc {
	return authGate(func(authHeader string) Identity {
		return ResolveIdentity(db, authHeader)
	})
}

func authGate(resolve identityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		ident := resolve(authHeader)
		switch ident.State {
		case IdentityAnonymous:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		case IdentityInactive:
			c.JSON(http.StatusForbidden, gin.H{
				"error":       "Your account has been deactivated. Please contact support.",
				"deactivated": true,
			})
			c.Abort()
			return
		}

		c.Set("userID", ident.UserID)
		c.Set("userTier", ident.Tier)
		c.Set("userRole", ident.Role)
		c.Next()
	}
}
