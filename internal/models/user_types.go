package models

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Membership tiers. The tier only decides discount eligibility;
// it is fully independent of account status.
const (
	TierSilver   = "Silver"
	TierGold     = "Gold"
	TierPlatinum = "Platinum"
)

// Account statuses. An 'inactive' member keeps tier and points but
// loses access to every protected route (soft lifecycle, no hard delete).
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Roles
const (
	RoleMember        = "member"
	RoleAdministrator = "administrator"
)

// ValidTier reports whether t is one of the three known membership tiers.
// An unknown or empty tier is an error condition for pricing; we never
// silently default it to Silver.
func ValidTier(t string) bool {
	return t == TierSilver || t == TierGold || t == TierPlatinum
}

// User Model with Pointers for Nullable Fields
type User struct {
	ID           int64  `json:"id" db:"id"`
	Role         string `json:"role" db:"role"`
	Status       string `json:"status" db:"status"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`
	FullName     string `json:"fullName" db:"full_name"`

	// Membership attributes
	MembershipTier string `json:"membershipTier" db:"membership_tier"`
	Points         int    `json:"points" db:"points"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// --- Profile Fields (Pointers = Clean JSON) ---
	PhoneNumber *string `json:"phoneNumber,omitempty" db:"phone_number"`
	AvatarURL   *string `json:"avatarUrl,omitempty" db:"avatar_url"`
}

// Password Helper (Standard)
type Password struct {
	Plaintext *string
	Hash      string
}

func (p *Password) Set(plaintextPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintextPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.Hash = string(hash)
	p.Plaintext = &plaintextPassword
	return nil
}

func (p *Password) Matches(plaintextPassword string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(p.Hash), []byte(plaintextPassword))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
