// Package domain contains core types for the auth service.
package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Role is the closed set of account roles. It is fixed at signup and drives
// authorization decisions in the request gate.
type Role string

const (
	RoleLearner  Role = "learner"
	RoleProvider Role = "provider"
)

// ParseRole validates a raw role value against the closed set.
func ParseRole(raw string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleLearner:
		return RoleLearner, true
	case RoleProvider:
		return RoleProvider, true
	default:
		return "", false
	}
}

// User represents a registered account.
type User struct {
	ID         snowflake.ID `gorm:"primaryKey"`
	ExternalID string       `gorm:"type:text;not null;uniqueIndex"`

	// Email is stored lowercase; uniqueness is therefore case-insensitive.
	Email        string `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string `gorm:"type:text;not null"`

	FirstName string `gorm:"type:text;not null"`
	LastName  string `gorm:"type:text;not null"`
	Phone     string `gorm:"type:text"`
	Bio       string `gorm:"type:text"`

	Role       Role `gorm:"type:text;not null;index"`
	IsVerified bool `gorm:"not null;default:false"`
	IsActive   bool `gorm:"not null;default:true;index"`

	ProfileImage string            `gorm:"type:text"`
	Country      string            `gorm:"type:text"`
	City         string            `gorm:"type:text"`
	Timezone     string            `gorm:"type:text"`
	HourlyRate   float64           `gorm:"not null;default:0"`
	SocialLinks  datatypes.JSONMap `gorm:"type:jsonb"`

	// Verification state. Token and expiry are set and cleared together.
	EmailVerifyToken   *string `gorm:"type:text"`
	EmailVerifyExpires *time.Time
	ResetToken         *string `gorm:"type:text"`
	ResetExpires       *time.Time

	LastLoginAt *time.Time
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }

// FullName joins the name parts for display and email greetings.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// PublicProfile is the caller-facing view of an account. Credential and
// token fields never appear here.
type PublicProfile struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	FirstName    string         `json:"first_name"`
	LastName     string         `json:"last_name"`
	Phone        string         `json:"phone,omitempty"`
	Bio          string         `json:"bio,omitempty"`
	Role         Role           `json:"role"`
	IsVerified   bool           `json:"is_verified"`
	ProfileImage string         `json:"profile_image,omitempty"`
	Country      string         `json:"country,omitempty"`
	City         string         `json:"city,omitempty"`
	Timezone     string         `json:"timezone,omitempty"`
	HourlyRate   float64        `json:"hourly_rate"`
	SocialLinks  map[string]any `json:"social_links,omitempty"`
	LastLoginAt  *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// Public returns the sanitized view of the account.
func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:           u.ExternalID,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Phone:        u.Phone,
		Bio:          u.Bio,
		Role:         u.Role,
		IsVerified:   u.IsVerified,
		ProfileImage: u.ProfileImage,
		Country:      u.Country,
		City:         u.City,
		Timezone:     u.Timezone,
		HourlyRate:   u.HourlyRate,
		SocialLinks:  u.SocialLinks,
		LastLoginAt:  u.LastLoginAt,
		CreatedAt:    u.CreatedAt,
	}
}
