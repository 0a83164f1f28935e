// Package domain contains core types for user profiles, their skill and
// interest lists, and provider discovery.
package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/skillshare/skillshare/internal/auth/domain"
	skilldomain "github.com/skillshare/skillshare/internal/skill/domain"
	"gorm.io/datatypes"
)

// Proficiency is the closed set of self-assessed skill levels.
type Proficiency string

const (
	ProficiencyBeginner     Proficiency = "beginner"
	ProficiencyIntermediate Proficiency = "intermediate"
	ProficiencyAdvanced     Proficiency = "advanced"
	ProficiencyExpert       Proficiency = "expert"
)

func ParseProficiency(raw string) (Proficiency, bool) {
	switch Proficiency(strings.ToLower(strings.TrimSpace(raw))) {
	case ProficiencyBeginner:
		return ProficiencyBeginner, true
	case ProficiencyIntermediate:
		return ProficiencyIntermediate, true
	case ProficiencyAdvanced:
		return ProficiencyAdvanced, true
	case ProficiencyExpert:
		return ProficiencyExpert, true
	default:
		return "", false
	}
}

// UserSkill links a provider to a catalog entry they teach.
type UserSkill struct {
	ID      snowflake.ID `gorm:"primaryKey"`
	UserID  snowflake.ID `gorm:"not null;uniqueIndex:idx_user_skill"`
	SkillID snowflake.ID `gorm:"not null;uniqueIndex:idx_user_skill;index"`

	ProficiencyLevel Proficiency                 `gorm:"type:text;not null;default:'intermediate'"`
	YearsExperience  float64                     `gorm:"not null;default:0"`
	Certifications   datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	PortfolioLinks   datatypes.JSONSlice[string] `gorm:"type:jsonb"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (UserSkill) TableName() string { return "user_skills" }

// UserInterest links a learner to a catalog entry they want to learn.
type UserInterest struct {
	ID      snowflake.ID `gorm:"primaryKey"`
	UserID  snowflake.ID `gorm:"not null;uniqueIndex:idx_user_interest"`
	SkillID snowflake.ID `gorm:"not null;uniqueIndex:idx_user_interest;index"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (UserInterest) TableName() string { return "user_interests" }

// SkillEntry is a provider's skill with the catalog entry resolved.
type SkillEntry struct {
	Skill            skilldomain.View `json:"skill"`
	ProficiencyLevel Proficiency      `json:"proficiency_level"`
	YearsExperience  float64          `json:"years_experience"`
	Certifications   []string         `json:"certifications,omitempty"`
	PortfolioLinks   []string         `json:"portfolio_links,omitempty"`
}

// Profile is an account's public view enriched with its skill and interest
// lists.
type Profile struct {
	authdomain.PublicProfile
	Skills    []SkillEntry       `json:"skills"`
	Interests []skilldomain.View `json:"interests"`
}
