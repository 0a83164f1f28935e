// Package domain contains core types for the skill catalog.
package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Categories is the closed set of catalog categories.
var Categories = []string{
	"Technology",
	"Business",
	"Creative Arts",
	"Languages",
	"Health & Fitness",
	"Cooking & Food",
	"Music",
	"Sports",
	"Education",
	"Personal Development",
	"Other",
}

func ValidCategory(raw string) bool {
	for _, c := range Categories {
		if c == raw {
			return true
		}
	}
	return false
}

// Difficulty is the closed set of difficulty levels.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
	DifficultyExpert       Difficulty = "expert"
)

func ParseDifficulty(raw string) (Difficulty, bool) {
	switch Difficulty(strings.ToLower(strings.TrimSpace(raw))) {
	case DifficultyBeginner:
		return DifficultyBeginner, true
	case DifficultyIntermediate:
		return DifficultyIntermediate, true
	case DifficultyAdvanced:
		return DifficultyAdvanced, true
	case DifficultyExpert:
		return DifficultyExpert, true
	default:
		return "", false
	}
}

// Skill is a catalog entry.
type Skill struct {
	ID         snowflake.ID `gorm:"primaryKey"`
	ExternalID string       `gorm:"type:text;not null;uniqueIndex"`

	Name string `gorm:"type:text;not null"`
	// Slug is derived from the name; its unique index makes name
	// uniqueness case-insensitive.
	Slug string `gorm:"type:text;not null;uniqueIndex"`

	Category    string `gorm:"type:text;not null;index"`
	Description string `gorm:"type:text;not null"`

	Icon  string `gorm:"type:text;not null;default:'fas fa-star'"`
	Color string `gorm:"type:text;not null;default:'#667eea'"`

	ProviderCount     int64   `gorm:"not null;default:0"`
	LearnerCount      int64   `gorm:"not null;default:0"`
	AverageHourlyRate float64 `gorm:"not null;default:0"`
	AverageRating     float64 `gorm:"not null;default:0"`
	TotalSessions     int64   `gorm:"not null;default:0"`

	DifficultyLevel Difficulty `gorm:"type:text;not null;default:'intermediate'"`

	IsTrending  bool  `gorm:"not null;default:false;index"`
	SearchCount int64 `gorm:"not null;default:0"`

	IsActive   bool `gorm:"not null;default:true;index"`
	IsVerified bool `gorm:"not null;default:false"`

	Tags     datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Keywords datatypes.JSONSlice[string] `gorm:"type:jsonb"`

	CreatedByID *snowflake.ID

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Skill) TableName() string { return "skills" }

// PopularityScore weighs demand signals into a single ranking value.
func (s *Skill) PopularityScore() float64 {
	return float64(s.SearchCount)*0.3 + float64(s.TotalSessions)*0.4 + s.AverageRating*0.3
}

// View is the caller-facing shape of a catalog entry.
type View struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Slug              string     `json:"slug"`
	Category          string     `json:"category"`
	Description       string     `json:"description"`
	Icon              string     `json:"icon"`
	Color             string     `json:"color"`
	ProviderCount     int64      `json:"provider_count"`
	LearnerCount      int64      `json:"learner_count"`
	AverageHourlyRate float64    `json:"average_hourly_rate"`
	AverageRating     float64    `json:"average_rating"`
	TotalSessions     int64      `json:"total_sessions"`
	DifficultyLevel   Difficulty `json:"difficulty_level"`
	IsTrending        bool       `json:"is_trending"`
	PopularityScore   float64    `json:"popularity_score"`
	Tags              []string   `json:"tags,omitempty"`
	Keywords          []string   `json:"keywords,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

func (s *Skill) View() View {
	return View{
		ID:                s.ExternalID,
		Name:              s.Name,
		Slug:              s.Slug,
		Category:          s.Category,
		Description:       s.Description,
		Icon:              s.Icon,
		Color:             s.Color,
		ProviderCount:     s.ProviderCount,
		LearnerCount:      s.LearnerCount,
		AverageHourlyRate: s.AverageHourlyRate,
		AverageRating:     s.AverageRating,
		TotalSessions:     s.TotalSessions,
		DifficultyLevel:   s.DifficultyLevel,
		IsTrending:        s.IsTrending,
		PopularityScore:   s.PopularityScore(),
		Tags:              s.Tags,
		Keywords:          s.Keywords,
		CreatedAt:         s.CreatedAt,
	}
}

func Views(skills []Skill) []View {
	views := make([]View, 0, len(skills))
	for i := range skills {
		views = append(views, skills[i].View())
	}
	return views
}
