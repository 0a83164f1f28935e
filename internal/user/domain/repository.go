package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/skillshare/skillshare/internal/auth/domain"
	"github.com/skillshare/skillshare/pkg/db/pagination"
)

// ProviderSearch narrows provider discovery. Zero values mean no filter.
type ProviderSearch struct {
	Query   string
	SkillID *snowflake.ID
	Country string
	MinRate *float64
	MaxRate *float64
}

type Repository interface {
	SkillsOf(ctx context.Context, userID snowflake.ID) ([]UserSkill, error)
	ReplaceSkills(ctx context.Context, userID snowflake.ID, skills []UserSkill) error
	InterestsOf(ctx context.Context, userID snowflake.ID) ([]UserInterest, error)
	ReplaceInterests(ctx context.Context, userID snowflake.ID, interests []UserInterest) error

	// SearchProviders returns active, verified provider accounts.
	SearchProviders(ctx context.Context, search ProviderSearch, page pagination.Params) ([]authdomain.User, int64, error)
	ProvidersBySkill(ctx context.Context, skillID snowflake.ID, page pagination.Params) ([]authdomain.User, int64, error)
}
