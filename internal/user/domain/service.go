package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/skillshare/skillshare/internal/auth/domain"
	skilldomain "github.com/skillshare/skillshare/internal/skill/domain"
	"github.com/skillshare/skillshare/pkg/db/pagination"
)

type Service interface {
	Profile(ctx context.Context, userID snowflake.ID) (*Profile, error)
	UpdateProfile(ctx context.Context, userID snowflake.ID, req UpdateProfileRequest) (*Profile, error)

	// PublicProfile hides deactivated accounts behind a not-found.
	PublicProfile(ctx context.Context, externalID string) (*Profile, error)

	SearchProviders(ctx context.Context, req ProviderSearchRequest, page pagination.Params) ([]authdomain.PublicProfile, pagination.PageInfo, error)
	ProvidersBySkill(ctx context.Context, skillExternalID string, page pagination.Params) ([]authdomain.PublicProfile, pagination.PageInfo, error)

	UpdateSkills(ctx context.Context, userID snowflake.ID, selections []SkillSelection) ([]SkillEntry, error)
	UpdateInterests(ctx context.Context, userID snowflake.ID, skillExternalIDs []string) ([]skilldomain.View, error)

	Deactivate(ctx context.Context, userID snowflake.ID) error
}

// UpdateProfileRequest carries partial profile updates; nil fields are left
// unchanged.
type UpdateProfileRequest struct {
	FirstName   *string
	LastName    *string
	Phone       *string
	Bio         *string
	Country     *string
	City        *string
	Timezone    *string
	HourlyRate  *float64
	SocialLinks map[string]string
}

// ProviderSearchRequest is the external shape of a provider search, with the
// skill referenced by its external id.
type ProviderSearchRequest struct {
	Query           string
	SkillExternalID string
	Country         string
	MinRate         *float64
	MaxRate         *float64
}

// SkillSelection is one entry of a provider's skill list update.
type SkillSelection struct {
	SkillExternalID  string
	ProficiencyLevel string
	YearsExperience  float64
	Certifications   []string
	PortfolioLinks   []string
}
