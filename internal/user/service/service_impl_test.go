package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	authdomain "github.com/skillshare/skillshare/internal/auth/domain"
	authrepo "github.com/skillshare/skillshare/internal/auth/repository"
	"github.com/skillshare/skillshare/internal/clock"
	skilldomain "github.com/skillshare/skillshare/internal/skill/domain"
	skillrepo "github.com/skillshare/skillshare/internal/skill/repository"
	"github.com/skillshare/skillshare/internal/user/domain"
	"github.com/skillshare/skillshare/internal/user/repository"
	"github.com/skillshare/skillshare/pkg/db/pagination"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type testEnv struct {
	svc   domain.Service
	db    *gorm.DB
	node  *snowflake.Node
	clock *clock.FakeClock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&authdomain.User{},
		&skilldomain.Skill{},
		&domain.UserSkill{},
		&domain.UserInterest{},
	))

	node, err := snowflake.NewNode(3)
	require.NoError(t, err)

	clk := clock.NewFakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	svc := New(zap.NewNop(), repository.New(db), authrepo.New(db), skillrepo.New(db), clk, node)

	return &testEnv{svc: svc, db: db, node: node, clock: clk}
}

func (e *testEnv) createUser(t *testing.T, email string, role authdomain.Role, verified bool) *authdomain.User {
	t.Helper()
	user := &authdomain.User{
		ID:           e.node.Generate(),
		ExternalID:   uuid.NewString(),
		Email:        email,
		PasswordHash: "x",
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Role:         role,
		IsVerified:   verified,
		IsActive:     true,
		HourlyRate:   40,
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) createSkill(t *testing.T, name string) *skilldomain.Skill {
	t.Helper()
	skill := &skilldomain.Skill{
		ID:              e.node.Generate(),
		ExternalID:      uuid.NewString(),
		Name:            name,
		Slug:            name,
		Category:        "Technology",
		Description:     "desc",
		DifficultyLevel: skilldomain.DifficultyIntermediate,
		IsActive:        true,
	}
	require.NoError(t, e.db.Create(skill).Error)
	return skill
}

func TestProfileRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "ada@example.com", authdomain.RoleProvider, true)
	skill := env.createSkill(t, "go")

	_, err := env.svc.UpdateSkills(ctx, user.ID, []domain.SkillSelection{{
		SkillExternalID:  skill.ExternalID,
		ProficiencyLevel: "expert",
		YearsExperience:  5,
	}})
	require.NoError(t, err)

	profile, err := env.svc.Profile(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "ada@example.com", profile.Email)
	require.Len(t, profile.Skills, 1)
	require.Equal(t, domain.ProficiencyExpert, profile.Skills[0].ProficiencyLevel)
	require.Equal(t, "go", profile.Skills[0].Skill.Name)
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "ada@example.com", authdomain.RoleProvider, true)

	first := "Grace"
	bio := "Compilers and more."
	rate := 75.0
	profile, err := env.svc.UpdateProfile(ctx, user.ID, domain.UpdateProfileRequest{
		FirstName:   &first,
		Bio:         &bio,
		HourlyRate:  &rate,
		SocialLinks: map[string]string{"github": "https://github.com/grace"},
	})
	require.NoError(t, err)
	require.Equal(t, "Grace", profile.FirstName)
	require.Equal(t, "Compilers and more.", profile.Bio)
	require.Equal(t, 75.0, profile.HourlyRate)
	require.Equal(t, "https://github.com/grace", profile.SocialLinks["github"])
}

func TestUpdateProfile_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "ada@example.com", authdomain.RoleProvider, true)

	short := "X"
	_, err := env.svc.UpdateProfile(ctx, user.ID, domain.UpdateProfileRequest{FirstName: &short})
	require.ErrorIs(t, err, domain.ErrInvalidProfileInput)

	negative := -1.0
	_, err = env.svc.UpdateProfile(ctx, user.ID, domain.UpdateProfileRequest{HourlyRate: &negative})
	require.ErrorIs(t, err, domain.ErrInvalidProfileInput)
}

func TestPublicProfile_HidesDeactivated(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "ada@example.com", authdomain.RoleLearner, true)

	profile, err := env.svc.PublicProfile(ctx, user.ExternalID)
	require.NoError(t, err)
	require.Equal(t, user.ExternalID, profile.ID)

	require.NoError(t, env.svc.Deactivate(ctx, user.ID))

	_, err = env.svc.PublicProfile(ctx, user.ExternalID)
	require.ErrorIs(t, err, authdomain.ErrUserNotFound)
}

func TestUpdateSkills_UnknownSkill(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "ada@example.com", authdomain.RoleProvider, true)

	_, err := env.svc.UpdateSkills(context.Background(), user.ID, []domain.SkillSelection{{
		SkillExternalID: uuid.NewString(),
	}})
	require.ErrorIs(t, err, domain.ErrUnknownSkill)
}

func TestUpdateSkills_ReplacesList(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "ada@example.com", authdomain.RoleProvider, true)
	first := env.createSkill(t, "go")
	second := env.createSkill(t, "rust")

	_, err := env.svc.UpdateSkills(ctx, user.ID, []domain.SkillSelection{{SkillExternalID: first.ExternalID}})
	require.NoError(t, err)

	entries, err := env.svc.UpdateSkills(ctx, user.ID, []domain.SkillSelection{{SkillExternalID: second.ExternalID}})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "rust", entries[0].Skill.Name)
}

func TestUpdateInterests(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "ada@example.com", authdomain.RoleLearner, true)
	skill := env.createSkill(t, "go")

	views, err := env.svc.UpdateInterests(ctx, user.ID, []string{skill.ExternalID, skill.ExternalID})
	require.NoError(t, err)
	require.Len(t, views, 1)

	profile, err := env.svc.Profile(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, profile.Interests, 1)
	require.Equal(t, "go", profile.Interests[0].Name)
}

func TestSearchProviders(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	provider := env.createUser(t, "ada@example.com", authdomain.RoleProvider, true)
	env.createUser(t, "learner@example.com", authdomain.RoleLearner, true)
	env.createUser(t, "unverified@example.com", authdomain.RoleProvider, false)

	skill := env.createSkill(t, "go")
	_, err := env.svc.UpdateSkills(ctx, provider.ID, []domain.SkillSelection{{SkillExternalID: skill.ExternalID}})
	require.NoError(t, err)

	// Only active, verified providers surface.
	profiles, info, err := env.svc.SearchProviders(ctx, domain.ProviderSearchRequest{}, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	require.EqualValues(t, 1, info.Total)
	require.Equal(t, provider.ExternalID, profiles[0].ID)

	profiles, _, err = env.svc.SearchProviders(ctx, domain.ProviderSearchRequest{SkillExternalID: skill.ExternalID}, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, profiles, 1)

	// Unknown skill filter yields an empty page, not an error.
	profiles, info, err = env.svc.SearchProviders(ctx, domain.ProviderSearchRequest{SkillExternalID: uuid.NewString()}, pagination.Params{})
	require.NoError(t, err)
	require.Empty(t, profiles)
	require.EqualValues(t, 0, info.Total)

	profiles, _, err = env.svc.SearchProviders(ctx, domain.ProviderSearchRequest{Query: "lovelace"}, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, profiles, 1)
}

func TestProvidersBySkill(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	provider := env.createUser(t, "ada@example.com", authdomain.RoleProvider, true)
	skill := env.createSkill(t, "go")
	other := env.createSkill(t, "rust")

	_, err := env.svc.UpdateSkills(ctx, provider.ID, []domain.SkillSelection{{SkillExternalID: skill.ExternalID}})
	require.NoError(t, err)

	profiles, info, err := env.svc.ProvidersBySkill(ctx, skill.ExternalID, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	require.EqualValues(t, 1, info.Total)

	profiles, _, err = env.svc.ProvidersBySkill(ctx, other.ExternalID, pagination.Params{})
	require.NoError(t, err)
	require.Empty(t, profiles)

	_, _, err = env.svc.ProvidersBySkill(ctx, uuid.NewString(), pagination.Params{})
	require.ErrorIs(t, err, skilldomain.ErrSkillNotFound)
}
