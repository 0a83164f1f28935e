package service

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/skillshare/skillshare/internal/auth/domain"
	"github.com/skillshare/skillshare/internal/clock"
	skilldomain "github.com/skillshare/skillshare/internal/skill/domain"
	"github.com/skillshare/skillshare/internal/user/domain"
	"github.com/skillshare/skillshare/pkg/db/pagination"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const (
	minNameLen = 2
	maxNameLen = 50
	maxBioLen  = 500
)

type Service struct {
	log      *zap.Logger
	repo     domain.Repository
	accounts authdomain.Repository
	catalog  skilldomain.Repository
	clock    clock.Clock
	genID    *snowflake.Node
}

func New(
	log *zap.Logger,
	repo domain.Repository,
	accounts authdomain.Repository,
	catalog skilldomain.Repository,
	clk clock.Clock,
	genID *snowflake.Node,
) domain.Service {
	return &Service{
		log:      log.Named("user.service"),
		repo:     repo,
		accounts: accounts,
		catalog:  catalog,
		clock:    clk,
		genID:    genID,
	}
}

func (s *Service) Profile(ctx context.Context, userID snowflake.ID) (*domain.Profile, error) {
	user, err := s.accounts.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.buildProfile(ctx, user)
}

func (s *Service) UpdateProfile(ctx context.Context, userID snowflake.ID, req domain.UpdateProfileRequest) (*domain.Profile, error) {
	user, err := s.accounts.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}

	if req.FirstName != nil {
		name := strings.TrimSpace(*req.FirstName)
		if len(name) < minNameLen || len(name) > maxNameLen {
			return nil, domain.ErrInvalidProfileInput
		}
		fields["first_name"] = name
	}
	if req.LastName != nil {
		name := strings.TrimSpace(*req.LastName)
		if len(name) < minNameLen || len(name) > maxNameLen {
			return nil, domain.ErrInvalidProfileInput
		}
		fields["last_name"] = name
	}
	if req.Phone != nil {
		fields["phone"] = strings.TrimSpace(*req.Phone)
	}
	if req.Bio != nil {
		bio := strings.TrimSpace(*req.Bio)
		if len(bio) > maxBioLen {
			return nil, domain.ErrInvalidProfileInput
		}
		fields["bio"] = bio
	}
	if req.Country != nil {
		fields["country"] = strings.TrimSpace(*req.Country)
	}
	if req.City != nil {
		fields["city"] = strings.TrimSpace(*req.City)
	}
	if req.Timezone != nil {
		fields["timezone"] = strings.TrimSpace(*req.Timezone)
	}
	if req.HourlyRate != nil {
		if *req.HourlyRate < 0 {
			return nil, domain.ErrInvalidProfileInput
		}
		fields["hourly_rate"] = *req.HourlyRate
	}
	if req.SocialLinks != nil {
		// Submitted keys are merged over the stored ones.
		merged := datatypes.JSONMap{}
		for k, v := range user.SocialLinks {
			merged[k] = v
		}
		for k, v := range req.SocialLinks {
			merged[k] = v
		}
		fields["social_links"] = merged
	}

	if len(fields) > 0 {
		if err := s.accounts.UpdateFields(ctx, userID, fields); err != nil {
			return nil, err
		}
	}

	updated, err := s.accounts.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.buildProfile(ctx, updated)
}

func (s *Service) PublicProfile(ctx context.Context, externalID string) (*domain.Profile, error) {
	user, err := s.accounts.FindByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, authdomain.ErrUserNotFound
	}
	return s.buildProfile(ctx, user)
}

func (s *Service) SearchProviders(ctx context.Context, req domain.ProviderSearchRequest, page pagination.Params) ([]authdomain.PublicProfile, pagination.PageInfo, error) {
	page = page.Normalize()

	search := domain.ProviderSearch{
		Query:   req.Query,
		Country: req.Country,
		MinRate: req.MinRate,
		MaxRate: req.MaxRate,
	}
	if req.SkillExternalID != "" {
		skill, err := s.catalog.FindByExternalID(ctx, req.SkillExternalID)
		if errors.Is(err, skilldomain.ErrSkillNotFound) {
			return []authdomain.PublicProfile{}, pagination.NewPageInfo(page, 0), nil
		}
		if err != nil {
			return nil, pagination.PageInfo{}, err
		}
		search.SkillID = &skill.ID
	}

	users, total, err := s.repo.SearchProviders(ctx, search, page)
	if err != nil {
		return nil, pagination.PageInfo{}, err
	}
	return publicProfiles(users), pagination.NewPageInfo(page, total), nil
}

func (s *Service) ProvidersBySkill(ctx context.Context, skillExternalID string, page pagination.Params) ([]authdomain.PublicProfile, pagination.PageInfo, error) {
	page = page.Normalize()

	skill, err := s.catalog.FindByExternalID(ctx, skillExternalID)
	if err != nil {
		return nil, pagination.PageInfo{}, err
	}

	users, total, err := s.repo.ProvidersBySkill(ctx, skill.ID, page)
	if err != nil {
		return nil, pagination.PageInfo{}, err
	}
	return publicProfiles(users), pagination.NewPageInfo(page, total), nil
}

func (s *Service) UpdateSkills(ctx context.Context, userID snowflake.ID, selections []domain.SkillSelection) ([]domain.SkillEntry, error) {
	now := s.clock.Now()
	rows := make([]domain.UserSkill, 0, len(selections))
	seen := map[snowflake.ID]bool{}

	for _, sel := range selections {
		skill, err := s.catalog.FindByExternalID(ctx, sel.SkillExternalID)
		if errors.Is(err, skilldomain.ErrSkillNotFound) {
			return nil, domain.ErrUnknownSkill
		}
		if err != nil {
			return nil, err
		}
		if seen[skill.ID] {
			continue
		}
		seen[skill.ID] = true

		proficiency := domain.ProficiencyIntermediate
		if sel.ProficiencyLevel != "" {
			parsed, ok := domain.ParseProficiency(sel.ProficiencyLevel)
			if !ok {
				return nil, domain.ErrInvalidProfileInput
			}
			proficiency = parsed
		}
		if sel.YearsExperience < 0 {
			return nil, domain.ErrInvalidProfileInput
		}

		rows = append(rows, domain.UserSkill{
			ID:               s.genID.Generate(),
			UserID:           userID,
			SkillID:          skill.ID,
			ProficiencyLevel: proficiency,
			YearsExperience:  sel.YearsExperience,
			Certifications:   sel.Certifications,
			PortfolioLinks:   sel.PortfolioLinks,
			CreatedAt:        now,
			UpdatedAt:        now,
		})
	}

	if err := s.repo.ReplaceSkills(ctx, userID, rows); err != nil {
		return nil, err
	}
	return s.skillEntries(ctx, rows)
}

func (s *Service) UpdateInterests(ctx context.Context, userID snowflake.ID, skillExternalIDs []string) ([]skilldomain.View, error) {
	now := s.clock.Now()
	rows := make([]domain.UserInterest, 0, len(skillExternalIDs))
	views := make([]skilldomain.View, 0, len(skillExternalIDs))
	seen := map[snowflake.ID]bool{}

	for _, externalID := range skillExternalIDs {
		skill, err := s.catalog.FindByExternalID(ctx, externalID)
		if errors.Is(err, skilldomain.ErrSkillNotFound) {
			return nil, domain.ErrUnknownSkill
		}
		if err != nil {
			return nil, err
		}
		if seen[skill.ID] {
			continue
		}
		seen[skill.ID] = true

		rows = append(rows, domain.UserInterest{
			ID:        s.genID.Generate(),
			UserID:    userID,
			SkillID:   skill.ID,
			CreatedAt: now,
		})
		views = append(views, skill.View())
	}

	if err := s.repo.ReplaceInterests(ctx, userID, rows); err != nil {
		return nil, err
	}
	return views, nil
}

func (s *Service) Deactivate(ctx context.Context, userID snowflake.ID) error {
	return s.accounts.UpdateFields(ctx, userID, map[string]any{"is_active": false})
}

func (s *Service) buildProfile(ctx context.Context, user *authdomain.User) (*domain.Profile, error) {
	userSkills, err := s.repo.SkillsOf(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	entries, err := s.skillEntries(ctx, userSkills)
	if err != nil {
		return nil, err
	}

	interests, err := s.repo.InterestsOf(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	interestIDs := make([]snowflake.ID, 0, len(interests))
	for _, interest := range interests {
		interestIDs = append(interestIDs, interest.SkillID)
	}
	interestSkills, err := s.catalog.FindByIDs(ctx, interestIDs)
	if err != nil {
		return nil, err
	}
	byID := map[snowflake.ID]skilldomain.Skill{}
	for _, skill := range interestSkills {
		byID[skill.ID] = skill
	}
	interestViews := make([]skilldomain.View, 0, len(interests))
	for _, interest := range interests {
		if skill, ok := byID[interest.SkillID]; ok {
			interestViews = append(interestViews, skill.View())
		}
	}

	return &domain.Profile{
		PublicProfile: user.Public(),
		Skills:        entries,
		Interests:     interestViews,
	}, nil
}

func (s *Service) skillEntries(ctx context.Context, userSkills []domain.UserSkill) ([]domain.SkillEntry, error) {
	ids := make([]snowflake.ID, 0, len(userSkills))
	for _, us := range userSkills {
		ids = append(ids, us.SkillID)
	}
	skills, err := s.catalog.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := map[snowflake.ID]skilldomain.Skill{}
	for _, skill := range skills {
		byID[skill.ID] = skill
	}

	entries := make([]domain.SkillEntry, 0, len(userSkills))
	for _, us := range userSkills {
		skill, ok := byID[us.SkillID]
		if !ok {
			continue
		}
		entries = append(entries, domain.SkillEntry{
			Skill:            skill.View(),
			ProficiencyLevel: us.ProficiencyLevel,
			YearsExperience:  us.YearsExperience,
			Certifications:   us.Certifications,
			PortfolioLinks:   us.PortfolioLinks,
		})
	}
	return entries, nil
}

func publicProfiles(users []authdomain.User) []authdomain.PublicProfile {
	profiles := make([]authdomain.PublicProfile, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].Public())
	}
	return profiles
}
