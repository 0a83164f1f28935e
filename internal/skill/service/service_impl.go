package service

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/skillshare/skillshare/internal/clock"
	"github.com/skillshare/skillshare/internal/skill/domain"
	"github.com/skillshare/skillshare/pkg/db"
	"github.com/skillshare/skillshare/pkg/db/pagination"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const (
	minNameLen        = 2
	maxNameLen        = 100
	minDescriptionLen = 10
	maxDescriptionLen = 500
)

type Service struct {
	log   *zap.Logger
	repo  domain.Repository
	clock clock.Clock
	genID *snowflake.Node
}

func New(log *zap.Logger, repo domain.Repository, clk clock.Clock, genID *snowflake.Node) domain.Service {
	return &Service{
		log:   log.Named("skill.service"),
		repo:  repo,
		clock: clk,
		genID: genID,
	}
}

func (s *Service) List(ctx context.Context, filter domain.ListFilter, page pagination.Params) ([]domain.View, pagination.PageInfo, error) {
	page = page.Normalize()
	skills, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, pagination.PageInfo{}, err
	}
	return domain.Views(skills), pagination.NewPageInfo(page, total), nil
}

func (s *Service) Search(ctx context.Context, filter domain.SearchFilter, page pagination.Params) ([]domain.View, pagination.PageInfo, error) {
	if strings.TrimSpace(filter.Query) == "" {
		return nil, pagination.PageInfo{}, domain.ErrSearchQueryRequired
	}
	page = page.Normalize()
	skills, total, err := s.repo.Search(ctx, filter, page)
	if err != nil {
		return nil, pagination.PageInfo{}, err
	}
	return domain.Views(skills), pagination.NewPageInfo(page, total), nil
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}

func (s *Service) Trending(ctx context.Context, limit int) ([]domain.View, error) {
	if limit < 1 {
		limit = 10
	}
	skills, err := s.repo.Trending(ctx, limit)
	if err != nil {
		return nil, err
	}
	return domain.Views(skills), nil
}

func (s *Service) Popular(ctx context.Context, limit int) ([]domain.View, error) {
	if limit < 1 {
		limit = 20
	}
	skills, err := s.repo.Popular(ctx, limit)
	if err != nil {
		return nil, err
	}
	return domain.Views(skills), nil
}

func (s *Service) ByCategory(ctx context.Context, category string, page pagination.Params) ([]domain.View, pagination.PageInfo, error) {
	page = page.Normalize()
	skills, total, err := s.repo.ByCategory(ctx, category, page)
	if err != nil {
		return nil, pagination.PageInfo{}, err
	}
	return domain.Views(skills), pagination.NewPageInfo(page, total), nil
}

func (s *Service) Get(ctx context.Context, externalID string) (*domain.View, error) {
	skill, err := s.repo.FindByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}
	if !skill.IsActive {
		return nil, domain.ErrSkillNotFound
	}

	// Demand signal for popularity ranking; losing an increment is fine.
	if err := s.repo.IncrementSearchCount(ctx, skill.ID); err != nil {
		s.log.Warn("failed to bump search count", zap.String("skill", skill.Slug), zap.Error(err))
	} else {
		skill.SearchCount++
	}

	view := skill.View()
	return &view, nil
}

func (s *Service) Create(ctx context.Context, createdBy snowflake.ID, req domain.CreateSkillRequest) (*domain.View, error) {
	name := strings.TrimSpace(req.Name)
	description := strings.TrimSpace(req.Description)
	if len(name) < minNameLen || len(name) > maxNameLen {
		return nil, domain.ErrInvalidSkillInput
	}
	if len(description) < minDescriptionLen || len(description) > maxDescriptionLen {
		return nil, domain.ErrInvalidSkillInput
	}
	if !domain.ValidCategory(req.Category) {
		return nil, domain.ErrInvalidCategory
	}

	difficulty := domain.DifficultyIntermediate
	if req.DifficultyLevel != "" {
		parsed, ok := domain.ParseDifficulty(req.DifficultyLevel)
		if !ok {
			return nil, domain.ErrInvalidDifficulty
		}
		difficulty = parsed
	}

	nameSlug := slug.Make(name)
	if _, err := s.repo.FindBySlug(ctx, nameSlug); err == nil {
		return nil, domain.ErrSkillExists
	} else if !errors.Is(err, domain.ErrSkillNotFound) {
		return nil, err
	}

	now := s.clock.Now()
	skill := &domain.Skill{
		ID:              s.genID.Generate(),
		ExternalID:      uuid.NewString(),
		Name:            name,
		Slug:            nameSlug,
		Category:        req.Category,
		Description:     description,
		Icon:            defaultString(req.Icon, "fas fa-star"),
		Color:           defaultString(req.Color, "#667eea"),
		DifficultyLevel: difficulty,
		IsActive:        true,
		Tags:            req.Tags,
		Keywords:        req.Keywords,
		CreatedByID:     &createdBy,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, skill); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrSkillExists
		}
		return nil, err
	}

	view := skill.View()
	return &view, nil
}

func (s *Service) Update(ctx context.Context, externalID string, req domain.UpdateSkillRequest) (*domain.View, error) {
	skill, err := s.repo.FindByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if len(name) < minNameLen || len(name) > maxNameLen {
			return nil, domain.ErrInvalidSkillInput
		}
		nameSlug := slug.Make(name)
		if nameSlug != skill.Slug {
			if _, err := s.repo.FindBySlug(ctx, nameSlug); err == nil {
				return nil, domain.ErrSkillExists
			} else if !errors.Is(err, domain.ErrSkillNotFound) {
				return nil, err
			}
		}
		fields["name"] = name
		fields["slug"] = nameSlug
	}
	if req.Category != nil {
		if !domain.ValidCategory(*req.Category) {
			return nil, domain.ErrInvalidCategory
		}
		fields["category"] = *req.Category
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if len(description) < minDescriptionLen || len(description) > maxDescriptionLen {
			return nil, domain.ErrInvalidSkillInput
		}
		fields["description"] = description
	}
	if req.DifficultyLevel != nil {
		parsed, ok := domain.ParseDifficulty(*req.DifficultyLevel)
		if !ok {
			return nil, domain.ErrInvalidDifficulty
		}
		fields["difficulty_level"] = parsed
	}
	if req.Icon != nil {
		fields["icon"] = strings.TrimSpace(*req.Icon)
	}
	if req.Color != nil {
		fields["color"] = strings.TrimSpace(*req.Color)
	}
	if req.Tags != nil {
		fields["tags"] = datatypes.NewJSONSlice(req.Tags)
	}
	if req.Keywords != nil {
		fields["keywords"] = datatypes.NewJSONSlice(req.Keywords)
	}
	if req.IsTrending != nil {
		fields["is_trending"] = *req.IsTrending
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}

	if len(fields) > 0 {
		if err := s.repo.UpdateFields(ctx, skill.ID, fields); err != nil {
			if db.IsDuplicateKeyErr(err) {
				return nil, domain.ErrSkillExists
			}
			return nil, err
		}
	}

	updated, err := s.repo.FindByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}
	view := updated.View()
	return &view, nil
}

func (s *Service) Delete(ctx context.Context, externalID string) error {
	skill, err := s.repo.FindByExternalID(ctx, externalID)
	if err != nil {
		return err
	}
	// Soft delete keeps references from user skill lists intact.
	return s.repo.UpdateFields(ctx, skill.ID, map[string]any{"is_active": false})
}

func defaultString(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return strings.TrimSpace(v)
}
