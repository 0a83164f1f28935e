package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/skillshare/skillshare/internal/skill/domain"
	"github.com/skillshare/skillshare/pkg/db/pagination"
	"gorm.io/gorm"
)

// popularityOrder ranks by the same weighted score Skill.PopularityScore
// computes in memory.
const popularityOrder = "(search_count * 0.3 + total_sessions * 0.4 + average_rating * 0.3) DESC"

type repo struct {
	db *gorm.DB
}

func New(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) List(ctx context.Context, filter domain.ListFilter, page pagination.Params) ([]domain.Skill, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Skill{}).Where("is_active = ?", true)
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Difficulty != "" {
		q = q.Where("difficulty_level = ?", filter.Difficulty)
	}
	if filter.TrendingOnly {
		q = q.Where("is_trending = ?", true)
	}

	switch filter.Sort {
	case domain.SortName:
		q = q.Order("name ASC")
	case domain.SortDifficulty:
		q = q.Order("difficulty_level ASC")
	default:
		q = q.Order(popularityOrder)
	}

	return r.paginate(q, page)
}

func (r *repo) Search(ctx context.Context, filter domain.SearchFilter, page pagination.Params) ([]domain.Skill, int64, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(filter.Query)) + "%"
	q := r.db.WithContext(ctx).Model(&domain.Skill{}).
		Where("is_active = ?", true).
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(category) LIKE ?", pattern, pattern, pattern)

	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Difficulty != "" {
		q = q.Where("difficulty_level = ?", filter.Difficulty)
	}
	if filter.MinRate != nil {
		q = q.Where("average_hourly_rate >= ?", *filter.MinRate)
	}
	if filter.MaxRate != nil {
		q = q.Where("average_hourly_rate <= ?", *filter.MaxRate)
	}

	return r.paginate(q.Order(popularityOrder), page)
}

func (r *repo) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).Model(&domain.Skill{}).
		Where("is_active = ?", true).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error
	return categories, err
}

func (r *repo) Trending(ctx context.Context, limit int) ([]domain.Skill, error) {
	var skills []domain.Skill
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND is_trending = ?", true, true).
		Order(popularityOrder).
		Limit(limit).
		Find(&skills).Error
	return skills, err
}

func (r *repo) Popular(ctx context.Context, limit int) ([]domain.Skill, error) {
	var skills []domain.Skill
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order(popularityOrder).
		Limit(limit).
		Find(&skills).Error
	return skills, err
}

func (r *repo) ByCategory(ctx context.Context, category string, page pagination.Params) ([]domain.Skill, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Skill{}).
		Where("is_active = ? AND category = ?", true, category).
		Order(popularityOrder)
	return r.paginate(q, page)
}

func (r *repo) FindByExternalID(ctx context.Context, externalID string) (*domain.Skill, error) {
	var skill domain.Skill
	err := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&skill).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrSkillNotFound
	}
	if err != nil {
		return nil, err
	}
	return &skill, nil
}

func (r *repo) FindBySlug(ctx context.Context, slug string) (*domain.Skill, error) {
	var skill domain.Skill
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&skill).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrSkillNotFound
	}
	if err != nil {
		return nil, err
	}
	return &skill, nil
}

func (r *repo) FindByIDs(ctx context.Context, ids []snowflake.ID) ([]domain.Skill, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var skills []domain.Skill
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&skills).Error
	return skills, err
}

func (r *repo) Create(ctx context.Context, skill *domain.Skill) error {
	return r.db.WithContext(ctx).Create(skill).Error
}

func (r *repo) UpdateFields(ctx context.Context, id snowflake.ID, fields map[string]any) error {
	tx := r.db.WithContext(ctx).Model(&domain.Skill{}).Where("id = ?", id).Updates(fields)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrSkillNotFound
	}
	return nil
}

func (r *repo) IncrementSearchCount(ctx context.Context, id snowflake.ID) error {
	return r.db.WithContext(ctx).Model(&domain.Skill{}).
		Where("id = ?", id).
		UpdateColumn("search_count", gorm.Expr("search_count + 1")).Error
}

func (r *repo) paginate(q *gorm.DB, page pagination.Params) ([]domain.Skill, int64, error) {
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var skills []domain.Skill
	if err := q.Scopes(pagination.Scope(page)).Find(&skills).Error; err != nil {
		return nil, 0, err
	}
	return skills, total, nil
}
