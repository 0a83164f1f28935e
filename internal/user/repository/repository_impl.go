package repository

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/skillshare/skillshare/internal/auth/domain"
	"github.com/skillshare/skillshare/internal/user/domain"
	"github.com/skillshare/skillshare/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func New(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) SkillsOf(ctx context.Context, userID snowflake.ID) ([]domain.UserSkill, error) {
	var skills []domain.UserSkill
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&skills).Error
	return skills, err
}

func (r *repo) ReplaceSkills(ctx context.Context, userID snowflake.ID, skills []domain.UserSkill) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&domain.UserSkill{}).Error; err != nil {
			return err
		}
		if len(skills) == 0 {
			return nil
		}
		return tx.Create(&skills).Error
	})
}

func (r *repo) InterestsOf(ctx context.Context, userID snowflake.ID) ([]domain.UserInterest, error) {
	var interests []domain.UserInterest
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&interests).Error
	return interests, err
}

func (r *repo) ReplaceInterests(ctx context.Context, userID snowflake.ID, interests []domain.UserInterest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&domain.UserInterest{}).Error; err != nil {
			return err
		}
		if len(interests) == 0 {
			return nil
		}
		return tx.Create(&interests).Error
	})
}

func (r *repo) SearchProviders(ctx context.Context, search domain.ProviderSearch, page pagination.Params) ([]authdomain.User, int64, error) {
	q := r.db.WithContext(ctx).Model(&authdomain.User{}).
		Where("role = ? AND is_active = ? AND is_verified = ?", authdomain.RoleProvider, true, true)

	if trimmed := strings.TrimSpace(search.Query); trimmed != "" {
		pattern := "%" + strings.ToLower(trimmed) + "%"
		q = q.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(bio) LIKE ?", pattern, pattern, pattern)
	}
	if search.SkillID != nil {
		q = q.Where("id IN (?)", r.db.Model(&domain.UserSkill{}).
			Select("user_id").
			Where("skill_id = ?", *search.SkillID))
	}
	if search.Country != "" {
		q = q.Where("country = ?", search.Country)
	}
	if search.MinRate != nil {
		q = q.Where("hourly_rate >= ?", *search.MinRate)
	}
	if search.MaxRate != nil {
		q = q.Where("hourly_rate <= ?", *search.MaxRate)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []authdomain.User
	err := q.Order("hourly_rate ASC").
		Scopes(pagination.Scope(page)).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *repo) ProvidersBySkill(ctx context.Context, skillID snowflake.ID, page pagination.Params) ([]authdomain.User, int64, error) {
	return r.SearchProviders(ctx, domain.ProviderSearch{SkillID: &skillID}, page)
}
