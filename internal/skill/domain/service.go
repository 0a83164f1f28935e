package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/skillshare/skillshare/pkg/db/pagination"
)

type Service interface {
	List(ctx context.Context, filter ListFilter, page pagination.Params) ([]View, pagination.PageInfo, error)
	Search(ctx context.Context, filter SearchFilter, page pagination.Params) ([]View, pagination.PageInfo, error)
	Categories(ctx context.Context) ([]string, error)
	Trending(ctx context.Context, limit int) ([]View, error)
	Popular(ctx context.Context, limit int) ([]View, error)
	ByCategory(ctx context.Context, category string, page pagination.Params) ([]View, pagination.PageInfo, error)

	// Get returns an active catalog entry and bumps its search counter.
	Get(ctx context.Context, externalID string) (*View, error)

	Create(ctx context.Context, createdBy snowflake.ID, req CreateSkillRequest) (*View, error)
	Update(ctx context.Context, externalID string, req UpdateSkillRequest) (*View, error)
	Delete(ctx context.Context, externalID string) error
}

type CreateSkillRequest struct {
	Name            string
	Category        string
	Description     string
	DifficultyLevel string
	Icon            string
	Color           string
	Tags            []string
	Keywords        []string
}

// UpdateSkillRequest carries partial updates; nil fields are left unchanged.
type UpdateSkillRequest struct {
	Name            *string
	Category        *string
	Description     *string
	DifficultyLevel *string
	Icon            *string
	Color           *string
	Tags            []string
	Keywords        []string
	IsTrending      *bool
	IsActive        *bool
}
