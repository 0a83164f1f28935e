package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/skillshare/skillshare/pkg/db/pagination"
)

// Sort orders for catalog listings.
const (
	SortPopularity = "popularity"
	SortName       = "name"
	SortDifficulty = "difficulty"
)

// ListFilter narrows a catalog listing. Zero values mean no filter.
type ListFilter struct {
	Category     string
	Difficulty   Difficulty
	TrendingOnly bool
	Sort         string
}

// SearchFilter narrows a text search over the catalog.
type SearchFilter struct {
	Query      string
	Category   string
	Difficulty Difficulty
	MinRate    *float64
	MaxRate    *float64
}

type Repository interface {
	List(ctx context.Context, filter ListFilter, page pagination.Params) ([]Skill, int64, error)
	Search(ctx context.Context, filter SearchFilter, page pagination.Params) ([]Skill, int64, error)
	Categories(ctx context.Context) ([]string, error)
	Trending(ctx context.Context, limit int) ([]Skill, error)
	Popular(ctx context.Context, limit int) ([]Skill, error)
	ByCategory(ctx context.Context, category string, page pagination.Params) ([]Skill, int64, error)

	FindByExternalID(ctx context.Context, externalID string) (*Skill, error)
	FindBySlug(ctx context.Context, slug string) (*Skill, error)
	FindByIDs(ctx context.Context, ids []snowflake.ID) ([]Skill, error)

	Create(ctx context.Context, skill *Skill) error
	UpdateFields(ctx context.Context, id snowflake.ID, fields map[string]any) error
	IncrementSearchCount(ctx context.Context, id snowflake.ID) error
}
