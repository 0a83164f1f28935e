package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	authdomain "github.com/skillshare/skillshare/internal/auth/domain"
	skilldomain "github.com/skillshare/skillshare/internal/skill/domain"
)

type CreateSkillRequest struct {
	Name            string   `json:"name"`
	Category        string   `json:"category"`
	Description     string   `json:"description"`
	DifficultyLevel string   `json:"difficulty_level"`
	Icon            string   `json:"icon"`
	Color           string   `json:"color"`
	Tags            []string `json:"tags"`
	Keywords        []string `json:"keywords"`
}

type UpdateSkillRequest struct {
	Name            *string  `json:"name"`
	Category        *string  `json:"category"`
	Description     *string  `json:"description"`
	DifficultyLevel *string  `json:"difficulty_level"`
	Icon            *string  `json:"icon"`
	Color           *string  `json:"color"`
	Tags            []string `json:"tags"`
	Keywords        []string `json:"keywords"`
	IsTrending      *bool    `json:"is_trending"`
	IsActive        *bool    `json:"is_active"`
}

func (s *Server) ListSkills(c *gin.Context) {
	page, err := bindPagination(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	trendingOnly, err := parseOptionalBool(c.Query("trending"))
	if err != nil {
		AbortWithError(c, newValidationError("trending", "invalid_bool", "trending must be true or false"))
		return
	}

	skills, info, err := s.skillsvc.List(c.Request.Context(), skilldomain.ListFilter{
		Category:     strings.TrimSpace(c.Query("category")),
		Difficulty:   skilldomain.Difficulty(strings.TrimSpace(c.Query("difficulty"))),
		TrendingOnly: trendingOnly != nil && *trendingOnly,
		Sort:         strings.TrimSpace(c.Query("sort")),
	}, page)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"skills": skills, "pagination": info})
}

func (s *Server) SearchSkills(c *gin.Context) {
	page, err := bindPagination(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	minRate, err := parseOptionalFloat(c.Query("min_rate"))
	if err != nil {
		AbortWithError(c, newValidationError("min_rate", "invalid_number", "min_rate must be a number"))
		return
	}
	maxRate, err := parseOptionalFloat(c.Query("max_rate"))
	if err != nil {
		AbortWithError(c, newValidationError("max_rate", "invalid_number", "max_rate must be a number"))
		return
	}

	skills, info, err := s.skillsvc.Search(c.Request.Context(), skilldomain.SearchFilter{
		Query:      strings.TrimSpace(c.Query("q")),
		Category:   strings.TrimSpace(c.Query("category")),
		Difficulty: skilldomain.Difficulty(strings.TrimSpace(c.Query("difficulty"))),
		MinRate:    minRate,
		MaxRate:    maxRate,
	}, page)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"skills": skills, "pagination": info})
}

func (s *Server) ListSkillCategories(c *gin.Context) {
	categories, err := s.skillsvc.Categories(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (s *Server) ListTrendingSkills(c *gin.Context) {
	limit, err := parseLimit(c.Query("limit"), 10)
	if err != nil {
		AbortWithError(c, newValidationError("limit", "invalid_number", "limit must be a positive number"))
		return
	}

	skills, err := s.skillsvc.Trending(c.Request.Context(), limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"skills": skills})
}

func (s *Server) ListPopularSkills(c *gin.Context) {
	limit, err := parseLimit(c.Query("limit"), 10)
	if err != nil {
		AbortWithError(c, newValidationError("limit", "invalid_number", "limit must be a positive number"))
		return
	}

	skills, err := s.skillsvc.Popular(c.Request.Context(), limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"skills": skills})
}

func (s *Server) ListSkillsByCategory(c *gin.Context) {
	page, err := bindPagination(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	skills, info, err := s.skillsvc.ByCategory(c.Request.Context(), c.Param("category"), page)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"skills": skills, "pagination": info})
}

func (s *Server) GetSkill(c *gin.Context) {
	skill, err := s.skillsvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"skill": skill})
}

func (s *Server) CreateSkill(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, authdomain.ErrAuthenticationRequired)
		return
	}

	var req CreateSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	skill, err := s.skillsvc.Create(c.Request.Context(), user.ID, skilldomain.CreateSkillRequest{
		Name:            req.Name,
		Category:        req.Category,
		Description:     req.Description,
		DifficultyLevel: req.DifficultyLevel,
		Icon:            req.Icon,
		Color:           req.Color,
		Tags:            req.Tags,
		Keywords:        req.Keywords,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"skill": skill})
}

func (s *Server) UpdateSkill(c *gin.Context) {
	var req UpdateSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	skill, err := s.skillsvc.Update(c.Request.Context(), c.Param("id"), skilldomain.UpdateSkillRequest{
		Name:            req.Name,
		Category:        req.Category,
		Description:     req.Description,
		DifficultyLevel: req.DifficultyLevel,
		Icon:            req.Icon,
		Color:           req.Color,
		Tags:            req.Tags,
		Keywords:        req.Keywords,
		IsTrending:      req.IsTrending,
		IsActive:        req.IsActive,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"skill": skill})
}

func (s *Server) DeleteSkill(c *gin.Context) {
	if err := s.skillsvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "skill removed"})
}
