package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	authdomain "github.com/skillshare/skillshare/internal/auth/domain"
	userdomain "github.com/skillshare/skillshare/internal/user/domain"
	"github.com/skillshare/skillshare/pkg/db/pagination"
)

type UpdateProfileRequest struct {
	FirstName   *string           `json:"first_name"`
	LastName    *string           `json:"last_name"`
	Phone       *string           `json:"phone"`
	Bio         *string           `json:"bio"`
	Country     *string           `json:"country"`
	City        *string           `json:"city"`
	Timezone    *string           `json:"timezone"`
	HourlyRate  *float64          `json:"hourly_rate"`
	SocialLinks map[string]string `json:"social_links"`
}

type SkillSelectionRequest struct {
	SkillID          string   `json:"skill_id"`
	ProficiencyLevel string   `json:"proficiency_level"`
	YearsExperience  float64  `json:"years_experience"`
	Certifications   []string `json:"certifications"`
	PortfolioLinks   []string `json:"portfolio_links"`
}

type UpdateSkillsRequest struct {
	Skills []SkillSelectionRequest `json:"skills"`
}

type UpdateInterestsRequest struct {
	Interests []string `json:"interests"`
}

func (s *Server) GetProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, authdomain.ErrAuthenticationRequired)
		return
	}

	profile, err := s.usersvc.Profile(c.Request.Context(), user.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": profile})
}

func (s *Server) UpdateProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, authdomain.ErrAuthenticationRequired)
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	profile, err := s.usersvc.UpdateProfile(c.Request.Context(), user.ID, userdomain.UpdateProfileRequest{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Phone:       req.Phone,
		Bio:         req.Bio,
		Country:     req.Country,
		City:        req.City,
		Timezone:    req.Timezone,
		HourlyRate:  req.HourlyRate,
		SocialLinks: req.SocialLinks,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": profile})
}

func (s *Server) GetPublicProfile(c *gin.Context) {
	profile, err := s.usersvc.PublicProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": profile})
}

func (s *Server) SearchProviders(c *gin.Context) {
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

	providers, info, err := s.usersvc.SearchProviders(c.Request.Context(), userdomain.ProviderSearchRequest{
		Query:           strings.TrimSpace(c.Query("q")),
		SkillExternalID: strings.TrimSpace(c.Query("skill")),
		Country:         strings.TrimSpace(c.Query("country")),
		MinRate:         minRate,
		MaxRate:         maxRate,
	}, page)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"providers": providers, "pagination": info})
}

func (s *Server) GetProvidersBySkill(c *gin.Context) {
	page, err := bindPagination(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	providers, info, err := s.usersvc.ProvidersBySkill(c.Request.Context(), c.Param("skillId"), page)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"providers": providers, "pagination": info})
}

func (s *Server) UpdateSkills(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, authdomain.ErrAuthenticationRequired)
		return
	}

	var req UpdateSkillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	selections := make([]userdomain.SkillSelection, 0, len(req.Skills))
	for _, skill := range req.Skills {
		selections = append(selections, userdomain.SkillSelection{
			SkillExternalID:  skill.SkillID,
			ProficiencyLevel: skill.ProficiencyLevel,
			YearsExperience:  skill.YearsExperience,
			Certifications:   skill.Certifications,
			PortfolioLinks:   skill.PortfolioLinks,
		})
	}

	entries, err := s.usersvc.UpdateSkills(c.Request.Context(), user.ID, selections)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"skills": entries})
}

func (s *Server) UpdateInterests(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, authdomain.ErrAuthenticationRequired)
		return
	}

	var req UpdateInterestsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	interests, err := s.usersvc.UpdateInterests(c.Request.Context(), user.ID, req.Interests)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"interests": interests})
}

func (s *Server) DeactivateAccount(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, authdomain.ErrAuthenticationRequired)
		return
	}

	if err := s.usersvc.Deactivate(c.Request.Context(), user.ID); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "account deactivated"})
}

func bindPagination(c *gin.Context) (pagination.Params, error) {
	var page pagination.Params
	if err := c.ShouldBindQuery(&page); err != nil {
		return pagination.Params{}, invalidRequestError()
	}
	return page, nil
}
