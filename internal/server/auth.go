package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	authdomain "github.com/skillshare/skillshare/internal/auth/domain"
)

type SignupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	Country   string `json:"country"`
	City      string `json:"city"`
	Timezone  string `json:"timezone"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type VerifyEmailRequest struct {
	Token string `json:"token"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

func (s *Server) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	role := authdomain.RoleLearner
	if raw := strings.TrimSpace(req.Role); raw != "" {
		parsed, ok := authdomain.ParseRole(raw)
		if !ok {
			AbortWithError(c, newValidationError("role", "invalid_role", "role must be learner or provider"))
			return
		}
		role = parsed
	}

	result, err := s.authsvc.Signup(c.Request.Context(), authdomain.SignupRequest{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Role:      role,
		Country:   req.Country,
		City:      req.City,
		Timezone:  req.Timezone,
	})
	if err != nil {
		s.metrics.RecordAuthAttempt("signup", "failure")
		AbortWithError(c, err)
		return
	}

	s.metrics.RecordAuthAttempt("signup", "success")
	c.JSON(http.StatusCreated, result)
}

func (s *Server) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.authsvc.Login(c.Request.Context(), authdomain.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		s.metrics.RecordAuthAttempt("login", "failure")
		AbortWithError(c, err)
		return
	}

	s.metrics.RecordAuthAttempt("login", "success")
	c.JSON(http.StatusOK, result)
}

// Logout is a no-op on the server side. Session tokens are stateless and the
// client discards its copy; the endpoint exists so clients have a uniform
// auth surface.
func (s *Server) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (s *Server) VerifyEmail(c *gin.Context) {
	var req VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.authsvc.VerifyEmail(c.Request.Context(), strings.TrimSpace(req.Token)); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "email verified"})
}

// ForgotPassword responds identically whether or not the email belongs to an
// account, so the endpoint cannot be used to probe for registered addresses.
func (s *Server) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.authsvc.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "if the email is registered, a reset link has been sent",
	})
}

func (s *Server) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.authsvc.ResetPassword(c.Request.Context(), strings.TrimSpace(req.Token), req.Password); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

func (s *Server) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, authdomain.ErrAuthenticationRequired)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user.Public()})
}
