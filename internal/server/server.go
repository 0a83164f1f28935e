package server

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/skillshare/skillshare/internal/auth"
	authdomain "github.com/skillshare/skillshare/internal/auth/domain"
	"github.com/skillshare/skillshare/internal/config"
	"github.com/skillshare/skillshare/internal/observability"
	obsmiddleware "github.com/skillshare/skillshare/internal/observability/logger"
	obsmetrics "github.com/skillshare/skillshare/internal/observability/metrics"
	obstracing "github.com/skillshare/skillshare/internal/observability/tracing"
	"github.com/skillshare/skillshare/internal/providers/email"
	"github.com/skillshare/skillshare/internal/ratelimit"
	"github.com/skillshare/skillshare/internal/skill"
	skilldomain "github.com/skillshare/skillshare/internal/skill/domain"
	"github.com/skillshare/skillshare/internal/user"
	userdomain "github.com/skillshare/skillshare/internal/user/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	auth.Module,
	user.Module,
	skill.Module,
	email.Module,
	ratelimit.Module,
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(*Server) {}),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, metrics *obsmetrics.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(metrics.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	return r
}

type Server struct {
	engine   *gin.Engine
	cfg      config.Config
	log      *zap.Logger
	authsvc  authdomain.Service
	usersvc  userdomain.Service
	skillsvc skilldomain.Service
	limiter  *ratelimit.Limiter
	metrics  *obsmetrics.Metrics
}

type ServerParams struct {
	fx.In

	Gin      *gin.Engine
	Cfg      config.Config
	Log      *zap.Logger
	Authsvc  authdomain.Service
	Usersvc  userdomain.Service
	Skillsvc skilldomain.Service
	Limiter  *ratelimit.Limiter `optional:"true"`
	Metrics  *obsmetrics.Metrics
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:   p.Gin,
		cfg:      p.Cfg,
		log:      p.Log.Named("server"),
		authsvc:  p.Authsvc,
		usersvc:  p.Usersvc,
		skillsvc: p.Skillsvc,
		limiter:  p.Limiter,
		metrics:  p.Metrics,
	}

	s.registerAPIRoutes()
	s.registerFallback()

	return s
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")
	api.Use(ratelimit.APIMiddleware(s.limiter, s.metrics))

	// Credential endpoints get the stricter bucket on top of the general one.
	strict := ratelimit.AuthMiddleware(s.limiter, s.metrics)

	auth := api.Group("/auth")
	{
		auth.POST("/signup", strict, s.Signup)
		auth.POST("/login", strict, s.Login)
		auth.POST("/logout", s.AuthRequired(), s.Logout)
		auth.GET("/me", s.AuthRequired(), s.Me)
		auth.POST("/verify-email", s.VerifyEmail)
		auth.POST("/forgot-password", strict, s.ForgotPassword)
		auth.POST("/reset-password", strict, s.ResetPassword)
	}

	users := api.Group("/users")
	{
		users.GET("/profile", s.AuthRequired(), s.GetProfile)
		users.PUT("/profile", s.AuthRequired(), s.UpdateProfile)
		users.GET("/search/providers", s.OptionalAuth(), s.SearchProviders)
		users.GET("/skills/:skillId", s.GetProvidersBySkill)
		users.PUT("/skills", s.AuthRequired(), s.RequireRole(authdomain.RoleProvider), s.UpdateSkills)
		users.PUT("/interests", s.AuthRequired(), s.RequireRole(authdomain.RoleLearner), s.UpdateInterests)
		users.DELETE("/account", s.AuthRequired(), s.DeactivateAccount)
		users.GET("/:id", s.GetPublicProfile)
	}

	skills := api.Group("/skills")
	{
		skills.GET("", s.ListSkills)
		skills.GET("/search", s.SearchSkills)
		skills.GET("/categories", s.ListSkillCategories)
		skills.GET("/trending", s.ListTrendingSkills)
		skills.GET("/popular", s.ListPopularSkills)
		skills.GET("/category/:category", s.ListSkillsByCategory)
		skills.POST("", s.AuthRequired(), s.CreateSkill)
		skills.GET("/:id", s.GetSkill)
		skills.PUT("/:id", s.AuthRequired(), s.RequireRole(authdomain.RoleProvider), s.UpdateSkill)
		skills.DELETE("/:id", s.AuthRequired(), s.RequireRole(authdomain.RoleProvider), s.DeleteSkill)
	}
}

func (s *Server) registerFallback() {
	s.engine.NoRoute(func(c *gin.Context) {
		if fileExists("./public", c.Request.URL.Path) {
			c.File("./public" + c.Request.URL.Path)
			return
		}

		// SPA fallback
		c.File("./public/index.html")
	})
}

func fileExists(publicDir, reqPath string) bool {
	clean := filepath.Clean(reqPath)

	// prevent path traversal
	if clean == "." || clean == "/" || clean == ".." {
		return false
	}

	fullPath := filepath.Join(publicDir, clean)

	info, err := os.Stat(fullPath)
	if err != nil {
		return false
	}

	return !info.IsDir()
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
