package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	authdomain "github.com/skillshare/skillshare/internal/auth/domain"
	authrepo "github.com/skillshare/skillshare/internal/auth/repository"
	authservice "github.com/skillshare/skillshare/internal/auth/service"
	"github.com/skillshare/skillshare/internal/auth/token"
	"github.com/skillshare/skillshare/internal/clock"
	"github.com/skillshare/skillshare/internal/config"
	"github.com/skillshare/skillshare/internal/providers/email"
	skilldomain "github.com/skillshare/skillshare/internal/skill/domain"
	skillrepo "github.com/skillshare/skillshare/internal/skill/repository"
	skillservice "github.com/skillshare/skillshare/internal/skill/service"
	userdomain "github.com/skillshare/skillshare/internal/user/domain"
	userrepo "github.com/skillshare/skillshare/internal/user/repository"
	userservice "github.com/skillshare/skillshare/internal/user/service"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type testEnv struct {
	srv    *Server
	router *gin.Engine
	db     *gorm.DB
	clock  *clock.FakeClock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&authdomain.User{},
		&skilldomain.Skill{},
		&userdomain.UserSkill{},
		&userdomain.UserInterest{},
	))

	clk := clock.NewFakeClock(time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC))
	codec, err := token.NewCodec("test-secret", clk)
	require.NoError(t, err)

	node, err := snowflake.NewNode(4)
	require.NoError(t, err)

	log := zap.NewNop()
	accounts := authrepo.New(db)
	catalog := skillrepo.New(db)
	authsvc := authservice.New(log, accounts, codec, &email.NoOpProvider{}, clk, node, 7*24*time.Hour, "http://localhost:3000")
	skillsvc := skillservice.New(log, catalog, clk, node)
	usersvc := userservice.New(log, userrepo.New(db), accounts, catalog, clk, node)

	router := gin.New()
	router.Use(ErrorHandlingMiddleware())

	srv := &Server{
		engine:   router,
		cfg:      config.Config{},
		log:      log,
		authsvc:  authsvc,
		usersvc:  usersvc,
		skillsvc: skillsvc,
	}
	srv.registerAPIRoutes()

	return &testEnv{srv: srv, router: router, db: db, clock: clk}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp := httptest.NewRecorder()
	e.router.ServeHTTP(resp, req)
	return resp
}

func decode(t *testing.T, resp *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	return out
}

func (e *testEnv) signup(t *testing.T, emailAddr, role string) string {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/api/auth/signup", "", gin.H{
		"email":      emailAddr,
		"password":   "correct-horse",
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"role":       role,
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	tok, ok := decode(t, resp)["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, tok)
	return tok
}

func TestSignupLoginFlow(t *testing.T) {
	env := newTestEnv(t)

	tok := env.signup(t, "ada@example.com", "learner")

	resp := env.do(t, http.MethodGet, "/api/auth/me", tok, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	user := decode(t, resp)["user"].(map[string]any)
	require.Equal(t, "ada@example.com", user["email"])
	require.Equal(t, false, user["is_verified"])

	// An unverified account can still log in.
	resp = env.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "ada@example.com",
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = env.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "ada@example.com",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestSignupDuplicateEmailConflicts(t *testing.T) {
	env := newTestEnv(t)

	env.signup(t, "ada@example.com", "learner")
	resp := env.do(t, http.MethodPost, "/api/auth/signup", "", gin.H{
		"email":      "Ada@Example.com",
		"password":   "correct-horse",
		"first_name": "Ada",
		"last_name":  "Lovelace",
	})
	require.Equal(t, http.StatusConflict, resp.Code)
}

func TestSignupRejectsUnknownRole(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/auth/signup", "", gin.H{
		"email":      "ada@example.com",
		"password":   "correct-horse",
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"role":       "admin",
	})
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestAuthGate(t *testing.T) {
	env := newTestEnv(t)
	tok := env.signup(t, "ada@example.com", "learner")

	// No token at all.
	resp := env.do(t, http.MethodGet, "/api/users/profile", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.Code)

	// Garbage token.
	resp = env.do(t, http.MethodGet, "/api/users/profile", "not-a-token", nil)
	require.Equal(t, http.StatusUnauthorized, resp.Code)

	// Valid token.
	resp = env.do(t, http.MethodGet, "/api/users/profile", tok, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	// Expired token.
	env.clock.Advance(8 * 24 * time.Hour)
	resp = env.do(t, http.MethodGet, "/api/users/profile", tok, nil)
	require.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestOptionalAuthLetsAnonymousThrough(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/api/users/search/providers", "", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = env.do(t, http.MethodGet, "/api/users/search/providers", "garbage", nil)
	require.Equal(t, http.StatusOK, resp.Code)
}

func TestRoleGate(t *testing.T) {
	env := newTestEnv(t)
	learnerTok := env.signup(t, "learner@example.com", "learner")
	providerTok := env.signup(t, "provider@example.com", "provider")

	body := gin.H{"skills": []gin.H{}}

	resp := env.do(t, http.MethodPut, "/api/users/skills", learnerTok, body)
	require.Equal(t, http.StatusForbidden, resp.Code)

	resp = env.do(t, http.MethodPut, "/api/users/skills", providerTok, body)
	require.Equal(t, http.StatusOK, resp.Code)
}

func TestDeactivatedAccountIsRejected(t *testing.T) {
	env := newTestEnv(t)
	tok := env.signup(t, "ada@example.com", "learner")

	resp := env.do(t, http.MethodDelete, "/api/users/account", tok, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = env.do(t, http.MethodGet, "/api/users/profile", tok, nil)
	require.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = env.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "ada@example.com",
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestSkillCRUDOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	providerTok := env.signup(t, "provider@example.com", "provider")

	resp := env.do(t, http.MethodPost, "/api/skills", providerTok, gin.H{
		"name":        "Guitar Lessons",
		"category":    "Music",
		"description": "Acoustic and electric guitar for all levels.",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	skill := decode(t, resp)["skill"].(map[string]any)
	skillID := skill["id"].(string)
	require.Equal(t, "guitar-lessons", skill["slug"])

	resp = env.do(t, http.MethodGet, "/api/skills/"+skillID, "", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = env.do(t, http.MethodGet, "/api/skills?category=Music", "", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	listing := decode(t, resp)
	require.Len(t, listing["skills"], 1)

	resp = env.do(t, http.MethodPut, "/api/skills/"+skillID, providerTok, gin.H{
		"description": "Guitar coaching from first chords to stage ready.",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = env.do(t, http.MethodDelete, "/api/skills/"+skillID, providerTok, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = env.do(t, http.MethodGet, "/api/skills/"+skillID, "", nil)
	require.Equal(t, http.StatusNotFound, resp.Code)
}

func TestSkillSearchRequiresQuery(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/api/skills/search", "", nil)
	require.Equal(t, http.StatusBadRequest, resp.Code)

	resp = env.do(t, http.MethodGet, "/api/skills/search?q=guitar", "", nil)
	require.Equal(t, http.StatusOK, resp.Code)
}

func TestPublicProfileByExternalID(t *testing.T) {
	env := newTestEnv(t)
	tok := env.signup(t, "ada@example.com", "provider")

	resp := env.do(t, http.MethodGet, "/api/auth/me", tok, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	externalID := decode(t, resp)["user"].(map[string]any)["id"].(string)

	resp = env.do(t, http.MethodGet, "/api/users/"+externalID, "", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = env.do(t, http.MethodGet, fmt.Sprintf("/api/users/%s", "missing-id"), "", nil)
	require.Equal(t, http.StatusNotFound, resp.Code)
}

func TestForgotPasswordResponsesAreIndistinguishable(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "ada@example.com", "learner")

	known := env.do(t, http.MethodPost, "/api/auth/forgot-password", "", gin.H{"email": "ada@example.com"})
	unknown := env.do(t, http.MethodPost, "/api/auth/forgot-password", "", gin.H{"email": "nobody@example.com"})

	require.Equal(t, http.StatusOK, known.Code)
	require.Equal(t, known.Code, unknown.Code)
	require.Equal(t, known.Body.Bytes(), unknown.Body.Bytes())
}
