// Package seed fills an empty database with the starter skill catalog and,
// outside production, a handful of demo accounts.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	authdomain "github.com/skillshare/skillshare/internal/auth/domain"
	"github.com/skillshare/skillshare/internal/auth/password"
	skilldomain "github.com/skillshare/skillshare/internal/skill/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const demoPassword = "Password123!"

type catalogEntry struct {
	Name        string
	Category    string
	Description string
	Difficulty  skilldomain.Difficulty
	Icon        string
	Color       string
	Tags        []string
	Keywords    []string
	IsTrending  bool
}

// starterCatalog is the baseline skill set a fresh marketplace opens with.
var starterCatalog = []catalogEntry{
	{
		Name:        "JavaScript Programming",
		Category:    "Technology",
		Description: "Learn modern JavaScript including ES6+, async programming, and modern frameworks.",
		Difficulty:  skilldomain.DifficultyIntermediate,
		Icon:        "fab fa-js-square",
		Color:       "#f7df1e",
		Tags:        []string{"programming", "web development", "frontend"},
		Keywords:    []string{"javascript", "js", "es6", "nodejs", "react", "vue"},
		IsTrending:  true,
	},
	{
		Name:        "Python Development",
		Category:    "Technology",
		Description: "Master Python programming for web development, data science, and automation.",
		Difficulty:  skilldomain.DifficultyBeginner,
		Icon:        "fab fa-python",
		Color:       "#3776ab",
		Tags:        []string{"programming", "python", "data science", "automation"},
		Keywords:    []string{"python", "django", "flask", "pandas", "numpy"},
		IsTrending:  true,
	},
	{
		Name:        "Digital Marketing",
		Category:    "Business",
		Description: "Learn digital marketing strategies including SEO, social media, and content marketing.",
		Difficulty:  skilldomain.DifficultyIntermediate,
		Icon:        "fas fa-chart-line",
		Color:       "#00d4aa",
		Tags:        []string{"marketing", "business", "digital", "seo"},
		Keywords:    []string{"digital marketing", "seo", "social media", "content marketing"},
		IsTrending:  true,
	},
	{
		Name:        "Graphic Design",
		Category:    "Creative Arts",
		Description: "Master graphic design principles using tools like Adobe Creative Suite and Figma.",
		Difficulty:  skilldomain.DifficultyIntermediate,
		Icon:        "fas fa-palette",
		Color:       "#ff6b6b",
		Tags:        []string{"design", "creative", "graphics", "adobe"},
		Keywords:    []string{"graphic design", "photoshop", "illustrator", "figma"},
	},
	{
		Name:        "Spanish Language",
		Category:    "Languages",
		Description: "Learn Spanish from beginner to advanced levels with native speakers.",
		Difficulty:  skilldomain.DifficultyBeginner,
		Icon:        "fas fa-language",
		Color:       "#ffd93d",
		Tags:        []string{"language", "spanish", "communication", "culture"},
		Keywords:    []string{"spanish", "language learning", "conversation", "grammar"},
	},
	{
		Name:        "Yoga & Meditation",
		Category:    "Health & Fitness",
		Description: "Learn yoga poses, meditation techniques, and mindfulness practices.",
		Difficulty:  skilldomain.DifficultyBeginner,
		Icon:        "fas fa-spa",
		Color:       "#a8e6cf",
		Tags:        []string{"yoga", "meditation", "wellness", "mindfulness"},
		Keywords:    []string{"yoga", "meditation", "mindfulness", "wellness"},
		IsTrending:  true,
	},
	{
		Name:        "Cooking Basics",
		Category:    "Cooking & Food",
		Description: "Master fundamental cooking techniques and recipes for everyday meals.",
		Difficulty:  skilldomain.DifficultyBeginner,
		Icon:        "fas fa-utensils",
		Color:       "#ff8a80",
		Tags:        []string{"cooking", "food", "recipes", "culinary"},
		Keywords:    []string{"cooking", "recipes", "culinary", "kitchen skills"},
	},
	{
		Name:        "Guitar Lessons",
		Category:    "Music",
		Description: "Learn guitar from basic chords to advanced techniques and music theory.",
		Difficulty:  skilldomain.DifficultyBeginner,
		Icon:        "fas fa-guitar",
		Color:       "#6c5ce7",
		Tags:        []string{"music", "guitar", "instruments", "theory"},
		Keywords:    []string{"guitar", "music", "chords", "strumming"},
	},
	{
		Name:        "Photography",
		Category:    "Creative Arts",
		Description: "Master photography fundamentals including composition, lighting, and editing.",
		Difficulty:  skilldomain.DifficultyIntermediate,
		Icon:        "fas fa-camera",
		Color:       "#74b9ff",
		Tags:        []string{"photography", "camera", "composition", "editing"},
		Keywords:    []string{"photography", "camera", "composition", "lighting"},
	},
	{
		Name:        "Public Speaking",
		Category:    "Personal Development",
		Description: "Develop confidence and skills for effective public speaking and presentations.",
		Difficulty:  skilldomain.DifficultyIntermediate,
		Icon:        "fas fa-microphone",
		Color:       "#fd79a8",
		Tags:        []string{"communication", "public speaking", "confidence", "presentation"},
		Keywords:    []string{"public speaking", "presentation", "communication", "confidence"},
	},
}

type demoAccount struct {
	FirstName  string
	LastName   string
	Email      string
	Role       authdomain.Role
	Country    string
	City       string
	Timezone   string
	Bio        string
	HourlyRate float64
}

var demoAccounts = []demoAccount{
	{
		FirstName:  "John",
		LastName:   "Smith",
		Email:      "john.smith@example.com",
		Role:       authdomain.RoleProvider,
		Country:    "United States",
		City:       "New York",
		Timezone:   "America/New_York",
		Bio:        "Experienced software developer with 8+ years in web development. Passionate about teaching JavaScript and React.",
		HourlyRate: 75,
	},
	{
		FirstName:  "Maria",
		LastName:   "Garcia",
		Email:      "maria.garcia@example.com",
		Role:       authdomain.RoleProvider,
		Country:    "Spain",
		City:       "Madrid",
		Timezone:   "Europe/Madrid",
		Bio:        "Native Spanish speaker and certified language teacher with 5 years of experience.",
		HourlyRate: 45,
	},
	{
		FirstName: "David",
		LastName:  "Chen",
		Email:     "david.chen@example.com",
		Role:      authdomain.RoleLearner,
		Country:   "Canada",
		City:      "Toronto",
		Timezone:  "America/Toronto",
		Bio:       "Marketing professional looking to expand my digital marketing skills.",
	},
}

// EnsureCatalog inserts the starter skills that are not present yet. Existing
// rows are left untouched so operator edits survive restarts.
func EnsureCatalog(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	now := time.Now().UTC()

	for _, entry := range starterCatalog {
		row := skilldomain.Skill{
			ID:              node.Generate(),
			ExternalID:      uuid.NewString(),
			Name:            entry.Name,
			Slug:            slug.Make(entry.Name),
			Category:        entry.Category,
			Description:     entry.Description,
			DifficultyLevel: entry.Difficulty,
			Icon:            entry.Icon,
			Color:           entry.Color,
			Tags:            datatypes.NewJSONSlice(entry.Tags),
			Keywords:        datatypes.NewJSONSlice(entry.Keywords),
			IsTrending:      entry.IsTrending,
			IsActive:        true,
			IsVerified:      true,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		err := db.WithContext(ctx).
			Where(skilldomain.Skill{Slug: row.Slug}).
			Attrs(row).
			FirstOrCreate(&skilldomain.Skill{}).Error
		if err != nil {
			return err
		}
	}

	return nil
}

// EnsureDemoAccounts creates the sample provider and learner accounts used
// for local exploration. All of them log in with the same demo password.
func EnsureDemoAccounts(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	hashed, err := password.Hash(demoPassword)
	if err != nil {
		return err
	}

	ctx := context.Background()
	now := time.Now().UTC()

	for _, account := range demoAccounts {
		row := authdomain.User{
			ID:           node.Generate(),
			ExternalID:   uuid.NewString(),
			Email:        account.Email,
			PasswordHash: hashed,
			FirstName:    account.FirstName,
			LastName:     account.LastName,
			Bio:          account.Bio,
			Role:         account.Role,
			IsVerified:   true,
			IsActive:     true,
			Country:      account.Country,
			City:         account.City,
			Timezone:     account.Timezone,
			HourlyRate:   account.HourlyRate,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		err := db.WithContext(ctx).
			Where(authdomain.User{Email: row.Email}).
			Attrs(row).
			FirstOrCreate(&authdomain.User{}).Error
		if err != nil {
			return err
		}
	}

	return nil
}
