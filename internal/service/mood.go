package service

import (
	"context"

	"github.com/bookfinder/bookfinder-server/internal/domain"
	"github.com/bookfinder/bookfinder-server/internal/errors"
	"github.com/bookfinder/bookfinder-server/internal/graph"
	"github.com/bookfinder/bookfinder-server/internal/logger"
	"github.com/bookfinder/bookfinder-server/internal/validation"
)

// defaultMoodLimit bounds mood browsing results.
const defaultMoodLimit = 20

// moods is the curated mood catalog. Order is the display order.
var moods = []domain.Mood{
	{
		Key:         "adventurous",
		Title:       "Adventurous",
		Description: "Quests, journeys, and worlds worth getting lost in",
		Color:       "#E67E22",
		Shelves:     []string{"adventure", "fantasy", "action", "quest", "epic"},
	},
	{
		Key:         "romantic",
		Title:       "Romantic",
		Description: "Love stories from meet-cute to heartbreak",
		Color:       "#E91E63",
		Shelves:     []string{"romance", "love", "contemporary-romance", "love-story"},
	},
	{
		Key:         "suspenseful",
		Title:       "Suspenseful",
		Description: "Page-turners that keep you up past midnight",
		Color:       "#34495E",
		Shelves:     []string{"thriller", "mystery", "suspense", "crime", "detective"},
	},
	{
		Key:         "feel-good",
		Title:       "Feel-Good",
		Description: "Warm, funny reads for when you need a lift",
		Color:       "#F1C40F",
		Shelves:     []string{"humor", "funny", "feel-good", "heartwarming", "comedy"},
	},
	{
		Key:         "dark",
		Title:       "Dark",
		Description: "Gothic, unsettling, and beautifully bleak",
		Color:       "#2C3E50",
		Shelves:     []string{"dark", "horror", "gothic", "dystopia", "post-apocalyptic"},
	},
	{
		Key:         "mind-bending",
		Title:       "Mind-Bending",
		Description: "Stories that rewire how you see reality",
		Color:       "#8E44AD",
		Shelves:     []string{"science-fiction", "time-travel", "dystopia", "paranormal"},
	},
	{
		Key:         "emotional",
		Title:       "Emotional",
		Description: "Bring tissues",
		Color:       "#3498DB",
		Shelves:     []string{"emotional", "sad", "heartbreaking", "drama", "tear-jerker"},
	},
	{
		Key:         "intellectual",
		Title:       "Intellectual",
		Description: "Learn something true on every page",
		Color:       "#16A085",
		Shelves:     []string{"history", "biography", "non-fiction", "science", "philosophy"},
	},
	{
		Key:         "quick-escape",
		Title:       "Quick Escape",
		Description: "Finished in a weekend, remembered longer",
		Color:       "#27AE60",
		Shelves:     []string{"short-stories", "novella", "contemporary", "light-read"},
	},
	{
		Key:         "epic-journey",
		Title:       "Epic Journey",
		Description: "Sagas that span series and continents",
		Color:       "#C0392B",
		Shelves:     []string{"epic", "saga", "series", "world-building", "high-fantasy"},
	},
}

// MoodService serves mood-based browsing over shelf signals.
type MoodService struct {
	store     graph.Store
	log       *logger.Logger
	validator *validation.Validator
	byKey     map[string]domain.Mood
}

// NewMoodService creates a mood service.
func NewMoodService(store graph.Store, log *logger.Logger) *MoodService {
	byKey := make(map[string]domain.Mood, len(moods))
	for _, m := range moods {
		byKey[m.Key] = m
	}
	return &MoodService{
		store:     store,
		log:       log,
		validator: validation.New(),
		byKey:     byKey,
	}
}

// ListMoods returns the curated mood catalog in display order.
func (s *MoodService) ListMoods() []domain.Mood {
	return moods
}

// MoodBooks returns books matching a curated mood, optionally restricted
// to one genre. genre "all" means no restriction.
func (s *MoodService) MoodBooks(ctx context.Context, key, genre string, limit int) ([]domain.Book, error) {
	mood, ok := s.byKey[key]
	if !ok {
		return nil, errors.NotFound("mood not found: " + key)
	}
	return s.shelfBooks(ctx, mood.Shelves, genre, limit)
}

// CustomMoodRequest is a caller-defined mood: an ad-hoc set of shelf tags.
type CustomMoodRequest struct {
	Shelves []string `json:"shelves" validate:"required,min=1,max=10,dive,required"`
	Genre   string   `json:"genre,omitempty"`
	Limit   int      `json:"limit,omitempty" validate:"omitempty,gte=1,lte=50"`
}

// CustomMoodBooks returns books matching an ad-hoc shelf set.
func (s *MoodService) CustomMoodBooks(ctx context.Context, req CustomMoodRequest) ([]domain.Book, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	return s.shelfBooks(ctx, req.Shelves, req.Genre, req.Limit)
}

func (s *MoodService) shelfBooks(ctx context.Context, shelves []string, genre string, limit int) ([]domain.Book, error) {
	if limit <= 0 {
		limit = defaultMoodLimit
	}
	if genre == "all" {
		genre = ""
	}

	books, err := s.store.MoodBooks(ctx, shelves, genre, limit)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []domain.Book{}
	}
	return books, nil
}
