// Package news serves the health articles shown on the home feed.
package news

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("article not found")

var articleNamespace = uuid.MustParse("0b6d2f4e-8a31-4c57-b1e9-5d7a9c3f2e18")

// Article is a health news item
type Article struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Source      string    `json:"source"`
	URL         string    `json:"url,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}

type entry struct {
	title, summary, source, url string
	daysAgo                     int
}

var feed = []entry{
	{
		title:   "New Study Highlights Benefits of Regular Exercise",
		summary: "Recent research shows that 30 minutes of daily exercise can significantly improve cardiovascular health and mental well-being.",
		source:  "Health Research Journal",
		url:     "https://www.healthline.com/health/benefits-of-exercise",
		daysAgo: 1,
	},
	{
		title:   "Understanding Sleep Quality and Its Impact on Health",
		summary: "Experts emphasize the importance of 7-9 hours of quality sleep for optimal physical and mental health.",
		source:  "Sleep Medicine Today",
		url:     "https://www.sleepfoundation.org/how-sleep-works/why-do-we-need-sleep",
		daysAgo: 2,
	},
	{
		title:   "Nutrition Guidelines Updated for 2025",
		summary: "New dietary recommendations focus on whole foods, plant-based options, and balanced macronutrients.",
		source:  "Nutrition Weekly",
		url:     "https://www.hsph.harvard.edu/nutritionsource/healthy-eating-plate/",
		daysAgo: 3,
	},
	{
		title:   "Mental Health Awareness Month: Resources and Support",
		summary: "Organizations worldwide are promoting mental health awareness with new resources and support systems.",
		source:  "Mental Health Foundation",
		url:     "https://www.mentalhealth.gov/",
		daysAgo: 4,
	},
	{
		title:   "The Role of Hydration in Daily Wellness",
		summary: "Health experts discuss the critical importance of proper hydration for maintaining energy levels and cognitive function.",
		source:  "Wellness Today",
		url:     "https://www.mayoclinic.org/healthy-lifestyle/nutrition-and-healthy-eating/in-depth/water/art-20044256",
		daysAgo: 5,
	},
	{
		title:   "Breakthrough in Preventive Medicine Research",
		summary: "Scientists announce new findings in preventive healthcare that could revolutionize early disease detection.",
		source:  "Medical News Today",
		url:     "https://www.medicalnewstoday.com/",
		daysAgo: 0,
	},
	{
		title:   "Digital Health Tools Gain Traction in 2025",
		summary: "Healthcare apps and wearable devices are becoming increasingly integrated into patient care plans.",
		source:  "HealthTech News",
		url:     "https://www.healthtechzone.com/",
		daysAgo: 1,
	},
}

// Service returns the static feed dated relative to the current day
type Service struct {
	now func() time.Time
}

func NewService(now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{now: now}
}

// Articles returns up to limit articles, newest first. limit <= 0 means all.
func (s *Service) Articles(limit int) []Article {
	today := s.now().UTC().Truncate(24 * time.Hour)

	out := make([]Article, 0, len(feed))
	for _, e := range feed {
		out = append(out, Article{
			ID:          uuid.NewSHA1(articleNamespace, []byte(e.title)),
			Title:       e.title,
			Summary:     e.summary,
			Source:      e.source,
			URL:         e.url,
			PublishedAt: today.AddDate(0, 0, -e.daysAgo),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PublishedAt.After(out[j].PublishedAt)
	})

	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out
}

// Get returns one article by id
func (s *Service) Get(id uuid.UUID) (Article, error) {
	for _, a := range s.Articles(0) {
		if a.ID == id {
			return a, nil
		}
	}
	return Article{}, ErrNotFound
}
