package portfolio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"bluesphere-studio/pkg/contentful"
	"bluesphere-studio/pkg/redis"

	"go.uber.org/zap"
)

const (
	AllCategory   = "All"
	defaultAlt    = "Portfolio Image"
	defaultWidth  = 800
	defaultHeight = 600
)

// Item is one image shown in the portfolio grid.
type Item struct {
	ID       string `json:"id"`
	Src      string `json:"src"`
	Alt      string `json:"alt"`
	Category string `json:"category"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// EntrySource lists CMS entries. *contentful.Client implements it.
type EntrySource interface {
	Entries(ctx context.Context, contentType string) (*contentful.EntriesResponse, error)
}

// Cache is the slice of the Redis client the service uses.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) error
	SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error
}

var _ Cache = (*redis.Client)(nil)

type Service struct {
	source      EntrySource
	cache       Cache
	contentType string
	ttl         time.Duration
	logger      *zap.Logger
}

// NewService wires the CMS source with an optional cache; a nil cache or a
// zero ttl disables caching.
func NewService(source EntrySource, cache Cache, contentType string, ttl time.Duration, logger *zap.Logger) *Service {
	return &Service{
		source:      source,
		cache:       cache,
		contentType: contentType,
		ttl:         ttl,
		logger:      logger,
	}
}

func (s *Service) cacheKey() string {
	return "portfolio:" + s.contentType
}

// List returns the portfolio items. Failures are logged and produce an
// empty list so the page still renders.
func (s *Service) List(ctx context.Context) []Item {
	if s.cache != nil && s.ttl > 0 {
		var cached []Item
		err := s.cache.GetJSON(ctx, s.cacheKey(), &cached)
		if err == nil {
			return cached
		}
		if !errors.Is(err, redis.ErrMiss) {
			s.logger.Warn("Portfolio cache read failed", zap.Error(err))
		}
	}

	items, err := s.fetch(ctx)
	if errors.Is(err, contentful.ErrNotConfigured) {
		s.logger.Debug("Portfolio source not configured")
		return []Item{}
	}
	if err != nil {
		s.logger.Error("Failed to fetch portfolio items", zap.Error(err))
		return []Item{}
	}

	if s.cache != nil && s.ttl > 0 {
		if err := s.cache.SetJSON(ctx, s.cacheKey(), items, s.ttl); err != nil {
			s.logger.Warn("Portfolio cache write failed", zap.Error(err))
		}
	}

	return items
}

type entryFields struct {
	Title    string           `json:"title"`
	Category string           `json:"category"`
	Image    *contentful.Link `json:"image"`
}

func (s *Service) fetch(ctx context.Context) ([]Item, error) {
	const operation = "portfolio.fetch"

	resp, err := s.source.Entries(ctx, s.contentType)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}

	items := make([]Item, 0, len(resp.Items))
	for _, entry := range resp.Items {
		var fields entryFields
		if err := json.Unmarshal(entry.Fields, &fields); err != nil {
			s.logger.Warn("Skipping malformed portfolio entry",
				zap.String("entry_id", entry.Sys.ID),
				zap.Error(err))
			continue
		}
		items = append(items, mapItem(entry.Sys.ID, fields, resp))
	}

	return items, nil
}

func mapItem(id string, fields entryFields, resp *contentful.EntriesResponse) Item {
	item := Item{
		ID:       id,
		Alt:      fields.Title,
		Category: fields.Category,
		Width:    defaultWidth,
		Height:   defaultHeight,
	}
	if item.Alt == "" {
		item.Alt = defaultAlt
	}
	if item.Category == "" {
		item.Category = AllCategory
	}

	asset, ok := resp.Asset(fields.Image)
	if !ok || asset.Fields.File == nil {
		return item
	}

	file := asset.Fields.File
	item.Src = absoluteURL(file.URL)
	if img := file.Details.Image; img != nil {
		if img.Width > 0 {
			item.Width = img.Width
		}
		if img.Height > 0 {
			item.Height = img.Height
		}
	}
	return item
}

// absoluteURL turns the protocol-relative asset URL into https.
func absoluteURL(u string) string {
	if strings.HasPrefix(u, "//") {
		return "https:" + u
	}
	return u
}

// Categories lists distinct categories in first-seen order with All first.
func Categories(items []Item) []string {
	seen := map[string]bool{AllCategory: true}
	out := []string{AllCategory}
	for _, it := range items {
		if !seen[it.Category] {
			seen[it.Category] = true
			out = append(out, it.Category)
		}
	}
	return out
}

// Filter keeps the items of one category; All or empty keeps everything.
func Filter(items []Item, category string) []Item {
	if category == "" || strings.EqualFold(category, AllCategory) {
		return items
	}
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if strings.EqualFold(it.Category, category) {
			out = append(out, it)
		}
	}
	return out
}
