package portfolio

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"bluesphere-studio/pkg/contentful"
	"bluesphere-studio/pkg/redis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSource struct {
	resp  *contentful.EntriesResponse
	err   error
	calls int
}

func (f *fakeSource) Entries(ctx context.Context, contentType string) (*contentful.EntriesResponse, error) {
	f.calls++
	return f.resp, f.err
}

type memCache struct {
	data map[string][]byte
	err  error
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (m *memCache) GetJSON(ctx context.Context, key string, dst any) error {
	if m.err != nil {
		return m.err
	}
	b, ok := m.data[key]
	if !ok {
		return redis.ErrMiss
	}
	return json.Unmarshal(b, dst)
}

func (m *memCache) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.data[key] = b
	return nil
}

func entry(id, fields string) contentful.Entry {
	return contentful.Entry{Sys: contentful.Sys{ID: id, Type: "Entry"}, Fields: json.RawMessage(fields)}
}

func fixture() *contentful.EntriesResponse {
	resp := &contentful.EntriesResponse{
		Items: []contentful.Entry{
			entry("e1", `{"title":"Wedding at Cotter","category":"Weddings","image":{"sys":{"id":"a1","type":"Link","linkType":"Asset"}}}`),
			entry("e2", `{"image":{"sys":{"id":"a2","type":"Link","linkType":"Asset"}}}`),
			entry("e3", `{"title":"No image"}`),
			entry("bad", `"not an object"`),
		},
	}

	a1 := contentful.Asset{Sys: contentful.Sys{ID: "a1"}}
	a1.Fields.File = &contentful.File{URL: "//images.ctfassets.net/s/a1.jpg"}
	a1.Fields.File.Details.Image = &contentful.ImageDetails{Width: 1600, Height: 1067}

	a2 := contentful.Asset{Sys: contentful.Sys{ID: "a2"}}
	a2.Fields.File = &contentful.File{URL: "https://cdn.example.com/a2.jpg"}

	resp.Includes.Asset = []contentful.Asset{a1, a2}
	return resp
}

func TestService_ListMapsFields(t *testing.T) {
	svc := NewService(&fakeSource{resp: fixture()}, nil, "portfolioItem", 0, zap.NewNop())

	items := svc.List(context.Background())
	require.Len(t, items, 3)

	assert.Equal(t, Item{
		ID: "e1", Src: "https://images.ctfassets.net/s/a1.jpg", Alt: "Wedding at Cotter",
		Category: "Weddings", Width: 1600, Height: 1067,
	}, items[0])

	assert.Equal(t, Item{
		ID: "e2", Src: "https://cdn.example.com/a2.jpg", Alt: "Portfolio Image",
		Category: "All", Width: 800, Height: 600,
	}, items[1])

	assert.Equal(t, "", items[2].Src)
	assert.Equal(t, "No image", items[2].Alt)
}

func TestService_ListFailureIsEmpty(t *testing.T) {
	svc := NewService(&fakeSource{err: errors.New("boom")}, newMemCache(), "portfolioItem", time.Minute, zap.NewNop())

	items := svc.List(context.Background())
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestService_ListUsesCache(t *testing.T) {
	src := &fakeSource{resp: fixture()}
	cache := newMemCache()
	svc := NewService(src, cache, "portfolioItem", time.Minute, zap.NewNop())

	first := svc.List(context.Background())
	second := svc.List(context.Background())

	assert.Equal(t, first, second)
	assert.Equal(t, 1, src.calls)
	assert.Contains(t, cache.data, "portfolio:portfolioItem")
}

func TestService_ListCacheErrorFallsThrough(t *testing.T) {
	src := &fakeSource{resp: fixture()}
	cache := newMemCache()
	cache.err = errors.New("connection refused")
	svc := NewService(src, cache, "portfolioItem", time.Minute, zap.NewNop())

	items := svc.List(context.Background())
	assert.Len(t, items, 3)
	assert.Equal(t, 1, src.calls)
}

func TestCategoriesAndFilter(t *testing.T) {
	items := []Item{
		{ID: "1", Category: "Weddings"},
		{ID: "2", Category: "All"},
		{ID: "3", Category: "Family"},
		{ID: "4", Category: "Weddings"},
	}

	assert.Equal(t, []string{"All", "Weddings", "Family"}, Categories(items))
	assert.Len(t, Filter(items, ""), 4)
	assert.Len(t, Filter(items, "All"), 4)

	weddings := Filter(items, "weddings")
	require.Len(t, weddings, 2)
	assert.Equal(t, "1", weddings[0].ID)
	assert.Equal(t, "4", weddings[1].ID)

	assert.Empty(t, Filter(items, "Drone"))
}

func TestService_ListNotConfigured(t *testing.T) {
	cache := newMemCache()
	svc := NewService(&fakeSource{err: contentful.ErrNotConfigured}, cache, "portfolioItem", time.Minute, zap.NewNop())

	items := svc.List(context.Background())
	assert.NotNil(t, items)
	assert.Empty(t, items)
	assert.Empty(t, cache.data)
}
