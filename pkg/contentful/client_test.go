package contentful

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const entriesFixture = `{
  "total": 1, "skip": 0, "limit": 1000,
  "items": [
    {"sys": {"id": "e1", "type": "Entry"},
     "fields": {"title": "Lake Burley Griffin", "image": {"sys": {"id": "a1", "type": "Link", "linkType": "Asset"}}}}
  ],
  "includes": {"Asset": [
    {"sys": {"id": "a1", "type": "Asset"},
     "fields": {"title": "lake", "file": {"url": "//images.ctfassets.net/x/lake.jpg", "details": {"size": 10, "image": {"width": 1200, "height": 800}}}}}
  ]}
}`

func TestClient_Entries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/spaces/space1/environments/master/entries", r.URL.Path)
		assert.Equal(t, "portfolioItem", r.URL.Query().Get("content_type"))
		assert.Equal(t, "1", r.URL.Query().Get("include"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(entriesFixture))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "space1", "", "tok", time.Second, zap.NewNop())
	resp, err := c.Entries(context.Background(), "portfolioItem")
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, "e1", resp.Items[0].Sys.ID)

	asset, ok := resp.Asset(&Link{Sys: Sys{ID: "a1"}})
	require.True(t, ok)
	require.NotNil(t, asset.Fields.File)
	assert.Equal(t, 1200, asset.Fields.File.Details.Image.Width)

	_, ok = resp.Asset(&Link{Sys: Sys{ID: "zz"}})
	assert.False(t, ok)
	_, ok = resp.Asset(nil)
	assert.False(t, ok)
}

func TestClient_EntriesTrailingSlashBaseURL(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(entriesFixture))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "space1", "", "tok", time.Second, zap.NewNop())
	_, err := c.Entries(context.Background(), "portfolioItem")
	require.NoError(t, err)
	assert.Equal(t, "/spaces/space1/environments/master/entries", path)
}

func TestClient_EntriesErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"sys":{"id":"AccessTokenInvalid","type":"Error"},"message":"The access token you sent could not be found or is invalid."}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "space1", "master", "bad", time.Second, zap.NewNop())
	_, err := c.Entries(context.Background(), "portfolioItem")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "access token")
}

func TestClient_NotConfigured(t *testing.T) {
	c := NewClient("", "", "", "", time.Second, zap.NewNop())
	_, err := c.Entries(context.Background(), "portfolioItem")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
