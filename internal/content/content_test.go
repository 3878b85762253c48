package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	site, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "BlueSphere Photography", site.Name)
	require.Len(t, site.Services, 4)

	svc, ok := site.Service("headshots")
	require.True(t, ok)
	assert.Equal(t, "$180", svc.Price)
	assert.Equal(t, "Headshots & Branding", svc.InquiryValue)

	_, ok = site.Service("drone")
	assert.False(t, ok)

	assert.True(t, site.KnownInquiry("canvas"))
	assert.False(t, site.KnownInquiry("Canvas"))

	for _, svc := range site.Services {
		assert.True(t, site.KnownInquiry(svc.InquiryValue), svc.ID)
	}
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("name: [unclosed"))
	assert.Error(t, err)

	_, err = Parse([]byte("tagline: nameless"))
	assert.Error(t, err)
}

func TestCanonical(t *testing.T) {
	site := &Site{BaseURL: "https://example.com"}
	assert.Equal(t, "https://example.com", site.Canonical("/"))
	assert.Equal(t, "https://example.com/contact", site.Canonical("/contact"))
}
