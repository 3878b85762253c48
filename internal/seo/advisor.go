package seo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	DefaultModel     = "gemini-2.5-flash"
	DefaultFocusArea = "Family Portraits & Weddings"
	DefaultLocation  = "Canberra, ACT"

	maxInputLength = 200
)

var (
	ErrNotConfigured = errors.New("seo: generative AI API key is not configured")
	ErrEmptyResponse = errors.New("seo: no response from model")
)

// Advice is the drafted SEO copy for one niche and location.
type Advice struct {
	Keywords         []string `json:"keywords"`
	MetaDescription  string   `json:"metaDescription"`
	BlogIdeas        []string `json:"blogIdeas"`
	LocalSEOStrategy string   `json:"localSEOStrategy"`
}

// Generator is satisfied by *genai.Models.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Advisor struct {
	gen    Generator
	model  string
	logger *zap.Logger
}

// NewAdvisor creates the Gemini client. With an empty apiKey the advisor
// is still usable but every Generate returns ErrNotConfigured.
func NewAdvisor(ctx context.Context, apiKey, model string, logger *zap.Logger) (*Advisor, error) {
	const operation = "seo.NewAdvisor"

	if apiKey == "" {
		logger.Warn("SEO helper disabled - no Gemini API key configured")
		return NewAdvisorWithGenerator(nil, model, logger), nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create GenAI client: %w", operation, err)
	}

	return NewAdvisorWithGenerator(client.Models, model, logger), nil
}

func NewAdvisorWithGenerator(gen Generator, model string, logger *zap.Logger) *Advisor {
	if model == "" {
		model = DefaultModel
	}
	return &Advisor{
		gen:    gen,
		model:  model,
		logger: logger,
	}
}

func (a *Advisor) Enabled() bool {
	return a.gen != nil
}

// Generate drafts keywords, a meta description, blog titles and a local
// visibility plan for a photographer.
func (a *Advisor) Generate(ctx context.Context, focusArea, location string) (*Advice, error) {
	const operation = "seo.Generate"

	if !a.Enabled() {
		return nil, ErrNotConfigured
	}

	focusArea = normalizeInput(focusArea, DefaultFocusArea)
	location = normalizeInput(location, DefaultLocation)

	resp, err := a.gen.GenerateContent(ctx, a.model, genai.Text(Prompt(focusArea, location)), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   responseSchema(),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: generate content: %w", operation, err)
	}
	if resp == nil {
		return nil, fmt.Errorf("%s: %w", operation, ErrEmptyResponse)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return nil, fmt.Errorf("%s: %w", operation, ErrEmptyResponse)
	}

	var advice Advice
	if err := json.Unmarshal([]byte(text), &advice); err != nil {
		return nil, fmt.Errorf("%s: decode advice: %w", operation, err)
	}

	a.logger.Info("Generated SEO advice",
		zap.String("focus_area", focusArea),
		zap.String("location", location),
		zap.Int("keywords", len(advice.Keywords)),
		zap.Int("blog_ideas", len(advice.BlogIdeas)))

	return &advice, nil
}

func Prompt(focusArea, location string) string {
	return fmt.Sprintf(`Act as an SEO Expert for a photographer based in %s.
The user specializes in: %s.

Provide a specific SEO strategy in JSON format with the following fields:
- keywords: A list of 10 high-value, long-tail keywords relevant to the location and niche.
- metaDescription: A compelling HTML meta description (under 160 characters) for their home page.
- blogIdeas: 5 blog post titles that would rank well for local search.
- localSEOStrategy: A concise paragraph explaining how to improve local visibility (e.g., Google Business Profile tips) specifically for this photographer type.
`, location, focusArea)
}

func responseSchema() *genai.Schema {
	stringList := &genai.Schema{
		Type:  genai.TypeArray,
		Items: &genai.Schema{Type: genai.TypeString},
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"keywords":         stringList,
			"metaDescription":  {Type: genai.TypeString},
			"blogIdeas":        stringList,
			"localSEOStrategy": {Type: genai.TypeString},
		},
		Required: []string{"keywords", "metaDescription", "blogIdeas", "localSEOStrategy"},
	}
}

func normalizeInput(s, fallback string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return fallback
	}
	if utf8.RuneCountInString(s) > maxInputLength {
		s = string([]rune(s)[:maxInputLength])
	}
	return s
}
