package content

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed site.yaml
var siteYAML []byte

type ServicePackage struct {
	ID           string   `yaml:"id" json:"id"`
	Title        string   `yaml:"title" json:"title"`
	Price        string   `yaml:"price" json:"price"`
	Duration     string   `yaml:"duration" json:"duration"`
	Description  string   `yaml:"description" json:"description"`
	Features     []string `yaml:"features" json:"features"`
	Image        string   `yaml:"image" json:"image"`
	InquiryValue string   `yaml:"inquiry_value" json:"inquiry_value"`
}

// InquiryOption is one entry of the contact form's service select.
type InquiryOption struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

// Site is the static copy of the business shown across all pages.
type Site struct {
	Name           string           `yaml:"name"`
	Tagline        string           `yaml:"tagline"`
	BaseURL        string           `yaml:"base_url"`
	Phone          string           `yaml:"phone"`
	Email          string           `yaml:"email"`
	Location       string           `yaml:"location"`
	Availability   string           `yaml:"availability"`
	Services       []ServicePackage `yaml:"services"`
	InquiryOptions []InquiryOption  `yaml:"inquiry_options"`
}

func Load() (*Site, error) {
	return Parse(siteYAML)
}

func Parse(data []byte) (*Site, error) {
	var site Site
	if err := yaml.Unmarshal(data, &site); err != nil {
		return nil, fmt.Errorf("content.Parse: decode yaml: %w", err)
	}
	if site.Name == "" {
		return nil, fmt.Errorf("content.Parse: site name is required")
	}
	return &site, nil
}

// Service looks a package up by id.
func (s *Site) Service(id string) (ServicePackage, bool) {
	for _, svc := range s.Services {
		if svc.ID == id {
			return svc, true
		}
	}
	return ServicePackage{}, false
}

// KnownInquiry reports whether value is one of the contact form choices.
func (s *Site) KnownInquiry(value string) bool {
	for _, opt := range s.InquiryOptions {
		if opt.Value == value {
			return true
		}
	}
	return false
}

// Canonical joins a site path onto the base URL.
func (s *Site) Canonical(path string) string {
	if path == "/" {
		return s.BaseURL
	}
	return s.BaseURL + path
}
