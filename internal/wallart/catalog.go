package wallart

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// PrintOption is one purchasable canvas size. Options are loaded once at
// startup and never mutated.
type PrintOption struct {
	ID          string  `yaml:"id" json:"id"`
	WidthIn     float64 `yaml:"width_in" json:"width_in"`
	HeightIn    float64 `yaml:"height_in" json:"height_in"`
	BasePrice   int     `yaml:"base_price" json:"base_price"`
	Description string  `yaml:"description" json:"description"`
	ImageURL    string  `yaml:"image_url" json:"image_url"`
}

type catalogFile struct {
	Default string        `yaml:"default"`
	Options []PrintOption `yaml:"options"`
}

// Catalog is the read-only list of print options plus the default selection.
type Catalog struct {
	options   []PrintOption
	index     map[string]int
	defaultID string
}

// DefaultCatalog parses the catalog embedded in the binary.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalogYAML)
}

// MustDefaultCatalog is DefaultCatalog for package-level wiring and tests.
func MustDefaultCatalog() *Catalog {
	c, err := DefaultCatalog()
	if err != nil {
		panic(err)
	}
	return c
}

func ParseCatalog(data []byte) (*Catalog, error) {
	const operation = "wallart.ParseCatalog"

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%s: decode yaml: %w", operation, err)
	}

	return NewCatalog(file.Default, file.Options)
}

// NewCatalog validates options and builds the lookup index. An empty
// defaultID selects the first option.
func NewCatalog(defaultID string, options []PrintOption) (*Catalog, error) {
	const operation = "wallart.NewCatalog"

	if len(options) == 0 {
		return nil, fmt.Errorf("%s: catalog has no options", operation)
	}

	c := &Catalog{
		options: make([]PrintOption, len(options)),
		index:   make(map[string]int, len(options)),
	}
	copy(c.options, options)

	for i, opt := range c.options {
		switch {
		case opt.ID == "":
			return nil, fmt.Errorf("%s: option %d has empty id", operation, i)
		case opt.WidthIn <= 0 || opt.HeightIn <= 0:
			return nil, fmt.Errorf("%s: option %q has invalid size %vx%v", operation, opt.ID, opt.WidthIn, opt.HeightIn)
		case opt.BasePrice < 0:
			return nil, fmt.Errorf("%s: option %q has negative price %d", operation, opt.ID, opt.BasePrice)
		}
		if _, dup := c.index[opt.ID]; dup {
			return nil, fmt.Errorf("%s: duplicate option id %q", operation, opt.ID)
		}
		c.index[opt.ID] = i
	}

	if defaultID == "" {
		defaultID = c.options[0].ID
	}
	if _, ok := c.index[defaultID]; !ok {
		return nil, fmt.Errorf("%s: default option %q not in catalog", operation, defaultID)
	}
	c.defaultID = defaultID

	return c, nil
}

// Options returns a copy of the options in catalog order.
func (c *Catalog) Options() []PrintOption {
	out := make([]PrintOption, len(c.options))
	copy(out, c.options)
	return out
}

func (c *Catalog) Lookup(id string) (PrintOption, bool) {
	i, ok := c.index[id]
	if !ok {
		return PrintOption{}, false
	}
	return c.options[i], true
}

func (c *Catalog) Default() PrintOption {
	return c.options[c.index[c.defaultID]]
}
