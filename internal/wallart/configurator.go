package wallart

import (
	"math"
	"net/url"
)

type ViewMode string

const (
	DetailView ViewMode = "detail"
	RoomView   ViewMode = "room"
)

// ReferenceWidthIn is the width of the sofa the room-scale preview measures
// prints against.
const ReferenceWidthIn = 84.0

// detailPxPerInch sizes the detail preview frame.
const detailPxPerInch = 10

// BasePath is where the configurator page is mounted; links produced by View
// point back at it.
const BasePath = "/wall-art"

// Configurator holds the per-render UI state of the wall-art page. It is
// created with fixed defaults, mutated only by selection events and thrown
// away afterwards.
type Configurator struct {
	catalog  *Catalog
	discount float64

	selected string
	units    UnitSystem
	mode     ViewMode
}

func New(catalog *Catalog, discountPercent float64) *Configurator {
	return &Configurator{
		catalog:  catalog,
		discount: discountPercent,
		selected: catalog.Default().ID,
		units:    Imperial,
		mode:     DetailView,
	}
}

// SelectOption switches the selection. Unknown ids are ignored and the
// current selection is kept.
func (c *Configurator) SelectOption(id string) {
	if _, ok := c.catalog.Lookup(id); ok {
		c.selected = id
	}
}

func (c *Configurator) ToggleUnits() {
	if c.units == Metric {
		c.units = Imperial
		return
	}
	c.units = Metric
}

func (c *Configurator) SetUnits(units UnitSystem) {
	if units == Imperial || units == Metric {
		c.units = units
	}
}

// ToggleViewMode switches the preview mode. Unknown modes are ignored.
func (c *Configurator) ToggleViewMode(mode ViewMode) {
	if mode == DetailView || mode == RoomView {
		c.mode = mode
	}
}

// Apply replays the selection events carried in a query string:
// option=<id>, units=imperial|metric, toggle=units, view=detail|room.
func (c *Configurator) Apply(q url.Values) {
	if id := q.Get("option"); id != "" {
		c.SelectOption(id)
	}
	if u, ok := ParseUnitSystem(q.Get("units")); ok {
		c.SetUnits(u)
	}
	if q.Get("toggle") == "units" {
		c.ToggleUnits()
	}
	if v := q.Get("view"); v != "" {
		c.ToggleViewMode(ViewMode(v))
	}
}

func (c *Configurator) Selected() PrintOption {
	opt, ok := c.catalog.Lookup(c.selected)
	if !ok {
		return c.catalog.Default()
	}
	return opt
}

func (c *Configurator) Units() UnitSystem { return c.units }
func (c *Configurator) Mode() ViewMode    { return c.mode }

func (c *Configurator) Display() Dimensions {
	return ComputeDisplay(c.Selected(), c.units)
}

func (c *Configurator) Price() (Price, error) {
	return ComputePrice(c.Selected(), c.discount)
}

// Preview is the geometry of the preview frame for the selected print.
type Preview struct {
	Mode           ViewMode `json:"mode"`
	WidthPx        int      `json:"width_px,omitempty"`
	WidthPercent   float64  `json:"width_percent,omitempty"`
	AspectRatio    float64  `json:"aspect_ratio"`
	ReferenceWidth string   `json:"reference_width,omitempty"`
}

func (c *Configurator) Preview() Preview {
	return ComputePreview(c.Selected(), c.mode, c.units)
}

// ComputePreview derives the preview frame. Detail mode sizes the frame at a
// fixed pixel scale; room mode expresses the print width as a percentage of
// the reference sofa, capped at 100.
func ComputePreview(opt PrintOption, mode ViewMode, units UnitSystem) Preview {
	p := Preview{
		Mode:        mode,
		AspectRatio: math.Round(opt.HeightIn/opt.WidthIn*1000) / 1000,
	}

	if mode == RoomView {
		pct := math.Round(opt.WidthIn/ReferenceWidthIn*1000) / 10
		p.WidthPercent = math.Min(pct, 100)
		p.ReferenceWidth = FormatLength(ReferenceWidthIn, units)
		return p
	}

	p.Mode = DetailView
	p.WidthPx = int(math.Round(opt.WidthIn * detailPxPerInch))
	return p
}

type OptionView struct {
	PrintOption
	Dimensions Dimensions `json:"dimensions"`
	Price      Price      `json:"price"`
	Selected   bool       `json:"selected"`
	URL        string     `json:"url"`
}

// View is everything the wall-art page renders, recomputed from state.
type View struct {
	Selected       OptionView   `json:"selected"`
	Options        []OptionView `json:"options"`
	Units          UnitSystem   `json:"units"`
	Mode           ViewMode     `json:"mode"`
	Preview        Preview      `json:"preview"`
	InquiryURL     string       `json:"inquiry_url"`
	UnitsToggleURL string       `json:"units_toggle_url"`
	DetailURL      string       `json:"detail_url"`
	RoomURL        string       `json:"room_url"`
}

func (c *Configurator) View() (View, error) {
	options := c.catalog.Options()

	v := View{
		Options:        make([]OptionView, 0, len(options)),
		Units:          c.units,
		Mode:           c.mode,
		Preview:        c.Preview(),
		UnitsToggleURL: c.link(c.selected, flip(c.units), c.mode),
		DetailURL:      c.link(c.selected, c.units, DetailView),
		RoomURL:        c.link(c.selected, c.units, RoomView),
	}

	selected := c.Selected()
	for _, opt := range options {
		price, err := ComputePrice(opt, c.discount)
		if err != nil {
			return View{}, err
		}
		ov := OptionView{
			PrintOption: opt,
			Dimensions:  ComputeDisplay(opt, c.units),
			Price:       price,
			Selected:    opt.ID == selected.ID,
			URL:         c.link(opt.ID, c.units, c.mode),
		}
		if ov.Selected {
			v.Selected = ov
		}
		v.Options = append(v.Options, ov)
	}

	v.InquiryURL = InquiryURL(selected)
	return v, nil
}

// InquiryURL links the contact form with the canvas interest and the
// imperial size prefilled.
func InquiryURL(opt PrintOption) string {
	q := url.Values{}
	q.Set("interest", "canvas")
	q.Set("size", ComputeDisplay(opt, Imperial).Label)
	return "/contact?" + q.Encode()
}

func (c *Configurator) link(optionID string, units UnitSystem, mode ViewMode) string {
	q := url.Values{}
	q.Set("option", optionID)
	q.Set("units", string(units))
	q.Set("view", string(mode))
	return BasePath + "?" + q.Encode()
}

func flip(u UnitSystem) UnitSystem {
	if u == Metric {
		return Imperial
	}
	return Metric
}
