package web

import (
	"errors"
	"net/http"

	"bluesphere-studio/internal/contact"
	"bluesphere-studio/internal/portfolio"
	"bluesphere-studio/internal/seo"
	"bluesphere-studio/internal/wallart"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	stateIdle    = "idle"
	stateSuccess = "success"
	stateError   = "error"

	genericErrorMessage = "Something went wrong."
)

func (s *Server) homeHandler(c *gin.Context) {
	data := s.page(c, s.deps.Site.Name+" | Canberra Family, Wedding & Headshot Photographer",
		"Natural family portraits, weddings, events and headshots across Canberra and the ACT.")
	data["Services"] = s.deps.Site.Services
	c.HTML(http.StatusOK, "home.html", data)
}

func (s *Server) servicesHandler(c *gin.Context) {
	data := s.page(c, "Services & Pricing | "+s.deps.Site.Name,
		"Photography packages for families, events, headshots and commercial clients in Canberra.")
	data["Services"] = s.deps.Site.Services
	c.HTML(http.StatusOK, "services.html", data)
}

func (s *Server) portfolioHandler(c *gin.Context) {
	var items []portfolio.Item
	if s.deps.Portfolio != nil {
		items = s.deps.Portfolio.List(c.Request.Context())
	}
	category := c.Query("category")

	data := s.page(c, "Portfolio | "+s.deps.Site.Name+" Canberra",
		"A visual collection of our latest photography work in Canberra. Weddings, Portraits, and Events.")
	data["Items"] = portfolio.Filter(items, category)
	data["Categories"] = portfolio.Categories(items)
	data["Category"] = category
	c.HTML(http.StatusOK, "portfolio.html", data)
}

// configuratorView replays the query string events on a fresh configurator.
func (s *Server) configuratorView(c *gin.Context) (wallart.View, error) {
	cfg := wallart.New(s.deps.Catalog, s.deps.Discount)
	cfg.Apply(c.Request.URL.Query())
	return cfg.View()
}

func (s *Server) wallArtHandler(c *gin.Context) {
	view, err := s.configuratorView(c)
	if err != nil {
		s.logger.Error("Failed to build wall art view", zap.Error(err))
		s.renderError(c, http.StatusInternalServerError, genericErrorMessage)
		return
	}

	data := s.page(c, "Fine Art Canvas Prints | "+s.deps.Site.Name,
		"Museum-quality canvas prints of your favourite photographs, printed on archival cotton canvas.")
	data["View"] = view
	data["ReferenceWidthIn"] = wallart.ReferenceWidthIn
	c.HTML(http.StatusOK, "wall_art.html", data)
}

func (s *Server) contactPage(c *gin.Context, form contact.Form) gin.H {
	data := s.page(c, "Book a Session | Contact "+s.deps.Site.Name,
		"Ready to book? Contact us for family shoots, weddings, or headshots in Canberra.")
	data["Form"] = form
	data["Options"] = s.deps.Site.InquiryOptions
	data["State"] = stateIdle
	data["Errors"] = contact.ValidationErrors{}
	return data
}

func (s *Server) contactFormHandler(c *gin.Context) {
	form := contact.Prefill(c.Request.URL.Query())
	if !s.deps.Site.KnownInquiry(form.ServiceInterest) {
		form.ServiceInterest = ""
	}
	c.HTML(http.StatusOK, "contact.html", s.contactPage(c, form))
}

func (s *Server) contactSubmitHandler(c *gin.Context) {
	var form contact.Form
	if err := c.ShouldBind(&form); err != nil {
		s.renderError(c, http.StatusBadRequest, "Invalid form submission.")
		return
	}

	data := s.contactPage(c, form)

	if s.deps.Contact == nil {
		data["State"] = stateError
		data["ErrorMessage"] = genericErrorMessage
		c.HTML(http.StatusServiceUnavailable, "contact.html", data)
		return
	}

	inq, err := s.deps.Contact.Submit(c.Request.Context(), form, c.ClientIP())

	var verrs contact.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		data["Errors"] = verrs
		c.HTML(http.StatusUnprocessableEntity, "contact.html", data)

	case errors.Is(err, contact.ErrRateLimited):
		data["State"] = stateError
		data["ErrorMessage"] = "You've sent several messages recently. Please try again later or email us directly."
		c.HTML(http.StatusTooManyRequests, "contact.html", data)

	case err != nil:
		_ = c.Error(err)
		status := http.StatusBadGateway
		if inq == nil {
			status = http.StatusInternalServerError
		}
		data["State"] = stateError
		data["ErrorMessage"] = genericErrorMessage
		c.HTML(status, "contact.html", data)

	default:
		data["State"] = stateSuccess
		data["Reference"] = inq.Reference
		data["Form"] = contact.Form{}
		c.HTML(http.StatusOK, "contact.html", data)
	}
}

func (s *Server) seoPage(c *gin.Context, focusArea, location string) gin.H {
	data := s.page(c, "AI SEO Helper | "+s.deps.Site.Name, "")
	data["FocusArea"] = focusArea
	data["Location"] = location
	return data
}

func (s *Server) seoFormHandler(c *gin.Context) {
	c.HTML(http.StatusOK, "seo.html", s.seoPage(c, seo.DefaultFocusArea, seo.DefaultLocation))
}

func (s *Server) seoSubmitHandler(c *gin.Context) {
	focusArea, location := c.PostForm("focus_area"), c.PostForm("location")
	data := s.seoPage(c, focusArea, location)

	advice, status, message := s.generateAdvice(c, focusArea, location)
	if advice == nil {
		data["ErrorMessage"] = message
		c.HTML(status, "seo.html", data)
		return
	}

	data["Advice"] = advice
	c.HTML(http.StatusOK, "seo.html", data)
}

// generateAdvice maps advisor failures to a status and a user-facing message.
func (s *Server) generateAdvice(c *gin.Context, focusArea, location string) (*seo.Advice, int, string) {
	if s.deps.SEO == nil {
		return nil, http.StatusServiceUnavailable, "The SEO helper is not configured."
	}

	advice, err := s.deps.SEO.Generate(c.Request.Context(), focusArea, location)
	switch {
	case errors.Is(err, seo.ErrNotConfigured):
		return nil, http.StatusServiceUnavailable, "The SEO helper is not configured."
	case err != nil:
		_ = c.Error(err)
		return nil, http.StatusBadGateway, "Failed to generate SEO strategy. " + genericErrorMessage
	}
	return advice, http.StatusOK, ""
}

func (s *Server) notFoundHandler(c *gin.Context) {
	if isAPIPath(c.Request.URL.Path) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	s.renderError(c, http.StatusNotFound, "We couldn't find that page.")
}
