package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
	"time"

	"bluesphere-studio/internal/contact"
	"bluesphere-studio/internal/content"
	"bluesphere-studio/internal/portfolio"
	"bluesphere-studio/internal/seo"
	"bluesphere-studio/internal/storage"
	"bluesphere-studio/internal/wallart"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//go:embed templates/*
var templatesFS embed.FS

//go:embed static/*
var staticFS embed.FS

type PortfolioLister interface {
	List(ctx context.Context) []portfolio.Item
}

type InquirySubmitter interface {
	Submit(ctx context.Context, form contact.Form, clientIP string) (*storage.Inquiry, error)
}

type SEOGenerator interface {
	Generate(ctx context.Context, focusArea, location string) (*seo.Advice, error)
}

// Pinger is a dependency checked by /healthz.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Site           *content.Site
	Catalog        *wallart.Catalog
	Discount       float64
	Portfolio      PortfolioLister
	Contact        InquirySubmitter
	SEO            SEOGenerator
	Health         map[string]Pinger
	RequestTimeout time.Duration
	TrustedProxies []string
	Logger         *zap.Logger
}

// Server renders the studio site and its JSON API.
type Server struct {
	deps   Deps
	router *gin.Engine
	logger *zap.Logger
}

func NewServer(deps Deps) (*Server, error) {
	const operation = "web.NewServer"

	if deps.Site == nil || deps.Catalog == nil {
		return nil, fmt.Errorf("%s: site content and catalog are required", operation)
	}
	if err := wallart.ValidateDiscount(deps.Discount); err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	router := gin.New()
	if err := router.SetTrustedProxies(deps.TrustedProxies); err != nil {
		return nil, fmt.Errorf("%s: invalid trusted proxies: %w", operation, err)
	}

	router.Use(requestLogger(deps.Logger))
	router.Use(recovery(deps.Logger))
	if deps.RequestTimeout > 0 {
		router.Use(requestTimeout(deps.RequestTimeout))
	}

	tmpl, err := template.New("").Funcs(templateFuncs()).ParseFS(templatesFS, "templates/*")
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse templates: %w", operation, err)
	}
	router.SetHTMLTemplate(tmpl)

	staticSubFS, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create static filesystem: %w", operation, err)
	}
	router.StaticFS("/static", http.FS(staticSubFS))

	s := &Server{
		deps:   deps,
		router: router,
		logger: deps.Logger,
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	s.router.GET("/", s.homeHandler)
	s.router.GET("/services", s.servicesHandler)
	s.router.GET("/portfolio", s.portfolioHandler)
	s.router.GET(wallart.BasePath, s.wallArtHandler)
	s.router.GET("/contact", s.contactFormHandler)
	s.router.POST("/contact", s.contactSubmitHandler)
	s.router.GET("/seo", s.seoFormHandler)
	s.router.POST("/seo", s.seoSubmitHandler)
	s.router.GET("/healthz", s.healthHandler)

	api := s.router.Group("/api")
	{
		api.GET("/wall-art", s.apiWallArtHandler)
		api.GET("/portfolio", s.apiPortfolioHandler)
		api.POST("/seo", s.apiSEOHandler)
	}

	s.router.NoRoute(s.notFoundHandler)
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"money": func(amount int) string {
			return "$" + strconv.Itoa(amount)
		},
		"percent": func(p float64) string {
			return strconv.FormatFloat(p, 'f', -1, 64) + "%"
		},
		"year": func() int {
			return time.Now().Year()
		},
	}
}

// page is the data every template shares.
func (s *Server) page(c *gin.Context, title, description string) gin.H {
	return gin.H{
		"Site":        s.deps.Site,
		"Title":       title,
		"Description": description,
		"Canonical":   s.deps.Site.Canonical(c.Request.URL.Path),
		"Path":        c.Request.URL.Path,
	}
}

func (s *Server) renderError(c *gin.Context, status int, message string) {
	data := s.page(c, http.StatusText(status), "")
	data["Status"] = status
	data["Message"] = message
	c.HTML(status, "error.html", data)
}
