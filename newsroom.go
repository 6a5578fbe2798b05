// Package newsroom is a content-managed news site engine built with Go,
// Echo, and templ. It provides public article browsing, search, RSS and
// sitemap feeds, and a session-authenticated admin panel with image upload
// to S3-compatible object storage and Google Indexing API notifications.
//
// Users provide their own templ components via the ViewFuncs struct, and
// newsroom handles handler logic, middleware, persistence, and the external
// side effects.
package newsroom

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ViewFuncs holds user-provided templ components that the engine calls when
// rendering pages. This is the inversion-of-control mechanism that lets
// users own and customize all templates.
type ViewFuncs struct {
	Home           func(headline *Article, articles []Article, meta PageMeta) templ.Component
	Article        func(article Article, related, sidebar []Article, meta PageMeta) templ.Component
	Category       func(name, slug string, articles, sidebar []Article, meta PageMeta) templ.Component
	Tag            func(name string, articles, sidebar []Article, meta PageMeta) templ.Component
	Search         func(query string, articles []Article, meta PageMeta) templ.Component
	Static         func(page string, meta PageMeta) templ.Component
	AdminLogin     func(errorMsg, csrfToken string) templ.Component
	AdminDashboard func(articles []Article, msg, csrfToken string) templ.Component
	AdminForm      func(article *Article, csrfToken string) templ.Component
	NotFound       func(meta PageMeta) templ.Component
	ServerError    func() templ.Component
}

// App is the central newsroom application. It wires together the store,
// cache, handlers, middleware, side effects, and user-provided templates.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Cache  *ArticleCache
	Views  ViewFuncs
	Logger *zap.Logger

	auth         Authenticator
	objects      *ObjectStore
	indexer      *IndexingNotifier
	loginLimiter *LoginLimiter
	customRoutes []func(*App)
	staticDir    string
}

// New creates a newsroom App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the store, cache, side-effect clients, middleware, and
// routes, then starts the server.
func (a *App) Start() error {
	if a.auth == nil {
		if a.Config.AdminUser == "" || a.Config.AdminPassword == "" {
			return fmt.Errorf("newsroom: AdminUser and AdminPassword are required")
		}
		a.auth = staticCredentials{username: a.Config.AdminUser, password: a.Config.AdminPassword}
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("newsroom: SessionSecret is required")
	}

	if a.Logger == nil {
		logger, err := zap.NewProduction()
		if err != nil {
			return fmt.Errorf("newsroom: init logger: %w", err)
		}
		a.Logger = logger
	}
	defer a.Logger.Sync()

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("newsroom: init store: %w", err)
	}
	a.Store = store

	a.Cache = NewArticleCache(a.Store, 5*time.Minute)
	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	if a.Config.R2Endpoint != "" {
		objects, err := NewObjectStore(a.Config, a.Logger)
		if err != nil {
			return err
		}
		a.objects = objects
	} else {
		a.Logger.Warn("object storage disabled: R2_ENDPOINT not set")
	}

	if a.Config.GoogleClientEmail != "" && a.Config.GooglePrivateKey != "" {
		indexer, err := NewIndexingNotifier(a.Config.GoogleClientEmail, a.Config.GooglePrivateKey)
		if err != nil {
			return err
		}
		a.indexer = indexer
	} else {
		a.Logger.Warn("indexing notifications disabled: service account credentials not set")
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	addr := a.Config.Addr
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}
	if err := a.Echo.Start(addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// User's static assets; /uploads keeps legacy pre-migration images
	// reachable.
	e.Static("/public", a.staticDir)
	e.Static("/img", a.staticDir+"/img")
	e.Static("/uploads", a.staticDir+"/uploads")
	e.GET("/favicon.ico", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	// Public routes
	e.GET("/", a.handleHome)
	e.GET("/read/:slug", a.handleArticle)
	e.GET("/category/:slug", a.handleCategory)
	e.GET("/tag/:slug", a.handleTag)
	e.GET("/search", a.handleSearch)
	e.GET("/api/load-more", a.handleLoadMore)

	// Feeds and sitemaps
	e.GET("/rss", a.handleRSS)
	e.GET("/rss/category/:slug", a.handleCategoryRSS)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/sitemap-news.xml", a.handleNewsSitemap)

	// Static pages
	e.GET("/about", a.handleAbout)
	e.GET("/contact", a.handleContact)
	e.GET("/privacy-policy", a.handlePrivacy)
	e.GET("/disclaimer", a.handleDisclaimer)

	// Admin routes
	e.GET("/admin/login", a.handleAdminLoginForm)
	e.POST("/admin/login", a.handleAdminLogin)
	e.GET("/admin/logout", handleAdminLogout)
	e.GET("/admin", a.handleAdminDashboard)
	e.GET("/admin/post", a.handleAdminNew)
	e.POST("/admin/post", a.handleAdminCreate)
	e.GET("/admin/edit/:id", a.handleAdminEditForm)
	e.POST("/admin/edit/:id", a.handleAdminEdit)
	e.GET("/admin/delete/:id", a.handleAdminDelete)
	e.GET("/admin/ping-google/:id", a.handleAdminPing)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		a.Store.Close()
	}
	return nil
}
