package newsroom

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// SiteConfig holds all configuration for a newsroom site. Fields carry
// envconfig tags so LoadConfig can populate them from the environment, but
// callers may also fill the struct directly and pass it to New.
type SiteConfig struct {
	Name        string `envconfig:"SITE_NAME"`
	URL         string `envconfig:"SITE_URL"`
	Tagline     string `envconfig:"SITE_TAGLINE"`
	Description string `envconfig:"SITE_DESCRIPTION"`
	Language    string `envconfig:"SITE_LANGUAGE"`
	AuthorName  string `envconfig:"SITE_AUTHOR"`

	Addr         string `envconfig:"PORT"`
	DatabasePath string `envconfig:"DATABASE_PATH"`

	AdminUser     string `envconfig:"ADMIN_USER"`
	AdminPassword string `envconfig:"ADMIN_PASS"`
	SessionSecret string `envconfig:"SESSION_SECRET"`
	CookieSecure  bool   `envconfig:"COOKIE_SECURE"`

	// Object storage (Cloudflare R2 or any S3-compatible endpoint).
	R2Endpoint     string `envconfig:"R2_ENDPOINT"`
	R2AccessKey    string `envconfig:"R2_ACCESS_KEY_ID"`
	R2SecretKey    string `envconfig:"R2_SECRET_ACCESS_KEY"`
	R2Bucket       string `envconfig:"R2_BUCKET_NAME"`
	R2PublicDomain string `envconfig:"R2_PUBLIC_DOMAIN"`

	// Google Indexing API service account. Both must be set or indexing
	// notifications are skipped.
	GoogleClientEmail string `envconfig:"GOOGLE_CLIENT_EMAIL"`
	GooglePrivateKey  string `envconfig:"GOOGLE_PRIVATE_KEY"`
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "AnimeNews ID"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Tagline == "" {
		c.Tagline = "Berita Anime dan Manga Terbaru Hari Ini"
	}
	if c.Description == "" {
		c.Description = "Portal berita Anime, Manga, dan Game terlengkap dan terupdate."
	}
	if c.Language == "" {
		c.Language = "id-ID"
	}
	if c.AuthorName == "" {
		c.AuthorName = "Redaksi"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/newsroom.db"
	}
}

// DefaultCover returns the absolute URL of the site-wide fallback cover image.
func (c SiteConfig) DefaultCover() string {
	return BuildURL(c.URL, "img", "default-cover.jpg")
}

// LoadConfig reads SiteConfig from the environment, loading a .env file
// first if one is present.
func LoadConfig() (SiteConfig, error) {
	_ = godotenv.Load()
	var c SiteConfig
	err := envconfig.Process("", &c)
	return c, err
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithAuthenticator replaces the default static-credential check with a
// custom admin credential store.
func WithAuthenticator(auth Authenticator) Option {
	return func(a *App) {
		a.auth = auth
	}
}
