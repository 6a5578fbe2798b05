package newsroom

import "time"

// Article status values. Only published articles are reachable through
// public routes, feeds, and sitemaps.
const (
	StatusPublished = "published"
	StatusDraft     = "draft"
)

// DefaultImage is the sentinel stored when an article has no uploaded cover.
const DefaultImage = "default.jpg"

// Article is the core content type stored in SQLite and rendered by templates.
// The Image field holds either an absolute URL (uploaded to object storage),
// a legacy bare filename served from /uploads/, or the DefaultImage sentinel.
type Article struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Slug           string    `json:"slug"`
	Image          string    `json:"image"`
	Content        string    `json:"content"`
	Category       []string  `json:"category"`
	Tags           []string  `json:"tags"`
	Status         string    `json:"status"`
	SEODescription string    `json:"seoDescription"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Published reports whether the article is visible on public routes.
func (a Article) Published() bool {
	return a.Status == StatusPublished
}

// Link returns the article's site-relative URL.
func (a Article) Link() string {
	return "/read/" + a.Slug
}

// PageMeta carries per-page SEO, OpenGraph, Twitter card, and structured-data
// fields into the <head> template. Built fresh per request; never shared.
type PageMeta struct {
	Title       string
	Description string
	Robots      string
	Canonical   string // canonical + og:url
	Keywords    string
	OGType      string // "website" or "article"
	OGImage     string
	OGImageW    int
	OGImageH    int
	TwitterCard string
	TwitterSite string

	// Structured-data fields, populated on article pages only.
	PublisherName string
	AuthorName    string
	Sections      []string
	PublishedAt   string // ISO-8601 with the site's fixed display offset
}
