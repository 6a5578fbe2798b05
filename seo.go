package newsroom

import (
	"net/url"
	"strings"
	"time"
)

const (
	// RobotsDefault allows indexing with relaxed preview limits.
	RobotsDefault = "index, follow, max-snippet:-1, max-video-preview:-1, max-image-preview:large"
	// RobotsNoindex keeps crawlers following links but out of the index;
	// applied to search results, legal pages, and 404s.
	RobotsNoindex = "noindex, follow"
)

const metaDescriptionLimit = 155

// FormatPublished renders a publish timestamp the way article pages and
// structured data expect it: the UTC clock value with the site's fixed
// +07:00 display offset appended.
func FormatPublished(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000") + "+07:00"
}

// MetaDescription returns the article's meta description: the explicit
// override when present, otherwise the first 155 characters of the
// tag-stripped body with an ellipsis.
func MetaDescription(a Article) string {
	if a.SEODescription != "" {
		return a.SEODescription
	}
	return Truncate(StripTags(a.Content), metaDescriptionLimit) + "..."
}

// DefaultMeta builds the site-wide metadata baseline for the request path.
// Every route starts from a fresh copy; nothing is shared across requests.
func DefaultMeta(cfg SiteConfig, path string) PageMeta {
	return PageMeta{
		Title:       cfg.Name,
		Description: cfg.Description,
		Robots:      RobotsDefault,
		Canonical:   cfg.URL + path,
		OGImage:     cfg.DefaultCover(),
		OGType:      "website",
	}
}

// HomeMeta specializes the baseline for the home page. When a headline
// article exists its image becomes the social card.
func HomeMeta(cfg SiteConfig, headline *Article) PageMeta {
	m := DefaultMeta(cfg, "/")
	m.Title = cfg.Name + " - " + cfg.Tagline
	m.Description = "Baca berita anime, manga, game, dan budaya pop Jepang terbaru hari ini."
	if headline != nil {
		m.OGImage = ImageURL(cfg, headline.Image)
	}
	return m
}

// ArticleMeta rebuilds the full metadata record from an article for the
// single-article page, including the structured-data fields rich snippets
// consume.
func ArticleMeta(cfg SiteConfig, a Article) PageMeta {
	image := ImageURL(cfg, a.Image)
	canonical := cfg.URL + a.Link()
	published := FormatPublished(a.CreatedAt)
	return PageMeta{
		Title:       a.Title + " | " + cfg.Name,
		Description: MetaDescription(a),
		Robots:      RobotsDefault,
		Canonical:   canonical,
		Keywords:    strings.Join(a.Tags, ", "),
		OGType:      "article",
		OGImage:     image,
		OGImageW:    854,
		OGImageH:    480,
		TwitterCard: "summary_large_image",
		TwitterSite: "@" + cfg.Name,

		PublisherName: cfg.Name,
		AuthorName:    cfg.AuthorName,
		Sections:      append(append([]string{}, a.Category...), "Artikel"),
		PublishedAt:   published,
	}
}

// CategoryMeta specializes the baseline for a category listing. The display
// name comes from the URL slug.
func CategoryMeta(cfg SiteConfig, slug string) PageMeta {
	name := HumanizeSlug(slug)
	m := DefaultMeta(cfg, "/category/"+slug)
	m.Title = "Berita Kategori " + name + " | " + cfg.Name
	m.Description = "Kumpulan berita terbaru seputar " + name + "."
	return m
}

// TagMeta specializes the baseline for a tag listing.
func TagMeta(cfg SiteConfig, slug string) PageMeta {
	name := HumanizeSlug(slug)
	m := DefaultMeta(cfg, "/tag/"+slug)
	m.Title = "Topik #" + name + " | " + cfg.Name
	m.Description = "Berita terkini dengan topik #" + name + "."
	return m
}

// SearchMeta echoes the query into the metadata and keeps result pages out
// of the index.
func SearchMeta(cfg SiteConfig, query string) PageMeta {
	m := DefaultMeta(cfg, "/search")
	m.Title = "Pencarian: " + query + " | " + cfg.Name
	m.Description = `Menampilkan hasil pencarian untuk "` + query + `".`
	m.Canonical = cfg.URL + "/search?q=" + url.QueryEscape(query)
	m.Robots = RobotsNoindex
	return m
}

// StaticMeta builds metadata for a fixed page. Legal pages pass
// noindex=true per the site's robots policy.
func StaticMeta(cfg SiteConfig, path, title, description string, noindex bool) PageMeta {
	m := DefaultMeta(cfg, path)
	m.Title = title + " | " + cfg.Name
	if description != "" {
		m.Description = description
	}
	if noindex {
		m.Robots = RobotsNoindex
	}
	return m
}

// NotFoundMeta builds the 404 metadata record.
func NotFoundMeta(cfg SiteConfig, path string) PageMeta {
	m := DefaultMeta(cfg, path)
	m.Title = "404 Halaman Tidak Ditemukan | " + cfg.Name
	m.Description = "Halaman yang Anda cari tidak ditemukan."
	m.Robots = RobotsNoindex
	return m
}
