package newsroom

import (
	"encoding/xml"
	"strings"
	"time"
)

type sitemapURLSet struct {
	XMLName    xml.Name     `xml:"urlset"`
	XMLNS      string       `xml:"xmlns,attr"`
	XMLNSImage string       `xml:"xmlns:image,attr,omitempty"`
	XMLNSNews  string       `xml:"xmlns:news,attr,omitempty"`
	URLs       []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string      `xml:"loc"`
	LastMod    string      `xml:"lastmod,omitempty"`
	ChangeFreq string      `xml:"changefreq,omitempty"`
	Priority   string      `xml:"priority,omitempty"`
	News       *newsBlock  `xml:"news:news,omitempty"`
	Image      *imageBlock `xml:"image:image,omitempty"`
}

type imageBlock struct {
	Loc   string `xml:"image:loc"`
	Title cdata  `xml:"image:title"`
}

type newsBlock struct {
	Publication     newsPublication `xml:"news:publication"`
	PublicationDate string          `xml:"news:publication_date"`
	Title           cdata           `xml:"news:title"`
}

type newsPublication struct {
	Name     string `xml:"news:name"`
	Language string `xml:"news:language"`
}

// NewsWindow is how far back the news sitemap reaches, per the Google News
// 48-hour freshness rule.
const NewsWindow = 48 * time.Hour

// NewsSitemapLimit caps news sitemap entries; no pagination beyond it.
const NewsSitemapLimit = 1000

// staticSitemapEntries are the fixed top-level pages every sitemap carries.
var staticSitemapEntries = []struct {
	path, changefreq, priority string
}{
	{"/", "daily", "1.0"},
	{"/category/anime", "weekly", "0.8"},
	{"/category/manga", "weekly", "0.8"},
	{"/category/jadwal", "weekly", "0.8"},
	{"/about", "weekly", "0.8"},
	{"/privacy-policy", "weekly", "0.8"},
	{"/contact", "weekly", "0.8"},
	{"/disclaimer", "weekly", "0.8"},
}

// BuildSitemap serializes the general sitemap: the fixed static pages, one
// image-annotated entry per published article, and one entry per distinct
// tag slug collected across all published articles.
func BuildSitemap(cfg SiteConfig, articles []Article) sitemapURLSet {
	urls := make([]sitemapURL, 0, len(staticSitemapEntries)+len(articles))
	for _, e := range staticSitemapEntries {
		urls = append(urls, sitemapURL{
			Loc:        cfg.URL + e.path,
			ChangeFreq: e.changefreq,
			Priority:   e.priority,
		})
	}

	seenTags := make(map[string]struct{})
	var tagSlugs []string
	for _, a := range articles {
		urls = append(urls, sitemapURL{
			Loc:      cfg.URL + a.Link(),
			LastMod:  a.CreatedAt.UTC().Format("2006-01-02"),
			Priority: "0.9",
			Image: &imageBlock{
				Loc:   ImageURL(cfg, a.Image),
				Title: cdata{a.Title},
			},
		})
		for _, t := range a.Tags {
			slug := Slugify(t)
			if slug == "" {
				continue
			}
			if _, ok := seenTags[slug]; !ok {
				seenTags[slug] = struct{}{}
				tagSlugs = append(tagSlugs, slug)
			}
		}
	}

	for _, slug := range tagSlugs {
		urls = append(urls, sitemapURL{
			Loc:        cfg.URL + "/tag/" + slug,
			ChangeFreq: "weekly",
			Priority:   "0.6",
		})
	}

	return sitemapURLSet{
		XMLNS:      "http://www.sitemaps.org/schemas/sitemap/0.9",
		XMLNSImage: "http://www.google.com/schemas/sitemap-image/1.1",
		URLs:       urls,
	}
}

// BuildNewsSitemap serializes articles from the last 48 hours with the
// Google News namespace block. Callers pass the already-windowed set.
func BuildNewsSitemap(cfg SiteConfig, articles []Article) sitemapURLSet {
	language := strings.SplitN(cfg.Language, "-", 2)[0]
	urls := make([]sitemapURL, 0, len(articles))
	for _, a := range articles {
		urls = append(urls, sitemapURL{
			Loc: cfg.URL + a.Link(),
			News: &newsBlock{
				Publication: newsPublication{
					Name:     cfg.Name,
					Language: language,
				},
				PublicationDate: a.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
				Title:           cdata{a.Title},
			},
			Image: &imageBlock{
				Loc:   ImageURL(cfg, a.Image),
				Title: cdata{a.Title},
			},
		})
	}
	return sitemapURLSet{
		XMLNS:      "http://www.sitemaps.org/schemas/sitemap/0.9",
		XMLNSNews:  "http://www.google.com/schemas/sitemap-news/0.9",
		XMLNSImage: "http://www.google.com/schemas/sitemap-image/1.1",
		URLs:       urls,
	}
}
