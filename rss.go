package newsroom

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// cdata wraps crawler-facing text so titles and embedded HTML are emitted
// literally instead of entity-escaped.
type cdata struct {
	Text string `xml:",cdata"`
}

type rssXML struct {
	XMLName    xml.Name   `xml:"rss"`
	Version    string     `xml:"version,attr"`
	XMLNSAtom  string     `xml:"xmlns:atom,attr"`
	XMLNSMedia string     `xml:"xmlns:media,attr,omitempty"`
	Channel    rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language"`
	LastBuildDate string    `xml:"lastBuildDate,omitempty"`
	AtomLink      atomLink  `xml:"atom:link"`
	Items         []rssItem `xml:"item"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type rssItem struct {
	Title       cdata         `xml:"title"`
	Link        string        `xml:"link"`
	GUID        rssGUID       `xml:"guid"`
	Description cdata         `xml:"description"`
	Media       *mediaContent `xml:"media:content,omitempty"`
	PubDate     string        `xml:"pubDate"`
}

type rssGUID struct {
	IsPermaLink string `xml:"isPermaLink,attr,omitempty"`
	Value       string `xml:",chardata"`
}

type mediaContent struct {
	URL    string     `xml:"url,attr"`
	Medium string     `xml:"medium,attr"`
	Title  mediaTitle `xml:"media:title"`
}

type mediaTitle struct {
	Type string `xml:"type,attr"`
	Text string `xml:",cdata"`
}

// GlobalFeedLimit caps the main RSS feed.
const GlobalFeedLimit = 50

// CategoryFeedLimit caps per-category RSS feeds.
const CategoryFeedLimit = 20

// BuildGlobalRSS serializes the newest published articles into the main
// RSS 2.0 feed. Callers pass the already-filtered, newest-first set.
func BuildGlobalRSS(cfg SiteConfig, articles []Article, now time.Time) rssXML {
	items := make([]rssItem, 0, len(articles))
	for _, a := range articles {
		link := cfg.URL + a.Link()
		thumb := ImageURL(cfg, a.Image)
		clean := Truncate(StripTags(a.Content), 300)
		desc := fmt.Sprintf(
			`<img src="%s" width="320" height="180" style="object-fit:cover;" /><br/><p>%s...</p><p><strong>Kategori:</strong> %s</p>`,
			thumb, clean, strings.Join(a.Category, ", "))
		items = append(items, rssItem{
			Title:       cdata{a.Title},
			Link:        link,
			GUID:        rssGUID{IsPermaLink: "true", Value: link},
			Description: cdata{desc},
			Media: &mediaContent{
				URL:    thumb,
				Medium: "image",
				Title:  mediaTitle{Type: "plain", Text: a.Title},
			},
			PubDate: a.CreatedAt.UTC().Format(http.TimeFormat),
		})
	}
	return rssXML{
		Version:    "2.0",
		XMLNSAtom:  "http://www.w3.org/2005/Atom",
		XMLNSMedia: "http://search.yahoo.com/mrss/",
		Channel: rssChannel{
			Title:         cfg.Name + " - Berita Terbaru",
			Link:          cfg.URL,
			Description:   "Update berita Anime, Manga, dan Game terbaru.",
			Language:      cfg.Language,
			LastBuildDate: now.UTC().Format(http.TimeFormat),
			AtomLink: atomLink{
				Href: cfg.URL + "/rss",
				Rel:  "self",
				Type: "application/rss+xml",
			},
			Items: items,
		},
	}
}

// BuildCategoryRSS serializes a single category's published articles.
// The category name is the humanized form of the URL slug.
func BuildCategoryRSS(cfg SiteConfig, slug string, articles []Article) rssXML {
	name := strings.ReplaceAll(slug, "-", " ")
	items := make([]rssItem, 0, len(articles))
	for _, a := range articles {
		link := cfg.URL + a.Link()
		thumb := ImageURL(cfg, a.Image)
		desc := fmt.Sprintf(`<img src="%s" width="300" /><br/>%s...`,
			thumb, Truncate(StripTags(a.Content), 200))
		items = append(items, rssItem{
			Title:       cdata{a.Title},
			Link:        link,
			GUID:        rssGUID{Value: link},
			Description: cdata{desc},
			PubDate:     a.CreatedAt.UTC().Format(http.TimeFormat),
		})
	}
	return rssXML{
		Version:   "2.0",
		XMLNSAtom: "http://www.w3.org/2005/Atom",
		Channel: rssChannel{
			Title:       "Berita Kategori: " + strings.ToUpper(name),
			Link:        cfg.URL + "/category/" + slug,
			Description: "Feed terbaru seputar " + name,
			Language:    cfg.Language,
			AtomLink: atomLink{
				Href: cfg.URL + "/rss/category/" + slug,
				Rel:  "self",
				Type: "application/rss+xml",
			},
			Items: items,
		},
	}
}

func writeXML(c echo.Context, doc any) error {
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(doc)
}
