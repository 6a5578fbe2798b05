package newsroom

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"
)

func feedArticles() []Article {
	return []Article{
		{
			Title:     "Judul <Spesial> & Unik",
			Slug:      "judul-spesial",
			Image:     "https://cdn.example.com/a.jpg",
			Content:   "<p>Isi berita pertama.</p>",
			Category:  []string{"Anime"},
			Status:    StatusPublished,
			CreatedAt: time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC),
		},
		{
			Title:     "Berita Kedua",
			Slug:      "berita-kedua",
			Image:     "legacy.jpg",
			Content:   "<p>Isi berita kedua.</p>",
			Category:  []string{"Manga", "Anime"},
			Status:    StatusPublished,
			CreatedAt: time.Date(2026, 8, 26, 9, 0, 0, 0, time.UTC),
		},
	}
}

func TestBuildGlobalRSS(t *testing.T) {
	cfg := testConfig()
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	feed := BuildGlobalRSS(cfg, feedArticles(), now)

	if feed.Version != "2.0" {
		t.Errorf("Version = %q", feed.Version)
	}
	if len(feed.Channel.Items) != 2 {
		t.Fatalf("item count = %d, want 2", len(feed.Channel.Items))
	}

	item := feed.Channel.Items[0]
	if item.Link != "https://news.example.com/read/judul-spesial" {
		t.Errorf("Link = %q", item.Link)
	}
	if item.GUID.IsPermaLink != "true" || item.GUID.Value != item.Link {
		t.Errorf("GUID = %+v, want permalink guid equal to link", item.GUID)
	}
	if item.PubDate != "Thu, 27 Aug 2026 09:00:00 GMT" {
		t.Errorf("PubDate = %q, want RFC-1123 GMT", item.PubDate)
	}
	if item.Media == nil || item.Media.URL != "https://cdn.example.com/a.jpg" {
		t.Errorf("Media = %+v", item.Media)
	}
	if !strings.Contains(item.Description.Text, "Kategori:</strong> Anime") {
		t.Errorf("Description should list categories: %q", item.Description.Text)
	}
	if strings.Contains(item.Description.Text, "<p>Isi") {
		t.Errorf("Description body should be tag-stripped: %q", item.Description.Text)
	}

	// Legacy bare filename resolves under the site's upload path.
	if !strings.Contains(feed.Channel.Items[1].Description.Text, "https://news.example.com/uploads/legacy.jpg") {
		t.Errorf("legacy image not resolved: %q", feed.Channel.Items[1].Description.Text)
	}
}

func TestGlobalRSSMarshalsCDATA(t *testing.T) {
	cfg := testConfig()
	feed := BuildGlobalRSS(cfg, feedArticles(), time.Now())

	out, err := xml.Marshal(feed)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	s := string(out)
	if !strings.Contains(s, "<![CDATA[Judul <Spesial> & Unik]]>") {
		t.Errorf("title should be CDATA-wrapped, got: %s", s)
	}
	if strings.Contains(s, "&lt;Spesial&gt;") {
		t.Errorf("title must not be entity-escaped: %s", s)
	}
	if !strings.Contains(s, `xmlns:media="http://search.yahoo.com/mrss/"`) {
		t.Errorf("missing media namespace: %s", s)
	}
	if !strings.Contains(s, `<atom:link href="https://news.example.com/rss" rel="self"`) {
		t.Errorf("missing atom self link: %s", s)
	}
}

func TestBuildCategoryRSS(t *testing.T) {
	cfg := testConfig()
	feed := BuildCategoryRSS(cfg, "video-game", feedArticles())

	if feed.Channel.Title != "Berita Kategori: VIDEO GAME" {
		t.Errorf("Title = %q", feed.Channel.Title)
	}
	if feed.Channel.Link != "https://news.example.com/category/video-game" {
		t.Errorf("Link = %q", feed.Channel.Link)
	}
	if feed.Channel.AtomLink.Href != "https://news.example.com/rss/category/video-game" {
		t.Errorf("AtomLink = %q", feed.Channel.AtomLink.Href)
	}
	for _, item := range feed.Channel.Items {
		if item.Media != nil {
			t.Errorf("category feed items carry no media block: %+v", item)
		}
		if item.GUID.IsPermaLink != "" {
			t.Errorf("category guid has no isPermaLink attr: %+v", item.GUID)
		}
	}
}
