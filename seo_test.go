package newsroom

import (
	"strings"
	"testing"
	"time"
)

func testConfig() SiteConfig {
	cfg := SiteConfig{
		Name: "AnimeNews ID",
		URL:  "https://news.example.com",
	}
	cfg.setDefaults()
	return cfg
}

func TestMetaDescriptionOverride(t *testing.T) {
	a := Article{Content: "<p>Panjang sekali.</p>", SEODescription: "Deskripsi khusus."}
	if got := MetaDescription(a); got != "Deskripsi khusus." {
		t.Errorf("MetaDescription = %q, want the explicit override", got)
	}
}

func TestMetaDescriptionTruncatesStrippedContent(t *testing.T) {
	a := Article{Content: strings.Repeat("<p>Hello <b>World</b></p>", 30)}
	got := MetaDescription(a)

	stripped := strings.Repeat("Hello World", 30)
	want := stripped[:155] + "..."
	if got != want {
		t.Errorf("MetaDescription = %q, want first 155 chars of stripped text plus ellipsis", got)
	}
	if strings.Contains(got, "<") {
		t.Errorf("MetaDescription should contain no tags: %q", got)
	}
}

func TestDefaultMeta(t *testing.T) {
	cfg := testConfig()
	m := DefaultMeta(cfg, "/about")

	if m.Title != cfg.Name {
		t.Errorf("Title = %q, want site name", m.Title)
	}
	if m.Robots != RobotsDefault {
		t.Errorf("Robots = %q, want default directive", m.Robots)
	}
	if m.Canonical != "https://news.example.com/about" {
		t.Errorf("Canonical = %q", m.Canonical)
	}
	if m.OGType != "website" {
		t.Errorf("OGType = %q, want website", m.OGType)
	}
	if m.OGImage != "https://news.example.com/img/default-cover.jpg" {
		t.Errorf("OGImage = %q, want site default cover", m.OGImage)
	}
}

func TestHomeMetaUsesHeadlineImage(t *testing.T) {
	cfg := testConfig()
	headline := Article{Image: "https://cdn.example.com/cover.jpg"}

	m := HomeMeta(cfg, &headline)
	if m.OGImage != "https://cdn.example.com/cover.jpg" {
		t.Errorf("OGImage = %q, want headline image", m.OGImage)
	}

	m = HomeMeta(cfg, nil)
	if m.OGImage != cfg.DefaultCover() {
		t.Errorf("OGImage without headline = %q, want default cover", m.OGImage)
	}
}

func TestArticleMeta(t *testing.T) {
	cfg := testConfig()
	a := Article{
		Title:     "Berita Besar",
		Slug:      "berita-besar",
		Image:     "legacy.jpg",
		Content:   "<p>Isi berita.</p>",
		Category:  []string{"Anime", "Manga"},
		Tags:      []string{"one piece", "luffy"},
		CreatedAt: time.Date(2026, 8, 27, 10, 30, 0, 0, time.UTC),
	}
	m := ArticleMeta(cfg, a)

	if m.Title != "Berita Besar | AnimeNews ID" {
		t.Errorf("Title = %q", m.Title)
	}
	if m.Canonical != "https://news.example.com/read/berita-besar" {
		t.Errorf("Canonical = %q", m.Canonical)
	}
	if m.OGType != "article" {
		t.Errorf("OGType = %q, want article", m.OGType)
	}
	if m.OGImage != "https://news.example.com/uploads/legacy.jpg" {
		t.Errorf("OGImage = %q, want legacy filename resolved under /uploads/", m.OGImage)
	}
	if m.Keywords != "one piece, luffy" {
		t.Errorf("Keywords = %q", m.Keywords)
	}
	if m.PublishedAt != "2026-08-27T10:30:00.000+07:00" {
		t.Errorf("PublishedAt = %q, want fixed +07:00 offset", m.PublishedAt)
	}
	wantSections := []string{"Anime", "Manga", "Artikel"}
	if len(m.Sections) != len(wantSections) {
		t.Fatalf("Sections = %v, want %v", m.Sections, wantSections)
	}
	for i := range wantSections {
		if m.Sections[i] != wantSections[i] {
			t.Errorf("Sections[%d] = %q, want %q", i, m.Sections[i], wantSections[i])
		}
	}
}

func TestCategoryAndTagMeta(t *testing.T) {
	cfg := testConfig()

	m := CategoryMeta(cfg, "video-game")
	if m.Title != "Berita Kategori Video Game | AnimeNews ID" {
		t.Errorf("category Title = %q", m.Title)
	}
	if m.Robots != RobotsDefault {
		t.Errorf("category pages should be indexable, got %q", m.Robots)
	}

	m = TagMeta(cfg, "one-piece")
	if m.Title != "Topik #One Piece | AnimeNews ID" {
		t.Errorf("tag Title = %q", m.Title)
	}
}

func TestNoindexRoutes(t *testing.T) {
	cfg := testConfig()

	cases := []PageMeta{
		SearchMeta(cfg, "naruto"),
		StaticMeta(cfg, "/privacy-policy", "Kebijakan Privasi", "", true),
		StaticMeta(cfg, "/disclaimer", "Disclaimer", "", true),
		NotFoundMeta(cfg, "/missing"),
	}
	for i, m := range cases {
		if m.Robots != RobotsNoindex {
			t.Errorf("case %d: Robots = %q, want %q", i, m.Robots, RobotsNoindex)
		}
	}
}

func TestSearchMetaEchoesQuery(t *testing.T) {
	cfg := testConfig()
	m := SearchMeta(cfg, "demon slayer")

	if !strings.Contains(m.Title, "demon slayer") {
		t.Errorf("Title = %q, should echo the query", m.Title)
	}
	if m.Canonical != "https://news.example.com/search?q=demon+slayer" {
		t.Errorf("Canonical = %q", m.Canonical)
	}
}

func TestFormatPublished(t *testing.T) {
	got := FormatPublished(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	if got != "2026-01-02T03:04:05.000+07:00" {
		t.Errorf("FormatPublished = %q", got)
	}
}
