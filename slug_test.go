package newsroom

import (
	"regexp"
	"strings"
	"testing"
	"time"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Attack on Titan: Final Season!", "attack-on-titan-final-season"},
		{"Pokémon Légends", "pokemon-legends"},
		{"Café Review", "cafe-review"},
		{"Jürgen über Straße", "jurgen-uber-stra-e"},
		{"Hello World", "hello-world"},
		{"  Spaced  Out  ", "spaced-out"},
		{"UPPER case 123", "upper-case-123"},
		{"jujutsu---kaisen", "jujutsu-kaisen"},
		{"trailing punctuation?!", "trailing-punctuation"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestAssignSlugFromTitle(t *testing.T) {
	s := setupTestStore(t)

	slug, err := AssignSlug(s, "", "Attack on Titan: Final Season!", 0)
	if err != nil {
		t.Fatalf("AssignSlug failed: %v", err)
	}
	if slug != "attack-on-titan-final-season" {
		t.Errorf("slug = %q, want attack-on-titan-final-season", slug)
	}
}

func TestAssignSlugPrefersExplicit(t *testing.T) {
	s := setupTestStore(t)

	slug, err := AssignSlug(s, "Custom Slug Here", "Some Title", 0)
	if err != nil {
		t.Fatalf("AssignSlug failed: %v", err)
	}
	if slug != "custom-slug-here" {
		t.Errorf("slug = %q, want custom-slug-here", slug)
	}
}

func TestAssignSlugCollisionSuffix(t *testing.T) {
	s := setupTestStore(t)
	mustCreate(t, s, Article{Title: "Taken", Slug: "berita-baru", Content: "c"})

	slug, err := AssignSlug(s, "berita baru", "", 0)
	if err != nil {
		t.Fatalf("AssignSlug failed: %v", err)
	}
	if !regexp.MustCompile(`^berita-baru-\d{13}$`).MatchString(slug) {
		t.Errorf("slug = %q, want berita-baru-<13-digit unix ms>", slug)
	}
}

func TestAssignSlugEditKeepsOwnSlug(t *testing.T) {
	s := setupTestStore(t)
	a := mustCreate(t, s, Article{Title: "Mine", Slug: "my-slug", Content: "c"})

	slug, err := AssignSlug(s, "my slug", "", a.ID)
	if err != nil {
		t.Fatalf("AssignSlug failed: %v", err)
	}
	if slug != "my-slug" {
		t.Errorf("editing an article should keep its own slug, got %q", slug)
	}
}

func TestAssignSlugEmptyInput(t *testing.T) {
	s := setupTestStore(t)

	if _, err := AssignSlug(s, "", "!!!", 0); err != ErrEmptySlug {
		t.Errorf("expected ErrEmptySlug, got %v", err)
	}
	if _, err := AssignSlug(s, "", "", 0); err != ErrEmptySlug {
		t.Errorf("expected ErrEmptySlug, got %v", err)
	}
}

func TestAssignSlugUniqueAcrossSequence(t *testing.T) {
	s := setupTestStore(t)

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		// The collision suffix has millisecond resolution.
		time.Sleep(2 * time.Millisecond)
		slug, err := AssignSlug(s, "", "Judul Sama", 0)
		if err != nil {
			t.Fatalf("AssignSlug failed: %v", err)
		}
		if seen[slug] {
			t.Fatalf("duplicate slug %q produced", slug)
		}
		seen[slug] = true
		mustCreate(t, s, Article{Title: "Judul Sama", Slug: slug, Content: "c"})
		if !strings.HasPrefix(slug, "judul-sama") {
			t.Errorf("slug %q should derive from the title", slug)
		}
	}
}
