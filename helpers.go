package newsroom

import (
	"net/url"
	"path"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var tagStripper = regexp.MustCompile(`<[^>]+>`)

// StripTags removes all HTML tags from s, leaving the text content.
func StripTags(s string) string {
	return tagStripper.ReplaceAllString(s, "")
}

// Truncate returns at most n runes of s. Rune-based so multi-byte titles
// don't get cut mid-character.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// HumanizeSlug turns a URL slug back into a display name:
// hyphens become spaces and each word is capitalized.
func HumanizeSlug(slug string) string {
	words := strings.Split(strings.ReplaceAll(slug, "-", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// ImageURL resolves an article's stored image value to an absolute URL.
// Values already carrying an HTTP(S) scheme are used as-is; anything else is
// a legacy bare filename served from the site's /uploads/ path. Empty values
// and the sentinel default fall back to the site cover.
func ImageURL(cfg SiteConfig, image string) string {
	switch {
	case image == "" || image == DefaultImage:
		return cfg.DefaultCover()
	case strings.HasPrefix(image, "http://"), strings.HasPrefix(image, "https://"):
		return image
	default:
		return BuildURL(cfg.URL, "uploads", image)
	}
}

// BuildURL joins a base URL with path segments.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	return u.String()
}

// FilterEmpty removes empty/whitespace-only strings from a slice.
func FilterEmpty(vals []string) []string {
	var out []string
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}
