package newsroom

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// ErrEmptySlug is returned when neither the explicit slug nor the title
// yields any slug characters.
var ErrEmptySlug = errors.New("newsroom: empty slug")

// Slugify converts text to a URL-safe slug: lowercase, diacritics stripped
// so accented letters keep their base letter ("Pokémon" → "pokemon"), ASCII
// alphanumerics kept, every other run of characters collapsed to a single
// hyphen.
func Slugify(s string) string {
	s = norm.NFD.String(strings.ToLower(strings.TrimSpace(s)))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		case unicode.Is(unicode.Mn, r):
			// combining mark left over from the decomposition; the base
			// letter has already been written
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// AssignSlug derives a unique slug from the explicit input, falling back to
// the title. A collision with any other article (excludeID is skipped, pass 0
// on create) gets a unix-millisecond suffix. The store's unique slug index
// backstops the check when two identical candidates race in the same
// millisecond.
func AssignSlug(store *Store, explicit, title string, excludeID int64) (string, error) {
	candidate := Slugify(explicit)
	if candidate == "" {
		candidate = Slugify(title)
	}
	if candidate == "" {
		return "", ErrEmptySlug
	}
	taken, err := store.SlugTaken(candidate, excludeID)
	if err != nil {
		return "", err
	}
	if taken {
		candidate = fmt.Sprintf("%s-%d", candidate, time.Now().UnixMilli())
	}
	return candidate, nil
}
