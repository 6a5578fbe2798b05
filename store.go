package newsroom

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// timeFormat is the fixed-width UTC layout used for created_at so that
// lexical ordering in SQL matches chronological ordering.
const timeFormat = "2006-01-02T15:04:05.000Z07:00"

// Store wraps a SQLite database and provides CRUD operations for articles.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Enable WAL mode for concurrent read/write access, set a busy timeout
	// so writers wait instead of returning SQLITE_BUSY immediately, and tune
	// performance: synchronous=NORMAL is safe with WAL and avoids an fsync
	// per transaction; larger cache and mmap reduce disk I/O.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
		PRAGMA mmap_size=268435456;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS articles (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    slug TEXT NOT NULL,
    image TEXT NOT NULL DEFAULT 'default.jpg',
    content TEXT NOT NULL,
    category TEXT NOT NULL DEFAULT ',,',
    tags TEXT NOT NULL DEFAULT ',,',
    status TEXT NOT NULL DEFAULT 'published',
    seo_description TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_articles_slug ON articles (slug);
CREATE INDEX IF NOT EXISTS idx_articles_status_created ON articles (status, created_at DESC);
`)
	return err
}

const articleColumns = `id, title, slug, image, content, category, tags, status, seo_description, created_at`

func (s *Store) query(q string, args ...any) ([]Article, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []Article
	for rows.Next() {
		var a Article
		var category, tags, createdAt string
		if err := rows.Scan(&a.ID, &a.Title, &a.Slug, &a.Image, &a.Content,
			&category, &tags, &a.Status, &a.SEODescription, &createdAt); err != nil {
			return nil, err
		}
		a.Category = splitLabels(category)
		a.Tags = splitLabels(tags)
		if t, err := time.Parse(timeFormat, createdAt); err == nil {
			a.CreatedAt = t
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

func (s *Store) queryOne(q string, args ...any) (Article, error) {
	articles, err := s.query(q, args...)
	if err != nil {
		return Article{}, err
	}
	if len(articles) == 0 {
		return Article{}, sql.ErrNoRows
	}
	return articles[0], nil
}

// Create inserts a new article, assigning its id and, when unset, its
// creation timestamp. The unique slug index rejects duplicate slugs that
// slip past the pre-write collision check.
func (s *Store) Create(a *Article) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	res, err := s.db.Exec(`INSERT INTO articles (title, slug, image, content, category, tags, status, seo_description, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.Title, a.Slug, a.Image, a.Content, joinLabels(a.Category), joinLabels(a.Tags),
		a.Status, a.SEODescription, a.CreatedAt.UTC().Format(timeFormat))
	if err != nil {
		return err
	}
	a.ID, err = res.LastInsertId()
	return err
}

// Update rewrites every mutable field of an existing article. CreatedAt is
// deliberately left untouched; it is the sole recency key.
func (s *Store) Update(a Article) error {
	_, err := s.db.Exec(`UPDATE articles SET title = ?, slug = ?, image = ?, content = ?, category = ?, tags = ?, status = ?, seo_description = ? WHERE id = ?`,
		a.Title, a.Slug, a.Image, a.Content, joinLabels(a.Category), joinLabels(a.Tags),
		a.Status, a.SEODescription, a.ID)
	return err
}

// Delete removes an article by id.
func (s *Store) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM articles WHERE id = ?`, id)
	return err
}

// GetByID returns an article regardless of status (admin paths).
func (s *Store) GetByID(id int64) (Article, error) {
	return s.queryOne(`SELECT `+articleColumns+` FROM articles WHERE id = ?`, id)
}

// GetBySlug returns a single published article by slug.
func (s *Store) GetBySlug(slug string) (Article, error) {
	return s.queryOne(`SELECT `+articleColumns+` FROM articles WHERE slug = ? AND status = ?`, slug, StatusPublished)
}

// SlugTaken reports whether any article other than excludeID already owns
// the slug. Pass excludeID 0 on create.
func (s *Store) SlugTaken(slug string, excludeID int64) (bool, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM articles WHERE slug = ? AND id != ?`, slug, excludeID).Scan(&n)
	return n > 0, err
}

// ListPublished returns published articles newest first. A limit <= 0 means
// no limit; skip supports the load-more API.
func (s *Store) ListPublished(skip, limit int) ([]Article, error) {
	if limit <= 0 {
		limit = -1
	}
	return s.query(`SELECT `+articleColumns+` FROM articles WHERE status = ? ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		StatusPublished, limit, skip)
}

// ListAll returns every article including drafts, newest first (admin).
func (s *Store) ListAll() ([]Article, error) {
	return s.query(`SELECT ` + articleColumns + ` FROM articles ORDER BY created_at DESC`)
}

// ListByCategory returns published articles carrying the category,
// matched case-insensitively on the human-readable name.
func (s *Store) ListByCategory(name string, limit int) ([]Article, error) {
	if limit <= 0 {
		limit = -1
	}
	needle := "," + strings.ToLower(strings.TrimSpace(name)) + ","
	return s.query(`SELECT `+articleColumns+` FROM articles WHERE status = ? AND instr(lower(category), ?) > 0 ORDER BY created_at DESC LIMIT ?`,
		StatusPublished, needle, limit)
}

// ListByTag returns published articles carrying the tag,
// matched case-insensitively on the human-readable name.
func (s *Store) ListByTag(name string, limit int) ([]Article, error) {
	if limit <= 0 {
		limit = -1
	}
	needle := "," + strings.ToLower(strings.TrimSpace(name)) + ","
	return s.query(`SELECT `+articleColumns+` FROM articles WHERE status = ? AND instr(lower(tags), ?) > 0 ORDER BY created_at DESC LIMIT ?`,
		StatusPublished, needle, limit)
}

// SearchTitle returns published articles whose title contains q,
// case-insensitive, newest first.
func (s *Store) SearchTitle(q string) ([]Article, error) {
	return s.query(`SELECT `+articleColumns+` FROM articles WHERE status = ? AND instr(lower(title), ?) > 0 ORDER BY created_at DESC`,
		StatusPublished, strings.ToLower(q))
}

// ListRelated returns published articles sharing at least one category with
// a, excluding a itself.
func (s *Store) ListRelated(a Article, limit int) ([]Article, error) {
	articles, err := s.query(`SELECT `+articleColumns+` FROM articles WHERE status = ? AND id != ? ORDER BY created_at DESC`,
		StatusPublished, a.ID)
	if err != nil {
		return nil, err
	}
	want := make(map[string]struct{}, len(a.Category))
	for _, c := range a.Category {
		want[strings.ToLower(strings.TrimSpace(c))] = struct{}{}
	}
	var related []Article
	for _, other := range articles {
		for _, c := range other.Category {
			if _, ok := want[strings.ToLower(strings.TrimSpace(c))]; ok {
				related = append(related, other)
				break
			}
		}
		if limit > 0 && len(related) == limit {
			break
		}
	}
	return related, nil
}

// ListCreatedSince returns published articles created at or after cutoff,
// newest first, for the news sitemap.
func (s *Store) ListCreatedSince(cutoff time.Time, limit int) ([]Article, error) {
	if limit <= 0 {
		limit = -1
	}
	return s.query(`SELECT `+articleColumns+` FROM articles WHERE status = ? AND created_at >= ? ORDER BY created_at DESC LIMIT ?`,
		StatusPublished, cutoff.UTC().Format(timeFormat), limit)
}

// joinLabels encodes a label list as a comma-wrapped string (",a,b,") so
// that instr can do exact token matches. Original casing is preserved;
// matching lowercases both sides.
func joinLabels(labels []string) string {
	return "," + strings.Join(FilterEmpty(labels), ",") + ","
}

// splitLabels decodes a comma-wrapped label string back into a slice.
func splitLabels(s string) []string {
	s = strings.Trim(s, ",")
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
