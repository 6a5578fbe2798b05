package newsroom

import (
	"database/sql"
	"sync"
	"time"
)

// ErrNotFound is returned when a requested article does not exist.
var ErrNotFound = sql.ErrNoRows

// ArticleCache is an in-memory cache of the published article set with TTL.
// It serves the read-heavy public routes and feed generators; admin writes
// invalidate it.
type ArticleCache struct {
	mu       sync.RWMutex
	articles []Article
	fetched  time.Time
	ttl      time.Duration
	store    *Store
}

// NewArticleCache creates an ArticleCache backed by the given Store.
func NewArticleCache(s *Store, ttl time.Duration) *ArticleCache {
	return &ArticleCache{store: s, ttl: ttl}
}

func (c *ArticleCache) valid() bool {
	return c.articles != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *ArticleCache) Invalidate() {
	c.mu.Lock()
	c.articles = nil
	c.mu.Unlock()
}

// ensureLoaded returns the cached published set after ensuring freshness.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *ArticleCache) ensureLoaded() ([]Article, error) {
	c.mu.RLock()
	if c.valid() {
		articles := c.articles
		c.mu.RUnlock()
		return articles, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.articles, nil
	}
	articles, err := c.store.ListPublished(0, 0)
	if err != nil {
		return nil, err
	}
	c.articles = articles
	c.fetched = time.Now()
	return c.articles, nil
}

// ListPublished returns published articles newest first, windowed by skip
// and limit. A limit <= 0 means no limit.
func (c *ArticleCache) ListPublished(skip, limit int) ([]Article, error) {
	articles, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	if skip >= len(articles) {
		return nil, nil
	}
	articles = articles[skip:]
	if limit > 0 && len(articles) > limit {
		articles = articles[:limit]
	}
	return articles, nil
}

// GetBySlug returns a single published article by slug from the cache.
func (c *ArticleCache) GetBySlug(slug string) (Article, error) {
	articles, err := c.ensureLoaded()
	if err != nil {
		return Article{}, err
	}
	for _, a := range articles {
		if a.Slug == slug {
			return a, nil
		}
	}
	return Article{}, ErrNotFound
}

// ListCreatedSince returns published articles created at or after cutoff,
// capped at limit.
func (c *ArticleCache) ListCreatedSince(cutoff time.Time, limit int) ([]Article, error) {
	articles, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	var recent []Article
	for _, a := range articles {
		if a.CreatedAt.Before(cutoff) {
			continue
		}
		recent = append(recent, a)
		if limit > 0 && len(recent) == limit {
			break
		}
	}
	return recent, nil
}
