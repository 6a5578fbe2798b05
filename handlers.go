package newsroom

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	homePageSize     = 13
	loadMorePageSize = 6
	sidebarSize      = 10
	relatedSize      = 3
)

func (a *App) handleHome(c echo.Context) error {
	articles, err := a.Cache.ListPublished(0, homePageSize)
	if err != nil {
		return err
	}
	var headline *Article
	var list []Article
	if len(articles) > 0 {
		headline = &articles[0]
		list = articles[1:]
	}
	return Render(c, a.Views.Home(headline, list, HomeMeta(a.Config, headline)))
}

func (a *App) handleArticle(c echo.Context) error {
	slug := c.Param("slug")
	article, err := a.Cache.GetBySlug(slug)
	if err != nil {
		if err == ErrNotFound {
			return a.renderNotFound(c)
		}
		return err
	}
	related, err := a.Store.ListRelated(article, relatedSize)
	if err != nil {
		return err
	}
	sidebar, err := a.sidebar(article.ID)
	if err != nil {
		return err
	}
	return Render(c, a.Views.Article(article, related, sidebar, ArticleMeta(a.Config, article)))
}

func (a *App) handleCategory(c echo.Context) error {
	slug := c.Param("slug")
	name := HumanizeSlug(slug)
	articles, err := a.Store.ListByCategory(name, 0)
	if err != nil {
		return err
	}
	sidebar, err := a.sidebar(0)
	if err != nil {
		return err
	}
	return Render(c, a.Views.Category(name, slug, articles, sidebar, CategoryMeta(a.Config, slug)))
}

func (a *App) handleTag(c echo.Context) error {
	slug := c.Param("slug")
	name := HumanizeSlug(slug)
	articles, err := a.Store.ListByTag(name, 0)
	if err != nil {
		return err
	}
	sidebar, err := a.sidebar(0)
	if err != nil {
		return err
	}
	return Render(c, a.Views.Tag(name, articles, sidebar, TagMeta(a.Config, slug)))
}

func (a *App) handleSearch(c echo.Context) error {
	query := c.QueryParam("q")
	var articles []Article
	if query != "" {
		var err error
		articles, err = a.Store.SearchTitle(query)
		if err != nil {
			return err
		}
	}
	return Render(c, a.Views.Search(query, articles, SearchMeta(a.Config, query)))
}

func (a *App) handleLoadMore(c echo.Context) error {
	skip, _ := strconv.Atoi(c.QueryParam("skip"))
	if skip < 0 {
		skip = 0
	}
	articles, err := a.Cache.ListPublished(skip, loadMorePageSize)
	if err != nil {
		return err
	}
	if articles == nil {
		articles = []Article{}
	}
	return c.JSON(http.StatusOK, articles)
}

func (a *App) handleRSS(c echo.Context) error {
	articles, err := a.Cache.ListPublished(0, GlobalFeedLimit)
	if err != nil {
		return err
	}
	return writeXML(c, BuildGlobalRSS(a.Config, articles, time.Now()))
}

func (a *App) handleCategoryRSS(c echo.Context) error {
	slug := c.Param("slug")
	articles, err := a.Store.ListByCategory(HumanizeSlug(slug), CategoryFeedLimit)
	if err != nil {
		return err
	}
	return writeXML(c, BuildCategoryRSS(a.Config, slug, articles))
}

func (a *App) handleSitemap(c echo.Context) error {
	articles, err := a.Cache.ListPublished(0, 0)
	if err != nil {
		return err
	}
	return writeXML(c, BuildSitemap(a.Config, articles))
}

func (a *App) handleNewsSitemap(c echo.Context) error {
	cutoff := time.Now().Add(-NewsWindow)
	articles, err := a.Cache.ListCreatedSince(cutoff, NewsSitemapLimit)
	if err != nil {
		return err
	}
	return writeXML(c, BuildNewsSitemap(a.Config, articles))
}

func (a *App) handleAbout(c echo.Context) error {
	meta := StaticMeta(a.Config, "/about", "Tentang Kami",
		"Informasi tentang redaksi, visi, dan misi kami.", false)
	return Render(c, a.Views.Static("about", meta))
}

func (a *App) handleContact(c echo.Context) error {
	meta := StaticMeta(a.Config, "/contact", "Hubungi Redaksi",
		"Kontak kerjasama, media partner, dan laporan berita.", false)
	return Render(c, a.Views.Static("contact", meta))
}

func (a *App) handlePrivacy(c echo.Context) error {
	meta := StaticMeta(a.Config, "/privacy-policy", "Kebijakan Privasi", "", true)
	return Render(c, a.Views.Static("privacy-policy", meta))
}

func (a *App) handleDisclaimer(c echo.Context) error {
	meta := StaticMeta(a.Config, "/disclaimer", "Disclaimer", "", true)
	return Render(c, a.Views.Static("disclaimer", meta))
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.ico")
}

func (a *App) handleRobots(c echo.Context) error {
	return c.File(a.staticDir + "/robots.txt")
}

// sidebar returns the newest published articles for the side column,
// excluding the article being read (pass 0 to exclude nothing).
func (a *App) sidebar(excludeID int64) ([]Article, error) {
	articles, err := a.Cache.ListPublished(0, sidebarSize+1)
	if err != nil {
		return nil, err
	}
	out := make([]Article, 0, sidebarSize)
	for _, art := range articles {
		if art.ID == excludeID {
			continue
		}
		out = append(out, art)
		if len(out) == sidebarSize {
			break
		}
	}
	return out, nil
}

func (a *App) renderNotFound(c echo.Context) error {
	meta := NotFoundMeta(a.Config, c.Request().URL.Path)
	return RenderStatus(c, http.StatusNotFound, a.Views.NotFound(meta))
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = a.renderNotFound(c)
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
