package newsroom

import (
	"context"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func (a *App) handleAdminLoginForm(c echo.Context) error {
	if IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin")
	}
	return Render(c, a.Views.AdminLogin("", CsrfToken(c)))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	if !a.loginLimiter.Check(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Terlalu banyak percobaan login. Coba lagi nanti.")
	}
	if a.auth.Authenticate(c.FormValue("username"), c.FormValue("password")) {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin")
	}
	a.loginLimiter.Record(c.RealIP())
	return Render(c, a.Views.AdminLogin("Username atau Password salah!", CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/login")
}

func (a *App) handleAdminDashboard(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/login")
	}
	return a.renderDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminNew(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/login")
	}
	return Render(c, a.Views.AdminForm(nil, CsrfToken(c)))
}

func (a *App) handleAdminCreate(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/login")
	}

	form, err := parseArticleForm(c)
	if err != nil {
		return err
	}
	slug, err := AssignSlug(a.Store, form.slug, form.title, 0)
	if err != nil {
		if err == ErrEmptySlug {
			return c.Redirect(http.StatusSeeOther, "/admin?msg=Judul+atau+slug+wajib+diisi")
		}
		return err
	}

	image := DefaultImage
	if form.file != nil {
		image, err = a.uploadImage(c, form.file)
		if err != nil {
			return c.String(http.StatusBadRequest, "Gagal mengunggah gambar: "+err.Error())
		}
	}

	article := Article{
		Title:          form.title,
		Slug:           slug,
		Image:          image,
		Content:        form.content,
		Category:       form.category,
		Tags:           form.tags,
		Status:         form.status,
		SEODescription: form.seoDescription,
	}
	if err := a.Store.Create(&article); err != nil {
		return err
	}
	a.Cache.Invalidate()

	if article.Published() {
		a.notifyIndexing(a.Config.URL+article.Link(), URLUpdated)
	}
	return c.Redirect(http.StatusSeeOther, "/admin")
}

func (a *App) handleAdminEditForm(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/login")
	}
	article, err := a.Store.GetByID(paramID(c))
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/admin")
	}
	return Render(c, a.Views.AdminForm(&article, CsrfToken(c)))
}

func (a *App) handleAdminEdit(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/login")
	}
	article, err := a.Store.GetByID(paramID(c))
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/admin")
	}

	form, err := parseArticleForm(c)
	if err != nil {
		return err
	}
	slug, err := AssignSlug(a.Store, form.slug, form.title, article.ID)
	if err != nil {
		if err == ErrEmptySlug {
			return c.Redirect(http.StatusSeeOther, "/admin?msg=Judul+atau+slug+wajib+diisi")
		}
		return err
	}

	if form.file != nil {
		newImage, err := a.uploadImage(c, form.file)
		if err != nil {
			return c.String(http.StatusBadRequest, "Gagal mengunggah gambar: "+err.Error())
		}
		a.deleteImageAsync(article.Image)
		article.Image = newImage
	}

	article.Title = form.title
	article.Slug = slug
	article.Content = form.content
	article.Category = form.category
	article.Tags = form.tags
	article.Status = form.status
	article.SEODescription = form.seoDescription
	if err := a.Store.Update(article); err != nil {
		return err
	}
	a.Cache.Invalidate()

	// A published edit refreshes the index entry; moving to draft asks for
	// removal from search results.
	pageURL := a.Config.URL + article.Link()
	if article.Published() {
		a.notifyIndexing(pageURL, URLUpdated)
	} else {
		a.notifyIndexing(pageURL, URLDeleted)
	}
	return c.Redirect(http.StatusSeeOther, "/admin")
}

func (a *App) handleAdminDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/login")
	}
	article, err := a.Store.GetByID(paramID(c))
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/admin")
	}

	a.deleteImageAsync(article.Image)
	if article.Published() {
		a.notifyIndexing(a.Config.URL+article.Link(), URLDeleted)
	}

	if err := a.Store.Delete(article.ID); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return c.Redirect(http.StatusSeeOther, "/admin")
}

func (a *App) handleAdminPing(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/login")
	}
	article, err := a.Store.GetByID(paramID(c))
	if err != nil || !article.Published() {
		return c.Redirect(http.StatusSeeOther, "/admin?msg=ping_failed_draft")
	}
	if a.indexer == nil {
		return c.Redirect(http.StatusSeeOther, "/admin?msg=ping_error")
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()
	if err := a.indexer.Notify(ctx, a.Config.URL+article.Link(), URLUpdated); err != nil {
		a.Logger.Error("manual indexing ping failed", zap.Error(err))
		return c.Redirect(http.StatusSeeOther, "/admin?msg=ping_error")
	}
	return c.Redirect(http.StatusSeeOther, "/admin?msg=ping_success")
}

func (a *App) renderDashboard(c echo.Context, msg string) error {
	articles, err := a.Store.ListAll()
	if err != nil {
		return err
	}
	return Render(c, a.Views.AdminDashboard(articles, msg, CsrfToken(c)))
}

// articleForm holds the parsed admin editor submission.
type articleForm struct {
	title          string
	slug           string
	content        string
	category       []string
	tags           []string
	status         string
	seoDescription string
	file           *multipart.FileHeader
}

func parseArticleForm(c echo.Context) (articleForm, error) {
	form := articleForm{
		title:          strings.TrimSpace(c.FormValue("title")),
		slug:           strings.TrimSpace(c.FormValue("slug")),
		content:        c.FormValue("content"),
		category:       ParseLabels(c.FormValue("category")),
		tags:           ParseLabels(c.FormValue("tags")),
		status:         c.FormValue("status"),
		seoDescription: strings.TrimSpace(c.FormValue("seoDescription")),
	}
	if form.status != StatusDraft {
		form.status = StatusPublished
	}
	if file, err := c.FormFile("image"); err == nil {
		form.file = file
	}
	return form, nil
}

// uploadImage processes the uploaded file and stores it in object storage,
// returning the public URL.
func (a *App) uploadImage(c echo.Context, file *multipart.FileHeader) (string, error) {
	if a.objects == nil {
		return "", echo.NewHTTPError(http.StatusServiceUnavailable, "object storage not configured")
	}
	if file.Size > maxUploadSize {
		return "", echo.NewHTTPError(http.StatusBadRequest, "file too large (max 10MB)")
	}
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	data, err := processImage(src)
	if err != nil {
		return "", err
	}
	key := imageKey(file.Filename, time.Now())
	return a.objects.Upload(c.Request().Context(), key, data, "image/jpeg")
}

// notifyIndexing pushes a URL notification in the background so the admin
// redirect never waits on Google. Failures are logged only.
func (a *App) notifyIndexing(pageURL, notifyType string) {
	if a.indexer == nil {
		a.Logger.Info("indexing notification skipped: credentials not set",
			zap.String("url", pageURL), zap.String("type", notifyType))
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := a.indexer.Notify(ctx, pageURL, notifyType); err != nil {
			a.Logger.Error("indexing notification failed",
				zap.String("url", pageURL), zap.String("type", notifyType), zap.Error(err))
			return
		}
		a.Logger.Info("indexing notification sent",
			zap.String("url", pageURL), zap.String("type", notifyType))
	}()
}

// deleteImageAsync removes a stored image in the background. Sentinel and
// legacy bare-filename values are skipped inside DeleteByURL.
func (a *App) deleteImageAsync(imageURL string) {
	if a.objects == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := a.objects.DeleteByURL(ctx, imageURL); err != nil {
			a.Logger.Error("image deletion failed", zap.String("image", imageURL), zap.Error(err))
		}
	}()
}

func paramID(c echo.Context) int64 {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	return id
}
