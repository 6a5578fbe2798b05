// Command newsroom runs a newsroom site with plain placeholder views.
// Real deployments provide their own templ components via ViewFuncs; this
// binary exists to boot the engine against a fresh database and exercise
// the full route surface.
package main

import (
	"context"
	"fmt"
	"html"
	"io"
	"log"
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/newsroom"
)

func main() {
	cfg, err := newsroom.LoadConfig()
	if err != nil {
		log.Fatalf("newsroom: load config: %v", err)
	}

	app := newsroom.New(cfg, placeholderViews(cfg))
	defer app.Close()

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}

// page renders a minimal HTML document with the metadata applied.
func page(meta newsroom.PageMeta, body string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<!doctype html><html><head><title>%s</title><meta name="description" content="%s"><meta name="robots" content="%s"><link rel="canonical" href="%s"></head><body>%s</body></html>`,
			html.EscapeString(meta.Title), html.EscapeString(meta.Description),
			html.EscapeString(meta.Robots), html.EscapeString(meta.Canonical), body)
		return err
	})
}

func articleList(articles []newsroom.Article) string {
	var b strings.Builder
	b.WriteString("<ul>")
	for _, a := range articles {
		fmt.Fprintf(&b, `<li><a href="%s">%s</a></li>`, a.Link(), html.EscapeString(a.Title))
	}
	b.WriteString("</ul>")
	return b.String()
}

func placeholderViews(cfg newsroom.SiteConfig) newsroom.ViewFuncs {
	return newsroom.ViewFuncs{
		Home: func(headline *newsroom.Article, articles []newsroom.Article, meta newsroom.PageMeta) templ.Component {
			body := "<h1>" + html.EscapeString(cfg.Name) + "</h1>"
			if headline != nil {
				body += fmt.Sprintf(`<h2><a href="%s">%s</a></h2>`, headline.Link(), html.EscapeString(headline.Title))
			}
			return page(meta, body+articleList(articles))
		},
		Article: func(a newsroom.Article, related, sidebar []newsroom.Article, meta newsroom.PageMeta) templ.Component {
			return page(meta, "<article><h1>"+html.EscapeString(a.Title)+"</h1>"+a.Content+"</article>")
		},
		Category: func(name, slug string, articles, sidebar []newsroom.Article, meta newsroom.PageMeta) templ.Component {
			return page(meta, "<h1>"+html.EscapeString(name)+"</h1>"+articleList(articles))
		},
		Tag: func(name string, articles, sidebar []newsroom.Article, meta newsroom.PageMeta) templ.Component {
			return page(meta, "<h1>#"+html.EscapeString(name)+"</h1>"+articleList(articles))
		},
		Search: func(query string, articles []newsroom.Article, meta newsroom.PageMeta) templ.Component {
			return page(meta, "<h1>Pencarian: "+html.EscapeString(query)+"</h1>"+articleList(articles))
		},
		Static: func(name string, meta newsroom.PageMeta) templ.Component {
			return page(meta, "<h1>"+html.EscapeString(meta.Title)+"</h1>")
		},
		AdminLogin: func(errorMsg, csrfToken string) templ.Component {
			body := `<form method="post" action="/admin/login">` +
				`<input type="hidden" name="_csrf" value="` + html.EscapeString(csrfToken) + `">` +
				`<input name="username" placeholder="Username">` +
				`<input type="password" name="password" placeholder="Password">` +
				`<button>Login</button></form>`
			if errorMsg != "" {
				body = "<p>" + html.EscapeString(errorMsg) + "</p>" + body
			}
			return page(newsroom.PageMeta{Title: "Admin Login"}, body)
		},
		AdminDashboard: func(articles []newsroom.Article, msg, csrfToken string) templ.Component {
			body := `<h1>Dashboard</h1><p><a href="/admin/post">Tulis Berita</a></p>` + articleList(articles)
			if msg != "" {
				body = "<p>" + html.EscapeString(msg) + "</p>" + body
			}
			return page(newsroom.PageMeta{Title: "Admin"}, body)
		},
		AdminForm: func(a *newsroom.Article, csrfToken string) templ.Component {
			action := "/admin/post"
			title := ""
			if a != nil {
				action = fmt.Sprintf("/admin/edit/%d", a.ID)
				title = a.Title
			}
			body := `<form method="post" action="` + action + `" enctype="multipart/form-data">` +
				`<input type="hidden" name="_csrf" value="` + html.EscapeString(csrfToken) + `">` +
				`<input name="title" value="` + html.EscapeString(title) + `">` +
				`<input name="slug"><textarea name="content"></textarea>` +
				`<input name="category"><input name="tags">` +
				`<input name="seoDescription"><input type="file" name="image">` +
				`<select name="status"><option>published</option><option>draft</option></select>` +
				`<button>Simpan</button></form>`
			return page(newsroom.PageMeta{Title: "Editor"}, body)
		},
		NotFound: func(meta newsroom.PageMeta) templ.Component {
			return page(meta, "<h1>404</h1><p>"+html.EscapeString(meta.Description)+"</p>")
		},
		ServerError: func() templ.Component {
			return page(newsroom.PageMeta{Title: "Error"}, "<h1>500</h1>")
		},
	}
}
