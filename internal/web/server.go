package web

import (
	"html/template"

	"github.com/maxapp/site-backend/internal/i18n"
)

// Server renders the public and admin pages. Layout and styling live in the
// frontend; these templates are the minimal server-rendered shell.
type Server struct {
	Catalog   *i18n.Catalog
	VideosDir string
	templates map[string]*template.Template
}

const pageTmpl = `<!DOCTYPE html>
<html lang="{{.Locale}}">
<head>
<meta charset="utf-8">
<title>{{.Title}} | {{.SiteTitle}}</title>
</head>
<body>
<header><h1>{{.Title}}</h1></header>
<nav>
<a href="/{{.Locale}}">{{.NavHome}}</a>
<a href="/{{.Locale}}/privacy-policy">{{.NavPrivacy}}</a>
<a href="/{{.Locale}}/cookie-policy">{{.NavCookies}}</a>
<a href="/{{.Locale}}/terms-of-service">{{.NavTerms}}</a>
</nav>
<main>{{.Body}}</main>
</body>
</html>`

func NewServer(catalog *i18n.Catalog, videosDir string) *Server {
	return &Server{
		Catalog:   catalog,
		VideosDir: videosDir,
		templates: map[string]*template.Template{
			"page": template.Must(template.New("page").Parse(pageTmpl)),
		},
	}
}
