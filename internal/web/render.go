package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Pages rendered inside the shared layout.
const (
	PageHome         = "home"
	PageBook         = "book"
	PageConfirmation = "confirmation"
	PageNotFound     = "notfound"
)

var pages = []string{PageHome, PageBook, PageConfirmation, PageNotFound}

// Site is the practice identity printed in the header, footer and profile.
type Site struct {
	PracticeName      string
	PractitionerName  string
	PractitionerTitle string
}

// Page is the data every template receives. Content carries the
// page-specific view.
type Page struct {
	Site    Site
	Title   string
	Year    int
	Flash   string
	Content any
}

// Renderer executes the embedded page templates.
type Renderer struct {
	site  Site
	sets  map[string]*template.Template
	clock func() time.Time
}

// NewRenderer parses every page against the layout once at startup.
func NewRenderer(site Site) (*Renderer, error) {
	sets := make(map[string]*template.Template, len(pages))
	for _, name := range pages {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("web: parse %s: %w", name, err)
		}
		sets[name] = t
	}
	return &Renderer{site: site, sets: sets, clock: time.Now}, nil
}

// Render writes page name with status. Output is buffered so a template
// failure never leaves a half-written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, p Page) error {
	t, ok := r.sets[name]
	if !ok {
		return fmt.Errorf("web: unknown page %q", name)
	}
	p.Site = r.site
	p.Year = r.clock().Year()
	if p.Title == "" {
		p.Title = r.site.PracticeName
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", p); err != nil {
		return fmt.Errorf("web: execute %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Static serves the embedded stylesheet and scripts under /static/.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
