// Package web builds the server-rendered HTML pages from embedded templates.
package web

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"pantry/internal/model"
	webembed "pantry/web"
)

// Templates holds the parsed page templates and acts as the page factory
// handed to the HTTP layer.
type Templates struct {
	templates map[string]*template.Template
}

// LoadTemplates parses all page templates with the layout.
func LoadTemplates() (*Templates, error) {
	tfs := webembed.TemplatesFS()

	layoutBytes, err := fs.ReadFile(tfs, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("reading layout template: %w", err)
	}

	pages := []string{
		"index.html",
		"items.html",
		"item_detail.html",
		"item_new.html",
		"not_found.html",
	}

	ts := &Templates{templates: make(map[string]*template.Template)}

	for _, page := range pages {
		pageBytes, err := fs.ReadFile(tfs, page)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", page, err)
		}

		tmpl, err := template.New(page).Parse(string(layoutBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing layout for %s: %w", page, err)
		}
		tmpl, err = tmpl.Parse(string(pageBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}

		ts.templates[page] = tmpl
	}

	return ts, nil
}

// Page is one renderable HTML page: a template plus its view data.
type Page struct {
	tmpl *template.Template
	data any
}

// Render writes the full HTML document.
func (p *Page) Render(w io.Writer) error {
	return p.tmpl.ExecuteTemplate(w, "layout", p.data)
}

func (ts *Templates) page(name string, data any) *Page {
	return &Page{tmpl: ts.templates[name], data: data}
}

// ListItemsPage builds the item listing. An empty slice renders the
// "There are no items." message instead of a list.
func (ts *Templates) ListItemsPage(items []model.Item) *Page {
	return ts.page("items.html", &struct {
		Title string
		Items []model.Item
	}{
		Title: "Items",
		Items: items,
	})
}

// ShowItemPage builds a single item's detail view.
func (ts *Templates) ShowItemPage(item *model.Item) *Page {
	return ts.page("item_detail.html", &struct {
		Title string
		Item  *model.Item
	}{
		Title: item.Name,
		Item:  item,
	})
}

// NewItemPage builds the static item creation form.
func (ts *Templates) NewItemPage() *Page {
	return ts.page("item_new.html", &struct{ Title string }{Title: "New item"})
}

// IndexPage builds the landing page.
func (ts *Templates) IndexPage() *Page {
	return ts.page("index.html", &struct{ Title string }{Title: "Home"})
}

// NotFoundPage builds the generic page shown for unmatched routes.
func (ts *Templates) NotFoundPage() *Page {
	return ts.page("not_found.html", &struct{ Title string }{Title: "Not found"})
}
