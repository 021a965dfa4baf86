package server

import (
	"database/sql"
	"net/http"

	"pantry/internal/respond"
	"pantry/internal/web"
)

// NewRouter creates the HTTP router with all endpoints registered.
func NewRouter(db *sql.DB) (http.Handler, error) {
	pages, err := web.LoadTemplates()
	if err != nil {
		return nil, err
	}

	items := &ItemsHandler{DB: db, Pages: pages}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", indexHandler(pages))

	mux.HandleFunc("GET /items", items.List)
	mux.HandleFunc("GET /items/new", items.New)
	mux.HandleFunc("GET /items/{name}", items.Show)
	mux.HandleFunc("POST /items", items.Create)
	mux.HandleFunc("PUT /items/{name}", items.Update)
	mux.HandleFunc("DELETE /items/{name}", items.Delete)

	// Everything else falls through to the negotiated 404 page.
	mux.HandleFunc("/", notFoundHandler(pages))

	return mux, nil
}

func indexHandler(pages *web.Templates) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		negotiate(w, r, http.StatusOK, respond.Map{
			respond.FormatJSON: respond.JSON(map[string]string{"message": "hey!"}),
			respond.FormatHTML: respond.HTML(func() (respond.Page, error) {
				return pages.IndexPage(), nil
			}),
		})
	}
}

func notFoundHandler(pages *web.Templates) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		negotiate(w, r, http.StatusNotFound, respond.Map{
			respond.FormatJSON: respond.JSON(map[string]string{"message": "this is not the page you are looking for!"}),
			respond.FormatHTML: respond.HTML(func() (respond.Page, error) {
				return pages.NotFoundPage(), nil
			}),
		})
	}
}
