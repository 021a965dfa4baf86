package server

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"pantry/internal/model"
	"pantry/internal/respond"
	"pantry/internal/store"
	"pantry/internal/web"
)

// ItemsHandler handles the item CRUD endpoints. Every endpoint except the
// creation form negotiates between a JSON body and an HTML page.
type ItemsHandler struct {
	DB    *sql.DB
	Pages *web.Templates
}

// List handles GET /items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := store.ListItems(r.Context(), h.DB)
	if err != nil {
		slog.Error("failed to list items", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	if items == nil {
		items = []model.Item{}
	}

	negotiate(w, r, http.StatusOK, respond.Map{
		respond.FormatJSON: respond.JSON(items),
		respond.FormatHTML: respond.HTML(func() (respond.Page, error) {
			return h.Pages.ListItemsPage(items), nil
		}),
	})
}

// New handles GET /items/new. The creation form is always HTML,
// independent of negotiation.
func (h *ItemsHandler) New(w http.ResponseWriter, r *http.Request) {
	renderHTML(w, http.StatusOK, h.Pages.NewItemPage())
}

// Show handles GET /items/{name}.
func (h *ItemsHandler) Show(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	item, err := store.GetItem(r.Context(), h.DB, name)
	if err != nil {
		slog.Error("failed to get item", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	negotiate(w, r, http.StatusOK, respond.Map{
		respond.FormatJSON: respond.JSON(item),
		respond.FormatHTML: respond.HTML(func() (respond.Page, error) {
			return h.Pages.ShowItemPage(item), nil
		}),
	})
}

// Create handles POST /items. The name conflict check happens here, not
// in the store: a concurrent create can still lose the race and surface
// the unique constraint as a server error.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in model.ItemInput
	if err := decodeJSON(r, &in); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := in.Validate(); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	existing, err := store.GetItem(r.Context(), h.DB, in.Name)
	if err != nil {
		slog.Error("failed to check item name", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to create item")
		return
	}
	if existing != nil {
		jsonError(w, http.StatusConflict, "item already exists")
		return
	}

	item, err := store.CreateItem(r.Context(), h.DB, in)
	if err != nil {
		slog.Error("failed to create item", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to create item")
		return
	}

	negotiate(w, r, http.StatusOK, respond.Map{
		respond.FormatJSON: respond.JSON(item),
		respond.FormatHTML: respond.HTML(func() (respond.Page, error) {
			return h.Pages.ListItemsPage([]model.Item{*item}), nil
		}),
	})
}

// Update handles PUT /items/{name}. Full-replace semantics: fields
// missing from the payload are reset to their defaults.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	var in model.ItemInput
	if err := decodeJSON(r, &in); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := in.Validate(); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := store.GetItem(r.Context(), h.DB, name)
	if err != nil {
		slog.Error("failed to get item", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to update item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	updated, err := store.UpdateItem(r.Context(), h.DB, item, in)
	if err != nil {
		slog.Error("failed to update item", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to update item")
		return
	}

	negotiate(w, r, http.StatusOK, respond.Map{
		respond.FormatJSON: respond.JSON(updated),
		respond.FormatHTML: respond.HTML(func() (respond.Page, error) {
			return h.Pages.ListItemsPage([]model.Item{*updated}), nil
		}),
	})
}

// Delete handles DELETE /items/{name}. Deleting an absent item is a
// successful no-op (204, empty body). The HTML branch responds with the
// remaining item list, which is the fragment the list page swaps in.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	item, err := store.GetItem(r.Context(), h.DB, name)
	if err != nil {
		slog.Error("failed to get item", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to delete item")
		return
	}
	if item == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := store.DeleteItem(r.Context(), h.DB, name); err != nil {
		slog.Error("failed to delete item", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to delete item")
		return
	}

	negotiate(w, r, http.StatusOK, respond.Map{
		respond.FormatJSON: respond.JSON(map[string]string{"message": fmt.Sprintf("deleted %s", name)}),
		respond.FormatHTML: respond.HTML(func() (respond.Page, error) {
			items, err := store.ListItems(r.Context(), h.DB)
			if err != nil {
				return nil, err
			}
			return h.Pages.ListItemsPage(items), nil
		}),
	})
}
