package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chandrabharti/restaurant-api/internal/domain"
	"github.com/chandrabharti/restaurant-api/internal/http/response"
)

func (h *Handlers) listMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.Menu.List(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

func (h *Handlers) listMenuByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	items, err := h.Menu.ListByCategory(r.Context(), category)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

func (h *Handlers) getMenuItem(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	item, err := h.Menu.GetByID(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, item)
}

func (h *Handlers) createMenuItem(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateMenuItemRequest
	if err := decode(r, &req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	item, err := h.Menu.Create(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, item)
}

func (h *Handlers) updateMenuItem(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	var req domain.UpdateMenuItemRequest
	if err := decode(r, &req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	item, err := h.Menu.Update(r.Context(), id, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, item)
}

func (h *Handlers) deleteMenuItem(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	if err := h.Menu.Delete(r.Context(), id); err != nil {
		response.FromError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]string{"message": "menu item deleted"})
}
