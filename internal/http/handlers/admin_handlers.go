package handlers

import (
	"net/http"
	"strings"

	"github.com/chandrabharti/restaurant-api/internal/domain"
	"github.com/chandrabharti/restaurant-api/internal/http/middleware"
	"github.com/chandrabharti/restaurant-api/internal/http/response"
)

func (h *Handlers) bootstrapAdmin(w http.ResponseWriter, r *http.Request) {
	var req domain.BootstrapAdminRequest
	if err := decode(r, &req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	info, err := h.Admin.Bootstrap(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, info)
}

func (h *Handlers) adminLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decode(r, &req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		response.BadRequest(w, "email and password are required")
		return
	}

	resp, err := h.Admin.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handlers) dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Admin.DashboardStats(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, stats)
}

func (h *Handlers) changePassword(w http.ResponseWriter, r *http.Request) {
	var req domain.ChangePasswordRequest
	if err := decode(r, &req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	claims := middleware.Claims(r)
	if err := h.Admin.ChangePassword(r.Context(), claims.Sub, &req); err != nil {
		response.FromError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]string{"message": "password changed"})
}

func (h *Handlers) listUsers(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	users, err := h.Admin.ListUsers(r.Context(), limit, offset)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]interface{}{"users": users})
}

func (h *Handlers) blockUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	var req struct {
		IsBlocked bool `json:"isBlocked"`
	}
	if err := decode(r, &req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	user, err := h.Admin.SetUserBlocked(r.Context(), id, req.IsBlocked)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, user)
}

func (h *Handlers) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	if err := h.Admin.DeleteUser(r.Context(), id); err != nil {
		response.FromError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]string{"message": "user deleted"})
}
