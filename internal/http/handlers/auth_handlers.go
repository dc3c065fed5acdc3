package handlers

import (
	"net/http"

	"github.com/chandrabharti/restaurant-api/internal/domain"
	"github.com/chandrabharti/restaurant-api/internal/http/middleware"
	"github.com/chandrabharti/restaurant-api/internal/http/response"
)

func (h *Handlers) signup(w http.ResponseWriter, r *http.Request) {
	var req domain.SignupRequest
	if err := decode(r, &req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	resp, err := h.Auth.Signup(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, resp)
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := decode(r, &req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	resp, err := h.Auth.Login(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handlers) googleLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.GoogleAuthRequest
	if err := decode(r, &req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	resp, err := h.Auth.GoogleLogin(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handlers) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req domain.ForgotPasswordRequest
	if err := decode(r, &req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	if err := h.Auth.ForgotPassword(r.Context(), &req); err != nil {
		response.FromError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]string{"message": "OTP sent to your email"})
}

func (h *Handlers) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req domain.ResetPasswordRequest
	if err := decode(r, &req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	if err := h.Auth.ResetPassword(r.Context(), &req); err != nil {
		response.FromError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]string{"message": "password reset successful"})
}

func (h *Handlers) profile(w http.ResponseWriter, r *http.Request) {
	claims := middleware.Claims(r)

	info, err := h.Auth.Profile(r.Context(), claims.Sub)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, info)
}
