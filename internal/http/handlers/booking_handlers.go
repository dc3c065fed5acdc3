package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/chandrabharti/restaurant-api/internal/domain"
	"github.com/chandrabharti/restaurant-api/internal/http/middleware"
	"github.com/chandrabharti/restaurant-api/internal/http/response"
)

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateBookingRequest
	if err := decode(r, &req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	// A logged-in caller owns the booking regardless of what the body says.
	req.UserID = nil
	if claims := middleware.Claims(r); claims != nil && !claims.IsAdmin() {
		req.UserID = &claims.Sub
	}

	booking, err := h.Booking.Create(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, booking)
}

func (h *Handlers) listUserBookings(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil || userID <= 0 {
		response.BadRequest(w, "invalid user id")
		return
	}

	claims := middleware.Claims(r)
	if !claims.IsAdmin() && claims.Sub != userID {
		response.Forbidden(w, "cannot view another user's bookings")
		return
	}

	limit, offset := parsePagination(r)

	bookings, err := h.Booking.ListByUser(r.Context(), userID, limit, offset)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]interface{}{"bookings": bookings})
}

func (h *Handlers) getBooking(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	booking, err := h.Booking.GetByID(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	claims := middleware.Claims(r)
	if !claims.IsAdmin() && (booking.UserID == nil || *booking.UserID != claims.Sub) {
		response.NotFound(w, "booking not found")
		return
	}
	response.WriteJSON(w, http.StatusOK, booking)
}

func (h *Handlers) cancelBooking(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	claims := middleware.Claims(r)

	var booking *domain.Booking
	if claims.IsAdmin() {
		booking, err = h.Booking.SetStatus(r.Context(), id, domain.BookingCancelled)
	} else {
		booking, err = h.Booking.Cancel(r.Context(), id, claims.Sub)
	}
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, booking)
}

// ---------- Admin booking surface ----------

func (h *Handlers) listBookings(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	bookings, err := h.Booking.List(r.Context(), limit, offset)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]interface{}{"bookings": bookings})
}

func (h *Handlers) updateBookingStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	var req domain.UpdateBookingStatusRequest
	if err := decode(r, &req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	status, ok := domain.ParseBookingStatus(req.Status)
	if !ok || status == domain.BookingPending {
		response.BadRequest(w, "status must be confirmed, rejected or cancelled")
		return
	}

	booking, err := h.Booking.SetStatus(r.Context(), id, status)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, booking)
}

func (h *Handlers) deleteBooking(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	if err := h.Booking.Delete(r.Context(), id); err != nil {
		response.FromError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]string{"message": "booking deleted"})
}
