package handlers

import (
	"net/http"

	"github.com/chandrabharti/restaurant-api/internal/domain"
	"github.com/chandrabharti/restaurant-api/internal/http/response"
)

func (h *Handlers) createMessage(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateMessageRequest
	if err := decode(r, &req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	message, err := h.Contact.Create(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, message)
}

func (h *Handlers) listMessages(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	messages, err := h.Contact.List(r.Context(), limit, offset)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]interface{}{"messages": messages})
}

func (h *Handlers) replyMessage(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	var req domain.ReplyMessageRequest
	if err := decode(r, &req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	message, err := h.Contact.Reply(r.Context(), id, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, message)
}

func (h *Handlers) deleteMessage(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	if err := h.Contact.Delete(r.Context(), id); err != nil {
		response.FromError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]string{"message": "message deleted"})
}
