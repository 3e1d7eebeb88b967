package handlers

import (
	"context"
	"net/http"
	"time"

	"server/src/schemas"
)

func (h *Handler) GetAllInvestments(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, err := currentUserID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	investments, err := h.Controller.GetAllInvestments(ctx, userID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, investments, http.StatusOK)
}

func (h *Handler) CreateInvestment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, err := currentUserID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	var req schemas.InvestmentCreate
	if err := decodeJSON(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}

	investment, err := h.Controller.CreateInvestment(ctx, userID, &req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, investment, http.StatusCreated)
}

func (h *Handler) UpdateInvestment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, err := currentUserID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	var patch schemas.InvestmentUpdate
	if err := decodeJSON(r, &patch); err != nil {
		h.HandleErrors(w, err)
		return
	}

	investment, err := h.Controller.UpdateInvestment(ctx, id, userID, &patch)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, investment, http.StatusOK)
}

func (h *Handler) DeleteInvestment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, err := currentUserID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	if err := h.Controller.DeleteInvestment(ctx, id, userID); err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, nil, http.StatusNoContent)
}
