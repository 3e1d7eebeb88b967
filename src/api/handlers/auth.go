package handlers

import (
	"context"
	"net/http"
	"time"

	"server/src/schemas"
)

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req schemas.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}

	user, err := h.Controller.Register(ctx, &req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, user, http.StatusCreated)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req schemas.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}

	tokens, err := h.Controller.Login(ctx, &req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, tokens, http.StatusOK)
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req schemas.RefreshRequest
	if err := decodeJSON(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}

	tokens, err := h.Controller.Refresh(ctx, req.RefreshToken)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, tokens, http.StatusOK)
}

// ForgotPassword always answers 200 so the endpoint does not leak which
// emails exist.
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req schemas.ForgotPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, map[string]string{"message": "If the email exists, a reset link has been sent."}, http.StatusOK)
}
