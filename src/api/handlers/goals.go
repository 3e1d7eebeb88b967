package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"server/src/schemas"
	"server/src/utils"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetAllGoals(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, err := currentUserID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	goals, err := h.Controller.GetAllGoals(ctx, userID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, goals, http.StatusOK)
}

func (h *Handler) GetGoal(w http.ResponseWriter, r *http.Request) {
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

	goal, err := h.Controller.GetGoal(ctx, id, userID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, goal, http.StatusOK)
}

func (h *Handler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, err := currentUserID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	var req schemas.GoalCreate
	if err := decodeJSON(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}

	goal, err := h.Controller.CreateGoal(ctx, userID, &req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, goal, http.StatusCreated)
}

func (h *Handler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
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

	var patch schemas.GoalUpdate
	if err := decodeJSON(r, &patch); err != nil {
		h.HandleErrors(w, err)
		return
	}

	goal, err := h.Controller.UpdateGoal(ctx, id, userID, &patch)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, goal, http.StatusOK)
}

func (h *Handler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
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

	if err := h.Controller.DeleteGoal(ctx, id, userID); err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, nil, http.StatusNoContent)
}

func pathID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return 0, utils.BadRequest("id must be an integer")
	}
	return id, nil
}
