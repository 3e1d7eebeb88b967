package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"server/src/api/controllers"
	"server/src/services"
	"server/src/utils"

	"github.com/go-chi/jwtauth"
)

type Handler struct {
	Controller controllers.IController
}

func NewHandler(controller controllers.IController) *Handler {
	return &Handler{Controller: controller}
}

func (h *Handler) respond(w http.ResponseWriter, _ *http.Request, data interface{}, status int) {
	if data == nil {
		w.WriteHeader(status)
		return
	}
	res, err := json.Marshal(data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

// HandleErrors maps typed service failures to status codes. The accounting
// core never sees HTTP; this is the only place kinds become statuses.
func (h *Handler) HandleErrors(w http.ResponseWriter, err error) {
	var httpErr *utils.HTTPError

	if kind, ok := services.KindOf(err); ok {
		status := http.StatusInternalServerError
		switch kind {
		case services.KindNotFound:
			status = http.StatusNotFound
		case services.KindConflict:
			status = http.StatusConflict
		case services.KindInvalidEvent, services.KindInsufficientUnits:
			status = http.StatusUnprocessableEntity
		case services.KindUnauthorized:
			status = http.StatusUnauthorized
		case services.KindArithmetic:
			status = http.StatusInternalServerError
		}
		h.respond(w, nil, map[string]string{"error": err.Error()}, status)
		return
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		h.respond(w, nil, map[string]string{"error": "Request timed out"}, http.StatusGatewayTimeout)
	case errors.As(err, &httpErr):
		h.respond(w, nil, map[string]string{"error": httpErr.Message}, httpErr.Code)
	case err != nil:
		h.respond(w, nil, map[string]string{"error": err.Error()}, http.StatusInternalServerError)
	default:
		h.respond(w, nil, map[string]string{"error": "Unhandled error"}, http.StatusInternalServerError)
	}
}

// currentUserID reads the authenticated user from the verified token claims.
func currentUserID(r *http.Request) (int, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return 0, utils.Unauthorized("missing or invalid token")
	}
	switch v := claims["user_id"].(type) {
	case float64:
		return int(v), nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	}
	return 0, utils.Unauthorized("token has no user identity")
}

func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return utils.BadRequest("invalid request body")
	}
	return nil
}
