package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"dopo/internal/activities/service"
	apperrors "dopo/pkg/errors"
	httputil "dopo/pkg/http"
	"dopo/pkg/logger"
	"dopo/pkg/model"
)

const (
	MessageSpacesUpdated          = "Spaces updated"
	MessageSpacesPartiallyUpdated = "Spaces partially updated"
)

type ActivityHandler struct {
	service service.ActivityService
	log     *logger.Logger
}

func NewActivityHandler(service service.ActivityService, log *logger.Logger) *ActivityHandler {
	return &ActivityHandler{
		service: service,
		log:     log,
	}
}

func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	activities, err := h.service.List(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, nonNil(activities)); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ActivityHandler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	keyword := r.URL.Query().Get("q")

	activities, err := h.service.Search(r.Context(), keyword)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Search", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, nonNil(activities)); err != nil {
		h.log.Error("failed to write success response", "handler", "Search", "operation", "WriteSuccess", "error", err)
	}
}

// UpdateSpaces answers 200 when every element applied, 207 when some did,
// and the first failure's status when none did.
func (h *ActivityHandler) UpdateSpaces(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var updates []model.SpacesUpdate
	if err := httputil.DecodeJSON(r, &updates); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "UpdateSpaces", "operation", "WriteError", "error", writeErr)
		}
		return
	}
	if updates == nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("request body must be a JSON array")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "UpdateSpaces", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	batch := h.service.UpdateSpaces(r.Context(), updates)

	failed := batch.Failed()
	if failed == 0 {
		if err := httputil.WriteMessage(w, http.StatusOK, MessageSpacesUpdated); err != nil {
			h.log.Error("failed to write success response", "handler", "UpdateSpaces", "operation", "WriteMessage", "error", err)
		}
		return
	}

	status := http.StatusMultiStatus
	if failed == len(updates) {
		status = batch.FirstError().StatusCode()
	}

	summary := model.SpacesUpdateSummary{
		Message: MessageSpacesPartiallyUpdated,
		Results: batch.Results,
	}
	if err := httputil.WriteJSON(w, status, summary); err != nil {
		h.log.Error("failed to write batch response", "handler", "UpdateSpaces", "operation", "WriteJSON", "error", err)
	}
}

func (h *ActivityHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/activities", h.List)
	router.GET("/activities/search", h.Search)
	router.PUT("/activities", h.UpdateSpaces)
}

func nonNil(activities []model.Activity) []model.Activity {
	if activities == nil {
		return []model.Activity{}
	}
	return activities
}
