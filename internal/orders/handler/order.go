package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"dopo/internal/orders/service"
	httputil "dopo/pkg/http"
	"dopo/pkg/logger"
	"dopo/pkg/model"
)

const MessageOrderSuccessful = "Order successful"

type OrderHandler struct {
	service service.OrderService
	log     *logger.Logger
}

func NewOrderHandler(service service.OrderService, log *logger.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		log:     log,
	}
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	orders, err := h.service.List(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if orders == nil {
		orders = []model.Order{}
	}
	if err := httputil.WriteSuccess(w, orders); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "operation", "WriteSuccess", "error", err)
	}
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var order model.Order
	if err := httputil.DecodeJSON(r, &order); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if _, err := h.service.Create(r.Context(), order); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteMessage(w, http.StatusOK, MessageOrderSuccessful); err != nil {
		h.log.Error("failed to write success response", "handler", "Create", "operation", "WriteMessage", "error", err)
	}
}

func (h *OrderHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/orders", h.List)
	router.POST("/orders", h.Create)
}
