package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"pos-voice/internal/common/httpx"
	"pos-voice/internal/domain"
	"pos-voice/internal/microservices/order/service"
)

type OrderHandler struct {
	service service.OrderServiceInterface
}

func NewOrderHandler(s service.OrderServiceInterface) *OrderHandler {
	return &OrderHandler{service: s}
}

// Register mounts the order routes on mux.
func (oh *OrderHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/orders", oh.AddOrder)
	mux.HandleFunc("GET /api/v1/orders", oh.ListOrders)
	mux.HandleFunc("PUT /api/v1/orders/{order_number}/status", oh.UpdateStatus)
}

func (oh *OrderHandler) AddOrder(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	resp, err := oh.service.AddOrder(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, resp)
}

// ListOrders returns active orders, or every order with ?scope=all.
func (oh *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	var (
		orders []domain.Order
		err    error
	)
	switch r.URL.Query().Get("scope") {
	case "", "active":
		orders, err = oh.service.ListActive(r.Context())
	case "all":
		orders, err = oh.service.ListAll(r.Context())
	default:
		httpx.WriteProblem(w, http.StatusBadRequest, "bad_request", "scope must be active or all")
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, orders)
}

func (oh *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	change, err := oh.service.UpdateStatus(r.Context(), r.PathValue("order_number"), req.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, change)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		httpx.WriteProblem(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, service.ErrOrderNotFound):
		httpx.WriteProblem(w, http.StatusNotFound, "not_found", err.Error())
	default:
		httpx.WriteProblem(w, http.StatusInternalServerError, "db_error", err.Error())
	}
}
