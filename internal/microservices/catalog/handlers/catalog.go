package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"pos-voice/internal/common/httpx"
	"pos-voice/internal/microservices/catalog/service"
)

type CatalogHandler struct {
	service service.CatalogServiceInterface
}

func NewCatalogHandler(s service.CatalogServiceInterface) *CatalogHandler {
	return &CatalogHandler{service: s}
}

func (h *CatalogHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/categories", h.Categories)
	mux.HandleFunc("GET /api/v1/categories/{id}/products", h.Products)
}

func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.service.Categories(r.Context())
	if err != nil {
		httpx.WriteProblem(w, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	httpx.WriteJSON(w, http.StatusOK, cats)
}

func (h *CatalogHandler) Products(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "bad_request", "category id must be a number")
		return
	}
	products, err := h.service.ProductsByCategory(r.Context(), id)
	switch {
	case errors.Is(err, service.ErrInvalidCategory):
		httpx.WriteProblem(w, http.StatusBadRequest, "bad_request", err.Error())
	case err != nil:
		httpx.WriteProblem(w, http.StatusInternalServerError, "db_error", err.Error())
	default:
		httpx.WriteJSON(w, http.StatusOK, products)
	}
}
