package handlers

import (
	"net/http"

	"pos-voice/internal/common/httpx"
	"pos-voice/internal/microservices/order/service"
)

type SalesHandler struct {
	service service.SalesServiceInterface
}

func NewSalesHandler(s service.SalesServiceInterface) *SalesHandler {
	return &SalesHandler{service: s}
}

func (sh *SalesHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/sales/top-selling", sh.TopSelling)
	mux.HandleFunc("GET /api/v1/sales/income", sh.Income)
}

// TopSelling handles ?start_date=YYYY-MM-DD&end_date=YYYY-MM-DD.
func (sh *SalesHandler) TopSelling(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rows, err := sh.service.TopSelling(r.Context(), q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, rows)
}

// Income handles ?date=YYYY-MM-DD&period=day|week|month.
func (sh *SalesHandler) Income(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	inc, err := sh.service.Income(r.Context(), q.Get("date"), q.Get("period"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, inc)
}
