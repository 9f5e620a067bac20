package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ghuser/vitrina/pkg/auth"
	"github.com/ghuser/vitrina/pkg/errhttp"
	"github.com/ghuser/vitrina/pkg/httpx"
	appsvcs "github.com/ghuser/vitrina/services/sales/application/services"
	"github.com/ghuser/vitrina/services/sales/domain/models"
)

const dateLayout = "2006-01-02"

// ListSalesHandler handles GET /sales requests.
type ListSalesHandler struct {
	svc *appsvcs.Services
}

// NewListSalesHandler returns a ListSalesHandler backed by the given services.
func NewListSalesHandler(svc *appsvcs.Services) *ListSalesHandler {
	return &ListSalesHandler{svc: svc}
}

// Execute lists the caller's sales, newest first, ten per page.
//
//	@Summary		List sales
//	@Tags			sales
//	@Produce		json
//	@Security		BearerAuth
//	@Param			from	query		string	false	"First day, YYYY-MM-DD"
//	@Param			to		query		string	false	"Last day (inclusive), YYYY-MM-DD"
//	@Param			q		query		string	false	"Product name search"
//	@Param			page	query		int		false	"Page, starting at 1"
//	@Success		200		{object}	ListSalesResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Router			/sales [get]
func (h *ListSalesHandler) Execute(w http.ResponseWriter, r *http.Request) {
	tenantID, err := auth.TenantIDFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	q := r.URL.Query()
	filter := models.SalesFilter{Query: q.Get("q")}
	if filter.From, err = parseDate(q.Get("from")); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "from must be a date in YYYY-MM-DD format")
		return
	}
	if filter.To, err = parseDate(q.Get("to")); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "to must be a date in YYYY-MM-DD format")
		return
	}

	page := 1
	if raw := q.Get("page"); raw != "" {
		if page, err = strconv.Atoi(raw); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "page must be an integer")
			return
		}
	}
	if page < 1 {
		page = 1
	}

	records, total, err := h.svc.Sale.ListSales(r.Context(), tenantID, filter, page)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	sales := make([]SaleResponse, len(records))
	for i, rec := range records {
		sales[i] = toSaleResponse(rec)
	}
	httpx.JSON(w, http.StatusOK, ListSalesResponse{
		Sales:      sales,
		Pagination: httpx.NewPagination(page, appsvcs.SalesPageSize, total),
	})
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
