package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"vehicle-market/domain"
	"vehicle-market/service"
)

type CatalogHandler struct {
	service *service.CatalogService
}

func NewCatalogHandler(service *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

type vehicleListResponse struct {
	domain.Page
	Applied domain.FilterCriteria   `json:"applied"`
	Relaxed []domain.CriterionField `json:"relaxed"`
}

// ListVehicles handles GET /api/v1/vehicles.
func (h *CatalogHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	criteria, err := criteriaFromQuery(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	page, err := intParam(r, "page")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	pageSize, err := intParam(r, "pageSize")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	result, p, err := h.service.Search(r.Context(), criteria, page, pageSize)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, vehicleListResponse{
		Page:    p,
		Applied: result.Applied,
		Relaxed: result.Relaxed,
	})
}

// GetVehicle handles GET /api/v1/vehicles/{id}.
func (h *CatalogHandler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	v, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, v)
}

// CompareVehicles handles GET /api/v1/vehicles/compare?ids=a,b.
func (h *CatalogHandler) CompareVehicles(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	var ids []string
	for _, id := range strings.Split(r.URL.Query().Get("ids"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}

	vehicles, err := h.service.Compare(r.Context(), ids)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"vehicles": vehicles})
}

// criteriaFromQuery leaves a field unset when its parameter is absent or blank.
func criteriaFromQuery(r *http.Request) (domain.FilterCriteria, error) {
	q := r.URL.Query()
	var c domain.FilterCriteria

	if v := strings.TrimSpace(q.Get("fuelType")); v != "" {
		fuel := domain.FuelType(v)
		if !fuel.Valid() {
			return c, fmt.Errorf("%w: unknown fuel type %q", domain.ErrInvalidInput, v)
		}
		c.FuelType = &fuel
	}
	if v := strings.TrimSpace(q.Get("mileage")); v != "" {
		c.MileageBand = &v
	}
	if v := strings.TrimSpace(q.Get("type")); v != "" {
		vt := domain.VehicleType(v)
		if !vt.Valid() {
			return c, fmt.Errorf("%w: unknown vehicle type %q", domain.ErrInvalidInput, v)
		}
		c.VehicleType = &vt
	}
	if v := strings.TrimSpace(q.Get("budget")); v != "" {
		c.BudgetBand = &v
	}
	return c, nil
}

func intParam(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, name)
	}
	return n, nil
}
