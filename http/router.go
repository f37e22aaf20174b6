package http

import (
	"net/http"
)

type RouterConfig struct {
	Loan           *LoanHandler
	Catalog        *CatalogHandler
	RateLimiter    *RateLimiter
	AllowedOrigins []string
}

// NewRouter mounts the API under /api/v1. EMI routes are rate limited per
// client; catalog reads are not. Patterns carry no method so the handlers
// answer a wrong method with a JSON 405.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	limited := func(h http.HandlerFunc) http.Handler {
		if cfg.RateLimiter == nil {
			return h
		}
		return RateLimitMiddleware(cfg.RateLimiter, h)
	}

	mux.Handle("/api/v1/emi", limited(cfg.Loan.CalculateEMI))
	mux.Handle("/api/v1/emi/schedule", limited(cfg.Loan.Schedule))
	mux.Handle("/api/v1/emi/tenures", limited(cfg.Loan.TenureOptions))

	mux.HandleFunc("/api/v1/vehicles", cfg.Catalog.ListVehicles)
	mux.HandleFunc("/api/v1/vehicles/compare", cfg.Catalog.CompareVehicles)
	mux.HandleFunc("/api/v1/vehicles/{id}", cfg.Catalog.GetVehicle)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if !allowMethod(w, r, http.MethodGet) {
			return
		}
		writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	return RequestLogger(NewCORS(cfg.AllowedOrigins, mux))
}
