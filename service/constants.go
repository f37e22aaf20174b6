package service

import "time"

const (
	MaxPrincipal    = 1_000_000_000.0
	MaxAnnualRate   = 100.0 // % anual
	MaxTenureMonths = 600   // 50 años
	MinTenureMonths = 1

	// Límite de plazos a comparar en una sola consulta
	MaxTenureOptions = 24

	DefaultCacheTTL   = 10 * time.Minute
	emiCacheKeyPrefix = "emi"

	// resultados mínimos antes de relajar filtros
	relaxationMinimum = 4

	DefaultPageSize    = 8
	MaxPageSize        = 50
	MinCompareVehicles = 2
	MaxCompareVehicles = 4
)

// DefaultTenures is the installment table shown when the caller does not
// ask for specific tenures.
var DefaultTenures = []int{12, 24, 36, 48, 60}
