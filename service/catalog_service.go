package service

import (
	"context"
	"fmt"

	"vehicle-market/domain"
	"vehicle-market/repository"
)

// Filter returns the vehicles matching every set field of criteria, in
// catalog order. The catalog is not modified.
func Filter(catalog []domain.VehicleRecord, criteria domain.FilterCriteria) []domain.VehicleRecord {
	out := make([]domain.VehicleRecord, 0, len(catalog))
	for _, v := range catalog {
		if criteria.Matches(v) {
			out = append(out, v)
		}
	}
	return out
}

// FilterWithRelaxation filters strictly and, when criteria is non-empty but
// fewer than four vehicles match, drops set fields one at a time in
// domain.RelaxationOrder until at least four match or nothing is left to drop.
func FilterWithRelaxation(
	catalog []domain.VehicleRecord,
	criteria domain.FilterCriteria,
) domain.FilterResult {
	result := domain.FilterResult{
		Vehicles: Filter(catalog, criteria),
		Applied:  criteria,
		Relaxed:  []domain.CriterionField{},
	}
	if criteria.IsEmpty() || len(result.Vehicles) >= relaxationMinimum {
		return result
	}

	for _, field := range domain.RelaxationOrder {
		if !result.Applied.Has(field) {
			continue
		}
		result.Applied = result.Applied.Without(field)
		result.Relaxed = append(result.Relaxed, field)
		result.Vehicles = Filter(catalog, result.Applied)

		if len(result.Vehicles) >= relaxationMinimum {
			break
		}
	}

	return result
}

// Paginate slices items into 1-based pages. A page past the end is empty
// but still reports the totals.
func Paginate(items []domain.VehicleRecord, page, pageSize int) domain.Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	if page < 1 {
		page = 1
	}

	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize

	// page is bounded by totalPages before multiplying so a huge page cannot overflow
	start, end := total, total
	if page <= totalPages {
		start = (page - 1) * pageSize
		end = min(start+pageSize, total)
	}

	pageItems := make([]domain.VehicleRecord, end-start)
	copy(pageItems, items[start:end])

	return domain.Page{
		Items:      pageItems,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}
}

type CatalogService struct {
	repo repository.CatalogRepository
}

func NewCatalogService(repo repository.CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

// Search filters the catalog with relaxation and returns the requested page
// of the result.
func (s *CatalogService) Search(
	ctx context.Context,
	criteria domain.FilterCriteria,
	page, pageSize int,
) (domain.FilterResult, domain.Page, error) {

	catalog, err := s.repo.List(ctx)
	if err != nil {
		return domain.FilterResult{}, domain.Page{}, fmt.Errorf("list catalog: %w", err)
	}

	result := FilterWithRelaxation(catalog, criteria)
	return result, Paginate(result.Vehicles, page, pageSize), nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (domain.VehicleRecord, error) {
	return s.repo.Get(ctx, id)
}

// Compare returns the requested vehicles in request order for side-by-side display.
func (s *CatalogService) Compare(ctx context.Context, ids []string) ([]domain.VehicleRecord, error) {
	if len(ids) < MinCompareVehicles || len(ids) > MaxCompareVehicles {
		return nil, fmt.Errorf("%w: compare needs between %d and %d vehicles, got %d",
			domain.ErrInvalidInput, MinCompareVehicles, MaxCompareVehicles, len(ids))
	}

	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" {
			return nil, fmt.Errorf("%w: empty vehicle id", domain.ErrInvalidInput)
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: vehicle %s listed twice", domain.ErrInvalidInput, id)
		}
		seen[id] = true
	}

	vehicles := make([]domain.VehicleRecord, 0, len(ids))
	for _, id := range ids {
		v, err := s.repo.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, nil
}
