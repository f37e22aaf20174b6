package repository

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"vehicle-market/domain"
)

//go:generate mockgen -destination=mocks/mock_catalog_repository.go -package=mocks -source=catalog_repository.go

// CatalogRepository is the read-only source of vehicle records.
type CatalogRepository interface {
	List(ctx context.Context) ([]domain.VehicleRecord, error)
	Get(ctx context.Context, id string) (domain.VehicleRecord, error)
}

// CatalogRepositoryMemory serves a catalog fixed at construction time.
type CatalogRepositoryMemory struct {
	records []domain.VehicleRecord
	byID    map[string]int
}

// NewCatalogRepositoryMemory copies records so later changes by the caller
// are not visible through the repository.
func NewCatalogRepositoryMemory(records []domain.VehicleRecord) (*CatalogRepositoryMemory, error) {
	r := &CatalogRepositoryMemory{
		records: make([]domain.VehicleRecord, len(records)),
		byID:    make(map[string]int, len(records)),
	}
	copy(r.records, records)

	for i, v := range r.records {
		if v.ID == "" {
			return nil, fmt.Errorf("catalog entry %d (%q) has no id", i, v.Name)
		}
		if _, dup := r.byID[v.ID]; dup {
			return nil, fmt.Errorf("duplicate catalog id %q", v.ID)
		}
		if !v.FuelType.Valid() {
			return nil, fmt.Errorf("catalog entry %q: unknown fuel type %q", v.ID, v.FuelType)
		}
		if !v.VehicleType.Valid() {
			return nil, fmt.Errorf("catalog entry %q: unknown vehicle type %q", v.ID, v.VehicleType)
		}
		r.byID[v.ID] = i
	}
	return r, nil
}

// List returns a copy of the catalog in its original order.
func (r *CatalogRepositoryMemory) List(_ context.Context) ([]domain.VehicleRecord, error) {
	out := make([]domain.VehicleRecord, len(r.records))
	copy(out, r.records)
	return out, nil
}

func (r *CatalogRepositoryMemory) Get(_ context.Context, id string) (domain.VehicleRecord, error) {
	i, ok := r.byID[id]
	if !ok {
		return domain.VehicleRecord{}, fmt.Errorf("%w: %s", domain.ErrVehicleNotFound, id)
	}
	return r.records[i], nil
}

type catalogFile struct {
	Vehicles []domain.VehicleRecord `yaml:"vehicles"`
}

// ParseCatalogYAML decodes a catalog document of the form
//
//	vehicles:
//	  - id: ...
func ParseCatalogYAML(raw []byte) (*CatalogRepositoryMemory, error) {
	var f catalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return NewCatalogRepositoryMemory(f.Vehicles)
}

// LoadCatalogYAML reads and parses the catalog file at path.
func LoadCatalogYAML(path string) (*CatalogRepositoryMemory, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCatalogYAML(raw)
}
