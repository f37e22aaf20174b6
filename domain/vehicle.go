package domain

type FuelType string

const (
	FuelPetrol   FuelType = "Petrol"
	FuelDiesel   FuelType = "Diesel"
	FuelElectric FuelType = "Electric"
	FuelHybrid   FuelType = "Hybrid"
)

func (f FuelType) Valid() bool {
	switch f {
	case FuelPetrol, FuelDiesel, FuelElectric, FuelHybrid:
		return true
	}
	return false
}

type VehicleType string

const (
	VehicleBike    VehicleType = "Bike"
	VehicleScooter VehicleType = "Scooter"
)

func (v VehicleType) Valid() bool {
	return v == VehicleBike || v == VehicleScooter
}

// VehicleRecord is a read-only catalog entry.
type VehicleRecord struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Brand       string      `json:"brand" yaml:"brand"`
	FuelType    FuelType    `json:"fuelType" yaml:"fuel_type"`
	MileageBand string      `json:"mileage" yaml:"mileage_band"`
	VehicleType VehicleType `json:"type" yaml:"vehicle_type"`
	BudgetBand  string      `json:"budget" yaml:"budget_band"`

	Price      int64  `json:"price" yaml:"price"`
	EngineCC   int    `json:"engineCc,omitempty" yaml:"engine_cc"`
	RangeKm    int    `json:"rangeKm,omitempty" yaml:"range_km"`
	TopSpeed   int    `json:"topSpeed,omitempty" yaml:"top_speed"`
	Image      string `json:"image,omitempty" yaml:"image"`
	Highlights string `json:"highlights,omitempty" yaml:"highlights"`
}

// CriterionField names one of the filterable attributes.
type CriterionField string

const (
	FieldFuelType    CriterionField = "fuelType"
	FieldMileageBand CriterionField = "mileage"
	FieldVehicleType CriterionField = "type"
	FieldBudgetBand  CriterionField = "budget"
)

// RelaxationOrder is the order in which criteria are dropped when too few
// vehicles match.
var RelaxationOrder = []CriterionField{
	FieldFuelType,
	FieldMileageBand,
	FieldVehicleType,
	FieldBudgetBand,
}

// FilterCriteria holds independently optional constraints. A nil field
// places no constraint on that attribute.
type FilterCriteria struct {
	FuelType    *FuelType    `json:"fuelType,omitempty"`
	MileageBand *string      `json:"mileage,omitempty"`
	VehicleType *VehicleType `json:"type,omitempty"`
	BudgetBand  *string      `json:"budget,omitempty"`
}

// Has reports whether field carries a non-empty constraint.
func (c FilterCriteria) Has(field CriterionField) bool {
	switch field {
	case FieldFuelType:
		return c.FuelType != nil && *c.FuelType != ""
	case FieldMileageBand:
		return c.MileageBand != nil && *c.MileageBand != ""
	case FieldVehicleType:
		return c.VehicleType != nil && *c.VehicleType != ""
	case FieldBudgetBand:
		return c.BudgetBand != nil && *c.BudgetBand != ""
	}
	return false
}

func (c FilterCriteria) IsEmpty() bool {
	for _, f := range RelaxationOrder {
		if c.Has(f) {
			return false
		}
	}
	return true
}

// Without returns a copy of c with field unset. The receiver is not modified.
func (c FilterCriteria) Without(field CriterionField) FilterCriteria {
	switch field {
	case FieldFuelType:
		c.FuelType = nil
	case FieldMileageBand:
		c.MileageBand = nil
	case FieldVehicleType:
		c.VehicleType = nil
	case FieldBudgetBand:
		c.BudgetBand = nil
	}
	return c
}

// Matches reports whether v satisfies every set constraint in c.
func (c FilterCriteria) Matches(v VehicleRecord) bool {
	if c.Has(FieldFuelType) && v.FuelType != *c.FuelType {
		return false
	}
	if c.Has(FieldMileageBand) && v.MileageBand != *c.MileageBand {
		return false
	}
	if c.Has(FieldVehicleType) && v.VehicleType != *c.VehicleType {
		return false
	}
	if c.Has(FieldBudgetBand) && v.BudgetBand != *c.BudgetBand {
		return false
	}
	return true
}

// FilterResult is the outcome of a filter run with relaxation.
type FilterResult struct {
	Vehicles []VehicleRecord  `json:"vehicles"`
	Applied  FilterCriteria   `json:"applied"`
	Relaxed  []CriterionField `json:"relaxed"`
}

type Page struct {
	Items      []VehicleRecord `json:"items"`
	Page       int             `json:"page"`
	PageSize   int             `json:"pageSize"`
	TotalItems int             `json:"totalItems"`
	TotalPages int             `json:"totalPages"`
}
