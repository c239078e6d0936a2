// internal/domain/models.go
package domain

import "time"

// Product represents a catalog product with its demand profile and
// classification for one analysis run. Classification fields are filled by the
// classifier and treated as read-only downstream.
type Product struct {
	ID       string `json:"id" db:"id"`
	SKU      string `json:"sku" db:"sku"`
	Name     string `json:"name" db:"name"`
	Category string `json:"category" db:"category"`

	// Physical attributes, meters and kilograms.
	LengthM  float64 `json:"length_m" db:"length_m"`
	WidthM   float64 `json:"width_m" db:"width_m"`
	HeightM  float64 `json:"height_m" db:"height_m"`
	WeightKg float64 `json:"weight_kg" db:"weight_kg"`

	// Demand attributes.
	AverageDailyDemand float64      `json:"average_daily_demand" db:"average_daily_demand"`
	PickFrequency      float64      `json:"pick_frequency" db:"pick_frequency"`
	Seasonality        *Seasonality `json:"seasonality,omitempty" db:"-"`

	// Classification.
	Velocity Velocity `json:"velocity" db:"velocity"`
	ABCClass ABCClass `json:"abc_class" db:"abc_class"`

	// Optional storage constraints.
	StorageReq *StorageRequirements `json:"storage_requirements,omitempty" db:"-"`
}

// CubeM3 returns the product's volumetric size in cubic meters.
func (p Product) CubeM3() float64 {
	return p.LengthM * p.WidthM * p.HeightM
}

// Seasonality captures a seasonal demand pattern for a product.
type Seasonality struct {
	Index      float64      `json:"index"`
	PeakMonths []time.Month `json:"peak_months"`
}

// StorageRequirements are the constraints a product imposes on where it may be
// stored.
type StorageRequirements struct {
	Temperature    string `json:"temperature,omitempty"`
	Hazmat         bool   `json:"hazmat"`
	Fragile        bool   `json:"fragile"`
	Stackable      bool   `json:"stackable"`
	MaxStackHeight int    `json:"max_stack_height,omitempty"`
}

// Coordinates is a point in the warehouse floor plan, meters from origin.
type Coordinates struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// StorageLocation is a point-in-time snapshot of a storage slot. Occupancy
// fields reflect the snapshot; no live lock is held across an analysis run.
type StorageLocation struct {
	ID   string `json:"id" db:"id"`
	Code string `json:"code" db:"code"`

	// Hierarchy.
	Zone     string `json:"zone" db:"zone"`
	Aisle    string `json:"aisle" db:"aisle"`
	Bay      string `json:"bay" db:"bay"`
	Level    int    `json:"level" db:"level"`
	Position int    `json:"position" db:"position"`

	// Spatial data.
	Coordinates Coordinates `json:"coordinates" db:"-"`
	LengthM     float64     `json:"length_m" db:"length_m"`
	WidthM      float64     `json:"width_m" db:"width_m"`
	HeightM     float64     `json:"height_m" db:"height_m"`
	CapacityM3  float64     `json:"capacity_m3" db:"capacity_m3"`

	// Functional characteristics.
	Type                LocationType   `json:"type" db:"type"`
	Accessibility       float64        `json:"accessibility" db:"accessibility"`
	Pickability         float64        `json:"pickability" db:"pickability"`
	DistanceFromDock    float64        `json:"distance_from_dock" db:"distance_from_dock"`
	DistanceFromPacking float64        `json:"distance_from_packing" db:"distance_from_packing"`
	Ergonomics          ErgonomicLevel `json:"ergonomic_level" db:"ergonomic_level"`

	// Restrictions.
	Temperature string  `json:"temperature,omitempty" db:"temperature"`
	HazmatOnly  bool    `json:"hazmat_only" db:"hazmat_only"`
	MaxWeightKg float64 `json:"max_weight_kg" db:"max_weight_kg"`

	// Occupancy snapshot. CurrentProductID is a back-reference, not ownership.
	CurrentOccupancy float64 `json:"current_occupancy" db:"current_occupancy"`
	CurrentProductID string  `json:"current_product_id,omitempty" db:"current_product_id"`
}

// MovementRecord is one inventory movement used as classifier input.
type MovementRecord struct {
	ProductID  string       `json:"product_id" db:"product_id"`
	Quantity   float64      `json:"quantity" db:"quantity"`
	Type       MovementType `json:"type" db:"movement_type"`
	Reference  string       `json:"reference" db:"reference"`
	OccurredAt time.Time    `json:"occurred_at" db:"occurred_at"`
}

// Impact quantifies the expected operational gains of a move. All fields are
// non-negative percentages or meters as noted.
type Impact struct {
	PickTimeReductionMin    float64 `json:"pick_time_reduction_min"`
	TravelDistanceReduction float64 `json:"travel_distance_reduction_m"`
	ErgonomicImprovement    float64 `json:"ergonomic_improvement_pct"`
	SpaceUtilizationGain    float64 `json:"space_utilization_gain_pct"`
}

// Effort estimates the work needed to execute a move.
type Effort struct {
	MoveQty          int      `json:"move_qty"`
	MoveDistanceM    float64  `json:"move_distance_m"`
	EstimatedMinutes float64  `json:"estimated_minutes"`
	Resources        []string `json:"required_resources"`
}

// ROI is the cost/benefit model of a single move. PaybackDays is -1 when the
// move never pays back (HasPayback false); encoding Inf in JSON is not an
// option.
type ROI struct {
	CostToMove    float64 `json:"cost_to_move"`
	AnnualSavings float64 `json:"annual_savings"`
	PaybackDays   float64 `json:"payback_period_days"`
	HasPayback    bool    `json:"has_payback"`
	NetBenefit    float64 `json:"net_benefit"`
}

// SlottingRecommendation is an immutable move proposal produced once per
// qualifying product per analysis run.
type SlottingRecommendation struct {
	ProductID           string           `json:"product_id"`
	SKU                 string           `json:"sku"`
	CurrentLocation     *StorageLocation `json:"current_location,omitempty"`
	RecommendedLocation StorageLocation  `json:"recommended_location"`
	Reason              string           `json:"reason"`
	Priority            int              `json:"priority"`
	Impact              Impact           `json:"impact"`
	Effort              Effort           `json:"effort"`
	ROI                 ROI              `json:"roi"`

	// Optional scheduling window, set by the seasonal analyzer.
	ImplementBy *time.Time `json:"implement_by,omitempty"`
	RevertBy    *time.Time `json:"revert_by,omitempty"`
}

// AnalysisSummary aggregates recommendation counts and economics.
type AnalysisSummary struct {
	HighPriority   int     `json:"high_priority"`
	MediumPriority int     `json:"medium_priority"`
	LowPriority    int     `json:"low_priority"`
	TotalSavings   float64 `json:"total_potential_savings"`
	TotalCost      float64 `json:"total_move_cost"`
	AverageROI     float64 `json:"average_roi"`
}

// ZoneUtilization reports cube usage per zone with an advisory string.
type ZoneUtilization struct {
	Zone            string  `json:"zone"`
	CapacityM3      float64 `json:"capacity_m3"`
	UsedM3          float64 `json:"used_m3"`
	UtilizationRate float64 `json:"utilization_rate"`
	Advisory        string  `json:"advisory,omitempty"`
}

// SlottingAnalysis is the transient aggregate result of one analysis run.
type SlottingAnalysis struct {
	WarehouseID          string                   `json:"warehouse_id"`
	AnalysisDate         time.Time                `json:"analysis_date"`
	TotalProducts        int                      `json:"total_products"`
	Recommendations      []SlottingRecommendation `json:"recommendations"`
	Summary              AnalysisSummary          `json:"summary"`
	VelocityDistribution map[Velocity]int         `json:"velocity_distribution"`
	ZoneUtilization      []ZoneUtilization        `json:"zone_utilization"`
}

// SlottingRule is one weighted rule of a declarative strategy.
type SlottingRule struct {
	Name      string  `json:"name"`
	Weight    float64 `json:"weight"`
	Condition string  `json:"condition"`
	Action    string  `json:"action"`
}

// SlottingConstraint is a strategy constraint; Enforced constraints are hard.
type SlottingConstraint struct {
	Name     string `json:"name"`
	Enforced bool   `json:"enforced"`
}

// ExpectedImprovements are a strategy's declared improvement percentages,
// each in [0,100].
type ExpectedImprovements struct {
	PickTimeReduction float64 `json:"pick_time_reduction_pct"`
	TravelReduction   float64 `json:"travel_reduction_pct"`
	SpaceGain         float64 `json:"space_gain_pct"`
	ProductivityGain  float64 `json:"productivity_gain_pct"`
}

// SlottingStrategy describes an alternate slotting policy. It is consumed only
// by the simulation engine and never mutates real location data.
type SlottingStrategy struct {
	Name         string               `json:"name"`
	Description  string               `json:"description,omitempty"`
	Rules        []SlottingRule       `json:"rules"`
	Constraints  []SlottingConstraint `json:"constraints"`
	Improvements ExpectedImprovements `json:"expected_improvements"`
	TotalMoves   int                  `json:"total_moves"`
}

// WarehouseKPIs is a snapshot of warehouse-wide performance indicators.
type WarehouseKPIs struct {
	AveragePickTimeMin    float64 `json:"average_pick_time_min"`
	AverageTravelDistance float64 `json:"average_travel_distance_m"`
	SpaceUtilization      float64 `json:"space_utilization_pct"`
	ProductivityRate      float64 `json:"productivity_rate"`
}

// ImplementationPhase is one phase of a simulation rollout plan.
type ImplementationPhase struct {
	Phase        int     `json:"phase"`
	Moves        int     `json:"moves"`
	DurationDays int     `json:"duration_days"`
	BenefitShare float64 `json:"benefit_share_pct"`
}

// SimulationResult projects KPIs before/after applying a strategy.
type SimulationResult struct {
	WarehouseID    string                `json:"warehouse_id"`
	Strategy       string                `json:"strategy"`
	CurrentState   WarehouseKPIs         `json:"current_state"`
	ProjectedState WarehouseKPIs         `json:"projected_state"`
	Improvements   ExpectedImprovements  `json:"improvements"`
	AnnualSavings  float64               `json:"estimated_annual_savings"`
	Plan           []ImplementationPhase `json:"implementation_plan"`
	SimulatedAt    time.Time             `json:"simulated_at"`
}
