package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/kocayazbey/Ayazlogistics-sub003/internal/domain"
	"github.com/kocayazbey/Ayazlogistics-sub003/internal/repository"
)

type locationRepository struct {
	db *sqlx.DB
}

// NewLocationRepository builds the Postgres location port.
func NewLocationRepository(db *sqlx.DB) repository.LocationRepository {
	return &locationRepository{db: db}
}

type locationRow struct {
	ID                  string          `db:"id"`
	Code                string          `db:"code"`
	Zone                string          `db:"zone"`
	Aisle               string          `db:"aisle"`
	Bay                 string          `db:"bay"`
	Level               int             `db:"level"`
	Position            int             `db:"position"`
	CoordX              float64         `db:"coord_x"`
	CoordY              float64         `db:"coord_y"`
	CoordZ              float64         `db:"coord_z"`
	LengthM             float64         `db:"length_m"`
	WidthM              float64         `db:"width_m"`
	HeightM             float64         `db:"height_m"`
	CapacityM3          float64         `db:"capacity_m3"`
	Type                string          `db:"type"`
	Accessibility       float64         `db:"accessibility"`
	Pickability         float64         `db:"pickability"`
	DistanceFromDock    float64         `db:"distance_from_dock"`
	DistanceFromPacking float64         `db:"distance_from_packing"`
	ErgonomicLevel      string          `db:"ergonomic_level"`
	Temperature         sql.NullString  `db:"temperature"`
	HazmatOnly          bool            `db:"hazmat_only"`
	MaxWeightKg         sql.NullFloat64 `db:"max_weight_kg"`
	CurrentOccupancy    float64         `db:"current_occupancy"`
	CurrentProductID    sql.NullString  `db:"current_product_id"`
}

const locationColumns = `
	id, code, zone, aisle, bay, level, position,
	coord_x, coord_y, coord_z,
	length_m, width_m, height_m, capacity_m3,
	type, accessibility, pickability,
	distance_from_dock, distance_from_packing, ergonomic_level,
	temperature, hazmat_only, max_weight_kg,
	current_occupancy, current_product_id
`

func (r *locationRepository) FetchCurrentAssignments(ctx context.Context, warehouseID string) (map[string]domain.StorageLocation, error) {
	query := `
		SELECT ` + locationColumns + `
		FROM storage_locations
		WHERE warehouse_id = $1
		  AND current_product_id IS NOT NULL
		ORDER BY id
	`

	var rows []locationRow
	if err := r.db.SelectContext(ctx, &rows, query, warehouseID); err != nil {
		return nil, fmt.Errorf("error fetching current assignments: %w", err)
	}

	assignments := make(map[string]domain.StorageLocation, len(rows))
	for _, row := range rows {
		loc := row.toDomain()
		if loc.CurrentProductID != "" {
			assignments[loc.CurrentProductID] = loc
		}
	}

	return assignments, nil
}

func (r *locationRepository) FetchAvailableLocations(ctx context.Context, warehouseID string) ([]domain.StorageLocation, error) {
	query := `
		SELECT ` + locationColumns + `
		FROM storage_locations
		WHERE warehouse_id = $1
		  AND current_product_id IS NULL
		  AND current_occupancy < 100
		ORDER BY id
	`

	var rows []locationRow
	if err := r.db.SelectContext(ctx, &rows, query, warehouseID); err != nil {
		return nil, fmt.Errorf("error fetching available locations: %w", err)
	}

	locations := make([]domain.StorageLocation, 0, len(rows))
	for _, row := range rows {
		locations = append(locations, row.toDomain())
	}

	return locations, nil
}

func (row locationRow) toDomain() domain.StorageLocation {
	loc := domain.StorageLocation{
		ID:       row.ID,
		Code:     row.Code,
		Zone:     row.Zone,
		Aisle:    row.Aisle,
		Bay:      row.Bay,
		Level:    row.Level,
		Position: row.Position,
		Coordinates: domain.Coordinates{
			X: row.CoordX,
			Y: row.CoordY,
			Z: row.CoordZ,
		},
		LengthM:             row.LengthM,
		WidthM:              row.WidthM,
		HeightM:             row.HeightM,
		CapacityM3:          row.CapacityM3,
		Accessibility:       row.Accessibility,
		Pickability:         row.Pickability,
		DistanceFromDock:    row.DistanceFromDock,
		DistanceFromPacking: row.DistanceFromPacking,
		HazmatOnly:          row.HazmatOnly,
		CurrentOccupancy:    clampOccupancy(row.CurrentOccupancy),
	}

	if t, ok := domain.ParseLocationType(row.Type); ok {
		loc.Type = t
	} else {
		loc.Type = domain.LocationReserve
	}

	switch domain.ErgonomicLevel(row.ErgonomicLevel) {
	case domain.ErgonomicGolden, domain.ErgonomicStandard, domain.ErgonomicDifficult:
		loc.Ergonomics = domain.ErgonomicLevel(row.ErgonomicLevel)
	default:
		loc.Ergonomics = domain.ErgonomicStandard
	}

	if row.Temperature.Valid {
		loc.Temperature = row.Temperature.String
	}
	if row.MaxWeightKg.Valid {
		loc.MaxWeightKg = row.MaxWeightKg.Float64
	}
	if row.CurrentProductID.Valid {
		loc.CurrentProductID = row.CurrentProductID.String
	}

	return loc
}

func clampOccupancy(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
