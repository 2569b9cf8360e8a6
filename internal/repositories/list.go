package repositories

import "fmt"

// ListSpec is a resolved, SQL-safe window over a listing. OrderBy must only
// contain column names taken from one of the *SortColumns maps.
type ListSpec struct {
	Limit   int
	Offset  int
	OrderBy string
}

func (s ListSpec) suffix() (string, []any) {
	order := s.OrderBy
	if order == "" {
		order = "id DESC"
	}
	return fmt.Sprintf(" ORDER BY %s LIMIT ? OFFSET ?", order), []any{s.Limit, s.Offset}
}

// Sortable properties per entity, keyed by the JSON field name clients see.
var (
	OrderSortColumns = map[string]string{
		"id":             "id",
		"trackingNumber": "tracking_number",
		"customerName":   "customer_name",
		"status":         "status",
		"weightKg":       "weight_kg",
		"distanceKm":     "distance_km",
		"createdAt":      "created_at",
		"updatedAt":      "updated_at",
	}
	DriverSortColumns = map[string]string{
		"id":            "id",
		"name":          "name",
		"licenseNumber": "license_number",
		"status":        "status",
		"createdAt":     "created_at",
	}
	VehicleSortColumns = map[string]string{
		"id":          "id",
		"vehicleCode": "vehicle_code",
		"plateNumber": "plate_number",
		"type":        "type",
		"capacityKg":  "capacity_kg",
		"status":      "status",
		"lastService": "last_service",
	}
	RouteSortColumns = map[string]string{
		"id":         "id",
		"name":       "name",
		"distanceKm": "distance_km",
	}
)
