package models

// Dashboard is the operational snapshot for one tenant.
type Dashboard struct {
	OrdersByStatus    map[string]int `json:"ordersByStatus"`
	DriversByStatus   map[string]int `json:"driversByStatus"`
	VehiclesByStatus  map[string]int `json:"vehiclesByStatus"`
	DeliveredWeightKg float64        `json:"deliveredWeightKg"`
}
