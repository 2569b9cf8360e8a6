package models

type VehicleStatus string

const (
	VehicleActive      VehicleStatus = "active"
	VehicleMaintenance VehicleStatus = "maintenance"
	VehicleRetired     VehicleStatus = "retired"
)

func (s VehicleStatus) Valid() bool {
	return s == VehicleActive || s == VehicleMaintenance || s == VehicleRetired
}

type Vehicle struct {
	ID          int64         `json:"id"`
	TenantID    int64         `json:"tenantId"`
	VehicleCode string        `json:"vehicleCode"`
	PlateNumber string        `json:"plateNumber"`
	Type        string        `json:"type"`
	CapacityKg  float64       `json:"capacityKg"`
	Status      VehicleStatus `json:"status"`
	LastService string        `json:"lastService,omitempty"` // YYYY-MM-DD, "" when null
}

type VehiclePayload struct {
	VehicleCode string        `json:"vehicleCode" binding:"required"`
	PlateNumber string        `json:"plateNumber" binding:"required"`
	Type        string        `json:"type"`
	CapacityKg  float64       `json:"capacityKg"`
	Status      VehicleStatus `json:"status"`
	LastService string        `json:"lastService"`
}
