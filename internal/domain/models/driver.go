package models

import "time"

type DriverStatus string

const (
	DriverAvailable DriverStatus = "available"
	DriverOnDuty    DriverStatus = "on_duty"
	DriverOff       DriverStatus = "off"
)

func (s DriverStatus) Valid() bool {
	return s == DriverAvailable || s == DriverOnDuty || s == DriverOff
}

type Driver struct {
	ID            int64        `json:"id"`
	TenantID      int64        `json:"tenantId"`
	Name          string       `json:"name"`
	Phone         string       `json:"phone"`
	LicenseNumber string       `json:"licenseNumber"`
	Status        DriverStatus `json:"status"`
	CreatedAt     time.Time    `json:"createdAt"`
}

type DriverPayload struct {
	Name          string       `json:"name" binding:"required"`
	Phone         string       `json:"phone"`
	LicenseNumber string       `json:"licenseNumber" binding:"required"`
	Status        DriverStatus `json:"status"`
}
