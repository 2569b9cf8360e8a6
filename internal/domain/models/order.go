package models

import "time"

// OrderStatus tracks an order through pickup and delivery.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderAssigned  OrderStatus = "assigned"
	OrderInTransit OrderStatus = "in_transit"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderAssigned, OrderCancelled},
	OrderAssigned:  {OrderInTransit, OrderPending, OrderCancelled},
	OrderInTransit: {OrderDelivered},
}

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderAssigned, OrderInTransit, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// CanTransition reports whether an order may move from s to next.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Order struct {
	ID             int64       `json:"id"`
	TenantID       int64       `json:"tenantId"`
	TrackingNumber string      `json:"trackingNumber"`
	CustomerName   string      `json:"customerName"`
	CustomerPhone  string      `json:"customerPhone"`
	PickupAddress  string      `json:"pickupAddress"`
	PickupLat      float64     `json:"pickupLat"`
	PickupLng      float64     `json:"pickupLng"`
	DropoffAddress string      `json:"dropoffAddress"`
	DropoffLat     float64     `json:"dropoffLat"`
	DropoffLng     float64     `json:"dropoffLng"`
	WeightKg       float64     `json:"weightKg"`
	DistanceKm     float64     `json:"distanceKm"`
	Status         OrderStatus `json:"status"`
	DriverID       *int64      `json:"driverId,omitempty"`
	VehicleID      *int64      `json:"vehicleId,omitempty"`
	RouteID        *int64      `json:"routeId,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// OrderPayload is the writable subset of an order.
type OrderPayload struct {
	CustomerName   string  `json:"customerName" binding:"required"`
	CustomerPhone  string  `json:"customerPhone"`
	PickupAddress  string  `json:"pickupAddress" binding:"required"`
	PickupLat      float64 `json:"pickupLat"`
	PickupLng      float64 `json:"pickupLng"`
	DropoffAddress string  `json:"dropoffAddress" binding:"required"`
	DropoffLat     float64 `json:"dropoffLat"`
	DropoffLng     float64 `json:"dropoffLng"`
	WeightKg       float64 `json:"weightKg"`
	RouteID        *int64  `json:"routeId"`
}

// OrderFilter narrows order listings.
type OrderFilter struct {
	Status   OrderStatus
	DriverID int64
}
