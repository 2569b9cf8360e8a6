package models

// Stop is a single waypoint of a delivery route.
type Stop struct {
	Label string  `json:"label"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
}

type Route struct {
	ID         int64   `json:"id"`
	TenantID   int64   `json:"tenantId"`
	Name       string  `json:"name"`
	Stops      []Stop  `json:"stops"`
	DistanceKm float64 `json:"distanceKm"`
}

type RoutePayload struct {
	Name  string `json:"name" binding:"required"`
	Stops []Stop `json:"stops" binding:"required,min=2"`
}
