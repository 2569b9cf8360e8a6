package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	intdb "gateway/internal/db"
	"gateway/internal/domain"
	"gateway/internal/domain/models"
	"gateway/internal/listquery"
	"gateway/internal/repositories"
	"gateway/internal/utils"
)

// OrderService owns order creation and the order status lifecycle.
type OrderService struct {
	DB        *sql.DB
	Repo      repositories.OrderRepository
	Drivers   repositories.DriverRepository
	Routes    repositories.RouteRepository
	Limits    ListLimits
	RequestID string
}

func (s OrderService) List(ctx context.Context, tenantID int64, f models.OrderFilter, q listquery.Directives) (domain.Page[models.Order], error) {
	if f.Status != "" && !f.Status.Valid() {
		return domain.Page[models.Order]{}, domain.ValidationError{Field: "status", Msg: "unknown order status"}
	}
	paging, spec, err := resolveList(q, repositories.OrderSortColumns, s.Limits)
	if err != nil {
		return domain.Page[models.Order]{}, err
	}
	items, total, err := s.Repo.List(ctx, tenantID, f, spec)
	if err != nil {
		return domain.Page[models.Order]{}, err
	}
	return domain.NewPage(items, paging, total), nil
}

func (s OrderService) Get(ctx context.Context, tenantID, id int64) (models.Order, error) {
	return s.Repo.GetByID(ctx, nil, tenantID, id, false)
}

func (s OrderService) Create(ctx context.Context, tenantID int64, p models.OrderPayload) (models.Order, error) {
	if err := validateOrderPayload(p); err != nil {
		return models.Order{}, err
	}
	if p.RouteID != nil {
		if _, err := s.Routes.GetByID(ctx, tenantID, *p.RouteID); err != nil {
			return models.Order{}, err
		}
	}

	distance := utils.HaversineKm(
		utils.Point{Lat: p.PickupLat, Lng: p.PickupLng},
		utils.Point{Lat: p.DropoffLat, Lng: p.DropoffLng},
	)

	o := models.Order{
		TenantID:       tenantID,
		TrackingNumber: utils.NewTrackingNumber(),
		CustomerName:   utils.NormalizeSpace(p.CustomerName),
		CustomerPhone:  strings.TrimSpace(p.CustomerPhone),
		PickupAddress:  strings.TrimSpace(p.PickupAddress),
		PickupLat:      p.PickupLat,
		PickupLng:      p.PickupLng,
		DropoffAddress: strings.TrimSpace(p.DropoffAddress),
		DropoffLat:     p.DropoffLat,
		DropoffLng:     p.DropoffLng,
		WeightKg:       p.WeightKg,
		DistanceKm:     utils.RoundTo(distance, 3),
		Status:         models.OrderPending,
		RouteID:        p.RouteID,
	}

	id, err := s.Repo.Create(ctx, o)
	if err != nil {
		return models.Order{}, err
	}
	utils.LogEvent(s.RequestID, "orders", "create", fmt.Sprintf("order_id=%d tracking=%s", id, o.TrackingNumber))
	return s.Repo.GetByID(ctx, nil, tenantID, id, false)
}

// UpdateStatus moves an order along its lifecycle. Moving back to pending or
// to cancelled clears the assignment; leaving the open states releases the
// driver once they have no other open orders.
func (s OrderService) UpdateStatus(ctx context.Context, tenantID, id int64, next models.OrderStatus) (models.Order, error) {
	if !next.Valid() {
		return models.Order{}, domain.ValidationError{Field: "status", Msg: "unknown order status"}
	}

	err := intdb.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		o, err := s.Repo.GetByID(ctx, tx, tenantID, id, true)
		if err != nil {
			return err
		}
		if !o.Status.CanTransition(next) {
			return domain.ConflictError{Resource: "order", Msg: fmt.Sprintf("cannot move from %s to %s", o.Status, next)}
		}

		switch next {
		case models.OrderPending, models.OrderCancelled:
			err = s.Repo.UpdateAssignment(ctx, tx, tenantID, id, next, nil, nil)
		default:
			err = s.Repo.UpdateStatus(ctx, tx, tenantID, id, next)
		}
		if err != nil {
			return err
		}

		if o.DriverID != nil && (next == models.OrderPending || next == models.OrderCancelled || next == models.OrderDelivered) {
			return releaseDriverIfIdle(ctx, tx, s.Repo, s.Drivers, tenantID, *o.DriverID)
		}
		return nil
	})
	if err != nil {
		return models.Order{}, err
	}

	utils.LogEvent(s.RequestID, "orders", "update_status", fmt.Sprintf("order_id=%d status=%s", id, next))
	return s.Repo.GetByID(ctx, nil, tenantID, id, false)
}

// Delete removes an order that has not been dispatched yet.
func (s OrderService) Delete(ctx context.Context, tenantID, id int64) error {
	o, err := s.Repo.GetByID(ctx, nil, tenantID, id, false)
	if err != nil {
		return err
	}
	if o.Status != models.OrderPending {
		return domain.ConflictError{Resource: "order", Msg: "only pending orders can be deleted"}
	}
	return s.Repo.Delete(ctx, tenantID, id)
}

func releaseDriverIfIdle(ctx context.Context, tx *sql.Tx, orders repositories.OrderRepository, drivers repositories.DriverRepository, tenantID, driverID int64) error {
	open, err := orders.CountOpenForDriver(ctx, tx, tenantID, driverID)
	if err != nil {
		return err
	}
	if open > 0 {
		return nil
	}
	return drivers.SetStatus(ctx, tx, tenantID, driverID, models.DriverAvailable)
}

func validateOrderPayload(p models.OrderPayload) error {
	if strings.TrimSpace(p.CustomerName) == "" {
		return domain.ValidationError{Field: "customerName", Msg: "required"}
	}
	if strings.TrimSpace(p.PickupAddress) == "" {
		return domain.ValidationError{Field: "pickupAddress", Msg: "required"}
	}
	if strings.TrimSpace(p.DropoffAddress) == "" {
		return domain.ValidationError{Field: "dropoffAddress", Msg: "required"}
	}
	if p.WeightKg < 0 {
		return domain.ValidationError{Field: "weightKg", Msg: "must not be negative"}
	}
	if err := validateCoordinate("pickup", p.PickupLat, p.PickupLng); err != nil {
		return err
	}
	return validateCoordinate("dropoff", p.DropoffLat, p.DropoffLng)
}

func validateCoordinate(field string, lat, lng float64) error {
	if lat < -90 || lat > 90 {
		return domain.ValidationError{Field: field + "Lat", Msg: "must be between -90 and 90"}
	}
	if lng < -180 || lng > 180 {
		return domain.ValidationError{Field: field + "Lng", Msg: "must be between -180 and 180"}
	}
	return nil
}
