package services

import (
	"context"

	"gateway/internal/domain/models"
	"gateway/internal/repositories"
)

type DashboardService struct {
	Orders   repositories.OrderRepository
	Drivers  repositories.DriverRepository
	Vehicles repositories.VehicleRepository
}

func (s DashboardService) Snapshot(ctx context.Context, tenantID int64) (models.Dashboard, error) {
	var (
		out models.Dashboard
		err error
	)
	if out.OrdersByStatus, err = s.Orders.CountByStatus(ctx, tenantID); err != nil {
		return models.Dashboard{}, err
	}
	if out.DriversByStatus, err = s.Drivers.CountByStatus(ctx, tenantID); err != nil {
		return models.Dashboard{}, err
	}
	if out.VehiclesByStatus, err = s.Vehicles.CountByStatus(ctx, tenantID); err != nil {
		return models.Dashboard{}, err
	}
	if out.DeliveredWeightKg, err = s.Orders.DeliveredWeight(ctx, tenantID); err != nil {
		return models.Dashboard{}, err
	}
	return out, nil
}
