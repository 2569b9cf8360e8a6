package services

import (
	"context"
	"fmt"
	"strings"

	"gateway/internal/domain"
	"gateway/internal/domain/models"
	"gateway/internal/listquery"
	"gateway/internal/repositories"
	"gateway/internal/utils"
)

type DriverService struct {
	Repo      repositories.DriverRepository
	Limits    ListLimits
	RequestID string
}

func (s DriverService) List(ctx context.Context, tenantID int64, status models.DriverStatus, q listquery.Directives) (domain.Page[models.Driver], error) {
	if status != "" && !status.Valid() {
		return domain.Page[models.Driver]{}, domain.ValidationError{Field: "status", Msg: "unknown driver status"}
	}
	paging, spec, err := resolveList(q, repositories.DriverSortColumns, s.Limits)
	if err != nil {
		return domain.Page[models.Driver]{}, err
	}
	items, total, err := s.Repo.List(ctx, tenantID, status, spec)
	if err != nil {
		return domain.Page[models.Driver]{}, err
	}
	return domain.NewPage(items, paging, total), nil
}

func (s DriverService) Get(ctx context.Context, tenantID, id int64) (models.Driver, error) {
	return s.Repo.GetByID(ctx, nil, tenantID, id, false)
}

func (s DriverService) Create(ctx context.Context, tenantID int64, p models.DriverPayload) (models.Driver, error) {
	d, err := driverFromPayload(tenantID, p)
	if err != nil {
		return models.Driver{}, err
	}
	id, err := s.Repo.Create(ctx, d)
	if err != nil {
		return models.Driver{}, err
	}
	utils.LogEvent(s.RequestID, "drivers", "create", fmt.Sprintf("driver_id=%d", id))
	return s.Repo.GetByID(ctx, nil, tenantID, id, false)
}

func (s DriverService) Update(ctx context.Context, tenantID, id int64, p models.DriverPayload) (models.Driver, error) {
	d, err := driverFromPayload(tenantID, p)
	if err != nil {
		return models.Driver{}, err
	}
	d.ID = id
	if err := s.Repo.Update(ctx, d); err != nil {
		return models.Driver{}, err
	}
	return s.Repo.GetByID(ctx, nil, tenantID, id, false)
}

func (s DriverService) Delete(ctx context.Context, tenantID, id int64) error {
	return s.Repo.Delete(ctx, tenantID, id)
}

func driverFromPayload(tenantID int64, p models.DriverPayload) (models.Driver, error) {
	name := utils.NormalizeSpace(p.Name)
	license := strings.ToUpper(strings.TrimSpace(p.LicenseNumber))
	if name == "" || license == "" {
		return models.Driver{}, domain.ValidationError{Msg: "name and licenseNumber are required"}
	}
	status := p.Status
	if status == "" {
		status = models.DriverAvailable
	}
	if !status.Valid() {
		return models.Driver{}, domain.ValidationError{Field: "status", Msg: "unknown driver status"}
	}
	return models.Driver{
		TenantID:      tenantID,
		Name:          name,
		Phone:         strings.TrimSpace(p.Phone),
		LicenseNumber: license,
		Status:        status,
	}, nil
}

type VehicleService struct {
	Repo      repositories.VehicleRepository
	Limits    ListLimits
	RequestID string
}

func (s VehicleService) List(ctx context.Context, tenantID int64, search string, q listquery.Directives) (domain.Page[models.Vehicle], error) {
	paging, spec, err := resolveList(q, repositories.VehicleSortColumns, s.Limits)
	if err != nil {
		return domain.Page[models.Vehicle]{}, err
	}
	items, total, err := s.Repo.List(ctx, tenantID, strings.TrimSpace(search), spec)
	if err != nil {
		return domain.Page[models.Vehicle]{}, err
	}
	return domain.NewPage(items, paging, total), nil
}

func (s VehicleService) Get(ctx context.Context, tenantID, id int64) (models.Vehicle, error) {
	return s.Repo.GetByID(ctx, nil, tenantID, id, false)
}

func (s VehicleService) Create(ctx context.Context, tenantID int64, p models.VehiclePayload) (models.Vehicle, error) {
	v, err := vehicleFromPayload(tenantID, p)
	if err != nil {
		return models.Vehicle{}, err
	}
	id, err := s.Repo.Create(ctx, v)
	if err != nil {
		return models.Vehicle{}, err
	}
	utils.LogEvent(s.RequestID, "vehicles", "create", fmt.Sprintf("vehicle_id=%d code=%s", id, v.VehicleCode))
	return s.Repo.GetByID(ctx, nil, tenantID, id, false)
}

func (s VehicleService) Update(ctx context.Context, tenantID, id int64, p models.VehiclePayload) (models.Vehicle, error) {
	v, err := vehicleFromPayload(tenantID, p)
	if err != nil {
		return models.Vehicle{}, err
	}
	v.ID = id
	if err := s.Repo.Update(ctx, v); err != nil {
		return models.Vehicle{}, err
	}
	return s.Repo.GetByID(ctx, nil, tenantID, id, false)
}

func (s VehicleService) Delete(ctx context.Context, tenantID, id int64) error {
	return s.Repo.Delete(ctx, tenantID, id)
}

func vehicleFromPayload(tenantID int64, p models.VehiclePayload) (models.Vehicle, error) {
	code := strings.TrimSpace(p.VehicleCode)
	plate := strings.ToUpper(utils.NormalizeSpace(p.PlateNumber))
	if code == "" || plate == "" {
		return models.Vehicle{}, domain.ValidationError{Msg: "vehicleCode and plateNumber are required"}
	}
	if p.CapacityKg < 0 {
		return models.Vehicle{}, domain.ValidationError{Field: "capacityKg", Msg: "must not be negative"}
	}
	status := p.Status
	if status == "" {
		status = models.VehicleActive
	}
	if !status.Valid() {
		return models.Vehicle{}, domain.ValidationError{Field: "status", Msg: "unknown vehicle status"}
	}
	lastService := strings.TrimSpace(p.LastService)
	if lastService != "" {
		t, err := utils.ParseDate(lastService)
		if err != nil {
			return models.Vehicle{}, domain.ValidationError{Field: "lastService", Msg: "must be YYYY-MM-DD", Err: err}
		}
		lastService = utils.FormatDate(t)
	}
	return models.Vehicle{
		TenantID:    tenantID,
		VehicleCode: code,
		PlateNumber: plate,
		Type:        strings.TrimSpace(p.Type),
		CapacityKg:  p.CapacityKg,
		Status:      status,
		LastService: lastService,
	}, nil
}
