package repositories

import (
	"context"
	"database/sql"
	"errors"

	intdb "gateway/internal/db"
	"gateway/internal/domain"
	"gateway/internal/domain/models"
)

type VehicleRepository struct {
	DB *sql.DB
}

const vehicleColumns = `
	id, tenant_id, vehicle_code, plate_number, COALESCE(type, ''), capacity_kg, status,
	CASE WHEN last_service IS NULL THEN '' ELSE DATE_FORMAT(last_service, '%Y-%m-%d') END`

func scanVehicle(s rowScanner) (models.Vehicle, error) {
	var (
		v      models.Vehicle
		status string
	)
	if err := s.Scan(&v.ID, &v.TenantID, &v.VehicleCode, &v.PlateNumber, &v.Type, &v.CapacityKg, &status, &v.LastService); err != nil {
		return models.Vehicle{}, err
	}
	v.Status = models.VehicleStatus(status)
	return v, nil
}

// List supports a free-text q over code and plate number.
func (r VehicleRepository) List(ctx context.Context, tenantID int64, q string, spec ListSpec) ([]models.Vehicle, int, error) {
	where := ` WHERE tenant_id = ?`
	args := []any{tenantID}
	if q != "" {
		where += ` AND (vehicle_code LIKE ? OR plate_number LIKE ?)`
		like := "%" + q + "%"
		args = append(args, like, like)
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM vehicles`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	suffix, pageArgs := spec.suffix()
	rows, err := r.DB.QueryContext(ctx, `SELECT `+vehicleColumns+` FROM vehicles`+where+suffix, append(args, pageArgs...)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list := []models.Vehicle{}
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, v)
	}
	return list, total, rows.Err()
}

func (r VehicleRepository) GetByID(ctx context.Context, q intdb.Querier, tenantID, id int64, forUpdate bool) (models.Vehicle, error) {
	if q == nil {
		q = r.DB
	}
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE tenant_id = ? AND id = ? LIMIT 1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	v, err := scanVehicle(q.QueryRowContext(ctx, query, tenantID, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Vehicle{}, domain.NotFoundError{Resource: "vehicle", Err: err}
	}
	return v, err
}

func (r VehicleRepository) Create(ctx context.Context, v models.Vehicle) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO vehicles (tenant_id, vehicle_code, plate_number, type, capacity_kg, status, last_service)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, v.TenantID, v.VehicleCode, v.PlateNumber, intdb.NullIfEmpty(v.Type), v.CapacityKg, string(v.Status), intdb.NullIfEmpty(v.LastService))
	if err != nil {
		if intdb.IsDuplicateKey(err) {
			return 0, domain.ConflictError{Resource: "vehicle", Msg: "vehicle code or plate number already registered", Err: err}
		}
		return 0, err
	}
	return res.LastInsertId()
}

func (r VehicleRepository) Update(ctx context.Context, v models.Vehicle) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE vehicles
		SET vehicle_code = ?, plate_number = ?, type = ?, capacity_kg = ?, status = ?, last_service = ?
		WHERE tenant_id = ? AND id = ?
	`, v.VehicleCode, v.PlateNumber, intdb.NullIfEmpty(v.Type), v.CapacityKg, string(v.Status), intdb.NullIfEmpty(v.LastService), v.TenantID, v.ID)
	if err != nil {
		if intdb.IsDuplicateKey(err) {
			return domain.ConflictError{Resource: "vehicle", Msg: "vehicle code or plate number already registered", Err: err}
		}
		return err
	}
	return requireAffected(res, "vehicle")
}

func (r VehicleRepository) Delete(ctx context.Context, tenantID, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM vehicles WHERE tenant_id = ? AND id = ?`, tenantID, id)
	if err != nil {
		return err
	}
	return requireAffected(res, "vehicle")
}

func (r VehicleRepository) CountByStatus(ctx context.Context, tenantID int64) (map[string]int, error) {
	return countByStatus(ctx, r.DB, "vehicles", tenantID)
}
