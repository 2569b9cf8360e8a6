package repositories

import (
	"context"
	"database/sql"
	"errors"

	intdb "gateway/internal/db"
	"gateway/internal/domain"
	"gateway/internal/domain/models"
)

type DriverRepository struct {
	DB *sql.DB
}

const driverColumns = `id, tenant_id, name, COALESCE(phone, ''), license_number, status, created_at`

func scanDriver(s rowScanner) (models.Driver, error) {
	var (
		d      models.Driver
		status string
	)
	if err := s.Scan(&d.ID, &d.TenantID, &d.Name, &d.Phone, &d.LicenseNumber, &status, &d.CreatedAt); err != nil {
		return models.Driver{}, err
	}
	d.Status = models.DriverStatus(status)
	return d, nil
}

func (r DriverRepository) List(ctx context.Context, tenantID int64, status models.DriverStatus, spec ListSpec) ([]models.Driver, int, error) {
	where := ` WHERE tenant_id = ?`
	args := []any{tenantID}
	if status != "" {
		where += ` AND status = ?`
		args = append(args, string(status))
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM drivers`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	suffix, pageArgs := spec.suffix()
	rows, err := r.DB.QueryContext(ctx, `SELECT `+driverColumns+` FROM drivers`+where+suffix, append(args, pageArgs...)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list := []models.Driver{}
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, d)
	}
	return list, total, rows.Err()
}

func (r DriverRepository) GetByID(ctx context.Context, q intdb.Querier, tenantID, id int64, forUpdate bool) (models.Driver, error) {
	if q == nil {
		q = r.DB
	}
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE tenant_id = ? AND id = ? LIMIT 1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	d, err := scanDriver(q.QueryRowContext(ctx, query, tenantID, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Driver{}, domain.NotFoundError{Resource: "driver", Err: err}
	}
	return d, err
}

func (r DriverRepository) Create(ctx context.Context, d models.Driver) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO drivers (tenant_id, name, phone, license_number, status)
		VALUES (?, ?, ?, ?, ?)
	`, d.TenantID, d.Name, intdb.NullIfEmpty(d.Phone), d.LicenseNumber, string(d.Status))
	if err != nil {
		if intdb.IsDuplicateKey(err) {
			return 0, domain.ConflictError{Resource: "driver", Msg: "license number already registered", Err: err}
		}
		return 0, err
	}
	return res.LastInsertId()
}

func (r DriverRepository) Update(ctx context.Context, d models.Driver) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE drivers SET name = ?, phone = ?, license_number = ?, status = ?
		WHERE tenant_id = ? AND id = ?
	`, d.Name, intdb.NullIfEmpty(d.Phone), d.LicenseNumber, string(d.Status), d.TenantID, d.ID)
	if err != nil {
		if intdb.IsDuplicateKey(err) {
			return domain.ConflictError{Resource: "driver", Msg: "license number already registered", Err: err}
		}
		return err
	}
	return requireAffected(res, "driver")
}

func (r DriverRepository) SetStatus(ctx context.Context, q intdb.Querier, tenantID, id int64, status models.DriverStatus) error {
	if q == nil {
		q = r.DB
	}
	res, err := q.ExecContext(ctx, `UPDATE drivers SET status = ? WHERE tenant_id = ? AND id = ?`, string(status), tenantID, id)
	if err != nil {
		return err
	}
	return requireAffected(res, "driver")
}

func (r DriverRepository) Delete(ctx context.Context, tenantID, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM drivers WHERE tenant_id = ? AND id = ?`, tenantID, id)
	if err != nil {
		return err
	}
	return requireAffected(res, "driver")
}

func (r DriverRepository) CountByStatus(ctx context.Context, tenantID int64) (map[string]int, error) {
	return countByStatus(ctx, r.DB, "drivers", tenantID)
}
