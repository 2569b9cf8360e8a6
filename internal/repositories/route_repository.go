package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"gateway/internal/domain"
	"gateway/internal/domain/models"
)

type RouteRepository struct {
	DB *sql.DB
}

const routeColumns = `id, tenant_id, name, stops, distance_km`

func scanRoute(s rowScanner) (models.Route, error) {
	var (
		rt    models.Route
		stops []byte
	)
	if err := s.Scan(&rt.ID, &rt.TenantID, &rt.Name, &stops, &rt.DistanceKm); err != nil {
		return models.Route{}, err
	}
	if err := json.Unmarshal(stops, &rt.Stops); err != nil {
		return models.Route{}, domain.InternalError{Msg: "corrupt route stops", Err: err}
	}
	return rt, nil
}

func (r RouteRepository) List(ctx context.Context, tenantID int64, spec ListSpec) ([]models.Route, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM routes WHERE tenant_id = ?`, tenantID).Scan(&total); err != nil {
		return nil, 0, err
	}

	suffix, pageArgs := spec.suffix()
	rows, err := r.DB.QueryContext(ctx, `SELECT `+routeColumns+` FROM routes WHERE tenant_id = ?`+suffix, append([]any{tenantID}, pageArgs...)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list := []models.Route{}
	for rows.Next() {
		rt, err := scanRoute(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, rt)
	}
	return list, total, rows.Err()
}

func (r RouteRepository) GetByID(ctx context.Context, tenantID, id int64) (models.Route, error) {
	rt, err := scanRoute(r.DB.QueryRowContext(ctx, `SELECT `+routeColumns+` FROM routes WHERE tenant_id = ? AND id = ? LIMIT 1`, tenantID, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Route{}, domain.NotFoundError{Resource: "route", Err: err}
	}
	return rt, err
}

func (r RouteRepository) Create(ctx context.Context, rt models.Route) (int64, error) {
	stops, err := json.Marshal(rt.Stops)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO routes (tenant_id, name, stops, distance_km) VALUES (?, ?, ?, ?)
	`, rt.TenantID, rt.Name, stops, rt.DistanceKm)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r RouteRepository) Update(ctx context.Context, rt models.Route) error {
	stops, err := json.Marshal(rt.Stops)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, `
		UPDATE routes SET name = ?, stops = ?, distance_km = ? WHERE tenant_id = ? AND id = ?
	`, rt.Name, stops, rt.DistanceKm, rt.TenantID, rt.ID)
	if err != nil {
		return err
	}
	return requireAffected(res, "route")
}

func (r RouteRepository) Delete(ctx context.Context, tenantID, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM routes WHERE tenant_id = ? AND id = ?`, tenantID, id)
	if err != nil {
		return err
	}
	return requireAffected(res, "route")
}
