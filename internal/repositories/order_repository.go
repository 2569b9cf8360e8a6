package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	intdb "gateway/internal/db"
	"gateway/internal/domain"
	"gateway/internal/domain/models"
)

type OrderRepository struct {
	DB *sql.DB
}

const orderColumns = `
	id, tenant_id, tracking_number, customer_name, COALESCE(customer_phone, ''),
	pickup_address, pickup_lat, pickup_lng,
	dropoff_address, dropoff_lat, dropoff_lng,
	weight_kg, distance_km, status, driver_id, vehicle_id, route_id,
	created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(s rowScanner) (models.Order, error) {
	var (
		o                         models.Order
		status                    string
		driver, vehicle, routeRef sql.NullInt64
	)
	err := s.Scan(
		&o.ID, &o.TenantID, &o.TrackingNumber, &o.CustomerName, &o.CustomerPhone,
		&o.PickupAddress, &o.PickupLat, &o.PickupLng,
		&o.DropoffAddress, &o.DropoffLat, &o.DropoffLng,
		&o.WeightKg, &o.DistanceKm, &status, &driver, &vehicle, &routeRef,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return models.Order{}, err
	}
	o.Status = models.OrderStatus(status)
	o.DriverID = nullableID(driver)
	o.VehicleID = nullableID(vehicle)
	o.RouteID = nullableID(routeRef)
	return o, nil
}

func nullableID(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

func orderWhere(tenantID int64, f models.OrderFilter) (string, []any) {
	clauses := []string{"tenant_id = ?"}
	args := []any{tenantID}
	if f.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, string(f.Status))
	}
	if f.DriverID > 0 {
		clauses = append(clauses, "driver_id = ?")
		args = append(args, f.DriverID)
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// List returns one page of orders and the total matching count.
func (r OrderRepository) List(ctx context.Context, tenantID int64, f models.OrderFilter, spec ListSpec) ([]models.Order, int, error) {
	where, args := orderWhere(tenantID, f)

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	suffix, pageArgs := spec.suffix()
	rows, err := r.DB.QueryContext(ctx, `SELECT `+orderColumns+` FROM orders`+where+suffix, append(args, pageArgs...)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, o)
	}
	return list, total, rows.Err()
}

// GetByID loads an order. Pass a *sql.Tx as q to read inside a transaction;
// forUpdate locks the row.
func (r OrderRepository) GetByID(ctx context.Context, q intdb.Querier, tenantID, id int64, forUpdate bool) (models.Order, error) {
	if q == nil {
		q = r.DB
	}
	query := `SELECT ` + orderColumns + ` FROM orders WHERE tenant_id = ? AND id = ? LIMIT 1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	o, err := scanOrder(q.QueryRowContext(ctx, query, tenantID, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Order{}, domain.NotFoundError{Resource: "order", Err: err}
	}
	return o, err
}

func (r OrderRepository) Create(ctx context.Context, o models.Order) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO orders (
			tenant_id, tracking_number, customer_name, customer_phone,
			pickup_address, pickup_lat, pickup_lng,
			dropoff_address, dropoff_lat, dropoff_lng,
			weight_kg, distance_km, status, route_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		o.TenantID, o.TrackingNumber, o.CustomerName, intdb.NullIfEmpty(o.CustomerPhone),
		o.PickupAddress, o.PickupLat, o.PickupLng,
		o.DropoffAddress, o.DropoffLat, o.DropoffLng,
		o.WeightKg, o.DistanceKm, string(o.Status), o.RouteID,
	)
	if err != nil {
		if intdb.IsDuplicateKey(err) {
			return 0, domain.ConflictError{Resource: "order", Msg: "tracking number already exists", Err: err}
		}
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateAssignment sets status, driver and vehicle in one statement.
func (r OrderRepository) UpdateAssignment(ctx context.Context, q intdb.Querier, tenantID, id int64, status models.OrderStatus, driverID, vehicleID *int64) error {
	if q == nil {
		q = r.DB
	}
	res, err := q.ExecContext(ctx, `
		UPDATE orders SET status = ?, driver_id = ?, vehicle_id = ?
		WHERE tenant_id = ? AND id = ?
	`, string(status), driverID, vehicleID, tenantID, id)
	if err != nil {
		return err
	}
	return requireAffected(res, "order")
}

func (r OrderRepository) UpdateStatus(ctx context.Context, q intdb.Querier, tenantID, id int64, status models.OrderStatus) error {
	if q == nil {
		q = r.DB
	}
	res, err := q.ExecContext(ctx, `UPDATE orders SET status = ? WHERE tenant_id = ? AND id = ?`, string(status), tenantID, id)
	if err != nil {
		return err
	}
	return requireAffected(res, "order")
}

func (r OrderRepository) Delete(ctx context.Context, tenantID, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM orders WHERE tenant_id = ? AND id = ?`, tenantID, id)
	if err != nil {
		return err
	}
	return requireAffected(res, "order")
}

// CountOpenForDriver counts assigned or in-transit orders of a driver.
func (r OrderRepository) CountOpenForDriver(ctx context.Context, q intdb.Querier, tenantID, driverID int64) (int, error) {
	if q == nil {
		q = r.DB
	}
	var n int
	err := q.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM orders
		WHERE tenant_id = ? AND driver_id = ? AND status IN ('assigned', 'in_transit')
	`, tenantID, driverID).Scan(&n)
	return n, err
}

// ListOpenForDriver returns the assigned and in-transit orders of a driver,
// oldest first.
func (r OrderRepository) ListOpenForDriver(ctx context.Context, tenantID, driverID int64) ([]models.Order, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+orderColumns+` FROM orders
		WHERE tenant_id = ? AND driver_id = ? AND status IN ('assigned', 'in_transit')
		ORDER BY created_at ASC, id ASC`, tenantID, driverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

func (r OrderRepository) CountByStatus(ctx context.Context, tenantID int64) (map[string]int, error) {
	return countByStatus(ctx, r.DB, "orders", tenantID)
}

func (r OrderRepository) DeliveredWeight(ctx context.Context, tenantID int64) (float64, error) {
	var w float64
	err := r.DB.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(weight_kg), 0) FROM orders
		WHERE tenant_id = ? AND status = 'delivered'
	`, tenantID).Scan(&w)
	return w, err
}

func requireAffected(res sql.Result, resource string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError{Resource: resource}
	}
	return nil
}

// countByStatus groups a tenant-scoped table by its status column. table is
// always a package constant.
func countByStatus(ctx context.Context, q intdb.Querier, table string, tenantID int64) (map[string]int, error) {
	rows, err := q.QueryContext(ctx, `SELECT status, COUNT(*) FROM `+table+` WHERE tenant_id = ? GROUP BY status`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		out[status] = n
	}
	return out, rows.Err()
}
