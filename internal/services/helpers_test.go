package services

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/require"
)

var orderRowColumns = []string{
	"id", "tenant_id", "tracking_number", "customer_name", "customer_phone",
	"pickup_address", "pickup_lat", "pickup_lng",
	"dropoff_address", "dropoff_lat", "dropoff_lng",
	"weight_kg", "distance_km", "status", "driver_id", "vehicle_id", "route_id",
	"created_at", "updated_at",
}

var (
	driverRowColumns  = []string{"id", "tenant_id", "name", "phone", "license_number", "status", "created_at"}
	vehicleRowColumns = []string{"id", "tenant_id", "vehicle_code", "plate_number", "type", "capacity_kg", "status", "last_service"}
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn, mock
}

func orderRow(id int64, status string, weight float64, driverID any) *sqlmock.Rows {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(orderRowColumns).
		AddRow(id, 1, "TRK-ABC", "Sari", "0812", "Gudang A", -6.2, 106.8, "Toko B", -6.3, 106.9,
			weight, 12.3, status, driverID, nil, nil, now, now)
}

func driverRow(id int64, status string) *sqlmock.Rows {
	return sqlmock.NewRows(driverRowColumns).
		AddRow(id, 1, "Budi Santoso", "0813", "SIM-001", status, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
}

func vehicleRow(id int64, status string, capacity float64) *sqlmock.Rows {
	return sqlmock.NewRows(vehicleRowColumns).
		AddRow(id, 1, "VAN-01", "B 1234 CD", "van", capacity, status, "2026-02-01")
}

func duplicateKeyErr() error {
	return &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
}
