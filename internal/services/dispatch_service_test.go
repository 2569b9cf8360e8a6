package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"gateway/internal/domain"
	"gateway/internal/domain/models"
	"gateway/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDispatchService(t *testing.T) (DispatchService, sqlmock.Sqlmock) {
	conn, mock := newMock(t)
	return DispatchService{
		DB:       conn,
		Orders:   repositories.OrderRepository{DB: conn},
		Drivers:  repositories.DriverRepository{DB: conn},
		Vehicles: repositories.VehicleRepository{DB: conn},
		Now:      func() time.Time { return time.Date(2026, 3, 2, 7, 30, 0, 0, time.UTC) },
	}, mock
}

func TestDispatchAssign_MovesOrderAndDriver(t *testing.T) {
	svc, mock := newDispatchService(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`FROM orders WHERE tenant_id = \? AND id = \? LIMIT 1 FOR UPDATE`).
		WithArgs(int64(1), int64(10)).
		WillReturnRows(orderRow(10, "pending", 40, nil))
	mock.ExpectQuery(`FROM drivers WHERE tenant_id = \? AND id = \? LIMIT 1 FOR UPDATE`).
		WithArgs(int64(1), int64(5)).
		WillReturnRows(driverRow(5, "available"))
	mock.ExpectQuery(`FROM vehicles WHERE tenant_id = \? AND id = \? LIMIT 1 FOR UPDATE`).
		WithArgs(int64(1), int64(3)).
		WillReturnRows(vehicleRow(3, "active", 500))
	mock.ExpectExec(`UPDATE orders SET status = \?, driver_id = \?, vehicle_id = \?`).
		WithArgs("assigned", int64(5), int64(3), int64(1), int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE drivers SET status = \?`).
		WithArgs("on_duty", int64(1), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`FROM orders WHERE tenant_id = \? AND id = \? LIMIT 1`).
		WillReturnRows(orderRow(10, "assigned", 40, int64(5)))

	o, err := svc.Assign(context.Background(), 1, DispatchRequest{OrderID: 10, DriverID: 5, VehicleID: 3})
	require.NoError(t, err)
	assert.Equal(t, models.OrderAssigned, o.Status)
	require.NotNil(t, o.DriverID)
	assert.Equal(t, int64(5), *o.DriverID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDispatchAssign_RejectsDriverNotAvailable(t *testing.T) {
	for _, status := range []string{"on_duty", "off"} {
		svc, mock := newDispatchService(t)
		mock.ExpectBegin()
		mock.ExpectQuery(`FROM orders .* FOR UPDATE`).WillReturnRows(orderRow(10, "pending", 40, nil))
		mock.ExpectQuery(`FROM drivers .* FOR UPDATE`).WillReturnRows(driverRow(5, status))
		mock.ExpectRollback()

		_, err := svc.Assign(context.Background(), 1, DispatchRequest{OrderID: 10, DriverID: 5, VehicleID: 3})
		require.Error(t, err, status)
		assert.True(t, domain.IsConflict(err), status)
		require.NoError(t, mock.ExpectationsWereMet(), status)
	}
}

func TestDispatchAssign_OverCapacity(t *testing.T) {
	svc, mock := newDispatchService(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`FROM orders .* FOR UPDATE`).WillReturnRows(orderRow(10, "pending", 900, nil))
	mock.ExpectQuery(`FROM drivers .* FOR UPDATE`).WillReturnRows(driverRow(5, "available"))
	mock.ExpectQuery(`FROM vehicles .* FOR UPDATE`).WillReturnRows(vehicleRow(3, "active", 500))
	mock.ExpectRollback()

	_, err := svc.Assign(context.Background(), 1, DispatchRequest{OrderID: 10, DriverID: 5, VehicleID: 3})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDispatchAssign_RejectsNonPendingOrder(t *testing.T) {
	svc, mock := newDispatchService(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`FROM orders .* FOR UPDATE`).WillReturnRows(orderRow(10, "in_transit", 1, int64(2)))
	mock.ExpectRollback()

	_, err := svc.Assign(context.Background(), 1, DispatchRequest{OrderID: 10, DriverID: 5, VehicleID: 3})
	assert.True(t, domain.IsConflict(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDispatchAssign_RejectsVehicleInMaintenance(t *testing.T) {
	svc, mock := newDispatchService(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`FROM orders .* FOR UPDATE`).WillReturnRows(orderRow(10, "pending", 1, nil))
	mock.ExpectQuery(`FROM drivers .* FOR UPDATE`).WillReturnRows(driverRow(5, "available"))
	mock.ExpectQuery(`FROM vehicles .* FOR UPDATE`).WillReturnRows(vehicleRow(3, "maintenance", 500))
	mock.ExpectRollback()

	_, err := svc.Assign(context.Background(), 1, DispatchRequest{OrderID: 10, DriverID: 5, VehicleID: 3})
	assert.True(t, domain.IsConflict(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDispatchAssign_RequiresIDs(t *testing.T) {
	svc, _ := newDispatchService(t)
	_, err := svc.Assign(context.Background(), 1, DispatchRequest{OrderID: 10})
	assert.True(t, domain.IsValidation(err))
}

func TestDispatchManifest(t *testing.T) {
	svc, mock := newDispatchService(t)
	mock.ExpectQuery(`FROM drivers WHERE tenant_id = \? AND id = \? LIMIT 1`).
		WithArgs(int64(1), int64(5)).
		WillReturnRows(driverRow(5, "on_duty"))
	mock.ExpectQuery(`FROM orders\s+WHERE tenant_id = \? AND driver_id = \? AND status IN`).
		WithArgs(int64(1), int64(5)).
		WillReturnRows(orderRow(10, "assigned", 40, int64(5)))

	pdf, filename, err := svc.Manifest(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
	assert.Equal(t, "MANIFEST_5_Budi_Santoso_20260302.pdf", filename)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBuildManifestPDF_NoOrders(t *testing.T) {
	pdf, filename, err := buildManifestPDF(models.Driver{ID: 2}, nil, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.Equal(t, "MANIFEST_2_NA_20260105.pdf", filename)
}
