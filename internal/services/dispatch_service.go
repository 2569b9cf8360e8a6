package services

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	intdb "gateway/internal/db"
	"gateway/internal/domain"
	"gateway/internal/domain/models"
	"gateway/internal/repositories"
	"gateway/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DispatchService assigns drivers and vehicles to orders and prints the
// driver's run sheet.
type DispatchService struct {
	DB        *sql.DB
	Orders    repositories.OrderRepository
	Drivers   repositories.DriverRepository
	Vehicles  repositories.VehicleRepository
	RequestID string
	Now       func() time.Time
}

type DispatchRequest struct {
	OrderID   int64 `json:"orderId" binding:"required"`
	DriverID  int64 `json:"driverId" binding:"required"`
	VehicleID int64 `json:"vehicleId" binding:"required"`
}

// Assign puts an order on a driver and vehicle. The driver must be available,
// the vehicle active and able to carry the order weight.
func (s DispatchService) Assign(ctx context.Context, tenantID int64, req DispatchRequest) (models.Order, error) {
	if req.OrderID <= 0 || req.DriverID <= 0 || req.VehicleID <= 0 {
		return models.Order{}, domain.ValidationError{Msg: "orderId, driverId and vehicleId are required"}
	}

	err := intdb.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		o, err := s.Orders.GetByID(ctx, tx, tenantID, req.OrderID, true)
		if err != nil {
			return err
		}
		if o.Status != models.OrderPending {
			return domain.ConflictError{Resource: "order", Msg: fmt.Sprintf("order is %s, only pending orders can be dispatched", o.Status)}
		}

		d, err := s.Drivers.GetByID(ctx, tx, tenantID, req.DriverID, true)
		if err != nil {
			return err
		}
		if d.Status != models.DriverAvailable {
			return domain.ConflictError{Resource: "driver", Msg: fmt.Sprintf("driver is %s", d.Status)}
		}

		v, err := s.Vehicles.GetByID(ctx, tx, tenantID, req.VehicleID, true)
		if err != nil {
			return err
		}
		if v.Status != models.VehicleActive {
			return domain.ConflictError{Resource: "vehicle", Msg: fmt.Sprintf("vehicle is %s", v.Status)}
		}
		if v.CapacityKg > 0 && o.WeightKg > v.CapacityKg {
			return domain.ValidationError{Field: "vehicleId", Msg: fmt.Sprintf("order weight %.1f kg exceeds vehicle capacity %.1f kg", o.WeightKg, v.CapacityKg)}
		}

		driverID, vehicleID := d.ID, v.ID
		if err := s.Orders.UpdateAssignment(ctx, tx, tenantID, o.ID, models.OrderAssigned, &driverID, &vehicleID); err != nil {
			return err
		}
		return s.Drivers.SetStatus(ctx, tx, tenantID, d.ID, models.DriverOnDuty)
	})
	if err != nil {
		return models.Order{}, err
	}

	utils.LogEvent(s.RequestID, "dispatch", "assign",
		fmt.Sprintf("order_id=%d driver_id=%d vehicle_id=%d", req.OrderID, req.DriverID, req.VehicleID))
	return s.Orders.GetByID(ctx, nil, tenantID, req.OrderID, false)
}

// Manifest renders the open orders of a driver as a PDF.
func (s DispatchService) Manifest(ctx context.Context, tenantID, driverID int64) ([]byte, string, error) {
	d, err := s.Drivers.GetByID(ctx, nil, tenantID, driverID, false)
	if err != nil {
		return nil, "", err
	}
	orders, err := s.Orders.ListOpenForDriver(ctx, tenantID, driverID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "dispatch", "manifest", fmt.Sprintf("driver_id=%d orders=%d", driverID, len(orders)))
	return buildManifestPDF(d, orders, s.now())
}

func (s DispatchService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func buildManifestPDF(d models.Driver, orders []models.Order, printed time.Time) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Driver Manifest", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "DRIVER MANIFEST")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	header := []string{
		fmt.Sprintf("Driver   : %s", safe(d.Name, "-")),
		fmt.Sprintf("License  : %s", safe(d.LicenseNumber, "-")),
		fmt.Sprintf("Phone    : %s", safe(d.Phone, "-")),
		fmt.Sprintf("Printed  : %s", printed.Format("2006-01-02 15:04")),
		fmt.Sprintf("Stops    : %d", len(orders)),
	}
	for _, line := range header {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}
	pdf.Ln(4)

	if len(orders) == 0 {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.Cell(0, 7, "No open orders.")
		pdf.Ln(7)
	}

	var totalKg, totalKm float64
	for i, o := range orders {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, fmt.Sprintf("%d) %s  [%s]", i+1, o.TrackingNumber, o.Status))
		pdf.Ln(7)

		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, fmt.Sprintf("Customer : %s %s", safe(o.CustomerName, "-"), safe(o.CustomerPhone, "")), "", "", false)
		pdf.MultiCell(0, 6, "Pickup   : "+safe(o.PickupAddress, "-"), "", "", false)
		pdf.MultiCell(0, 6, "Dropoff  : "+safe(o.DropoffAddress, "-"), "", "", false)
		pdf.Cell(0, 6, fmt.Sprintf("Weight %.1f kg  Distance %.1f km", o.WeightKg, o.DistanceKm))
		pdf.Ln(9)

		totalKg += o.WeightKg
		totalKm += o.DistanceKm
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total: %.1f kg, %.1f km", totalKg, totalKm))
	pdf.Ln(10)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("MANIFEST_%d_%s_%s.pdf", d.ID, safeFilenamePart(d.Name), printed.Format("20060102"))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
