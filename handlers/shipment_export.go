package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"p9e.in/cargotrack/config"
	"p9e.in/cargotrack/models"
	"p9e.in/cargotrack/repositories"
)

// exportHeader is the column set shared by the Excel and CSV exports:
// every stored field plus the derived display fields and totals.
var exportHeader = []string{
	"BL Number", "Container No", "Chassis No",
	"Shipping Line", "Consignee", "Shipper",
	"ETA", "Gate Out Date",
	"Free Days", "Demurrage Days",
	"Duty Status", "Penalty Duty", "Extra Charges", "Total Port Charges",
	"Freight Payment", "Freight Status",
	"Towing Charge", "Towing Destination", "Towing Car Owner", "Towing Status",
	"Total Charges",
	"Description", "Item Quantity",
	"Agent Assigned", "Supervisor Status",
	"Is Overdue", "Days Overdue",
}

func exportRow(s *models.Shipment, today models.DateOnly) []string {
	chassis := ""
	if s.ChassisNo != nil {
		chassis = *s.ChassisNo
	}
	gateOut := ""
	if s.GateOutDate != nil {
		gateOut = s.GateOutDate.ISO()
	}

	return []string{
		s.BLNumber, s.ContainerNo, chassis,
		s.ShippingLine, s.Consignee, s.Shipper,
		s.ETA.ISO(), gateOut,
		fmt.Sprintf("%d", s.FreeDays), fmt.Sprintf("%d", s.DemurrageDays),
		s.DutyStatusDisplay(), s.PenaltyDuty.StringFixed(2), s.ExtraCharges.StringFixed(2), s.TotalPortCharges().StringFixed(2),
		s.FreightPayment.StringFixed(2), s.FreightStatus.Label(),
		s.TowingCharge.StringFixed(2), s.TowingDestination, s.TowingCarOwner, s.TowingStatusDisplay(),
		s.TotalCharges().StringFixed(2),
		s.Description, fmt.Sprintf("%d", s.ItemQuantity),
		s.AgentAssigned, s.SupervisorStatus.Label(),
		fmt.Sprintf("%t", s.IsOverdue(today)), fmt.Sprintf("%d", s.DaysOverdue(today)),
	}
}

// ExportShipmentsToExcel streams every shipment record as an .xlsx
// workbook.
func ExportShipmentsToExcel(w http.ResponseWriter, r *http.Request) {
	repo := repositories.NewShipmentRepository(config.DB)
	shipments, err := repo.AllOrdered()
	if err != nil {
		config.Logger.Error("export query failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	excelFile, err := createShipmentsWorkbook(shipments)
	if err != nil {
		config.Logger.Error("excel generation failed", zap.Error(err))
		http.Error(w, "Failed to generate Excel file", http.StatusInternalServerError)
		return
	}

	buffer, err := excelFile.WriteToBuffer()
	if err != nil {
		config.Logger.Error("excel write failed", zap.Error(err))
		http.Error(w, "Failed to write Excel file", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("shipments_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buffer.Len()))

	w.WriteHeader(http.StatusOK)
	w.Write(buffer.Bytes())
}

func createShipmentsWorkbook(shipments []models.Shipment) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "Shipments"

	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	for col, title := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, err
		}
	}

	today := models.DateOf(time.Now())
	for rowIdx := range shipments {
		row := exportRow(&shipments[rowIdx], today)
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}

// ExportShipmentsToCSV streams every shipment record as CSV.
func ExportShipmentsToCSV(w http.ResponseWriter, r *http.Request) {
	repo := repositories.NewShipmentRepository(config.DB)
	shipments, err := repo.AllOrdered()
	if err != nil {
		config.Logger.Error("export query failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(exportHeader); err != nil {
		http.Error(w, "Failed to generate CSV file", http.StatusInternalServerError)
		return
	}
	today := models.DateOf(time.Now())
	for i := range shipments {
		if err := writer.Write(exportRow(&shipments[i], today)); err != nil {
			http.Error(w, "Failed to generate CSV file", http.StatusInternalServerError)
			return
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		http.Error(w, "Failed to generate CSV file", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("shipments_%s.csv", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buf.Len()))

	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
