package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"p9e.in/cargotrack/config"
	"p9e.in/cargotrack/models"
	"p9e.in/cargotrack/repositories"
	"p9e.in/cargotrack/utils"
)

// Import sheet column order. Mirrors the export layout exactly so an
// exported workbook re-imports as-is; the derived columns (port/total
// charges, overdue flags) are never read back.
const (
	colBLNumber = iota
	colContainerNo
	colChassisNo
	colShippingLine
	colConsignee
	colShipper
	colETA
	colGateOutDate
	colFreeDays
	colDemurrageDays
	colDutyStatus
	colPenaltyDuty
	colExtraCharges
	colTotalPortCharges // derived, ignored
	colFreightPayment
	colFreightStatus
	colTowingCharge
	colTowingDestination
	colTowingCarOwner
	colTowingStatus
	colTotalCharges // derived, ignored
	colDescription
	colItemQuantity
	colAgentAssigned
	colSupervisorStatus
	colIsOverdue    // derived, ignored
	colDaysOverdue  // derived, ignored
	importColumnCount
)

// ImportShipmentsFromExcel bulk-loads records from an uploaded .xlsx
// file. Rows are applied with get-or-create semantics per BL number, so
// re-importing the same sheet never overwrites existing records.
func ImportShipmentsFromExcel(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(50 << 20); err != nil {
		http.Error(w, "bad multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file field: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	f, err := excelize.OpenReader(file)
	if err != nil {
		http.Error(w, "Failed to read Excel file", http.StatusBadRequest)
		return
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		http.Error(w, "No sheets found in Excel file", http.StatusBadRequest)
		return
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		http.Error(w, "Failed to read sheet rows", http.StatusBadRequest)
		return
	}
	if len(rows) < 2 {
		http.Error(w, "Sheet has no data rows", http.StatusBadRequest)
		return
	}

	repo := repositories.NewShipmentRepository(config.DB)
	created := make([]string, 0)
	skipped := make([]string, 0)
	rowErrors := make([]string, 0)

	// Row 1 is the header.
	for i, row := range rows[1:] {
		rowNum := i + 2
		shipment, err := parseImportRow(row)
		if err != nil {
			rowErrors = append(rowErrors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}

		wasCreated, err := repo.GetOrCreate(shipment)
		if err != nil {
			config.Logger.Error("import row failed", zap.Int("row", rowNum), zap.Error(err))
			rowErrors = append(rowErrors, fmt.Sprintf("row %d: database error", rowNum))
			continue
		}
		if wasCreated {
			created = append(created, shipment.BLNumber)
		} else {
			skipped = append(skipped, shipment.BLNumber)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"created": created,
		"skipped": skipped,
		"errors":  rowErrors,
	})
}

func cellAt(row []string, idx int) string {
	if idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

func parseImportRow(row []string) (*models.Shipment, error) {
	blNumber := cellAt(row, colBLNumber)
	if !utils.ValidTrackingNumber(blNumber) {
		return nil, fmt.Errorf("invalid BL number %q", blNumber)
	}
	containerNo := cellAt(row, colContainerNo)
	if !utils.ValidTrackingNumber(containerNo) {
		return nil, fmt.Errorf("invalid container number %q", containerNo)
	}

	eta, err := parseImportDate(cellAt(row, colETA))
	if err != nil {
		return nil, fmt.Errorf("ETA: %v", err)
	}
	if eta == nil {
		return nil, fmt.Errorf("ETA is required")
	}
	gateOut, err := parseImportDate(cellAt(row, colGateOutDate))
	if err != nil {
		return nil, fmt.Errorf("gate out date: %v", err)
	}

	freeDays, err := parseImportInt(cellAt(row, colFreeDays), 0)
	if err != nil || freeDays < 0 {
		return nil, fmt.Errorf("invalid free days")
	}
	demurrageDays, err := parseImportInt(cellAt(row, colDemurrageDays), 0)
	if err != nil || demurrageDays < 0 {
		return nil, fmt.Errorf("invalid demurrage days")
	}
	itemQuantity, err := parseImportInt(cellAt(row, colItemQuantity), 1)
	if err != nil || itemQuantity < 1 {
		return nil, fmt.Errorf("invalid item quantity")
	}

	penaltyDuty, err := parseImportAmount(cellAt(row, colPenaltyDuty))
	if err != nil {
		return nil, fmt.Errorf("penalty duty: %v", err)
	}
	extraCharges, err := parseImportAmount(cellAt(row, colExtraCharges))
	if err != nil {
		return nil, fmt.Errorf("extra charges: %v", err)
	}
	freightPayment, err := parseImportAmount(cellAt(row, colFreightPayment))
	if err != nil {
		return nil, fmt.Errorf("freight payment: %v", err)
	}
	towingCharge, err := parseImportAmount(cellAt(row, colTowingCharge))
	if err != nil {
		return nil, fmt.Errorf("towing charge: %v", err)
	}

	freightStatus := normalizeEnumCell(cellAt(row, colFreightStatus))
	if freightStatus == "" {
		freightStatus = string(models.FreightPending)
	}
	if !models.FreightStatus(freightStatus).Valid() {
		return nil, fmt.Errorf("invalid freight status %q", cellAt(row, colFreightStatus))
	}
	supervisorStatus := normalizeEnumCell(cellAt(row, colSupervisorStatus))
	if supervisorStatus == "" {
		supervisorStatus = string(models.SupervisorPending)
	}
	if supervisorStatus == "pending_review" {
		supervisorStatus = string(models.SupervisorPending)
	}
	if !models.SupervisorStatus(supervisorStatus).Valid() {
		return nil, fmt.Errorf("invalid supervisor status %q", cellAt(row, colSupervisorStatus))
	}

	var chassisNo *string
	if v := cellAt(row, colChassisNo); v != "" {
		if !utils.ValidTrackingNumber(v) {
			return nil, fmt.Errorf("invalid chassis number %q", v)
		}
		chassisNo = &v
	}

	return &models.Shipment{
		BLNumber:          blNumber,
		ContainerNo:       containerNo,
		ChassisNo:         chassisNo,
		ShippingLine:      cellAt(row, colShippingLine),
		Consignee:         cellAt(row, colConsignee),
		Shipper:           cellAt(row, colShipper),
		ETA:               *eta,
		GateOutDate:       gateOut,
		FreeDays:          freeDays,
		DemurrageDays:     demurrageDays,
		DutyStatus:        parseImportBool(cellAt(row, colDutyStatus)),
		PenaltyDuty:       penaltyDuty,
		ExtraCharges:      extraCharges,
		FreightPayment:    freightPayment,
		FreightStatus:     models.FreightStatus(freightStatus),
		TowingCharge:      towingCharge,
		TowingDestination: cellAt(row, colTowingDestination),
		TowingCarOwner:    cellAt(row, colTowingCarOwner),
		TowingStatus:      parseImportBool(cellAt(row, colTowingStatus)),
		Description:       cellAt(row, colDescription),
		ItemQuantity:      itemQuantity,
		AgentAssigned:     cellAt(row, colAgentAssigned),
		SupervisorStatus:  models.SupervisorStatus(supervisorStatus),
	}, nil
}

func parseImportDate(s string) (*models.DateOnly, error) {
	if s == "" {
		return nil, nil
	}
	// ISO first, then the spreadsheet-friendly forms excelize tends to
	// hand back.
	for _, layout := range []string{"2006-01-02", "01-02-06", "1/2/2006", "01/02/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			d := models.DateOf(t)
			return &d, nil
		}
	}
	return nil, fmt.Errorf("cannot parse date %q", s)
}

func parseImportInt(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}

func parseImportAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount must not be negative")
	}
	return d, nil
}

func parseImportBool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "yes", "paid", "1":
		return true
	default:
		return false
	}
}

func normalizeEnumCell(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
}
