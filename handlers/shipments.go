package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"p9e.in/cargotrack/config"
	"p9e.in/cargotrack/models"
	"p9e.in/cargotrack/repositories"
)

var validate = validator.New()

// shipmentRequest is the admin create/batch payload.
type shipmentRequest struct {
	BLNumber    string  `json:"bl_number"    validate:"required,alphanum,max=50"`
	ContainerNo string  `json:"container_no" validate:"required,alphanum,max=50"`
	ChassisNo   *string `json:"chassis_no"   validate:"omitempty,alphanum,max=50"`

	ShippingLine string `json:"shipping_line" validate:"required,max=100"`
	Consignee    string `json:"consignee"     validate:"required,max=200"`
	Shipper      string `json:"shipper"       validate:"required,max=200"`

	ETA         models.DateOnly  `json:"eta"           validate:"required"`
	GateOutDate *models.DateOnly `json:"gate_out_date"`

	FreeDays      int `json:"free_days"      validate:"gte=0"`
	DemurrageDays int `json:"demurrage_days" validate:"gte=0"`

	DutyStatus     bool            `json:"duty_status"`
	PenaltyDuty    decimal.Decimal `json:"penalty_duty"`
	ExtraCharges   decimal.Decimal `json:"extra_charges"`
	FreightPayment decimal.Decimal `json:"freight_payment"`
	FreightStatus  string          `json:"freight_status"`

	TowingCharge      decimal.Decimal `json:"towing_charge"`
	TowingDestination string          `json:"towing_destination" validate:"max=200"`
	TowingCarOwner    string          `json:"towing_car_owner"   validate:"max=200"`
	TowingStatus      bool            `json:"towing_status"`

	Description  string `json:"description"`
	ItemQuantity int    `json:"item_quantity" validate:"gte=1"`

	AgentAssigned    string `json:"agent_assigned" validate:"max=100"`
	SupervisorStatus string `json:"supervisor_status"`
}

func (req *shipmentRequest) validateRequest() error {
	if err := validate.Struct(req); err != nil {
		return err
	}
	for name, amount := range map[string]decimal.Decimal{
		"penalty_duty":    req.PenaltyDuty,
		"extra_charges":   req.ExtraCharges,
		"freight_payment": req.FreightPayment,
		"towing_charge":   req.TowingCharge,
	} {
		if amount.IsNegative() {
			return errors.New(name + " must not be negative")
		}
	}
	if req.FreightStatus != "" && !models.FreightStatus(req.FreightStatus).Valid() {
		return errors.New("invalid freight_status")
	}
	if req.SupervisorStatus != "" && !models.SupervisorStatus(req.SupervisorStatus).Valid() {
		return errors.New("invalid supervisor_status")
	}
	return nil
}

func (req *shipmentRequest) toModel() models.Shipment {
	freight := models.FreightStatus(req.FreightStatus)
	if req.FreightStatus == "" {
		freight = models.FreightPending
	}
	supervisor := models.SupervisorStatus(req.SupervisorStatus)
	if req.SupervisorStatus == "" {
		supervisor = models.SupervisorPending
	}

	return models.Shipment{
		BLNumber:          req.BLNumber,
		ContainerNo:       req.ContainerNo,
		ChassisNo:         req.ChassisNo,
		ShippingLine:      req.ShippingLine,
		Consignee:         req.Consignee,
		Shipper:           req.Shipper,
		ETA:               req.ETA,
		GateOutDate:       req.GateOutDate,
		FreeDays:          req.FreeDays,
		DemurrageDays:     req.DemurrageDays,
		DutyStatus:        req.DutyStatus,
		PenaltyDuty:       req.PenaltyDuty,
		ExtraCharges:      req.ExtraCharges,
		FreightPayment:    req.FreightPayment,
		FreightStatus:     freight,
		TowingCharge:      req.TowingCharge,
		TowingDestination: req.TowingDestination,
		TowingCarOwner:    req.TowingCarOwner,
		TowingStatus:      req.TowingStatus,
		Description:       req.Description,
		ItemQuantity:      req.ItemQuantity,
		AgentAssigned:     req.AgentAssigned,
		SupervisorStatus:  supervisor,
	}
}

// GetAllShipments lists shipment records for the admin UI, paginated,
// newest first.
func GetAllShipments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("page_size"))

	params := repositories.ListParams{
		Page:             page,
		PageSize:         pageSize,
		ShippingLine:     q.Get("shipping_line"),
		SupervisorStatus: q.Get("supervisor_status"),
		AgentAssigned:    q.Get("agent"),
		OverdueOnly:      q.Get("overdue") == "true",
	}
	if params.SupervisorStatus != "" && !models.SupervisorStatus(params.SupervisorStatus).Valid() {
		http.Error(w, "invalid supervisor_status filter", http.StatusBadRequest)
		return
	}

	repo := repositories.NewShipmentRepository(config.DB)
	result, err := repo.List(params)
	if err != nil {
		config.Logger.Error("list shipments failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// CreateShipment inserts a single new record.
func CreateShipment(w http.ResponseWriter, r *http.Request) {
	var req shipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := req.validateRequest(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	item := req.toModel()
	repo := repositories.NewShipmentRepository(config.DB)
	if err := repo.Create(&item); err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			http.Error(w, "bl_number already exists", http.StatusConflict)
			return
		}
		config.Logger.Error("create shipment failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(item)
}

// BatchShipments inserts many records with get-or-create semantics per
// BL number: records that already exist are left untouched and
// reported as skipped.
func BatchShipments(w http.ResponseWriter, r *http.Request) {
	var reqs []shipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	repo := repositories.NewShipmentRepository(config.DB)
	createdNumbers := make([]string, 0, len(reqs))
	skippedNumbers := make([]string, 0)

	for i := range reqs {
		if err := reqs[i].validateRequest(); err != nil {
			http.Error(w, "record "+reqs[i].BLNumber+": "+err.Error(), http.StatusBadRequest)
			return
		}
	}
	for i := range reqs {
		item := reqs[i].toModel()
		created, err := repo.GetOrCreate(&item)
		if err != nil {
			config.Logger.Error("batch create failed", zap.String("bl_number", item.BLNumber), zap.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if created {
			createdNumbers = append(createdNumbers, item.BLNumber)
		} else {
			skippedNumbers = append(skippedNumbers, item.BLNumber)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"created": createdNumbers,
		"skipped": skippedNumbers,
	})
}

// GetShipment fetches one record by BL number.
func GetShipment(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	blNumber := params["blNumber"]

	repo := repositories.NewShipmentRepository(config.DB)
	item, err := repo.GetByBLNumber(blNumber)
	if err != nil {
		if errors.Is(err, repositories.ErrShipmentNotFound) {
			http.Error(w, "record not found", http.StatusNotFound)
			return
		}
		config.Logger.Error("get shipment failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(item)
}

// UpdateShipment applies a partial update to one record. The BL number
// is immutable; any attempt to change it is ignored.
func UpdateShipment(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	blNumber := params["blNumber"]

	var changes map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&changes); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := validateChanges(changes); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	repo := repositories.NewShipmentRepository(config.DB)
	item, err := repo.UpdateFields(blNumber, changes)
	if err != nil {
		if errors.Is(err, repositories.ErrShipmentNotFound) {
			http.Error(w, "record not found", http.StatusNotFound)
			return
		}
		config.Logger.Error("update shipment failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(item)
}

// validateChanges checks the constrained fields of a partial update.
func validateChanges(changes map[string]interface{}) error {
	if v, ok := changes["freight_status"].(string); ok && !models.FreightStatus(v).Valid() {
		return errors.New("invalid freight_status")
	}
	if v, ok := changes["supervisor_status"].(string); ok && !models.SupervisorStatus(v).Valid() {
		return errors.New("invalid supervisor_status")
	}
	if v, ok := changes["item_quantity"].(float64); ok && v < 1 {
		return errors.New("item_quantity must be at least 1")
	}
	for _, field := range []string{"free_days", "demurrage_days"} {
		if v, ok := changes[field].(float64); ok && v < 0 {
			return errors.New(field + " must not be negative")
		}
	}
	for _, field := range []string{"penalty_duty", "extra_charges", "freight_payment", "towing_charge"} {
		switch v := changes[field].(type) {
		case float64:
			if v < 0 {
				return errors.New(field + " must not be negative")
			}
		case string:
			d, err := decimal.NewFromString(v)
			if err != nil {
				return errors.New(field + " is not a valid amount")
			}
			if d.IsNegative() {
				return errors.New(field + " must not be negative")
			}
		}
	}
	return nil
}

// DeleteShipment removes one record. Kept for the test-data flow; the
// production lifecycle never deletes shipments.
func DeleteShipment(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	blNumber := params["blNumber"]

	repo := repositories.NewShipmentRepository(config.DB)
	if err := repo.DeleteByBLNumber(blNumber); err != nil {
		if errors.Is(err, repositories.ErrShipmentNotFound) {
			http.Error(w, "record not found", http.StatusNotFound)
			return
		}
		config.Logger.Error("delete shipment failed", zap.Error(err))
		http.Error(w, "failed to delete record", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "record deleted"})
}
