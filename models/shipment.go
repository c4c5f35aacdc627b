package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FreightStatus is the freight payment state of a shipment.
type FreightStatus string

const (
	FreightPaid    FreightStatus = "paid"
	FreightNotPaid FreightStatus = "not_paid"
	FreightPending FreightStatus = "pending"
)

var freightStatusLabels = map[FreightStatus]string{
	FreightPaid:    "Paid",
	FreightNotPaid: "Not Paid",
	FreightPending: "Pending",
}

// Label returns the human-readable form, falling back to the raw value
// for anything outside the known set.
func (s FreightStatus) Label() string {
	if l, ok := freightStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

// Valid reports whether s is one of the known freight statuses.
func (s FreightStatus) Valid() bool {
	_, ok := freightStatusLabels[s]
	return ok
}

// SupervisorStatus is the supervisor review state of a shipment.
type SupervisorStatus string

const (
	SupervisorPending    SupervisorStatus = "pending"
	SupervisorApproved   SupervisorStatus = "approved"
	SupervisorRejected   SupervisorStatus = "rejected"
	SupervisorInProgress SupervisorStatus = "in_progress"
	SupervisorCompleted  SupervisorStatus = "completed"
)

var supervisorStatusLabels = map[SupervisorStatus]string{
	SupervisorPending:    "Pending Review",
	SupervisorApproved:   "Approved",
	SupervisorRejected:   "Rejected",
	SupervisorInProgress: "In Progress",
	SupervisorCompleted:  "Completed",
}

func (s SupervisorStatus) Label() string {
	if l, ok := supervisorStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

func (s SupervisorStatus) Valid() bool {
	_, ok := supervisorStatusLabels[s]
	return ok
}

// Shipment is one shipping container/cargo record, tracked from origin
// to gate-out. BLNumber is the business key and is immutable once set;
// ContainerNo and ChassisNo are the alternate lookup identifiers.
type Shipment struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	BLNumber    string    `gorm:"column:bl_number;size:50;not null;uniqueIndex"  json:"blNumber"`
	ContainerNo string    `gorm:"column:container_no;size:50;not null;index"     json:"containerNo"`
	ChassisNo   *string   `gorm:"column:chassis_no;size:50;index"                json:"chassisNo,omitempty"`

	ShippingLine string `gorm:"column:shipping_line;size:100;not null;index" json:"shippingLine"`
	Consignee    string `gorm:"column:consignee;size:200;not null"           json:"consignee"`
	Shipper      string `gorm:"column:shipper;size:200;not null"             json:"shipper"`

	ETA         DateOnly  `gorm:"column:eta;type:date;not null;index" json:"eta"`
	GateOutDate *DateOnly `gorm:"column:gate_out_date;type:date"      json:"gateOutDate,omitempty"`

	FreeDays      int `gorm:"column:free_days;not null;default:0"      json:"freeDays"`
	DemurrageDays int `gorm:"column:demurrage_days;not null;default:0" json:"demurrageDays"`

	DutyStatus     bool            `gorm:"column:duty_status;not null;default:false"              json:"dutyStatus"`
	PenaltyDuty    decimal.Decimal `gorm:"column:penalty_duty;type:decimal(12,2);not null;default:0"    json:"penaltyDuty"`
	ExtraCharges   decimal.Decimal `gorm:"column:extra_charges;type:decimal(12,2);not null;default:0"   json:"extraCharges"`
	FreightPayment decimal.Decimal `gorm:"column:freight_payment;type:decimal(12,2);not null;default:0" json:"freightPayment"`
	FreightStatus  FreightStatus   `gorm:"column:freight_status;size:20;not null;default:'pending'"     json:"freightStatus"`

	TowingCharge      decimal.Decimal `gorm:"column:towing_charge;type:decimal(10,2);not null;default:0" json:"towingCharge"`
	TowingDestination string          `gorm:"column:towing_destination;size:200" json:"towingDestination"`
	TowingCarOwner    string          `gorm:"column:towing_car_owner;size:200"   json:"towingCarOwner"`
	TowingStatus      bool            `gorm:"column:towing_status;not null;default:false" json:"towingStatus"`

	Description  string `gorm:"column:description;type:text"           json:"description"`
	ItemQuantity int    `gorm:"column:item_quantity;not null;default:1" json:"itemQuantity"`

	AgentAssigned    string           `gorm:"column:agent_assigned;size:100;index"                      json:"agentAssigned"`
	SupervisorStatus SupervisorStatus `gorm:"column:supervisor_status;size:20;not null;default:'pending'" json:"supervisorStatus"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Shipment) TableName() string {
	return "shipments"
}

func (s *Shipment) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// Delivered reports whether the cargo has left the facility. The
// presence of a gate-out date is the authoritative delivery signal.
func (s *Shipment) Delivered() bool {
	return s.GateOutDate != nil
}

// IsOverdue reports whether the shipment has passed its ETA without
// gating out. A delivered shipment is never overdue, no matter how
// late it arrived.
func (s *Shipment) IsOverdue(today DateOnly) bool {
	if s.Delivered() {
		return false
	}
	return s.ETA.Before(today)
}

// DaysOverdue returns how many whole days past ETA the shipment is,
// or 0 when it is not overdue.
func (s *Shipment) DaysOverdue(today DateOnly) int {
	if !s.IsOverdue(today) {
		return 0
	}
	return today.DaysSince(s.ETA)
}

// TotalPortCharges is penalty duty plus extra charges at port.
func (s *Shipment) TotalPortCharges() decimal.Decimal {
	return s.PenaltyDuty.Add(s.ExtraCharges)
}

// TotalCharges is the sum of all charges on the record. Always derived,
// never stored.
func (s *Shipment) TotalCharges() decimal.Decimal {
	return s.PenaltyDuty.Add(s.ExtraCharges).Add(s.TowingCharge).Add(s.FreightPayment)
}

// DutyStatusDisplay maps the duty-paid flag to its display string.
func (s *Shipment) DutyStatusDisplay() string {
	if s.DutyStatus {
		return "Paid"
	}
	return "Not Paid"
}

// TowingStatusDisplay maps the towing-paid flag to its display string.
func (s *Shipment) TowingStatusDisplay() string {
	if s.TowingStatus {
		return "Paid"
	}
	return "Not Paid"
}

// Status is the terse classification used by the integration endpoint.
func (s *Shipment) Status() string {
	if s.Delivered() {
		return "delivered"
	}
	return "in_transit"
}

// StatusColor is the tri-state urgency hint for the tracking UI:
// success = delivered, danger = overdue, warning = in transit/pending.
func (s *Shipment) StatusColor(today DateOnly) string {
	switch {
	case s.Delivered():
		return "success"
	case s.IsOverdue(today):
		return "danger"
	default:
		return "warning"
	}
}
