package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func sampleShipment() *Shipment {
	chassis := "CH123456"
	gateOut := NewDate(2024, time.June, 12)
	return &Shipment{
		BLNumber:         "BL2024001",
		ContainerNo:      "MSKU1234567",
		ChassisNo:        &chassis,
		ShippingLine:     "Maersk",
		Consignee:        "Acme Imports",
		Shipper:          "Globex Exports",
		ETA:              NewDate(2024, time.June, 10),
		GateOutDate:      &gateOut,
		DutyStatus:       true,
		FreightStatus:    FreightPaid,
		FreeDays:         7,
		DemurrageDays:    2,
		AgentAssigned:    "J. Okafor",
		SupervisorStatus: SupervisorApproved,
		Description:      "Machine parts",
		PenaltyDuty:      decimal.RequireFromString("1500.00"),
		ExtraCharges:     decimal.RequireFromString("500.00"),
		TowingCharge:     decimal.RequireFromString("200.00"),
		FreightPayment:   decimal.RequireFromString("3500.00"),
	}
}

func TestNewTrackingShipment(t *testing.T) {
	today := NewDate(2024, time.June, 15)
	got := NewTrackingShipment(sampleShipment(), today)

	if got.BLNumber != "BL2024001" {
		t.Errorf("BLNumber = %q", got.BLNumber)
	}
	if got.ChassisNo != "CH123456" {
		t.Errorf("ChassisNo = %q", got.ChassisNo)
	}
	if got.ETA != "June 10, 2024" {
		t.Errorf("ETA = %q, expected \"June 10, 2024\"", got.ETA)
	}
	if got.GateOutDate != "June 12, 2024" {
		t.Errorf("GateOutDate = %q, expected \"June 12, 2024\"", got.GateOutDate)
	}
	if got.DutyStatus != "Paid" {
		t.Errorf("DutyStatus = %q, expected \"Paid\"", got.DutyStatus)
	}
	if got.FreightStatus != "Paid" {
		t.Errorf("FreightStatus = %q, expected \"Paid\"", got.FreightStatus)
	}
	if got.SupervisorStatus != "Approved" {
		t.Errorf("SupervisorStatus = %q, expected \"Approved\"", got.SupervisorStatus)
	}
	if got.IsOverdue {
		t.Errorf("delivered shipment must not be overdue")
	}
	if got.DaysOverdue != 0 {
		t.Errorf("DaysOverdue = %d, expected 0", got.DaysOverdue)
	}
	if got.StatusColor != "success" {
		t.Errorf("StatusColor = %q, expected \"success\"", got.StatusColor)
	}
}

func TestNewTrackingShipmentPlaceholders(t *testing.T) {
	today := NewDate(2024, time.June, 15)
	s := sampleShipment()
	s.ChassisNo = nil
	s.GateOutDate = nil
	s.AgentAssigned = ""
	s.Description = ""
	s.ETA = NewDate(2024, time.June, 20)

	got := NewTrackingShipment(s, today)

	if got.ChassisNo != "N/A" {
		t.Errorf("ChassisNo = %q, expected \"N/A\"", got.ChassisNo)
	}
	if got.GateOutDate != "Not yet delivered" {
		t.Errorf("GateOutDate = %q, expected \"Not yet delivered\"", got.GateOutDate)
	}
	if got.AgentAssigned != "Not assigned" {
		t.Errorf("AgentAssigned = %q, expected \"Not assigned\"", got.AgentAssigned)
	}
	if got.Description != "No description available" {
		t.Errorf("Description = %q, expected \"No description available\"", got.Description)
	}
	if got.StatusColor != "warning" {
		t.Errorf("StatusColor = %q, expected \"warning\"", got.StatusColor)
	}
}

func TestNewTrackingShipmentEmptyChassisTreatedAsMissing(t *testing.T) {
	today := NewDate(2024, time.June, 15)
	s := sampleShipment()
	empty := ""
	s.ChassisNo = &empty

	if got := NewTrackingShipment(s, today); got.ChassisNo != "N/A" {
		t.Errorf("ChassisNo = %q, expected \"N/A\"", got.ChassisNo)
	}
}

func TestNewShipmentStatus(t *testing.T) {
	got := NewShipmentStatus(sampleShipment())

	if got.Status != "delivered" {
		t.Errorf("Status = %q, expected \"delivered\"", got.Status)
	}
	if got.ETA == nil || *got.ETA != "2024-06-10" {
		t.Errorf("ETA = %v, expected \"2024-06-10\"", got.ETA)
	}
	if got.GateOutDate == nil || *got.GateOutDate != "2024-06-12" {
		t.Errorf("GateOutDate = %v, expected \"2024-06-12\"", got.GateOutDate)
	}
	if !got.DutyPaid {
		t.Errorf("DutyPaid = false, expected true")
	}
	if got.FreightStatus != FreightPaid {
		t.Errorf("FreightStatus = %q, expected %q", got.FreightStatus, FreightPaid)
	}
}

func TestNewShipmentStatusNullDates(t *testing.T) {
	s := sampleShipment()
	s.GateOutDate = nil
	s.ETA = DateOnly{}

	got := NewShipmentStatus(s)

	if got.ETA != nil {
		t.Errorf("ETA = %v, expected nil", got.ETA)
	}
	if got.GateOutDate != nil {
		t.Errorf("GateOutDate = %v, expected nil", got.GateOutDate)
	}
	if got.Status != "in_transit" {
		t.Errorf("Status = %q, expected \"in_transit\"", got.Status)
	}
}
