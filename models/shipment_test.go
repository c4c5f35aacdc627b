package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func datePtr(d DateOnly) *DateOnly { return &d }

func TestIsOverdue(t *testing.T) {
	today := NewDate(2024, time.June, 15)

	tests := []struct {
		name     string
		eta      DateOnly
		gateOut  *DateOnly
		expected bool
	}{
		{"eta in the future", NewDate(2024, time.June, 16), nil, false},
		{"eta is today", NewDate(2024, time.June, 15), nil, false},
		{"eta yesterday", NewDate(2024, time.June, 14), nil, true},
		{"eta three days ago", NewDate(2024, time.June, 12), nil, true},
		{"late but delivered", NewDate(2024, time.June, 12), datePtr(NewDate(2024, time.June, 14)), false},
		{"delivered before eta", NewDate(2024, time.June, 20), datePtr(NewDate(2024, time.June, 10)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Shipment{ETA: tt.eta, GateOutDate: tt.gateOut}
			if got := s.IsOverdue(today); got != tt.expected {
				t.Errorf("IsOverdue() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestDaysOverdue(t *testing.T) {
	today := NewDate(2024, time.June, 15)

	tests := []struct {
		name     string
		eta      DateOnly
		gateOut  *DateOnly
		expected int
	}{
		{"not yet due", NewDate(2024, time.June, 16), nil, 0},
		{"due today", NewDate(2024, time.June, 15), nil, 0},
		{"three days overdue", NewDate(2024, time.June, 12), nil, 3},
		{"one day overdue", NewDate(2024, time.June, 14), nil, 1},
		{"late but delivered", NewDate(2024, time.June, 12), datePtr(NewDate(2024, time.June, 14)), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Shipment{ETA: tt.eta, GateOutDate: tt.gateOut}
			if got := s.DaysOverdue(today); got != tt.expected {
				t.Errorf("DaysOverdue() = %d, expected %d", got, tt.expected)
			}
		})
	}
}

func TestTotalCharges(t *testing.T) {
	s := Shipment{
		PenaltyDuty:    decimal.RequireFromString("1500.00"),
		ExtraCharges:   decimal.RequireFromString("500.00"),
		TowingCharge:   decimal.RequireFromString("200.00"),
		FreightPayment: decimal.RequireFromString("3500.00"),
	}

	if got, want := s.TotalPortCharges(), decimal.RequireFromString("2000.00"); !got.Equal(want) {
		t.Errorf("TotalPortCharges() = %s, expected %s", got, want)
	}
	if got, want := s.TotalCharges(), decimal.RequireFromString("5700.00"); !got.Equal(want) {
		t.Errorf("TotalCharges() = %s, expected %s", got, want)
	}
}

func TestTotalChargesExactDecimal(t *testing.T) {
	// Amounts chosen to drift under binary floating point.
	s := Shipment{
		PenaltyDuty:    decimal.RequireFromString("0.10"),
		ExtraCharges:   decimal.RequireFromString("0.20"),
		TowingCharge:   decimal.RequireFromString("0.30"),
		FreightPayment: decimal.RequireFromString("0.40"),
	}

	if got, want := s.TotalCharges(), decimal.RequireFromString("1.00"); !got.Equal(want) {
		t.Errorf("TotalCharges() = %s, expected exactly %s", got, want)
	}
	if got := s.TotalCharges().StringFixed(2); got != "1.00" {
		t.Errorf("TotalCharges().StringFixed(2) = %q, expected \"1.00\"", got)
	}
}

func TestStatusClassification(t *testing.T) {
	today := NewDate(2024, time.June, 15)

	tests := []struct {
		name          string
		eta           DateOnly
		gateOut       *DateOnly
		expectedColor string
		expectedTerse string
	}{
		{"delivered", NewDate(2024, time.June, 12), datePtr(NewDate(2024, time.June, 14)), "success", "delivered"},
		{"overdue", NewDate(2024, time.June, 12), nil, "danger", "in_transit"},
		{"in transit", NewDate(2024, time.June, 20), nil, "warning", "in_transit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Shipment{ETA: tt.eta, GateOutDate: tt.gateOut}
			if got := s.StatusColor(today); got != tt.expectedColor {
				t.Errorf("StatusColor() = %q, expected %q", got, tt.expectedColor)
			}
			if got := s.Status(); got != tt.expectedTerse {
				t.Errorf("Status() = %q, expected %q", got, tt.expectedTerse)
			}
		})
	}
}

func TestBooleanDisplays(t *testing.T) {
	paid := Shipment{DutyStatus: true, TowingStatus: true}
	unpaid := Shipment{}

	if got := paid.DutyStatusDisplay(); got != "Paid" {
		t.Errorf("DutyStatusDisplay() = %q, expected \"Paid\"", got)
	}
	if got := unpaid.DutyStatusDisplay(); got != "Not Paid" {
		t.Errorf("DutyStatusDisplay() = %q, expected \"Not Paid\"", got)
	}
	if got := paid.TowingStatusDisplay(); got != "Paid" {
		t.Errorf("TowingStatusDisplay() = %q, expected \"Paid\"", got)
	}
	if got := unpaid.TowingStatusDisplay(); got != "Not Paid" {
		t.Errorf("TowingStatusDisplay() = %q, expected \"Not Paid\"", got)
	}
}

func TestFreightStatusLabels(t *testing.T) {
	tests := []struct {
		status FreightStatus
		label  string
		valid  bool
	}{
		{FreightPaid, "Paid", true},
		{FreightNotPaid, "Not Paid", true},
		{FreightPending, "Pending", true},
		{FreightStatus("cancelled"), "cancelled", false},
	}

	for _, tt := range tests {
		if got := tt.status.Label(); got != tt.label {
			t.Errorf("FreightStatus(%q).Label() = %q, expected %q", tt.status, got, tt.label)
		}
		if got := tt.status.Valid(); got != tt.valid {
			t.Errorf("FreightStatus(%q).Valid() = %v, expected %v", tt.status, got, tt.valid)
		}
	}
}

func TestSupervisorStatusLabels(t *testing.T) {
	tests := []struct {
		status SupervisorStatus
		label  string
		valid  bool
	}{
		{SupervisorPending, "Pending Review", true},
		{SupervisorApproved, "Approved", true},
		{SupervisorRejected, "Rejected", true},
		{SupervisorInProgress, "In Progress", true},
		{SupervisorCompleted, "Completed", true},
		{SupervisorStatus("archived"), "archived", false},
	}

	for _, tt := range tests {
		if got := tt.status.Label(); got != tt.label {
			t.Errorf("SupervisorStatus(%q).Label() = %q, expected %q", tt.status, got, tt.label)
		}
		if got := tt.status.Valid(); got != tt.valid {
			t.Errorf("SupervisorStatus(%q).Valid() = %v, expected %v", tt.status, got, tt.valid)
		}
	}
}
