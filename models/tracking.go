package models

// Response shapes for the public tracking endpoints. Field names are
// part of the external contract consumed by the tracking page and the
// integration partners, hence the snake_case keys.

// TrackingShipment is the display-ready payload returned for a
// successful tracking lookup.
type TrackingShipment struct {
	BLNumber         string `json:"bl_number"`
	ContainerNo      string `json:"container_no"`
	ChassisNo        string `json:"chassis_no"`
	ShippingLine     string `json:"shipping_line"`
	Consignee        string `json:"consignee"`
	Shipper          string `json:"shipper"`
	ETA              string `json:"eta"`
	GateOutDate      string `json:"gate_out_date"`
	DutyStatus       string `json:"duty_status"`
	FreightStatus    string `json:"freight_status"`
	FreeDays         int    `json:"free_days"`
	DemurrageDays    int    `json:"demurrage_days"`
	AgentAssigned    string `json:"agent_assigned"`
	SupervisorStatus string `json:"supervisor_status"`
	Description      string `json:"description"`
	IsOverdue        bool   `json:"is_overdue"`
	DaysOverdue      int    `json:"days_overdue"`
	StatusColor      string `json:"status_color"`
}

// NewTrackingShipment builds the display payload for s as of today.
// Optional fields get their literal placeholder markers.
func NewTrackingShipment(s *Shipment, today DateOnly) TrackingShipment {
	chassis := "N/A"
	if s.ChassisNo != nil && *s.ChassisNo != "" {
		chassis = *s.ChassisNo
	}

	gateOut := "Not yet delivered"
	if s.GateOutDate != nil {
		gateOut = s.GateOutDate.Display()
	}

	agent := s.AgentAssigned
	if agent == "" {
		agent = "Not assigned"
	}

	description := s.Description
	if description == "" {
		description = "No description available"
	}

	return TrackingShipment{
		BLNumber:         s.BLNumber,
		ContainerNo:      s.ContainerNo,
		ChassisNo:        chassis,
		ShippingLine:     s.ShippingLine,
		Consignee:        s.Consignee,
		Shipper:          s.Shipper,
		ETA:              s.ETA.Display(),
		GateOutDate:      gateOut,
		DutyStatus:       s.DutyStatusDisplay(),
		FreightStatus:    s.FreightStatus.Label(),
		FreeDays:         s.FreeDays,
		DemurrageDays:    s.DemurrageDays,
		AgentAssigned:    agent,
		SupervisorStatus: s.SupervisorStatus.Label(),
		Description:      description,
		IsOverdue:        s.IsOverdue(today),
		DaysOverdue:      s.DaysOverdue(today),
		StatusColor:      s.StatusColor(today),
	}
}

// ShipmentStatus is the terser object served to machine integrations.
type ShipmentStatus struct {
	BLNumber      string        `json:"bl_number"`
	ContainerNo   string        `json:"container_no"`
	Status        string        `json:"status"`
	ETA           *string       `json:"eta"`
	GateOutDate   *string       `json:"gate_out_date"`
	DutyPaid      bool          `json:"duty_paid"`
	FreightStatus FreightStatus `json:"freight_status"`
	Agent         string        `json:"agent"`
}

// NewShipmentStatus builds the integration payload for s. Dates are
// ISO-8601 or null.
func NewShipmentStatus(s *Shipment) ShipmentStatus {
	var eta, gateOut *string
	if !s.ETA.IsZero() {
		v := s.ETA.ISO()
		eta = &v
	}
	if s.GateOutDate != nil {
		v := s.GateOutDate.ISO()
		gateOut = &v
	}

	return ShipmentStatus{
		BLNumber:      s.BLNumber,
		ContainerNo:   s.ContainerNo,
		Status:        s.Status(),
		ETA:           eta,
		GateOutDate:   gateOut,
		DutyPaid:      s.DutyStatus,
		FreightStatus: s.FreightStatus,
		Agent:         s.AgentAssigned,
	}
}
