package repositories

import (
	"errors"

	"gorm.io/gorm"
	"p9e.in/cargotrack/models"
)

var (
	// ErrShipmentNotFound means no record matched the identifier.
	ErrShipmentNotFound = errors.New("shipment not found")
	// ErrAmbiguousTracking means a non-unique identifier (container or
	// chassis number) matched more than one record.
	ErrAmbiguousTracking = errors.New("tracking number matches more than one shipment")
)

// ShipmentRepository is the data-access layer for shipment records.
type ShipmentRepository struct {
	db *gorm.DB
}

// NewShipmentRepository creates a repository with its DB dependency.
func NewShipmentRepository(db *gorm.DB) *ShipmentRepository {
	return &ShipmentRepository{db: db}
}

// FindByAnyIdentifier resolves q against bl_number, container_no and
// chassis_no, case-insensitively. Exactly one match is returned; zero
// matches is ErrShipmentNotFound and two or more is
// ErrAmbiguousTracking.
func (r *ShipmentRepository) FindByAnyIdentifier(q string) (*models.Shipment, error) {
	var matches []models.Shipment
	err := r.db.
		Where("LOWER(bl_number) = LOWER(?) OR LOWER(container_no) = LOWER(?) OR LOWER(chassis_no) = LOWER(?)", q, q, q).
		Limit(2).
		Find(&matches).Error
	if err != nil {
		return nil, err
	}

	switch len(matches) {
	case 0:
		return nil, ErrShipmentNotFound
	case 1:
		return &matches[0], nil
	default:
		return nil, ErrAmbiguousTracking
	}
}

// GetOrCreate inserts s unless a record with its BL number already
// exists. When one exists, s is overwritten with the stored record and
// created is false — existing values are never touched, which is what
// makes seeding idempotent.
func (r *ShipmentRepository) GetOrCreate(s *models.Shipment) (created bool, err error) {
	var existing models.Shipment
	err = r.db.Where("bl_number = ?", s.BLNumber).First(&existing).Error
	if err == nil {
		*s = existing
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	if err := r.db.Create(s).Error; err != nil {
		return false, err
	}
	return true, nil
}

// UpdateFields applies a partial update to the record with the given BL
// number and returns the updated record. The BL number itself is
// immutable and silently dropped from the change set, as are the
// system-managed columns; updated_at is bumped by GORM.
func (r *ShipmentRepository) UpdateFields(blNumber string, changes map[string]interface{}) (*models.Shipment, error) {
	delete(changes, "bl_number")
	delete(changes, "id")
	delete(changes, "created_at")
	delete(changes, "updated_at")

	var s models.Shipment
	if err := r.db.Where("bl_number = ?", blNumber).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShipmentNotFound
		}
		return nil, err
	}

	if len(changes) == 0 {
		return &s, nil
	}
	if err := r.db.Model(&s).Updates(changes).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a new record.
func (r *ShipmentRepository) Create(s *models.Shipment) error {
	return r.db.Create(s).Error
}

// GetByBLNumber fetches a record by its business key.
func (r *ShipmentRepository) GetByBLNumber(blNumber string) (*models.Shipment, error) {
	var s models.Shipment
	if err := r.db.Where("bl_number = ?", blNumber).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShipmentNotFound
		}
		return nil, err
	}
	return &s, nil
}

// DeleteByBLNumber removes a record. Production flow never deletes
// shipments; this exists for the test-data flow and the admin API.
func (r *ShipmentRepository) DeleteByBLNumber(blNumber string) error {
	result := r.db.Where("bl_number = ?", blNumber).Delete(&models.Shipment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrShipmentNotFound
	}
	return nil
}

// DeleteByBLNumbers hard-deletes the given records. Used only by the
// sample-data reseed.
func (r *ShipmentRepository) DeleteByBLNumbers(blNumbers []string) error {
	if len(blNumbers) == 0 {
		return nil
	}
	return r.db.Where("bl_number IN ?", blNumbers).Delete(&models.Shipment{}).Error
}

// ListParams are the admin listing filters.
type ListParams struct {
	Page             int
	PageSize         int
	ShippingLine     string
	SupervisorStatus string
	AgentAssigned    string
	OverdueOnly      bool
}

// ListResult is one page of shipments plus paging info.
type ListResult struct {
	Items      []models.Shipment `json:"items"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalPages int               `json:"totalPages"`
}

// List returns a page of shipments, newest first, with optional
// filters.
func (r *ShipmentRepository) List(params ListParams) (*ListResult, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 || params.PageSize > 200 {
		params.PageSize = 50
	}

	query := r.db.Model(&models.Shipment{})
	if params.ShippingLine != "" {
		query = query.Where("shipping_line ILIKE ?", "%"+params.ShippingLine+"%")
	}
	if params.SupervisorStatus != "" {
		query = query.Where("supervisor_status = ?", params.SupervisorStatus)
	}
	if params.AgentAssigned != "" {
		query = query.Where("agent_assigned ILIKE ?", "%"+params.AgentAssigned+"%")
	}
	if params.OverdueOnly {
		query = query.Where("gate_out_date IS NULL AND eta < CURRENT_DATE")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var items []models.Shipment
	offset := (params.Page - 1) * params.PageSize
	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(params.PageSize).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(params.PageSize) - 1) / int64(params.PageSize))
	return &ListResult{
		Items:      items,
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: totalPages,
	}, nil
}

// CountAll returns the total number of shipment records.
func (r *ShipmentRepository) CountAll() (int64, error) {
	var n int64
	err := r.db.Model(&models.Shipment{}).Count(&n).Error
	return n, err
}

// RecentArrivals returns the most recently gated-out shipments.
func (r *ShipmentRepository) RecentArrivals(limit int) ([]models.Shipment, error) {
	var items []models.Shipment
	err := r.db.
		Where("gate_out_date IS NOT NULL").
		Order("gate_out_date DESC").
		Limit(limit).
		Find(&items).Error
	return items, err
}

// AllOrdered returns every shipment, newest first. Used by the
// export handlers.
func (r *ShipmentRepository) AllOrdered() ([]models.Shipment, error) {
	var items []models.Shipment
	err := r.db.Order("created_at DESC").Find(&items).Error
	return items, err
}
