package config

import (
	"os"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"p9e.in/cargotrack/models"
	"p9e.in/cargotrack/repositories"
)

// RunAllSeeding seeds the default admin user and the sample shipment
// records. Every step is idempotent; re-running never overwrites
// existing rows.
func RunAllSeeding() error {
	if err := SeedAdminUser(); err != nil {
		return err
	}
	return SeedSampleShipments()
}

// SeedAdminUser creates the bootstrap admin account unless one with the
// same email already exists.
func SeedAdminUser() error {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@cargotrack.local"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "changeme"
	}

	var existing models.User
	if err := DB.Where("email = ?", email).First(&existing).Error; err == nil {
		Logger.Info("admin user already exists", zap.String("email", email))
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	u := models.User{
		Name:         "Administrator",
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	if err := DB.Create(&u).Error; err != nil {
		return err
	}
	Logger.Info("seeded admin user", zap.String("email", email))
	return nil
}

// SeedSampleShipments inserts the sample records via get-or-create
// keyed on BL number. A record that already exists keeps its stored
// values no matter what the sample data says.
func SeedSampleShipments() error {
	repo := repositories.NewShipmentRepository(DB)

	for _, s := range sampleShipments() {
		s := s
		created, err := repo.GetOrCreate(&s)
		if err != nil {
			return err
		}
		if created {
			Logger.Info("created sample shipment", zap.String("bl_number", s.BLNumber))
		} else {
			Logger.Info("sample shipment already exists", zap.String("bl_number", s.BLNumber))
		}
	}
	return nil
}

// ResetSampleData hard-deletes the sample records and recreates them.
// Test-data flow only; production records are never deleted.
func ResetSampleData() error {
	repo := repositories.NewShipmentRepository(DB)

	samples := sampleShipments()
	blNumbers := make([]string, 0, len(samples))
	for _, s := range samples {
		blNumbers = append(blNumbers, s.BLNumber)
	}
	if err := repo.DeleteByBLNumbers(blNumbers); err != nil {
		return err
	}
	Logger.Info("cleared sample shipments", zap.Int("count", len(blNumbers)))
	return SeedSampleShipments()
}

func strPtr(s string) *string { return &s }

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleShipments() []models.Shipment {
	today := models.DateOf(time.Now())
	daysFromToday := func(n int) models.DateOnly {
		return models.DateOf(today.Time().AddDate(0, 0, n))
	}
	gateOut := func(n int) *models.DateOnly {
		d := daysFromToday(n)
		return &d
	}

	return []models.Shipment{
		{
			BLNumber:          "BL2024001",
			ContainerNo:       "CONT001",
			ChassisNo:         strPtr("CH001"),
			ShippingLine:      "Maersk Line",
			Consignee:         "ABC Trading Company",
			Shipper:           "Global Exports Inc.",
			ETA:               daysFromToday(5),
			FreeDays:          7,
			DemurrageDays:     2,
			DutyStatus:        true,
			PenaltyDuty:       money("1500.00"),
			ExtraCharges:      money("500.00"),
			FreightPayment:    money("3500.00"),
			FreightStatus:     models.FreightPaid,
			TowingCharge:      money("200.00"),
			TowingDestination: "Warehouse District A",
			TowingCarOwner:    "Express Logistics",
			TowingStatus:      true,
			Description:       "Electronics and computer components",
			ItemQuantity:      250,
			AgentAssigned:     "John Smith",
			SupervisorStatus:  models.SupervisorApproved,
		},
		{
			BLNumber:          "BL2024002",
			ContainerNo:       "CONT002",
			ChassisNo:         strPtr("CH002"),
			ShippingLine:      "MSC",
			Consignee:         "XYZ Manufacturing",
			Shipper:           "Industrial Suppliers Ltd",
			ETA:               daysFromToday(10),
			FreeDays:          5,
			DemurrageDays:     0,
			DutyStatus:        false,
			PenaltyDuty:       money("0.00"),
			ExtraCharges:      money("750.00"),
			FreightPayment:    money("4200.00"),
			FreightStatus:     models.FreightPending,
			TowingCharge:      money("300.00"),
			TowingDestination: "Industrial Zone B",
			TowingCarOwner:    "Heavy Haul Transport",
			TowingStatus:      false,
			Description:       "Raw materials for manufacturing",
			ItemQuantity:      500,
			AgentAssigned:     "Sarah Johnson",
			SupervisorStatus:  models.SupervisorPending,
		},
		{
			BLNumber:          "BL2024003",
			ContainerNo:       "CONT003",
			ChassisNo:         strPtr("CH003"),
			ShippingLine:      "COSCO",
			Consignee:         "Retail Chain Corp",
			Shipper:           "Fashion Imports",
			ETA:               daysFromToday(-3),
			GateOutDate:       gateOut(-1),
			FreeDays:          10,
			DemurrageDays:     3,
			DutyStatus:        true,
			PenaltyDuty:       money("800.00"),
			ExtraCharges:      money("300.00"),
			FreightPayment:    money("2800.00"),
			FreightStatus:     models.FreightPaid,
			TowingCharge:      money("150.00"),
			TowingDestination: "Distribution Center C",
			TowingCarOwner:    "City Transport",
			TowingStatus:      true,
			Description:       "Clothing and textiles",
			ItemQuantity:      1000,
			AgentAssigned:     "Mike Davis",
			SupervisorStatus:  models.SupervisorCompleted,
		},
		{
			BLNumber:          "BL2024004",
			ContainerNo:       "CONT004",
			ChassisNo:         strPtr("CH004"),
			ShippingLine:      "Evergreen",
			Consignee:         "Food Distributors Inc",
			Shipper:           "Agricultural Exports Co",
			ETA:               daysFromToday(15),
			FreeDays:          3,
			DemurrageDays:     0,
			DutyStatus:        false,
			PenaltyDuty:       money("0.00"),
			ExtraCharges:      money("400.00"),
			FreightPayment:    money("3200.00"),
			FreightStatus:     models.FreightNotPaid,
			TowingCharge:      money("250.00"),
			TowingDestination: "Cold Storage Facility",
			TowingCarOwner:    "Refrigerated Transport",
			TowingStatus:      false,
			Description:       "Canned goods and preserved foods",
			ItemQuantity:      800,
			AgentAssigned:     "Lisa Wilson",
			SupervisorStatus:  models.SupervisorInProgress,
		},
		{
			BLNumber:          "BL2024005",
			ContainerNo:       "CONT005",
			ShippingLine:      "CMA CGM",
			Consignee:         "Auto Parts Direct",
			Shipper:           "Automotive Components Ltd",
			ETA:               daysFromToday(7),
			FreeDays:          5,
			DemurrageDays:     1,
			DutyStatus:        true,
			PenaltyDuty:       money("1200.00"),
			ExtraCharges:      money("600.00"),
			FreightPayment:    money("3800.00"),
			FreightStatus:     models.FreightPaid,
			TowingCharge:      money("180.00"),
			TowingDestination: "Auto Service Center",
			TowingCarOwner:    "Automotive Logistics",
			TowingStatus:      true,
			Description:       "Car parts and automotive accessories",
			ItemQuantity:      300,
			AgentAssigned:     "Robert Brown",
			SupervisorStatus:  models.SupervisorApproved,
		},
	}
}
