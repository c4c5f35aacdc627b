package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"p9e.in/cargotrack/handlers"
	"p9e.in/cargotrack/middleware"
	"p9e.in/cargotrack/models"
)

// RegisterRoutes wires the public tracking endpoints and the
// JWT-protected admin API.
func RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	// Public routes (no authentication required)
	r.HandleFunc("/api/v1/track", handlers.TrackShipment)
	r.HandleFunc("/api/v1/status", handlers.ShipmentStatusAPI).Methods("GET")
	r.HandleFunc("/api/v1/shipments/lookup/{trackingNumber}", handlers.LookupShipment).Methods("GET")
	r.HandleFunc("/api/v1/stats", handlers.TrackingStats).Methods("GET")

	r.HandleFunc("/api/v1/register", handlers.Register).Methods("POST")
	r.HandleFunc("/api/v1/login", handlers.Login).Methods("POST")
	r.HandleFunc("/api/v1/token", handlers.GetCurrentUser).Methods("GET")

	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir("./uploads"))),
	)

	// Protected admin API (require authentication)
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.JWTMiddleware)

	staff := []string{models.RoleAdmin, models.RoleAgent, models.RoleSupervisor}
	adminOnly := []string{models.RoleAdmin}

	api.Handle("/shipments", middleware.RequireRole(staff,
		http.HandlerFunc(handlers.GetAllShipments))).Methods("GET")
	api.Handle("/shipments", middleware.RequireRole(staff,
		http.HandlerFunc(handlers.CreateShipment))).Methods("POST")
	api.Handle("/shipments/batch", middleware.RequireRole(staff,
		http.HandlerFunc(handlers.BatchShipments))).Methods("POST")
	api.Handle("/shipments/export/excel", middleware.RequireRole(staff,
		http.HandlerFunc(handlers.ExportShipmentsToExcel))).Methods("GET")
	api.Handle("/shipments/export/csv", middleware.RequireRole(staff,
		http.HandlerFunc(handlers.ExportShipmentsToCSV))).Methods("GET")
	api.Handle("/shipments/import", middleware.RequireRole(adminOnly,
		http.HandlerFunc(handlers.ImportShipmentsFromExcel))).Methods("POST")
	api.Handle("/shipments/{blNumber}", middleware.RequireRole(staff,
		http.HandlerFunc(handlers.GetShipment))).Methods("GET")
	api.Handle("/shipments/{blNumber}", middleware.RequireRole(staff,
		http.HandlerFunc(handlers.UpdateShipment))).Methods("PUT")
	api.Handle("/shipments/{blNumber}", middleware.RequireRole(adminOnly,
		http.HandlerFunc(handlers.DeleteShipment))).Methods("DELETE")

	api.Handle("/uploads", middleware.RequireRole(staff,
		http.HandlerFunc(handlers.UploadFileHandler))).Methods("POST")
	api.Handle("/uploads", middleware.RequireRole(staff,
		http.HandlerFunc(handlers.ListUploads))).Methods("GET")

	return r
}
