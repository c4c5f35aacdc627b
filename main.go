package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"
	"p9e.in/cargotrack/config"
	"p9e.in/cargotrack/routes"
)

var (
	Version   = "dev"
	BuildTime = ""
)

func main() {

	versionFlag := flag.Bool("version", false, "Print version info and exit")
	seedFlag := flag.Bool("seed", false, "Seed the admin user and sample shipments, then exit")
	reseedFlag := flag.Bool("reseed", false, "Delete and recreate the sample shipments, then exit")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("Version:   %s\n", Version)
		fmt.Printf("BuildTime: %s\n", BuildTime)
		os.Exit(0)
	}

	config.Connect()
	logger := config.Logger
	defer logger.Sync()

	// Run migrations
	if err := config.Migrations(config.DB); err != nil {
		logger.Fatal("could not run migrations", zap.Error(err))
	}

	if *seedFlag {
		if err := config.RunAllSeeding(); err != nil {
			logger.Fatal("seeding failed", zap.Error(err))
		}
		return
	}
	if *reseedFlag {
		if err := config.ResetSampleData(); err != nil {
			logger.Fatal("reseed failed", zap.Error(err))
		}
		return
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	handler := routes.RegisterRoutes()
	handlerWithCORS := enableCORS(handler)
	logger.Info("server starting", zap.String("port", port))
	if err := http.ListenAndServe(":"+port, handlerWithCORS); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Required CORS headers
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")

		// Handle preflight (OPTIONS)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
