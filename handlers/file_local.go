package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"p9e.in/cargotrack/config"
	"p9e.in/cargotrack/models"
)

const (
	uploadDir = "./uploads" // Local directory for file storage
)

// UploadFileLocal handles file uploads to the local filesystem instead
// of GCS. Development backend.
func UploadFileLocal(w http.ResponseWriter, r *http.Request) {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		http.Error(w, "failed to create upload directory: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// Parse the multipart form (max 50MB)
	if err := r.ParseMultipartForm(50 << 20); err != nil {
		http.Error(w, "bad multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file field: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	// Timestamp prefix avoids collisions between same-named files.
	timestamp := time.Now().Format("20060102-150405")
	filename := fmt.Sprintf("%s-%s", timestamp, header.Filename)
	destPath := filepath.Join(uploadDir, filename)

	dst, err := os.Create(destPath)
	if err != nil {
		http.Error(w, "failed to create file: "+err.Error(), http.StatusInternalServerError)
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		http.Error(w, "failed to save file: "+err.Error(), http.StatusInternalServerError)
		return
	}

	url := fmt.Sprintf("/uploads/%s", filename)

	upload := models.AdminUpload{
		FileName:       header.Filename,
		Description:    r.FormValue("description"),
		StorageBackend: models.StorageBackendLocal,
		ObjectName:     filename,
		ObjectLink:     url,
	}
	if err := config.DB.Create(&upload).Error; err != nil {
		config.Logger.Error("failed to record upload", zap.Error(err))
		http.Error(w, "failed to record upload", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(upload)
}
