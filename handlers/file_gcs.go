package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"cloud.google.com/go/storage"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"p9e.in/cargotrack/config"
	"p9e.in/cargotrack/models"
)

// GCSUploader owns the Cloud Storage client and the target bucket. The
// client is constructed once and passed around explicitly rather than
// living as process-wide mutable state.
type GCSUploader struct {
	client *storage.Client
	bucket string
}

// NewGCSUploader builds an uploader from GCS_BUCKET and application
// default credentials.
func NewGCSUploader(ctx context.Context) (*GCSUploader, error) {
	bucket := os.Getenv("GCS_BUCKET")
	if bucket == "" {
		return nil, fmt.Errorf("GCS_BUCKET is not set")
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &GCSUploader{client: client, bucket: bucket}, nil
}

// Upload streams src into the bucket under objectName and returns the
// stored object's attributes.
func (u *GCSUploader) Upload(ctx context.Context, objectName, contentType string, src io.Reader) (*storage.ObjectAttrs, error) {
	obj := u.client.Bucket(u.bucket).Object(objectName)
	writer := obj.NewWriter(ctx)
	if contentType != "" {
		writer.ContentType = contentType
	}

	if _, err := io.Copy(writer, src); err != nil {
		writer.Close()
		return nil, fmt.Errorf("write object: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finalize object: %w", err)
	}

	return obj.Attrs(ctx)
}

// PublicLink is the browsable URL for an uploaded object.
func (u *GCSUploader) PublicLink(objectName string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", u.bucket, objectName)
}

// Close releases the underlying client.
func (u *GCSUploader) Close() error {
	return u.client.Close()
}

var (
	gcsUploader     *GCSUploader
	gcsUploaderOnce sync.Once
	gcsUploaderErr  error
)

func getGCSUploader(ctx context.Context) (*GCSUploader, error) {
	gcsUploaderOnce.Do(func() {
		gcsUploader, gcsUploaderErr = NewGCSUploader(ctx)
	})
	return gcsUploader, gcsUploaderErr
}

// UploadFileGCS handles file uploads to Google Cloud Storage and
// records the stored object on an AdminUpload row.
func UploadFileGCS(w http.ResponseWriter, r *http.Request) {
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

	uploader, err := getGCSUploader(r.Context())
	if err != nil {
		config.Logger.Error("gcs uploader unavailable", zap.Error(err))
		http.Error(w, "upload backend unavailable", http.StatusInternalServerError)
		return
	}

	objectName := fmt.Sprintf("uploads/%s-%s", time.Now().Format("20060102-150405"), header.Filename)
	attrs, err := uploader.Upload(r.Context(), objectName, header.Header.Get("Content-Type"), file)
	if err != nil {
		config.Logger.Error("gcs upload failed", zap.String("object", objectName), zap.Error(err))
		http.Error(w, "failed to store file", http.StatusInternalServerError)
		return
	}

	metadata, err := json.Marshal(map[string]interface{}{
		"content_type": attrs.ContentType,
		"size":         attrs.Size,
		"generation":   attrs.Generation,
		"md5":          fmt.Sprintf("%x", attrs.MD5),
	})
	if err != nil {
		metadata = []byte("{}")
	}

	upload := models.AdminUpload{
		FileName:       header.Filename,
		Description:    r.FormValue("description"),
		StorageBackend: models.StorageBackendGCS,
		ObjectName:     attrs.Name,
		ObjectLink:     uploader.PublicLink(attrs.Name),
		Metadata:       datatypes.JSON(metadata),
	}
	if err := config.DB.Create(&upload).Error; err != nil {
		config.Logger.Error("failed to record upload", zap.Error(err))
		http.Error(w, "failed to record upload", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(upload)
}

// ListUploads returns the recorded uploads, newest first.
func ListUploads(w http.ResponseWriter, r *http.Request) {
	var uploads []models.AdminUpload
	if err := config.DB.Order("uploaded_at DESC").Find(&uploads).Error; err != nil {
		config.Logger.Error("list uploads failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(uploads)
}
