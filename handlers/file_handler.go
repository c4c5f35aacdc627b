package handlers

import (
	"net/http"
	"os"
)

// UploadFileHandler routes to the appropriate upload handler based on
// environment. Google Cloud sets GOOGLE_APPLICATION_CREDENTIALS or
// K_SERVICE (Cloud Run); either enables the GCS backend.
func UploadFileHandler(w http.ResponseWriter, r *http.Request) {
	useGCS := os.Getenv("USE_GCS") == "true" ||
		os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") != "" ||
		os.Getenv("K_SERVICE") != ""

	if useGCS {
		UploadFileGCS(w, r)
	} else {
		UploadFileLocal(w, r)
	}
}
