package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func decodeFailure(t *testing.T, rec *httptest.ResponseRecorder) trackFailure {
	t.Helper()
	var body trackFailure
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

func TestTrackShipmentRejectsNonPost(t *testing.T) {
	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			req := httptest.NewRequest(method, "/api/v1/track", nil)
			rec := httptest.NewRecorder()

			TrackShipment(rec, req)

			if rec.Code != http.StatusMethodNotAllowed {
				t.Fatalf("status = %d, expected %d", rec.Code, http.StatusMethodNotAllowed)
			}
			body := decodeFailure(t, rec)
			if body.Success {
				t.Errorf("success = true, expected false")
			}
			if body.Message != "Method not allowed" {
				t.Errorf("message = %q", body.Message)
			}
		})
	}
}

func TestTrackShipmentRejectsBadJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/track", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	TrackShipment(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, expected %d", rec.Code, http.StatusBadRequest)
	}
	if body := decodeFailure(t, rec); body.Message != "Invalid request format" {
		t.Errorf("message = %q", body.Message)
	}
}

func TestTrackShipmentRejectsEmptyTrackingNumber(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing field", `{}`},
		{"empty string", `{"tracking_number": ""}`},
		{"whitespace only", `{"tracking_number": "   "}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/track", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			TrackShipment(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, expected %d", rec.Code, http.StatusBadRequest)
			}
			if body := decodeFailure(t, rec); body.Message != "Please enter a tracking number" {
				t.Errorf("message = %q", body.Message)
			}
		})
	}
}

func TestTrackShipmentRejectsInvalidCharacters(t *testing.T) {
	tests := []struct {
		name   string
		number string
	}{
		{"punctuation", "BL!2024"},
		{"hyphen", "BL-2024-001"},
		{"inner space", "BL 2024"},
		{"sql-ish", "BL2024'; DROP TABLE--"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, _ := json.Marshal(map[string]string{"tracking_number": tt.number})
			req := httptest.NewRequest(http.MethodPost, "/api/v1/track", strings.NewReader(string(payload)))
			rec := httptest.NewRecorder()

			TrackShipment(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, expected %d", rec.Code, http.StatusBadRequest)
			}
			if body := decodeFailure(t, rec); body.Message != "Tracking number must contain only letters and numbers." {
				t.Errorf("message = %q", body.Message)
			}
		})
	}
}

func TestShipmentStatusAPIValidation(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		expected string
	}{
		{"missing parameter", "/api/v1/status", "tracking_number parameter is required"},
		{"invalid characters", "/api/v1/status?tracking_number=BL-2024", "tracking_number must contain only letters and numbers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			rec := httptest.NewRecorder()

			ShipmentStatusAPI(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, expected %d", rec.Code, http.StatusBadRequest)
			}
			var body map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if body["error"] != tt.expected {
				t.Errorf("error = %q, expected %q", body["error"], tt.expected)
			}
		})
	}
}

func TestLookupShipmentRejectsInvalidCharacters(t *testing.T) {
	// No mux vars on the request, so the extracted tracking number is
	// empty and the handler must fail before touching the store.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/shipments/lookup/", nil)
	rec := httptest.NewRecorder()

	LookupShipment(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, expected %d", rec.Code, http.StatusBadRequest)
	}
	if body := decodeFailure(t, rec); body.Message != "Please enter a tracking number" {
		t.Errorf("message = %q", body.Message)
	}
}
