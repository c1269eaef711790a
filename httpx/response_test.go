package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"name": "required"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}
	var body struct {
		Error   string            `json:"error"`
		Details map[string]string `json:"details"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != "validation_failed" || body.Details["name"] != "required" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestJSONNilPayload(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, http.StatusOK, nil)
	if got := w.Body.String(); got != "null" {
		t.Fatalf("expected null got %q", got)
	}
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"name":"x"}`, false},
		{"empty", ``, true},
		{"unknown field", `{"nope":1}`, true},
		{"malformed", `{"name":`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dst struct {
				Name string `json:"name"`
			}
			err := DecodeJSON(r, &dst)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAttachment(t *testing.T) {
	w := httptest.NewRecorder()
	Attachment(w, "application/pdf", "Facture-FACT-2024-0001.pdf", []byte("%PDF"))
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "Facture-FACT-2024-0001.pdf") {
		t.Fatalf("unexpected disposition %q", cd)
	}
}
