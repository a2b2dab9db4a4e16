package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON %q: %v", rr.Body.String(), err)
	}
	return body
}

func TestJSONResponseBuilder_Success(t *testing.T) {
	rr := httptest.NewRecorder()

	Created(map[string]int{"n": 1}).Write(rr)

	if rr.Code != http.StatusCreated {
		t.Errorf("Status code = %d, want %d", rr.Code, http.StatusCreated)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	body := decodeEnvelope(t, rr)
	if body["success"] != true {
		t.Errorf("success = %v, want true", body["success"])
	}
	if _, ok := body["message"]; ok {
		t.Error("message should be omitted on success without message")
	}
	data, _ := body["data"].(map[string]any)
	if data["n"] != float64(1) {
		t.Errorf("data = %v", body["data"])
	}
}

func TestJSONResponseBuilder_Error(t *testing.T) {
	rr := httptest.NewRecorder()

	BadRequestError("All fields are required").Write(rr)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Status code = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	body := decodeEnvelope(t, rr)
	if body["success"] != false {
		t.Errorf("success = %v, want false", body["success"])
	}
	if body["message"] != "All fields are required" {
		t.Errorf("message = %v", body["message"])
	}
	if _, ok := body["data"]; ok {
		t.Error("data should be omitted on errors")
	}
}

func TestJSONResponseBuilder_Headers(t *testing.T) {
	rr := httptest.NewRecorder()

	MethodNotAllowedError("GET, POST").Write(rr)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("Status code = %d", rr.Code)
	}
	if got := rr.Header().Get("Allow"); got != "GET, POST" {
		t.Errorf("Allow = %q", got)
	}
}

func TestJSONResponseBuilder_MessageWithData(t *testing.T) {
	rr := httptest.NewRecorder()

	OK([]int{}).Message("Income deleted successfully").Write(rr)

	body := decodeEnvelope(t, rr)
	if body["message"] != "Income deleted successfully" {
		t.Errorf("message = %v", body["message"])
	}
}
