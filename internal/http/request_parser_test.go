package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"saldo/internal/analytics"
	"saldo/internal/core"
	"saldo/internal/services"
)

func TestFlexString(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`{"amount": 12.5}`, "12.5"},
		{`{"amount": "12,50"}`, "12,50"},
		{`{"amount": 1e3}`, "1e3"},
		{`{"amount": null}`, ""},
		{`{}`, ""},
	}
	for _, tt := range tests {
		var v struct {
			Amount flexString `json:"amount"`
		}
		if err := json.Unmarshal([]byte(tt.input), &v); err != nil {
			t.Fatalf("%s: %v", tt.input, err)
		}
		if string(v.Amount) != tt.want {
			t.Errorf("%s: got %q, want %q", tt.input, v.Amount, tt.want)
		}
	}

	var v struct {
		Amount flexString `json:"amount"`
	}
	if err := json.Unmarshal([]byte(`{"amount": true}`), &v); err == nil {
		t.Error("boolean amount should fail")
	}
}

func TestParseAmount(t *testing.T) {
	if got, err := parseAmount("12,50"); err != nil || got != 12.5 {
		t.Errorf("parseAmount(12,50) = %v, %v", got, err)
	}
	for _, raw := range []flexString{"", "0", "-1", "1e3", "abc"} {
		if _, err := parseAmount(raw); err == nil {
			t.Errorf("parseAmount(%q) should fail", raw)
		}
	}
}

func TestParseMonthParams(t *testing.T) {
	p, err := ParseMonthParams(url.Values{})
	if err != nil || p.Year != nil || p.MonthIndex != nil {
		t.Fatalf("empty query = %+v, %v", p, err)
	}

	p, err = ParseMonthParams(url.Values{"year": {"2024"}, "month": {"0"}})
	if err != nil {
		t.Fatal(err)
	}
	if p.Year == nil || *p.Year != 2024 || p.MonthIndex == nil || *p.MonthIndex != 0 {
		t.Errorf("got %+v, want year 2024 month 0", p)
	}

	if _, err := ParseMonthParams(url.Values{"month": {"March"}}); err == nil {
		t.Error("non-numeric month should fail")
	}
}

func TestQueryDate(t *testing.T) {
	d, err := queryDate(url.Values{"startDate": {"2024-02-29"}}, "startDate")
	if err != nil || d == nil || !d.Equal(core.NewDate(2024, 2, 29).Time) {
		t.Errorf("queryDate = %v, %v", d, err)
	}
	if d, err := queryDate(url.Values{}, "startDate"); d != nil || err != nil {
		t.Errorf("absent date = %v, %v", d, err)
	}
	if _, err := queryDate(url.Values{"endDate": {"2024-02-30"}}, "endDate"); err == nil {
		t.Error("impossible date should fail")
	}
}

func TestDecodeJSON(t *testing.T) {
	var dst struct{ A string }

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"A":"x"} {"A":"y"}`))
	if err := decodeJSON(httptest.NewRecorder(), r, &dst); err == nil {
		t.Error("trailing object should fail")
	}

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	err := decodeJSON(httptest.NewRecorder(), r, &dst)
	var reqErr *requestError
	if !errors.As(err, &reqErr) || reqErr.msg != "All fields are required" {
		t.Errorf("empty body err = %v", err)
	}

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"A":"`+strings.Repeat("x", maxBodyBytes)+`"}`))
	err = decodeJSON(httptest.NewRecorder(), r, &dst)
	if !errors.As(err, &reqErr) || reqErr.msg != "Request body too large" {
		t.Errorf("oversized body err = %v", err)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err    error
		status int
		msg    string
	}{
		{badRequest("All fields are required", nil), http.StatusBadRequest, "All fields are required"},
		{&analytics.PreconditionError{Op: "ResolveMonth", Field: "monthIndex", Value: 12}, http.StatusBadRequest, "Invalid monthIndex"},
		{core.ErrInvalidCredentials, http.StatusBadRequest, "Invalid credentials"},
		{services.ErrInvalidRange, http.StatusBadRequest, "Start date is after end date"},
		{core.ErrForbidden, http.StatusForbidden, "Access denied"},
		{core.ErrNotFound, http.StatusNotFound, "Not found"},
		{core.ErrEmailTaken, http.StatusConflict, "Email already in use"},
		{errors.New("disk on fire"), http.StatusInternalServerError, "Server error"},
	}
	for _, tt := range tests {
		status, msg, _ := statusFor(tt.err)
		if status != tt.status || msg != tt.msg {
			t.Errorf("statusFor(%v) = %d %q, want %d %q", tt.err, status, msg, tt.status, tt.msg)
		}
	}
}
