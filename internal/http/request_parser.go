// Package http provides HTTP server and handler implementations.
//
// This file implements utilities for parsing and validating HTTP request
// data: JSON bodies, amounts sent as numbers or strings, and the optional
// period and range query parameters.

package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"saldo/internal/core"
)

const maxBodyBytes = 1 << 20

// decodeJSON reads a single JSON object from the request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return badRequest("Request body too large", err)
		}
		if errors.Is(err, io.EOF) {
			return badRequest("All fields are required", err)
		}
		return badRequest("Invalid request body", err)
	}
	if dec.More() {
		return badRequest("Invalid request body", errors.New("trailing data"))
	}
	return nil
}

// flexString accepts a JSON string or number and keeps its textual form.
// Clients send amounts both ways.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// parseAmount validates a positive decimal amount.
func parseAmount(raw flexString) (float64, error) {
	amount, err := core.ParseAmount(string(raw))
	if err != nil {
		return 0, badRequest("Amount must be a positive number", err)
	}
	return amount, nil
}

// parseDate validates a YYYY-MM-DD date.
func parseDate(raw string) (core.Date, error) {
	d, err := core.ParseDate(raw)
	if err != nil {
		return core.Date{}, badRequest("Date must be formatted as YYYY-MM-DD", err)
	}
	return d, nil
}

// queryInt returns nil when name is absent or blank.
func queryInt(q url.Values, name string) (*int, error) {
	v := strings.TrimSpace(q.Get(name))
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, badRequest("Invalid "+name, err)
	}
	return &n, nil
}

// queryDate returns nil when name is absent or blank.
func queryDate(q url.Values, name string) (*core.Date, error) {
	v := strings.TrimSpace(q.Get(name))
	if v == "" {
		return nil, nil
	}
	d, err := core.ParseDate(v)
	if err != nil {
		return nil, badRequest("Invalid "+name+", expected YYYY-MM-DD", err)
	}
	return &d, nil
}

// MonthParams holds the optional year and 0-based month of a monthly breakdown.
type MonthParams struct {
	Year       *int
	MonthIndex *int
}

// ParseMonthParams reads ?year=&month= where month is 0-based.
func ParseMonthParams(q url.Values) (MonthParams, error) {
	year, err := queryInt(q, "year")
	if err != nil {
		return MonthParams{}, err
	}
	month, err := queryInt(q, "month")
	if err != nil {
		return MonthParams{}, err
	}
	return MonthParams{Year: year, MonthIndex: month}, nil
}
