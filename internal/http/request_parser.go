// Package http provides HTTP server and handler implementations.
//
// This file implements utilities for parsing and validating HTTP request data.
// It reduces code duplication by providing reusable functions for body
// parsing, query extraction, and input sanitization patterns.

package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"fintrack/internal/core"
)

// RequestBodyParser handles different content types for request body parsing.
// It supports both JSON and form-encoded data, so handlers stay agnostic of
// the client's Content-Type.
type RequestBodyParser struct {
	body        []byte
	contentType string
	jsonData    map[string]interface{}
	formData    url.Values
	parsed      bool
	err         error
}

// NewRequestBodyParser creates a parser for the given request.
// It reads the body once and stores it for subsequent parsing.
func NewRequestBodyParser(r *http.Request) *RequestBodyParser {
	p := &RequestBodyParser{
		contentType: r.Header.Get("Content-Type"),
	}

	p.body, p.err = io.ReadAll(r.Body)
	return p
}

// Parse attempts to parse the body as JSON or form data.
func (p *RequestBodyParser) Parse() error {
	if p.parsed {
		return p.err
	}
	p.parsed = true

	if p.err != nil {
		return p.err
	}

	if len(p.body) == 0 {
		p.formData = url.Values{}
		return nil
	}

	// Try JSON first if content looks like JSON
	if p.body[0] == '{' || p.body[0] == '[' {
		p.jsonData = make(map[string]interface{})
		if err := json.Unmarshal(p.body, &p.jsonData); err != nil {
			p.err = err
			return err
		}
		return nil
	}

	// Fall back to form parsing
	p.formData, p.err = url.ParseQuery(string(p.body))
	return p.err
}

// Get returns a string value from the parsed data (JSON or form).
func (p *RequestBodyParser) Get(key string) string {
	if p.jsonData != nil {
		if val, ok := p.jsonData[key]; ok {
			return strings.TrimSpace(sanitizeInput(stringValue(val)))
		}
	}
	if p.formData != nil {
		return strings.TrimSpace(sanitizeInput(p.formData.Get(key)))
	}
	return ""
}

// GetRaw returns the raw body bytes.
func (p *RequestBodyParser) GetRaw() []byte {
	return p.body
}

// ContentType returns the Content-Type header value.
func (p *RequestBodyParser) ContentType() string {
	return p.contentType
}

// IsJSON returns true if the parsed content was JSON.
func (p *RequestBodyParser) IsJSON() bool {
	return p.jsonData != nil
}

// stringValue converts an interface{} to string.
func stringValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// sanitizeInput removes potentially dangerous characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	// Remove control characters except tab, newline, carriage return
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
	return result
}

// RequireMethod checks if the request method matches the expected method(s).
// Returns an error response builder if the method doesn't match.
func RequireMethod(r *http.Request, methods ...string) *ResponseBuilder {
	for _, m := range methods {
		if r.Method == m {
			return nil
		}
	}
	return MethodNotAllowedError(strings.Join(methods, ", "))
}

// dashboardQuery is the parsed parameter set of GET /v1/dashboard.
type dashboardQuery struct {
	filter core.DateFilter
	now    time.Time
}

// parseDashboardQuery extracts the report filter and reference instant from
// query parameters. Categories default to the full set, the date range to
// all time, and now to the given clock reading.
func parseDashboardQuery(query url.Values, clock time.Time) (dashboardQuery, error) {
	parsed := dashboardQuery{
		filter: core.DateFilter{Categories: core.Categories()},
		now:    clock,
	}

	if v := strings.TrimSpace(query.Get("categories")); v != "" {
		var categories []core.Category
		for _, raw := range strings.Split(v, ",") {
			c, err := core.ParseCategory(raw)
			if err != nil {
				return dashboardQuery{}, fmt.Errorf("invalid category '%s'", strings.TrimSpace(raw))
			}
			categories = append(categories, c)
		}
		parsed.filter.Categories = categories
	}

	if v := strings.TrimSpace(query.Get("start")); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return dashboardQuery{}, fmt.Errorf("invalid start date '%s': want YYYY-MM-DD", v)
		}
		parsed.filter.Start = d
	}

	if v := strings.TrimSpace(query.Get("end")); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return dashboardQuery{}, fmt.Errorf("invalid end date '%s': want YYYY-MM-DD", v)
		}
		parsed.filter.End = d
	}

	if v := strings.TrimSpace(query.Get("now")); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return dashboardQuery{}, fmt.Errorf("invalid now date '%s': want YYYY-MM-DD", v)
		}
		parsed.now = d.Time
	}

	return parsed, nil
}
