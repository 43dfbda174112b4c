package dto

import (
	"fmt"
	"time"

	"github.com/jhoicas/inventario-stock/internal/domain"
)

// PageQuery paginación por query string (?page&pageSize).
type PageQuery struct {
	Page     int `query:"page"`
	PageSize int `query:"pageSize"`
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

// APIResponse sobre de las respuestas exitosas.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// OK construye el sobre de éxito.
func OK(message string, data interface{}) APIResponse {
	return APIResponse{Success: true, Message: message, Data: data}
}

// Fail construye el cuerpo de error.
func Fail(code, message string) ErrorResponse {
	return ErrorResponse{Success: false, Code: code, Message: message}
}

const dateOnly = "2006-01-02"

// ParseDate acepta RFC3339 o YYYY-MM-DD. Con endOfDay una fecha simple cubre el día completo.
// Cadena vacía devuelve nil.
func ParseDate(s string, endOfDay bool) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(dateOnly, s)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha %q (use RFC3339 o YYYY-MM-DD)", domain.ErrInvalidInput, s)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
